package kicad

// ColType is the logical column type; internal/pg maps it to Postgres types.
type ColType string

const (
	String  ColType = "string"
	Integer ColType = "integer"
	Float   ColType = "float"
	Boolean ColType = "boolean"
)

// Column is one concrete table column. Plain columns are declared with it
// directly; named fields and properties are lowered into it by Synthesize.
type Column struct {
	Name          string
	Type          ColType
	PrimaryKey    bool
	Autoincrement bool
	Nullable      bool
	Default       any    // literal default, nil = none
	ServerDefault string // raw SQL expression
	Generated     bool   // ServerDefault is a generation expression, not a default
	Unique        bool
	Index         bool
	Comment       string
	Info          map[string]string
}

// copyWithName returns a copy of c renamed to name. Column identity cannot
// be changed once the column is part of a table, so declared columns are
// always copied under the attribute name that declared them.
func copyWithName(c Column, name string) Column {
	out := c
	out.Name = name
	if c.Info != nil {
		out.Info = make(map[string]string, len(c.Info))
		for k, v := range c.Info {
			out.Info[k] = v
		}
	}
	return out
}

// PropertyKind identifies a database column as a KiCad property.
// See https://docs.kicad.org/master/en/eeschema/eeschema_advanced.html#database-libraries
type PropertyKind string

const (
	PropValue            PropertyKind = "value"
	PropDescription      PropertyKind = "description"
	PropDatasheet        PropertyKind = "datasheet"
	PropKeywords         PropertyKind = "keywords"
	PropFootprintFilters PropertyKind = "footprint_filters"
	PropComment          PropertyKind = "comment"
	PropExcludeFromBOM   PropertyKind = "exclude_from_bom"
	PropExcludeFromBoard PropertyKind = "exclude_from_board"
	PropExcludeFromSim   PropertyKind = "exclude_from_sim"
)

// IsExclusion reports whether the property renders as a boolean column.
func (p PropertyKind) IsExclusion() bool {
	switch p {
	case PropExcludeFromBOM, PropExcludeFromBoard, PropExcludeFromSim:
		return true
	}
	return false
}

type Kind int

const (
	KindColumn Kind = iota
	KindField
	KindProperty
)

// NamedField is a string attribute surfaced as a labeled field in KiCad.
type NamedField struct {
	Name             string // KiCad-visible name, required
	VisibleOnAdd     bool
	VisibleInChooser bool
	ShowName         bool
	InheritProperties bool
	Description      string
	Computed         string // templated default, resolved against the table's vars
	Options          ColumnOptions
}

// ColumnOptions carries extra column settings for a named field.
type ColumnOptions struct {
	Default       any
	ServerDefault string
	Unique        bool
	Index         bool
}

// FieldSpec is a closed tagged union over the three column flavours.
// Synthesize switches on Kind exhaustively; a new kind means a new case there.
type FieldSpec struct {
	Kind     Kind
	Column   Column       // KindColumn
	Field    NamedField   // KindField
	Property PropertyKind // KindProperty
	Desc     string       // KindProperty description
}

// Plain declares an already-typed column, renamed to its attribute on synthesis.
func Plain(c Column) FieldSpec {
	return FieldSpec{Kind: KindColumn, Column: c}
}

// Field declares a KiCad field attribute.
func Field(f NamedField) FieldSpec {
	return FieldSpec{Kind: KindField, Field: f}
}

// Property declares a KiCad property attribute.
func Property(which PropertyKind, description string) FieldSpec {
	return FieldSpec{Kind: KindProperty, Property: which, Desc: description}
}
