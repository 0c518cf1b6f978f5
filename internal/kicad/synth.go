package kicad

import (
	"fmt"
	"regexp"
)

// Table is the synthesized schema for one part family: an ordered column
// list keyed by the definition's (lower-cased) table name.
type Table struct {
	Name    string
	Columns []Column
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

var varRe = regexp.MustCompile(`\{(\w+)\}`)

// expand substitutes {variable} placeholders in a computed expression with
// the table's bound variables. Referencing an unbound variable is a
// definition error, reported at synthesis time rather than at row-insert
// time.
func expand(expr string, vars map[string]string) (string, error) {
	var missing string
	out := varRe.ReplaceAllStringFunc(expr, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("computed expression %q references unbound variable %q", expr, missing)
	}
	return out, nil
}

// Synthesize turns one definition into a concrete table schema. It is a pure
// function of its input and may be called any number of times with the same
// result.
//
// Identity columns are injected only for names no declared attribute covers,
// so a table never carries a duplicate key/symbol/footprint column. The key
// column is always the sole primary key: a synthesized key comes out as a
// primary-key column directly, a user-declared one is promoted, and any
// other column claiming the primary key is a definition error.
func Synthesize(d *Definition) (*Table, error) {
	cols := make([]Column, 0, len(d.Attrs)+3)

	if !d.declares(d.Key) {
		cols = append(cols, Column{Name: d.Key, Type: String, PrimaryKey: true, Index: true})
	}
	if !d.declares(d.Symbol) {
		cols = append(cols, Column{Name: d.Symbol, Type: String, Nullable: true})
	}
	if !d.declares(d.Footprint) {
		cols = append(cols, Column{Name: d.Footprint, Type: String, Nullable: true})
	}

	for _, a := range d.Attrs {
		switch a.Spec.Kind {
		case KindColumn:
			cols = append(cols, copyWithName(a.Spec.Column, a.Name))

		case KindField:
			f := a.Spec.Field
			if f.Name == "" {
				return nil, fmt.Errorf("field %q has no KiCad name", a.Name)
			}
			col := Column{
				Name:          a.Name,
				Type:          String,
				Nullable:      true,
				Default:       f.Options.Default,
				ServerDefault: f.Options.ServerDefault,
				Unique:        f.Options.Unique,
				Index:         f.Options.Index,
				Comment:       f.Description,
				Info:          fieldInfo(f),
			}
			if f.Computed != "" {
				expr, err := expand(f.Computed, d.Vars)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", a.Name, err)
				}
				// computed values may reference sibling columns, which rules
				// out a plain DEFAULT on the SQL side
				col.ServerDefault = expr
				col.Generated = true
			}
			cols = append(cols, col)

		case KindProperty:
			col := Column{
				Name:     a.Name,
				Type:     String,
				Nullable: true,
				Default:  "",
				Comment:  a.Spec.Desc,
				Info:     map[string]string{"kicad_property": string(a.Spec.Property)},
			}
			if a.Spec.Property.IsExclusion() {
				col.Type = Boolean
				col.Default = false
			}
			cols = append(cols, col)

		default:
			return nil, fmt.Errorf("attribute %q: unknown field kind %d", a.Name, a.Spec.Kind)
		}
	}

	// The configured key column is the one and only primary key.
	pk := -1
	for i := range cols {
		if cols[i].Name == d.Key {
			cols[i].PrimaryKey = true
			cols[i].Nullable = false
		}
		if cols[i].PrimaryKey {
			if pk >= 0 {
				return nil, fmt.Errorf("columns %q and %q both declare a primary key", cols[pk].Name, cols[i].Name)
			}
			pk = i
		}
	}
	if pk < 0 {
		return nil, fmt.Errorf("no primary key column (key column %q missing)", d.Key)
	}

	return &Table{Name: d.Name, Columns: cols}, nil
}

func fieldInfo(f NamedField) map[string]string {
	return map[string]string{
		"kicad_name":         f.Name,
		"visible_on_add":     fmt.Sprintf("%t", f.VisibleOnAdd),
		"visible_in_chooser": fmt.Sprintf("%t", f.VisibleInChooser),
		"show_name":          fmt.Sprintf("%t", f.ShowName),
		"inherit_properties": fmt.Sprintf("%t", f.InheritProperties),
	}
}
