package kicad

import "encoding/json"

// The .kicad_dbl descriptor tells KiCad how to read the synthesized tables.
// Format per the KiCad database-library documentation.

type DBLMeta struct {
	Version int `json:"version"`
}

type DBLSource struct {
	Type             string `json:"type"`
	DSN              string `json:"dsn"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	ConnectionString string `json:"connection_string"`
}

type DBLField struct {
	Column           string `json:"column"`
	Name             string `json:"name"`
	VisibleOnAdd     bool   `json:"visible_on_add"`
	VisibleInChooser bool   `json:"visible_in_chooser"`
	ShowName         bool   `json:"show_name"`
	InheritProperties bool  `json:"inherit_properties"`
}

type DBLLibrary struct {
	Name       string            `json:"name"`
	Table      string            `json:"table"`
	Key        string            `json:"key"`
	Symbols    string            `json:"symbols"`
	Footprints string            `json:"footprints"`
	Fields     []DBLField        `json:"fields"`
	Properties map[string]string `json:"properties,omitempty"`
}

type DBL struct {
	Meta        DBLMeta      `json:"meta"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Source      DBLSource    `json:"source"`
	Libraries   []DBLLibrary `json:"libraries"`
}

// dblProperties is the subset of property kinds the .kicad_dbl properties
// map understands; value and datasheet travel as fields instead.
var dblProperties = map[PropertyKind]string{
	PropDescription:      "description",
	PropKeywords:         "keywords",
	PropFootprintFilters: "footprint_filters",
	PropExcludeFromBOM:   "exclude_from_bom",
	PropExcludeFromBoard: "exclude_from_board",
	PropExcludeFromSim:   "exclude_from_sim",
}

// GenerateDBL renders the database-library descriptor for every registered
// definition. The original schema tooling only stubbed this out; here the
// declared field flags finally get consumed.
func GenerateDBL(name, description string, source DBLSource, defs []*Definition) ([]byte, error) {
	dbl := DBL{
		Meta:        DBLMeta{Version: 0},
		Name:        name,
		Description: description,
		Source:      source,
		Libraries:   make([]DBLLibrary, 0, len(defs)),
	}
	for _, d := range defs {
		lib := DBLLibrary{
			Name:       d.Pretty,
			Table:      d.Name,
			Key:        d.Key,
			Symbols:    d.Symbol,
			Footprints: d.Footprint,
			Fields:     []DBLField{},
			Properties: map[string]string{},
		}
		for _, a := range d.Attrs {
			switch a.Spec.Kind {
			case KindField:
				f := a.Spec.Field
				lib.Fields = append(lib.Fields, DBLField{
					Column:            a.Name,
					Name:              f.Name,
					VisibleOnAdd:      f.VisibleOnAdd,
					VisibleInChooser:  f.VisibleInChooser,
					ShowName:          f.ShowName,
					InheritProperties: f.InheritProperties,
				})
			case KindProperty:
				if key, ok := dblProperties[a.Spec.Property]; ok {
					lib.Properties[key] = a.Name
				} else {
					// value, datasheet and comment surface as ordinary fields
					lib.Fields = append(lib.Fields, DBLField{Column: a.Name, Name: a.Name})
				}
			}
		}
		if len(lib.Properties) == 0 {
			lib.Properties = nil
		}
		dbl.Libraries = append(dbl.Libraries, lib)
	}
	return json.MarshalIndent(dbl, "", "  ")
}
