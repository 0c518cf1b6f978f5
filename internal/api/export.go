package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"partsdb/internal/parts"
)

// FixedField is a field KiCad always expects in a part payload, with its
// default visibility. These collide with nothing: dynamic fields can never
// override them.
type FixedField struct {
	Name    string
	Visible bool
}

// FixedFields is the static catalog, in output order. Immutable for the
// process lifetime.
var FixedFields = []FixedField{
	{"footprint", false},
	{"datasheet", false},
	{"value", true},
	{"reference", true},
	{"description", false},
	{"keywords", false},
}

func isFixedField(name string) bool {
	for _, f := range FixedFields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// ExportedField is one entry of the fields map; visible is exactly "True"
// or "False".
type ExportedField struct {
	Value   string `json:"value"`
	Visible string `json:"visible"`
}

// ExportedPart is the KiCad part-detail payload. All values are strings.
type ExportedPart struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	SymbolIDStr      string                   `json:"symbolIdStr"`
	ExcludeFromBOM   string                   `json:"exclude_from_bom"`
	ExcludeFromBoard string                   `json:"exclude_from_board"`
	ExcludeFromSim   string                   `json:"exclude_from_sim"`
	Fields           map[string]ExportedField `json:"fields"`
}

// ToBoolString canonicalizes any value to "True" or "False". It is the
// single source of truth for visibility and exclusion-flag serialization
// and never fails: strings whose lowercased form is one of 1/true/yes/y
// are "True", other strings are "False", booleans and numbers map on
// truthiness, everything else is "False".
func ToBoolString(x any) string {
	switch v := x.(type) {
	case string:
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			return "True"
		}
		return "False"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return boolString(v != 0)
	case int32:
		return boolString(v != 0)
	case int64:
		return boolString(v != 0)
	case float64:
		return boolString(v != 0)
	default:
		return "False"
	}
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// fixedValue reads the record attribute backing a fixed-field name. An
// unset attribute exports as the empty string.
func fixedValue(p *parts.Part, name string) string {
	switch name {
	case "footprint":
		return p.Footprint
	case "datasheet":
		return p.Datasheet
	case "value":
		return p.Value
	case "reference":
		return p.Reference
	case "description":
		return p.Description
	case "keywords":
		return p.Keywords
	}
	return ""
}

// PartToFields converts a stored part to the payload KiCad expects for part
// details: fixed fields first, then the part's dynamic fields merged in.
// It is pure computation over an already-fetched record and safe to run
// concurrently.
//
// Dynamic entries support both {"field": "value"} and
// {"field": {"value": "x", "visible": true}}; anything else is dropped.
// An entry whose name matches a fixed field (case-insensitively) is
// dropped too — the fixed value wins, with a warning since the collision
// usually hides an operator mistake.
func PartToFields(p *parts.Part) ExportedPart {
	id := strconv.FormatInt(p.SequenceNumber, 10)

	fields := make(map[string]ExportedField, len(FixedFields)+len(p.Fields))
	for _, item := range FixedFields {
		fields[item.Name] = ExportedField{
			Value:   fixedValue(p, item.Name),
			Visible: ToBoolString(item.Visible),
		}
	}

	for k, v := range p.Fields {
		if isFixedField(k) {
			log.Warn().Str("part", id).Str("field", k).
				Msg("dynamic field shadows a fixed field, dropped")
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			inner, ok := val["value"]
			if !ok {
				continue
			}
			visible := any(false)
			if vis, ok := val["visible"]; ok {
				visible = vis
			}
			fields[k] = ExportedField{
				Value:   stringify(inner),
				Visible: ToBoolString(visible),
			}
		case string, bool, int, int32, int64, float64:
			fields[k] = ExportedField{Value: stringify(val), Visible: "False"}
		}
	}

	name := p.Name
	if name == "" {
		name = id
	}
	return ExportedPart{
		ID:               id,
		Name:             name,
		SymbolIDStr:      p.SymbolID,
		ExcludeFromBOM:   ToBoolString(p.ExcludeFromBOM),
		ExcludeFromBoard: ToBoolString(p.ExcludeFromBoard),
		ExcludeFromSim:   ToBoolString(p.ExcludeFromSim),
		Fields:           fields,
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integral values clean
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
