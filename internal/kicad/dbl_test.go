package kicad

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDBL(t *testing.T) {
	d := NewDefinition("resistors",
		WithPretty("Resistors"),
		WithKey("part_number"),
		WithVars(map[string]string{"prefix": "RES"}),
	)
	d.Add("part_number", Field(NamedField{Name: "Part Number", VisibleInChooser: true}))
	d.Add("power_rating", Field(NamedField{Name: "Power", ShowName: true}))
	d.Add("description", Property(PropDescription, "Description"))
	d.Add("exclude_from_bom", Property(PropExcludeFromBOM, "Exclude from BOM"))
	d.Add("value", Property(PropValue, "Value"))

	raw, err := GenerateDBL("Parts Database", "test", DBLSource{Type: "odbc"}, []*Definition{d})
	require.NoError(t, err)

	var dbl DBL
	require.NoError(t, json.Unmarshal(raw, &dbl))

	assert.Equal(t, "Parts Database", dbl.Name)
	require.Len(t, dbl.Libraries, 1)

	lib := dbl.Libraries[0]
	assert.Equal(t, "Resistors", lib.Name)
	assert.Equal(t, "resistors", lib.Table)
	assert.Equal(t, "part_number", lib.Key)
	assert.Equal(t, "symbol", lib.Symbols)
	assert.Equal(t, "footprint", lib.Footprints)

	// named fields carry their visibility flags; value rides along as a field
	require.Len(t, lib.Fields, 3)
	assert.Equal(t, "part_number", lib.Fields[0].Column)
	assert.Equal(t, "Part Number", lib.Fields[0].Name)
	assert.True(t, lib.Fields[0].VisibleInChooser)
	assert.True(t, lib.Fields[1].ShowName)
	assert.Equal(t, "value", lib.Fields[2].Column)

	assert.Equal(t, "description", lib.Properties["description"])
	assert.Equal(t, "exclude_from_bom", lib.Properties["exclude_from_bom"])
}
