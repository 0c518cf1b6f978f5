package kicad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeInjectsIdentityColumns(t *testing.T) {
	d := NewDefinition("Widgets")
	tab, err := Synthesize(d)
	require.NoError(t, err)

	assert.Equal(t, "widgets", tab.Name)
	require.Len(t, tab.Columns, 3)
	assert.Equal(t, []string{"key", "symbol", "footprint"},
		[]string{tab.Columns[0].Name, tab.Columns[1].Name, tab.Columns[2].Name})

	key := tab.Column("key")
	assert.True(t, key.PrimaryKey)
	assert.True(t, key.Index)
	assert.Equal(t, String, key.Type)
	assert.Equal(t, String, tab.Column("symbol").Type)
	assert.Equal(t, String, tab.Column("footprint").Type)
}

func TestSynthesizeExactlyOnePrimaryKey(t *testing.T) {
	d := NewDefinition("widgets")
	d.Add("tolerance", Field(NamedField{Name: "Tolerance"}))
	tab, err := Synthesize(d)
	require.NoError(t, err)

	var pks []string
	for _, c := range tab.Columns {
		if c.PrimaryKey {
			pks = append(pks, c.Name)
		}
	}
	assert.Equal(t, []string{"key"}, pks)
}

func TestSynthesizeDeclaredIdentityNotDuplicated(t *testing.T) {
	d := NewDefinition("widgets")
	d.Add("symbol", Plain(Column{Type: String, Comment: "Symbol of the component"}))
	d.Add("footprint", Plain(Column{Type: String, Default: "TBD"}))
	tab, err := Synthesize(d)
	require.NoError(t, err)

	symbols, footprints := 0, 0
	for _, c := range tab.Columns {
		switch c.Name {
		case "symbol":
			symbols++
		case "footprint":
			footprints++
		}
	}
	assert.Equal(t, 1, symbols)
	assert.Equal(t, 1, footprints)
	assert.Equal(t, "Symbol of the component", tab.Column("symbol").Comment)
	assert.Equal(t, "TBD", tab.Column("footprint").Default)
}

func TestSynthesizeDeclaredKeyPromotedToPrimaryKey(t *testing.T) {
	d := NewDefinition("widgets", WithKey("part_number"))
	d.Add("part_number", Field(NamedField{Name: "Part Number"}))
	tab, err := Synthesize(d)
	require.NoError(t, err)

	pn := tab.Column("part_number")
	require.NotNil(t, pn)
	assert.True(t, pn.PrimaryKey)
	assert.False(t, pn.Nullable)
	assert.Nil(t, tab.Column("key"))
}

func TestSynthesizeMultiplePrimaryKeysRejected(t *testing.T) {
	d := NewDefinition("widgets")
	d.Add("serial", Plain(Column{Type: Integer, PrimaryKey: true}))
	_, err := Synthesize(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary key")
}

func TestSynthesizePlainColumnCopiedUnderAttributeName(t *testing.T) {
	src := Column{
		Name:          "ignored",
		Type:          Integer,
		Autoincrement: true,
		Nullable:      true,
		Unique:        true,
		Index:         true,
		Comment:       "Sequence number",
		Info:          map[string]string{"origin": "test"},
	}
	d := NewDefinition("widgets")
	d.Add("sequence_number", Plain(src))
	tab, err := Synthesize(d)
	require.NoError(t, err)

	c := tab.Column("sequence_number")
	require.NotNil(t, c)
	assert.Equal(t, Integer, c.Type)
	assert.True(t, c.Autoincrement)
	assert.True(t, c.Unique)
	assert.True(t, c.Index)
	assert.Equal(t, "Sequence number", c.Comment)
	assert.Equal(t, "test", c.Info["origin"])

	// the copy must not alias the declared column's metadata
	c.Info["origin"] = "mutated"
	assert.Equal(t, "test", src.Info["origin"])
}

func TestSynthesizeNamedFieldAlwaysString(t *testing.T) {
	d := NewDefinition("widgets")
	d.Add("power_rating", Field(NamedField{Name: "Power", Description: "Power rating in watts"}))
	tab, err := Synthesize(d)
	require.NoError(t, err)

	c := tab.Column("power_rating")
	assert.Equal(t, String, c.Type)
	assert.True(t, c.Nullable)
	assert.Equal(t, "Power rating in watts", c.Comment)
	assert.Equal(t, "Power", c.Info["kicad_name"])
}

func TestSynthesizePropertyTypes(t *testing.T) {
	tests := []struct {
		attr string
		prop PropertyKind
		want ColType
	}{
		{"value", PropValue, String},
		{"datasheet", PropDatasheet, String},
		{"keywords", PropKeywords, String},
		{"exclude_from_bom", PropExcludeFromBOM, Boolean},
		{"exclude_from_board", PropExcludeFromBoard, Boolean},
		{"exclude_from_sim", PropExcludeFromSim, Boolean},
	}
	d := NewDefinition("widgets")
	for _, tc := range tests {
		d.Add(tc.attr, Property(tc.prop, "desc"))
	}
	tab, err := Synthesize(d)
	require.NoError(t, err)

	for _, tc := range tests {
		c := tab.Column(tc.attr)
		require.NotNil(t, c, tc.attr)
		assert.Equal(t, tc.want, c.Type, tc.attr)
	}
	assert.Equal(t, false, tab.Column("exclude_from_bom").Default)
	assert.Equal(t, "", tab.Column("value").Default)
}

func TestSynthesizeComputedExpression(t *testing.T) {
	d := NewDefinition("resistors",
		WithVars(map[string]string{"prefix": "RES", "sequence": "sequence_number"}))
	d.Add("part_number_field", Field(NamedField{
		Name:     "Part Number",
		Computed: "{prefix}-{sequence}",
	}))
	tab, err := Synthesize(d)
	require.NoError(t, err)
	assert.Equal(t, "RES-sequence_number", tab.Column("part_number_field").ServerDefault)
	assert.True(t, tab.Column("part_number_field").Generated)
}

func TestSynthesizeUnboundVariableIsDefinitionError(t *testing.T) {
	d := NewDefinition("resistors", WithVars(map[string]string{"prefix": "RES"}))
	d.Add("part_number_field", Field(NamedField{
		Name:     "Part Number",
		Computed: "{prefix}-{sequence}",
	}))
	_, err := Synthesize(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sequence"`)
}

func TestSynthesizeMissingKiCadNameIsDefinitionError(t *testing.T) {
	d := NewDefinition("widgets")
	d.Add("broken", Field(NamedField{Description: "no name"}))
	_, err := Synthesize(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	d := NewDefinition("widgets", WithVars(map[string]string{"prefix": "W"}))
	d.Add("part_number_field", Field(NamedField{Name: "Part Number", Computed: "{prefix}-X"}))
	d.Add("tolerance", Field(NamedField{Name: "Tolerance"}))

	first, err := Synthesize(d)
	require.NoError(t, err)
	second, err := Synthesize(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWithVarsCopiesDefensively(t *testing.T) {
	shared := map[string]string{"prefix": "RES"}
	a := NewDefinition("resistors", WithVars(shared))
	b := NewDefinition("capacitors", WithVars(shared))

	shared["prefix"] = "XXX"
	a.Vars["extra"] = "leak"

	assert.Equal(t, "RES", a.Vars["prefix"])
	assert.Equal(t, "RES", b.Vars["prefix"])
	_, leaked := b.Vars["extra"]
	assert.False(t, leaked)
}
