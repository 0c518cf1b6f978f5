package parts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryAllFamiliesSynthesize(t *testing.T) {
	r, err := BuildRegistry()
	require.NoError(t, err)

	tables, err := r.SynthesizeAll()
	require.NoError(t, err)
	require.Len(t, tables, 13)

	names := make([]string, 0, len(tables))
	for _, tab := range tables {
		names = append(names, tab.Name)
	}
	assert.Contains(t, names, "resistors")
	assert.Contains(t, names, "capacitors")
	assert.Contains(t, names, "transistors")

	for _, tab := range tables {
		pks := 0
		for _, c := range tab.Columns {
			if c.PrimaryKey {
				pks++
				assert.Equal(t, "part_number", c.Name, tab.Name)
			}
		}
		assert.Equal(t, 1, pks, tab.Name)

		// identity columns present, never duplicated
		assert.NotNil(t, tab.Column("symbol"), tab.Name)
		assert.NotNil(t, tab.Column("footprint"), tab.Name)
	}
}

func TestFamilyPrefixSubstitution(t *testing.T) {
	r, err := BuildRegistry()
	require.NoError(t, err)
	tables, err := r.SynthesizeAll()
	require.NoError(t, err)

	want := map[string]string{
		"resistors":  "RES",
		"capacitors": "CAP",
		"relays":     "RLY",
		"ics":        "IC",
	}
	for _, tab := range tables {
		prefix, ok := want[tab.Name]
		if !ok {
			continue
		}
		pn := tab.Column("part_number")
		require.NotNil(t, pn, tab.Name)
		assert.Contains(t, pn.ServerDefault, "'"+prefix+"'", tab.Name)
		assert.NotContains(t, pn.ServerDefault, "{prefix}", tab.Name)
	}
}

func TestFamilyExclusionFlagsAreBoolean(t *testing.T) {
	r, err := BuildRegistry()
	require.NoError(t, err)
	tables, err := r.SynthesizeAll()
	require.NoError(t, err)

	for _, tab := range tables {
		for _, name := range []string{"exclude_from_bom", "exclude_from_board", "exclude_from_sim"} {
			c := tab.Column(name)
			require.NotNil(t, c, tab.Name)
			assert.Equal(t, "boolean", string(c.Type), tab.Name)
		}
	}
}
