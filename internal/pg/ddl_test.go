package pg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsdb/internal/kicad"
	"partsdb/internal/parts"
)

func resistorsTable(t *testing.T) *kicad.Table {
	t.Helper()
	r, err := parts.BuildRegistry()
	require.NoError(t, err)
	tables, err := r.SynthesizeAll()
	require.NoError(t, err)
	for _, tab := range tables {
		if tab.Name == "resistors" {
			return tab
		}
	}
	t.Fatal("resistors table not synthesized")
	return nil
}

func TestRenderDDLResistors(t *testing.T) {
	tab := resistorsTable(t)
	ddl, err := RenderDDL([]*kicad.Table{tab})
	require.NoError(t, err)

	sql := ddl["100_resistors"]
	require.NotEmpty(t, sql)

	assert.Contains(t, sql, `create table if not exists "resistors"`)
	assert.Contains(t, sql, `"part_number" text primary key`)
	assert.Contains(t, sql, `"sequence_number" bigint generated by default as identity`)
	assert.Contains(t, sql, `"exclude_from_bom" boolean`)
	assert.Contains(t, sql, `generated always as ('RES' || '-' || LPAD(sequence_number::TEXT, 5, '0')) stored`)
	assert.Contains(t, sql, `create index if not exists "resistors_sequence_number_idx"`)

	comments := ddl["200_comments"]
	assert.Contains(t, comments, `comment on column "resistors"."power_rating"`)
}

func TestRenderDDLEscapesQuotes(t *testing.T) {
	tab := &kicad.Table{Name: "widgets", Columns: []kicad.Column{
		{Name: "id", Type: kicad.String, PrimaryKey: true},
		{Name: "note", Type: kicad.String, Nullable: true, Default: "it's fine", Comment: "manufacturer's note"},
	}}
	ddl, err := RenderDDL([]*kicad.Table{tab})
	require.NoError(t, err)

	assert.Contains(t, ddl["100_widgets"], `default 'it''s fine'`)
	assert.Contains(t, ddl["200_comments"], `'manufacturer''s note'`)
}

func TestRenderDDLBooleanAndIntegerDefaults(t *testing.T) {
	tab := &kicad.Table{Name: "widgets", Columns: []kicad.Column{
		{Name: "id", Type: kicad.String, PrimaryKey: true},
		{Name: "flag", Type: kicad.Boolean, Nullable: true, Default: false},
		{Name: "count", Type: kicad.Integer, Nullable: true, Default: 5},
	}}
	ddl, err := RenderDDL([]*kicad.Table{tab})
	require.NoError(t, err)

	sql := ddl["100_widgets"]
	assert.Contains(t, sql, `"flag" boolean default false`)
	assert.Contains(t, sql, `"count" bigint default 5`)
}

func TestRenderDDLUnknownTypeRejected(t *testing.T) {
	tab := &kicad.Table{Name: "widgets", Columns: []kicad.Column{
		{Name: "id", Type: kicad.ColType("jsonb"), PrimaryKey: true},
	}}
	_, err := RenderDDL([]*kicad.Table{tab})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown column type"))
}
