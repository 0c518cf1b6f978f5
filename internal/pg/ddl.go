package pg

import (
	"fmt"
	"strings"

	"partsdb/internal/kicad"
)

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func mapType(c kicad.Column) (string, error) {
	switch c.Type {
	case kicad.String:
		return "text", nil
	case kicad.Integer:
		if c.Autoincrement {
			return "bigint generated by default as identity", nil
		}
		return "bigint", nil
	case kicad.Float:
		return "double precision", nil
	case kicad.Boolean:
		return "boolean", nil
	default:
		return "", fmt.Errorf("unknown column type: %s", c.Type)
	}
}

func defaultClause(c kicad.Column) (string, error) {
	if c.Generated && c.ServerDefault != "" {
		return " generated always as (" + c.ServerDefault + ") stored", nil
	}
	if c.ServerDefault != "" {
		return " default (" + c.ServerDefault + ")", nil
	}
	switch v := c.Default.(type) {
	case nil:
		return "", nil
	case string:
		return " default " + sqlString(v), nil
	case bool:
		return fmt.Sprintf(" default %t", v), nil
	case int, int32, int64:
		return fmt.Sprintf(" default %d", v), nil
	default:
		return "", fmt.Errorf("column %q: unsupported default %T", c.Name, c.Default)
	}
}

// RenderDDL turns synthesized tables into idempotent DDL, keyed so that
// ApplyDDL executes tables first and column comments after.
func RenderDDL(tables []*kicad.Table) (map[string]string, error) {
	out := make(map[string]string, len(tables)+1)

	var comments strings.Builder
	for _, t := range tables {
		var cols []string
		var indexes []string

		for _, c := range t.Columns {
			typ, err := mapType(c)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, c.Name, err)
			}

			def, err := defaultClause(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name, err)
			}

			line := sqlIdent(c.Name) + " " + typ
			if c.PrimaryKey {
				line += " primary key"
			} else if !c.Nullable {
				line += " not null"
			}
			if c.Unique && !c.PrimaryKey {
				line += " unique"
			}
			line += def
			cols = append(cols, line)

			// the primary key is already indexed
			if c.Index && !c.PrimaryKey {
				indexes = append(indexes, fmt.Sprintf(
					"create index if not exists %s on %s(%s);",
					sqlIdent(t.Name+"_"+c.Name+"_idx"), sqlIdent(t.Name), sqlIdent(c.Name)))
			}

			if c.Comment != "" {
				fmt.Fprintf(&comments, "comment on column %s.%s is %s;\n",
					sqlIdent(t.Name), sqlIdent(c.Name), sqlString(c.Comment))
			}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "create table if not exists %s (\n  %s\n);\n",
			sqlIdent(t.Name), strings.Join(cols, ",\n  "))
		for _, ix := range indexes {
			sb.WriteString(ix + "\n")
		}
		out["100_"+t.Name] = sb.String()
	}

	if comments.Len() > 0 {
		out["200_comments"] = comments.String()
	}
	return out, nil
}
