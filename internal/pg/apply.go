package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// ApplyDDL executes a map[key]sql in key order. The DDL is expected to be
// idempotent (create ... if not exists); duplicate_object (42710) from
// re-applied constraints is skipped, anything else aborts.
func ApplyDDL(db *sql.DB, ddl map[string]string, log zerolog.Logger) error {
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			// pgx/stdlib returns *pgconn.PgError
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "42710" {
				log.Warn().Str("constraint", pgErr.ConstraintName).
					Msg("DDL skipped (already exists)")
				continue
			}
			e := strings.ToLower(err.Error())
			if strings.Contains(e, "already exists") || strings.Contains(e, "duplicate") {
				log.Warn().Err(err).Msg("DDL skipped (already exists)")
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", k, err)
		}
		log.Debug().Str("key", k).Msg("DDL applied")
	}
	return nil
}
