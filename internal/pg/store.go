package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"partsdb/internal/parts"
)

// coreDDL is the record store itself: categories plus the parts table with
// its JSONB extra-field bag. Part-family tables come from the synthesis
// engine; these two are fixed.
var coreDDL = map[string]string{
	"000_categories": `
create table if not exists categories (
  id text primary key,
  display_name text not null,
  description text,
  is_active boolean not null default true
);`,
	"010_parts": `
create table if not exists parts (
  sequence_number bigint generated by default as identity primary key,
  name text not null,
  category_id text not null references categories(id),
  value text not null default '',
  reference text not null default '',
  footprint text not null default '',
  symbol_id text not null default '',
  description text,
  datasheet text,
  keywords text default '',
  fields jsonb not null default '{}'::jsonb,
  exclude_from_bom boolean not null default false,
  exclude_from_board boolean not null default false,
  exclude_from_sim boolean not null default false,
  is_active boolean not null default true,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);
create index if not exists parts_category_id_idx on parts(category_id);
create index if not exists parts_keywords_idx on parts(keywords);`,
	// parts.name is immutable once assigned; updated_at follows every write
	"020_guard_touch_fn": `
create or replace function parts_guard_and_touch()
returns trigger language plpgsql as $$
begin
  if tg_op = 'UPDATE' and new.name is distinct from old.name then
    raise exception 'parts.name is immutable once assigned';
  end if;
  new.updated_at := now();
  return new;
end $$;`,
	"021_guard_touch_drop": `drop trigger if exists trg_parts_guard_touch on parts;`,
	"022_guard_touch_trg": `
create trigger trg_parts_guard_touch
before update on parts
for each row execute function parts_guard_and_touch();`,
}

// CoreDDL returns the DDL for the record tables (categories, parts).
func CoreDDL() map[string]string {
	out := make(map[string]string, len(coreDDL))
	for k, v := range coreDDL {
		out[k] = v
	}
	return out
}

// Store is the Postgres-backed parts.Store.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, entropy: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

const partColumns = `sequence_number, name, category_id, value, reference, footprint, symbol_id,
	coalesce(description, ''), coalesce(datasheet, ''), coalesce(keywords, ''), fields,
	exclude_from_bom, exclude_from_board, exclude_from_sim, is_active, created_at, updated_at`

func scanPart(row interface{ Scan(...any) error }) (*parts.Part, error) {
	var p parts.Part
	var fields []byte
	err := row.Scan(
		&p.SequenceNumber, &p.Name, &p.CategoryID, &p.Value, &p.Reference,
		&p.Footprint, &p.SymbolID, &p.Description, &p.Datasheet, &p.Keywords,
		&fields, &p.ExcludeFromBOM, &p.ExcludeFromBoard, &p.ExcludeFromSim,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &p.Fields); err != nil {
			return nil, fmt.Errorf("part %d: decode fields: %w", p.SequenceNumber, err)
		}
	}
	return &p, nil
}

func (s *Store) Categories(ctx context.Context) ([]parts.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, display_name, coalesce(description, ''), is_active
		from categories where is_active order by display_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []parts.Category
	for rows.Next() {
		var c parts.Category
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.Description, &c.IsActive); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c *parts.Category) error {
	if c.ID == "" {
		c.ID = s.newID()
	}
	c.IsActive = true
	_, err := s.db.ExecContext(ctx, `
		insert into categories (id, display_name, description, is_active)
		values ($1, $2, $3, true)`,
		c.ID, c.DisplayName, c.Description)
	return err
}

func (s *Store) queryParts(ctx context.Context, where string, args ...any) ([]parts.Part, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+partColumns+` from parts `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []parts.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) Parts(ctx context.Context) ([]parts.Part, error) {
	return s.queryParts(ctx, `where is_active order by name`)
}

func (s *Store) PartsByCategory(ctx context.Context, categoryID string) ([]parts.Part, error) {
	return s.queryParts(ctx, `where is_active and category_id = $1 order by name`, categoryID)
}

func (s *Store) Part(ctx context.Context, id int64) (*parts.Part, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+partColumns+` from parts where is_active and sequence_number = $1`, id)
	p, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, parts.ErrNotFound
	}
	return p, err
}

func (s *Store) CreatePart(ctx context.Context, p *parts.Part) error {
	fields, err := json.Marshal(orEmpty(p.Fields))
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	p.IsActive = true
	return s.db.QueryRowContext(ctx, `
		insert into parts (name, category_id, value, reference, footprint, symbol_id,
			description, datasheet, keywords, fields,
			exclude_from_bom, exclude_from_board, exclude_from_sim, is_active)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true)
		returning sequence_number, created_at, updated_at`,
		p.Name, p.CategoryID, p.Value, p.Reference, p.Footprint, p.SymbolID,
		p.Description, p.Datasheet, p.Keywords, fields,
		p.ExcludeFromBOM, p.ExcludeFromBoard, p.ExcludeFromSim,
	).Scan(&p.SequenceNumber, &p.CreatedAt, &p.UpdatedAt)
}

// UpdatePart rewrites every mutable attribute. The name column is left
// untouched; the guard trigger rejects renames anyway.
func (s *Store) UpdatePart(ctx context.Context, p *parts.Part) error {
	fields, err := json.Marshal(orEmpty(p.Fields))
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		update parts set category_id = $2, value = $3, reference = $4,
			footprint = $5, symbol_id = $6, description = $7, datasheet = $8,
			keywords = $9, fields = $10,
			exclude_from_bom = $11, exclude_from_board = $12, exclude_from_sim = $13
		where is_active and sequence_number = $1`,
		p.SequenceNumber, p.CategoryID, p.Value, p.Reference, p.Footprint,
		p.SymbolID, p.Description, p.Datasheet, p.Keywords, fields,
		p.ExcludeFromBOM, p.ExcludeFromBoard, p.ExcludeFromSim)
	if err != nil {
		return err
	}
	return checkFound(res)
}

// DeletePart is a soft delete.
func (s *Store) DeletePart(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`update parts set is_active = false where is_active and sequence_number = $1`, id)
	if err != nil {
		return err
	}
	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return parts.ErrNotFound
	}
	return nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
