package parts

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when an id resolves to nothing.
var ErrNotFound = errors.New("not found")

// Category groups parts for the KiCad chooser.
type Category struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Part is one stored component. Fields is the open-ended extra-attribute
// bag persisted as JSONB; entries are either bare scalars or
// {"value": ..., "visible": ...} maps.
type Part struct {
	SequenceNumber int64          `json:"sequence_number"`
	Name           string         `json:"name"`
	CategoryID     string         `json:"category_id"`
	Value          string         `json:"value"`
	Reference      string         `json:"reference"`
	Footprint      string         `json:"footprint"`
	SymbolID       string         `json:"symbol_id"`
	Description    string         `json:"description,omitempty"`
	Datasheet      string         `json:"datasheet,omitempty"`
	Keywords       string         `json:"keywords,omitempty"`
	Fields         map[string]any `json:"fields,omitempty"`

	ExcludeFromBOM   bool `json:"exclude_from_bom"`
	ExcludeFromBoard bool `json:"exclude_from_board"`
	ExcludeFromSim   bool `json:"exclude_from_sim"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Store is the record-fetch and persistence boundary. Listing calls return
// active rows only, in display order; the export path never touches the
// store itself.
type Store interface {
	Categories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error

	Parts(ctx context.Context) ([]Part, error)
	PartsByCategory(ctx context.Context, categoryID string) ([]Part, error)
	Part(ctx context.Context, id int64) (*Part, error)
	CreatePart(ctx context.Context, p *Part) error
	UpdatePart(ctx context.Context, p *Part) error
	DeletePart(ctx context.Context, id int64) error
}
