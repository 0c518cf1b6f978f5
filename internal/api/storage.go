package api

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"partsdb/internal/parts"
)

// MemoryStore is the in-memory parts.Store, used when no database URL is
// configured and throughout the handler tests.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]*parts.Category
	parts      map[int64]*parts.Part
	seq        int64
	entropy    *rand.Rand
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[string]*parts.Category),
		parts:      make(map[int64]*parts.Part),
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *MemoryStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *MemoryStore) Categories(_ context.Context) ([]parts.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]parts.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, c *parts.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.newID()
	}
	c.IsActive = true
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *MemoryStore) list(filter func(*parts.Part) bool) []parts.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]parts.Part, 0, len(s.parts))
	for _, p := range s.parts {
		if p.IsActive && filter(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *MemoryStore) Parts(_ context.Context) ([]parts.Part, error) {
	return s.list(func(*parts.Part) bool { return true }), nil
}

func (s *MemoryStore) PartsByCategory(_ context.Context, categoryID string) ([]parts.Part, error) {
	return s.list(func(p *parts.Part) bool { return p.CategoryID == categoryID }), nil
}

func (s *MemoryStore) Part(_ context.Context, id int64) (*parts.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.parts[id]
	if p == nil || !p.IsActive {
		return nil, parts.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) CreatePart(_ context.Context, p *parts.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p.SequenceNumber = s.seq
	p.IsActive = true
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.parts[p.SequenceNumber] = &cp
	return nil
}

func (s *MemoryStore) UpdatePart(_ context.Context, p *parts.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.parts[p.SequenceNumber]
	if cur == nil || !cur.IsActive {
		return parts.ErrNotFound
	}
	// name is immutable once assigned, same rule the database trigger enforces
	p.Name = cur.Name
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.IsActive = true
	cp := *p
	s.parts[p.SequenceNumber] = &cp
	return nil
}

func (s *MemoryStore) DeletePart(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.parts[id]
	if cur == nil || !cur.IsActive {
		return parts.ErrNotFound
	}
	cur.IsActive = false
	return nil
}

// Seed loads the demo data set: one category and one capacitor with a mix
// of scalar and structured extra fields.
func (s *MemoryStore) Seed(ctx context.Context) error {
	cat := parts.Category{DisplayName: "Capacitors (0805)"}
	if err := s.CreateCategory(ctx, &cat); err != nil {
		return err
	}
	p := parts.Part{
		Name:        "10uF_X5R_16V-00001",
		CategoryID:  cat.ID,
		Value:       "10uF",
		Reference:   "C?",
		Footprint:   "Capacitor_SMD:C_0805_2012Metric",
		SymbolID:    "Device:C",
		Description: "10uF 16V X5R 0805",
		Datasheet:   "https://search.murata.co.jp/Ceramy/image/img/A01X/G101/ENG/GRM21BR61C106KE15-01.pdf",
		Keywords:    "capacitor 10uF X5R 16V",
		Fields: map[string]any{
			"Manufacturer": "Murata",
			"MPN":          "GRM21BR61C106KE15L",
			"LCSC":         "C15850",
			"Voltage":      map[string]any{"value": "16V", "visible": true},
			"Dielectric":   map[string]any{"value": "X5R", "visible": true},
			"Tolerance":    "±10%",
			"ESR":          map[string]any{"value": "—", "visible": false},
		},
	}
	return s.CreatePart(ctx, &p)
}

var _ parts.Store = (*MemoryStore)(nil)

// keyword search over name/keywords, used by the admin list endpoint
func matchQuery(p *parts.Part, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Keywords), q)
}
