package kicad

import "strings"

// Attribute binds one attribute name to its FieldSpec. Declaration order is
// the column order in the synthesized table.
type Attribute struct {
	Name string
	Spec FieldSpec
}

// Definition describes one part-family table: its name, the names of the
// three identity columns KiCad needs (key/symbol/footprint) and the declared
// attributes. Vars holds the bindings for computed expressions.
type Definition struct {
	Name      string
	Pretty    string
	Key       string
	Symbol    string
	Footprint string
	Attrs     []Attribute
	Vars      map[string]string
}

type Option func(*Definition)

// WithPretty sets the human-facing library name (defaults to the table name).
func WithPretty(name string) Option {
	return func(d *Definition) { d.Pretty = name }
}

// WithKey overrides the key column name.
func WithKey(name string) Option {
	return func(d *Definition) { d.Key = name }
}

// WithIdentity overrides all three identity column names at once.
func WithIdentity(key, symbol, footprint string) Option {
	return func(d *Definition) {
		d.Key, d.Symbol, d.Footprint = key, symbol, footprint
	}
}

// WithVars binds computed-expression variables. The map is copied so that
// later mutation by the caller, or by another table sharing the same source
// map, never leaks into this definition.
func WithVars(vars map[string]string) Option {
	return func(d *Definition) {
		d.Vars = make(map[string]string, len(vars))
		for k, v := range vars {
			d.Vars[k] = v
		}
	}
}

// NewDefinition creates a table definition. The table name is lower-cased,
// identity columns default to "key", "symbol" and "footprint".
func NewDefinition(name string, opts ...Option) *Definition {
	d := &Definition{
		Name:      strings.ToLower(name),
		Key:       "key",
		Symbol:    "symbol",
		Footprint: "footprint",
		Vars:      map[string]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.Pretty == "" {
		d.Pretty = d.Name
	}
	return d
}

// Add appends an attribute. Returns d so family definitions read as a chain.
func (d *Definition) Add(attr string, spec FieldSpec) *Definition {
	d.Attrs = append(d.Attrs, Attribute{Name: attr, Spec: spec})
	return d
}

// declares reports whether an attribute with the given name was added.
func (d *Definition) declares(name string) bool {
	for _, a := range d.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}
