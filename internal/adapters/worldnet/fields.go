package worldnet

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is an ordered record of gateway field names to string values.
// Insertion order is preserved and used as the XML element order; hashing
// follows the operation's HashKeys instead. A name is either present with a
// value (possibly empty) or absent.
type Fields struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewFields creates an empty record
func NewFields() *Fields {
	return &Fields{m: orderedmap.New[string, string]()}
}

// Set stores value under name, keeping the original position if name is already present
func (f *Fields) Set(name, value string) {
	f.m.Set(name, value)
}

// SetOptional stores *value under name only when value is non-nil
func (f *Fields) SetOptional(name string, value *string) {
	if value != nil {
		f.Set(name, *value)
	}
}

// SetNonEmpty stores value under name only when it is not empty
func (f *Fields) SetNonEmpty(name string, value string) {
	if value != "" {
		f.Set(name, value)
	}
}

// Get returns the value of name and whether it is present
func (f *Fields) Get(name string) (string, bool) {
	return f.m.Get(name)
}

// Value returns the value of name, or "" when absent
func (f *Fields) Value(name string) string {
	v, _ := f.m.Get(name)
	return v
}

// Has reports whether name is present
func (f *Fields) Has(name string) bool {
	_, ok := f.m.Get(name)
	return ok
}

// Names returns the field names in insertion order
func (f *Fields) Names() []string {
	out := make([]string, 0, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of present fields
func (f *Fields) Len() int {
	return f.m.Len()
}

// Map returns a copy of the record as a plain map
func (f *Fields) Map() map[string]string {
	out := make(map[string]string, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Clone returns an independent copy of the record
func (f *Fields) Clone() *Fields {
	c := NewFields()
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		c.m.Set(pair.Key, pair.Value)
	}
	return c
}

// Merge returns a copy of f overlaid with other. Values from other replace
// values of f with the identical name; names are case-sensitive.
func (f *Fields) Merge(other *Fields) *Fields {
	merged := f.Clone()
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		merged.m.Set(pair.Key, pair.Value)
	}
	return merged
}
