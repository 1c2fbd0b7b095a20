package lang

import (
	"iter"
	"slices"
)

// Mapping is the ordered result of interpreting a source: one entry per
// assigned name. Reassigning a name replaces its value but keeps the
// position of its first assignment.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores value under name.
func (m *Mapping) Set(name string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}

	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}

	m.values[name] = value
}

// Get returns the value stored under name.
func (m *Mapping) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	v, ok := m.values[name]

	return v, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the names in first-assignment order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// All yields each entry in first-assignment order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Native converts the mapping to a map of plain Go values.
func (m *Mapping) Native() map[string]any {
	out := make(map[string]any, m.Len())
	for k, v := range m.All() {
		out[k] = v.Native()
	}

	return out
}

// Clone returns a deep copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	c := &Mapping{
		keys:   m.Keys(),
		values: make(map[string]Value, m.Len()),
	}

	for k, v := range m.All() {
		c.values[k] = v.Clone()
	}

	return c
}

// Equal reports whether m and o hold equal entries in the same order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}

	if m.Len() == 0 {
		return true
	}

	for i, k := range m.keys {
		if o.keys[i] != k || !m.values[k].Equal(o.values[k]) {
			return false
		}
	}

	return true
}
