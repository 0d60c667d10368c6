// Package orderedmap provides a map that remembers key insertion order.
package orderedmap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is a string-keyed map that iterates and encodes keys in first-insertion order.
// The zero value is ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (m *Map[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m *Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *Map[V]) Each(fn func(key string, v V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
// A nil or empty map encodes as {}.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, k := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, fmt.Errorf("encode key %q: %w", k, err)
			}
			vb, err := json.Marshal(m.values[k])
			if err != nil {
				return nil, fmt.Errorf("encode value for %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Group appends v to the list stored under key, creating the list on first use.
func Group[V any](m *Map[[]V], key string, v V) {
	list, _ := m.Get(key)
	m.Set(key, append(list, v))
}
