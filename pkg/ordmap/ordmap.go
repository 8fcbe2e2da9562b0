// Package ordmap provides an insertion-ordered map.
//
// Every map that influences the order of generated dictionary records must
// iterate deterministically, so the builder uses Map instead of the built-in
// map wherever order leaks into output.
package ordmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Map is a map that remembers the order in which keys were first inserted.
// The zero value is an empty map ready to use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty map with room for n keys.
func New[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Set stores v under k. A new key is appended at the end; an existing key
// keeps its position.
func (m *Map[K, V]) Set(k K, v V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// GetOrInsert returns the value under k, storing the result of create first
// if k is absent. The second result reports whether the key was created.
func (m *Map[K, V]) GetOrInsert(k K, create func() V) (V, bool) {
	if v, ok := m.Get(k); ok {
		return v, false
	}
	v := create()
	m.Set(k, v)
	return v, true
}

// Retain keeps only the entries for which keep returns true.
func (m *Map[K, V]) Retain(keep func(K, V) bool) {
	if m == nil {
		return
	}
	kept := m.keys[:0]
	for _, k := range m.keys {
		if keep(k, m.values[k]) {
			kept = append(kept, k)
			continue
		}
		delete(m.values, k)
	}
	m.keys = kept
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return m.keys
}

// All iterates over key/value pairs in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
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

// MarshalJSON encodes the map as a JSON object whose members follow the
// insertion order.
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(keyString(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("ordmap: marshal value for %v: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m Map[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var kn, vn yaml.Node
		if err := kn.Encode(keyString(k)); err != nil {
			return nil, err
		}
		if err := vn.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("ordmap: encode value for %v: %w", k, err)
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

func keyString[K comparable](k K) string {
	if s, ok := any(k).(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// Set is an insertion-ordered set.
type Set[T comparable] struct {
	m Map[T, struct{}]
}

// NewSet returns a set holding items in order, without duplicates.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	if s.m.Has(v) {
		return false
	}
	s.m.Set(v, struct{}{})
	return true
}

// Has reports whether v is in the set.
func (s *Set[T]) Has(v T) bool { return s.m.Has(v) }

// Len returns the number of items.
func (s *Set[T]) Len() int { return s.m.Len() }

// Items returns the items in insertion order.
func (s *Set[T]) Items() []T { return s.m.Keys() }

// Intersect returns the items of s that are also in other, in the order of s.
func (s *Set[T]) Intersect(other *Set[T]) *Set[T] {
	out := &Set[T]{}
	for _, v := range s.Items() {
		if other.Has(v) {
			out.Add(v)
		}
	}
	return out
}
