package shaping

import (
	"bytes"
	"encoding/json"
)

// Resource is a shaped object: string keys mapped to values, iterated and
// serialized in insertion order.
type Resource struct {
	keys   []string
	values map[string]any
}

// NewResource returns an empty resource with room for n keys.
func NewResource(n int) *Resource {
	return &Resource{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (r *Resource) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Resource) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Resource) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r *Resource) Len() int { return len(r.keys) }

// MarshalJSON writes the object with keys in insertion order.
func (r *Resource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
