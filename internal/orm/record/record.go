// Package record holds record instances and exposes their primary key
// values through the key name resolved by their entity type.
package record

import (
	"sync"
)

// Record is a single row of an entity type
type Record struct {
	mu         sync.RWMutex
	persisted  bool
	attributes map[string]interface{}
}

// New creates an unsaved record with a copy of attrs
func New(attrs map[string]interface{}) *Record {
	return &Record{attributes: deepCopyMap(attrs)}
}

// Load creates a record that already exists in storage
func Load(attrs map[string]interface{}) *Record {
	r := New(attrs)
	r.persisted = true
	return r
}

// IsPersisted reports whether the record has been written to storage
func (r *Record) IsPersisted() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.persisted
}

// IsNew is the inverse of IsPersisted
func (r *Record) IsNew() bool {
	return !r.IsPersisted()
}

// MarkPersisted flags the record as stored. It is called once by the
// insert path; there is no way back.
func (r *Record) MarkPersisted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persisted = true
}

// Get returns an attribute value and whether it is set
func (r *Record) Get(field string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attributes[field]
	return v, ok
}

// Set assigns an attribute value
func (r *Record) Set(field string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attributes[field] = deepCopyValue(value)
}

// Attributes returns a copy of all attribute values
func (r *Record) Attributes() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return deepCopyMap(r.attributes)
}

// deepCopyMap creates a deep copy of a map
func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return make(map[string]interface{})
	}
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = deepCopyValue(v)
	}
	return result
}

// deepCopyValue copies nested attribute slices and maps. Other values,
// including structs and pointers, are returned as-is.
func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case map[string]interface{}:
		return deepCopyMap(val)
	default:
		return v
	}
}
