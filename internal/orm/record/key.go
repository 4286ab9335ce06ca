package record

import (
	"github.com/conduit-lang/ormkey/internal/orm/schema"
)

// KeyNameSource resolves the primary key column for a record's type.
// *schema.EntityType implements it.
type KeyNameSource interface {
	PrimaryKeyName() (string, error)
}

// KeyNameFunc adapts a function to KeyNameSource
type KeyNameFunc func() (string, error)

// PrimaryKeyName implements KeyNameSource
func (f KeyNameFunc) PrimaryKeyName() (string, error) {
	return f()
}

// KeyExposing is implemented by every persistable value that can act as
// a lookup key. ToKey returns nil for records that were never saved.
type KeyExposing interface {
	ToKey() ([]interface{}, error)
}

// ToKey returns the record's primary key value wrapped in a one-element
// slice, or nil if the record is new. A nil result means "no key" and is
// distinct from an empty slice, which ToKey never returns.
//
// The key name is resolved on each call, so overrides set on the type
// after the record was loaded are honored.
func ToKey(r *Record, source KeyNameSource) ([]interface{}, error) {
	if !r.IsPersisted() {
		return nil, nil
	}

	name, err := source.PrimaryKeyName()
	if err != nil {
		return nil, err
	}

	value, _ := r.Get(name)
	return []interface{}{value}, nil
}

// TypeKeyNames looks up primary key names by entity type name.
// *schema.Registry implements it.
type TypeKeyNames interface {
	PrimaryKeyName(typeName string) (string, error)
}

// ToKeyFor is ToKey with the key name looked up through a registry
func ToKeyFor(names TypeKeyNames, typeName string, r *Record) ([]interface{}, error) {
	return ToKey(r, KeyNameFunc(func() (string, error) {
		return names.PrimaryKeyName(typeName)
	}))
}

var (
	_ KeyNameSource = (*schema.EntityType)(nil)
	_ TypeKeyNames  = (*schema.Registry)(nil)
)
