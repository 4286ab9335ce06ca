package record

import (
	"github.com/conduit-lang/ormkey/internal/orm/schema"
)

// Entity binds a record to its entity type. Type-level primary key
// configuration and record-level key exposure are both delegated
// explicitly.
type Entity struct {
	typ *schema.EntityType
	rec *Record
}

// NewEntity creates an Entity for rec of type typ
func NewEntity(typ *schema.EntityType, rec *Record) *Entity {
	return &Entity{typ: typ, rec: rec}
}

// Type returns the entity type
func (e *Entity) Type() *schema.EntityType {
	return e.typ
}

// Record returns the underlying record
func (e *Entity) Record() *Record {
	return e.rec
}

// PrimaryKeyName delegates to the entity type
func (e *Entity) PrimaryKeyName() (string, error) {
	return e.typ.PrimaryKeyName()
}

// SetPrimaryKeyOverride delegates to the entity type; it affects every
// record of the type.
func (e *Entity) SetPrimaryKeyOverride(value *string, fn schema.ComputeFunc) {
	e.typ.SetPrimaryKeyOverride(value, fn)
}

// ResetPrimaryKeyName delegates to the entity type
func (e *Entity) ResetPrimaryKeyName() (string, error) {
	return e.typ.ResetPrimaryKeyName()
}

// ToKey implements KeyExposing
func (e *Entity) ToKey() ([]interface{}, error) {
	return ToKey(e.rec, e.typ)
}

// ID returns the value stored under the type's primary key column,
// whether or not the record has been saved.
func (e *Entity) ID() (interface{}, error) {
	name, err := e.typ.PrimaryKeyName()
	if err != nil {
		return nil, err
	}
	v, _ := e.rec.Get(name)
	return v, nil
}

// SetID stores value under the type's primary key column
func (e *Entity) SetID(value interface{}) error {
	name, err := e.typ.PrimaryKeyName()
	if err != nil {
		return err
	}
	e.rec.Set(name, value)
	return nil
}

var (
	_ schema.PrimaryKeyConfigurable = (*Entity)(nil)
	_ KeyExposing                   = (*Entity)(nil)
)
