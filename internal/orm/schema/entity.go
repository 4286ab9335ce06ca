package schema

import (
	"sync"

	utilstrings "github.com/conduit-lang/ormkey/internal/util/strings"
)

// PrimaryKeyConfigurable is the type-level primary key capability
type PrimaryKeyConfigurable interface {
	PrimaryKeyName() (string, error)
	SetPrimaryKeyOverride(value *string, fn ComputeFunc)
	ResetPrimaryKeyName() (string, error)
}

// KeyName returns a pointer to name, for use as a constant override
func KeyName(name string) *string {
	return &name
}

// Hierarchy is the single-table-inheritance root shared by every type
// descending from it. The naming policy belongs to the hierarchy.
type Hierarchy struct {
	BaseName string

	mu     sync.RWMutex
	policy NamingPolicy
}

// NewHierarchy creates a hierarchy rooted at baseName
func NewHierarchy(baseName string, policy NamingPolicy) *Hierarchy {
	return &Hierarchy{BaseName: baseName, policy: policy}
}

// Policy returns the hierarchy's naming policy
func (h *Hierarchy) Policy() NamingPolicy {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.policy
}

// SetPolicy changes the naming policy for every type in the hierarchy
func (h *Hierarchy) SetPolicy(policy NamingPolicy) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.policy = policy
}

// EntityType holds the primary key metadata of one persisted type
type EntityType struct {
	Name      string
	TableName string

	hierarchy *Hierarchy
	inflector utilstrings.Inflector
	slot      *KeyResolutionSlot
}

// NewEntityType creates an entity type belonging to hierarchy h. A nil
// inflector selects utilstrings.DefaultInflector.
func NewEntityType(name string, h *Hierarchy, inflector utilstrings.Inflector) *EntityType {
	if inflector == nil {
		inflector = utilstrings.DefaultInflector{}
	}
	t := &EntityType{
		Name:      name,
		TableName: inflector.Tableize(h.BaseName),
		hierarchy: h,
		inflector: inflector,
	}
	t.slot = NewKeyResolutionSlot(name, t.conventionKey)
	return t
}

func (t *EntityType) conventionKey() (string, error) {
	return ResolveDefault(t.inflector, t.hierarchy.BaseName, t.hierarchy.Policy())
}

// BaseTypeName returns the name of the hierarchy root
func (t *EntityType) BaseTypeName() string {
	return t.hierarchy.BaseName
}

// Hierarchy returns the hierarchy the type belongs to
func (t *EntityType) Hierarchy() *Hierarchy {
	return t.hierarchy
}

// Policy returns the naming policy in effect for the type
func (t *EntityType) Policy() NamingPolicy {
	return t.hierarchy.Policy()
}

// IsBaseType reports whether the type is the root of its hierarchy
func (t *EntityType) IsBaseType() bool {
	return t.Name == t.hierarchy.BaseName
}

// Slot returns the type's resolution slot
func (t *EntityType) Slot() *KeyResolutionSlot {
	return t.slot
}

// PrimaryKeyName returns the column that identifies records of this type
func (t *EntityType) PrimaryKeyName() (string, error) {
	return t.slot.Get()
}

// SetPrimaryKeyOverride sets a constant name, or a function computing the
// name when value is nil. Passing nil for both restores the convention.
//
//	project.SetPrimaryKeyOverride(schema.KeyName("sysid"), nil)
func (t *EntityType) SetPrimaryKeyOverride(value *string, fn ComputeFunc) {
	t.slot.SetOverride(value, fn)
}

// ResetPrimaryKeyName drops any override, including one set explicitly,
// and returns the name derived from the naming policy.
func (t *EntityType) ResetPrimaryKeyName() (string, error) {
	return t.slot.Reset()
}

var _ PrimaryKeyConfigurable = (*EntityType)(nil)
