// Package schema tracks entity types and resolves the primary key name each
// of them uses: a naming policy per inheritance hierarchy, plus an
// overridable resolution slot per type.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	utilstrings "github.com/conduit-lang/ormkey/internal/util/strings"
	"go.uber.org/zap"
)

// Registry manages all entity types in the application
type Registry struct {
	types     map[string]*EntityType
	inflector utilstrings.Inflector
	logger    *zap.Logger
	mu        sync.RWMutex
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the logger used for configuration events
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInflector replaces the inflector used for convention key names
func WithInflector(inflector utilstrings.Inflector) RegistryOption {
	return func(r *Registry) {
		if inflector != nil {
			r.inflector = inflector
		}
	}
}

// NewRegistry creates a new entity type registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:     make(map[string]*EntityType),
		inflector: utilstrings.DefaultInflector{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TypeOption configures a root entity type at definition time
type TypeOption func(*EntityType)

// WithPolicy sets the naming policy of the new hierarchy
func WithPolicy(policy NamingPolicy) TypeOption {
	return func(t *EntityType) {
		t.hierarchy.SetPolicy(policy)
	}
}

// WithTableName overrides the pluralized table name
func WithTableName(name string) TypeOption {
	return func(t *EntityType) {
		t.TableName = name
	}
}

// Define registers a root entity type, starting a new hierarchy
func (r *Registry) Define(name string, opts ...TypeOption) (*EntityType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTypeName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}

	t := NewEntityType(name, NewHierarchy(name, PolicyNone), r.inflector)
	for _, opt := range opts {
		opt(t)
	}
	if p := t.Policy(); !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}

	r.types[name] = t
	r.logger.Debug("defined entity type",
		zap.String("type", name),
		zap.String("table", t.TableName),
		zap.Stringer("policy", t.Policy()))
	return t, nil
}

// DefineSubtype registers a type that inherits from parent. The subtype
// shares the parent's hierarchy, table and naming policy.
func (r *Registry) DefineSubtype(name, parent string) (*EntityType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTypeName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	p, exists := r.types[parent]
	if !exists {
		return nil, fmt.Errorf("parent of %s: %w: %s", name, ErrUnknownType, parent)
	}

	t := NewEntityType(name, p.hierarchy, r.inflector)
	t.TableName = p.TableName

	r.types[name] = t
	r.logger.Debug("defined entity subtype",
		zap.String("type", name),
		zap.String("parent", parent),
		zap.String("base", t.BaseTypeName()))
	return t, nil
}

// Get retrieves an entity type by name
func (r *Registry) Get(name string) (*EntityType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.types[name]
	return t, exists
}

func (r *Registry) lookup(name string) (*EntityType, error) {
	t, exists := r.Get(name)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}

// List returns the names of all entity types in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the sorted names of every type sharing name's hierarchy
func (r *Registry) Members(name string) ([]string, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for n, other := range r.types {
		if other.hierarchy == t.hierarchy {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists checks if an entity type is defined
func (r *Registry) Exists(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// Count returns the number of defined entity types
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.types)
}

// Clear removes all entity types (useful for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = make(map[string]*EntityType)
}

// PrimaryKeyName returns the primary key name of the named type
func (r *Registry) PrimaryKeyName(name string) (string, error) {
	t, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	key, err := t.PrimaryKeyName()
	if err != nil {
		r.logger.Warn("primary key resolution failed",
			zap.String("type", name),
			zap.Stringer("resolution", t.slot.Kind()),
			zap.Error(err))
		return "", err
	}
	return key, nil
}

// SetPrimaryKeyOverride replaces how the named type resolves its key
func (r *Registry) SetPrimaryKeyOverride(name string, value *string, fn ComputeFunc) error {
	t, err := r.lookup(name)
	if err != nil {
		return err
	}

	t.SetPrimaryKeyOverride(value, fn)

	fields := []zap.Field{zap.String("type", name), zap.Stringer("resolution", t.slot.Kind())}
	if value != nil {
		fields = append(fields, zap.String("key", *value))
	}
	r.logger.Debug("primary key override set", fields...)
	return nil
}

// ResetPrimaryKeyName discards any override on the named type and returns
// the convention-based key
func (r *Registry) ResetPrimaryKeyName(name string) (string, error) {
	t, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	key, err := t.ResetPrimaryKeyName()
	if err != nil {
		r.logger.Warn("primary key reset failed", zap.String("type", name), zap.Error(err))
		return "", err
	}
	r.logger.Debug("primary key reset", zap.String("type", name), zap.String("key", key))
	return key, nil
}

// ConfigurePrimaryKeyPolicy sets the naming policy of the hierarchy that
// the named type belongs to
func (r *Registry) ConfigurePrimaryKeyPolicy(name string, policy NamingPolicy) error {
	if !policy.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
	}

	t, err := r.lookup(name)
	if err != nil {
		return err
	}

	t.hierarchy.SetPolicy(policy)
	r.logger.Debug("primary key policy configured",
		zap.String("type", name),
		zap.String("base", t.BaseTypeName()),
		zap.Stringer("policy", policy))
	return nil
}

// RegistryStats summarizes how the defined types resolve their keys
type RegistryStats struct {
	TotalTypes       int
	Hierarchies      int
	ConstantKeys     int
	ComputedKeys     int
	ConventionalKeys int
}

// GetStats returns statistics about the registry
func (r *Registry) GetStats() *RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &RegistryStats{TotalTypes: len(r.types)}
	roots := make(map[*Hierarchy]struct{})
	for _, t := range r.types {
		roots[t.hierarchy] = struct{}{}
		switch t.slot.Kind() {
		case ResolutionConstant:
			stats.ConstantKeys++
		case ResolutionComputed:
			stats.ComputedKeys++
		default:
			stats.ConventionalKeys++
		}
	}
	stats.Hierarchies = len(roots)
	return stats
}
