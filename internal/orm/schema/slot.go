package schema

import (
	"sync/atomic"
)

// ResolutionKind identifies which variant a KeyResolutionSlot holds
type ResolutionKind int

const (
	// ResolutionConvention derives the key from the naming policy
	ResolutionConvention ResolutionKind = iota
	// ResolutionConstant returns a fixed key name
	ResolutionConstant
	// ResolutionComputed calls a function on every read
	ResolutionComputed
)

// String returns the string representation of the resolution kind
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionConvention:
		return "convention"
	case ResolutionConstant:
		return "constant"
	case ResolutionComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// ComputeFunc produces a primary key name on demand
type ComputeFunc func() (string, error)

// resolution is immutable once stored in a slot
type resolution struct {
	kind ResolutionKind
	name string
	fn   ComputeFunc
}

var conventionResolution = &resolution{kind: ResolutionConvention}

// KeyResolutionSlot holds how an entity type resolves its primary key name.
//
// The active variant is swapped atomically, so concurrent readers always see
// either the previous or the new resolution in full.
type KeyResolutionSlot struct {
	owner      string
	convention ComputeFunc
	current    atomic.Pointer[resolution]
}

// NewKeyResolutionSlot creates a slot in the Convention state. convention is
// called whenever the slot holds no override.
func NewKeyResolutionSlot(owner string, convention ComputeFunc) *KeyResolutionSlot {
	s := &KeyResolutionSlot{
		owner:      owner,
		convention: convention,
	}
	s.current.Store(conventionResolution)
	return s
}

// Get returns the current primary key name. Computed overrides are invoked
// on every call; their errors are wrapped in *ComputeFunctionError.
func (s *KeyResolutionSlot) Get() (string, error) {
	r := s.current.Load()
	switch r.kind {
	case ResolutionConstant:
		return r.name, nil
	case ResolutionComputed:
		name, err := r.fn()
		if err != nil {
			return "", &ComputeFunctionError{Type: s.owner, Err: err}
		}
		return name, nil
	default:
		return s.convention()
	}
}

// SetOverride replaces the resolution. A non-nil value wins over fn; with
// both nil the slot returns to the naming convention.
func (s *KeyResolutionSlot) SetOverride(value *string, fn ComputeFunc) {
	switch {
	case value != nil:
		s.current.Store(&resolution{kind: ResolutionConstant, name: *value})
	case fn != nil:
		s.current.Store(&resolution{kind: ResolutionComputed, fn: fn})
	default:
		s.current.Store(conventionResolution)
	}
}

// Reset discards any override and returns the convention-based name.
func (s *KeyResolutionSlot) Reset() (string, error) {
	s.SetOverride(nil, nil)
	return s.Get()
}

// Kind reports the active variant
func (s *KeyResolutionSlot) Kind() ResolutionKind {
	return s.current.Load().kind
}
