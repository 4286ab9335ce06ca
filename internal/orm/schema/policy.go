package schema

import (
	"fmt"
	"strings"
)

// NamingPolicy selects how a hierarchy's default primary key name is
// derived from its base type name.
type NamingPolicy int

const (
	// PolicyNone always uses "id"
	PolicyNone NamingPolicy = iota
	// PolicyTableName appends "id" to the underscored base name ("projectid")
	PolicyTableName
	// PolicyTableNameWithUnderscore appends "_id" to the underscored base name ("project_id")
	PolicyTableNameWithUnderscore
)

// String returns the string representation of the naming policy
func (p NamingPolicy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyTableName:
		return "table_name"
	case PolicyTableNameWithUnderscore:
		return "table_name_with_underscore"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the defined policies
func (p NamingPolicy) Valid() bool {
	return p >= PolicyNone && p <= PolicyTableNameWithUnderscore
}

// ParseNamingPolicy converts a string to a NamingPolicy.
// Matching ignores case and treats '-' as '_'; the empty string means none.
func ParseNamingPolicy(s string) (NamingPolicy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "none":
		return PolicyNone, nil
	case "table_name":
		return PolicyTableName, nil
	case "table_name_with_underscore":
		return PolicyTableNameWithUnderscore, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownPolicy, s)
	}
}
