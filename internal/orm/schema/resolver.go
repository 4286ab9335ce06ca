package schema

import (
	"regexp"

	utilstrings "github.com/conduit-lang/ormkey/internal/util/strings"
)

// DefaultPrimaryKey is the key name used when no naming policy applies
const DefaultPrimaryKey = "id"

var keyNamePattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

// ResolveDefault computes the convention-based primary key name for a
// hierarchy rooted at baseTypeName.
//
// A name produced by the inflector that is empty or not a plain column
// identifier is reported as a *ConfigurationError.
func ResolveDefault(inflector utilstrings.Inflector, baseTypeName string, policy NamingPolicy) (string, error) {
	var key string
	switch policy {
	case PolicyNone:
		return DefaultPrimaryKey, nil
	case PolicyTableName:
		key = inflector.ForeignKey(baseTypeName, false)
	case PolicyTableNameWithUnderscore:
		key = inflector.ForeignKey(baseTypeName, true)
	default:
		return "", &ConfigurationError{BaseName: baseTypeName, Policy: policy, Err: ErrUnknownPolicy}
	}

	if !keyNamePattern.MatchString(key) {
		return "", &ConfigurationError{BaseName: baseTypeName, Policy: policy, Name: key, Err: ErrInvalidKeyName}
	}
	return key, nil
}
