package strings

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Inflector derives database identifiers from type names.
type Inflector interface {
	// ForeignKey returns the column name another table would use to
	// reference rows of the named type. With underscore set the suffix
	// is "_id", otherwise "id".
	ForeignKey(name string, underscore bool) string

	// Tableize returns the plural table name for a type name.
	Tableize(name string) string
}

// DefaultInflector implements Inflector with English rules.
type DefaultInflector struct{}

// ForeignKey returns Underscore(Demodulize(name)) followed by "_id" or "id".
// A name with no stem after its namespace ("Admin::") yields "".
//
//	ForeignKey("Project", true)        // "project_id"
//	ForeignKey("Project", false)       // "projectid"
//	ForeignKey("Admin::Project", true) // "project_id"
func (DefaultInflector) ForeignKey(name string, underscore bool) string {
	base := Underscore(Demodulize(name))
	if base == "" {
		return ""
	}
	if underscore {
		return base + "_id"
	}
	return base + "id"
}

// Tableize returns the pluralized, underscored form of a type name.
func (DefaultInflector) Tableize(name string) string {
	base := Underscore(Demodulize(name))
	if base == "" {
		return ""
	}
	return inflection.Plural(base)
}

// Underscore is ToSnakeCase with "::" namespace separators turned into "/".
func Underscore(s string) string {
	return ToSnakeCase(strings.ReplaceAll(s, "::", "/"))
}
