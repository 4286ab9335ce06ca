package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ ENTITY TYPE NOT FOUND: Cannot find entity type 'Projct'.
//
//	   Did you mean: Project?
//
//	   → See all types: ormkey resolve
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor := color.New(color.FgRed, color.Bold)
	symbol := "❌"
	if opts.Level == ErrorLevelWarning {
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "⚠️"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if opts.NoColor {
		headerColor.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// TypeNotFoundError describes an entity type missing from the configuration
func TypeNotFoundError(typeName string, suggestions []string, noColor bool) ErrorOptions {
	return ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "ENTITY TYPE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find entity type '%s'.", typeName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all types: ormkey resolve",
			"Declare it: add an entry under entities in ormkey.yml",
		},
		NoColor: noColor,
	}
}

// ResolutionWarning describes an entity type whose key could not be resolved
func ResolutionWarning(typeName string, err error, noColor bool) ErrorOptions {
	return ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: fmt.Sprintf("%s: %v", typeName, err),
		NoColor: noColor,
	}
}
