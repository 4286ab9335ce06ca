package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/conduit-lang/ormkey/internal/cli/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [types...]",
		Short: "Print the primary key name of entity types",
		Long: `Print the primary key name each configured entity type resolves to.

Without arguments every type in ormkey.yml is listed.

Examples:
  ormkey resolve                # All configured types
  ormkey resolve Project Firm   # Selected types`,
		RunE: runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := loadRegistry()
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = reg.List()
	}
	if len(names) == 0 {
		return fmt.Errorf("no entity types configured")
	}

	headerColor := color.New(color.FgCyan, color.Bold)
	keyColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed, color.Bold)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	headerColor.Fprintln(w, "TYPE\tBASE\tTABLE\tPOLICY\tRESOLUTION\tPRIMARY KEY")

	var warnings []ui.ErrorOptions
	for _, name := range names {
		t, ok := reg.Get(name)
		if !ok {
			return unknownTypeError(cmd.ErrOrStderr(), reg, name)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t", t.Name, t.BaseTypeName(), t.TableName, t.Policy(), t.Slot().Kind())
		key, err := reg.PrimaryKeyName(name)
		if err != nil {
			errorColor.Fprintln(w, "error")
			warnings = append(warnings, ui.ResolutionWarning(name, err, color.NoColor))
			continue
		}
		keyColor.Fprintln(w, key)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, warning := range warnings {
		ui.WriteError(cmd.ErrOrStderr(), warning)
	}
	if len(warnings) > 0 {
		return fmt.Errorf("%d entity type(s) failed to resolve", len(warnings))
	}
	return nil
}
