package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conduit-lang/ormkey/internal/orm/record"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	keyAttrs     []string
	keyUUIDs     []string
	keyPersisted bool
)

// NewKeyCommand creates the key command
func NewKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key <type>",
		Short: "Show the key a record of a type exposes",
		Long: `Build a record from --attr assignments and print the key it exposes.

Unsaved records have no key and print "nil". Integer values are parsed as
integers; everything else is kept as a string.

Examples:
  ormkey key Project --attr id=7 --persisted
  ormkey key Project --uuid project_id --persisted
  ormkey key Project --attr title=Draft`,
		Args: cobra.ExactArgs(1),
		RunE: runKey,
	}

	cmd.Flags().StringArrayVarP(&keyAttrs, "attr", "a", nil, "Attribute assignment field=value (repeatable)")
	cmd.Flags().StringArrayVar(&keyUUIDs, "uuid", nil, "Assign a random UUID to field (repeatable)")
	cmd.Flags().BoolVarP(&keyPersisted, "persisted", "p", false, "Treat the record as already saved")

	return cmd
}

func runKey(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := loadRegistry()
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return err
	}

	typeName := args[0]
	t, ok := reg.Get(typeName)
	if !ok {
		return unknownTypeError(cmd.ErrOrStderr(), reg, typeName)
	}

	attrs, err := parseAttributes(keyAttrs)
	if err != nil {
		return err
	}
	for _, field := range keyUUIDs {
		attrs[field] = uuid.New().String()
	}

	rec := record.New(attrs)
	if keyPersisted {
		rec.MarkPersisted()
	}

	key, err := record.NewEntity(t, rec).ToKey()
	if err != nil {
		return fmt.Errorf("failed to compute key: %w", err)
	}

	out := cmd.OutOrStdout()
	if key == nil {
		color.New(color.FgYellow).Fprintln(out, "nil")
		return nil
	}
	color.New(color.FgGreen).Fprintln(out, formatKey(key))
	return nil
}

// parseAttributes turns field=value pairs into record attributes
func parseAttributes(pairs []string) (map[string]interface{}, error) {
	attrs := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid attribute %q: expected field=value", pair)
		}
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			attrs[field] = n
			continue
		}
		attrs[field] = value
	}
	return attrs, nil
}

func formatKey(key []interface{}) string {
	parts := make([]string, len(key))
	for i, v := range key {
		if v == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
