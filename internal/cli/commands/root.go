package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/conduit-lang/ormkey/internal/cli/config"
	"github.com/conduit-lang/ormkey/internal/cli/ui"
	"github.com/conduit-lang/ormkey/internal/orm/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ormkey",
		Short: "Inspect primary key naming for ORM entity types",
		Long: color.CyanString(`ormkey - primary key names for ORM entity types

Reads entity types from ormkey.yml and reports the primary key column each
one resolves to under its hierarchy's naming policy:

  none                        -> id
  table_name                  -> projectid
  table_name_with_underscore  -> project_id`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to ormkey.yml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log registry configuration events")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewKeyCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the ormkey version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "ormkey version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// newLogger returns a development logger in verbose mode and a no-op otherwise
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// loadRegistry builds a registry from the configured entity types
func loadRegistry() (*schema.Registry, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to load config: %w", err)
	}

	reg := schema.NewRegistry(schema.WithLogger(logger))
	if err := cfg.Apply(reg); err != nil {
		return nil, cleanup, fmt.Errorf("failed to apply config: %w", err)
	}
	return reg, cleanup, nil
}

// unknownTypeError prints close matches for name and returns the error
func unknownTypeError(w io.Writer, reg *schema.Registry, name string) error {
	ui.WriteError(w, ui.TypeNotFoundError(name, ui.FindSimilar(name, reg.List()), color.NoColor))
	return fmt.Errorf("%w: %s", schema.ErrUnknownType, name)
}
