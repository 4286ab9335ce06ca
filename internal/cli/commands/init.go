package commands

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/conduit-lang/ormkey/internal/cli/config"
	"github.com/conduit-lang/ormkey/internal/orm/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initName   string
	initPolicy string
	initOutput string
	initForce  bool
	initYes    bool
)

var policyOptions = []string{
	schema.PolicyNone.String(),
	schema.PolicyTableName.String(),
	schema.PolicyTableNameWithUnderscore.String(),
}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter ormkey.yml",
		Long: `Write a starter ormkey.yml declaring one entity type.

Missing values are prompted for unless --yes is given.

Examples:
  ormkey init                                   # Interactive
  ormkey init --name Project --policy table_name_with_underscore --yes`,
		RunE: runInit,
	}

	cmd.Flags().StringVarP(&initName, "name", "n", "", "Entity type name")
	cmd.Flags().StringVarP(&initPolicy, "policy", "p", "", "Naming policy (none, table_name, table_name_with_underscore)")
	cmd.Flags().StringVarP(&initOutput, "output", "o", "ormkey.yml", "File to write")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Do not prompt; use flags and defaults")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	name := initName
	if name == "" {
		if initYes {
			return fmt.Errorf("--name is required with --yes")
		}
		prompt := &survey.Input{
			Message: "Entity type name:",
			Default: "Project",
		}
		if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	policy := initPolicy
	if policy == "" && !initYes {
		prompt := &survey.Select{
			Message: "Primary key naming policy:",
			Options: policyOptions,
			Default: schema.PolicyNone.String(),
		}
		if err := survey.AskOne(prompt, &policy); err != nil {
			return err
		}
	}

	p, err := schema.ParseNamingPolicy(policy)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		DefaultPolicy: schema.PolicyNone.String(),
		Entities: []config.EntityConfig{
			{Name: name, Policy: p.String()},
		},
	}
	if err := config.Save(initOutput, cfg); err != nil {
		return err
	}

	reg := schema.NewRegistry()
	if err := cfg.Apply(reg); err != nil {
		return err
	}
	key, err := reg.PrimaryKeyName(name)
	if err != nil {
		return err
	}
	successColor.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", initOutput)
	infoColor.Fprintf(cmd.OutOrStdout(), "  %s resolves its primary key to %s\n", name, key)
	return nil
}
