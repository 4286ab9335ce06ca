package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conduit-lang/ormkey/internal/orm/schema"
	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned by FindConfigFile when no ormkey.yml exists
// in the working directory or any parent
var ErrConfigNotFound = errors.New("no ormkey.yml found")

// Config represents the entity type configuration
type Config struct {
	DefaultPolicy string         `mapstructure:"default_policy"`
	Entities      []EntityConfig `mapstructure:"entities"`
}

// EntityConfig declares one entity type
type EntityConfig struct {
	Name       string `mapstructure:"name"`
	Parent     string `mapstructure:"parent"`
	Policy     string `mapstructure:"policy"`
	PrimaryKey string `mapstructure:"primary_key"`
	TableName  string `mapstructure:"table_name"`
}

// Load loads the configuration from path. An empty path searches for
// ormkey.yml or ormkey.yaml from the working directory upwards and falls
// back to defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("default_policy", schema.PolicyNone.String())

	if path == "" {
		found, err := FindConfigFile()
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		path = found
	}

	// Enable environment variable support
	v.SetEnvPrefix("ORMKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save writes cfg to path; the format follows the file extension
func Save(path string, cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	v := viper.New()
	v.Set("default_policy", cfg.DefaultPolicy)

	entities := make([]map[string]interface{}, 0, len(cfg.Entities))
	for _, e := range cfg.Entities {
		entry := map[string]interface{}{"name": e.Name}
		if e.Parent != "" {
			entry["parent"] = e.Parent
		}
		if e.Policy != "" {
			entry["policy"] = e.Policy
		}
		if e.PrimaryKey != "" {
			entry["primary_key"] = e.PrimaryKey
		}
		if e.TableName != "" {
			entry["table_name"] = e.TableName
		}
		entities = append(entities, entry)
	}
	v.Set("entities", entities)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FindConfigFile looks for ormkey.yml from the working directory upwards
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"ormkey.yml", "ormkey.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// Apply defines every configured entity type in reg, parents first, then
// sets naming policies and primary key overrides.
func (c *Config) Apply(reg *schema.Registry) error {
	defaultPolicy, err := schema.ParseNamingPolicy(c.DefaultPolicy)
	if err != nil {
		return err
	}

	pending := make([]EntityConfig, len(c.Entities))
	copy(pending, c.Entities)

	for len(pending) > 0 {
		var deferred []EntityConfig
		for _, e := range pending {
			if e.Parent != "" && !reg.Exists(e.Parent) {
				deferred = append(deferred, e)
				continue
			}
			if err := defineEntity(reg, e, defaultPolicy); err != nil {
				return err
			}
		}
		if len(deferred) == len(pending) {
			return fmt.Errorf("entity %s: parent %s is never defined", deferred[0].Name, deferred[0].Parent)
		}
		pending = deferred
	}

	return nil
}

func defineEntity(reg *schema.Registry, e EntityConfig, defaultPolicy schema.NamingPolicy) error {
	if e.Parent != "" {
		if _, err := reg.DefineSubtype(e.Name, e.Parent); err != nil {
			return err
		}
	} else {
		policy := defaultPolicy
		if e.Policy != "" {
			p, err := schema.ParseNamingPolicy(e.Policy)
			if err != nil {
				return fmt.Errorf("entity %s: %w", e.Name, err)
			}
			policy = p
		}

		opts := []schema.TypeOption{schema.WithPolicy(policy)}
		if e.TableName != "" {
			opts = append(opts, schema.WithTableName(e.TableName))
		}
		if _, err := reg.Define(e.Name, opts...); err != nil {
			return err
		}
	}

	if e.PrimaryKey != "" {
		return reg.SetPrimaryKeyOverride(e.Name, schema.KeyName(e.PrimaryKey), nil)
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if _, err := schema.ParseNamingPolicy(cfg.DefaultPolicy); err != nil {
		return fmt.Errorf("default_policy: %w", err)
	}

	parents := make(map[string]string, len(cfg.Entities))
	for i, e := range cfg.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entities[%d]: name is required", i)
		}
		if _, exists := parents[e.Name]; exists {
			return fmt.Errorf("entity %s is declared more than once", e.Name)
		}
		parents[e.Name] = e.Parent

		if e.Parent != "" {
			if e.Policy != "" {
				return fmt.Errorf("entity %s: policy belongs to the base type, not subtype of %s", e.Name, e.Parent)
			}
			if e.TableName != "" {
				return fmt.Errorf("entity %s: subtypes share the table of %s", e.Name, e.Parent)
			}
			continue
		}
		if _, err := schema.ParseNamingPolicy(e.Policy); err != nil {
			return fmt.Errorf("entity %s: %w", e.Name, err)
		}
	}

	for name, parent := range parents {
		seen := map[string]bool{name: true}
		for parent != "" {
			next, declared := parents[parent]
			if !declared {
				return fmt.Errorf("entity %s: parent %s is not declared", name, parent)
			}
			if seen[parent] {
				return fmt.Errorf("entity %s: inheritance cycle through %s", name, parent)
			}
			seen[parent] = true
			parent = next
		}
	}

	return nil
}
