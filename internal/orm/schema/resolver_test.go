package schema

import (
	"errors"
	"testing"

	utilstrings "github.com/conduit-lang/ormkey/internal/util/strings"
)

// fixedInflector returns the same foreign key for every name
type fixedInflector struct {
	key string
}

func (f fixedInflector) ForeignKey(string, bool) string { return f.key }
func (f fixedInflector) Tableize(name string) string     { return name }

func TestResolveDefault(t *testing.T) {
	inf := utilstrings.DefaultInflector{}

	for _, base := range []string{"Project", "ProjectTask", "Admin::Invoice", "HTTPLog", "Café"} {
		t.Run(base, func(t *testing.T) {
			got, err := ResolveDefault(inf, base, PolicyNone)
			if err != nil || got != "id" {
				t.Errorf("none: expected id, got %q (%v)", got, err)
			}

			got, err = ResolveDefault(inf, base, PolicyTableName)
			if err != nil || got != inf.ForeignKey(base, false) {
				t.Errorf("table_name: expected %q, got %q (%v)", inf.ForeignKey(base, false), got, err)
			}

			got, err = ResolveDefault(inf, base, PolicyTableNameWithUnderscore)
			if err != nil || got != inf.ForeignKey(base, true) {
				t.Errorf("table_name_with_underscore: expected %q, got %q (%v)", inf.ForeignKey(base, true), got, err)
			}
		})
	}
}

func TestResolveDefault_InvalidInflection(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"whitespace", "bad key"},
		{"leading digit", "1project_id"},
		{"punctuation", "project-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDefault(fixedInflector{key: tt.key}, "Project", PolicyTableNameWithUnderscore)
			if err == nil {
				t.Fatalf("expected configuration error, got %q", got)
			}
			if got == DefaultPrimaryKey {
				t.Error("must not fall back to id")
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if !errors.Is(err, ErrInvalidKeyName) {
				t.Errorf("expected ErrInvalidKeyName, got %v", err)
			}
			if cfgErr.BaseName != "Project" || cfgErr.Name != tt.key {
				t.Errorf("unexpected error fields: %+v", cfgErr)
			}
		})
	}
}

func TestResolveDefault_EmptyBaseStem(t *testing.T) {
	inf := utilstrings.DefaultInflector{}

	for _, base := range []string{"Admin::", "admin/", "::"} {
		for _, policy := range []NamingPolicy{PolicyTableName, PolicyTableNameWithUnderscore} {
			got, err := ResolveDefault(inf, base, policy)
			if !errors.Is(err, ErrInvalidKeyName) {
				t.Errorf("%q under %s: expected ErrInvalidKeyName, got %q (%v)", base, policy, got, err)
			}
			if got != "" {
				t.Errorf("%q under %s: expected no key name, got %q", base, policy, got)
			}
		}
	}
}

func TestResolveDefault_UnicodeNames(t *testing.T) {
	got, err := ResolveDefault(utilstrings.DefaultInflector{}, "Café", PolicyTableNameWithUnderscore)
	if err != nil || got != "café_id" {
		t.Errorf("expected café_id, got %q (%v)", got, err)
	}
}

func TestResolveDefault_NoneIgnoresInflector(t *testing.T) {
	got, err := ResolveDefault(fixedInflector{key: ""}, "Project", PolicyNone)
	if err != nil || got != "id" {
		t.Errorf("expected id, got %q (%v)", got, err)
	}
}

func TestResolveDefault_UnknownPolicy(t *testing.T) {
	_, err := ResolveDefault(utilstrings.DefaultInflector{}, "Project", NamingPolicy(7))
	if !IsConfigurationError(err) || !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected configuration error wrapping ErrUnknownPolicy, got %v", err)
	}
}

func TestRegistry_EmptyBaseStemIsConfigurationError(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Define("Admin::", WithPolicy(PolicyTableName)); err != nil {
		t.Fatalf("unexpected define error: %v", err)
	}

	if key, err := registry.PrimaryKeyName("Admin::"); !IsConfigurationError(err) {
		t.Errorf("table_name: expected configuration error, got %q (%v)", key, err)
	}

	if err := registry.ConfigurePrimaryKeyPolicy("Admin::", PolicyTableNameWithUnderscore); err != nil {
		t.Fatalf("unexpected policy error: %v", err)
	}
	if key, err := registry.PrimaryKeyName("Admin::"); !IsConfigurationError(err) {
		t.Errorf("table_name_with_underscore: expected configuration error, got %q (%v)", key, err)
	}
}

func TestRegistry_InflectorFailurePropagates(t *testing.T) {
	registry := NewRegistry(WithInflector(fixedInflector{key: ""}))
	registry.Define("Project", WithPolicy(PolicyTableName))

	if _, err := registry.PrimaryKeyName("Project"); !IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if _, err := registry.ResetPrimaryKeyName("Project"); !IsConfigurationError(err) {
		t.Errorf("expected configuration error from reset, got %v", err)
	}
}
