package schema

import (
	"errors"
	"testing"
)

func TestNamingPolicy_String(t *testing.T) {
	tests := map[NamingPolicy]string{
		PolicyNone:                    "none",
		PolicyTableName:               "table_name",
		PolicyTableNameWithUnderscore: "table_name_with_underscore",
		NamingPolicy(99):              "unknown",
	}

	for policy, want := range tests {
		if got := policy.String(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestParseNamingPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want NamingPolicy
	}{
		{"", PolicyNone},
		{"none", PolicyNone},
		{"table_name", PolicyTableName},
		{"TABLE_NAME", PolicyTableName},
		{"table-name-with-underscore", PolicyTableNameWithUnderscore},
		{" table_name_with_underscore ", PolicyTableNameWithUnderscore},
	}

	for _, tt := range tests {
		got, err := ParseNamingPolicy(tt.in)
		if err != nil {
			t.Errorf("ParseNamingPolicy(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNamingPolicy(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseNamingPolicy("plural"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestNamingPolicy_Valid(t *testing.T) {
	if !PolicyTableNameWithUnderscore.Valid() {
		t.Error("expected defined policy to be valid")
	}
	if NamingPolicy(-1).Valid() || NamingPolicy(3).Valid() {
		t.Error("expected out of range policy to be invalid")
	}
}
