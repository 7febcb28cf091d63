package rule

import (
	"strings"
	"testing"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

func TestValidateRule_Valid(t *testing.T) {
	rule := &types.Rule{
		ID:    "regex.test-rule",
		Name:  "Test Rule",
		Level: types.LevelWarning,
	}

	if err := ValidateRule(rule); err != nil {
		t.Errorf("ValidateRule failed for valid rule: %v", err)
	}
}

func TestValidateRule_NilRule(t *testing.T) {
	err := ValidateRule(nil)
	if err == nil {
		t.Fatal("expected error for nil rule")
	}
	if !strings.Contains(err.Error(), "nil") {
		t.Errorf("expected 'nil' in error message, got: %v", err)
	}
}

func TestValidateRule_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		rule *types.Rule
		want string
	}{
		{"missing ID", &types.Rule{Name: "x", Level: types.LevelNote}, "ID is required"},
		{"bad ID", &types.Rule{ID: "Regex.X", Name: "x", Level: types.LevelNote}, "lowercase"},
		{"missing name", &types.Rule{ID: "regex.x", Level: types.LevelNote}, "name is required"},
		{"missing level", &types.Rule{ID: "regex.x", Name: "x"}, "invalid level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRule(tt.rule)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error message, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	known := map[string]bool{"regex.parse": true}

	if err := ValidateConfig(&Config{Levels: map[string]types.Level{"regex.parse": types.LevelNote}}, known); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateConfig(nil, known); err == nil {
		t.Error("expected error for nil config")
	}
	if err := ValidateConfig(&Config{Levels: map[string]types.Level{"regex.nope": types.LevelNote}}, known); err == nil {
		t.Error("expected error for unknown rule override")
	}
	if err := ValidateConfig(&Config{Levels: map[string]types.Level{"regex.parse": "loud"}}, known); err == nil {
		t.Error("expected error for bad level")
	}
	if err := ValidateConfig(&Config{FilterConfig: FilterConfig{Exclude: []string{"(("}}}, known); err == nil {
		t.Error("expected error for bad exclude pattern")
	}
}
