package rule

import (
	"fmt"
	"regexp"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

// ruleIDRe is the shape of a rule ID: lowercase dot-separated segments.
var ruleIDRe = regexp.MustCompile(`^[a-z][a-z0-9-]*(\.[a-z][a-z0-9-]*)+$`)

// ValidateRule checks rule consistency and required fields.
// Returns error if rule is invalid.
func ValidateRule(r *types.Rule) error {
	if r == nil {
		return fmt.Errorf("rule is nil")
	}

	// Check required fields
	if r.ID == "" {
		return fmt.Errorf("rule ID is required")
	}
	if !ruleIDRe.MatchString(r.ID) {
		return fmt.Errorf("rule ID %q must be lowercase dot-separated segments", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("rule %s: name is required", r.ID)
	}
	if _, err := types.ParseLevel(string(r.Level)); err != nil {
		return fmt.Errorf("rule %s: %w", r.ID, err)
	}

	return nil
}

// ValidateConfig checks that every pattern compiles, every level name is
// valid and every level override names a known rule.
func ValidateConfig(c *Config, knownRuleIDs map[string]bool) error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	for _, group := range [][]string{c.Include, c.Exclude} {
		for _, p := range group {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("invalid regex pattern %q: %w", p, err)
			}
		}
	}

	for id, level := range c.Levels {
		if !knownRuleIDs[id] {
			return fmt.Errorf("level override for unknown rule %s", id)
		}
		if _, err := types.ParseLevel(string(level)); err != nil {
			return fmt.Errorf("level override for %s: %w", id, err)
		}
	}

	return nil
}
