package types

import (
	"fmt"
	"strings"
)

// Level is the severity of a lint rule. The names match SARIF levels.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNote    Level = "note"
)

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelError, LevelWarning, LevelNote:
		return l, nil
	}
	return "", fmt.Errorf("invalid level %q (want error, warning or note)", s)
}

// Rank orders levels from least (note) to most severe (error).
func (l Level) Rank() int {
	switch l {
	case LevelError:
		return 3
	case LevelWarning:
		return 2
	case LevelNote:
		return 1
	}
	return 0
}

// Rule is lint rule metadata.
type Rule struct {
	ID               string   // e.g., "regex.charclass.duplicate"
	Name             string   // human-readable name
	Level            Level    // default severity
	Description      string   // optional
	Examples         []string // patterns the rule reports
	NegativeExamples []string // patterns the rule accepts
	References       []string // documentation URLs
	Categories       []string // classification tags
}
