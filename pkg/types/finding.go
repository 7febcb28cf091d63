package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// Finding is one rule violation located in a lexer definition file.
type Finding struct {
	ID      string // SHA-1 over the identifying fields, see ComputeFindingID
	RuleID  string
	Level   Level
	Message string

	File  string
	Class string
	State string
	Index int // position of the rule tuple in its state

	// Pattern is the decoded pattern; Offset is the byte offset into it
	// the issue refers to.
	Pattern string
	Offset  int

	Location LineLocation
}

// ComputeFindingID computes a content-based finding ID.
// Format: SHA-1(rule_id + '\0' + json([file, class, state, index, offset, message]))
func ComputeFindingID(ruleID string, f *Finding) string {
	h := sha1.New()

	h.Write([]byte(ruleID))
	h.Write([]byte{0}) // null byte separator

	key, _ := json.Marshal([]any{f.File, f.Class, f.State, f.Index, f.Offset, f.Message})
	h.Write(key)

	return hex.EncodeToString(h.Sum(nil))
}
