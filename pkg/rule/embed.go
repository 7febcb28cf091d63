package rule

import "embed"

// builtinRulesFS embeds the metadata of the built-in checks.
//
//go:embed rules/*.yml
var builtinRulesFS embed.FS
