package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Group is a set of alternative keywords. Content satisfies a group when
// it contains any one of them.
type Group []string

// DefaultGroups are the keywords every lexer module contains: a class
// statement and a tokens table.
var DefaultGroups = []Group{
	{"class"},
	{"tokens"},
}

// Prefilter uses Aho-Corasick to skip files that cannot define a lexer
// table before they are tokenized.
type Prefilter struct {
	matcher       *ahocorasick.Matcher
	keywords      []string       // keyword at each index
	keywordGroups map[string][]int // keyword -> groups it satisfies
	groups        int
}

// New creates a prefilter that accepts content containing at least one
// keyword of every group. A prefilter without groups accepts everything.
func New(groups ...Group) *Prefilter {
	pf := &Prefilter{keywordGroups: make(map[string][]int)}

	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		pf.groups++
		for _, keyword := range g {
			if _, ok := pf.keywordGroups[keyword]; !ok {
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordGroups[keyword] = append(pf.keywordGroups[keyword], i)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// Default returns a prefilter over DefaultGroups.
func Default() *Prefilter {
	return New(DefaultGroups...)
}

// Matches reports whether content may hold a lexer table.
func (pf *Prefilter) Matches(content []byte) bool {
	if pf.matcher == nil {
		return true
	}

	satisfied := make(map[int]bool, pf.groups)
	for _, hit := range pf.matcher.Match(content) {
		for _, g := range pf.keywordGroups[pf.keywords[hit]] {
			satisfied[g] = true
		}
	}
	return len(satisfied) == pf.groups
}

// Keywords returns the distinct keywords found in content, in the order
// they were configured.
func (pf *Prefilter) Keywords(content []byte) []string {
	if pf.matcher == nil {
		return nil
	}
	found := make(map[int]bool)
	for _, hit := range pf.matcher.Match(content) {
		found[hit] = true
	}
	var out []string
	for i, k := range pf.keywords {
		if found[i] {
			out = append(out, k)
		}
	}
	return out
}
