package utils

import "strings"

// CandidateFilter rejects restoration candidates whose surface word has
// already been accepted once, so a conflict prompt never lists (or a
// caller never silently picks between) two entries that would render
// identically.
type CandidateFilter struct {
	seen map[string]bool
}

// NewCandidateFilter returns an empty filter.
func NewCandidateFilter() *CandidateFilter {
	return &CandidateFilter{seen: make(map[string]bool)}
}

// ShouldInclude reports whether word is new (case-insensitively) and, if
// so, marks it seen for subsequent calls.
func (f *CandidateFilter) ShouldInclude(word string) bool {
	lower := strings.ToLower(word)
	if f.seen[lower] {
		return false
	}
	f.seen[lower] = true
	return true
}
