package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Matcher filters candidate option strings against a query. Implementations
// must be synchronous and deterministic for a fixed input pair, and must
// return a subset of candidates (no invented entries).
type Matcher interface {
	Match(query string, candidates []string) []string
}

// MatcherFunc adapts an ordinary function to the Matcher interface.
type MatcherFunc func(query string, candidates []string) []string

// Match implements Matcher.
func (f MatcherFunc) Match(query string, candidates []string) []string {
	return f(query, candidates)
}

// FuzzyMatcher ranks candidates by fuzzy subsequence score, case-insensitive.
// Candidates that do not match are dropped.
type FuzzyMatcher struct{}

// Match implements Matcher.
func (FuzzyMatcher) Match(query string, candidates []string) []string {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}
	if len(candidates) == 0 {
		return nil
	}
	targets := make([]string, len(candidates))
	for i, c := range candidates {
		targets[i] = strings.ToLower(c)
	}
	matches := fuzzy.Find(query, targets)
	ranked := make([]string, 0, len(matches))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		if m.Index < 0 || m.Index >= len(candidates) || seen[m.Index] {
			continue
		}
		seen[m.Index] = true
		ranked = append(ranked, candidates[m.Index])
	}
	return ranked
}
