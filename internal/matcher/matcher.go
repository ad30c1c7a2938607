// Package matcher decides which of a series' two competitors is the team a
// report is about. Attribution is the correctness-critical step of the whole
// pipeline: a wrong pick silently assigns a full series of stats to the
// wrong team, so the rule lives behind an interface that stricter strategies
// can replace.
package matcher

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TeamMatcher picks the candidate that refers to the same team as target.
// It returns the candidate's index and whether anything matched.
type TeamMatcher interface {
	Match(target string, candidates []string) (int, bool)
}

// SubstringMatcher matches on case-insensitive substring containment in
// either direction, so "Cloud9" finds "Cloud9 Blue" and "Team Liquid Brazil"
// finds "Liquid". Known false-positive risk ("Team A" vs "Team A Academy")
// is accepted for compatibility with upstream name variants.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(target string, candidates []string) (int, bool) {
	t := strings.ToLower(target)
	for i, candidate := range candidates {
		c := strings.ToLower(candidate)
		if strings.Contains(c, t) || strings.Contains(t, c) {
			return i, true
		}
	}
	return 0, false
}

// LevenshteinMatcher is the stricter alternative: the closest candidate wins
// only when its edit distance stays within MaxDistance.
type LevenshteinMatcher struct {
	MaxDistance int
}

func NewLevenshteinMatcher() LevenshteinMatcher {
	return LevenshteinMatcher{MaxDistance: 2}
}

func (m LevenshteinMatcher) Match(target string, candidates []string) (int, bool) {
	t := strings.ToLower(target)
	best, bestDistance := 0, m.MaxDistance+1
	for i, candidate := range candidates {
		d := fuzzy.LevenshteinDistance(t, strings.ToLower(candidate))
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if bestDistance > m.MaxDistance {
		return 0, false
	}
	return best, true
}
