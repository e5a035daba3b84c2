// Package search implements fuzzy matching over dictionary keys and the
// selection state that drives keyboard navigation through the results.
package search

import (
	"sort"

	"github.com/shigekazukoya/abbr"
)

// DefaultThreshold is the default similarity cutoff. A candidate is
// admitted when its score (0 = perfect match) does not exceed it.
const DefaultThreshold = 0.3

// Option configures an Index.
type Option func(*Index)

// WithThreshold sets the similarity cutoff. Looser (higher) values admit
// more candidates. Defaults to DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(idx *Index) {
		idx.threshold = threshold
	}
}

// WithLimit caps the number of results returned by Search. Zero (the
// default) means unlimited; the UI may still truncate for display.
func WithLimit(limit int) Option {
	return func(idx *Index) {
		idx.limit = limit
	}
}

// Index is a searchable snapshot of a dictionary's keys. It must be
// rebuilt whenever the dictionary changes identity; querying an index
// built from a stale dictionary is not supported.
type Index struct {
	keys      []string
	threshold float64
	limit     int
}

// NewIndex builds an index over the dictionary's keys.
func NewIndex(dict abbr.Dictionary, opts ...Option) *Index {
	idx := &Index{
		keys:      dict.Keys(),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(idx)
	}
	// Sorted keys make result ordering deterministic across rebuilds.
	sort.Strings(idx.keys)
	return idx
}

// Len returns the number of indexed keys.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Search returns candidates ranked best-first (ascending score). The query
// is uppercase-normalized before matching; an empty query returns nil.
//
// A candidate's score is its edit distance to the query normalized by the
// longer of the two strings, so 0 is an exact match and the position of
// the difference within the candidate is irrelevant. A query shorter than
// the candidate is additionally aligned against the candidate's
// substrings, so partial input matches the key it is being typed toward.
func (idx *Index) Search(query string) []abbr.Match {
	query = abbr.NormalizeKey(query)
	if query == "" {
		return nil
	}

	var matches []abbr.Match
	for _, key := range idx.keys {
		score := score(query, key)
		if score <= idx.threshold {
			matches = append(matches, abbr.Match{Abbreviation: key, Score: score})
		}
	}

	// Stable ranking: ascending score, then lexicographic.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Abbreviation < matches[j].Abbreviation
	})

	if idx.limit > 0 && len(matches) > idx.limit {
		matches = matches[:idx.limit]
	}
	return matches
}

// partialRuneCost is the charge for each key rune beyond a shorter query's
// length. A full edit per uncovered rune would reject every prefix of a
// longer key; a quarter edit admits them while still ranking longer shared
// runs ahead of shorter ones.
const partialRuneCost = 0.25

// score computes the match score between a query and a key. Only an exact
// match scores 0.
func score(query, key string) float64 {
	if query == key {
		return 0
	}
	qlen, klen := len([]rune(query)), len([]rune(key))
	longer := max(qlen, klen)
	if longer == 0 {
		return 0
	}

	whole := float64(levenshtein(query, key)) / float64(longer)
	if qlen >= klen {
		return whole
	}

	partial := (float64(substringDistance(query, key)) + partialRuneCost*float64(klen-qlen)) / float64(klen)
	return min(whole, partial)
}
