package search

import "github.com/shigekazukoya/abbr"

// Selection tracks which match the user has selected as they type and
// navigate. It owns the index into the current result sequence; the index
// resets to 0 whenever a new result sequence is installed.
//
// Every method that can move the selection returns the newly selected
// abbreviation along with changed=true when the selection landed on a
// *different* abbreviation. The caller uses that single signal to trigger
// an explanation fetch, so a repeat selection never fetches twice.
type Selection struct {
	results []abbr.Match
	index   int
	current string
}

// NewSelection returns an empty selection (no results, nothing selected).
func NewSelection() *Selection {
	return &Selection{}
}

// SetResults installs a freshly computed result sequence. A non-empty
// sequence auto-selects the top-ranked match; an empty one clears the
// selection (changed=true when something was selected before, so the
// caller knows to discard the explanation buffer).
func (s *Selection) SetResults(results []abbr.Match) (selected string, changed bool) {
	s.results = results
	s.index = 0
	if len(results) == 0 {
		changed = s.current != ""
		s.current = ""
		return "", changed
	}
	return s.moveTo(0)
}

// Next moves the selection down one entry. Navigating past the end is a
// no-op.
func (s *Selection) Next() (selected string, changed bool) {
	if len(s.results) == 0 || s.index >= len(s.results)-1 {
		return s.current, false
	}
	return s.moveTo(s.index + 1)
}

// Prev moves the selection up one entry. Navigating past the start is a
// no-op.
func (s *Selection) Prev() (selected string, changed bool) {
	if len(s.results) == 0 || s.index <= 0 {
		return s.current, false
	}
	return s.moveTo(s.index - 1)
}

// Pick selects the entry at index i directly (pointer click or confirm).
// Out-of-range indexes are clamped to the valid bounds.
func (s *Selection) Pick(i int) (selected string, changed bool) {
	if len(s.results) == 0 {
		return s.current, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.moveTo(i)
}

// Current returns the selected match, if any.
func (s *Selection) Current() (abbr.Match, bool) {
	if s.current == "" {
		return abbr.Match{}, false
	}
	return s.results[s.index], true
}

// Index returns the selected offset into the result sequence.
func (s *Selection) Index() int {
	return s.index
}

// Results returns the installed result sequence.
func (s *Selection) Results() []abbr.Match {
	return s.results
}

// moveTo sets the index and reports whether the selected abbreviation
// changed.
func (s *Selection) moveTo(i int) (selected string, changed bool) {
	s.index = i
	next := s.results[i].Abbreviation
	changed = next != s.current
	s.current = next
	return next, changed
}
