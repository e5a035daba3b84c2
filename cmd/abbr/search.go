package main

import (
	"fmt"

	"github.com/shigekazukoya/abbr/search"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	state := deps.Manager.Load(deps.Ctx)
	if msg, errored := state.Err(); errored {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", msg)
	}

	index := search.NewIndex(state.Dictionary(), c.options()...)
	matches := index.Search(c.Query)

	if len(matches) == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q.\n", c.Query)
		return nil
	}

	for _, match := range matches {
		meaning, _ := state.Dictionary().Lookup(match.Abbreviation)
		fmt.Fprintf(deps.Stdout, "%-12s %6.2f%%  %s\n", match.Abbreviation, match.Similarity(), meaning)
	}

	return nil
}
