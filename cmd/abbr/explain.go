package main

import (
	"fmt"

	"github.com/shigekazukoya/abbr"
)

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	state := deps.Manager.Load(deps.Ctx)
	if msg, errored := state.Err(); errored {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", msg)
	}

	key := abbr.NormalizeKey(c.Abbreviation)
	meaning, ok := state.Dictionary().Lookup(key)
	if !ok || meaning == "" {
		fmt.Fprintf(deps.Stderr, "error: no meaning is known for %q. Run 'abbr search' to find similar abbreviations.\n", key)
		return abbr.Errorf(abbr.ENOTFOUND, "abbreviation %q not found", key)
	}

	fmt.Fprintf(deps.Stdout, "%s: %s\n\n", key, meaning)

	err := deps.Streamer.StreamExplanation(deps.Ctx, key, meaning, func(text string) {
		fmt.Fprint(deps.Stdout, text)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", abbr.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout)
	return nil
}
