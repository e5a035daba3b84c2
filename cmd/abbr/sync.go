package main

import (
	"fmt"

	"github.com/shigekazukoya/abbr"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	state := deps.Manager.Refresh(deps.Ctx)

	if msg, errored := state.Err(); errored {
		fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		if len(state.Dictionary()) > 0 {
			fmt.Fprintf(deps.Stdout, "Using cached dictionary: version %d, %d abbreviations.\n",
				state.Version(), len(state.Dictionary()))
			return nil
		}
		return abbr.Errorf(abbr.EUNAVAILABLE, "%s", msg)
	}

	fmt.Fprintf(deps.Stdout, "Dictionary is up to date: version %d, %d abbreviations.\n",
		state.Version(), len(state.Dictionary()))
	return nil
}
