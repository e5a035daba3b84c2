package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/shigekazukoya/abbr"
	"github.com/shigekazukoya/abbr/cache"
	"github.com/shigekazukoya/abbr/search"
	"github.com/shigekazukoya/abbr/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Manager  *cache.Manager
	Streamer abbr.ExplanationStreamer
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Enable debug logging"`

	Tui     TuiCmd     `cmd:"" default:"1" help:"Open the interactive abbreviation search"`
	Sync    SyncCmd    `cmd:"" help:"Synchronize the local dictionary cache"`
	Search  SearchCmd  `cmd:"" help:"Search the cached dictionary for an abbreviation"`
	Explain ExplainCmd `cmd:"" help:"Stream an explanation for an abbreviation"`
}

// TuiCmd is the "tui" subcommand.
type TuiCmd struct{}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string  `arg:"" help:"Abbreviation to search for"`
	Limit     int     `short:"n" default:"10" help:"Maximum number of results"`
	Threshold float64 `short:"t" default:"0.3" help:"Match tolerance between 0 (exact) and 1 (anything)"`
}

// Validate implements kong's validation hook.
func (c *SearchCmd) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return abbr.Errorf(abbr.EINVALID, "threshold must be between 0 and 1")
	}
	return nil
}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Abbreviation string `arg:"" help:"Abbreviation to explain"`
}

func (c *SearchCmd) options() []search.Option {
	return []search.Option{
		search.WithThreshold(c.Threshold),
		search.WithLimit(c.Limit),
	}
}
