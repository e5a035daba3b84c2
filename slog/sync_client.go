// Package slog provides logging decorators for the abbr domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shigekazukoya/abbr"
)

// Ensure LoggingSyncClient implements abbr.SyncClient.
var _ abbr.SyncClient = (*LoggingSyncClient)(nil)

// LoggingSyncClient wraps a SyncClient with debug logging.
type LoggingSyncClient struct {
	next   abbr.SyncClient
	logger *slog.Logger
}

// NewLoggingSyncClient creates a new LoggingSyncClient.
func NewLoggingSyncClient(next abbr.SyncClient, logger *slog.Logger) *LoggingSyncClient {
	return &LoggingSyncClient{next: next, logger: logger}
}

// CheckVersion delegates to the wrapped client and logs the operation.
func (c *LoggingSyncClient) CheckVersion(ctx context.Context, current int64) (info *abbr.VersionInfo, err error) {
	defer func(begin time.Time) {
		c.logger.Info("version check",
			"current", current,
			"info", info,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.CheckVersion(ctx, current)
}

// FetchDictionary delegates to the wrapped client and logs the operation.
func (c *LoggingSyncClient) FetchDictionary(ctx context.Context, version int64) (dict abbr.Dictionary, err error) {
	defer func(begin time.Time) {
		c.logger.Info("dictionary fetch",
			"version", version,
			"entries", len(dict),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchDictionary(ctx, version)
}
