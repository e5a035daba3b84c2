package mock

import (
	"context"

	"github.com/shigekazukoya/abbr"
)

var _ abbr.SyncClient = (*SyncClient)(nil)

// SyncClient is a mock implementation of abbr.SyncClient.
type SyncClient struct {
	CheckVersionFn    func(ctx context.Context, current int64) (*abbr.VersionInfo, error)
	FetchDictionaryFn func(ctx context.Context, version int64) (abbr.Dictionary, error)
}

func (c *SyncClient) CheckVersion(ctx context.Context, current int64) (*abbr.VersionInfo, error) {
	return c.CheckVersionFn(ctx, current)
}

func (c *SyncClient) FetchDictionary(ctx context.Context, version int64) (abbr.Dictionary, error) {
	return c.FetchDictionaryFn(ctx, version)
}
