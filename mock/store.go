// Package mock provides hand-written mocks for the abbr domain interfaces.
package mock

import (
	"context"

	"github.com/shigekazukoya/abbr"
)

var _ abbr.DictionaryStore = (*DictionaryStore)(nil)

// DictionaryStore is a mock implementation of abbr.DictionaryStore.
type DictionaryStore struct {
	LoadRecordFn func(ctx context.Context) (*abbr.CacheRecord, error)
	SaveRecordFn func(ctx context.Context, record *abbr.CacheRecord) error
}

func (s *DictionaryStore) LoadRecord(ctx context.Context) (*abbr.CacheRecord, error) {
	return s.LoadRecordFn(ctx)
}

func (s *DictionaryStore) SaveRecord(ctx context.Context, record *abbr.CacheRecord) error {
	return s.SaveRecordFn(ctx, record)
}
