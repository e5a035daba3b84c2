// Package cache synchronizes the versioned local dictionary cache with the
// remote abbreviation service.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shigekazukoya/abbr"
)

// Manager owns the local copy of the dictionary. It loads whatever is
// cached, asks the server whether that version is stale, fetches and
// persists a newer snapshot when needed, and falls back to the cached
// dictionary when anything goes wrong. Availability wins over freshness:
// sync failures are advisory, never fatal.
type Manager struct {
	store  abbr.DictionaryStore
	client abbr.SyncClient
	logger *slog.Logger

	mu    sync.Mutex
	state *abbr.SyncState
}

// NewManager creates a Manager. A nil logger defaults to slog.Default().
func NewManager(store abbr.DictionaryStore, client abbr.SyncClient, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, client: client, logger: logger}
}

// Load resolves the dictionary once per session. The first call performs
// the cache-load/version-check/fetch sequence; subsequent or overlapping
// calls return the already-resolved state. Use Refresh to force a re-sync.
func (m *Manager) Load(ctx context.Context) *abbr.SyncState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != nil {
		return m.state
	}
	m.state = m.sync(ctx)
	return m.state
}

// Refresh discards the memoized state and re-runs the full sync.
func (m *Manager) Refresh(ctx context.Context) *abbr.SyncState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = m.sync(ctx)
	return m.state
}

func (m *Manager) sync(ctx context.Context) *abbr.SyncState {
	cached, err := m.store.LoadRecord(ctx)
	if err != nil && abbr.ErrorCode(err) != abbr.ENOTFOUND {
		m.logger.Warn("failed to load cached dictionary", "err", err)
	}

	var fallback abbr.Dictionary
	var fallbackVersion int64
	if cached != nil {
		fallback = cached.Abbreviations
		fallbackVersion = cached.Version
	}

	info, err := m.client.CheckVersion(ctx, fallbackVersion)
	if err != nil {
		m.logger.Warn("version check failed", "current", fallbackVersion, "err", err)
		return abbr.SyncErrorState("Could not reach the abbreviation service.", fallbackVersion, fallback)
	}

	// A populated, confirmed-fresh cache needs no data fetch.
	if cached != nil && !info.NeedsUpdate {
		return abbr.SyncReadyState(cached.Version, cached.Abbreviations)
	}

	dict, err := m.client.FetchDictionary(ctx, info.LatestVersion)
	if err != nil {
		m.logger.Warn("dictionary fetch failed", "version", info.LatestVersion, "err", err)
		return abbr.SyncErrorState("Could not download the dictionary.", fallbackVersion, fallback)
	}
	if len(dict) == 0 {
		// An empty update is corruption, not a valid dictionary.
		m.logger.Warn("dictionary fetch returned an empty payload", "version", info.LatestVersion)
		return abbr.SyncErrorState("Received an empty dictionary update.", fallbackVersion, fallback)
	}

	record := &abbr.CacheRecord{Version: info.LatestVersion, Abbreviations: dict}
	if err := m.store.SaveRecord(ctx, record); err != nil {
		m.logger.Warn("failed to persist dictionary", "version", info.LatestVersion, "err", err)
		return abbr.SyncErrorState("Dictionary updated but could not be saved locally.", info.LatestVersion, dict)
	}

	m.logger.Info("dictionary synchronized", "version", info.LatestVersion, "entries", len(dict))
	return abbr.SyncReadyState(info.LatestVersion, dict)
}
