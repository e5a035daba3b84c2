package abbr

import "context"

// VersionInfo is the version-check endpoint's answer: whether the local
// dictionary is stale, and what the latest version is.
type VersionInfo struct {
	NeedsUpdate   bool  `json:"needsUpdate"`
	LatestVersion int64 `json:"latestVersion"`
}

// SyncClient talks to the remote dictionary service.
type SyncClient interface {
	// CheckVersion asks the server whether the locally cached version
	// is stale. Pass 0 when no local cache exists.
	CheckVersion(ctx context.Context, current int64) (*VersionInfo, error)

	// FetchDictionary retrieves and decodes the full dictionary payload
	// for the given version. Keys in the result are uppercase-normalized.
	FetchDictionary(ctx context.Context, version int64) (Dictionary, error)
}

// SyncStatus identifies the outcome of a dictionary synchronization. The
// in-progress phase never escapes the cache manager, so only resolved
// outcomes are representable.
type SyncStatus int

// Sync statuses.
const (
	SyncReady SyncStatus = iota
	SyncError
)

// String returns the status name.
func (s SyncStatus) String() string {
	switch s {
	case SyncReady:
		return "ready"
	case SyncError:
		return "error"
	}
	return "unknown"
}

// SyncState is the outcome of a dictionary synchronization as a tagged
// variant: exactly one of Ready or Errored carries meaning, and an error
// state still carries the best available dictionary so the caller can keep
// serving stale data. Construct via SyncReadyState and SyncErrorState so
// illegal combinations (an error message on a ready state) cannot occur.
type SyncState struct {
	status  SyncStatus
	version int64
	dict    Dictionary
	errMsg  string
}

// SyncReadyState returns a ready state with the given dictionary.
func SyncReadyState(version int64, dict Dictionary) *SyncState {
	return &SyncState{status: SyncReady, version: version, dict: dict}
}

// SyncErrorState returns an error state. The dictionary is the best
// available fallback and may be empty.
func SyncErrorState(message string, version int64, fallback Dictionary) *SyncState {
	if fallback == nil {
		fallback = Dictionary{}
	}
	return &SyncState{status: SyncError, version: version, dict: fallback, errMsg: message}
}

// Status returns the state's phase.
func (s *SyncState) Status() SyncStatus { return s.status }

// Version returns the version of the dictionary carried by the state.
func (s *SyncState) Version() int64 { return s.version }

// Dictionary returns the best-known dictionary, possibly empty. Never nil.
func (s *SyncState) Dictionary() Dictionary {
	if s.dict == nil {
		return Dictionary{}
	}
	return s.dict
}

// Err returns the advisory message and whether the state is an error state.
func (s *SyncState) Err() (string, bool) {
	return s.errMsg, s.status == SyncError
}
