package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/shigekazukoya/abbr"
)

// Cache keys. The names match the original browser localStorage layout.
const (
	keyVersion = "abbreviationsVersion"
	keyData    = "abbreviationsData"
	keyHash    = "abbreviationsHash"
)

// Compile-time interface verification.
var _ abbr.DictionaryStore = (*DictionaryStore)(nil)

// DictionaryStore implements abbr.DictionaryStore using SQLite.
// The record is stored as three cache rows: a string-encoded version, the
// JSON-encoded dictionary, and an xxhash of the JSON used to detect
// corruption on load.
type DictionaryStore struct {
	db *DB
}

// NewDictionaryStore creates a new DictionaryStore.
func NewDictionaryStore(db *DB) *DictionaryStore {
	return &DictionaryStore{db: db}
}

// LoadRecord retrieves the persisted cache record. A missing, unparsable,
// or hash-mismatched record is reported as ENOTFOUND: the caller treats
// all three the same way, by fetching a fresh dictionary.
func (s *DictionaryStore) LoadRecord(ctx context.Context) (*abbr.CacheRecord, error) {
	version, err := s.get(ctx, keyVersion)
	if err != nil {
		return nil, err
	}
	data, err := s.get(ctx, keyData)
	if err != nil {
		return nil, err
	}
	storedHash, err := s.get(ctx, keyHash)
	if err != nil {
		return nil, err
	}

	if computeHash(data) != storedHash {
		return nil, abbr.Errorf(abbr.ENOTFOUND, "cached dictionary is corrupt")
	}

	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil || v < 0 {
		return nil, abbr.Errorf(abbr.ENOTFOUND, "cached dictionary version is corrupt")
	}

	var dict abbr.Dictionary
	if err := json.Unmarshal([]byte(data), &dict); err != nil {
		return nil, abbr.Errorf(abbr.ENOTFOUND, "cached dictionary is corrupt")
	}

	return &abbr.CacheRecord{Version: v, Abbreviations: dict.Normalized()}, nil
}

// SaveRecord atomically replaces the persisted record. A record with a
// version older than the stored one is rejected; the newer snapshot wins.
func (s *DictionaryStore) SaveRecord(ctx context.Context, record *abbr.CacheRecord) error {
	if record == nil {
		return abbr.Errorf(abbr.EINVALID, "cache record required")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	if existing, err := s.LoadRecord(ctx); err == nil && existing.Version > record.Version {
		return abbr.Errorf(abbr.EINVALID, "stale dictionary version %d (stored: %d)", record.Version, existing.Version)
	}

	data, err := json.Marshal(record.Abbreviations)
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		keyVersion: strconv.FormatInt(record.Version, 10),
		keyData:    string(data),
		keyHash:    computeHash(string(data)),
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cache (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// get reads a single cache row. Returns ENOTFOUND when the key is absent.
func (s *DictionaryStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cache WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", abbr.Errorf(abbr.ENOTFOUND, "no cached dictionary")
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%016x", h)
}
