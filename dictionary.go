package abbr

import (
	"context"
	"strings"
)

// Dictionary maps an uppercase-normalized abbreviation to its meaning.
// An empty dictionary is valid: it simply never produces matches.
type Dictionary map[string]string

// NormalizeKey canonicalizes an abbreviation for lookup and storage.
// All dictionary keys are uppercase; queries are normalized the same way.
func NormalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Normalized returns a copy of the dictionary with all keys normalized.
// Later entries win when two keys collapse to the same normal form.
func (d Dictionary) Normalized() Dictionary {
	out := make(Dictionary, len(d))
	for k, v := range d {
		out[NormalizeKey(k)] = v
	}
	return out
}

// Lookup returns the meaning for an abbreviation, normalizing the key first.
func (d Dictionary) Lookup(abbreviation string) (string, bool) {
	meaning, ok := d[NormalizeKey(abbreviation)]
	return meaning, ok
}

// Keys returns the dictionary keys in unspecified order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}

// CacheRecord is the persisted pair of dictionary version and snapshot.
// The version strictly increases across remote updates; the dictionary is
// always replaced wholesale, never patched.
type CacheRecord struct {
	Version       int64      `json:"version"`
	Abbreviations Dictionary `json:"abbreviations"`
}

// Validate returns an error if the record cannot be persisted.
func (r *CacheRecord) Validate() error {
	if r.Version < 0 {
		return Errorf(EINVALID, "cache version must be non-negative")
	}
	if len(r.Abbreviations) == 0 {
		return Errorf(EINVALID, "cache record requires a non-empty dictionary")
	}
	return nil
}

// DictionaryStore persists the cache record in a local key-value store.
type DictionaryStore interface {
	// LoadRecord retrieves the persisted record.
	// Returns ENOTFOUND if no record exists or the stored data is corrupt.
	LoadRecord(ctx context.Context) (*CacheRecord, error)

	// SaveRecord atomically replaces the persisted record.
	// Returns EINVALID if the record's version is older than the stored one;
	// a stale version never overwrites the persisted version.
	SaveRecord(ctx context.Context, record *CacheRecord) error
}
