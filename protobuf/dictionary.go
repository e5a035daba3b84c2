// Package protobuf encodes and decodes the dictionary wire payload.
//
// The payload is a proto3 message with a single field:
//
//	message Abbreviations {
//	  map<string, string> abbreviations = 1;
//	}
//
// It is handled directly with protowire rather than generated code: the
// schema is one map field and will not grow.
package protobuf

import (
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/shigekazukoya/abbr"
)

// Field numbers of the Abbreviations message and its map entries.
const (
	abbreviationsField = protowire.Number(1)
	entryKeyField      = protowire.Number(1)
	entryValueField    = protowire.Number(2)
)

// MarshalDictionary encodes a dictionary into the wire payload. Entries
// are emitted in sorted key order so the encoding is deterministic.
func MarshalDictionary(d abbr.Dictionary) []byte {
	keys := d.Keys()
	sort.Strings(keys)

	var buf []byte
	for _, k := range keys {
		var entry []byte
		entry = protowire.AppendTag(entry, entryKeyField, protowire.BytesType)
		entry = protowire.AppendString(entry, k)
		entry = protowire.AppendTag(entry, entryValueField, protowire.BytesType)
		entry = protowire.AppendString(entry, d[k])

		buf = protowire.AppendTag(buf, abbreviationsField, protowire.BytesType)
		buf = protowire.AppendBytes(buf, entry)
	}
	return buf
}

// UnmarshalDictionary decodes the wire payload into a dictionary with
// uppercase-normalized keys. Unknown fields are skipped; malformed input
// returns EINVALID.
func UnmarshalDictionary(b []byte) (abbr.Dictionary, error) {
	dict := abbr.Dictionary{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, abbr.Errorf(abbr.EINVALID, "malformed dictionary payload")
		}
		b = b[n:]

		if num != abbreviationsField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, abbr.Errorf(abbr.EINVALID, "malformed dictionary payload")
			}
			b = b[n:]
			continue
		}

		entry, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, abbr.Errorf(abbr.EINVALID, "malformed dictionary payload")
		}
		b = b[n:]

		key, value, err := unmarshalEntry(entry)
		if err != nil {
			return nil, err
		}
		dict[abbr.NormalizeKey(key)] = value
	}
	return dict, nil
}

// unmarshalEntry decodes a single map entry message.
func unmarshalEntry(b []byte) (key, value string, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", "", abbr.Errorf(abbr.EINVALID, "malformed dictionary entry")
		}
		b = b[n:]

		switch {
		case num == entryKeyField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", "", abbr.Errorf(abbr.EINVALID, "malformed dictionary entry")
			}
			key = s
			b = b[n:]
		case num == entryValueField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", "", abbr.Errorf(abbr.EINVALID, "malformed dictionary entry")
			}
			value = s
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", "", abbr.Errorf(abbr.EINVALID, "malformed dictionary entry")
			}
			b = b[n:]
		}
	}
	return key, value, nil
}
