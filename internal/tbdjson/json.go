// Package tbdjson pretty-prints an arena's live keys as JSON, along two
// independent formatting axes: keys can be printed raw or hex-quoted,
// and values can be printed raw or hex-escaped inside single quotes. No
// JSON pretty-printing library appears anywhere in the retrieval pack, so
// this leans on the standard library's encoding/json for marshaling and
// indentation rather than reaching for a third-party one.
package tbdjson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/jpmec/tbd"
)

// KeyFormat selects how a live key is rendered as a JSON object key.
type KeyFormat int

const (
	KeyRaw KeyFormat = iota
	KeyHexQuoted
)

// ValueFormat selects how a live value is rendered as a JSON string.
type ValueFormat int

const (
	ValueRaw ValueFormat = iota
	ValueHexQuoted
)

// Dump renders every live key in a as a pretty-printed JSON object.
func Dump(a *tbd.Arena, keyFmt KeyFormat, valueFmt ValueFormat) ([]byte, error) {
	obj := make(map[string]string)
	it := a.Begin()
	for !it.End() {
		obj[formatKey(it.Key(), keyFmt)] = formatValue(it.Value(), valueFmt)
		it.Next()
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func formatKey(key string, format KeyFormat) string {
	if format == KeyHexQuoted {
		return hex.EncodeToString([]byte(key))
	}
	return key
}

func formatValue(value []byte, format ValueFormat) string {
	if format == ValueHexQuoted {
		return "'" + hex.EncodeToString(value) + "'"
	}
	return string(value)
}
