package source

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding describes how template text is stored on disk and how generated
// units are written back. The zero value means "unknown". Encodings are
// comparable values.
type Encoding struct {
	name string
}

type codec struct {
	enc encoding.Encoding
	bom string
}

var (
	// UTF8 is UTF-8 without a byte order mark; the default output encoding.
	UTF8 = Encoding{name: "utf-8"}
	// UTF8BOM is UTF-8 with a leading byte order mark.
	UTF8BOM = Encoding{name: "utf-8-bom"}
	// UTF16LE is little-endian UTF-16 with a byte order mark.
	UTF16LE = Encoding{name: "utf-16le"}
	// UTF16BE is big-endian UTF-16 with a byte order mark.
	UTF16BE = Encoding{name: "utf-16be"}
)

var codecs = map[Encoding]codec{
	UTF8:    {enc: unicode.UTF8},
	UTF8BOM: {enc: unicode.UTF8BOM, bom: "\xEF\xBB\xBF"},
	UTF16LE: {enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), bom: "\xFF\xFE"},
	UTF16BE: {enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM), bom: "\xFE\xFF"},
}

var encodingsByName = map[string]Encoding{
	"utf-8":     UTF8,
	"utf8":      UTF8,
	"utf-8-bom": UTF8BOM,
	"utf8-bom":  UTF8BOM,
	"utf-16le":  UTF16LE,
	"utf-16":    UTF16LE,
	"utf-16be":  UTF16BE,
}

// ParseEncoding resolves an encoding name (case-insensitive).
func ParseEncoding(name string) (Encoding, error) {
	enc, ok := encodingsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Encoding{}, fmt.Errorf("unknown encoding %q (expected utf-8|utf-8-bom|utf-16le|utf-16be)", name)
	}
	return enc, nil
}

// IsZero reports whether the encoding is unknown.
func (e Encoding) IsZero() bool {
	return e.name == ""
}

// Name returns the canonical encoding name, or "" for the zero value.
func (e Encoding) Name() string {
	return e.name
}

func (e Encoding) String() string {
	if e.IsZero() {
		return "unknown"
	}
	return e.name
}

// HasBOM reports whether encoded output starts with a byte order mark.
func (e Encoding) HasBOM() bool {
	return codecs[e].bom != ""
}

// BOM returns the byte order mark written in front of encoded output.
func (e Encoding) BOM() []byte {
	return []byte(codecs[e].bom)
}

// Or returns e unless it is the zero value, in which case fallback is returned.
func (e Encoding) Or(fallback Encoding) Encoding {
	if e.IsZero() {
		return fallback
	}
	return e
}

// Encode converts UTF-8 text into the encoding's byte form.
func (e Encoding) Encode(text string) ([]byte, error) {
	enc := e.Or(UTF8)
	out, err := codecs[enc].enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc.name, err)
	}
	return out, nil
}

// Decode converts bytes in this encoding into UTF-8, dropping any BOM.
func (e Encoding) Decode(content []byte) ([]byte, error) {
	enc := e.Or(UTF8)
	out, err := codecs[enc].enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc.name, err)
	}
	return out, nil
}

// DetectEncoding sniffs a byte order mark. Content without a BOM reports
// the zero Encoding and ok=false; callers then assume UTF-8.
func DetectEncoding(content []byte) (enc Encoding, ok bool) {
	for _, candidate := range []Encoding{UTF8BOM, UTF16LE, UTF16BE} {
		if bytes.HasPrefix(content, candidate.BOM()) {
			return candidate, true
		}
	}
	return Encoding{}, false
}
