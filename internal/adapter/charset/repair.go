// Package charset repairs text that went through a wrong decode/encode cycle.
//
// LUIS exports edited with some Windows tools end up with UTF-8 bytes that
// were read as a single-byte code page and written back as UTF-8, so "é"
// appears as "Ã©". Re-encoding the text with that code page restores the
// original UTF-8 bytes.
package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset is the code page the text is assumed to have been misread with.
const DefaultCharset = "windows-1252"

// Repairer re-encodes mis-decoded text with a fixed charset and decodes the
// result as UTF-8.
type Repairer struct {
	name string
	enc  encoding.Encoding
}

// NewRepairer resolves charset by its IANA name (case-insensitive).
func NewRepairer(charset string) (*Repairer, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q: not supported", charset)
	}
	return &Repairer{name: charset, enc: enc}, nil
}

// Charset returns the configured charset name.
func (r *Repairer) Charset() string {
	return r.name
}

// Repair decodes data as UTF-8, encodes every rune with the configured
// charset and decodes those bytes as UTF-8 again. Invalid input bytes, runes
// the charset cannot represent and bytes that are not valid UTF-8 afterwards
// are dropped. It never fails; the second result counts what was dropped.
func (r *Repairer) Repair(data []byte) ([]byte, int) {
	cm, isCharmap := r.enc.(*charmap.Charmap)
	encoder := r.enc.NewEncoder()

	encoded := make([]byte, 0, len(data))
	dropped := 0
	for len(data) > 0 {
		rn, size := utf8.DecodeRune(data)
		chunk := data[:size]
		data = data[size:]

		if rn == utf8.RuneError && size == 1 {
			dropped++
			continue
		}

		if isCharmap {
			b, ok := cm.EncodeRune(rn)
			if !ok {
				dropped++
				continue
			}
			encoded = append(encoded, b)
			continue
		}

		b, err := encoder.Bytes(chunk)
		if err != nil {
			dropped++
			continue
		}
		encoded = append(encoded, b...)
	}

	out, invalid := dropInvalidUTF8(encoded)
	return out, dropped + invalid
}

func dropInvalidUTF8(b []byte) ([]byte, int) {
	if utf8.Valid(b) {
		return b, 0
	}
	out := make([]byte, 0, len(b))
	dropped := 0
	for len(b) > 0 {
		rn, size := utf8.DecodeRune(b)
		if rn == utf8.RuneError && size == 1 {
			dropped++
		} else {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return out, dropped
}
