package catalog

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 detects the encoding of a catalog file, strips any BOM,
// and returns UTF-8 bytes. Hand-maintained spreadsheet exports show up as
// UTF-8 with BOM, UTF-16 either endian, or Latin-1; anything already
// valid UTF-8 passes through untouched.
func decodeToUTF8(data []byte) ([]byte, error) {
	switch {
	case len(data) == 0:
		return data, nil
	case bytes.HasPrefix(data, bomUTF8):
		return data[3:], nil
	case bytes.HasPrefix(data, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(data[2:])
		if err != nil {
			return nil, fmt.Errorf("decode utf-16le: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(data[2:])
		if err != nil {
			return nil, fmt.Errorf("decode utf-16be: %w", err)
		}
		return out, nil
	case utf8.Valid(data):
		return data, nil
	}

	// Fallback: Latin-1 maps every byte to a code point, so this cannot
	// fail, but it may be wrong for exotic inputs.
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode latin-1: %w", err)
	}
	return out, nil
}
