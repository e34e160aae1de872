package subtitle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw subtitle bytes to a UTF-8 string, tolerating the
// encodings subtitle sites actually serve: UTF-8 with or without BOM, UTF-16
// with BOM, windows-1252, and latin-1 as the last resort. Returns the decoded
// text and the name of the encoding that was applied.
func Decode(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), "utf-8-sig", nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, err := decoder.Bytes(data)
		if err != nil {
			return "", "", err
		}
		name := "utf-16le"
		if bytes.HasPrefix(data, bomUTF16BE) {
			name = "utf-16be"
		}
		return string(decoded), name, nil
	}

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	// windows-1252 is the usual culprit for single-byte files; its decoder
	// substitutes U+FFFD for the few undefined code points, which signals
	// that latin-1 is the better fit.
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err == nil && !strings.ContainsRune(string(decoded), utf8.RuneError) {
		return string(decoded), "windows-1252", nil
	}

	decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", err
	}
	return string(decoded), "latin-1", nil
}
