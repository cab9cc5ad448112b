package playlist

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncoding is the permissive single-byte decode applied when a
// playlist is not valid UTF-8. Windows-1252 maps every byte to a rune, so
// the fallback can never itself fail; exports from Windows media managers
// are the usual source of such files.
var fallbackEncoding = charmap.Windows1252

// Decode interprets raw playlist bytes as UTF-8, falling back to
// Windows-1252 when the bytes are not valid UTF-8. usedFallback reports
// whether the fallback was taken.
func Decode(raw []byte) (text string, usedFallback bool) {
	if utf8.Valid(raw) {
		return string(raw), false
	}
	decoded, err := fallbackEncoding.NewDecoder().Bytes(raw)
	if err != nil {
		// Windows-1252 decoding is total; this branch is unreachable in
		// practice but we degrade to byte-wise replacement rather than fail.
		return string(raw), true
	}
	return string(decoded), true
}

// ReadFileFallback reads path and decodes it per [Decode]. An encoding
// mismatch never produces an error; only I/O failures do.
func ReadFileFallback(path string) (text string, usedFallback bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	text, usedFallback = Decode(raw)
	return text, usedFallback, nil
}
