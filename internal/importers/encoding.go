package importers

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding guesses the text encoding from a byte-order mark or, failing
// that, from UTF-8 validity. Anything that is not valid UTF-8 is assumed to
// be Windows-1252, the usual encoding of legacy bank exports.
func DetectEncoding(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingWindows1252
	}
}

// Decode converts data from the named encoding to UTF-8, dropping any BOM.
func Decode(data []byte, name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: input is not valid utf-8", ErrMalformedFile)
		}
		return bytes.TrimPrefix(data, bomUTF8), nil
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedFile, name, err)
	}
	return bytes.TrimPrefix(out, bomUTF8), nil
}

// candidateEncodings is the fallback order: the detected encoding first, then
// UTF-8 and the single-byte Western encodings, which never fail to decode.
func candidateEncodings(detected string) []string {
	candidates := []string{detected}
	for _, name := range []string{EncodingUTF8, EncodingWindows1252, EncodingLatin1} {
		if name != detected {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingUTF8BOM:
		return unicode.UTF8BOM, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case EncodingLatin1, "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("%w: unknown encoding %q", ErrUnsupportedType, name)
}
