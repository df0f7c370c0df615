// Package charset decodes raw dataset bytes whose encoding is not guaranteed.
//
// Delimited exports from spreadsheet tools commonly arrive as UTF-8, CP949 /
// EUC-KR (Korean locales), or Latin-1. Decode probes a caller-supplied
// candidate list in order and returns the first clean decode.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnreadableEncoding is returned when no candidate encoding produced a
// clean decode. It is fatal to the load step; there is no partial result.
var ErrUnreadableEncoding = errors.New("charset: no candidate encoding could decode input")

// BOM is the UTF-8 byte order mark. Spreadsheet tools prepend it so that
// locale-specific characters survive a round trip; Decode strips it and
// exporters may re-add it.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultCandidates is the probe order used when the caller supplies none.
var DefaultCandidates = []string{"utf-8", "cp949", "euc-kr", "latin1"}

// Decode decodes data by trying each candidate encoding in order.
// It returns the decoded UTF-8 text and the name of the encoding that
// succeeded. A leading UTF-8 BOM is stripped.
func Decode(data []byte, candidates []string) (string, string, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	data = bytes.TrimPrefix(data, BOM)

	var errs []error
	for _, name := range candidates {
		text, err := decodeOne(data, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return text, name, nil
	}

	return "", "", fmt.Errorf("%w: %w", ErrUnreadableEncoding, errors.Join(errs...))
}

func decodeOne(data []byte, name string) (string, error) {
	enc, err := byName(name)
	if err != nil {
		return "", err
	}

	if enc == nil {
		// Plain UTF-8: validate, no transform needed.
		if !utf8.Valid(data) {
			return "", errors.New("invalid UTF-8")
		}
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	// transform maps undecodable bytes to U+FFFD instead of failing; treat
	// that as a failed probe so a later candidate gets its turn.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errors.New("lossy decode")
	}
	return string(decoded), nil
}

// byName resolves a candidate name to an encoding. A nil encoding with nil
// error means plain UTF-8.
func byName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return nil, nil
	case "utf-8-sig":
		return unicode.UTF8BOM, nil
	case "cp949", "uhc", "windows-949":
		// x/text exposes CP949 under its EUC-KR implementation.
		return korean.EUCKR, nil
	case "euc-kr", "euckr":
		return korean.EUCKR, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// EncodeTo encodes UTF-8 text into the named encoding, for writing datasets
// back out in their source codepage.
func EncodeTo(text string, name string) ([]byte, error) {
	enc, err := byName(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, err
	}
	return out, nil
}
