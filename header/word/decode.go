// Package word implements the RFC 2047 encoded-word codec used to carry
// non-ASCII text in header fields, along with the charset hooks it shares
// with RFC 2231 parameter values.
package word

import (
	"errors"
	"mime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fragment is a single word of header text together with the white space
// that preceded it on the wire.
type Fragment struct {
	Space  string // white space before Text, possibly empty
	Text   string // the word itself
	Quoted bool   // Text is the content of a quoted-string
}

var decoder = &mime.WordDecoder{CharsetReader: charsetReader}

// IsEncodedWord reports whether s is exactly one syntactically valid
// encoded-word: "=?" charset "?" ("B" / "Q") "?" encoded-text "?=".
func IsEncodedWord(s string) bool {
	if len(s) < 8 || !strings.HasPrefix(s, "=?") || !strings.HasSuffix(s, "?=") {
		return false
	}

	parts := strings.Split(s[2:len(s)-2], "?")
	if len(parts) != 3 {
		return false
	}

	charset, enc, text := parts[0], parts[1], parts[2]
	if charset == "" || len(enc) != 1 || !strings.ContainsAny(enc, "bBqQ") {
		return false
	}
	for i := 0; i < len(charset); i++ {
		if c := charset[i]; c <= ' ' || c >= 0x7f || c == '(' || c == ')' || c == '"' {
			return false
		}
	}
	for i := 0; i < len(text); i++ {
		if c := text[i]; c <= ' ' || c >= 0x7f {
			return false
		}
	}
	return true
}

// decodeWord decodes a single encoded-word. Any RFC 2231 language suffix on
// the charset ("utf-8*en") is dropped before decoding.
func decodeWord(w string) (string, error) {
	if i := strings.IndexByte(w[2:], '?') + 2; i > 2 {
		if star := strings.IndexByte(w[2:i], '*'); star >= 0 {
			w = w[:2+star] + w[i:]
		}
	}
	return decoder.Decode(w)
}

// Join folds fragments into decoded text. Encoded-words are decoded and the
// white space between two adjacent encoded-words is discarded. Encoded-words
// that fail to decode are kept as literal text, unless the failure is an
// *UnsupportedCharsetError, which is returned. A quoted fragment is decoded
// only when its whole content is a run of encoded-words. The result is in
// Unicode normalization form C.
func Join(frags []Fragment) (string, error) {
	var b strings.Builder
	prevEncoded := false
	for _, f := range frags {
		text, encoded, err := decodeFragment(f)
		if err != nil {
			return "", err
		}

		if !encoded || !prevEncoded {
			b.WriteString(f.Space)
		}
		b.WriteString(text)

		if f.Text != "" {
			prevEncoded = encoded
		}
	}
	return norm.NFC.String(b.String()), nil
}

func decodeFragment(f Fragment) (string, bool, error) {
	if f.Quoted {
		ws := strings.Fields(f.Text)
		if len(ws) == 0 {
			return f.Text, false, nil
		}
		for _, w := range ws {
			if !IsEncodedWord(w) {
				return f.Text, false, nil
			}
		}
		s, err := DecodeText(f.Text)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}

	if !IsEncodedWord(f.Text) {
		return f.Text, false, nil
	}

	s, err := decodeWord(f.Text)
	if err != nil {
		var uerr *UnsupportedCharsetError
		if errors.As(err, &uerr) {
			return "", false, uerr
		}
		return f.Text, false, nil
	}
	return s, true, nil
}

// Split breaks text into fragments at runs of white space, line breaks
// included. Trailing white space becomes a final fragment with empty Text.
func Split(s string) []Fragment {
	return split(s, isSpace)
}

func split(s string, space func(byte) bool) []Fragment {
	var frags []Fragment
	for len(s) > 0 {
		i := 0
		for i < len(s) && space(s[i]) {
			i++
		}
		j := i
		for j < len(s) && !space(s[j]) {
			j++
		}
		frags = append(frags, Fragment{Space: s[:i], Text: s[i:j]})
		s = s[j:]
	}
	return frags
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isWSP(c byte) bool {
	return c == ' ' || c == '\t'
}

// DecodeText decodes unstructured header text (RFC 5322 unstructured, RFC
// 2045 text), keeping all white space except what separates adjacent
// encoded-words.
func DecodeText(s string) (string, error) {
	return Join(Split(s))
}
