package word

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Encoder transforms a native unicode string into bytes in the named
// charset. If the charset is not supported, it returns an error.
type Encoder func(charset, s string) ([]byte, error)

// Decoder transforms bytes in the named charset into a native unicode string.
// Bytes that are invalid in the source charset become
// unicode.ReplacementChar. If the charset is not supported, it returns an
// error.
type Decoder func(charset string, b []byte) (string, error)

var (
	// CharsetEncoder is used to turn text into bytes before building an
	// encoded-word. Importing the encoding package replaces it with one that
	// knows every IANA charset:
	//  import _ "github.com/zostay/go-mailfield/header/encoding"
	CharsetEncoder Encoder = DefaultCharsetEncoder

	// CharsetDecoder is used to turn the bytes of encoded-words and RFC 2231
	// parameter values into text. Importing the encoding package replaces it
	// with one that knows every IANA charset:
	//  import _ "github.com/zostay/go-mailfield/header/encoding"
	CharsetDecoder Decoder = DefaultCharsetDecoder
)

// UnsupportedCharsetError is returned when text is labeled with a charset
// that the installed CharsetDecoder or CharsetEncoder cannot handle.
type UnsupportedCharsetError struct {
	Charset string
	Err     error
}

// Error returns the error message.
func (err *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("unsupported charset %q", err.Charset)
}

// Unwrap returns the error reported by the charset hook.
func (err *UnsupportedCharsetError) Unwrap() error {
	return err.Err
}

// DefaultCharsetEncoder handles us-ascii, iso-8859-1 and utf-8. When writing
// us-ascii or iso-8859-1, characters outside the charset are replaced with
// the ASCII SUB character.
func DefaultCharsetEncoder(charset, s string) ([]byte, error) {
	var limit rune
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return []byte(s), nil
	case "us-ascii", "":
		limit = unicode.MaxASCII
	case "iso-8859-1", "latin1":
		limit = unicode.MaxLatin1
	default:
		return nil, fmt.Errorf("unsupported byte encoding %q", charset)
	}

	buf := make([]byte, 0, len(s))
	for _, c := range s {
		if c > limit {
			c = '\x1a'
		}
		buf = append(buf, byte(c))
	}
	return buf, nil
}

// DefaultCharsetDecoder handles us-ascii, iso-8859-1 and utf-8. Bytes above
// 0x7f in us-ascii and invalid sequences in utf-8 become
// unicode.ReplacementChar.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	var s strings.Builder
	switch strings.ToLower(charset) {
	case "us-ascii", "":
		for _, c := range b {
			if c > unicode.MaxASCII {
				s.WriteRune(unicode.ReplacementChar)
			} else {
				s.WriteByte(c)
			}
		}
	case "iso-8859-1", "latin1":
		for _, c := range b {
			s.WriteRune(rune(c))
		}
	case "utf-8", "utf8":
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			s.WriteRune(r)
			b = b[size:]
		}
	default:
		return "", fmt.Errorf("unsupported byte encoding %q", charset)
	}
	return s.String(), nil
}

// Decode turns b, labeled with charset, into text with the installed
// CharsetDecoder. The error is an *UnsupportedCharsetError when the decoder
// does not know the charset.
func Decode(charset string, b []byte) (string, error) {
	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return "", &UnsupportedCharsetError{Charset: charset, Err: err}
	}
	return s, nil
}

// Encode turns s into bytes in charset with the installed CharsetEncoder.
// The error is an *UnsupportedCharsetError when the encoder does not know the
// charset.
func Encode(charset, s string) ([]byte, error) {
	b, err := CharsetEncoder(charset, s)
	if err != nil {
		return nil, &UnsupportedCharsetError{Charset: charset, Err: err}
	}
	return b, nil
}

// charsetReader adapts CharsetDecoder to the interface mime.WordDecoder
// expects.
func charsetReader(charset string, r io.Reader) (io.Reader, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s, err := Decode(charset, bs)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader([]byte(s)), nil
}
