// Package encoding installs charset hooks into the word package that know
// every charset registered in:
//
// * golang.org/x/text/encoding/ianaindex
//
// This makes compiled binaries considerably larger, but lets encoded-words
// and RFC 2231 parameter values in pretty much any charset found in the wild
// be decoded. Import it for its side effect:
//
//	import _ "github.com/zostay/go-mailfield/header/encoding"
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-mailfield/header/word"
)

func init() {
	word.CharsetEncoder = CharsetEncoder
	word.CharsetDecoder = CharsetDecoder
}

// CharsetEncoder is a word.Encoder for every IANA charset.
func CharsetEncoder(charset, s string) ([]byte, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("no encoding found for charset %q", charset)
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}

// CharsetDecoder is a word.Decoder for every IANA charset.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
