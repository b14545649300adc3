package word

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/zostay/go-mailfield/header/lex"
)

// MaxWordLength is the longest encoded-word that will be produced, counting
// the delimiters and the charset name.
const MaxWordLength = 75

// DefaultCharset is used for encoded-words when no charset is chosen.
const DefaultCharset = "utf-8"

// Options adjusts how text is turned into header words.
type Options struct {
	// Charset names the charset for encoded-words. Empty means DefaultCharset.
	Charset string

	// Raw8bit permits UTF-8 to be written without encoding, as allowed for
	// internationalized messages by RFC 6532.
	Raw8bit bool

	// FirstLineRoom, when positive, is the room left on the header line for
	// the first fragment and its leading white space. An encoded-word in
	// that position is kept short enough to fit.
	FirstLineRoom int
}

// firstWord returns the longest the first encoded-word may be when it is
// written after space, or 0 for no limit beyond MaxWordLength.
func (o Options) firstWord(space string) int {
	if o.FirstLineRoom <= 0 {
		return 0
	}
	if space == "" {
		space = " "
	}
	if n := o.FirstLineRoom - len(space); n > 0 {
		return n
	}
	return 0
}

func (o Options) charset() string {
	if o.Charset == "" {
		return DefaultCharset
	}
	return o.Charset
}

// NeedsEncoding reports whether a single word must be written as an
// encoded-word: it holds control characters, holds 8-bit bytes when raw8bit
// is false, or would itself be mistaken for an encoded-word.
func NeedsEncoding(w string, raw8bit bool) bool {
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c < ' ' || c == 0x7f || c >= 0x80 && !raw8bit {
			return true
		}
	}
	return IsEncodedWord(w)
}

func isQLiteral(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '!' || c == '*' || c == '+' || c == '-' || c == '/'
}

func qLen(b []byte) int {
	n := 0
	for _, c := range b {
		if isQLiteral(c) || c == ' ' {
			n++
		} else {
			n += 3
		}
	}
	return n
}

func bLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

func qEncode(b []byte) string {
	const hex = "0123456789ABCDEF"
	var s strings.Builder
	for _, c := range b {
		switch {
		case isQLiteral(c):
			s.WriteByte(c)
		case c == ' ':
			s.WriteByte('_')
		default:
			s.WriteByte('=')
			s.WriteByte(hex[c>>4])
			s.WriteByte(hex[c&0xf])
		}
	}
	return s.String()
}

// EncodeWords turns s into one or more encoded-words in the given charset.
// The encoding, B or Q, is whichever gives the shorter result. Every word is
// at most MaxWordLength octets and words never split a character. The words
// must be written separated by white space.
func EncodeWords(charset, s string) ([]string, error) {
	return encodeWords(charset, s, 0)
}

// encodeWords is EncodeWords with the first word limited to first octets
// when first is positive. A single character too long for that limit is
// still written in a word of its own.
func encodeWords(charset, s string, first int) ([]string, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	if s == "" {
		return nil, nil
	}

	var (
		chunks [][]byte
		all    []byte
	)
	for _, r := range s {
		b, err := Encode(charset, string(r))
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, b)
		all = append(all, b...)
	}

	useQ := qLen(all) <= bLen(len(all))
	enc, sel := base64.StdEncoding.EncodeToString, "B"
	size := func(b []byte) int { return bLen(len(b)) }
	if useQ {
		enc, sel, size = qEncode, "Q", qLen
	}

	prefix := "=?" + charset + "?" + sel + "?"
	room := MaxWordLength - len(prefix) - len("?=")
	if room < 16 {
		return nil, fmt.Errorf("charset name %q is too long for an encoded-word", charset)
	}

	limit := room
	if first > 0 && first-len(prefix)-len("?=") < room {
		limit = first - len(prefix) - len("?=")
	}

	var (
		words []string
		cur   []byte
	)
	for _, c := range chunks {
		next := append(cur[:len(cur):len(cur)], c...)
		if len(cur) > 0 && size(next) > limit {
			words = append(words, prefix+enc(cur)+"?=")
			next = c
			limit = room
		}
		cur = next
	}
	words = append(words, prefix+enc(cur)+"?=")

	return words, nil
}

// EncodeText renders unstructured text as fragments ready to be written to a
// header. Words that cannot be written as they are, along with the white
// space between consecutive such words, are turned into encoded-words. Line
// breaks are never written raw.
func EncodeText(s string, o Options) ([]Fragment, error) {
	frags := split(s, isWSP)
	out := make([]Fragment, 0, len(frags))
	for i := 0; i < len(frags); i++ {
		f := frags[i]
		if f.Text == "" || !NeedsEncoding(f.Text, o.Raw8bit) {
			out = append(out, f)
			continue
		}

		var run strings.Builder
		run.WriteString(f.Text)
		for i+1 < len(frags) && frags[i+1].Text != "" && NeedsEncoding(frags[i+1].Text, o.Raw8bit) {
			i++
			run.WriteString(frags[i].Space)
			run.WriteString(frags[i].Text)
		}

		first := 0
		if len(out) == 0 {
			first = o.firstWord(f.Space)
		}
		ws, err := encodeWords(o.charset(), run.String(), first)
		if err != nil {
			return nil, err
		}
		for k, w := range ws {
			sp := " "
			if k == 0 {
				sp = f.Space
			}
			out = append(out, Fragment{Space: sp, Text: w})
		}
	}
	return out, nil
}

// EncodePhrase renders text as an RFC 5322 phrase, such as a display name.
// Plain words are written as atoms. Otherwise printable text is written as a
// single quoted-string and anything else as encoded-words.
func EncodePhrase(s string, o Options) ([]Fragment, error) {
	if s == "" {
		return nil, nil
	}

	words := strings.Split(s, " ")
	atoms, printable := true, true
	for _, w := range words {
		if IsEncodedWord(w) {
			atoms, printable = false, false
			break
		}
		if !lex.IsAtom(w) || !o.Raw8bit && !isASCII(w) {
			atoms = false
		}
	}
	for i := 0; i < len(s) && printable; i++ {
		c := s[i]
		printable = c >= ' ' && c < 0x7f || c >= 0x80 && o.Raw8bit
	}

	switch {
	case atoms:
		frags := make([]Fragment, len(words))
		for i, w := range words {
			frags[i] = Fragment{Space: " ", Text: w}
		}
		frags[0].Space = ""
		return frags, nil
	case printable:
		return []Fragment{{Text: lex.Quote(s)}}, nil
	}

	ws, err := encodeWords(o.charset(), s, o.firstWord(""))
	if err != nil {
		return nil, err
	}
	frags := make([]Fragment, len(ws))
	for i, w := range ws {
		frags[i] = Fragment{Space: " ", Text: w}
	}
	frags[0].Space = ""
	return frags, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
