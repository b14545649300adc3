// Package value defines the typed values carried by header fields and the
// parser and renderer for each of them.
//
// Value is a closed union. Every implementation lives in this package and
// the set of implementations is exactly the set of Kind constants. Which
// kind a field carries is decided by the header registry, never guessed from
// the field body.
package value

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/word"
)

// Kind names the grammar of a header field body.
type Kind int

// The kinds of header field value.
const (
	KindUnknown Kind = iota
	KindDateTime
	KindMailbox
	KindMailboxList
	KindAddressList
	KindOptMailboxList
	KindOptAddressList
	KindMessageID
	KindMessageIDList
	KindUnstructured
	KindPhraseList
	KindPath
	KindReceivedToken
	KindMime
	KindTransferEncoding
	KindDisposition
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindDateTime:
		return "DateTime"
	case KindMailbox:
		return "Mailbox"
	case KindMailboxList:
		return "MailboxList"
	case KindAddressList:
		return "AddressList"
	case KindOptMailboxList:
		return "OptMailboxList"
	case KindOptAddressList:
		return "OptAddressList"
	case KindMessageID:
		return "MessageID"
	case KindMessageIDList:
		return "MessageIDList"
	case KindUnstructured:
		return "Unstructured"
	case KindPhraseList:
		return "PhraseList"
	case KindPath:
		return "Path"
	case KindReceivedToken:
		return "ReceivedToken"
	case KindMime:
		return "Mime"
	case KindTransferEncoding:
		return "TransferEncoding"
	case KindDisposition:
		return "Disposition"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind named by s, as returned by Kind.String. Case
// is ignored.
func ParseKind(s string) (Kind, error) {
	for k := KindUnknown; k <= KindDisposition; k++ {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown value kind %q", s)
}

// Value is a typed header field value.
type Value interface {
	// Kind names the variant.
	Kind() Kind

	// Render writes the value to w with fold points wherever the grammar
	// permits folding.
	Render(w *field.Writer, o *RenderOptions) error

	// String renders the value unfolded with the default options.
	String() string

	sealed()
}

// RenderOptions adjusts how values are rendered. The zero value, or a nil
// pointer, renders strict 7-bit RFC 5322 output with UTF-8 encoded-words
// and the default fold lengths.
type RenderOptions struct {
	// Fold is used to size RFC 2231 parameter sections. Nil means
	// field.DefaultFoldEncoding.
	Fold *field.FoldEncoding

	// Internationalized permits raw UTF-8 wherever RFC 6532 allows it, in
	// place of encoded-words, RFC 2231 extended parameters and punycode.
	Internationalized bool

	// Charset is the charset used for encoded-words. Empty means UTF-8.
	Charset string

	// room left on the first line after the field name and colon, set by
	// Lines when folding
	firstLine int
}

func (o *RenderOptions) fold() *field.FoldEncoding {
	if o == nil || o.Fold == nil {
		return field.DefaultFoldEncoding
	}
	return o.Fold
}

func (o *RenderOptions) intl() bool {
	return o != nil && o.Internationalized
}

// words returns the encoder options for text written next into w. Only
// text that opens the first line is given the first line's room, less
// reserve octets for a delimiter that may be written right after it.
func (o *RenderOptions) words(w *field.Writer, reserve int) word.Options {
	if o == nil {
		return word.Options{}
	}
	wo := word.Options{Charset: o.Charset, Raw8bit: o.Internationalized}
	if w.Empty() && o.firstLine > reserve {
		wo.FirstLineRoom = o.firstLine - reserve
	}
	return wo
}

// Lines renders v as the folded lines of a header field named name. The
// lines carry no line breaks; join them with CRLF to write them out.
func Lines(name string, v Value, o *RenderOptions) ([]string, error) {
	var ro RenderOptions
	if o != nil {
		ro = *o
	}
	if n := ro.fold().PreferredFoldLength(); n != field.DoNotFold {
		ro.firstLine = n - len(name) - len(":")
	}

	w := &field.Writer{}
	if err := v.Render(w, &ro); err != nil {
		return nil, err
	}
	return ro.fold().Lines(name, w)
}

// Parse parses an unfolded header field body as the given kind.
func Parse(k Kind, body string) (Value, error) {
	switch k {
	case KindUnknown:
		return Unknown(body), nil
	case KindDateTime:
		return ParseDateTime(body)
	case KindMailbox:
		return ParseMailbox(body)
	case KindMailboxList:
		return ParseMailboxList(body)
	case KindAddressList:
		return ParseAddressList(body)
	case KindOptMailboxList:
		return ParseOptMailboxList(body)
	case KindOptAddressList:
		return ParseOptAddressList(body)
	case KindMessageID:
		return ParseMessageID(body)
	case KindMessageIDList:
		return ParseMessageIDList(body)
	case KindUnstructured:
		return ParseUnstructured(body)
	case KindPhraseList:
		return ParsePhraseList(body)
	case KindPath:
		return ParsePath(body)
	case KindReceivedToken:
		return ParseReceivedToken(body)
	case KindMime:
		return ParseMime(body)
	case KindTransferEncoding:
		return ParseTransferEncoding(body)
	case KindDisposition:
		return ParseDisposition(body)
	}
	return nil, fmt.Errorf("unknown value kind %d", int(k))
}

// render is the String implementation shared by all variants.
func render(v Value) string {
	w := &field.Writer{}
	if err := v.Render(w, &RenderOptions{Fold: field.DoNotFoldEncoding, Internationalized: true}); err != nil {
		return fmt.Sprintf("%%!(%s: %v)", v.Kind(), err)
	}
	return w.String()
}
