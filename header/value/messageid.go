package value

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
)

// MessageID is a message identifier: "<" Left "@" Right ">". Both halves
// are opaque and kept in their lexical form, so a quoted left half keeps its
// quotes and a literal right half keeps its brackets.
type MessageID struct {
	Left  string
	Right string
}

var _ Value = MessageID{}

// NewMessageID returns a fresh, globally unique message identifier for the
// given domain.
func NewMessageID(domain string) MessageID {
	return MessageID{Left: uuid.NewString(), Right: domain}
}

func (MessageID) sealed() {}

// Kind returns KindMessageID.
func (MessageID) Kind() Kind { return KindMessageID }

// String returns the identifier with its angle brackets.
func (id MessageID) String() string { return render(id) }

// Render writes the identifier.
func (id MessageID) Render(w *field.Writer, o *RenderOptions) error {
	s, err := id.format()
	if err != nil {
		return err
	}
	w.Space(s)
	return nil
}

func (id MessageID) format() (string, error) {
	left := id.Left
	if !lex.IsDotAtom(left) {
		if _, err := ParseMessageID("<" + left + "@x>"); err != nil {
			return "", fmt.Errorf("invalid message identifier left part %q", id.Left)
		}
	}
	if !lex.IsDotAtom(id.Right) && !isDomainLiteral(id.Right) {
		return "", fmt.Errorf("invalid message identifier right part %q", id.Right)
	}
	return "<" + left + "@" + id.Right + ">", nil
}

// xmsgID parses "<" id-left "@" id-right ">", obsolete forms included.
func (p *parser) xmsgID() MessageID {
	p.XSkipCFWS()
	p.XTake("<")

	var left string
	for {
		p.XSkipCFWS()
		if p.Peek() == '"' {
			left += lex.Quote(p.XQuotedString())
		} else {
			left += p.XAtom()
		}
		p.XSkipCFWS()
		if !p.Take(".") {
			break
		}
		left += "."
	}

	p.XTake("@")
	right := p.xdomain()
	p.XSkipCFWS()
	p.XTake(">")

	return MessageID{Left: left, Right: right}
}

// ParseMessageID parses a single message identifier, as used by Message-ID
// and Content-ID.
func ParseMessageID(body string) (id MessageID, err error) {
	defer catch(&err)
	p := newParser(body)
	id = p.xmsgID()
	p.XEnd()
	return id, nil
}

// MessageIDList is an ordered list of message identifiers, as used by
// In-Reply-To and References. Duplicates are kept.
type MessageIDList []MessageID

var _ Value = MessageIDList{}

func (MessageIDList) sealed() {}

// Kind returns KindMessageIDList.
func (MessageIDList) Kind() Kind { return KindMessageIDList }

// String returns the identifiers separated by spaces.
func (l MessageIDList) String() string { return render(l) }

// Render writes the identifiers with fold points between them.
func (l MessageIDList) Render(w *field.Writer, o *RenderOptions) error {
	for _, id := range l {
		if err := id.Render(w, o); err != nil {
			return err
		}
	}
	return nil
}

// ParseMessageIDList parses a list of message identifiers. The phrases and
// commas the obsolete syntax allows between identifiers are skipped.
func ParseMessageIDList(body string) (l MessageIDList, err error) {
	defer catch(&err)
	p := newParser(body)
	for {
		p.XSkipCFWS()
		switch {
		case p.Empty():
			return l, nil
		case p.Peek() == '<':
			l = append(l, p.xmsgID())
		case p.Take(","):
		default:
			p.xphrase()
		}
	}
}
