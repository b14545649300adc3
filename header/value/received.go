package value

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
)

// The clause names of a Received trace, in the order they must appear.
const (
	ReceivedFrom = "from"
	ReceivedBy   = "by"
	ReceivedVia  = "via"
	ReceivedWith = "with"
	ReceivedID   = "id"
	ReceivedFor  = "for"
)

var clauseOrder = []string{ReceivedFrom, ReceivedBy, ReceivedVia, ReceivedWith, ReceivedID, ReceivedFor}

func clauseIndex(name string) int {
	for i, n := range clauseOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// ReceivedClause is one "name value (comment)" clause of a Received field.
// Value is a single lexical item kept in its wire form: a domain, atom,
// domain literal, quoted-string, addr-spec or angle-addr. Comment holds the
// content of any comments following the value, without parentheses.
type ReceivedClause struct {
	Name    string
	Value   string
	Comment string
}

// ReceivedToken is the value of a Received trace field: the clauses followed
// by the date the message was received.
type ReceivedToken struct {
	Clauses []ReceivedClause
	Date    DateTime
}

var _ Value = ReceivedToken{}

func (ReceivedToken) sealed() {}

// Kind returns KindReceivedToken.
func (ReceivedToken) Kind() Kind { return KindReceivedToken }

// Clause returns the value of the named clause, if present.
func (r ReceivedToken) Clause(name string) (string, bool) {
	for _, c := range r.Clauses {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// String returns the trace as it would be written in a header.
func (r ReceivedToken) String() string { return render(r) }

// Render writes the clauses followed by ";" and the date.
func (r ReceivedToken) Render(w *field.Writer, o *RenderOptions) error {
	last := -1
	for _, c := range r.Clauses {
		ix := clauseIndex(c.Name)
		if ix < 0 {
			return fmt.Errorf("unknown received clause %q", c.Name)
		}
		if ix <= last {
			return fmt.Errorf("received clause %q repeated or out of order", c.Name)
		}
		last = ix

		if err := checkClauseValue(c.Value); err != nil {
			return err
		}

		w.Space(c.Name)
		w.Space(c.Value)
		if c.Comment != "" {
			cm := "(" + c.Comment + ")"
			if err := checkComment(cm); err != nil {
				return err
			}
			w.Space(cm)
		}
	}

	w.Write(";")
	return r.Date.Render(w, o)
}

func checkClauseValue(v string) (err error) {
	defer catch(&err)
	p := newParser(v)
	if got := p.xclauseValue(); got != v {
		p.XErrorf("received clause value %q is not in canonical form", v)
	}
	if !p.Empty() {
		p.XErrorf("received clause value %q is not a single item", v)
	}
	return nil
}

func checkComment(c string) (err error) {
	defer lex.Catch(&err)
	p := lex.NewScanner(c)
	p.XComment()
	if !p.Empty() {
		p.XErrorf("unbalanced comment")
	}
	return nil
}

// xclauseValue parses a single clause value and returns it in canonical
// wire form.
func (p *parser) xclauseValue() string {
	switch p.Peek() {
	case '<':
		as := p.xbareAngleAddr()
		return "<" + as.String() + ">"
	case '[':
		return p.xbareDomain()
	case '"':
		q := lex.Quote(p.XQuotedString())
		if p.Take("@") {
			return q + "@" + p.xbareDomain()
		}
		return q
	}

	s := p.XDotAtom(false)
	if p.Take("@") {
		return s + "@" + p.xbareDomain()
	}
	return s
}

func (p *parser) xreceived() ReceivedToken {
	var r ReceivedToken
	last := -1
	for {
		p.XSkipCFWS()
		if p.Take(";") {
			break
		}

		off := p.Offset()
		name := strings.ToLower(p.XAtom())
		ix := clauseIndex(name)
		switch {
		case ix < 0:
			p.XErrorAt(off, "unknown received clause %q", name)
		case ix <= last:
			p.XErrorAt(off, "received clause %q repeated or out of order", name)
		}
		last = ix

		p.XSkipCFWS()
		c := ReceivedClause{Name: name, Value: p.xclauseValue()}
		c.Comment = strings.Join(p.XComments(), " ")
		r.Clauses = append(r.Clauses, c)
	}

	r.Date = p.xdateTime()
	return r
}

// ParseReceivedToken parses the body of a Received field. Clauses must be
// known, appear at most once and appear in the order from, by, via, with,
// id, for. The date after the semicolon is required.
func ParseReceivedToken(body string) (r ReceivedToken, err error) {
	defer catch(&err)
	p := newParser(body)
	return p.xreceived(), nil
}
