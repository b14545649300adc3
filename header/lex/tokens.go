package lex

import "strings"

// XSkipCFWS skips any mix of folding white space and comments. It returns
// true if anything was skipped.
func (p *Scanner) XSkipCFWS() bool {
	start := p.o
	for !p.Empty() {
		c := p.s[p.o]
		switch {
		case IsFWS(c):
			p.o++
		case c == '(':
			p.xcomment(1)
		default:
			return p.o > start
		}
	}
	return p.o > start
}

// XComments skips CFWS like XSkipCFWS and returns the content of each
// comment skipped, without the enclosing parentheses.
func (p *Scanner) XComments() []string {
	var cs []string
	for !p.Empty() {
		c := p.s[p.o]
		switch {
		case IsFWS(c):
			p.o++
		case c == '(':
			cs = append(cs, p.XComment())
		default:
			return cs
		}
	}
	return cs
}

// XComment consumes one comment, including nested comments, and returns its
// content without the outer parentheses.
func (p *Scanner) XComment() string {
	start := p.o
	p.xcomment(1)
	return p.s[start+1 : p.o-1]
}

func (p *Scanner) xcomment(depth int) {
	if depth > MaxCommentDepth {
		p.XErrorf("comments nested deeper than %d", MaxCommentDepth)
	}
	open := p.o
	p.XTake("(")
	for {
		if p.Empty() {
			p.XErrorAt(open, "unterminated comment")
		}
		switch p.s[p.o] {
		case ')':
			p.o++
			return
		case '(':
			p.xcomment(depth + 1)
		case '\\':
			p.o++
			if p.Empty() {
				p.XErrorAt(open, "unterminated comment")
			}
			p.o++
		case 0:
			p.XErrorf("NUL in comment")
		default:
			p.o++
		}
	}
}

// XAtom consumes a run of atext. Surrounding CFWS is the caller's concern.
func (p *Scanner) XAtom() string {
	return p.xtakeWhile1("atom", IsAtext)
}

// XDotAtom consumes a dot-atom-text. With obsolete set, CFWS around the dots
// is skipped and dropped from the result.
func (p *Scanner) XDotAtom(obsolete bool) string {
	var b strings.Builder
	b.WriteString(p.XAtom())
	for {
		save := p.o
		if obsolete {
			p.XSkipCFWS()
		}
		if !p.Take(".") {
			p.o = save
			return b.String()
		}
		if obsolete {
			p.XSkipCFWS()
		}
		b.WriteByte('.')
		b.WriteString(p.XAtom())
	}
}

// XQuotedString consumes a quoted-string and returns its content with
// quoted-pairs resolved and folding line breaks removed.
func (p *Scanner) XQuotedString() string {
	open := p.o
	p.XTake(`"`)
	var b strings.Builder
	for {
		if p.Empty() {
			p.XErrorAt(open, "unterminated quoted-string")
		}
		c := p.s[p.o]
		switch {
		case c == '"':
			p.o++
			return b.String()
		case c == '\\':
			p.o++
			if p.Empty() {
				p.XErrorAt(open, "unterminated quoted-string")
			}
			b.WriteByte(p.s[p.o])
			p.o++
		case c == '\r' || c == '\n':
			p.o++
		case IsWSP(c) || IsQtext(c):
			b.WriteByte(c)
			p.o++
		default:
			p.XErrorf("invalid character %q in quoted-string", c)
		}
	}
}

// XWord consumes an atom or a quoted-string. The boolean result is true for
// a quoted-string.
func (p *Scanner) XWord() (string, bool) {
	if p.Peek() == '"' {
		return p.XQuotedString(), true
	}
	return p.XAtom(), false
}

// XDomainLiteral consumes a domain literal and returns it with the square
// brackets and quoted-pairs but without any folding white space.
func (p *Scanner) XDomainLiteral() string {
	open := p.o
	p.XTake("[")
	var b strings.Builder
	b.WriteByte('[')
	for {
		if p.Empty() {
			p.XErrorAt(open, "unterminated domain literal")
		}
		c := p.s[p.o]
		switch {
		case c == ']':
			p.o++
			b.WriteByte(']')
			return b.String()
		case c == '\\':
			p.o++
			if p.Empty() {
				p.XErrorAt(open, "unterminated domain literal")
			}
			b.WriteByte('\\')
			b.WriteByte(p.s[p.o])
			p.o++
		case IsFWS(c):
			p.o++
		case IsDtext(c):
			b.WriteByte(c)
			p.o++
		default:
			p.XErrorf("invalid character %q in domain literal", c)
		}
	}
}

// XToken consumes an RFC 2045 token.
func (p *Scanner) XToken() string {
	return p.xtakeWhile1("token", IsTokenChar)
}
