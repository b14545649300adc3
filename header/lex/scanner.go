// Package lex provides the lexical building blocks of RFC 5322 header field
// bodies: atoms, dot-atoms, quoted-strings, comments, folding white space and
// the RFC 2045 token. The obsolete forms from RFC 5322 section 4 are accepted
// wherever they can be without making the grammar ambiguous.
//
// The Scanner works on a single, already unfolded, header field body. Every
// failure is reported as a *SyntaxError that carries the byte offset into that
// body where the problem was found.
//
// Methods whose names start with X report failures by panicking with a
// *SyntaxError. This keeps recursive-descent parsers built on top of the
// Scanner short. Every exported parsing function built on these methods must
// defer Catch to turn the panic back into an error:
//
//	func ParseThing(s string) (t Thing, err error) {
//		defer lex.Catch(&err)
//		p := lex.NewScanner(s)
//		...
//	}
package lex

import (
	"fmt"
	"strings"
)

// MaxCommentDepth is the deepest nesting of comments the Scanner will follow.
// Anything nested deeper is rejected with a SyntaxError.
const MaxCommentDepth = 32

// SyntaxError reports a grammar violation found while scanning a header field
// body.
type SyntaxError struct {
	Offset int    // byte offset into the scanned body
	Reason string // what went wrong
}

// Error returns the error message.
func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", err.Reason, err.Offset)
}

// Catch recovers a *SyntaxError panic raised by one of the X methods and
// stores it in *err. Any other panic is re-raised.
func Catch(err *error) {
	x := recover()
	if x == nil {
		return
	}
	if e, ok := x.(*SyntaxError); ok {
		*err = e
		return
	}
	panic(x)
}

// Scanner tokenizes a single header field body.
type Scanner struct {
	s string
	o int
}

// NewScanner returns a Scanner positioned at the start of s.
func NewScanner(s string) *Scanner {
	return &Scanner{s: s}
}

// Offset returns the current byte offset.
func (p *Scanner) Offset() int { return p.o }

// Reset moves the scanner back to an offset returned by Offset. It is used for
// backtracking between alternatives of the grammar.
func (p *Scanner) Reset(o int) { p.o = o }

// Empty returns true when all input has been consumed.
func (p *Scanner) Empty() bool { return p.o >= len(p.s) }

// Input returns the complete input being scanned.
func (p *Scanner) Input() string { return p.s }

// Slice returns the input between two offsets.
func (p *Scanner) Slice(from, to int) string { return p.s[from:to] }

// Rest returns the unconsumed input without consuming it.
func (p *Scanner) Rest() string { return p.s[p.o:] }

// Peek returns the next byte without consuming it or 0 at the end of input.
func (p *Scanner) Peek() byte {
	if p.Empty() {
		return 0
	}
	return p.s[p.o]
}

// HasPrefix reports whether the unconsumed input begins with s.
func (p *Scanner) HasPrefix(s string) bool {
	return strings.HasPrefix(p.s[p.o:], s)
}

// Take consumes s if the unconsumed input begins with it.
func (p *Scanner) Take(s string) bool {
	if p.HasPrefix(s) {
		p.o += len(s)
		return true
	}
	return false
}

// TakeFold is Take with an ASCII case-insensitive comparison.
func (p *Scanner) TakeFold(s string) bool {
	if len(p.s)-p.o >= len(s) && strings.EqualFold(p.s[p.o:p.o+len(s)], s) {
		p.o += len(s)
		return true
	}
	return false
}

// XTake consumes s or fails.
func (p *Scanner) XTake(s string) {
	if !p.Take(s) {
		if p.Empty() {
			p.XErrorf("expected %q, found end of input", s)
		}
		p.XErrorf("expected %q, found %q", s, p.s[p.o])
	}
}

// XErrorf fails at the current offset.
func (p *Scanner) XErrorf(format string, args ...any) {
	p.XErrorAt(p.o, format, args...)
}

// XErrorAt fails at the given offset.
func (p *Scanner) XErrorAt(o int, format string, args ...any) {
	panic(&SyntaxError{Offset: o, Reason: fmt.Sprintf(format, args...)})
}

// XEnd skips trailing CFWS and fails unless the input is exhausted.
func (p *Scanner) XEnd() {
	p.XSkipCFWS()
	if !p.Empty() {
		p.XErrorf("unexpected %q", p.Rest())
	}
}

// TakeWhile consumes bytes for as long as fn returns true and returns them.
func (p *Scanner) TakeWhile(fn func(c byte) bool) string {
	start := p.o
	for p.o < len(p.s) && fn(p.s[p.o]) {
		p.o++
	}
	return p.s[start:p.o]
}

// xtakeWhile1 is TakeWhile requiring at least one byte.
func (p *Scanner) xtakeWhile1(what string, fn func(c byte) bool) string {
	s := p.TakeWhile(fn)
	if s == "" {
		if p.Empty() {
			p.XErrorf("expected %s, found end of input", what)
		}
		p.XErrorf("expected %s, found %q", what, p.s[p.o])
	}
	return s
}
