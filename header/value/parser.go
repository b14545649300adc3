package value

import (
	"github.com/zostay/go-mailfield/header/lex"
)

// parser extends the lexical scanner with the productions shared by the
// structured values.
type parser struct {
	*lex.Scanner
}

func newParser(s string) *parser {
	return &parser{lex.NewScanner(s)}
}

// decodeError carries a non-syntax error, such as an unsupported charset,
// out of the recursive descent.
type decodeError struct {
	err error
}

// catch is lex.Catch extended to decodeError.
func catch(err *error) {
	x := recover()
	if x == nil {
		return
	}
	switch e := x.(type) {
	case *lex.SyntaxError:
		*err = e
	case decodeError:
		*err = e.err
	default:
		panic(x)
	}
}

func (p *parser) xcheck(err error) {
	if err != nil {
		panic(decodeError{err})
	}
}

// xlist parses a comma separated list, skipping the empty elements the
// obsolete syntax allows.
func xlist[T any](p *parser, elem func() T) []T {
	var list []T
	for {
		p.XSkipCFWS()
		if p.Empty() {
			return list
		}
		if p.Take(",") {
			continue
		}

		list = append(list, elem())
		p.XSkipCFWS()
		if p.Empty() {
			return list
		}
		p.XTake(",")
	}
}
