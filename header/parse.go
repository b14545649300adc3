package header

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mailfield/header/field"
)

// Parse will parse the given slice of bytes into an email header using the
// given line break string. It will assume the entire string given represents
// the header to be parsed. With Meh, the line break is guessed from the first
// line break found in m.
//
// Every field keeps its raw form, so writing the header back out reproduces
// the input. Field bodies are not parsed until asked for; use ParseValues to
// parse all of them at once.
//
// If the input starts with lines that do not look like header fields, they
// are skipped and a *field.BadStartError holding them is returned together
// with the header.
func Parse(m []byte, lb Break) (*Header, error) {
	if lb == Meh {
		lb = guessBreak(m)
	}

	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError // recoverable
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes())
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			vf:     field.DefaultFoldEncoding,
			fields: fields,
		},
	}

	return h, finalErr
}

// guessBreak picks the line break by looking at the first one in m.
func guessBreak(m []byte) Break {
	i := bytes.IndexAny(m, "\r\n")
	switch {
	case i < 0:
		return LF
	case bytes.HasPrefix(m[i:], CRLF.Bytes()):
		return CRLF
	case bytes.HasPrefix(m[i:], LFCR.Bytes()):
		return LFCR
	case m[i] == '\r':
		return CR
	}
	return LF
}
