package field

import (
	"bytes"
)

// BadStartError is returned when the header begins with junk text that does not
// appear to be a header. This text is preserved in the error object.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line.
type Line []byte

// Lines represents the unparsed content for zero or more header field
// lines.
type Lines []Line

// ParseLines splits the given input into lines, one per header field, with
// continuation lines kept with the field they continue. The input bytes are
// expected to include only the header, lb is the line break in use.
//
// This accepts some input RFC 5322 would reject: a new field starts on any
// line that does not begin with a space or tab and contains a colon. Any
// other line is a continuation of the field before it.
//
// If the first line (or lines) of input start with spaces or contain no colons,
// these lines will be skipped in the Lines returned and a BadStartError
// holding them is returned along with the Lines.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}
		if line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":")) {
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{line}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, line)
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Parse takes a single header field line, including any folded continuation
// lines, and constructs a field from it. The name is unfolded and stripped of
// the white space the obsolete syntax allows before the colon. The body is
// unfolded and stripped of leading white space only; everything else,
// including encoded-words, is kept as it is on the wire.
func Parse(f Line, lb []byte) *Field {
	rawField := bytes.TrimSuffix(f, lb)
	if len(lb) == 0 {
		rawField = bytes.TrimRight(f, "\r\n")
	}

	off := 1
	ix := bytes.IndexByte(rawField, ':')
	if ix < 0 {
		ix = len(rawField)
		off = 0
	}

	name := string(bytes.TrimRight(Unfold(rawField[:ix]), " \t"))
	body := string(bytes.TrimLeft(Unfold(rawField[ix+off:]), " \t"))

	return &Field{
		Base: Base{name, body},
		Raw:  &Raw{rawField, ix},
	}
}

// Unfold removes the line breaks of folded header text. The white space that
// follows each line break is kept, as RFC 5322 requires.
func Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if b != '\r' && b != '\n' {
			uf = append(uf, b)
		}
	}
	return uf
}
