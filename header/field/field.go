// Package field handles header fields as lines of text: splitting a header
// block into fields, unfolding them and folding rendered values back into
// lines that respect the RFC 5322 line length limits.
package field

import (
	"bytes"
	"strings"
)

// Field is a single header field. It always carries the name and unfolded
// body in Base. When the field was read from input, or has been rendered,
// Raw holds the folded text so that it can be written back out unchanged.
//
// The Name() and Body() methods always surface the Base field.
//
// The String() and Bytes() methods work on Raw if present and fall back to
// Base if not.
//
// SetName() and SetBody() update Base and clear Raw.
type Field struct {
	Base
	*Raw
}

// New constructs a new field with no original value.
func New(name, body string) *Field {
	return &Field{Base{name, body}, nil}
}

// FromLines builds a field from folded lines, as returned by
// FoldEncoding.Lines. The lines are joined with the given line break to form
// Raw.
func FromLines(lines []string, lb Break) *Field {
	raw := strings.Join(lines, string(lb))
	f := Parse(Line(raw), lb)
	return f
}

// String returns the Raw.String() if Raw is not nil. It returns the
// Base.String() otherwise.
func (f *Field) String() string {
	if f.Raw != nil {
		return f.Raw.String()
	}
	return f.Base.String()
}

// Bytes returns the Raw.Bytes() if Raw is not nil. It returns the Base.Bytes()
// otherwise.
func (f *Field) Bytes() []byte {
	if f.Raw != nil {
		return f.Raw.Bytes()
	}
	return f.Base.Bytes()
}

// Name returns the Base.Name().
func (f *Field) Name() string {
	return f.Base.Name()
}

// Body returns the Base.Body().
func (f *Field) Body() string {
	return f.Base.Body()
}

// SetName sets the name of the field. Raw is cleared.
func (f *Field) SetName(n string) {
	f.Raw = nil
	f.Base.SetName(n)
}

// SetBody sets the body of the field. Raw is cleared.
func (f *Field) SetBody(b string) {
	f.Raw = nil
	f.Base.SetBody(b)
}

// SetRaw replaces Raw with a new value without touching Base.
func (f *Field) SetRaw(o []byte) {
	ix := bytes.IndexByte(o, ':')
	if ix < 0 {
		ix = len(o)
	}
	f.Raw = &Raw{o, ix}
}
