package header

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/value"
)

// Base represents a basic email message header. It is a low-level interface
// to headers: an ordered list of fields, a line break and the fold encoding
// applied to fields that have no raw form yet.
type Base struct {
	lbr    Break
	vf     *field.FoldEncoding
	fields []*field.Field
}

// initBase initializes the Break and fields values lazily.
func (h *Base) initBase() {
	if h.lbr == Meh {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// Clone returns a copy of the header. The fields are copied too, so changes
// to the fields of the clone leave the original alone.
func (h *Base) Clone() *Base {
	fs := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		c := *f
		fs[i] = &c
	}
	return &Base{lbr: h.lbr, vf: h.vf, fields: fs}
}

// FoldEncoding returns the value folder used by this header during rendering.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		h.vf = field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the value folder used by this header during
// rendering. Fields that still hold their raw form are not refolded.
func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// Break returns the line break used to separate header fields and terminate the
// header.
func (h *Base) Break() Break {
	if h.lbr == Meh {
		h.lbr = LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header. Folded fields
// keep the line break they were read or rendered with.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// GetField returns the nth field.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// Len returns the number of header fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetFieldNamed returns the nth (0-indexed) with the given name or nil if no such
// header field is set.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns all the fields with the given name or an empty
// slice if no fields are set with that name.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	fs := make([]*field.Field, 0, 10)
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 10)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns all the fields in the header.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// InsertBeforeField will insert the given name and body values into the header
// at the given index.
func (h *Base) InsertBeforeField(
	n int,
	name,
	body string,
) {
	h.insertField(n, field.New(name, body))
}

// insertField puts f at index n, clamped to the range of the fields.
func (h *Base) insertField(n int, f *field.Field) {
	h.initBase()

	// cap the range of n to 0..len(h.fields)
	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	// make room for the new field
	h.fields = append(h.fields, nil)

	// move existing fields out of the way
	copy(h.fields[n+1:], h.fields[n:])

	h.fields[n] = f
}

// ClearFields removes all fields from the header.
func (h *Base) ClearFields() {
	h.initBase()
	h.fields = h.fields[:0]
}

// DeleteField removes the nth field from the header. Fails with an error if the
// given index is out of range.
func (h *Base) DeleteField(n int) error {
	h.initBase()

	// bounds check
	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	// copy over the removed field
	copy(h.fields[n:], h.fields[n+1:])

	// shorten the slice by one
	h.fields = h.fields[:len(h.fields)-1]

	return nil
}

// fieldBytes returns the field as it will be written. A field with a raw form
// is written as is. Any other field has its body folded at the white space
// it already holds.
func (h *Base) fieldBytes(f *field.Field) ([]byte, error) {
	if f.Raw != nil {
		return f.Raw.Bytes(), nil
	}

	lines, err := value.Lines(f.Name(), value.Unknown(f.Body()), &value.RenderOptions{Fold: h.FoldEncoding()})
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(lines, h.Break().String())), nil
}

// WriteTo writes the header to w, each field followed by the line break and
// the whole header followed by a blank line. An empty header writes nothing.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	if len(h.fields) == 0 {
		return 0, nil
	}

	lbr := h.Break().Bytes()

	var total int64
	for _, f := range h.fields {
		fb, err := h.fieldBytes(f)
		if err != nil {
			return total, err
		}

		n, err := w.Write(fb)
		total += int64(n)
		if err != nil {
			return total, err
		}

		n, err = w.Write(lbr)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	n, err := w.Write(lbr)
	total += int64(n)
	return total, err
}

// Bytes returns the header as a slice of bytes. A field that cannot be
// folded within the forced fold length is written unfolded.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	for _, f := range h.fields {
		fb, err := h.fieldBytes(f)
		if err != nil {
			fb = f.Base.Bytes()
		}
		buf.Write(fb)
		buf.Write(h.Break().Bytes())
	}
	if len(h.fields) > 0 {
		buf.Write(h.Break().Bytes())
	}
	return buf.Bytes()
}

// String returns the header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}
