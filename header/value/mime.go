package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
	"github.com/zostay/go-mailfield/header/param"
)

// Mime is the value of Content-Type: a media type and its parameters. Type
// and Subtype are lower case.
type Mime struct {
	Type    string
	Subtype string
	Params  param.List
}

var _ Value = Mime{}

func (Mime) sealed() {}

// Kind returns KindMime.
func (Mime) Kind() Kind { return KindMime }

// MediaType returns "type/subtype".
func (m Mime) MediaType() string { return m.Type + "/" + m.Subtype }

// Param returns the content type as a *param.Value, which may be changed
// with param.Modify and turned back with MimeFromParam.
func (m Mime) Param() *param.Value {
	return param.NewWithParams(m.MediaType(), m.Params...)
}

// Charset returns the charset parameter, if any.
func (m Mime) Charset() string { return get(m.Params, param.Charset) }

// Boundary returns the boundary parameter, if any.
func (m Mime) Boundary() string { return get(m.Params, param.Boundary) }

// String returns the content type as it would be written in a header.
func (m Mime) String() string { return render(m) }

// Render writes the media type and its parameters.
func (m Mime) Render(w *field.Writer, o *RenderOptions) error {
	if m.Type == "" || m.Subtype == "" {
		return fmt.Errorf("invalid media type %q", m.MediaType())
	}
	return m.Param().Render(w, o.fold().PreferredFoldLength(), o.intl())
}

// MimeFromParam converts a parsed media type into a Mime.
func MimeFromParam(pv *param.Value) Mime {
	return Mime{
		Type:    pv.Type(),
		Subtype: pv.Subtype(),
		Params:  pv.Params(),
	}
}

// ParseMime parses the body of Content-Type.
func ParseMime(body string) (Mime, error) {
	pv, err := param.ParseMediaType(body)
	if err != nil {
		return Mime{}, err
	}
	return MimeFromParam(pv), nil
}

// Disposition is the value of Content-Disposition: a disposition type such
// as "inline" or "attachment" and its parameters.
type Disposition struct {
	Type   string
	Params param.List
}

var _ Value = Disposition{}

func (Disposition) sealed() {}

// Kind returns KindDisposition.
func (Disposition) Kind() Kind { return KindDisposition }

// Param returns the disposition as a *param.Value.
func (d Disposition) Param() *param.Value {
	return param.NewWithParams(d.Type, d.Params...)
}

// Filename returns the filename parameter, if any.
func (d Disposition) Filename() string { return get(d.Params, param.Filename) }

// CreationDate returns the creation-date parameter. It returns
// ErrNoSuchParam if the parameter is absent.
func (d Disposition) CreationDate() (DateTime, error) {
	return d.date(param.CreationDate)
}

// ModificationDate returns the modification-date parameter. It returns
// ErrNoSuchParam if the parameter is absent.
func (d Disposition) ModificationDate() (DateTime, error) {
	return d.date(param.ModificationDate)
}

// ReadDate returns the read-date parameter. It returns ErrNoSuchParam if the
// parameter is absent.
func (d Disposition) ReadDate() (DateTime, error) {
	return d.date(param.ReadDate)
}

func (d Disposition) date(name string) (DateTime, error) {
	p, ok := d.Params.Get(name)
	if !ok {
		return DateTime{}, ErrNoSuchParam
	}
	dt, err := ParseDateTime(p.Value)
	if err != nil {
		return DateTime{}, fmt.Errorf("%s parameter: %w", name, err)
	}
	return dt, nil
}

// Size returns the size parameter, the approximate size of the content in
// octets. It returns ErrNoSuchParam if the parameter is absent.
func (d Disposition) Size() (int64, error) {
	p, ok := d.Params.Get(param.Size)
	if !ok {
		return 0, ErrNoSuchParam
	}
	n, err := strconv.ParseInt(p.Value, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("size parameter %q is not a valid size", p.Value)
	}
	return n, nil
}

// String returns the disposition as it would be written in a header.
func (d Disposition) String() string { return render(d) }

// Render writes the disposition type and its parameters.
func (d Disposition) Render(w *field.Writer, o *RenderOptions) error {
	if strings.Contains(d.Type, "/") {
		return fmt.Errorf("invalid disposition type %q", d.Type)
	}
	return d.Param().Render(w, o.fold().PreferredFoldLength(), o.intl())
}

// ParseDisposition parses the body of Content-Disposition.
func ParseDisposition(body string) (Disposition, error) {
	pv, err := param.ParseDisposition(body)
	if err != nil {
		return Disposition{}, err
	}
	return DispositionFromParam(pv), nil
}

// DispositionFromParam converts a parsed disposition into a Disposition.
func DispositionFromParam(pv *param.Value) Disposition {
	return Disposition{Type: pv.Disposition(), Params: pv.Params()}
}

func get(l param.List, name string) string {
	p, _ := l.Get(name)
	return p.Value
}

// The transfer encodings defined by RFC 2045.
const (
	Encoding7Bit            TransferEncoding = "7bit"
	Encoding8Bit            TransferEncoding = "8bit"
	EncodingBinary          TransferEncoding = "binary"
	EncodingQuotedPrintable TransferEncoding = "quoted-printable"
	EncodingBase64          TransferEncoding = "base64"
)

// TransferEncoding is the value of Content-Transfer-Encoding: one of the RFC
// 2045 mechanisms or an "x-" extension token, in lower case.
type TransferEncoding string

var _ Value = TransferEncoding("")

func (TransferEncoding) sealed() {}

// Kind returns KindTransferEncoding.
func (TransferEncoding) Kind() Kind { return KindTransferEncoding }

// String returns the encoding name.
func (te TransferEncoding) String() string { return string(te) }

// IsExtension reports whether this is an "x-" extension token.
func (te TransferEncoding) IsExtension() bool {
	return strings.HasPrefix(string(te), "x-")
}

func (te TransferEncoding) valid() bool {
	switch te {
	case Encoding7Bit, Encoding8Bit, EncodingBinary, EncodingQuotedPrintable, EncodingBase64:
		return true
	}
	return te.IsExtension() && len(te) > 2 && lex.IsToken(string(te))
}

// Render writes the encoding name.
func (te TransferEncoding) Render(w *field.Writer, o *RenderOptions) error {
	if !te.valid() {
		return fmt.Errorf("invalid transfer encoding %q", string(te))
	}
	w.Space(string(te))
	return nil
}

// ParseTransferEncoding parses the body of Content-Transfer-Encoding. The
// mechanism is case-insensitive and is returned in lower case.
func ParseTransferEncoding(body string) (te TransferEncoding, err error) {
	defer catch(&err)
	p := newParser(body)
	p.XSkipCFWS()
	off := p.Offset()
	te = TransferEncoding(strings.ToLower(p.XToken()))
	if !te.valid() {
		p.XErrorAt(off, "unknown transfer encoding %q", string(te))
	}
	p.XEnd()
	return te, nil
}
