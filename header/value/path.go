package value

import (
	"github.com/zostay/go-mailfield/header/field"
)

// Path is the reverse path of Return-Path. A nil AddrSpec is the null path,
// written "<>".
type Path struct {
	AddrSpec *AddrSpec
}

var _ Value = Path{}

func (Path) sealed() {}

// Kind returns KindPath.
func (Path) Kind() Kind { return KindPath }

// IsNull reports whether this is the null reverse path.
func (pa Path) IsNull() bool { return pa.AddrSpec == nil }

// String returns the path with its angle brackets.
func (pa Path) String() string { return render(pa) }

// Render writes the path in angle brackets.
func (pa Path) Render(w *field.Writer, o *RenderOptions) error {
	if pa.AddrSpec == nil {
		w.Space("<>")
		return nil
	}

	as, err := pa.AddrSpec.format(o.intl())
	if err != nil {
		return err
	}
	w.Space("<" + as + ">")
	return nil
}

// ParsePath parses a reverse path: an angle-addr, the null path "<>" or, for
// compatibility with old software, a bare addr-spec.
func ParsePath(body string) (pa Path, err error) {
	defer catch(&err)
	p := newParser(body)
	p.XSkipCFWS()

	start := p.Offset()
	if p.Take("<") {
		p.XSkipCFWS()
		if p.Take(">") {
			p.XEnd()
			return Path{}, nil
		}
		p.Reset(start)
		as := p.xangleAddr()
		p.XEnd()
		return Path{AddrSpec: &as}, nil
	}

	as := p.xaddrSpec()
	p.XEnd()
	return Path{AddrSpec: &as}, nil
}
