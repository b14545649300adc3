package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
)

// Render writes the primary value and the parameters to w, with a fold point
// before each parameter. A parameter that would not fit on a line of
// foldLength is split into numbered RFC 2231 sections. Values that are not
// printable ASCII are written in the RFC 2231 extended form in UTF-8, unless
// raw8bit permits UTF-8 in quoted-strings.
func (pv *Value) Render(w *field.Writer, foldLength int, raw8bit bool) error {
	for _, part := range strings.SplitN(pv.v, "/", 2) {
		if !lex.IsToken(part) {
			return fmt.Errorf("invalid value %q", pv.v)
		}
	}

	w.Write(pv.v)
	for _, p := range pv.ps {
		segs, err := renderParam(p, foldLength, raw8bit)
		if err != nil {
			return err
		}
		for _, s := range segs {
			w.Write(";")
			w.Space(s)
		}
	}
	return nil
}

func isAttributeChar(c byte) bool {
	return lex.IsTokenChar(c) && c != '*' && c != '\'' && c != '%'
}

func quotable(s string, raw8bit bool) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= ' ' && c < 0x7f || c >= 0x80 && raw8bit) {
			return false
		}
	}
	return true
}

func renderParam(p Param, foldLength int, raw8bit bool) ([]string, error) {
	for i := 0; i < len(p.Name); i++ {
		if !isAttributeChar(p.Name[i]) {
			return nil, fmt.Errorf("invalid parameter name %q", p.Name)
		}
	}
	if p.Name == "" {
		return nil, fmt.Errorf("empty parameter name")
	}

	// room for the fold indent before and the semicolon after
	budget := foldLength - 2
	fits := func(s string) bool {
		return foldLength == field.DoNotFold || len(s) <= budget
	}

	if p.Language == "" && quotable(p.Value, raw8bit) {
		v := p.Value
		if !lex.IsToken(v) {
			v = lex.Quote(v)
		}
		if s := p.Name + "=" + v; fits(s) {
			return []string{s}, nil
		}
		return sections(p.Name, "", quotedAtoms(p.Value), true, budget), nil
	}

	ext := "utf-8'" + p.Language + "'"
	atoms := percentAtoms(p.Value)
	if s := p.Name + "*=" + ext + strings.Join(atoms, ""); fits(s) {
		return []string{s}, nil
	}
	return sections(p.Name, ext, atoms, false, budget), nil
}

// quotedAtoms splits s into the pieces of its quoted-string content that
// must not be separated.
func quotedAtoms(s string) []string {
	atoms := make([]string, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			atoms[i] = `\` + s[i:i+1]
		} else {
			atoms[i] = s[i : i+1]
		}
	}
	return atoms
}

// percentAtoms splits s into the percent-encoded pieces of an RFC 2231
// extended value.
func percentAtoms(s string) []string {
	const hex = "0123456789ABCDEF"
	atoms := make([]string, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttributeChar(c) {
			atoms[i] = s[i : i+1]
		} else {
			atoms[i] = string([]byte{'%', hex[c>>4], hex[c&0xf]})
		}
	}
	return atoms
}

// sections packs atoms into numbered parameter sections no longer than
// budget, each holding at least one atom.
func sections(name, ext string, atoms []string, quoted bool, budget int) []string {
	var segs []string
	for i, n := 0, 0; i < len(atoms); n++ {
		var b strings.Builder
		b.WriteString(name)
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(n))
		suffix := ""
		if quoted {
			b.WriteString(`="`)
			suffix = `"`
		} else {
			b.WriteString("*=")
			if n == 0 {
				b.WriteString(ext)
			}
		}

		j := i
		for j < len(atoms) && (j == i || b.Len()+len(atoms[j])+len(suffix) <= budget) {
			b.WriteString(atoms[j])
			j++
		}
		b.WriteString(suffix)

		segs = append(segs, b.String())
		i = j
	}
	return segs
}
