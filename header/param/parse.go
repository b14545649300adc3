package param

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zostay/go-mailfield/header/lex"
	"github.com/zostay/go-mailfield/header/word"
)

// rawParam is one name=value pair as it appears on the wire, before RFC 2231
// sections are joined.
type rawParam struct {
	name    string
	section int // -1 when the name has no section number
	ext     bool
	value   string
	offset  int
}

// ParseMediaType parses a Content-Type body: type "/" subtype followed by
// parameters.
func ParseMediaType(s string) (*Value, error) {
	return parse(s, true)
}

// ParseDisposition parses a Content-Disposition body: a disposition type
// followed by parameters.
func ParseDisposition(s string) (*Value, error) {
	return parse(s, false)
}

// Parse parses a parameterized body whose primary value may or may not be a
// media type.
func Parse(s string) (*Value, error) {
	p := lex.NewScanner(s)
	p.TakeWhile(lex.IsFWS)
	p.TakeWhile(lex.IsTokenChar)
	p.TakeWhile(lex.IsFWS)
	return parse(s, p.Peek() == '/')
}

func parse(s string, slash bool) (*Value, error) {
	v, raws, err := scan(s, slash)
	if err != nil {
		return nil, err
	}

	ps, err := assemble(raws)
	if err != nil {
		return nil, err
	}

	return &Value{strings.ToLower(v), ps}, nil
}

func scan(s string, slash bool) (v string, raws []rawParam, err error) {
	defer lex.Catch(&err)

	p := lex.NewScanner(s)
	p.XSkipCFWS()
	v = p.XToken()
	if slash {
		p.XSkipCFWS()
		p.XTake("/")
		p.XSkipCFWS()
		v += "/" + p.XToken()
	}

	for {
		p.XSkipCFWS()
		if p.Empty() {
			break
		}
		p.XTake(";")
		p.XSkipCFWS()
		if p.Empty() || p.Peek() == ';' {
			continue
		}

		raws = append(raws, xparam(p))
	}

	return v, raws, nil
}

func xparam(p *lex.Scanner) rawParam {
	rp := rawParam{section: -1, offset: p.Offset()}

	attr := strings.ToLower(p.XToken())
	if strings.HasSuffix(attr, "*") {
		rp.ext = true
		attr = attr[:len(attr)-1]
	}
	if ix := strings.LastIndexByte(attr, '*'); ix >= 0 {
		sec := attr[ix+1:]
		if _, err := strconv.Atoi(sec); err == nil {
			n, ok := sectionNumber(sec)
			if !ok {
				p.XErrorAt(rp.offset, "bad section number %q", sec)
			}
			rp.section = n
			attr = attr[:ix]
		}
	}
	if attr == "" {
		p.XErrorAt(rp.offset, "empty parameter name")
	}
	rp.name = attr

	p.XSkipCFWS()
	p.XTake("=")
	p.XSkipCFWS()
	if p.Peek() == '"' {
		rp.value = p.XQuotedString()
	} else {
		rp.value = p.XToken()
	}

	return rp
}

// sectionNumber accepts "0" or a positive decimal with no sign and no
// leading zero, as RFC 2231 allows.
func sectionNumber(s string) (int, bool) {
	if s == "" || s[0] < '0' || s[0] > '9' || s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

type paramGroup struct {
	plain *rawParam
	parts map[int]rawParam
}

// assemble joins RFC 2231 sections, decodes extended values and checks that
// no parameter is given twice.
func assemble(raws []rawParam) (List, error) {
	var order []string
	groups := map[string]*paramGroup{}
	for i := range raws {
		rp := raws[i]
		g, seen := groups[rp.name]
		if !seen {
			g = &paramGroup{parts: map[int]rawParam{}}
			groups[rp.name] = g
			order = append(order, rp.name)
		}

		_, dupPart := g.parts[rp.section]
		switch {
		case g.plain != nil,
			rp.section < 0 && len(g.parts) > 0,
			rp.section >= 0 && dupPart:
			return nil, &lex.SyntaxError{Offset: rp.offset, Reason: "duplicate parameter " + strconv.Quote(rp.name)}
		}

		if rp.section < 0 {
			g.plain = &raws[i]
		} else {
			g.parts[rp.section] = rp
		}
	}

	ps := make(List, 0, len(order))
	for _, name := range order {
		g := groups[name]
		var (
			p   Param
			err error
		)
		if g.plain != nil {
			p, err = single(*g.plain)
		} else {
			p, err = joinSections(name, g.parts)
		}
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}

	return ps, nil
}

func single(rp rawParam) (Param, error) {
	if !rp.ext {
		return Param{Name: rp.name, Value: rp.value}, nil
	}

	charset, lang, rest, err := splitExtValue(rp)
	if err != nil {
		return Param{}, err
	}

	b, err := percentDecode(rp, rest)
	if err != nil {
		return Param{}, err
	}

	v, err := decodeBytes(charset, b)
	if err != nil {
		return Param{}, err
	}

	return Param{Name: rp.name, Value: v, Language: lang}, nil
}

func joinSections(name string, parts map[int]rawParam) (Param, error) {
	nums := make([]int, 0, len(parts))
	for n := range parts {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	for i, n := range nums {
		if n != i {
			return Param{}, &lex.SyntaxError{
				Offset: parts[n].offset,
				Reason: "parameter " + strconv.Quote(name) + " is missing section " + strconv.Itoa(i),
			}
		}
	}

	var (
		b        []byte
		charset  string
		lang     string
		extended bool
	)
	for _, n := range nums {
		rp := parts[n]
		v := rp.value
		if rp.ext {
			if n == 0 {
				var err error
				charset, lang, v, err = splitExtValue(rp)
				if err != nil {
					return Param{}, err
				}
				extended = true
			}

			pb, err := percentDecode(rp, v)
			if err != nil {
				return Param{}, err
			}
			b = append(b, pb...)
			continue
		}
		b = append(b, v...)
	}

	if !extended {
		return Param{Name: name, Value: string(b)}, nil
	}

	v, err := decodeBytes(charset, b)
	if err != nil {
		return Param{}, err
	}
	return Param{Name: name, Value: v, Language: lang}, nil
}

func splitExtValue(rp rawParam) (charset, lang, rest string, err error) {
	parts := strings.SplitN(rp.value, "'", 3)
	if len(parts) != 3 {
		return "", "", "", &lex.SyntaxError{
			Offset: rp.offset,
			Reason: "extended parameter " + strconv.Quote(rp.name) + " lacks charset and language",
		}
	}
	return parts[0], parts[1], parts[2], nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func percentDecode(rp rawParam, s string) ([]byte, error) {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b = append(b, s[i])
			continue
		}
		if i+2 >= len(s) {
			return nil, &lex.SyntaxError{Offset: rp.offset, Reason: "truncated percent escape in parameter " + strconv.Quote(rp.name)}
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return nil, &lex.SyntaxError{Offset: rp.offset, Reason: "invalid percent escape in parameter " + strconv.Quote(rp.name)}
		}
		b = append(b, hi<<4|lo)
		i += 2
	}
	return b, nil
}

func decodeBytes(charset string, b []byte) (string, error) {
	if charset == "" {
		return string(b), nil
	}
	return word.Decode(charset, b)
}
