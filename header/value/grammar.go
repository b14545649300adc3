package value

import (
	"strconv"
	"strings"

	"github.com/zostay/go-addr/pkg/rd"
	"github.com/zostay/go-addr/pkg/rfc5322"

	"github.com/zostay/go-mailfield/header/lex"
	"github.com/zostay/go-mailfield/header/word"
)

// The address productions run on the go-addr RFC 5322 matchers. Those only
// know US-ASCII, so the input is handed to them through a shelter: line
// breaks are dropped and every run of non-ASCII bytes becomes a placeholder
// made of atext, which is put back in the strings taken out of the match.

type edit struct {
	out, outEnd int
	in, inEnd   int
}

type shelter struct {
	text    string
	edits   []edit
	restore *strings.Replacer
}

func newShelter(s string) *shelter {
	tilde := strings.Repeat("~", longestRun(s, '~')+1)

	var (
		b     strings.Builder
		edits []edit
		pairs []string
	)
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '\r' || c == '\n':
			edits = append(edits, edit{b.Len(), b.Len(), i, i + 1})
			i++
		case c >= 0x80:
			j := i
			for j < len(s) && s[j] >= 0x80 {
				j++
			}
			ph := tilde + strconv.Itoa(len(pairs)/2) + tilde
			edits = append(edits, edit{b.Len(), b.Len() + len(ph), i, j})
			pairs = append(pairs, ph, s[i:j])
			b.WriteString(ph)
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}

	sh := &shelter{text: b.String(), edits: edits}
	if len(pairs) > 0 {
		sh.restore = strings.NewReplacer(pairs...)
	}
	return sh
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		if run++; run > longest {
			longest = run
		}
	}
	return longest
}

// offset maps an offset in the sheltered text back to the original input.
// An offset inside a placeholder maps to the start of the bytes it stands
// for.
func (sh *shelter) offset(o int) int {
	delta := 0
	for _, e := range sh.edits {
		if o < e.out {
			break
		}
		if o < e.outEnd {
			return e.in
		}
		delta = e.inEnd - e.outEnd
	}
	return o + delta
}

func (sh *shelter) str(b []byte) string {
	if sh.restore == nil {
		return string(b)
	}
	return sh.restore.Replace(string(b))
}

// xmatch runs m at the current offset and moves the scanner past whatever it
// consumed. The returned shelter turns the match content back into input
// text.
func (p *parser) xmatch(what string, m rd.Matcher) (*rd.Match, *shelter) {
	p.xcheckNesting()

	sh := newShelter(p.Rest())
	match, left := m([]byte(sh.text))
	if match == nil {
		p.xexpected(what)
	}

	p.Reset(p.Offset() + sh.offset(len(sh.text)-len(left)))
	return match, sh
}

func (p *parser) xexpected(what string) {
	if p.Empty() {
		p.XErrorf("expected %s, found end of input", what)
	}
	p.XErrorf("expected %s, found %q", what, p.Peek())
}

// xcheckNesting rejects comments nested deeper than lex.MaxCommentDepth
// anywhere in the rest of the input.
func (p *parser) xcheckNesting() {
	rest := p.Rest()
	depth, quoted := 0, false
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c == '\\':
			i++
		case quoted:
			quoted = c != '"'
		case c == '"' && depth == 0:
			quoted = true
		case c == '(':
			if depth++; depth > lex.MaxCommentDepth {
				p.XErrorAt(p.Offset()+i, "comments nested deeper than %d", lex.MaxCommentDepth)
			}
		case c == ')' && depth > 0:
			depth--
		}
	}
}

func (sh *shelter) addrSpec(m *rd.Match) AddrSpec {
	return AddrSpec{
		LocalPart: sh.localPart(m.Group["local-part"]),
		Domain:    sh.domain(m.Group["domain"]),
	}
}

func (sh *shelter) localPart(m *rd.Match) string {
	switch m.Tag {
	case rfc5322.TDotAtom:
		return sh.str(m.Group["dot-atom-text"].Content)
	case rfc5322.TObsLocalPart:
		words := make([]string, len(m.Submatch))
		for i, w := range m.Submatch {
			words[i], _ = sh.word(w)
		}
		return strings.Join(words, ".")
	}
	s, _ := sh.word(m)
	return s
}

// word returns the text of an atom or the content of a quoted-string, and
// whether it was quoted.
func (sh *shelter) word(m *rd.Match) (string, bool) {
	if m.Tag == rfc5322.TQuotedString {
		var content []byte
		if qs := m.Group["quoted-string"]; qs != nil {
			content = qs.Content
		}
		return sh.str(unquote(content)), true
	}
	return sh.str(m.Group["atext"].Content), false
}

// unquote resolves the quoted-pairs in the content of a quoted-string.
func unquote(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) {
			i++
		}
		out = append(out, b[i])
	}
	return out
}

// domain returns a dot-atom domain with any obsolete CFWS dropped, or a
// domain literal with its brackets and quoted-pairs kept.
func (sh *shelter) domain(m *rd.Match) string {
	if lit, ok := m.Group["literal"]; ok {
		var b strings.Builder
		b.WriteByte('[')
		for _, d := range lit.Submatch {
			b.Write(d.Group["dtext"].Content)
		}
		b.WriteByte(']')
		return sh.str([]byte(b.String()))
	}

	switch m.Tag {
	case rfc5322.TDotAtom:
		return sh.str(m.Group["dot-atom-text"].Content)
	case rfc5322.TObsDomain:
		labels := []string{sh.str(m.Group["head"].Group["atext"].Content)}
		if tail := m.Group["tail"]; tail != nil {
			for _, l := range tail.Submatch {
				labels = append(labels, sh.str(l.Group["atom"].Group["atext"].Content))
			}
		}
		return strings.Join(labels, ".")
	}

	// bare dot-atom-text
	return sh.str(m.Content)
}

// phrase decodes a phrase or obs-phrase. White space between words collapses
// to a single space, as do comments.
func (sh *shelter) phrase(m *rd.Match) (string, error) {
	items := m.Submatch
	if m.Tag != rfc5322.TWords {
		items = []*rd.Match{m.Group["head"]}
		if tail := m.Group["tail"]; tail != nil {
			items = append(items, tail.Submatch...)
		}
	}

	var (
		frags []word.Fragment
		gap   bool
	)
	for _, it := range items {
		var f word.Fragment
		switch {
		case it.Tag == rfc5322.TAtom:
			gap = gap || it.Group["pre"] != nil
			f.Text, _ = sh.word(it)
			if len(frags) > 0 && gap {
				f.Space = " "
			}
			gap = it.Group["post"] != nil
		case it.Tag == rfc5322.TQuotedString:
			gap = gap || it.Content[0] != '"'
			f.Text, f.Quoted = sh.word(it)
			if len(frags) > 0 && gap {
				f.Space = " "
			}
			gap = it.Content[len(it.Content)-1] != '"'
		case string(it.Content) == ".":
			if len(frags) > 0 && gap {
				f.Space = " "
			}
			f.Text, gap = ".", false
		default:
			gap = true
			continue
		}
		frags = append(frags, f)
	}
	return word.Join(frags)
}

func (sh *shelter) mailbox(m *rd.Match) (Mailbox, error) {
	if m.Tag == rfc5322.TAddrSpec {
		return Mailbox{AddrSpec: sh.addrSpec(m)}, nil
	}

	var mb Mailbox
	if dn := m.Group["display-name"]; dn != nil {
		var err error
		if mb.DisplayName, err = sh.phrase(dn.Group["phrase"]); err != nil {
			return mb, err
		}
	}
	mb.AddrSpec = sh.addrSpec(m.Group["angle-addr"].Group["addr-spec"])
	return mb, nil
}

func isMailbox(m *rd.Match) bool {
	return m != nil && (m.Tag == rfc5322.TNameAddr || m.Tag == rfc5322.TAddrSpec)
}

// mailboxes flattens a mailbox-list or obs-mbox-list, dropping the empty
// elements of the latter.
func (sh *shelter) mailboxes(m *rd.Match) ([]Mailbox, error) {
	items := m.Submatch
	if m.Tag == rfc5322.TObsMboxList {
		items = []*rd.Match{m.Group["head"]}
		for _, t := range m.Group["tail"].Submatch {
			items = append(items, t.Group["mb"])
		}
	}

	var l []Mailbox
	for _, it := range items {
		if !isMailbox(it) {
			continue
		}
		mb, err := sh.mailbox(it)
		if err != nil {
			return nil, err
		}
		l = append(l, mb)
	}
	return l, nil
}

func (sh *shelter) group(m *rd.Match) (Group, error) {
	dn, err := sh.phrase(m.Group["display-name"].Group["phrase"])
	if err != nil {
		return Group{}, err
	}

	g := Group{DisplayName: dn}
	if gl := m.Group["group-list"]; gl != nil && (gl.Tag == rfc5322.TMailboxList || gl.Tag == rfc5322.TObsMboxList) {
		if g.Members, err = sh.mailboxes(gl); err != nil {
			return Group{}, err
		}
	}
	return g, nil
}

func (sh *shelter) address(m *rd.Match) (Address, error) {
	if m.Tag == rfc5322.TGroup {
		return sh.group(m)
	}
	return sh.mailbox(m)
}

// addresses flattens an address-list or obs-addr-list, dropping the empty
// elements of the latter.
func (sh *shelter) addresses(m *rd.Match) ([]Address, error) {
	items := m.Submatch
	if m.Tag == rfc5322.TObsAddrList {
		items = []*rd.Match{m.Group["head"]}
		for _, t := range m.Group["tail"].Submatch {
			items = append(items, t.Group["address"])
		}
	}

	var l []Address
	for _, it := range items {
		if !isMailbox(it) && (it == nil || it.Tag != rfc5322.TGroup) {
			continue
		}
		a, err := sh.address(it)
		if err != nil {
			return nil, err
		}
		l = append(l, a)
	}
	return l, nil
}

// xphrase parses a phrase, obs-phrase included, and returns it decoded.
func (p *parser) xphrase() string {
	m, sh := p.xmatch("phrase", rfc5322.MatchPhrase)
	s, err := sh.phrase(m)
	p.xcheck(err)
	return s
}

func (p *parser) xaddrSpec() AddrSpec {
	m, sh := p.xmatch("addr-spec", rfc5322.MatchAddrSpec)
	return sh.addrSpec(m)
}

// xangleAddr parses "<" addr-spec ">", skipping any obsolete route.
func (p *parser) xangleAddr() AddrSpec {
	m, sh := p.xmatch("angle-addr", rfc5322.MatchAngleAddr)
	return sh.addrSpec(m.Group["addr-spec"])
}

// xdomain parses a domain: a dot-atom, obs-domain, or a domain literal.
func (p *parser) xdomain() string {
	m, sh := p.xmatch("domain", rfc5322.MatchDomain)
	return sh.domain(m)
}

// matchBareDomain is a dot-atom-text or a domain literal with no CFWS
// after it, so that trailing comments are left to the caller.
func matchBareDomain(cs []byte) (*rd.Match, []byte) {
	return rd.MatchLongest(cs, rfc5322.MatchDotAtomText, rfc5322.MatchDomainLiteral)
}

// matchBareAngleAddr is an angle-addr, obsolete route included, with no CFWS
// around it.
func matchBareAngleAddr(cs []byte) (*rd.Match, []byte) {
	la, cs := rd.MatchOneRune(rd.TNone, cs, '<')
	if la == nil {
		return nil, nil
	}

	var rt *rd.Match
	if m, rcs := rfc5322.MatchObsRoute(cs); m != nil {
		rt, cs = m, rcs
	}

	as, cs := rfc5322.MatchAddrSpec(cs)
	if as == nil {
		return nil, nil
	}

	ra, cs := rd.MatchOneRune(rd.TNone, cs, '>')
	if ra == nil {
		return nil, nil
	}

	return rd.BuildMatch(rfc5322.TAngleAddr, "", la, "obs-route", rt, "addr-spec", as, "", ra), cs
}

// xbareDomain is xdomain leaving any CFWS after the domain unread.
func (p *parser) xbareDomain() string {
	m, sh := p.xmatch("domain", matchBareDomain)
	return sh.domain(m)
}

// xbareAngleAddr is xangleAddr leaving any CFWS after the ">" unread.
func (p *parser) xbareAngleAddr() AddrSpec {
	m, sh := p.xmatch("angle-addr", matchBareAngleAddr)
	return sh.addrSpec(m.Group["addr-spec"])
}

func (p *parser) xmailbox() Mailbox {
	m, sh := p.xmatch("mailbox", rfc5322.MatchMailbox)
	mb, err := sh.mailbox(m)
	p.xcheck(err)
	return mb
}

// xseparated runs list over comma separated runs of elements. The matchers
// stop at CFWS before a comma, so the loop carries on from there.
func xseparated[T any](p *parser, list func() []T) []T {
	var l []T
	for {
		p.XSkipCFWS()
		for p.Take(",") {
			p.XSkipCFWS()
		}
		if p.Empty() {
			return l
		}

		l = append(l, list()...)
		p.XSkipCFWS()
		if !p.Empty() {
			p.XTake(",")
		}
	}
}

func (p *parser) xmailboxList() []Mailbox {
	return xseparated(p, func() []Mailbox {
		m, sh := p.xmatch("mailbox", rfc5322.MatchMailboxList)
		l, err := sh.mailboxes(m)
		p.xcheck(err)
		return l
	})
}

func (p *parser) xaddressList() []Address {
	return xseparated(p, func() []Address {
		m, sh := p.xmatch("address", rfc5322.MatchAddressList)
		l, err := sh.addresses(m)
		p.xcheck(err)
		return l
	})
}
