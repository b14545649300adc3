package value

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
	"github.com/zostay/go-mailfield/header/word"
)

// Errors returned by value accessors and renderers.
var (
	// ErrNeedsInternationalized is returned when a value holds UTF-8 that can
	// only be rendered when RenderOptions.Internationalized is set, such as a
	// non-ASCII local part.
	ErrNeedsInternationalized = errors.New("value requires internationalized rendering")

	// ErrNoSuchParam is returned by parameter accessors when the parameter is
	// not present.
	ErrNoSuchParam = errors.New("no such parameter")
)

// AddrSpec is an address: local-part "@" domain. LocalPart has any quoting
// removed. Domain is a dot-atom or a domain literal, brackets and
// quoted-pairs included.
type AddrSpec struct {
	LocalPart string
	Domain    string
}

// ASCIIDomain returns Domain with any internationalized labels converted to
// their ASCII (punycode) form. Domain literals are returned as they are.
func (as AddrSpec) ASCIIDomain() (string, error) {
	if strings.HasPrefix(as.Domain, "[") || isASCII(as.Domain) {
		return as.Domain, nil
	}
	return idna.Lookup.ToASCII(as.Domain)
}

// String returns the address as it would be written in a header.
func (as AddrSpec) String() string {
	s, _ := as.format(true)
	return s
}

func (as AddrSpec) format(intl bool) (string, error) {
	local := as.LocalPart
	if !lex.IsDotAtom(local) {
		local = lex.Quote(local)
	}
	for i := 0; i < len(local); i++ {
		if c := local[i]; c < ' ' && c != '\t' || c == 0x7f {
			return "", fmt.Errorf("control character in local part %q", as.LocalPart)
		}
	}
	if !intl && !isASCII(local) {
		return "", ErrNeedsInternationalized
	}

	domain := as.Domain
	if !intl {
		var err error
		if domain, err = as.ASCIIDomain(); err != nil {
			return "", err
		}
	}
	if !lex.IsDotAtom(domain) && !isDomainLiteral(domain) {
		return "", fmt.Errorf("invalid domain %q", as.Domain)
	}

	return local + "@" + domain, nil
}

func isDomainLiteral(s string) bool {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '\\' && i+1 < len(s)-1 {
			i++
			continue
		}
		if !lex.IsDtext(s[i]) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Address is either a Mailbox or a Group.
type Address interface {
	render(w *field.Writer, o *RenderOptions) error
	String() string
}

// Mailbox is a single addressee with an optional display name.
type Mailbox struct {
	DisplayName string
	AddrSpec    AddrSpec
}

var _ Value = Mailbox{}

func (Mailbox) sealed() {}

// Kind returns KindMailbox.
func (Mailbox) Kind() Kind { return KindMailbox }

// String returns the mailbox as it would be written in a header.
func (m Mailbox) String() string { return render(m) }

// Render writes the mailbox.
func (m Mailbox) Render(w *field.Writer, o *RenderOptions) error {
	return m.render(w, o)
}

func (m Mailbox) render(w *field.Writer, o *RenderOptions) error {
	as, err := m.AddrSpec.format(o.intl())
	if err != nil {
		return err
	}

	if m.DisplayName == "" {
		w.Space(as)
		return nil
	}

	if err := writePhrase(w, m.DisplayName, o); err != nil {
		return err
	}
	w.Space("<" + as + ">")
	return nil
}

func writePhrase(w *field.Writer, s string, o *RenderOptions) error {
	frags, err := word.EncodePhrase(s, o.words(w, 1))
	if err != nil {
		return err
	}
	if len(frags) == 0 {
		w.Space(`""`)
		return nil
	}
	for _, f := range frags {
		w.Space(f.Text)
	}
	return nil
}

// Group is a named, possibly empty, list of mailboxes.
type Group struct {
	DisplayName string
	Members     []Mailbox
}

// String returns the group as it would be written in a header.
func (g Group) String() string {
	w := &field.Writer{}
	if err := g.render(w, &RenderOptions{Fold: field.DoNotFoldEncoding, Internationalized: true}); err != nil {
		return fmt.Sprintf("%%!(Group: %v)", err)
	}
	return w.String()
}

func (g Group) render(w *field.Writer, o *RenderOptions) error {
	if err := writePhrase(w, g.DisplayName, o); err != nil {
		return err
	}
	w.Write(":")
	for i, m := range g.Members {
		if i > 0 {
			w.Write(",")
		}
		if err := m.render(w, o); err != nil {
			return err
		}
	}
	w.Write(";")
	return nil
}

// MailboxList is a non-empty list of mailboxes.
type MailboxList []Mailbox

// OptMailboxList is a possibly empty list of mailboxes.
type OptMailboxList []Mailbox

// AddressList is a non-empty list of mailboxes and groups.
type AddressList []Address

// OptAddressList is a possibly empty list of mailboxes and groups, as used
// by Bcc.
type OptAddressList []Address

func (MailboxList) sealed()    {}
func (OptMailboxList) sealed() {}
func (AddressList) sealed()    {}
func (OptAddressList) sealed() {}

// Kind returns KindMailboxList.
func (MailboxList) Kind() Kind { return KindMailboxList }

// Kind returns KindOptMailboxList.
func (OptMailboxList) Kind() Kind { return KindOptMailboxList }

// Kind returns KindAddressList.
func (AddressList) Kind() Kind { return KindAddressList }

// Kind returns KindOptAddressList.
func (OptAddressList) Kind() Kind { return KindOptAddressList }

func (l MailboxList) String() string    { return render(l) }
func (l OptMailboxList) String() string { return render(l) }
func (l AddressList) String() string    { return render(l) }
func (l OptAddressList) String() string { return render(l) }

// Render writes the mailboxes separated by commas.
func (l MailboxList) Render(w *field.Writer, o *RenderOptions) error {
	if len(l) == 0 {
		return errors.New("mailbox list must not be empty")
	}
	return renderMailboxes(w, l, o)
}

// Render writes the mailboxes separated by commas.
func (l OptMailboxList) Render(w *field.Writer, o *RenderOptions) error {
	return renderMailboxes(w, l, o)
}

// Render writes the addresses separated by commas.
func (l AddressList) Render(w *field.Writer, o *RenderOptions) error {
	if len(l) == 0 {
		return errors.New("address list must not be empty")
	}
	return renderAddresses(w, l, o)
}

// Render writes the addresses separated by commas. An empty list renders as
// nothing.
func (l OptAddressList) Render(w *field.Writer, o *RenderOptions) error {
	return renderAddresses(w, l, o)
}

func renderMailboxes(w *field.Writer, l []Mailbox, o *RenderOptions) error {
	for i, m := range l {
		if i > 0 {
			w.Write(",")
		}
		if err := m.render(w, o); err != nil {
			return err
		}
	}
	return nil
}

func renderAddresses(w *field.Writer, l []Address, o *RenderOptions) error {
	for i, a := range l {
		if i > 0 {
			w.Write(",")
		}
		if a == nil {
			return errors.New("nil address in list")
		}
		if err := a.render(w, o); err != nil {
			return err
		}
	}
	return nil
}

// Mailboxes returns every mailbox in the list, with group members in place
// of their groups.
func (l AddressList) Mailboxes() []Mailbox {
	return flatten(l)
}

// Mailboxes returns every mailbox in the list, with group members in place
// of their groups.
func (l OptAddressList) Mailboxes() []Mailbox {
	return flatten(l)
}

func flatten(l []Address) []Mailbox {
	var mbs []Mailbox
	for _, a := range l {
		switch a := a.(type) {
		case Mailbox:
			mbs = append(mbs, a)
		case Group:
			mbs = append(mbs, a.Members...)
		}
	}
	return mbs
}

// ParseMailbox parses a single mailbox, as used by Sender.
func ParseMailbox(body string) (m Mailbox, err error) {
	defer catch(&err)
	p := newParser(body)
	m = p.xmailbox()
	p.XEnd()
	return m, nil
}

func parseMailboxes(body string, optional bool) (l []Mailbox, err error) {
	defer catch(&err)
	p := newParser(body)
	l = p.xmailboxList()
	if len(l) == 0 && !optional {
		p.XErrorf("expected at least one mailbox")
	}
	return l, nil
}

func parseAddresses(body string, optional bool) (l []Address, err error) {
	defer catch(&err)
	p := newParser(body)
	l = p.xaddressList()
	if len(l) == 0 && !optional {
		p.XErrorf("expected at least one address")
	}
	return l, nil
}

// ParseMailboxList parses a non-empty list of mailboxes, as used by From.
func ParseMailboxList(body string) (MailboxList, error) {
	l, err := parseMailboxes(body, false)
	return MailboxList(l), err
}

// ParseOptMailboxList parses a possibly empty list of mailboxes.
func ParseOptMailboxList(body string) (OptMailboxList, error) {
	l, err := parseMailboxes(body, true)
	return OptMailboxList(l), err
}

// ParseAddressList parses a non-empty list of mailboxes and groups, as used
// by To, Cc and Reply-To.
func ParseAddressList(body string) (AddressList, error) {
	l, err := parseAddresses(body, false)
	return AddressList(l), err
}

// ParseOptAddressList parses a possibly empty list of mailboxes and groups,
// as used by Bcc.
func ParseOptAddressList(body string) (OptAddressList, error) {
	l, err := parseAddresses(body, true)
	return OptAddressList(l), err
}

// ParseAddrSpec parses a bare address, local-part "@" domain.
func ParseAddrSpec(body string) (as AddrSpec, err error) {
	defer catch(&err)
	p := newParser(body)
	as = p.xaddrSpec()
	p.XEnd()
	return as, nil
}
