package value

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// Addr converts the mailbox into a go-addr mailbox.
func (m Mailbox) Addr() (*addr.Mailbox, error) {
	return addr.ParseEmailMailbox(m.String())
}

// Addr converts the list into a go-addr address list.
func (l AddressList) Addr() (addr.AddressList, error) {
	return addr.ParseEmailAddressList(l.String())
}

// Addr converts the list into a go-addr address list. An empty list gives a
// nil result.
func (l OptAddressList) Addr() (addr.AddressList, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return AddressList(l).Addr()
}

// FromAddr converts a go-addr address list into an AddressList.
func FromAddr(al addr.AddressList) (AddressList, error) {
	return ParseAddressList(al.String())
}

// ParseAddressListLenient parses an address list the way ParseAddressList
// does. If that fails, it falls back on a heuristic that works with the mess
// found on the Internet and so never fails:
//
// 1. Split the string up by commas.
// 2. Keep each piece that parses as a mailbox on its own.
// 3. Strip the comments from the other pieces.
// 4. Treat the last word of such a piece as the address and the words before
// it as the display name.
//
// Groups are never recognized by the fallback and pieces with no words are
// dropped, so the result may be empty.
func ParseAddressListLenient(body string) AddressList {
	if al, err := ParseAddressList(body); err == nil {
		return al
	}

	pieces := strings.Split(body, ",")
	al := make(AddressList, 0, len(pieces))
	for _, piece := range pieces {
		if mb, err := ParseMailbox(piece); err == nil {
			al = append(al, mb)
			continue
		}

		parts := strings.Fields(stripComments(piece))
		if len(parts) == 0 {
			continue
		}

		email := strings.Trim(parts[len(parts)-1], "<>")
		mb := Mailbox{DisplayName: strings.Join(parts[:len(parts)-1], " ")}
		if i := strings.LastIndex(email, "@"); i >= 0 {
			mb.AddrSpec = AddrSpec{LocalPart: email[:i], Domain: email[i+1:]}
		} else {
			mb.AddrSpec = AddrSpec{LocalPart: email}
		}
		al = append(al, mb)
	}
	return al
}

// stripComments removes parenthesized comments, tolerating unbalanced
// parentheses.
func stripComments(s string) string {
	var clean strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth == 0:
			clean.WriteRune(c)
		}
	}
	return clean.String()
}
