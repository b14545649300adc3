package header

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mailfield/header/value"
)

// The names of the fields known to the default registry, in their usual
// spelling. Lookups ignore case.
const (
	Date                    = "Date"
	From                    = "From"
	Sender                  = "Sender"
	ReplyTo                 = "Reply-To"
	To                      = "To"
	Cc                      = "Cc"
	Bcc                     = "Bcc"
	MessageID               = "Message-ID"
	InReplyTo               = "In-Reply-To"
	References              = "References"
	Subject                 = "Subject"
	Comments                = "Comments"
	Keywords                = "Keywords"
	ResentDate              = "Resent-Date"
	ResentFrom              = "Resent-From"
	ResentSender            = "Resent-Sender"
	ResentTo                = "Resent-To"
	ResentCc                = "Resent-Cc"
	ResentBcc               = "Resent-Bcc"
	ResentMessageID         = "Resent-Message-ID"
	ResentMsgID             = "Resent-Msg-ID"
	ReturnPath              = "Return-Path"
	Received                = "Received"
	MIMEVersion             = "MIME-Version"
	ContentType             = "Content-Type"
	ContentID               = "Content-ID"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentDescription      = "Content-Description"
	ContentDisposition      = "Content-Disposition"
)

// Multiplicity is how many times a field may appear in a header.
type Multiplicity int

// The multiplicities of RFC 5322 section 3.6. ZeroOrMore is the zero value
// and is what unknown fields get.
const (
	ZeroOrMore Multiplicity = iota
	ExactlyOne
	AtMostOne

	// OneOrMoreOrderedTrace is for trace fields, which are prepended by each
	// relay and so must stay in order above the other fields.
	OneOrMoreOrderedTrace
)

// String returns the name of the multiplicity.
func (m Multiplicity) String() string {
	switch m {
	case ZeroOrMore:
		return "ZeroOrMore"
	case ExactlyOne:
		return "ExactlyOne"
	case AtMostOne:
		return "AtMostOne"
	case OneOrMoreOrderedTrace:
		return "OneOrMoreOrderedTrace"
	}
	return fmt.Sprintf("Multiplicity(%d)", int(m))
}

// ParseMultiplicity returns the multiplicity named by s, as returned by
// Multiplicity.String. Case is ignored.
func ParseMultiplicity(s string) (Multiplicity, error) {
	for m := ZeroOrMore; m <= OneOrMoreOrderedTrace; m++ {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return ZeroOrMore, fmt.Errorf("unknown multiplicity %q", s)
}

// Entry describes one known field.
type Entry struct {
	Name         string
	Kind         value.Kind
	Multiplicity Multiplicity

	// Trace marks the fields of a trace block, Return-Path and Received,
	// which belong above all other fields.
	Trace bool

	Note string
}

// Registry maps field names to entries. It is read-only once built and safe
// for concurrent use.
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// NewRegistry builds a registry holding the given entries. It fails if two
// entries share a name, ignoring case.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	copy(r.entries, entries)

	for i, e := range r.entries {
		k := strings.ToLower(e.Name)
		if _, dup := r.byName[k]; dup {
			return nil, fmt.Errorf("field %q registered twice", e.Name)
		}
		r.byName[k] = i
	}

	return r, nil
}

// Entry returns the entry for name. Case is ignored.
func (r *Registry) Entry(name string) (Entry, bool) {
	i, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Lookup returns the kind and multiplicity of the named field. Unknown
// fields are value.KindUnknown and ZeroOrMore.
func (r *Registry) Lookup(name string) (value.Kind, Multiplicity) {
	e, ok := r.Entry(name)
	if !ok {
		return value.KindUnknown, ZeroOrMore
	}
	return e.Kind, e.Multiplicity
}

// Entries returns every entry in the order given to NewRegistry.
func (r *Registry) Entries() []Entry {
	es := make([]Entry, len(r.entries))
	copy(es, r.entries)
	return es
}

// Standard lists the fields of RFC 5322, RFC 2045 and RFC 2183.
var Standard = []Entry{
	{Name: Date, Kind: value.KindDateTime, Multiplicity: ExactlyOne},
	{Name: From, Kind: value.KindMailboxList, Multiplicity: ExactlyOne},
	{Name: Sender, Kind: value.KindMailbox, Multiplicity: AtMostOne},
	{Name: ReplyTo, Kind: value.KindAddressList, Multiplicity: AtMostOne},
	{Name: To, Kind: value.KindAddressList, Multiplicity: AtMostOne},
	{Name: Cc, Kind: value.KindAddressList, Multiplicity: AtMostOne},
	{Name: Bcc, Kind: value.KindOptAddressList, Multiplicity: AtMostOne},
	{Name: MessageID, Kind: value.KindMessageID, Multiplicity: AtMostOne},
	{Name: InReplyTo, Kind: value.KindMessageIDList, Multiplicity: AtMostOne},
	{Name: References, Kind: value.KindMessageIDList, Multiplicity: AtMostOne},
	{Name: Subject, Kind: value.KindUnstructured, Multiplicity: AtMostOne},
	{Name: Comments, Kind: value.KindUnstructured, Multiplicity: ZeroOrMore},
	{Name: Keywords, Kind: value.KindPhraseList, Multiplicity: ZeroOrMore},
	{Name: ResentDate, Kind: value.KindDateTime, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentFrom, Kind: value.KindMailboxList, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentSender, Kind: value.KindMailbox, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentTo, Kind: value.KindAddressList, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentCc, Kind: value.KindAddressList, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentBcc, Kind: value.KindOptAddressList, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentMessageID, Kind: value.KindMessageID, Multiplicity: ZeroOrMore, Note: "resent block"},
	{Name: ResentMsgID, Kind: value.KindMessageID, Multiplicity: ZeroOrMore, Note: "obsolete spelling of Resent-Message-ID"},
	{Name: ReturnPath, Kind: value.KindPath, Multiplicity: ZeroOrMore, Trace: true, Note: "trace"},
	{Name: Received, Kind: value.KindReceivedToken, Multiplicity: OneOrMoreOrderedTrace, Trace: true, Note: "trace"},
	{Name: MIMEVersion, Kind: value.KindUnstructured, Multiplicity: AtMostOne},
	{Name: ContentType, Kind: value.KindMime, Multiplicity: AtMostOne},
	{Name: ContentID, Kind: value.KindMessageID, Multiplicity: AtMostOne},
	{Name: ContentTransferEncoding, Kind: value.KindTransferEncoding, Multiplicity: AtMostOne},
	{Name: ContentDescription, Kind: value.KindUnstructured, Multiplicity: AtMostOne, Note: "RFC 2045 text is the unstructured grammar"},
	{Name: ContentDisposition, Kind: value.KindDisposition, Multiplicity: AtMostOne},
}

// Default is the registry of the Standard fields.
var Default = mustRegistry(Standard...)

func mustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the kind and multiplicity of the named field in the
// Default registry.
func Lookup(name string) (value.Kind, Multiplicity) {
	return Default.Lookup(name)
}
