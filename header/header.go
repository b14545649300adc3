package header

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/param"
	"github.com/zostay/go-mailfield/header/value"
)

// Header wraps a Base, which does the actual storage and low-level field
// manipulation. This provides typed access to the fields through a Registry
// and caches the values parsed from field bodies.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField. A Header is not safe for concurrent use.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base

	reg  *Registry
	intl bool

	// cache holds the parsed value of each field. An entry is only used
	// while the field still has the name and body it was parsed from.
	cache map[*field.Field]cached
}

type cached struct {
	name string
	body string
	v    value.Value
}

// Result is the outcome of parsing one field of a header.
type Result struct {
	Index int
	Field *field.Field
	Value value.Value
	Err   error
}

// Registry returns the registry used to type the fields. It is Default
// unless SetRegistry has been called.
func (h *Header) Registry() *Registry {
	if h.reg == nil {
		return Default
	}
	return h.reg
}

// SetRegistry changes the registry used to type the fields.
func (h *Header) SetRegistry(r *Registry) {
	h.reg = r
	h.cache = nil
}

// Internationalized reports whether values are rendered as RFC 6532 UTF-8.
func (h *Header) Internationalized() bool {
	return h.intl
}

// SetInternationalized turns RFC 6532 rendering on or off for values set
// from here on.
func (h *Header) SetInternationalized(intl bool) {
	h.intl = intl
}

// RenderOptions returns the options values are rendered with when they are
// set on this header.
func (h *Header) RenderOptions() *value.RenderOptions {
	return &value.RenderOptions{
		Fold:              h.FoldEncoding(),
		Internationalized: h.intl,
	}
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	b := h.Base.Clone()

	// cached values are immutable, so they may be shared
	var c map[*field.Field]cached
	if h.cache != nil {
		c = make(map[*field.Field]cached, len(h.cache))
		for i, f := range h.fields {
			if v, ok := h.cache[f]; ok {
				c[b.fields[i]] = v
			}
		}
	}

	return &Header{
		Base:  *b,
		reg:   h.reg,
		intl:  h.intl,
		cache: c,
	}
}

// remember caches v as the value of f.
func (h *Header) remember(f *field.Field, v value.Value) {
	if h.cache == nil {
		h.cache = make(map[*field.Field]cached, h.Len())
	}
	h.cache[f] = cached{f.Name(), f.Body(), v}
}

// forget drops the cached value of f.
func (h *Header) forget(f *field.Field) {
	delete(h.cache, f)
}

// parseField returns the value of f, from the cache when it is still good.
func (h *Header) parseField(f *field.Field) (value.Value, error) {
	if c, ok := h.cache[f]; ok && c.name == f.Name() && c.body == f.Body() {
		return c.v, nil
	}

	v, err := h.Registry().ParseField(f.Name(), f.Body())
	if err != nil {
		return nil, err
	}

	h.remember(f, v)
	return v, nil
}

// Get retrieves the wire body of the named field, unfolded.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple headers for the given named field,
// it will return the first value found and return ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll fetches all the header field bodies for fields with the given
// name and returns them as a slice of strings.
//
// It returns nil with ErrNoSuchField if no field with the given name is set on
// the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// Set will replace all existing header fields with the given name with a single
// header field with the given name and body. If the field already exists on the
// header, then the first occurrence will be replaced with this value and any
// other values will be deleted. If the field does not exist, it will be
// appended to the end of the header.
//
// The body is wire text and is written as given, folded only at the white
// space it holds. Use SetValue to have a value encoded for the field.
func (h *Header) Set(name, body string) {
	h.replace(name, field.New(name, body))
}

// SetAll replaces all the header fields with the given name with the
// bodies given. After a successful completion of this method, the field with
// the given name will occur exactly len(bodies) times in the header. If the
// field is already present in the header, existing fields will have their
// bodies replaced with the new values. Any new fields will be appended to the
// end of the header.
func (h *Header) SetAll(name string, bodies ...string) {
	fs := make([]*field.Field, len(bodies))
	for i, b := range bodies {
		fs[i] = field.New(name, b)
	}
	h.replaceAll(name, fs)
}

// replace puts f in place of the first field named name and deletes the
// others. If there is no such field, f is added.
func (h *Header) replace(name string, f *field.Field) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		h.insertField(h.insertIndex(name), f)
		return
	}

	for i := len(ixs) - 1; i > 0; i-- {
		h.forget(h.fields[ixs[i]])
		// ignore out of range errors, we don't make that mistake here
		_ = h.DeleteField(ixs[i])
	}

	h.forget(h.fields[ixs[0]])
	h.fields[ixs[0]] = f
}

// replaceAll puts fs in place of the fields named name, reusing their
// positions first.
func (h *Header) replaceAll(name string, fs []*field.Field) {
	ixs := h.GetIndexesNamed(name)

	for i, f := range fs {
		if i < len(ixs) {
			h.forget(h.fields[ixs[i]])
			h.fields[ixs[i]] = f
			continue
		}
		h.insertField(h.Len(), f)
	}

	for i := len(ixs) - 1; i >= len(fs); i-- {
		h.forget(h.fields[ixs[i]])
		_ = h.DeleteField(ixs[i])
	}
}

// insertIndex is where a new field named name goes: the top of the header
// for trace fields, the bottom for everything else.
func (h *Header) insertIndex(name string) int {
	if e, ok := h.Registry().Entry(name); ok && e.Trace {
		return 0
	}
	return h.Len()
}

// render builds a field holding v rendered with the options of this header.
func (h *Header) render(name string, v value.Value) (*field.Field, error) {
	lines, err := h.Registry().RenderField(name, v, h.RenderOptions())
	if err != nil {
		return nil, err
	}

	f := field.FromLines(lines, h.Break().Bytes())
	h.remember(f, v)
	return f, nil
}

// GetValue parses the named field as the kind the registry assigns to it.
//
// It returns nil and ErrNoSuchField if the field is not set. If the field is
// set more than once, the value of the first is returned with ErrManyFields.
// A body that does not parse gives a *MalformedHeaderError.
func (h *Header) GetValue(name string) (value.Value, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	v, err := h.parseField(h.GetField(ixs[0]))
	if err != nil {
		return nil, err
	}

	if len(ixs) > 1 {
		return v, ErrManyFields
	}

	return v, nil
}

// GetAllValues parses every field with the given name. It stops at the first
// field that fails to parse.
func (h *Header) GetAllValues(name string) ([]value.Value, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	vs := make([]value.Value, len(fs))
	for i, f := range fs {
		v, err := h.parseField(f)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}

	return vs, nil
}

// SetValue renders v and replaces all fields with the given name with it, as
// Set does. A new trace field goes to the top of the header.
func (h *Header) SetValue(name string, v value.Value) error {
	f, err := h.render(name, v)
	if err != nil {
		return err
	}

	h.replace(name, f)
	return nil
}

// SetAllValues renders each value and replaces the fields with the given name
// with them, as SetAll does. Nothing changes if any value fails to render.
func (h *Header) SetAllValues(name string, vs ...value.Value) error {
	fs := make([]*field.Field, len(vs))
	for i, v := range vs {
		f, err := h.render(name, v)
		if err != nil {
			return err
		}
		fs[i] = f
	}

	h.replaceAll(name, fs)
	return nil
}

// AddValue renders v as a new field without touching existing fields of the
// same name. Trace fields are added to the top of the header, as a relay
// does. Others are added at the bottom.
func (h *Header) AddValue(name string, v value.Value) error {
	f, err := h.render(name, v)
	if err != nil {
		return err
	}

	h.insertField(h.insertIndex(name), f)
	return nil
}

// ParseValues parses every field of the header and reports the outcome for
// each one. Fields that fail to parse have Err set; the others have Value
// set. Unknown fields are never an error.
func (h *Header) ParseValues() []Result {
	rs := make([]Result, len(h.fields))
	for i, f := range h.fields {
		v, err := h.parseField(f)
		rs[i] = Result{Index: i, Field: f, Value: v, Err: err}
	}
	return rs
}

// Validate checks the header against the multiplicity rules of the registry:
// fields that must appear once, fields that may appear at most once and
// trace fields, which must come before all the other fields. Every problem is
// reported as a *ValidationError, joined into one error.
func (h *Header) Validate() error {
	reg := h.Registry()

	counts := make(map[string][]int, len(h.fields))
	for i, f := range h.fields {
		k := strings.ToLower(f.Name())
		counts[k] = append(counts[k], i)
	}

	var errs []error
	for _, e := range reg.Entries() {
		ixs := counts[strings.ToLower(e.Name)]
		switch e.Multiplicity {
		case ExactlyOne:
			if len(ixs) == 0 {
				errs = append(errs, &ValidationError{Name: e.Name, Index: -1, Reason: "required field is missing"})
			}
			fallthrough
		case AtMostOne:
			for _, ix := range ixs[min(len(ixs), 1):] {
				errs = append(errs, &ValidationError{Name: e.Name, Index: ix, Reason: "field may appear only once"})
			}
		}
	}

	seenOther := false
	for i, f := range h.fields {
		if !traceBlock(reg, f.Name()) {
			seenOther = true
			continue
		}
		if seenOther {
			errs = append(errs, &ValidationError{Name: f.Name(), Index: i, Reason: "trace field after other fields"})
		}
	}

	return errors.Join(errs...)
}

// traceBlock reports whether the named field belongs with the trace fields at
// the top of the header: the trace fields themselves and the resent fields
// that are prepended along with them.
func traceBlock(reg *Registry, name string) bool {
	e, ok := reg.Entry(name)
	if !ok {
		return false
	}
	return e.Trace || strings.HasPrefix(strings.ToLower(e.Name), "resent-")
}

// typed converts a value returned by GetValue to the type the caller expects.
// A registry that maps the field elsewhere gives ErrWrongKind.
func typed[T value.Value](v value.Value, err error) (T, error) {
	var zero T
	if v == nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field holds %s", ErrWrongKind, v.Kind())
	}

	return t, err
}

// GetTime gets the named date field as a time.Time. A body that is not an
// RFC 5322 date-time is parsed with ParseDateTimeLenient, so many other
// formats are accepted too.
//
// It will return the zero value and ErrNoSuchField if the header does not
// exist. It will return the first value and ErrManyFields if more than one
// field with the name is set on the header.
func (h *Header) GetTime(name string) (time.Time, error) {
	d, err := typed[value.DateTime](h.GetValue(name))

	var merr *MalformedHeaderError
	if errors.As(err, &merr) || errors.Is(err, ErrWrongKind) {
		body, gerr := h.Get(name)
		ld, lerr := value.ParseDateTimeLenient(body)
		if lerr != nil {
			return time.Time{}, err
		}
		d, err = ld, gerr
	}

	return d.Time, err
}

// SetTime replaces the named field with the given time.
func (h *Header) SetTime(name string, t time.Time) error {
	return h.SetValue(name, value.DateTime{Time: t})
}

// GetDate retrieves the Date header as a time.Time value.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate updates the Date header from the given time.Time value.
func (h *Header) SetDate(d time.Time) error {
	return h.SetTime(Date, d)
}

// asAddressList turns any address value into an AddressList.
func asAddressList(v value.Value) (value.AddressList, bool) {
	switch v := v.(type) {
	case value.AddressList:
		return v, true
	case value.OptAddressList:
		return value.AddressList(v), true
	case value.MailboxList:
		return mailboxesToAddresses(v), true
	case value.OptMailboxList:
		return mailboxesToAddresses(v), true
	case value.Mailbox:
		return value.AddressList{v}, true
	}
	return nil, false
}

func mailboxesToAddresses(ms []value.Mailbox) value.AddressList {
	al := make(value.AddressList, len(ms))
	for i, m := range ms {
		al[i] = m
	}
	return al
}

// addressList parses the body of a single field as an address list.
func (h *Header) addressList(f *field.Field) (value.AddressList, error) {
	v, err := h.parseField(f)

	var merr *MalformedHeaderError
	if errors.As(err, &merr) {
		return value.ParseAddressListLenient(f.Body()), nil
	} else if err != nil {
		return nil, err
	}

	if al, ok := asAddressList(v); ok {
		return al, nil
	}

	return value.ParseAddressListLenient(f.Body()), nil
}

// GetAddressList will return the addresses in the named field. This method
// works hard to avoid parse errors and tries to accept anything. A field that
// fails the strict grammar is parsed with ParseAddressListLenient, so a badly
// formatted address field might return a weird address value or an empty
// list.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
// It will return the first list and ErrManyFields if the field is set more
// than once on the header.
func (h *Header) GetAddressList(name string) (value.AddressList, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	al, err := h.addressList(h.GetField(ixs[0]))
	if err != nil {
		return nil, err
	}

	if len(ixs) > 1 {
		return al, ErrManyFields
	}

	return al, nil
}

// GetAllAddressLists will return the addresses of every field with the given
// name, parsed the way GetAddressList does.
//
// If the named field does not exist in the header, this will return nil with
// ErrNoSuchField.
func (h *Header) GetAllAddressLists(name string) ([]value.AddressList, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	als := make([]value.AddressList, len(fs))
	for i, f := range fs {
		al, err := h.addressList(f)
		if err != nil {
			return nil, err
		}
		als[i] = al
	}

	return als, nil
}

// SetAddressList replaces the named field with the given addresses, rendered
// as the kind of address value the registry assigns to the field.
func (h *Header) SetAddressList(name string, as ...value.Address) error {
	k, _ := h.Registry().Lookup(name)

	var v value.Value
	switch k {
	case value.KindMailbox:
		ms, err := onlyMailboxes(as)
		if err != nil {
			return err
		}
		if len(ms) != 1 {
			return fmt.Errorf("%s header takes one mailbox, not %d", name, len(ms))
		}
		v = ms[0]
	case value.KindMailboxList:
		ms, err := onlyMailboxes(as)
		if err != nil {
			return err
		}
		v = value.MailboxList(ms)
	case value.KindOptMailboxList:
		ms, err := onlyMailboxes(as)
		if err != nil {
			return err
		}
		v = value.OptMailboxList(ms)
	case value.KindOptAddressList:
		v = value.OptAddressList(as)
	case value.KindAddressList, value.KindUnknown:
		v = value.AddressList(as)
	default:
		return fmt.Errorf("%w: %s does not hold addresses", ErrWrongKind, name)
	}

	return h.SetValue(name, v)
}

func onlyMailboxes(as []value.Address) ([]value.Mailbox, error) {
	ms := make([]value.Mailbox, len(as))
	for i, a := range as {
		m, ok := a.(value.Mailbox)
		if !ok {
			return nil, fmt.Errorf("%w: group %q where a mailbox is required", ErrWrongAddressType, a.String())
		}
		ms[i] = m
	}
	return ms, nil
}

// setAddress allows the setting of an address field from strings, addresses
// of this module or addresses of github.com/zostay/go-addr.
func (h *Header) setAddress(n string, as []any) error {
	var al []value.Address
	for _, a := range as {
		more, err := toAddresses(a)
		if err != nil {
			return err
		}
		al = append(al, more...)
	}
	return h.SetAddressList(n, al...)
}

// toAddresses converts one argument of the address setters.
func toAddresses(a any) ([]value.Address, error) {
	switch v := a.(type) {
	case string:
		al, err := value.ParseAddressList(v)
		if err != nil {
			return nil, err
		}
		return al, nil
	case value.Address:
		return []value.Address{v}, nil
	case value.AddressList:
		return v, nil
	case value.MailboxList:
		return mailboxesToAddresses(v), nil
	case addr.AddressList:
		return value.FromAddr(v)
	case addr.Address:
		return value.FromAddr(addr.AddressList{v})
	}
	return nil, ErrWrongAddressType
}

// GetTo returns the addresses of the To field.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
// It will return ErrManyFields if the field is set more than once on the
// header.
func (h *Header) GetTo() (value.AddressList, error) {
	return h.GetAddressList(To)
}

// SetTo sets the To address field. Each argument may be a string holding an
// address list, a value.Address, a value.AddressList, a value.MailboxList, an
// addr.Address or an addr.AddressList.
//
// It will fail with an error returned if something other than those types is
// provided or if the given string fails to strictly parse.
func (h *Header) SetTo(a ...any) error {
	return h.setAddress(To, a)
}

// GetCc returns the addresses of the Cc field.
func (h *Header) GetCc() (value.AddressList, error) {
	return h.GetAddressList(Cc)
}

// SetCc sets the Cc address field, taking the same arguments as SetTo.
func (h *Header) SetCc(a ...any) error {
	return h.setAddress(Cc, a)
}

// GetBcc returns the addresses of the Bcc field. An empty Bcc field gives an
// empty list.
func (h *Header) GetBcc() (value.AddressList, error) {
	return h.GetAddressList(Bcc)
}

// SetBcc sets the Bcc address field, taking the same arguments as SetTo.
// With no arguments, an empty Bcc field is set.
func (h *Header) SetBcc(a ...any) error {
	return h.setAddress(Bcc, a)
}

// GetFrom returns the addresses of the From field.
func (h *Header) GetFrom() (value.AddressList, error) {
	return h.GetAddressList(From)
}

// SetFrom sets the From address field, taking the same arguments as SetTo.
// Groups are rejected.
func (h *Header) SetFrom(a ...any) error {
	return h.setAddress(From, a)
}

// GetReplyTo returns the addresses of the Reply-To field.
func (h *Header) GetReplyTo() (value.AddressList, error) {
	return h.GetAddressList(ReplyTo)
}

// SetReplyTo sets the Reply-To address field, taking the same arguments as
// SetTo.
func (h *Header) SetReplyTo(a ...any) error {
	return h.setAddress(ReplyTo, a)
}

// GetSender returns the mailbox of the Sender field.
func (h *Header) GetSender() (value.AddressList, error) {
	return h.GetAddressList(Sender)
}

// SetSender sets the Sender field. Exactly one mailbox must be given.
func (h *Header) SetSender(a ...any) error {
	return h.setAddress(Sender, a)
}

// GetSubject returns the decoded text of the Subject field.
//
// If Subject is not set in the header, it will return an empty string with
// ErrNoSuchField. If there are multiple Subject headers, it will return
// ErrManyFields.
func (h *Header) GetSubject() (string, error) {
	u, err := typed[value.Unstructured](h.GetValue(Subject))
	return string(u), err
}

// SetSubject replaces the Subject header field. Text that is not ASCII is
// encoded.
func (h *Header) SetSubject(s string) error {
	return h.SetValue(Subject, value.Unstructured(s))
}

// GetComments returns the decoded text of every Comments field.
func (h *Header) GetComments() ([]string, error) {
	vs, err := h.GetAllValues(Comments)
	if err != nil {
		return nil, err
	}

	cs := make([]string, len(vs))
	for i, v := range vs {
		u, err := typed[value.Unstructured](v, nil)
		if err != nil {
			return nil, err
		}
		cs[i] = string(u)
	}
	return cs, nil
}

// SetComments replaces all Comments fields with the given texts.
func (h *Header) SetComments(cs ...string) error {
	vs := make([]value.Value, len(cs))
	for i, c := range cs {
		vs[i] = value.Unstructured(c)
	}
	return h.SetAllValues(Comments, vs...)
}

// GetKeywords returns all the keywords set on all the Keywords fields.
//
// This method will return nil with ErrNoSuchField if the Keywords field does
// not exist.
func (h *Header) GetKeywords() ([]string, error) {
	vs, err := h.GetAllValues(Keywords)
	if err != nil {
		return nil, err
	}

	var ks []string
	for _, v := range vs {
		l, err := typed[value.PhraseList](v, nil)
		if err != nil {
			return nil, err
		}
		ks = append(ks, l...)
	}
	return ks, nil
}

// SetKeywords replaces all Keywords fields with one holding the given
// keywords.
func (h *Header) SetKeywords(ks ...string) error {
	return h.SetValue(Keywords, value.PhraseList(ks))
}

// GetMessageID returns the identifier in the Message-ID field.
func (h *Header) GetMessageID() (value.MessageID, error) {
	return typed[value.MessageID](h.GetValue(MessageID))
}

// SetMessageID sets the Message-ID field. Use value.NewMessageID to make a
// new identifier.
func (h *Header) SetMessageID(id value.MessageID) error {
	return h.SetValue(MessageID, id)
}

// GetInReplyTo returns the identifiers in the In-Reply-To field.
func (h *Header) GetInReplyTo() (value.MessageIDList, error) {
	return typed[value.MessageIDList](h.GetValue(InReplyTo))
}

// SetInReplyTo sets the In-Reply-To field.
func (h *Header) SetInReplyTo(ids ...value.MessageID) error {
	return h.SetValue(InReplyTo, value.MessageIDList(ids))
}

// GetReferences returns the identifiers in the References field.
func (h *Header) GetReferences() (value.MessageIDList, error) {
	return typed[value.MessageIDList](h.GetValue(References))
}

// SetReferences sets the References field.
func (h *Header) SetReferences(ids ...value.MessageID) error {
	return h.SetValue(References, value.MessageIDList(ids))
}

// GetContentType returns the Content-Type field.
//
// It returns ErrNoSuchField if the field is not set on the header. It returns
// the first value and ErrManyFields if the field is set more than once on the
// header.
func (h *Header) GetContentType() (value.Mime, error) {
	return typed[value.Mime](h.GetValue(ContentType))
}

// SetContentType replaces the Content-Type field.
func (h *Header) SetContentType(m value.Mime) error {
	return h.SetValue(ContentType, m)
}

// GetMediaType returns the "type/subtype" of the Content-Type field.
func (h *Header) GetMediaType() (string, error) {
	m, err := h.GetContentType()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}
	return m.MediaType(), err
}

// SetMediaType replaces the media type of the Content-Type field, creating it
// if it has not been set yet. If the Content-Type field already exists, its
// parameters are preserved.
func (h *Header) SetMediaType(mt string) error {
	typ, sub, ok := strings.Cut(strings.ToLower(mt), "/")
	if !ok {
		return fmt.Errorf("invalid media type %q", mt)
	}

	m, err := h.GetContentType()
	if err != nil && !errors.Is(err, ErrManyFields) {
		m = value.Mime{}
	}

	m.Type, m.Subtype = typ, sub
	return h.SetContentType(m)
}

// GetCharset gets the charset parameter of the Content-Type field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but the parameter is not set
// on the field.
func (h *Header) GetCharset() (string, error) {
	m, err := h.GetContentType()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}
	return paramOf(m.Params, param.Charset)
}

// SetCharset sets the charset parameter of the Content-Type field. The field
// must already be set.
func (h *Header) SetCharset(c string) error {
	return h.setMimeParam(param.Charset, c)
}

// GetBoundary gets the boundary parameter of the Content-Type field, with the
// same errors as GetCharset.
func (h *Header) GetBoundary() (string, error) {
	m, err := h.GetContentType()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}
	return paramOf(m.Params, param.Boundary)
}

// SetBoundary sets the boundary parameter of the Content-Type field. The
// field must already be set.
func (h *Header) SetBoundary(b string) error {
	return h.setMimeParam(param.Boundary, b)
}

// paramOf returns the named parameter or ErrNoSuchFieldParameter.
func paramOf(l param.List, name string) (string, error) {
	p, ok := l.Get(name)
	if !ok {
		return "", ErrNoSuchFieldParameter
	}
	return p.Value, nil
}

func (h *Header) setMimeParam(name, v string) error {
	m, err := h.GetContentType()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return err
	}
	return h.SetContentType(value.MimeFromParam(param.Modify(m.Param(), param.Set(name, v))))
}

// GetContentDisposition returns the Content-Disposition field.
func (h *Header) GetContentDisposition() (value.Disposition, error) {
	return typed[value.Disposition](h.GetValue(ContentDisposition))
}

// SetContentDisposition replaces the Content-Disposition field.
func (h *Header) SetContentDisposition(d value.Disposition) error {
	return h.SetValue(ContentDisposition, d)
}

// GetPresentation returns the disposition type of the Content-Disposition
// field, such as "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	d, err := h.GetContentDisposition()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}
	return d.Type, err
}

// SetPresentation sets the disposition type of the Content-Disposition field,
// keeping its parameters.
func (h *Header) SetPresentation(p string) error {
	d, err := h.GetContentDisposition()
	if err != nil && !errors.Is(err, ErrManyFields) {
		d = value.Disposition{}
	}
	d.Type = strings.ToLower(p)
	return h.SetContentDisposition(d)
}

// GetFilename gets the filename parameter of the Content-Disposition field,
// with the same errors as GetCharset.
func (h *Header) GetFilename() (string, error) {
	d, err := h.GetContentDisposition()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}
	return paramOf(d.Params, param.Filename)
}

// SetFilename sets the filename parameter of the Content-Disposition field.
// The field must already be set.
func (h *Header) SetFilename(f string) error {
	d, err := h.GetContentDisposition()
	if err != nil && !errors.Is(err, ErrManyFields) {
		return err
	}
	return h.SetContentDisposition(value.DispositionFromParam(param.Modify(d.Param(), param.Set(param.Filename, f))))
}

// GetTransferEncoding returns the Content-Transfer-Encoding field.
func (h *Header) GetTransferEncoding() (value.TransferEncoding, error) {
	return typed[value.TransferEncoding](h.GetValue(ContentTransferEncoding))
}

// SetTransferEncoding replaces the Content-Transfer-Encoding field.
func (h *Header) SetTransferEncoding(te value.TransferEncoding) error {
	return h.SetValue(ContentTransferEncoding, te)
}

// GetReceived returns every Received field, newest first as they appear in
// the header.
func (h *Header) GetReceived() ([]value.ReceivedToken, error) {
	vs, err := h.GetAllValues(Received)
	if err != nil {
		return nil, err
	}

	rs := make([]value.ReceivedToken, len(vs))
	for i, v := range vs {
		r, err := typed[value.ReceivedToken](v, nil)
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}
	return rs, nil
}

// AddReceived adds a Received field to the top of the header.
func (h *Header) AddReceived(r value.ReceivedToken) error {
	return h.AddValue(Received, r)
}

// GetReturnPath returns the Return-Path field.
func (h *Header) GetReturnPath() (value.Path, error) {
	return typed[value.Path](h.GetValue(ReturnPath))
}

// SetReturnPath replaces the Return-Path field. A new field goes to the top
// of the header.
func (h *Header) SetReturnPath(p value.Path) error {
	return h.SetValue(ReturnPath, p)
}
