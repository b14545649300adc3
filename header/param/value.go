// Package param handles parameterized header field bodies such as those of
// Content-Type and Content-Disposition: a primary value followed by an
// ordered list of name=value parameters, including the RFC 2231 extensions
// for charsets, languages and continuations.
package param

import (
	"strings"

	"github.com/zostay/go-mailfield/header/field"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"

	// CreationDate, ModificationDate, ReadDate and Size are the remaining
	// Content-disposition parameters defined by RFC 2183.
	CreationDate     = "creation-date"
	ModificationDate = "modification-date"
	ReadDate         = "read-date"
	Size             = "size"
)

// Param is a single parameter. Name is always lower case. Value is the
// decoded value, with any RFC 2231 continuations joined and charset decoded.
// Language is the RFC 2231 language tag, if one was given.
type Param struct {
	Name     string
	Value    string
	Language string
}

// List is an ordered list of parameters with unique names.
type List []Param

// Get returns the parameter with the given name, compared case-insensitively.
func (l List) Get(name string) (Param, bool) {
	for _, p := range l {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Param{}, false
}

// Value represents a parsed parameterized header field. A Value object is
// immutable: You cannot change it in place. However, a Modify() function is
// provided to perform transformation of a Value into a new Value.
type Value struct {
	v  string
	ps List
}

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{strings.ToLower(v), nil}
}

// NewWithParams creates a new parameterized header field with the given
// parameters, in the order given. Names are lower cased and a later
// parameter replaces an earlier one with the same name.
func NewWithParams(v string, ps ...Param) *Value {
	pv := New(v)
	for _, p := range ps {
		SetParam(p)(pv)
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = strings.ToLower(value)
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
// An existing parameter keeps its position.
func Set(name, value string) Modifier {
	return SetParam(Param{Name: name, Value: value})
}

// SetParam is like Set, but also allows the language to be given.
func SetParam(p Param) Modifier {
	return func(pv *Value) {
		p.Name = strings.ToLower(p.Name)
		for i := range pv.ps {
			if pv.ps[i].Name == p.Name {
				pv.ps[i] = p
				return
			}
		}
		pv.ps = append(pv.ps, p)
	}
}

// Delete is a Modifier that removes the parameter with the given name from the
// Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		name = strings.ToLower(name)
		for i := range pv.ps {
			if pv.ps[i].Name == name {
				pv.ps = append(pv.ps[:i:i], pv.ps[i+1:]...)
				return
			}
		}
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v, _ := param.ParseMediaType("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/alternative"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	copy := pv.Clone()
	for _, change := range changes {
		change(copy)
	}
	return copy
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon, lower cased.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-disposition,
// either "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type returns the part of MediaType() before the slash, or an empty string
// if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexByte(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of MediaType() after the slash, or an empty string
// if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexByte(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Params returns a copy of the ordered parameter list.
func (pv *Value) Params() List {
	if len(pv.ps) == 0 {
		return nil
	}
	return append(List(nil), pv.ps...)
}

// Parameters returns the parameter values keyed by name.
func (pv *Value) Parameters() map[string]string {
	m := make(map[string]string, len(pv.ps))
	for _, p := range pv.ps {
		m[p.Name] = p.Value
	}
	return m
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	p, _ := pv.ps.Get(k)
	return p.Value
}

// Filename returns the value of the "filename" parameter. It is intended for
// use with the Content-disposition header.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Charset returns the value of the "charset" parameter. It is intended for use
// with the Content-type header.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the value of the "boundary" parameter. It is intended for
// use with the Content-type header.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// Equal reports whether two values have the same primary value and the same
// parameters in the same order.
func (pv *Value) Equal(o *Value) bool {
	if pv.v != o.v || len(pv.ps) != len(o.ps) {
		return false
	}
	for i := range pv.ps {
		if pv.ps[i] != o.ps[i] {
			return false
		}
	}
	return true
}

// String returns the value rendered on a single line.
func (pv *Value) String() string {
	var w field.Writer
	_ = pv.Render(&w, field.DoNotFold, true)
	return w.String()
}

// Bytes returns the value rendered on a single line.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	return &Value{pv.v, pv.Params()}
}
