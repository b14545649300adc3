package header

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
	"github.com/zostay/go-mailfield/header/value"
)

// ParseField parses the body of the named field as the kind of value the
// registry assigns to it. The body may still be folded; it is unfolded
// first. Unknown fields give value.Unknown holding the unfolded body.
//
// A body that does not match the grammar gives a *MalformedHeaderError. Its
// offset counts octets of the unfolded body.
// Encoded-words or RFC 2231 values in an unsupported charset give an error
// wrapping *word.UnsupportedCharsetError.
func (r *Registry) ParseField(name, body string) (value.Value, error) {
	k, _ := r.Lookup(name)
	body = string(field.Unfold([]byte(body)))
	v, err := value.Parse(k, body)
	if err != nil {
		var serr *lex.SyntaxError
		if errors.As(err, &serr) {
			return nil, &MalformedHeaderError{
				Name:   name,
				Reason: serr.Reason,
				Offset: serr.Offset,
				Err:    serr,
			}
		}
		return nil, fmt.Errorf("%s header: %w", name, err)
	}
	return v, nil
}

// RenderField renders v as the folded lines of the named field. The lines
// carry no line breaks.
//
// When the registry knows the field, v must be of the kind registered for it
// or ErrWrongKind is returned. Fields the registry does not know take a value
// of any kind.
func (r *Registry) RenderField(name string, v value.Value, o *value.RenderOptions) ([]string, error) {
	if !validFieldName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadFieldName, name)
	}

	if e, ok := r.Entry(name); ok && e.Kind != v.Kind() {
		return nil, fmt.Errorf("%w: %s takes %s, not %s", ErrWrongKind, e.Name, e.Kind, v.Kind())
	}

	lines, err := value.Lines(name, v, o)
	if err != nil {
		return nil, fmt.Errorf("%s header: %w", name, err)
	}
	return lines, nil
}

// ParseField parses a field body using the Default registry.
func ParseField(name, body string) (value.Value, error) {
	return Default.ParseField(name, body)
}

// RenderField renders a field using the Default registry.
func RenderField(name string, v value.Value, o *value.RenderOptions) ([]string, error) {
	return Default.RenderField(name, v, o)
}

// validFieldName checks name against the ftext rule of RFC 5322.
func validFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 33 || c > 126 || c == ':' {
			return false
		}
	}
	return true
}
