package field

// Base holds the name of a header field and its body as it appears on the
// wire, unfolded. Encoded-words in the body are left as they are; decoding is
// the job of the typed value parsers.
type Base struct {
	name string
	body string
}

// Name returns the name of the header field.
func (f *Base) Name() string {
	return f.name
}

// SetName updates the name of the header field.
func (f *Base) SetName(name string) {
	f.name = name
}

// Body returns the unfolded wire body of the header field.
func (f *Base) Body() string {
	return f.body
}

// SetBody updates the body of the header field.
func (f *Base) SetBody(body string) {
	f.body = body
}

// String returns the complete header field as a single unfolded line.
func (f *Base) String() string {
	if f.body == "" {
		return f.name + ":"
	}
	return f.name + ": " + f.body
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Base) Bytes() []byte {
	return []byte(f.String())
}
