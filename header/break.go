package header

// Break is the line break that separates header fields and ends the header.
type Break string

// The line breaks seen in the wild. Use CRLF for anything sent over the
// network. Meh means the header was parsed without knowing the line break,
// in which case any trailing CR or LF is stripped from each field.
const (
	Meh  Break = ""
	CRLF Break = "\x0d\x0a"
	LF   Break = "\x0a"
	CR   Break = "\x0d"
	LFCR Break = "\x0a\x0d"
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
