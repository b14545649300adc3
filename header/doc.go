// Package header maps header field names to the grammar of their bodies and
// ties the value parsers and renderers to a collection of header fields.
//
// The registry answers which kind of value a field carries and how often it
// may appear. ParseField and RenderField dispatch on it. Names the registry
// does not know carry value.Unknown and pass through untouched.
//
// Header holds the fields of a message header in order. Fields read with
// Parse keep their original bytes and are written back out unchanged unless
// they are replaced. Typed getters parse field bodies on demand and cache the
// result; typed setters render values through the registry so that the
// output is correctly folded and encoded.
package header
