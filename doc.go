// Package mailfield is the top of a library for reading and writing the
// header fields of internet mail, following RFC 5322 along with the MIME
// and internationalization RFCs that extend it (2045, 2047, 2183, 2231 and
// 6532).
//
// The work is split up by layer. The header/lex package holds the character
// classes and the scanner every parser is built on. The header/word package
// decodes and encodes RFC 2047 encoded-words. The header/param package
// handles MIME parameters, including RFC 2231 continuations and charsets.
// The header/field package keeps the raw form of each field and folds
// rendered lines. The header/value package defines a typed value for every
// kind of structured field, each with a parser and a renderer.
//
// The header package ties these together. A Registry maps field names to the
// kind of value they carry and how often they may appear. header.Parse reads
// a header block losslessly: a field that is never changed is written back
// out byte for byte. Typed getters and setters, such as GetSubject or
// SetAddressList, parse and render through the registry.
//
// Charsets beyond UTF-8, US-ASCII and ISO-8859-1 are available by importing
// header/encoding for its side effect.
//
// The cmd/mailfield command parses, round-trips and looks up fields from the
// command line.
package mailfield
