package value

import (
	"errors"
	"strings"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/word"
)

// Unstructured is free text with encoded-words decoded. It is the value of
// Subject and Comments as well as of MIME's Content-Description, whose RFC
// 2045 text grammar is the same.
type Unstructured string

var _ Value = Unstructured("")

func (Unstructured) sealed() {}

// Kind returns KindUnstructured.
func (Unstructured) Kind() Kind { return KindUnstructured }

// String returns the text as it would be written in a header.
func (u Unstructured) String() string { return render(u) }

// Render writes the text, with runs of words that cannot be written as they
// are turned into encoded-words. The existing white space is kept and is
// where the line may fold.
func (u Unstructured) Render(w *field.Writer, o *RenderOptions) error {
	frags, err := word.EncodeText(string(u), o.words(w, 0))
	if err != nil {
		return err
	}
	for _, f := range frags {
		w.Fold(f.Space, f.Text)
	}
	return nil
}

// ParseUnstructured decodes unstructured header text.
func ParseUnstructured(body string) (Unstructured, error) {
	s, err := word.DecodeText(body)
	return Unstructured(s), err
}

// PhraseList is a non-empty list of phrases, as used by Keywords.
type PhraseList []string

var _ Value = PhraseList{}

func (PhraseList) sealed() {}

// Kind returns KindPhraseList.
func (PhraseList) Kind() Kind { return KindPhraseList }

// String returns the phrases separated by commas.
func (l PhraseList) String() string { return render(l) }

// Render writes the phrases separated by commas.
func (l PhraseList) Render(w *field.Writer, o *RenderOptions) error {
	if len(l) == 0 {
		return errors.New("phrase list must not be empty")
	}
	for i, ph := range l {
		if i > 0 {
			w.Write(",")
		}
		if err := writePhrase(w, ph, o); err != nil {
			return err
		}
	}
	return nil
}

// ParsePhraseList parses a comma separated list of phrases. Empty elements
// are skipped, but at least one phrase must be present.
func ParsePhraseList(body string) (l PhraseList, err error) {
	defer catch(&err)
	p := newParser(body)
	l = xlist(p, p.xphrase)
	if len(l) == 0 {
		p.XErrorf("expected at least one phrase")
	}
	return l, nil
}

// Unknown is the body of a field the registry does not know, kept exactly as
// it appeared on the wire.
type Unknown string

var _ Value = Unknown("")

func (Unknown) sealed() {}

// Kind returns KindUnknown.
func (Unknown) Kind() Kind { return KindUnknown }

// String returns the body unchanged.
func (u Unknown) String() string { return string(u) }

// Render writes the body unchanged. The line may fold only where the body
// already has white space.
func (u Unknown) Render(w *field.Writer, o *RenderOptions) error {
	if strings.ContainsAny(string(u), "\r\n") {
		return errors.New("unknown field body contains a line break")
	}
	for _, f := range word.Split(string(u)) {
		w.Fold(f.Space, f.Text)
	}
	return nil
}
