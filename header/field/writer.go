package field

import "strings"

type segment struct {
	space string // significant white space before text
	text  string
	cfws  bool // preceded by insignificant white space
}

// Writer records a rendered header value as a sequence of unbreakable
// segments separated by the points where the line may be folded.
// FoldEncoding.Lines turns it into header lines.
type Writer struct {
	segs []segment
}

// Write appends text that must stay on the same line as whatever precedes it.
func (w *Writer) Write(s string) {
	if s == "" {
		return
	}
	if len(w.segs) == 0 {
		w.segs = append(w.segs, segment{text: s})
		return
	}
	w.segs[len(w.segs)-1].text += s
}

// Space appends s after a single insignificant space (CFWS). The line may be
// folded there.
func (w *Writer) Space(s string) {
	if len(w.segs) == 0 {
		w.Write(s)
		return
	}
	w.segs = append(w.segs, segment{text: s, cfws: true})
}

// Fold appends s after the significant white space ws, which is kept as it
// is. The line may be folded there when ws is not empty.
func (w *Writer) Fold(ws, s string) {
	switch {
	case ws == "":
		w.Write(s)
	case s == "" || len(w.segs) == 0:
		w.Write(ws + s)
	default:
		w.segs = append(w.segs, segment{space: ws, text: s})
	}
}

// Empty reports whether nothing has been written.
func (w *Writer) Empty() bool {
	return len(w.segs) == 0
}

// String returns the value as it would read when unfolded.
func (w *Writer) String() string {
	var b strings.Builder
	for i, sg := range w.segs {
		if i > 0 && sg.cfws {
			b.WriteByte(' ')
		}
		b.WriteString(sg.space)
		b.WriteString(sg.text)
	}
	return b.String()
}
