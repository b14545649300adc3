package field

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultFoldIndent          = " " // indent placed before folded lines
	DefaultPreferredFoldLength = 78  // we prefer header lines no longer than this, line break excluded
	DefaultForcedFoldLength    = 998 // header lines longer than this are an error, line break excluded

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding is a FoldEncoding using the default settings.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
		DoNotFold,
	}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when a non-space/non-tab
	// character is put in the foldIndent setting.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the foldIndent
	// is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the foldIndent
	// setting is equal to or longer than the preferredFoldLength.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooLong is returned by NewFoldEncoding when the
	// preferredFoldLength is longer than the forcedFoldLength.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the
	// preferredFoldLength or forcedFoldLength is too short to hold an
	// encoded-word.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned by NewFoldEncoding when the preferredFoldLength
	// or forcedFoldLength are set to DoNotFold (-1), but both are not set that
	// way. You must set both to DoNotFold to prevent folding or neither to
	// DoNotFold.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// minFoldLength leaves room for an indent and a full encoded-word.
const minFoldLength = 78

// ValueTooLongError is returned when a rendered header line cannot be kept
// within the forced fold length because it holds a single unbreakable token
// that is too long.
type ValueTooLongError struct {
	Length int // length of the offending line
	Limit  int // the forced fold length
}

// Error returns the error message.
func (err *ValueTooLongError) Error() string {
	return fmt.Sprintf("header line of %d octets exceeds the limit of %d", err.Length, err.Limit)
}

// Break is the line break placed between folded lines.
type Break []byte

// FoldEncoding provides the tooling for folding email message headers.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding creates a new FoldEncoding with the given settings. The
// foldIndent must be a string, filled with one or more space or tab characters,
// and it must be shorter than the preferredFoldLength. The preferredFoldLength
// must be equal to or less than forcedFoldLength and at least 78, so that an
// encoded-word always fits on a line. If any of the given inputs do not meet
// these requirements, an error will be returned.
func NewFoldEncoding(
	foldIndent string,
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if strings.Trim(foldIndent, " \t") != "" {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold && forcedFoldLength != DoNotFold) ||
		(forcedFoldLength == DoNotFold && preferredFoldLength != DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		if preferredFoldLength < minFoldLength {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

// PreferredFoldLength returns the line length the encoding tries to stay
// within or DoNotFold.
func (vf *FoldEncoding) PreferredFoldLength() int {
	return vf.preferredFoldLength
}

// ForcedFoldLength returns the line length that may never be exceeded or
// DoNotFold.
func (vf *FoldEncoding) ForcedFoldLength() int {
	return vf.forcedFoldLength
}

// Lines folds the value recorded in w into the lines of a header field named
// name. A line is broken only at the fold points recorded in w and only when
// the next segment would push it beyond the preferred fold length. Folding at
// CFWS inserts the fold indent; folding at significant white space keeps that
// white space at the start of the continuation line.
//
// The lines are returned without line breaks. If any line ends up longer than
// the forced fold length, a *ValueTooLongError is returned.
func (vf *FoldEncoding) Lines(name string, w *Writer) ([]string, error) {
	var (
		lines []string
		cur   strings.Builder
	)

	cur.WriteString(name)
	cur.WriteByte(':')
	for i, sg := range w.segs {
		space := sg.space
		if sg.cfws {
			space = " "
		}

		if i == 0 {
			if space == "" && sg.text != "" {
				space = " "
			}
			cur.WriteString(space)
			cur.WriteString(sg.text)
			continue
		}

		if vf.preferredFoldLength != DoNotFold &&
			cur.Len()+len(space)+len(sg.text) > vf.preferredFoldLength {
			lines = append(lines, cur.String())
			cur.Reset()
			if sg.cfws {
				space = vf.foldIndent
			}
		}

		cur.WriteString(space)
		cur.WriteString(sg.text)
	}
	lines = append(lines, cur.String())

	if vf.forcedFoldLength != DoNotFold {
		for _, l := range lines {
			if len(l) > vf.forcedFoldLength {
				return nil, &ValueTooLongError{Length: len(l), Limit: vf.forcedFoldLength}
			}
		}
	}

	return lines, nil
}
