package field_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/header/field"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	const block = "Subject: hello\r\n" +
		"Received: from a\r\n" +
		"\tby b; Mon, 1 Jan 2024 00:00:00 +0000\r\n" +
		"X-Custom:  keep   this \r\n"

	lines, err := field.ParseLines([]byte(block), []byte("\r\n"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Received: from a\r\n\tby b; Mon, 1 Jan 2024 00:00:00 +0000\r\n", string(lines[1]))

	f := field.Parse(lines[1], []byte("\r\n"))
	assert.Equal(t, "Received", f.Name())
	assert.Equal(t, "from a\tby b; Mon, 1 Jan 2024 00:00:00 +0000", f.Body())
	assert.Equal(t, "Received: from a\r\n\tby b; Mon, 1 Jan 2024 00:00:00 +0000", f.String())

	f = field.Parse(lines[2], []byte("\r\n"))
	assert.Equal(t, "X-Custom", f.Name())
	assert.Equal(t, "keep   this ", f.Body())
}

func TestParseLinesBadStart(t *testing.T) {
	t.Parallel()

	lines, err := field.ParseLines([]byte(" junk\nmore junk\nSubject: x\n"), []byte("\n"))
	var bad *field.BadStartError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, " junk\nmore junk\n", string(bad.BadStart))
	require.Len(t, lines, 1)
	assert.Equal(t, "Subject: x\n", string(lines[0]))
}

func TestParseObsoleteName(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject  : hi\n"), []byte("\n"))
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "hi", f.Body())
}

func TestFieldSetters(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: hi\r\n"), []byte("\r\n"))
	require.NotNil(t, f.Raw)

	f.SetBody("bye")
	assert.Nil(t, f.Raw)
	assert.Equal(t, "Subject: bye", f.String())

	f = field.New("Bcc", "")
	assert.Equal(t, "Bcc:", f.String())
}

func TestFromLines(t *testing.T) {
	t.Parallel()

	f := field.FromLines([]string{"To: a@example.com,", " b@example.com"}, field.Break("\r\n"))
	assert.Equal(t, "To", f.Name())
	assert.Equal(t, "a@example.com, b@example.com", f.Body())
	assert.Equal(t, "To: a@example.com,\r\n b@example.com", f.String())
}

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	_, err := field.NewFoldEncoding("x", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentSpace)

	_, err = field.NewFoldEncoding("", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooShort)

	_, err = field.NewFoldEncoding(" ", field.DoNotFold, 998)
	assert.ErrorIs(t, err, field.ErrDoNotFold)

	_, err = field.NewFoldEncoding(" ", 100, 80)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooLong)

	_, err = field.NewFoldEncoding(" ", 40, 998)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooShort)

	vf, err := field.NewFoldEncoding("\t", 100, 998)
	require.NoError(t, err)
	assert.Equal(t, 100, vf.PreferredFoldLength())
	assert.Equal(t, 998, vf.ForcedFoldLength())

	vf, err = field.NewFoldEncoding(" ", field.DoNotFold, field.DoNotFold)
	require.NoError(t, err)
	assert.Equal(t, field.DoNotFold, vf.PreferredFoldLength())
}

func TestLines(t *testing.T) {
	t.Parallel()

	w := &field.Writer{}
	for i := 0; i < 20; i++ {
		if i > 0 {
			w.Write(",")
		}
		w.Space("user" + strings.Repeat("x", i%5) + "@example.com")
	}

	lines, err := field.DefaultFoldEncoding.Lines("To", w)
	require.NoError(t, err)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), field.DefaultPreferredFoldLength)
	}
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, " "))
	}
	assert.Equal(t, "To: "+w.String(), strings.Join(lines, ""))

	one, err := field.DoNotFoldEncoding.Lines("To", w)
	require.NoError(t, err)
	assert.Equal(t, []string{"To: " + w.String()}, one)
}

func TestLinesSignificantSpace(t *testing.T) {
	t.Parallel()

	w := &field.Writer{}
	w.Write(strings.Repeat("a", 60))
	w.Fold("\t ", strings.Repeat("b", 30))

	lines, err := field.DefaultFoldEncoding.Lines("Subject", w)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Subject: " + strings.Repeat("a", 60),
		"\t " + strings.Repeat("b", 30),
	}, lines)

	vf, err := field.NewFoldEncoding("\t", 78, 998)
	require.NoError(t, err)
	w = &field.Writer{}
	w.Write(strings.Repeat("a", 60))
	w.Space(strings.Repeat("b", 30))
	lines, err = vf.Lines("Subject", w)
	require.NoError(t, err)
	assert.Equal(t, "\t"+strings.Repeat("b", 30), lines[1])
}

func TestLinesTooLong(t *testing.T) {
	t.Parallel()

	w := &field.Writer{}
	w.Write(strings.Repeat("x", 1000))

	_, err := field.DefaultFoldEncoding.Lines("X-Long", w)
	var tooLong *field.ValueTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 998, tooLong.Limit)
	assert.Equal(t, len("X-Long: ")+1000, tooLong.Length)
}

func TestLinesEmpty(t *testing.T) {
	t.Parallel()

	lines, err := field.DefaultFoldEncoding.Lines("Bcc", &field.Writer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bcc:"}, lines)
}
