package value_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/header/value"
)

func TestParseUnstructured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Hello world", "Hello world"},
		{"=?utf-8?q?Hello?= =?utf-8?q?World?=", "HelloWorld"},
		{"Re: =?iso-8859-1?q?caf=E9?= time", "Re: café time"},
		{"(not a comment)", "(not a comment)"},
		{"", ""},
	}

	for _, test := range tests {
		got, err := value.ParseUnstructured(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, value.Unstructured(test.want), got)
	}
}

func TestUnstructured_Render(t *testing.T) {
	t.Parallel()

	lines, err := value.Lines("Subject", value.Unstructured("Héllo world"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Subject: =?utf-8?B?SMOpbGxv?= world"}, lines)

	lines, err = value.Lines("Subject", value.Unstructured("Héllo world"), &value.RenderOptions{Internationalized: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Subject: Héllo world"}, lines)

	lines, err = value.Lines("Subject", value.Unstructured("line\r\nbreak"), nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "\n")

	got, err := value.ParseUnstructured(joinBody("Subject", lines))
	require.NoError(t, err)
	assert.Equal(t, value.Unstructured("line\r\nbreak"), got)
}

func TestUnstructured_Fold(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("word ", 30) + "end"
	lines, err := value.Lines("Subject", value.Unstructured(s), nil)
	require.NoError(t, err)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 78, l)
	}
	assert.Equal(t, "Subject: "+s, strings.Join(lines, ""))

	_, err = value.Lines("Subject", value.Unstructured(strings.Repeat("x", 1000)), nil)
	assert.Error(t, err)
}

func TestParsePhraseList(t *testing.T) {
	t.Parallel()

	l, err := value.ParsePhraseList(`alpha, "beta gamma", ,delta (d)`)
	require.NoError(t, err)
	assert.Equal(t, value.PhraseList{"alpha", "beta gamma", "delta"}, l)
	assert.Equal(t, "alpha, beta gamma, delta", l.String())

	for _, in := range []string{"", " , ", "alpha beta; gamma"} {
		_, err := value.ParsePhraseList(in)
		assert.Error(t, err, in)
	}

	_, err = value.Lines("Keywords", value.PhraseList{}, nil)
	assert.Error(t, err)

	l, err = value.ParsePhraseList(`""`)
	require.NoError(t, err)
	assert.Equal(t, value.PhraseList{""}, l)
	lines, err := value.Lines("Keywords", l, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`Keywords: ""`}, lines)
}

func TestUnknown(t *testing.T) {
	t.Parallel()

	const body = "  weird ;; (stuff\t=?x?"
	v, err := value.Parse(value.KindUnknown, body)
	require.NoError(t, err)
	assert.Equal(t, value.Unknown(body), v)
	assert.Equal(t, body, v.String())

	_, err = value.Lines("X-Custom", value.Unknown("a\r\nb"), nil)
	assert.Error(t, err)
}
