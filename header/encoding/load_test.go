package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/header/encoding"
	"github.com/zostay/go-mailfield/header/word"
)

func TestCharsetDecoder(t *testing.T) {
	t.Parallel()

	s, err := encoding.CharsetDecoder("windows-1252", []byte{0x93, 'h', 'i', 0x94})
	require.NoError(t, err)
	assert.Equal(t, "“hi”", s)

	_, err = encoding.CharsetDecoder("x-no-such-charset", []byte("hi"))
	assert.Error(t, err)
}

func TestCharsetEncoder(t *testing.T) {
	t.Parallel()

	b, err := encoding.CharsetEncoder("iso-8859-15", "€")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa4}, b)
}

func TestInstalled(t *testing.T) {
	t.Parallel()

	s, err := word.DecodeText("=?koi8-r?B?8NLJ18XU?=")
	require.NoError(t, err)
	assert.Equal(t, "Привет", s)
}
