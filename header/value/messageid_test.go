package value_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/header/value"
)

func TestParseMessageID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, left, right, out string
	}{
		{"<abc.def@example.com>", "abc.def", "example.com", "<abc.def@example.com>"},
		{" <abc.def@example.com> (comment)", "abc.def", "example.com", "<abc.def@example.com>"},
		{"< abc . def @ example . com >", "abc.def", "example.com", "<abc.def@example.com>"},
		{`<"a b"@example.com>`, `"a b"`, "example.com", `<"a b"@example.com>`},
		{"<a@[127.0.0.1]>", "a", "[127.0.0.1]", "<a@[127.0.0.1]>"},
		{`<a@[x\]y]>`, "a", `[x\]y]`, `<a@[x\]y]>`},
	}

	for _, test := range tests {
		id, err := value.ParseMessageID(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, value.MessageID{Left: test.left, Right: test.right}, id)
		assert.Equal(t, test.out, id.String())
	}
}

func TestParseMessageID_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"abc@example.com",
		"<abc@example.com",
		"<abc>",
		"<abc@example.com> <def@example.com>",
	} {
		_, err := value.ParseMessageID(in)
		assert.Error(t, err, in)
	}

	_, err := value.Lines("Message-ID", value.MessageID{Left: "a>b", Right: "example.com"}, nil)
	assert.Error(t, err)

	_, err = value.Lines("Message-ID", value.MessageID{Left: "ab", Right: "exa mple"}, nil)
	assert.Error(t, err)
}

func TestParseMessageIDList(t *testing.T) {
	t.Parallel()

	a := value.MessageID{Left: "a", Right: "example.com"}
	b := value.MessageID{Left: "b", Right: "example.com"}

	tests := []struct {
		name, in string
		want     value.MessageIDList
	}{
		{"empty", "", nil},
		{"one", "<a@example.com>", value.MessageIDList{a}},
		{"spaces", "<a@example.com> <b@example.com>", value.MessageIDList{a, b}},
		{"folded", "<a@example.com>\t<b@example.com>", value.MessageIDList{a, b}},
		{"commas", "<a@example.com>, <b@example.com>", value.MessageIDList{a, b}},
		{"duplicates", "<a@example.com> <a@example.com>", value.MessageIDList{a, a}},
		{"obsolete phrase", `"Message from Bee" <b@example.com> and <a@example.com>`, value.MessageIDList{b, a}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := value.ParseMessageIDList(test.in)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	_, err := value.ParseMessageIDList("<a@example.com")
	assert.Error(t, err)
}

func TestMessageIDList_Render(t *testing.T) {
	t.Parallel()

	var l value.MessageIDList
	for i := 0; i < 8; i++ {
		l = append(l, value.MessageID{Left: "0123456789.abcdef", Right: "mail.example.com"})
	}

	lines, err := value.Lines("References", l, nil)
	require.NoError(t, err)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 78)
	}

	got, err := value.ParseMessageIDList(joinBody("References", lines))
	require.NoError(t, err)
	assert.Equal(t, l, got)

	lines, err = value.Lines("In-Reply-To", value.MessageIDList{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"In-Reply-To:"}, lines)
}

func TestNewMessageID(t *testing.T) {
	t.Parallel()

	id := value.NewMessageID("example.com")
	assert.Equal(t, "example.com", id.Right)
	_, err := uuid.Parse(id.Left)
	assert.NoError(t, err)

	got, err := value.ParseMessageID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	assert.NotEqual(t, id, value.NewMessageID("example.com"))
}
