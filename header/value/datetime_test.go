package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zostay/go-mailfield/header/value"
)

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   time.Time
		offset int
	}{
		{"rfc 5322", "Mon, 02 Jan 2006 15:04:05 -0700", time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), -7 * 3600},
		{"no day name", "2 Jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"no seconds", "Mon, 02 Jan 2006 15:04 +0130", time.Date(2006, 1, 2, 13, 34, 0, 0, time.UTC), 90 * 60},
		{"trailing comment", "Mon, 02 Jan 2006 15:04:05 -0700 (MST)", time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), -7 * 3600},
		{"two digit year 20xx", "02 Jan 06 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"two digit year 19xx", "02 Jan 99 15:04:05 +0000", time.Date(1999, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"three digit year", "02 Jan 106 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"obsolete zone", "Mon, 02 Jan 2006 15:04:05 EST", time.Date(2006, 1, 2, 20, 4, 5, 0, time.UTC), -5 * 3600},
		{"gmt", "Mon, 02 Jan 2006 15:04:05 GMT", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"military zone", "Mon, 02 Jan 2006 15:04:05 Z", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"unknown offset", "Mon, 02 Jan 2006 15:04:05 -0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"leap second", "31 Dec 2016 23:59:60 +0000", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"lower case", "mon, 02 jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
		{"obsolete spacing", "Mon , 02 Jan 2006 15 : 04 : 05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), 0},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := value.ParseDateTime(test.in)
			require.NoError(t, err)
			assert.True(t, test.want.Equal(got.Time), "want %v, got %v", test.want, got.Time)
			_, off := got.Zone()
			assert.Equal(t, test.offset, off)
		})
	}
}

func TestDateTime_NoZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		noZone bool
		want   string
	}{
		{"Mon, 02 Jan 2006 15:04:05 -0000", true, "Mon, 02 Jan 2006 15:04:05 -0000"},
		{"Mon, 02 Jan 2006 15:04:05 Z", true, "Mon, 02 Jan 2006 15:04:05 -0000"},
		{"Mon, 02 Jan 2006 15:04:05 +0000", false, "Mon, 02 Jan 2006 15:04:05 +0000"},
		{"Mon, 02 Jan 2006 15:04:05 GMT", false, "Mon, 02 Jan 2006 15:04:05 +0000"},
	}

	for _, test := range tests {
		got, err := value.ParseDateTime(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.noZone, got.NoZone, test.in)
		assert.Equal(t, test.want, got.String(), test.in)

		again, err := value.ParseDateTime(got.String())
		require.NoError(t, err, test.in)
		assert.Equal(t, got.NoZone, again.NoZone, test.in)
		assert.True(t, got.Equal(again.Time), test.in)
	}

	d := value.DateTime{Time: time.Date(2006, 1, 2, 8, 4, 5, 0, time.FixedZone("", -7*3600)), NoZone: true}
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0000", d.String())
}

func TestParseDateTime_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"Mon, 02 Jan 2006 15:04:05",
		"Mon, 32 Jan 2006 15:04:05 +0000",
		"Mon, 30 Feb 2006 15:04:05 +0000",
		"Mon, 02 Foo 2006 15:04:05 +0000",
		"Mon, 02 Jan 2006 24:00:00 +0000",
		"Mon, 02 Jan 2006 15:60:00 +0000",
		"Mon, 02 Jan 2006 15:04:61 +0000",
		"Mon, 02 Jan 2006 15:04:05 +0099",
		"Mon, 02 Jan 2006 15:04:05 J",
		"Mon, 02 Jan 2006 15:04:05 XYZ",
		"Mon, 02 Jan 2006 15:04:05 +0000 junk",
		"Fun, 02 Jan 2006 15:04:05 +0000",
		"Mon 02 Jan 2006 15:04:05 +0000",
		"Mon, 02 Jan 2006 15:04:05+0000",
		"2006-01-02T15:04:05Z",
	} {
		_, err := value.ParseDateTime(in)
		assert.Error(t, err, in)
	}
}

func TestDateTime_Render(t *testing.T) {
	t.Parallel()

	d := value.DateTime{Time: time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))}
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 -0700", d.String())

	lines, err := value.Lines("Date", d, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date: Mon, 02 Jan 2006 15:04:05 -0700"}, lines)

	_, err = value.Lines("Date", value.DateTime{Time: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
	assert.Error(t, err)

	_, err = value.Lines("Date", value.DateTime{}, nil)
	assert.Error(t, err)
}

func TestParseDateTimeLenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"Mon, 02 Jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2006-01-02T15:04:05Z", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"Mon Jan 02 15:04:05 2006 UTC", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
	}

	for _, test := range tests {
		got, err := value.ParseDateTimeLenient(test.in)
		require.NoError(t, err, test.in)
		assert.True(t, test.want.Equal(got.Time), "%s: got %v", test.in, got.Time)
	}

	_, err := value.ParseDateTimeLenient("not a date at all")
	assert.Error(t, err)
}

func TestDateTime_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		loc := time.FixedZone("", rapid.IntRange(-12*60, 14*60).Draw(t, "offset")*60)
		want := time.Date(
			rapid.IntRange(1000, 9999).Draw(t, "year"),
			time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
			rapid.IntRange(1, 28).Draw(t, "day"),
			rapid.IntRange(0, 23).Draw(t, "hour"),
			rapid.IntRange(0, 59).Draw(t, "minute"),
			rapid.IntRange(0, 59).Draw(t, "second"),
			0, loc,
		)

		s := value.DateTime{Time: want}.String()
		got, err := value.ParseDateTime(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", s, got.Time, want)
		}
		if got.String() != s {
			t.Fatalf("not idempotent: %q != %q", got.String(), s)
		}
	})
}
