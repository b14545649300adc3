package value_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/zostay/go-mailfield/header/param"
	"github.com/zostay/go-mailfield/header/value"
)

var (
	genPhrase = rapid.StringMatching(`([A-Za-z0-9,.é"\\]{1,8}( [A-Za-z0-9,.é"\\]{1,8}){0,3})?`)
	genDomain = rapid.StringMatching(`[a-z]{1,10}(\.[a-z0-9]{1,6}){0,2}\.(com|org|example)`)

	genAddrSpec = rapid.Custom(func(t *rapid.T) value.AddrSpec {
		local := rapid.OneOf(
			rapid.StringMatching(`[a-z][a-z0-9]{0,10}(\.[a-z0-9]{1,5})?`),
			rapid.StringMatching(`[a-z]{1,5} [a-z]{1,5}`),
		).Draw(t, "local")
		domain := rapid.OneOf(
			genDomain,
			rapid.SampledFrom([]string{"[192.0.2.1]", `[a\]b]`, "[IPv6:2001:db8::1]"}),
		).Draw(t, "domain")
		return value.AddrSpec{LocalPart: local, Domain: domain}
	})

	genMailbox = rapid.Custom(func(t *rapid.T) value.Mailbox {
		return value.Mailbox{
			DisplayName: genPhrase.Draw(t, "name"),
			AddrSpec:    genAddrSpec.Draw(t, "addr"),
		}
	})

	genDate = rapid.Custom(func(t *rapid.T) value.DateTime {
		noZone := rapid.Bool().Draw(t, "no zone")
		loc := time.UTC
		if !noZone {
			loc = time.FixedZone("", rapid.IntRange(-12*60, 14*60).Draw(t, "offset")*60)
		}
		return value.DateTime{
			Time: time.Date(
				rapid.IntRange(1970, 2100).Draw(t, "year"),
				time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
				rapid.IntRange(1, 28).Draw(t, "day"),
				rapid.IntRange(0, 23).Draw(t, "hour"),
				rapid.IntRange(0, 59).Draw(t, "minute"),
				rapid.IntRange(0, 59).Draw(t, "second"),
				0, loc,
			),
			NoZone: noZone,
		}
	})

	genParams = rapid.Custom(func(t *rapid.T) param.List {
		n := rapid.IntRange(0, 4).Draw(t, "count")
		var ps param.List
		seen := map[string]bool{}
		for i := 0; i < n; i++ {
			name := rapid.StringMatching(`[a-z][a-z0-9-]{0,10}`).Draw(t, "param")
			if seen[name] {
				continue
			}
			seen[name] = true
			ps = append(ps, param.Param{
				Name:     name,
				Value:    rapid.StringMatching(`[ -~éü€]{0,150}`).Draw(t, "value"),
				Language: rapid.SampledFrom([]string{"", "en", "de-CH"}).Draw(t, "lang"),
			})
		}
		return ps
	})
)

// renderParse renders v as the named field, checks the line limits, and
// parses the joined body back with parse.
func renderParse[V value.Value](t *rapid.T, name string, v V, parse func(string) (V, error)) V {
	lines, err := value.Lines(name, v, nil)
	if err != nil {
		t.Fatalf("render %+v: %v", v, err)
	}
	for _, l := range lines {
		if len(l) > 998 || strings.ContainsAny(l, "\r\n") {
			t.Fatalf("bad line %q", l)
		}
	}

	got, err := parse(joinBody(name, lines))
	if err != nil {
		t.Fatalf("parse %q: %v", lines, err)
	}

	again, err := value.Lines(name, got, nil)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if strings.Join(again, "\n") != strings.Join(lines, "\n") {
		t.Fatalf("not idempotent: %q != %q", again, lines)
	}
	return got
}

func TestAddressList_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "count")
		al := make(value.AddressList, n)
		for i := range al {
			if !rapid.Bool().Draw(t, "group") {
				al[i] = genMailbox.Draw(t, "mailbox")
				continue
			}
			g := value.Group{DisplayName: genPhrase.Draw(t, "group name")}
			if k := rapid.IntRange(0, 3).Draw(t, "members"); k > 0 {
				g.Members = make([]value.Mailbox, k)
				for j := range g.Members {
					g.Members[j] = genMailbox.Draw(t, "member")
				}
			}
			al[i] = g
		}

		got := renderParse(t, "To", al, value.ParseAddressList)
		if !assert.ObjectsAreEqual(al, got) {
			t.Fatalf("got %#v, want %#v", got, al)
		}
	})
}

func TestReceivedToken_RoundTrip(t *testing.T) {
	t.Parallel()

	values := map[string]*rapid.Generator[string]{
		value.ReceivedFrom: rapid.OneOf(genDomain, rapid.SampledFrom([]string{"[192.0.2.1]", `[a\]b]`})),
		value.ReceivedBy:   genDomain,
		value.ReceivedVia:  rapid.SampledFrom([]string{"tcp", "uucp"}),
		value.ReceivedWith: rapid.SampledFrom([]string{"SMTP", "ESMTP", "ESMTPS", "LMTP"}),
		value.ReceivedID:   rapid.OneOf(rapid.StringMatching(`[A-Za-z0-9]{1,16}`), rapid.SampledFrom([]string{`"x y"`})),
		value.ReceivedFor: rapid.Custom(func(t *rapid.T) string {
			as := value.AddrSpec{
				LocalPart: rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(t, "local"),
				Domain:    genDomain.Draw(t, "domain"),
			}
			if rapid.Bool().Draw(t, "angle") {
				return "<" + as.String() + ">"
			}
			return as.String()
		}),
	}

	rapid.Check(t, func(t *rapid.T) {
		var r value.ReceivedToken
		for _, name := range []string{
			value.ReceivedFrom, value.ReceivedBy, value.ReceivedVia,
			value.ReceivedWith, value.ReceivedID, value.ReceivedFor,
		} {
			if !rapid.Bool().Draw(t, "has "+name) {
				continue
			}
			r.Clauses = append(r.Clauses, value.ReceivedClause{
				Name:    name,
				Value:   values[name].Draw(t, name),
				Comment: rapid.StringMatching(`([A-Za-z0-9.=\[\]]{1,10}( [A-Za-z0-9.=\[\]]{1,10}){0,2})?`).Draw(t, "comment"),
			})
		}
		r.Date = genDate.Draw(t, "date")

		got := renderParse(t, "Received", r, value.ParseReceivedToken)
		if !assert.ObjectsAreEqual(r.Clauses, got.Clauses) {
			t.Fatalf("got %#v, want %#v", got.Clauses, r.Clauses)
		}
		if !r.Date.Equal(got.Date.Time) || r.Date.NoZone != got.Date.NoZone {
			t.Fatalf("got date %v (no zone %v), want %v (no zone %v)",
				got.Date.Time, got.Date.NoZone, r.Date.Time, r.Date.NoZone)
		}
	})
}

func TestPath_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var pa value.Path
		if !rapid.Bool().Draw(t, "null") {
			as := genAddrSpec.Draw(t, "addr")
			pa.AddrSpec = &as
		}

		got := renderParse(t, "Return-Path", pa, value.ParsePath)
		if got.IsNull() != pa.IsNull() {
			t.Fatalf("got null %v, want %v", got.IsNull(), pa.IsNull())
		}
		if !pa.IsNull() && *got.AddrSpec != *pa.AddrSpec {
			t.Fatalf("got %+v, want %+v", *got.AddrSpec, *pa.AddrSpec)
		}
	})
}

func TestMessageIDList_RoundTrip(t *testing.T) {
	t.Parallel()

	genID := rapid.Custom(func(t *rapid.T) value.MessageID {
		return value.MessageID{
			Left: rapid.OneOf(
				rapid.StringMatching(`[A-Za-z0-9$%+-]{1,12}(\.[A-Za-z0-9]{1,8}){0,2}`),
				rapid.SampledFrom([]string{`"a b"`, `"x@y"`}),
			).Draw(t, "left"),
			Right: rapid.OneOf(
				genDomain,
				rapid.SampledFrom([]string{"[192.0.2.1]", `[x\]y]`}),
			).Draw(t, "right"),
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		l := value.MessageIDList(rapid.SliceOfN(genID, 1, 8).Draw(t, "ids"))

		got := renderParse(t, "References", l, value.ParseMessageIDList)
		if !assert.ObjectsAreEqual(l, got) {
			t.Fatalf("got %v, want %v", got, l)
		}
	})
}

func TestPhraseList_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		l := value.PhraseList(rapid.SliceOfN(genPhrase, 1, 6).Draw(t, "phrases"))

		got := renderParse(t, "Keywords", l, value.ParsePhraseList)
		if !assert.ObjectsAreEqual(l, got) {
			t.Fatalf("got %q, want %q", got, l)
		}
	})
}

func TestMime_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		m := value.Mime{
			Type:    rapid.SampledFrom([]string{"text", "image", "application", "multipart"}).Draw(t, "type"),
			Subtype: rapid.StringMatching(`[a-z][a-z0-9.+-]{0,12}`).Draw(t, "subtype"),
			Params:  genParams.Draw(t, "params"),
		}

		got := renderParse(t, "Content-Type", m, value.ParseMime)
		if got.MediaType() != m.MediaType() || !m.Param().Equal(got.Param()) {
			t.Fatalf("got %q, want %q", got.String(), m.String())
		}
	})
}

func TestDisposition_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		d := value.Disposition{
			Type:   rapid.OneOf(rapid.SampledFrom([]string{"inline", "attachment"}), rapid.StringMatching(`x-[a-z]{1,8}`)).Draw(t, "type"),
			Params: genParams.Draw(t, "params"),
		}

		got := renderParse(t, "Content-Disposition", d, value.ParseDisposition)
		if got.Type != d.Type || !d.Param().Equal(got.Param()) {
			t.Fatalf("got %q, want %q", got.String(), d.String())
		}
	})
}
