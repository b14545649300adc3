package value

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/lex"
)

// DateTimeLayout is the layout used to render dates.
const DateTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// UnixDateWithEarlyYear is a date layout seen in the wild that neither
// net/mail nor dateparse handle.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// DateTime is a date and time with its zone offset.
//
// NoZone marks a time read from a "-0000" zone, which says the offset of the
// sender's local time is unknown. Such a time is in UTC and renders as
// "-0000" again.
type DateTime struct {
	time.Time
	NoZone bool
}

var _ Value = DateTime{}

func (DateTime) sealed() {}

// Kind returns KindDateTime.
func (DateTime) Kind() Kind { return KindDateTime }

// String returns the date as it would be written in a header.
func (d DateTime) String() string { return render(d) }

// Render writes the date with a numeric zone.
func (d DateTime) Render(w *field.Writer, o *RenderOptions) error {
	if y := d.Year(); y < 1000 || y > 9999 {
		return fmt.Errorf("year %d cannot be written in a header", y)
	}
	if d.NoZone {
		w.Space(d.UTC().Format(DateTimeLayout[:len(DateTimeLayout)-len("-0700")]) + "-0000")
		return nil
	}
	w.Space(d.Format(DateTimeLayout))
	return nil
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var days = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// obsZones are the zone names of RFC 5322 section 4.3, in hours east of UTC.
var obsZones = map[string]int{
	"ut": 0, "gmt": 0, "utc": 0,
	"est": -5, "edt": -4,
	"cst": -6, "cdt": -5,
	"mst": -7, "mdt": -6,
	"pst": -8, "pdt": -7,
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// xnumber parses between min and max digits.
func (p *parser) xnumber(what string, min, max int) (int, int) {
	off := p.Offset()
	ds := p.TakeWhile(lex.IsDigit)
	if len(ds) < min || len(ds) > max {
		p.XErrorAt(off, "expected %s", what)
	}
	n, _ := strconv.Atoi(ds)
	return n, len(ds)
}

func (p *parser) xdateTime() DateTime {
	p.XSkipCFWS()

	if isAlpha(p.Peek()) {
		off := p.Offset()
		name := p.TakeWhile(isAlpha)
		if !days[strings.ToLower(name)] {
			p.XErrorAt(off, "unknown day of week %q", name)
		}
		p.XSkipCFWS()
		p.XTake(",")
		p.XSkipCFWS()
	}

	dayOff := p.Offset()
	day, _ := p.xnumber("day", 1, 2)
	p.XSkipCFWS()

	monOff := p.Offset()
	month, ok := months[strings.ToLower(p.TakeWhile(isAlpha))]
	if !ok {
		p.XErrorAt(monOff, "expected month name")
	}
	p.XSkipCFWS()

	year, digits := p.xnumber("year", 2, 9)
	switch digits {
	case 2:
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	case 3:
		year += 1900
	}
	p.XSkipCFWS()

	hour, _ := p.xnumber("hour", 1, 2)
	p.XSkipCFWS()
	p.XTake(":")
	p.XSkipCFWS()
	minute, _ := p.xnumber("minute", 2, 2)
	second := 0
	save := p.Offset()
	p.XSkipCFWS()
	if p.Take(":") {
		p.XSkipCFWS()
		second, _ = p.xnumber("second", 2, 2)
	} else {
		p.Reset(save)
	}

	if hour > 23 || minute > 59 || second > 60 {
		p.XErrorAt(dayOff, "time of day out of range")
	}
	if t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC); t.Day() != day {
		p.XErrorAt(dayOff, "day %d out of range for %s", day, month)
	}

	if !p.XSkipCFWS() {
		p.XErrorf("expected zone")
	}
	loc, noZone := p.xzone()
	p.XEnd()

	return DateTime{
		Time:   time.Date(year, month, day, hour, minute, second, 0, loc),
		NoZone: noZone,
	}
}

// xzone returns the zone and whether it is the unknown zone "-0000".
func (p *parser) xzone() (*time.Location, bool) {
	off := p.Offset()
	switch c := p.Peek(); {
	case c == '+' || c == '-':
		p.Take(string(c))
		n, _ := p.xnumber("zone offset", 4, 4)
		hh, mm := n/100, n%100
		if mm > 59 {
			p.XErrorAt(off, "zone offset out of range")
		}
		secs := (hh*60 + mm) * 60
		if c == '-' {
			secs = -secs
		}
		if secs == 0 {
			return time.UTC, c == '-'
		}
		return time.FixedZone("", secs), false
	case isAlpha(c):
		name := strings.ToLower(p.TakeWhile(isAlpha))
		if h, ok := obsZones[name]; ok {
			if h == 0 {
				return time.UTC, false
			}
			return time.FixedZone("", h*3600), false
		}
		// military zones carry no reliable meaning and read as -0000
		if len(name) == 1 && name != "j" {
			return time.UTC, true
		}
		p.XErrorAt(off, "unknown zone %q", name)
	}
	p.XErrorf("expected zone")
	return nil, false
}

// ParseDateTime parses an RFC 5322 date-time, obsolete forms included.
func ParseDateTime(body string) (d DateTime, err error) {
	defer catch(&err)
	p := newParser(body)
	return p.xdateTime(), nil
}

// ParseDateTimeLenient parses a date in any format it can make sense of. It
// tries ParseDateTime, then net/mail, then dateparse, then
// UnixDateWithEarlyYear.
func ParseDateTimeLenient(body string) (DateTime, error) {
	if d, err := ParseDateTime(body); err == nil {
		return d, nil
	}

	t, err := mail.ParseDate(body)
	if err == nil {
		return DateTime{Time: t}, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return DateTime{Time: t}, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return DateTime{Time: t}, nil
	}

	return DateTime{}, fmt.Errorf("time string %q cannot be parsed", body)
}
