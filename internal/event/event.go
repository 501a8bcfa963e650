// Package event defines the calendar event record produced by the holiday
// engine and the calendar generator. An Event is a single struct tagged by
// Kind; kind-specific behavior (rendering, links, categories) is dispatched
// on that tag.
package event

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/location"
)

// Kind discriminates the event variants.
type Kind int

const (
	KindHoliday Kind = iota
	KindRoshHashana
	KindRoshChodesh
	KindMevarchimChodesh
	KindYomKippurKatan
	KindAsaraBTevet
	KindFastDay
	KindCandleLighting
	KindHavdalah
	KindTimed
	KindOmer
	KindMolad
	KindParsha
	KindDafYomi
	KindHebrewDate
)

var kindNames = [...]string{
	"holiday", "roshhashana", "roshchodesh", "mevarchim", "yomkippurkatan",
	"asarabtevet", "fastday", "candles", "havdalah", "timed", "omer", "molad",
	"parashat", "dafyomi", "hebdate",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Event is one dated calendar entry. Events returned by the holiday engine
// are shared between callers and must not be modified; use Clone.
type Event struct {
	Kind  Kind
	Date  hdate.HDate
	Desc  string
	Flags Flags
	Emoji string
	Memo  string

	// CholHaMoedDay numbers the intermediate festival days from 1; -1 marks
	// Hoshana Raba.
	CholHaMoedDay int
	// ChanukahDay numbers the days of Chanukah from 1 (25 Kislev).
	ChanukahDay int
	// Observed is set when a fast was postponed from Shabbat.
	Observed bool

	// Month is the month named by Rosh Chodesh, Shabbat Mevarchim and Yom
	// Kippur Katan events.
	Month string
	// HebrewYear is the year announced by Rosh Hashana.
	HebrewYear int
	Molad      *hdate.Molad
	Parsha     []string
	IL         bool
	Tractate   string
	Page       int
	OmerDay    int

	// Time is the clock time of timed events in the location's zone.
	Time     time.Time
	FmtTime  string
	Location *location.Location
	// HavdalahMins is set when Havdalah is a fixed offset after sunset.
	HavdalahMins int

	// Linked is the holiday a timed event or fast day belongs to.
	Linked *Event
	// StartEvent and EndEvent bound a fast day.
	StartEvent *Event
	EndEvent   *Event
}

// HasTime reports whether the event carries a clock time.
func (e *Event) HasTime() bool { return !e.Time.IsZero() }

// ObservedIn reports whether the event applies in Israel (il) or the
// Diaspora.
func (e *Event) ObservedIn(il bool) bool {
	switch {
	case e.Flags.Any(ILOnly):
		return il
	case e.Flags.Any(ChulOnly):
		return !il
	}
	return true
}

// Clone returns a shallow copy that may be modified freely.
func (e *Event) Clone() *Event {
	c := *e
	c.Parsha = slices.Clone(e.Parsha)
	return &c
}

// NewHoliday returns a plain holiday event.
func NewHoliday(hd hdate.HDate, desc string, flags Flags) *Event {
	return &Event{Kind: KindHoliday, Date: hd, Desc: desc, Flags: flags}
}

// NewRoshHashana returns the first day of Rosh Hashana for year.
func NewRoshHashana(hd hdate.HDate, year int) *Event {
	return &Event{
		Kind:       KindRoshHashana,
		Date:       hd,
		Desc:       fmt.Sprintf("Rosh Hashana %d", year),
		Flags:      Chag | LightCandlesTzeis,
		Emoji:      "🍏🍯",
		HebrewYear: year,
	}
}

// NewRoshChodesh returns a Rosh Chodesh day for monthName.
func NewRoshChodesh(hd hdate.HDate, monthName string) *Event {
	return &Event{
		Kind:  KindRoshChodesh,
		Date:  hd,
		Desc:  "Rosh Chodesh " + monthName,
		Flags: RoshChodesh,
		Emoji: "🌒",
		Month: monthName,
	}
}

// NewYomKippurKatan returns the minor fast preceding Rosh Chodesh of
// nextMonthName.
func NewYomKippurKatan(hd hdate.HDate, nextMonthName string) *Event {
	return &Event{
		Kind:  KindYomKippurKatan,
		Date:  hd,
		Desc:  "Yom Kippur Katan " + nextMonthName,
		Flags: MinorFast | YomKippurKatan,
		Month: nextMonthName,
	}
}

// NewAsaraBTevet returns the fast of 10 Tevet.
func NewAsaraBTevet(hd hdate.HDate) *Event {
	return &Event{Kind: KindAsaraBTevet, Date: hd, Desc: "Asara B'Tevet", Flags: MinorFast}
}

// NewMevarchimChodesh returns the Shabbat that announces monthName. memo
// usually carries the molad.
func NewMevarchimChodesh(hd hdate.HDate, monthName, memo string) *Event {
	return &Event{
		Kind:  KindMevarchimChodesh,
		Date:  hd,
		Desc:  "Shabbat Mevarchim Chodesh " + monthName,
		Flags: ShabbatMevarchim,
		Month: monthName,
		Memo:  memo,
	}
}

// NewFastDay wraps a fast with its start and end times. Either bound may be
// nil.
func NewFastDay(source, start, end *Event) *Event {
	return &Event{
		Kind:          KindFastDay,
		Date:          source.Date,
		Desc:          source.Desc,
		Flags:         source.Flags,
		Emoji:         source.Emoji,
		Memo:          source.Memo,
		Observed:      source.Observed,
		CholHaMoedDay: source.CholHaMoedDay,
		Linked:        source,
		StartEvent:    start,
		EndEvent:      end,
	}
}

// NewCandleLighting returns a candle-lighting time.
func NewCandleLighting(hd hdate.HDate, flags Flags, t time.Time, loc *location.Location, linked *Event) *Event {
	return newTimed(KindCandleLighting, hd, "Candle lighting", flags, t, loc, linked, "🕯️")
}

// NewHavdalah returns a Havdalah time. mins is the fixed offset after sunset
// used, or 0 when Havdalah follows a solar depression angle.
func NewHavdalah(hd hdate.HDate, flags Flags, t time.Time, loc *location.Location, linked *Event, mins int) *Event {
	ev := newTimed(KindHavdalah, hd, "Havdalah", flags, t, loc, linked, "✨")
	ev.HavdalahMins = mins
	return ev
}

// NewTimed returns a generic timed event such as "Fast begins".
func NewTimed(hd hdate.HDate, desc string, flags Flags, t time.Time, loc *location.Location, linked *Event) *Event {
	return newTimed(KindTimed, hd, desc, flags, t, loc, linked, "")
}

func newTimed(kind Kind, hd hdate.HDate, desc string, flags Flags, t time.Time, loc *location.Location, linked *Event, emoji string) *Event {
	return &Event{
		Kind:     kind,
		Date:     hd,
		Desc:     desc,
		Flags:    flags,
		Emoji:    emoji,
		Time:     t,
		Location: loc,
		Linked:   linked,
	}
}

// NewOmer returns the count of day (1..49) of the Omer.
func NewOmer(hd hdate.HDate, day int) *Event {
	return &Event{
		Kind:    KindOmer,
		Date:    hd,
		Desc:    fmt.Sprintf("Omer %d", day),
		Flags:   OmerCount,
		OmerDay: day,
	}
}

// NewMolad returns the molad announcement for m.
func NewMolad(hd hdate.HDate, m hdate.Molad) *Event {
	name := hdate.MonthName(m.Month, m.Year)
	return &Event{
		Kind:  KindMolad,
		Date:  hd,
		Desc:  fmt.Sprintf("Molad %s %d", name, m.Year),
		Flags: Molad,
		Month: name,
		Molad: &m,
	}
}

// NewParsha returns the weekly Torah portion read on hd.
func NewParsha(hd hdate.HDate, names []string, il bool) *Event {
	desc := "Parashat " + strings.Join(names, "-")
	return &Event{
		Kind:   KindParsha,
		Date:   hd,
		Desc:   desc,
		Flags:  ParshaHashavua,
		Parsha: slices.Clone(names),
		IL:     il,
	}
}

// NewDafYomi returns the Babylonian Talmud page studied on hd.
func NewDafYomi(hd hdate.HDate, tractate string, page int) *Event {
	return &Event{
		Kind:     KindDafYomi,
		Date:     hd,
		Desc:     fmt.Sprintf("%s %d", tractate, page),
		Flags:    DafYomi,
		Tractate: tractate,
		Page:     page,
	}
}

// NewHebrewDate returns an event naming the Hebrew date itself.
func NewHebrewDate(hd hdate.HDate) *Event {
	return &Event{Kind: KindHebrewDate, Date: hd, Desc: hd.String(), Flags: HebrewDate}
}
