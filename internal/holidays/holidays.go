// Package holidays computes the Jewish holidays, fasts, Rosh Chodesh days
// and special Shabbatot of a Hebrew year for both Israel and the Diaspora.
package holidays

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
)

var (
	// ErrYearRange is returned for years outside [1, 32658].
	ErrYearRange = errors.New("hebrew year out of range")
	// ErrYearNotNumeric is returned by ParseYear for non-integer input.
	ErrYearNotNumeric = errors.New("hebrew year is not numeric")
)

var defaultCache = NewYearCache(config.YearCacheCapacity, compute)

// ForYear returns the holidays of a Hebrew year. Results are memoized and
// shared: callers must not modify the map or its events.
func ForYear(year int) (*YearMap, error) {
	if year < config.MinHebrewYear || year > config.MaxHebrewYear {
		return nil, fmt.Errorf("%w: %d", ErrYearRange, year)
	}
	return defaultCache.Get(year), nil
}

// ParseYear parses a Hebrew year given as text and checks its range.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrYearNotNumeric, s)
	}
	if year < config.MinHebrewYear || year > config.MaxHebrewYear {
		return 0, fmt.Errorf("%w: %d", ErrYearRange, year)
	}
	return year, nil
}

// YearMap holds one Hebrew year's events grouped by day. Days are ordered
// by date and, within a day, Erev events come first.
type YearMap struct {
	year int
	keys []string
	days map[string][]*event.Event
	all  []*event.Event
}

// Year returns the Hebrew year.
func (m *YearMap) Year() int { return m.year }

// Keys returns the day keys (hdate.HDate.String) in date order.
func (m *YearMap) Keys() []string { return slices.Clone(m.keys) }

// Len returns the number of days that have at least one event.
func (m *YearMap) Len() int { return len(m.keys) }

// Get returns the events of hd, for both regions.
func (m *YearMap) Get(hd hdate.HDate) []*event.Event {
	return slices.Clone(m.days[hd.String()])
}

// GetKey returns the events of the day with the given key.
func (m *YearMap) GetKey(key string) []*event.Event {
	return slices.Clone(m.days[key])
}

// Events returns every event of the year in date order.
func (m *YearMap) Events() []*event.Event { return slices.Clone(m.all) }

// EventsIn returns the events observed in Israel (il) or the Diaspora.
func (m *YearMap) EventsIn(il bool) []*event.Event {
	out := make([]*event.Event, 0, len(m.all))
	for _, ev := range m.all {
		if ev.ObservedIn(il) {
			out = append(out, ev)
		}
	}
	return out
}

// Hallel classifies hd using this year's events for the given region.
func (m *YearMap) Hallel(hd hdate.HDate, il bool) HallelKind {
	return Hallel(m.EventsIn(il), hd)
}

// builder accumulates events per day before they are frozen in a YearMap.
type builder struct {
	year int
	days map[string][]*event.Event
	abs  map[string]int64
}

func newBuilder(year int) *builder {
	return &builder{
		year: year,
		days: make(map[string][]*event.Event, 128),
		abs:  make(map[string]int64, 128),
	}
}

func (b *builder) add(evs ...*event.Event) {
	for _, ev := range evs {
		key := ev.Date.String()
		b.days[key] = append(b.days[key], ev)
		b.abs[key] = ev.Date.Abs()
	}
}

func (b *builder) holiday(hd hdate.HDate, desc string, flags event.Flags, emoji string) *event.Event {
	ev := event.NewHoliday(hd, desc, flags)
	ev.Emoji = emoji
	b.add(ev)
	return ev
}

func (b *builder) finish() *YearMap {
	keys := make([]string, 0, len(b.days))
	for k := range b.days {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y string) int {
		return cmp.Compare(b.abs[x], b.abs[y])
	})

	m := &YearMap{year: b.year, keys: keys, days: b.days}
	for _, k := range keys {
		slices.SortStableFunc(b.days[k], erevFirst)
		m.all = append(m.all, b.days[k]...)
	}
	return m
}

// erevFirst orders Erev events before all others, keeping generation order
// otherwise.
func erevFirst(a, b *event.Event) int {
	ae, be := a.Flags.Any(event.Erev), b.Flags.Any(event.Erev)
	switch {
	case ae && !be:
		return -1
	case !ae && be:
		return 1
	}
	return 0
}

// compute builds the holidays of year without caching.
func compute(year int) *YearMap {
	start := time.Now()
	b := newBuilder(year)

	rh := hdate.New(1, hdate.Tishrei, year)
	pesach := hdate.New(15, hdate.Nisan, year)

	for _, h := range fixedHolidays {
		ev := b.holiday(hdate.New(h.day, h.month, year), h.desc, h.flags, h.emoji)
		ev.CholHaMoedDay = h.chmDay
	}

	b.add(event.NewRoshHashana(rh, year))
	b.addTishrei(rh)
	b.addChanukah()
	b.addPesachRelative(pesach)
	b.addConditional(pesach)
	b.addModern(pesach)
	b.addSummerFasts()
	b.addRoshChodesh()
	b.addYomKippurKatan()
	b.addShabbatShirah()

	if hd, ok := BirkatHachamah(year); ok {
		b.holiday(hd, "Birkat Hachamah", event.MinorHoliday, "☀️")
	}

	m := b.finish()
	slog.Debug(config.MsgYearComputed,
		config.LogKeyComponent, config.CompHolidays,
		config.LogKeyYear, year,
		config.LogKeyEvents, len(m.all),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return m
}

func (b *builder) addTishrei(rh hdate.HDate) {
	gedaliah := 3
	if rh.Weekday() == time.Thursday {
		gedaliah = 4
	}
	b.holiday(hdate.New(gedaliah, hdate.Tishrei, b.year), "Tzom Gedaliah", event.MinorFast, "")
	b.holiday(hdate.FromAbs(hdate.DayOnOrBefore(time.Saturday, rh.Abs()+7)), "Shabbat Shuva", event.SpecialShabbat, emojiShabbat)

	next := hdate.New(1, hdate.Tishrei, b.year+1)
	b.holiday(hdate.FromAbs(hdate.DayOnOrBefore(time.Saturday, next.Abs()-4)), "Leil Selichot", event.MinorHoliday, emojiShabbat)
}

func (b *builder) addChanukah() {
	for candles := 2; candles <= 8; candles++ {
		ev := b.holiday(hdate.New(23+candles, hdate.Kislev, b.year),
			fmt.Sprintf("Chanukah: %d Candles", candles),
			event.MinorHoliday|event.ChanukahCandles,
			emojiChanukah+keycaps[candles])
		ev.ChanukahDay = candles - 1
	}
	// 32 Kislev normalizes into Tevet.
	ev := b.holiday(hdate.New(32, hdate.Kislev, b.year), "Chanukah: 8th Day", event.MinorHoliday, emojiChanukah)
	ev.ChanukahDay = 8

	banot := hdate.New(30, hdate.Kislev, b.year)
	if hdate.ShortKislev(b.year) {
		banot = hdate.New(1, hdate.Tevet, b.year)
	}
	b.holiday(banot, "Chag HaBanot", event.MinorHoliday, "")

	b.add(event.NewAsaraBTevet(hdate.New(10, hdate.Tevet, b.year)))
}

func (b *builder) addPesachRelative(pesach hdate.HDate) {
	p := pesach.Abs()
	sat := func(abs int64) hdate.HDate { return hdate.FromAbs(hdate.DayOnOrBefore(time.Saturday, abs)) }

	b.holiday(sat(p-43), "Shabbat Shekalim", event.SpecialShabbat, emojiShabbat)
	b.holiday(sat(p-30), "Shabbat Zachor", event.SpecialShabbat, emojiShabbat)

	esther := p - 31
	if pesach.Weekday() == time.Tuesday {
		esther = p - 33
	}
	b.holiday(hdate.FromAbs(esther), "Ta'anit Esther", event.MinorFast, "")

	haChodesh := sat(p - 14)
	b.holiday(haChodesh.Add(-7), "Shabbat Parah", event.SpecialShabbat, emojiShabbat)
	b.holiday(haChodesh, "Shabbat HaChodesh", event.SpecialShabbat, emojiShabbat)
	b.holiday(sat(p-1), "Shabbat HaGadol", event.SpecialShabbat, emojiShabbat)

	bechorot := hdate.FromAbs(p - 1)
	if bechorot.Weekday() == time.Saturday {
		bechorot = bechorot.Before(time.Thursday)
	}
	b.holiday(bechorot, "Ta'anit Bechorot", event.MinorFast, "")
}

func (b *builder) addConditional(pesach hdate.HDate) {
	if pesach.Weekday() == time.Sunday {
		b.holiday(hdate.New(16, hdate.Adar2, b.year), "Purim Meshulash", event.MinorHoliday, emojiPurim)
	}
	if hdate.IsLeapYear(b.year) {
		b.holiday(hdate.New(14, hdate.Adar1, b.year), "Purim Katan", event.MinorHoliday, "🎭️")
		b.holiday(hdate.New(15, hdate.Adar1, b.year), "Shushan Purim Katan", event.MinorHoliday, "🎭️")
	}
}

const (
	firstYomHaShoah   = 5711
	firstYomHaAtzmaut = 5708
	// zikaronRuleChange is the first year Yom HaZikaron moves off Monday.
	zikaronRuleChange = 5764
)

func (b *builder) addModern(pesach hdate.HDate) {
	if b.year >= firstYomHaShoah {
		shoah := hdate.New(27, hdate.Nisan, b.year)
		switch shoah.Weekday() {
		case time.Friday:
			shoah = shoah.Prev()
		case time.Sunday:
			shoah = shoah.Next()
		}
		b.holiday(shoah, "Yom HaShoah", event.ModernHoliday, "")
	}

	if b.year >= firstYomHaAtzmaut {
		day := 4
		switch pw := pesach.Weekday(); {
		case pw == time.Sunday:
			day = 2
		case pw == time.Saturday:
			day = 3
		case b.year < zikaronRuleChange:
			day = 4
		case pw == time.Tuesday:
			day = 5
		}
		zikaron := hdate.New(day, hdate.Iyyar, b.year)
		b.holiday(zikaron, "Yom HaZikaron", event.ModernHoliday, emojiIsrael)
		b.holiday(zikaron.Next(), "Yom HaAtzma'ut", event.ModernHoliday, emojiIsrael)
	}

	for _, h := range modernHolidays {
		if b.year < h.firstYear {
			continue
		}
		flags := event.ModernHoliday
		if !h.chul {
			flags |= event.ILOnly
		}
		emoji := emojiIsrael
		if h.noEmoji {
			emoji = ""
		}
		b.holiday(h.rule.apply(hdate.New(h.day, h.month, b.year)), h.desc, flags, emoji)
	}
}

func (b *builder) addSummerFasts() {
	tammuz := hdate.New(17, hdate.Tamuz, b.year)
	desc := "Tzom Tammuz"
	if tammuz.Weekday() == time.Saturday {
		tammuz = tammuz.Next()
		desc += config.ObservedSuffix
	}
	ev := b.holiday(tammuz, desc, event.MinorFast, "")
	ev.Observed = strings.HasSuffix(desc, config.ObservedSuffix)

	av9 := hdate.New(9, hdate.Av, b.year)
	desc = "Tish'a B'Av"
	if av9.Weekday() == time.Saturday {
		av9 = av9.Next()
		desc += config.ObservedSuffix
	}
	b.holiday(av9.OnOrBefore(time.Saturday), "Shabbat Chazon", event.SpecialShabbat, emojiShabbat)
	b.holiday(av9.Prev(), "Erev Tish'a B'Av", event.Erev|event.MajorFast, "")
	ev = b.holiday(av9, desc, event.MajorFast, "")
	ev.Observed = strings.HasSuffix(desc, config.ObservedSuffix)
	b.holiday(hdate.FromAbs(hdate.DayOnOrBefore(time.Saturday, av9.Abs()+7)), "Shabbat Nachamu", event.SpecialShabbat, emojiShabbat)
}

// addRoshChodesh emits one Rosh Chodesh day per month, two when the
// preceding month has 30 days. Rosh Hashana takes the place of Rosh
// Chodesh Tishrei.
func (b *builder) addRoshChodesh() {
	months := hdate.MonthsInYear(b.year)
	for m := hdate.Nisan; m <= hdate.HMonth(months); m++ {
		name := hdate.MonthName(m, b.year)
		prev := m - 1
		if m == hdate.Nisan {
			prev = hdate.HMonth(months)
		}
		if hdate.DaysInMonth(prev, b.year) == 30 {
			b.add(event.NewRoshChodesh(hdate.New(30, prev, b.year), name))
			b.add(event.NewRoshChodesh(hdate.New(1, m, b.year), name))
		} else if m != hdate.Tishrei {
			b.add(event.NewRoshChodesh(hdate.New(1, m, b.year), name))
		}
	}
}

// addYomKippurKatan emits the fast on the eve of each Rosh Chodesh, except
// before Tishrei, Cheshvan and Tevet.
func (b *builder) addYomKippurKatan() {
	months := hdate.HMonth(hdate.MonthsInYear(b.year))
	for m := hdate.Iyyar; m <= months; m++ {
		next := m + 1
		if m == months {
			next = hdate.Nisan
		}
		if next == hdate.Tishrei || next == hdate.Cheshvan || next == hdate.Tevet {
			continue
		}
		hd := hdate.New(29, m, b.year)
		if wd := hd.Weekday(); wd == time.Friday || wd == time.Saturday {
			hd = hd.Before(time.Thursday)
		}
		b.add(event.NewYomKippurKatan(hd, hdate.MonthName(next, b.year)))
	}
}

// bereshitToBeshalach is the number of days from Shabbat Bereshit to
// Shabbat Beshalach; no double portions occur between them.
const bereshitToBeshalach = 15 * 7

// addShabbatShirah emits the Shabbat of the Song of the Sea. Shabbat
// Bereshit follows Simchat Torah in both regions.
func (b *builder) addShabbatShirah() {
	bereshit := hdate.DayOnOrBefore(time.Saturday, hdate.New(22, hdate.Tishrei, b.year).Abs()+7)
	b.holiday(hdate.FromAbs(bereshit+bereshitToBeshalach), "Shabbat Shirah", event.SpecialShabbat, "🎶")
}
