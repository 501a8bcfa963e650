package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/holidays"
	"github.com/tartampluch/go-luach/internal/learning"
	"github.com/tartampluch/go-luach/internal/locale"
)

// Generator assembles calendars: it walks a date range day by day, pulls
// each day's holidays from the memoized holiday engine, filters them by
// the options and links candle-lighting, Havdalah and fast times.
type Generator struct {
	Clock    Clock         // Interface for time mocking.
	Portions PortionLookup // Weekly portions; optional unless Sedrot is set.

	// Translator formats clock times and molad memos. Nil uses the
	// embedded catalogs.
	Translator event.Translator
}

// NewGenerator returns a Generator using clock (RealClock when nil).
func NewGenerator(clock Clock, portions PortionLookup) *Generator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Generator{Clock: clock, Portions: portions}
}

func (g *Generator) translator() event.Translator {
	if g.Translator == nil {
		return locale.Default()
	}
	return g.Translator
}

// Calendar returns the events selected by opts in date order. Options are
// validated before any day is processed.
func (g *Generator) Calendar(opts CalOptions) ([]*event.Event, error) {
	began := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Sedrot && g.Portions == nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOptionsInvalid, ErrNoPortionLookup)
	}

	first, last, err := g.span(&opts)
	if err != nil {
		return nil, err
	}

	mask := opts.Mask()
	var lk *linker
	if opts.CandleLighting {
		lk = newLinker(&opts, g.translator())
	}

	var (
		out []*event.Event
		ym  *holidays.YearMap
	)
	for abs := first; abs <= last; abs++ {
		hd := hdate.FromAbs(abs)
		if ym == nil || ym.Year() != hd.Year() {
			ym, err = holidays.ForYear(hd.Year())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", config.ErrYearCompute, err)
			}
		}
		out = append(out, g.day(hd, ym, &opts, mask, lk)...)
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyStart, hdate.AbsToGreg(first).Format(config.DateFormatISO),
		config.LogKeyEnd, hdate.AbsToGreg(last).Format(config.DateFormatISO),
		config.LogKeyIsrael, opts.IL,
		slog.Group(config.LogKeyStats,
			slog.Int64(config.LogKeyDays, last-first+1),
			slog.Int(config.LogKeyEvents, len(out)),
		),
		config.LogKeyDuration, time.Since(began).Milliseconds(),
	)
	return out, nil
}

// span resolves the options to an inclusive range of absolute days.
func (g *Generator) span(o *CalOptions) (int64, int64, error) {
	if !o.Start.IsZero() {
		return hdate.GregToAbs(o.Start), hdate.GregToAbs(o.End), nil
	}

	years := max(o.NumYears, 1)
	now := g.Clock.Now()
	year := o.Year

	if o.IsHebrewYear {
		if year == 0 {
			year = hdate.FromTime(now).Year()
		}
		if o.Month != 0 {
			if o.Month > hdate.MonthsInYear(year) {
				return 0, 0, fmt.Errorf("%w: month %d of hebrew year %d", ErrInvalidRange, o.Month, year)
			}
			m := hdate.HMonth(o.Month)
			first := hdate.New(1, m, year).Abs()
			return first, first + int64(hdate.DaysInMonth(m, year)) - 1, nil
		}
		if year+years-1 > config.MaxHebrewYear {
			return 0, 0, fmt.Errorf("%w: hebrew year %d", ErrInvalidRange, year+years-1)
		}
		return hdate.New(1, hdate.Tishrei, year).Abs(), hdate.New(1, hdate.Tishrei, year+years).Abs() - 1, nil
	}

	if year == 0 {
		year = now.Year()
	}
	if o.Month != 0 {
		first := time.Date(year, time.Month(o.Month), 1, 0, 0, 0, 0, time.UTC)
		return hdate.GregToAbs(first), hdate.GregToAbs(first.AddDate(0, 1, -1)), nil
	}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year+years-1, time.December, 31, 0, 0, 0, 0, time.UTC)
	return hdate.GregToAbs(first), hdate.GregToAbs(last), nil
}

// timedFlags mark holidays whose candle lighting, Havdalah or fast times
// are emitted even when the holidays themselves are suppressed.
const timedFlags = event.LightCandles | event.LightCandlesTzeis | event.YomTovEnds | event.MajorFast

// day assembles one day: Hebrew date, holidays with their linked times,
// weekly portion, Omer, Shabbat Mevarchim and molad, Daf Yomi, and finally
// candle lighting or Havdalah.
func (g *Generator) day(hd hdate.HDate, ym *holidays.YearMap, o *CalOptions, mask event.Flags, lk *linker) []*event.Event {
	var evs []*event.Event
	dow := hd.Weekday()

	var candles *event.Event
	for _, ev := range ym.Get(hd) {
		shown := admit(ev, o, mask)
		if lk == nil {
			if shown {
				evs = append(evs, ev)
			}
			continue
		}
		if !shown && !(o.NoHolidays && ev.ObservedIn(o.IL) && ev.Flags.Any(timedFlags)) {
			continue
		}
		linked, c := lk.link(ev, hd)
		if c != nil {
			candles = c
		}
		if shown {
			evs = append(evs, linked...)
			continue
		}
		for _, l := range linked {
			if l.Kind == event.KindTimed {
				evs = append(evs, l)
			}
		}
	}

	if o.Sedrot && dow == time.Saturday {
		if names, ok := g.Portions.Portion(hd, o.IL); ok {
			evs = append(evs, event.NewParsha(hd, names, o.IL))
		}
	}

	if o.Omer {
		if n := omerDay(hd); n > 0 {
			evs = append(evs, event.NewOmer(hd, n))
		}
	}
	if dow == time.Saturday && mask.Any(event.ShabbatMevarchim|event.Molad) {
		evs = append(evs, g.mevarchim(hd, o, mask)...)
	}
	if o.DailyLearning {
		// Days before the first cycle have no page.
		if daf, err := learning.ForAbs(hd.Abs()); err == nil {
			evs = append(evs, event.NewDafYomi(hd, daf.Tractate, daf.Page))
		}
	}

	if lk != nil && candles == nil && (dow == time.Friday || dow == time.Saturday) {
		candles = lk.candles(nil, hd)
	}
	if candles != nil {
		evs = append(evs, candles)
	}

	if o.AddHebrewDates || (o.AddHebrewDatesForEvents && len(evs) > 0) {
		evs = append([]*event.Event{event.NewHebrewDate(hd)}, evs...)
	}
	return evs
}

// admit applies the option mask to a holiday. Region bits are matched with
// ObservedIn rather than through the mask.
func admit(ev *event.Event, o *CalOptions, mask event.Flags) bool {
	f := ev.Flags
	switch {
	case !ev.ObservedIn(o.IL):
		return false
	case f.Any(event.YomKippurKatan):
		return mask.Any(event.YomKippurKatan)
	case o.NoHolidays:
		return false
	case o.NoModern && f.Any(event.ModernHoliday):
		return false
	}
	return f.Any(mask &^ (event.ILOnly | event.ChulOnly))
}

// omerDay returns the day of the Omer count for hd, or 0 outside it.
func omerDay(hd hdate.HDate) int {
	n := int(hd.Abs() - hdate.New(15, hdate.Nisan, hd.Year()).Abs())
	if n < 1 || n > config.OmerDays {
		return 0
	}
	return n
}

// mevarchim announces the coming month on the Shabbat before Rosh Chodesh.
// Tishrei is never announced.
func (g *Generator) mevarchim(hd hdate.HDate, o *CalOptions, mask event.Flags) []*event.Event {
	if hd.Month() == hdate.Elul || hd.Day() < 23 || hd.Day() > 29 {
		return nil
	}
	next := hd.Month() + 1
	if int(hd.Month()) == hdate.MonthsInYear(hd.Year()) {
		next = hdate.Nisan
	}
	molad := event.NewMolad(hd, hdate.NewMolad(hd.Year(), next))

	var out []*event.Event
	if mask.Any(event.ShabbatMevarchim) {
		loc := o.Locale
		if loc == "" {
			loc = config.DefaultLocale
		}
		memo := molad.Render(g.translator(), loc)
		out = append(out, event.NewMevarchimChodesh(hd, hdate.MonthName(next, hd.Year()), memo))
	}
	if mask.Any(event.Molad) {
		out = append(out, molad)
	}
	return out
}
