package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/location"
	"github.com/tartampluch/go-luach/internal/zmanim"
)

const (
	descFastBegins = "Fast begins"
	descFastEnds   = "Fast ends"
	descYomKippur  = "Yom Kippur"
	descTishaBav   = "Tish'a B'Av"
)

// linker attaches candle-lighting, Havdalah, Chanukah and fast times to a
// day's holidays.
type linker struct {
	loc          *location.Location
	tr           event.Translator
	locale       string
	useElevation bool

	candleMins       float64
	havdalahMins     int
	havdalahDeg      float64
	suppressHavdalah bool
	fastEndDeg       float64
}

func newLinker(o *CalOptions, tr event.Translator) *linker {
	l := &linker{
		loc:          o.Location,
		tr:           tr,
		locale:       o.Locale,
		useElevation: o.UseElevation,
		candleMins:   float64(o.candleLightingMins()),
		havdalahDeg:  config.DefaultHavdalahDeg,
		fastEndDeg:   o.FastEndDeg,
	}
	if l.fastEndDeg == 0 {
		l.fastEndDeg = config.DefaultFastEndDeg
	}
	if o.HavdalahMins != nil {
		l.havdalahMins = *o.HavdalahMins
		l.suppressHavdalah = l.havdalahMins == 0
	}
	if o.HavdalahDeg != nil {
		if *o.HavdalahDeg == 0 {
			l.suppressHavdalah = true
		} else {
			l.havdalahDeg = *o.HavdalahDeg
		}
	}
	return l
}

func (l *linker) zmanim(hd hdate.HDate) zmanim.Zmanim {
	return zmanim.New(l.loc, hd.Time(), l.useElevation)
}

// link returns what to emit for a holiday: the holiday itself, or a copy
// carrying its lighting time, or a fast wrapped with its start and end.
// The second result is the day's candle-lighting or Havdalah event the
// holiday calls for, if any.
func (l *linker) link(ev *event.Event, hd hdate.HDate) ([]*event.Event, *event.Event) {
	f := ev.Flags
	switch {
	case isFast(ev):
		return l.fast(ev, hd), nil
	case f.Any(event.ChanukahCandles) && hd.Weekday() != time.Friday:
		return []*event.Event{l.chanukah(ev, hd)}, nil
	case f.Any(event.LightCandles | event.LightCandlesTzeis | event.YomTovEnds | event.ChanukahCandles):
		return []*event.Event{ev}, l.candles(ev, hd)
	}
	return []*event.Event{ev}, nil
}

func isFast(ev *event.Event) bool {
	return ev.Flags.Any(event.MinorFast|event.MajorFast) && ev.Desc != descYomKippur
}

// candles returns the candle-lighting or Havdalah event for hd. ev is the
// holiday that calls for it, or nil for an ordinary Friday or Shabbat.
// The result is nil when Havdalah is suppressed or there is no sunset.
func (l *linker) candles(ev *event.Event, hd hdate.HDate) *event.Event {
	dow := hd.Weekday()
	flags := event.LightCandles
	havdalah := false
	atNightfall := dow == time.Saturday

	if ev != nil {
		flags = ev.Flags
		if dow != time.Friday {
			switch {
			case flags.Any(event.LightCandlesTzeis):
				atNightfall = true
			case flags.Any(event.YomTovEnds):
				havdalah, atNightfall = true, true
			}
		}
	} else if dow == time.Saturday {
		havdalah = true
		flags = event.LightCandlesTzeis
	}

	if havdalah && l.suppressHavdalah {
		return nil
	}

	z := l.zmanim(hd)
	var (
		t  time.Time
		ok bool
	)
	if atNightfall {
		t, ok = l.nightfall(z)
	} else {
		t, ok = z.SunsetOffset(-l.candleMins, true)
	}
	if !ok {
		l.noSunset(hd)
		return nil
	}

	if havdalah {
		return l.stamp(event.NewHavdalah(hd, flags, t, l.loc, ev, l.havdalahMins))
	}
	return l.stamp(event.NewCandleLighting(hd, flags, t, l.loc, ev))
}

// nightfall is the end of Shabbat or a festival: a fixed offset after
// sunset when one is configured, otherwise the Havdalah depression angle.
func (l *linker) nightfall(z zmanim.Zmanim) (time.Time, bool) {
	if l.havdalahMins > 0 {
		return z.SunsetOffset(float64(l.havdalahMins), true)
	}
	t, ok := z.Tzeit(l.havdalahDeg)
	if !ok {
		return time.Time{}, false
	}
	return zmanim.RoundToMinute(t), true
}

// chanukah returns a copy of a Chanukah event carrying the lighting time.
// On weekdays candles are lit shortly before dusk; on Shabbat, after
// nightfall.
func (l *linker) chanukah(ev *event.Event, hd hdate.HDate) *event.Event {
	z := l.zmanim(hd)
	var (
		t  time.Time
		ok bool
	)
	if hd.Weekday() == time.Saturday {
		t, ok = l.nightfall(z)
	} else {
		t, ok = z.Tzeit(config.ChanukahTzeitDeg)
		before := time.Duration(config.ChanukahBeforeTzeitMins * float64(time.Minute))
		t = zmanim.RoundToMinute(t.Add(-before))
	}
	if !ok {
		l.noSunset(hd)
		return ev
	}

	c := ev.Clone()
	c.Time = t
	c.Location = l.loc
	return l.stamp(c)
}

// fast returns the fast wrapped with its start and end, bracketed by the
// matching timed events. Fasts begin at dawn except Tish'a B'Av, which
// begins at sunset the evening before.
func (l *linker) fast(ev *event.Event, hd hdate.HDate) []*event.Event {
	z := l.zmanim(hd)
	var start, end *event.Event

	switch {
	case ev.Flags.Any(event.Erev):
		if t, ok := z.SunsetOffset(0, true); ok {
			start = l.timed(hd, descFastBegins, ev, t)
		}
	case strings.HasPrefix(ev.Desc, descTishaBav):
		end = l.fastEnd(z, hd, ev)
	default:
		if t, ok := z.AlotHaShachar(); ok {
			start = l.timed(hd, descFastBegins, ev, zmanim.RoundToMinute(t))
		}
		// No end time on Friday or on Erev Pesach.
		bechorot := hd.Month() == hdate.Nisan && hd.Day() == 14
		if hd.Weekday() != time.Friday && !bechorot {
			end = l.fastEnd(z, hd, ev)
		}
	}

	out := make([]*event.Event, 0, 3)
	if start != nil {
		out = append(out, start)
	}
	out = append(out, event.NewFastDay(ev, start, end))
	if end != nil {
		out = append(out, end)
	}
	return out
}

func (l *linker) fastEnd(z zmanim.Zmanim, hd hdate.HDate, ev *event.Event) *event.Event {
	t, ok := z.Tzeit(l.fastEndDeg)
	if !ok {
		l.noSunset(hd)
		return nil
	}
	return l.timed(hd, descFastEnds, ev, zmanim.RoundToMinute(t))
}

func (l *linker) timed(hd hdate.HDate, desc string, ev *event.Event, t time.Time) *event.Event {
	return l.stamp(event.NewTimed(hd, desc, ev.Flags, t, l.loc, ev))
}

// stamp pre-formats the event's clock time for serializers.
func (l *linker) stamp(ev *event.Event) *event.Event {
	ev.FmtTime = l.tr.FormatTime(ev.Time, l.locale, l.loc.CountryCode)
	return ev
}

func (l *linker) noSunset(hd hdate.HDate) {
	slog.Debug(config.MsgNoSunset,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCity, l.loc.Name,
		config.LogKeyDate, hd.Time().Format(config.DateFormatISO),
	)
}
