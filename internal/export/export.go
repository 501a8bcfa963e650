// Package export serializes calendar events as iCalendar, JSON or plain
// text.
package export

import (
	"time"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/locale"
)

// Options control how events are titled and stamped.
type Options struct {
	// Translator renders titles; nil uses the embedded catalogs.
	Translator event.Translator
	// Locale defaults to English.
	Locale string
	// Now stamps the output; zero means time.Now.
	Now time.Time
	// CalName overrides the iCalendar X-WR-CALNAME.
	CalName string
	// Reminder is an iCalendar TRIGGER ("-PT15M") attached as a display
	// alarm to candle-lighting events. Empty disables alarms.
	Reminder string
}

func (o Options) translator() event.Translator {
	if o.Translator == nil {
		return locale.Default()
	}
	return o.Translator
}

func (o Options) locale() string {
	if o.Locale == "" {
		return config.DefaultLocale
	}
	return o.Locale
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// title is the display title. Timed events in calendar feeds carry their
// time in DTSTART, so brief titles are used there.
func title(ev *event.Event, tr event.Translator, loc string, brief bool) string {
	if brief && ev.HasTime() {
		return ev.RenderBrief(tr, loc)
	}
	return ev.Render(tr, loc)
}
