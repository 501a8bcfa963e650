package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
)

var uidNamespace = uuid.MustParse(config.UIDNamespace)

// ICS encodes events as an iCalendar feed. Untimed events are all-day
// entries; timed events start at their UTC instant. UIDs are derived from
// the date, title and location, so regenerating a calendar keeps them.
func ICS(events []*event.Event, opts Options) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	name := opts.CalName
	if name == "" {
		name = config.ICalCalName
	}
	cal.Props.SetText(config.PropXWRCalName, name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(opts.now().UTC())

	tr, loc := opts.translator(), opts.locale()
	for _, ev := range events {
		e := newICalEvent(ev, tr, loc)
		if ev.Kind == event.KindCandleLighting && opts.Reminder != "" {
			addAlarm(e, opts.Reminder, title(ev, tr, loc, false))
		}
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)
		logEncoded(config.FormatICS, 0, buf.Len())
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	logEncoded(config.FormatICS, len(events), buf.Len())
	return buf.Bytes(), nil
}

func newICalEvent(ev *event.Event, tr event.Translator, loc string) *ical.Event {
	e := ical.NewEvent()
	e.Props.SetText(config.PropUID, UID(ev))
	e.Props.SetText(config.PropSummary, title(ev, tr, loc, true))

	dtStartProp := ical.NewProp(config.PropDTStart)
	if ev.HasTime() {
		dtStartProp.SetDateTime(ev.Time.UTC())
		e.Props.Set(dtStartProp)
	} else {
		day := ev.Date.Time()
		dtStartProp.SetDate(day)
		e.Props.Set(dtStartProp)

		dtEndProp := ical.NewProp(config.PropDTEnd)
		dtEndProp.SetDate(day.AddDate(0, 0, 1))
		e.Props.Set(dtEndProp)
	}

	e.Props.SetText(config.PropTransp, config.TranspTransparent)

	catProp := ical.NewProp(config.PropCategories)
	catProp.SetTextList(ev.Categories())
	e.Props.Set(catProp)

	if link := ev.URL(); link != "" {
		// Raw value: SetText would escape the URL.
		urlProp := ical.NewProp(config.PropURL)
		urlProp.Value = link
		e.Props.Set(urlProp)
	}
	if ev.Memo != "" {
		e.Props.SetText(config.PropDescription, ev.Memo)
	}
	return e
}

// UID returns the stable identifier of ev in calendar feeds.
func UID(ev *event.Event) string {
	key := []string{ev.Date.Time().Format(config.DateFormatISO), ev.Kind.String(), ev.Desc}
	if ev.Location != nil {
		key = append(key, ev.Location.Name)
	}
	id := uuid.NewSHA1(uidNamespace, []byte(strings.Join(key, "|")))
	return fmt.Sprintf(config.FormatUID, id, config.UIDDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(e *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	e.Children = append(e.Children, alarm)
}

func logEncoded(format string, events, size int) {
	slog.Debug(config.MsgExportDone,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyFormat, format,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEvents, events),
			slog.Int(config.LogKeySizeBytes, size),
		),
	)
}
