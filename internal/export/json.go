package export

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonDocument struct {
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	Location *jsonLocation `json:"location,omitempty"`
	Items    []jsonItem    `json:"items"`
}

type jsonLocation struct {
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TZID      string  `json:"tzid"`
}

type jsonItem struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	HDate    string `json:"hdate"`
	Category string `json:"category"`
	Subcat   string `json:"subcat,omitempty"`
	Hebrew   string `json:"hebrew,omitempty"`
	Memo     string `json:"memo,omitempty"`
	Link     string `json:"link,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

// JSON encodes events as a single document with one item per event. Timed
// items carry an RFC 3339 timestamp in the location's zone; the others a
// plain date.
func JSON(events []*event.Event, opts Options) ([]byte, error) {
	tr, loc := opts.translator(), opts.locale()
	name := opts.CalName
	if name == "" {
		name = config.ICalCalName
	}
	doc := jsonDocument{
		Title: name,
		Date:  opts.now().UTC().Format(time.RFC3339),
		Items: make([]jsonItem, 0, len(events)),
	}

	for _, ev := range events {
		if doc.Location == nil && ev.Location != nil {
			doc.Location = &jsonLocation{
				Title:     ev.Location.Name,
				Latitude:  ev.Location.Latitude,
				Longitude: ev.Location.Longitude,
				TZID:      ev.Location.TZID,
			}
		}
		doc.Items = append(doc.Items, newJSONItem(ev, tr, loc))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	logEncoded(config.FormatJSON, len(events), len(data))
	return data, nil
}

func newJSONItem(ev *event.Event, tr event.Translator, loc string) jsonItem {
	cats := ev.Categories()
	item := jsonItem{
		Title:    title(ev, tr, loc, false),
		Date:     ev.Date.Time().Format(config.DateFormatISO),
		HDate:    ev.Date.String(),
		Category: cats[0],
		Memo:     ev.Memo,
		Link:     ev.URL(),
		Emoji:    ev.Emoji,
	}
	if len(cats) > 1 {
		item.Subcat = cats[1]
	}
	if ev.HasTime() {
		item.Date = ev.Time.Format(config.DateTimeFormatISO)
	}
	if loc != "he" {
		item.Hebrew = ev.RenderBrief(tr, "he")
	}
	return item
}
