package export

import (
	"bytes"
	"fmt"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
)

// Text renders one "YYYY-MM-DD title" line per event.
func Text(events []*event.Event, opts Options) []byte {
	tr, loc := opts.translator(), opts.locale()
	var buf bytes.Buffer
	for _, ev := range events {
		fmt.Fprintf(&buf, config.TextLineFormat, ev.Date.Time().Format(config.DateFormatISO), title(ev, tr, loc, false))
	}
	logEncoded(config.FormatText, len(events), buf.Len())
	return buf.Bytes()
}
