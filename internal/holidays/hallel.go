package holidays

import (
	"strings"

	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
)

// HallelKind says how much of Hallel is recited on a day.
type HallelKind int

const (
	HallelNone HallelKind = iota
	HallelHalf
	HallelWhole
)

func (h HallelKind) String() string {
	switch h {
	case HallelHalf:
		return "half"
	case HallelWhole:
		return "whole"
	}
	return "none"
}

var wholeHallel = map[string]bool{
	"Yom HaAtzma'ut":   true,
	"Yom Yerushalayim": true,
}

// Hallel classifies hd from a region's events, as returned by
// YearMap.EventsIn.
func Hallel(events []*event.Event, hd hdate.HDate) HallelKind {
	kind := HallelNone
	for _, ev := range events {
		if !ev.Date.Equal(hd) {
			continue
		}
		switch {
		case isWholeHallel(ev):
			return HallelWhole
		case isHalfHallel(ev):
			kind = HallelHalf
		}
	}
	return kind
}

func isWholeHallel(ev *event.Event) bool {
	desc := ev.Desc
	switch {
	case strings.HasPrefix(desc, "Chanukah"):
		return !ev.Flags.Any(event.Erev)
	case strings.HasPrefix(desc, "Shavuot"), strings.HasPrefix(desc, "Sukkot"):
		return true
	case strings.HasPrefix(desc, "Pesach"):
		d := ev.Date
		return d.Month() == hdate.Nisan && (d.Day() == 15 || d.Day() == 16) && ev.Flags.Any(event.Chag)
	}
	return wholeHallel[desc]
}

func isHalfHallel(ev *event.Event) bool {
	if ev.Kind == event.KindRoshChodesh {
		return true
	}
	return strings.HasPrefix(ev.Desc, "Pesach") && ev.Desc != "Pesach Sheni"
}
