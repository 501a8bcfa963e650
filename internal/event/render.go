package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/locale"
)

// Translator renders message IDs and clock times for a locale.
// *locale.Translator satisfies it.
type Translator interface {
	Lookup(key, locale string) string
	Format(key, locale string, data map[string]any) string
	FormatTime(t time.Time, locale, countryCode string) string
}

func resolve(tr Translator) Translator {
	if tr == nil {
		return locale.Default()
	}
	return tr
}

// flagCategories is ordered; the first matching flag wins.
var flagCategories = []struct {
	flag Flags
	cats []string
}{
	{MajorFast, []string{"holiday", "major", "fast"}},
	{ChanukahCandles, []string{"holiday", "major"}},
	{MinorFast, []string{"holiday", "fast"}},
	{MinorHoliday, []string{"holiday", "minor"}},
	{ModernHoliday, []string{"holiday", "modern"}},
	{SpecialShabbat, []string{"holiday", "shabbat"}},
	{RoshChodesh, []string{"roshchodesh"}},
	{ParshaHashavua, []string{"parashat"}},
	{DafYomi, []string{"dafyomi"}},
	{OmerCount, []string{"omer"}},
	{ShabbatMevarchim, []string{"mevarchim"}},
	{Molad, []string{"molad"}},
	{UserEvent, []string{"user"}},
	{HebrewDate, []string{"hebdate"}},
}

// minorHolidays are minor even when their flags do not say so.
var minorHolidays = map[string]bool{
	"Tu BiShvat":             true,
	"Purim":                  true,
	"Shushan Purim":          true,
	"Purim Katan":            true,
	"Shushan Purim Katan":    true,
	"Lag BaOmer":             true,
	"Pesach Sheni":           true,
	"Tu B'Av":                true,
	"Rosh Hashana LaBehemot": true,
	"Leil Selichot":          true,
	"Chag HaBanot":           true,
	"Birkat Hachamah":        true,
}

// Categories returns the category path, most general first, used by
// serializers (["holiday", "major"], ["candles"], ...).
func (e *Event) Categories() []string {
	switch e.Kind {
	case KindFastDay:
		if e.Linked != nil {
			return e.Linked.Categories()
		}
	case KindCandleLighting:
		return []string{"candles"}
	case KindHavdalah:
		return []string{"havdalah"}
	case KindTimed:
		return []string{"zmanim"}
	case KindHoliday, KindRoshHashana, KindAsaraBTevet:
		return e.holidayCategories()
	}
	return flagCategoriesOf(e.Flags)
}

func (e *Event) holidayCategories() []string {
	if e.CholHaMoedDay != 0 {
		return []string{"holiday", "major", "cholhamoed"}
	}
	if e.ChanukahDay != 0 {
		return []string{"holiday", "major"}
	}
	cats := flagCategoriesOf(e.Flags)
	if cats[0] != "unknown" {
		return cats
	}
	if minorHolidays[e.Basename()] {
		return []string{"holiday", "minor"}
	}
	return []string{"holiday", "major"}
}

func flagCategoriesOf(f Flags) []string {
	for _, fc := range flagCategories {
		if f.Any(fc.flag) {
			return append([]string(nil), fc.cats...)
		}
	}
	return []string{"unknown"}
}

var basenameStrips = []*regexp.Regexp{
	regexp.MustCompile(` \d{4}$`),
	regexp.MustCompile(` \(CH''M\)$`),
	regexp.MustCompile(` \(observed\)$`),
	regexp.MustCompile(` \(Hoshana Raba\)$`),
	regexp.MustCompile(` [IV]+$`),
	regexp.MustCompile(`: \d Candles?$`),
	regexp.MustCompile(`: 8th Day$`),
	regexp.MustCompile(`^Erev `),
}

// Basename is the holiday's name without day numbering, year, "Erev" or
// Chanukah candle counts. Every day of Sukkot has the basename "Sukkot".
func (e *Event) Basename() string {
	switch e.Kind {
	case KindFastDay:
		if e.Linked != nil {
			return e.Linked.Basename()
		}
	case KindYomKippurKatan:
		return "Yom Kippur Katan"
	case KindHoliday, KindRoshHashana, KindAsaraBTevet:
		s := e.Desc
		for _, re := range basenameStrips {
			s = re.ReplaceAllString(s, "")
		}
		return s
	}
	return e.Desc
}

// URL links to the event's detail page, or is empty when there is none.
func (e *Event) URL() string {
	switch e.Kind {
	case KindFastDay:
		if e.Linked != nil {
			return e.Linked.URL()
		}
		return ""
	case KindHoliday, KindRoshHashana, KindAsaraBTevet, KindRoshChodesh:
		return e.holidayURL()
	case KindParsha:
		return e.parshaURL()
	}
	return ""
}

func (e *Event) holidayURL() string {
	greg := e.Date.Time()
	if greg.Year() < config.FirstURLYear {
		return ""
	}
	suffix := fmt.Sprintf("%d", greg.Year())
	if e.Kind == KindAsaraBTevet {
		suffix = greg.Format(config.URLDateSuffixFmt)
	}
	url := config.HolidayURLBase + slug(e.Basename()) + "-" + suffix
	if e.Flags.Any(ILOnly) {
		url += config.URLIsraelSuffix
	}
	return url
}

func (e *Event) parshaURL() string {
	greg := e.Date.Time()
	if greg.Year() < config.FirstURLYear {
		return ""
	}
	url := config.ParshaURLBase + slug(strings.Join(e.Parsha, "-")) + "-" + greg.Format(config.URLDateSuffixFmt)
	if e.IL {
		url += config.URLIsraelSuffix
	}
	return url
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, " ", "-")
}

// Render returns the display title in locale.
func (e *Event) Render(tr Translator, loc string) string {
	return e.render(resolve(tr), loc, false)
}

// RenderBrief returns a shorter title: timed events drop their clock time
// and Rosh Hashana drops the year.
func (e *Event) RenderBrief(tr Translator, loc string) string {
	return e.render(resolve(tr), loc, true)
}

func (e *Event) render(tr Translator, loc string, brief bool) string {
	switch e.Kind {
	case KindFastDay:
		if e.Linked != nil {
			return e.Linked.render(tr, loc, brief)
		}
		return typographic(translateDesc(tr, e.Desc, loc))

	case KindRoshHashana:
		title := tr.Lookup("Rosh Hashana", loc)
		if brief {
			return title
		}
		return title + " " + yearString(e.HebrewYear, loc)

	case KindRoshChodesh:
		return typographic(tr.Lookup("Rosh Chodesh", loc) + " " + tr.Lookup(e.Month, loc))

	case KindYomKippurKatan:
		title := tr.Lookup("Yom Kippur Katan", loc)
		if brief {
			return title
		}
		return title + " " + tr.Lookup(e.Month, loc)

	case KindMevarchimChodesh:
		return tr.Format(locale.KeyMevarchim, loc, map[string]any{"Month": tr.Lookup(e.Month, loc)})

	case KindCandleLighting, KindHavdalah, KindTimed:
		title := tr.Lookup(e.Desc, loc)
		if e.Kind == KindHavdalah && e.HavdalahMins > 0 {
			title = fmt.Sprintf("%s (%d min)", title, e.HavdalahMins)
		}
		if brief || !e.HasTime() {
			return title
		}
		return title + ": " + e.formattedTime(tr, loc)

	case KindOmer:
		return tr.Format(locale.KeyOmerDay, loc, map[string]any{
			"Day":     e.OmerDay,
			"Ordinal": locale.Ordinal(e.OmerDay),
		})

	case KindMolad:
		if e.Molad == nil {
			return e.Desc
		}
		return tr.Format(locale.KeyMolad, loc, map[string]any{
			"Month":    tr.Lookup(e.Month, loc),
			"Weekday":  tr.Lookup(e.Molad.Weekday.String(), loc),
			"Hour":     e.Molad.Hour,
			"Minutes":  e.Molad.Minutes,
			"Chalakim": e.Molad.Chalakim,
		})

	case KindParsha:
		names := make([]string, len(e.Parsha))
		for i, n := range e.Parsha {
			names[i] = tr.Lookup(n, loc)
		}
		return typographic(tr.Lookup("Parashat", loc) + " " + strings.Join(names, "-"))

	case KindDafYomi:
		if brief {
			return fmt.Sprintf("%s %d", tr.Lookup(e.Tractate, loc), e.Page)
		}
		return tr.Format(locale.KeyDafYomi, loc, map[string]any{
			"Tractate": tr.Lookup(e.Tractate, loc),
			"Page":     e.Page,
		})

	case KindHebrewDate:
		return renderHebrewDate(tr, e.Date, loc)
	}

	return typographic(translateDesc(tr, e.Desc, loc))
}

func (e *Event) formattedTime(tr Translator, loc string) string {
	cc := ""
	if e.Location != nil {
		cc = e.Location.CountryCode
	}
	return tr.FormatTime(e.Time, loc, cc)
}

// translateDesc translates a holiday description, composing postponed
// fasts from their base name.
func translateDesc(tr Translator, desc, loc string) string {
	if base, ok := strings.CutSuffix(desc, config.ObservedSuffix); ok {
		return tr.Lookup(base, loc) + " (" + tr.Lookup("observed", loc) + ")"
	}
	return tr.Lookup(desc, loc)
}

func typographic(s string) string {
	return strings.ReplaceAll(s, "'", "’")
}

func isHebrew(loc string) bool {
	return strings.HasPrefix(strings.ToLower(loc), "he")
}

func yearString(year int, loc string) string {
	if isHebrew(loc) {
		return locale.Gematriya(year)
	}
	return fmt.Sprintf("%d", year)
}

func renderHebrewDate(tr Translator, hd hdate.HDate, loc string) string {
	month := hd.MonthName()
	data := map[string]any{
		"Day":     hd.Day(),
		"Ordinal": locale.Ordinal(hd.Day()),
		"Month":   tr.Lookup(month, loc),
		"Year":    hd.Year(),
	}
	if isHebrew(loc) {
		data["Day"] = locale.Gematriya(hd.Day())
		data["Year"] = locale.Gematriya(hd.Year())
	}
	return typographic(tr.Format(locale.KeyHebrewDate, loc, data))
}
