// Package hdate is the Hebrew calendar used by the holiday engine. The
// calendar arithmetic comes from hebcal-go; this package fixes the
// argument order, month spellings and Rata Die helpers the engine relies
// on (R.D. 1 is Monday, 1 January 1 CE in the proleptic Gregorian calendar).
package hdate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	hc "github.com/hebcal/hdate"
)

// HMonth is a Hebrew month. Months are numbered from Nisan, so Tishrei (the
// first month of the civil year) is 7 and Adar II is 13.
type HMonth int

const (
	Nisan HMonth = iota + 1
	Iyyar
	Sivan
	Tamuz
	Av
	Elul
	Tishrei
	Cheshvan
	Kislev
	Tevet
	Shvat
	Adar1
	Adar2
)

// Adar is Adar in a common year.
const Adar = Adar1

const (
	// absUnixEpoch is the absolute day number of 1970-01-01.
	absUnixEpoch  int64 = 719163
	secondsPerDay       = 86400
)

// ErrInvalidDate is returned for unparseable or out-of-range date input.
var ErrInvalidDate = errors.New("invalid Hebrew date")

var monthNames = [...]string{
	"", "Nisan", "Iyyar", "Sivan", "Tamuz", "Av", "Elul", "Tishrei",
	"Cheshvan", "Kislev", "Tevet", "Sh'vat", "Adar", "Adar II",
}

// HDate is an immutable Hebrew calendar date.
type HDate struct {
	year  int
	month HMonth
	day   int
	abs   int64
}

// New returns the Hebrew date for day, month and year. Days beyond the end
// of the month roll over into the following month(s), so 32 Kislev is
// normalized to 2 or 3 Tevet. Adar II in a common year is treated as Adar.
func New(day int, month HMonth, year int) HDate {
	if month == Adar2 && !IsLeapYear(year) {
		month = Adar1
	}
	first := hc.New(year, hc.HMonth(month), 1)
	return FromAbs(first.Abs() + int64(day-1))
}

// FromAbs returns the Hebrew date for an absolute day number.
func FromAbs(abs int64) HDate {
	h := hc.FromRD(abs)
	return HDate{year: h.Year(), month: HMonth(h.Month()), day: h.Day(), abs: abs}
}

// Hebcal returns hd as a hebcal-go date, for the schedules computed by that
// library.
func (hd HDate) Hebcal() hc.HDate { return hc.FromRD(hd.abs) }

// FromTime returns the Hebrew date corresponding to the calendar date of t
// (its year, month and day in t's own location).
func FromTime(t time.Time) HDate {
	return FromAbs(GregToAbs(t))
}

// Year returns the Hebrew year.
func (hd HDate) Year() int { return hd.year }

// Month returns the Hebrew month.
func (hd HDate) Month() HMonth { return hd.month }

// Day returns the day of the month (1-30).
func (hd HDate) Day() int { return hd.day }

// Abs returns the absolute day number.
func (hd HDate) Abs() int64 { return hd.abs }

// IsZero reports whether hd is the zero value.
func (hd HDate) IsZero() bool { return hd.year == 0 }

// Weekday returns the day of the week.
func (hd HDate) Weekday() time.Weekday { return Weekday(hd.abs) }

// Time returns midnight UTC of the corresponding Gregorian date.
func (hd HDate) Time() time.Time { return AbsToGreg(hd.abs) }

// MonthName returns the English transliterated name of the month.
func (hd HDate) MonthName() string { return MonthName(hd.month, hd.year) }

// Next returns the following day.
func (hd HDate) Next() HDate { return FromAbs(hd.abs + 1) }

// Prev returns the preceding day.
func (hd HDate) Prev() HDate { return FromAbs(hd.abs - 1) }

// Add returns the date n days after hd (n may be negative).
func (hd HDate) Add(n int) HDate { return FromAbs(hd.abs + int64(n)) }

// OnOrBefore returns the latest date with weekday wd that is not after hd.
func (hd HDate) OnOrBefore(wd time.Weekday) HDate { return FromAbs(DayOnOrBefore(wd, hd.abs)) }

// OnOrAfter returns the earliest date with weekday wd that is not before hd.
func (hd HDate) OnOrAfter(wd time.Weekday) HDate { return FromAbs(DayOnOrBefore(wd, hd.abs+6)) }

// Before returns the latest date with weekday wd strictly before hd.
func (hd HDate) Before(wd time.Weekday) HDate { return FromAbs(DayOnOrBefore(wd, hd.abs-1)) }

// After returns the earliest date with weekday wd strictly after hd.
func (hd HDate) After(wd time.Weekday) HDate { return FromAbs(DayOnOrBefore(wd, hd.abs+7)) }

// Equal reports whether two dates denote the same day.
func (hd HDate) Equal(other HDate) bool { return hd.abs == other.abs }

// String renders the date as "15 Nisan 5785". The rendering is stable and
// is used as the key of per-year holiday maps.
func (hd HDate) String() string {
	return fmt.Sprintf("%d %s %d", hd.day, hd.MonthName(), hd.year)
}

// Weekday returns the day of the week of an absolute day number.
func Weekday(abs int64) time.Weekday {
	return time.Weekday(floorMod(abs, 7))
}

// DayOnOrBefore returns the absolute day number of the latest day with
// weekday wd on or before abs.
func DayOnOrBefore(wd time.Weekday, abs int64) int64 {
	return hc.DayOnOrBefore(wd, abs)
}

// IsLeapYear reports whether year has 13 months.
func IsLeapYear(year int) bool { return hc.IsLeapYear(year) }

// MonthsInYear returns 12 or 13.
func MonthsInYear(year int) int { return hc.MonthsInYear(year) }

// DaysInYear returns the number of days in the Hebrew year.
func DaysInYear(year int) int { return hc.DaysInYear(year) }

// LongCheshvan reports whether Cheshvan has 30 days in year.
func LongCheshvan(year int) bool { return hc.LongCheshvan(year) }

// ShortKislev reports whether Kislev has 29 days in year.
func ShortKislev(year int) bool { return hc.ShortKislev(year) }

// DaysInMonth returns the length of month in year.
func DaysInMonth(month HMonth, year int) int {
	return hc.DaysInMonth(hc.HMonth(month), year)
}

// MonthName returns the month's name in year ("Adar" in a common year,
// "Adar I"/"Adar II" in a leap year).
func MonthName(month HMonth, year int) string {
	if month < Nisan || month > Adar2 {
		return ""
	}
	if month == Adar1 && IsLeapYear(year) {
		return "Adar I"
	}
	return monthNames[month]
}

// MonthFromName parses a month name. It accepts the names returned by
// MonthName plus common alternate spellings, case-insensitively.
func MonthFromName(name string) (HMonth, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nisan", "nissan":
		return Nisan, nil
	case "iyyar", "iyar":
		return Iyyar, nil
	case "sivan":
		return Sivan, nil
	case "tamuz", "tammuz":
		return Tamuz, nil
	case "av":
		return Av, nil
	case "elul":
		return Elul, nil
	case "tishrei", "tishri":
		return Tishrei, nil
	case "cheshvan", "heshvan", "marcheshvan":
		return Cheshvan, nil
	case "kislev":
		return Kislev, nil
	case "tevet", "teves":
		return Tevet, nil
	case "sh'vat", "shvat", "shevat":
		return Shvat, nil
	case "adar", "adar i", "adar 1", "adar1":
		return Adar1, nil
	case "adar ii", "adar 2", "adar2":
		return Adar2, nil
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, name)
}

// GregToAbs returns the absolute day number of t's calendar date.
func GregToAbs(t time.Time) int64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.Unix()/secondsPerDay + absUnixEpoch
}

// AbsToGreg returns midnight UTC of the Gregorian date for abs.
func AbsToGreg(abs int64) time.Time {
	return time.Unix((abs-absUnixEpoch)*secondsPerDay, 0).UTC()
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
