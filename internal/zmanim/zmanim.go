// Package zmanim computes solar times (sunrise, sunset, twilight at a given
// solar depression angle) for a location and calendar date. The NOAA solar
// position model comes from hebcal-go; this package adds the elevation
// adjustment and reports absent events explicitly.
package zmanim

import (
	"math"
	"time"

	hz "github.com/hebcal/hebcal-go/zmanim"

	"github.com/tartampluch/go-luach/internal/location"
)

const (
	// officialDepression accounts for refraction (34') and the solar radius
	// (16').
	officialDepression = 0.833
	// civilTwilightDeg is the depression of civil dawn and dusk.
	civilTwilightDeg = 6.0
	// AlotHaShacharDeg is the depression used for dawn when fasts begin.
	AlotHaShacharDeg = 16.1

	earthRadiusKm = 6356.9
)

// Zmanim answers solar-time questions for a single date at one location.
// A zero time and false are returned when the event does not occur, as at
// high latitudes in summer or winter.
type Zmanim struct {
	loc          *location.Location
	calc         hz.Zmanim
	useElevation bool
}

// New returns a calculator for the calendar date of date (in date's own
// location) at loc.
func New(loc *location.Location, date time.Time, useElevation bool) Zmanim {
	hl := hz.NewLocation(loc.Name, loc.CountryCode, loc.Latitude, loc.Longitude, loc.TZID)
	y, m, d := date.Date()
	day := time.Date(y, m, d, 12, 0, 0, 0, loc.TimeZone())
	return Zmanim{loc: loc, calc: hz.New(&hl, day), useElevation: useElevation}
}

// Sunrise is upper-limb sunrise, adjusted for elevation when enabled.
func (z Zmanim) Sunrise() (time.Time, bool) {
	if adj := z.elevationAdjustment(); adj > 0 {
		return z.TimeAtAngle(officialDepression+adj, true)
	}
	return z.SeaLevelSunrise()
}

// Sunset is upper-limb sunset, adjusted for elevation when enabled.
func (z Zmanim) Sunset() (time.Time, bool) {
	if adj := z.elevationAdjustment(); adj > 0 {
		return z.TimeAtAngle(officialDepression+adj, false)
	}
	return z.SeaLevelSunset()
}

// SeaLevelSunrise ignores elevation.
func (z Zmanim) SeaLevelSunrise() (time.Time, bool) {
	return z.local(z.calc.Sunrise())
}

// SeaLevelSunset ignores elevation.
func (z Zmanim) SeaLevelSunset() (time.Time, bool) {
	return z.local(z.calc.Sunset())
}

// Dawn is civil dawn (sun 6° below the horizon).
func (z Zmanim) Dawn() (time.Time, bool) {
	return z.TimeAtAngle(civilTwilightDeg, true)
}

// Dusk is civil dusk (sun 6° below the horizon).
func (z Zmanim) Dusk() (time.Time, bool) {
	return z.TimeAtAngle(civilTwilightDeg, false)
}

// AlotHaShachar is dawn at 16.1° below the horizon.
func (z Zmanim) AlotHaShachar() (time.Time, bool) {
	return z.TimeAtAngle(AlotHaShacharDeg, true)
}

// Tzeit is nightfall: the time the sun reaches angle degrees below the
// horizon in the evening.
func (z Zmanim) Tzeit(angle float64) (time.Time, bool) {
	return z.TimeAtAngle(angle, false)
}

// TimeAtAngle returns when the sun is angle degrees below the horizon, in
// the morning when rising is true and in the evening otherwise.
func (z Zmanim) TimeAtAngle(angle float64, rising bool) (time.Time, bool) {
	return z.local(z.calc.TimeAtAngle(angle, rising))
}

// SolarNoon is halfway between sea-level sunrise and sunset.
func (z Zmanim) SolarNoon() (time.Time, bool) {
	rise, ok := z.SeaLevelSunrise()
	if !ok {
		return time.Time{}, false
	}
	set, ok := z.SeaLevelSunset()
	if !ok {
		return time.Time{}, false
	}
	return rise.Add(set.Sub(rise) / 2), true
}

// SunsetOffset returns sunset shifted by offset minutes (negative is before
// sunset). When round is true the result is rounded to the nearest minute.
func (z Zmanim) SunsetOffset(offset float64, round bool) (time.Time, bool) {
	sunset, ok := z.Sunset()
	if !ok {
		return time.Time{}, false
	}
	t := sunset.Add(time.Duration(offset * float64(time.Minute)))
	if round {
		t = RoundToMinute(t)
	}
	return t, true
}

// RoundToMinute rounds t to the nearest minute, halves rounding up.
func RoundToMinute(t time.Time) time.Time {
	return t.Add(30 * time.Second).Truncate(time.Minute)
}

// local reports a missing event (the sun never reaches the angle) as false.
func (z Zmanim) local(t time.Time) (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}
	return t.In(z.loc.TimeZone()), true
}

func (z Zmanim) elevationAdjustment() float64 {
	if !z.useElevation || z.loc.Elevation <= 0 {
		return 0
	}
	h := z.loc.Elevation / 1000
	return math.Acos(earthRadiusKm/(earthRadiusKm+h)) * 180 / math.Pi
}
