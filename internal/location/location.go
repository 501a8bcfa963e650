// Package location holds geographic locations used for solar time
// calculations and a small embedded table of well-known cities.
package location

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesYAML []byte

// ErrUnknownCity is returned by Lookup for names not in the city table.
var ErrUnknownCity = errors.New("unknown city")

// Location is a point on Earth together with its civil time zone.
type Location struct {
	Name        string  `yaml:"name" json:"name"`
	CountryCode string  `yaml:"country" json:"country"`
	Latitude    float64 `yaml:"latitude" json:"latitude"`
	Longitude   float64 `yaml:"longitude" json:"longitude"`
	// Elevation in meters; only used when elevation-aware sunrise/sunset
	// is requested.
	Elevation float64 `yaml:"elevation" json:"elevation"`
	TZID      string  `yaml:"tzid" json:"tzid"`

	tz *time.Location
}

// New builds a location and resolves its IANA time zone.
func New(name, countryCode string, lat, lon, elevation float64, tzid string) (*Location, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("longitude %f out of range", lon)
	}
	loc := &Location{
		Name:        name,
		CountryCode: countryCode,
		Latitude:    lat,
		Longitude:   lon,
		Elevation:   elevation,
		TZID:        tzid,
	}
	if err := loc.resolve(); err != nil {
		return nil, err
	}
	return loc, nil
}

// TimeZone returns the resolved time zone, falling back to UTC.
func (l *Location) TimeZone() *time.Location {
	if l.tz == nil {
		return time.UTC
	}
	return l.tz
}

// InIsrael reports whether the location observes the Israeli holiday schedule.
func (l *Location) InIsrael() bool {
	return l.CountryCode == "IL"
}

// IsJerusalem reports whether the location is Jerusalem, where candles are
// customarily lit 40 minutes before sunset.
func (l *Location) IsJerusalem() bool {
	return l.CountryCode == "IL" && strings.EqualFold(l.Name, "Jerusalem")
}

func (l *Location) resolve() error {
	if l.TZID == "" {
		l.tz = time.UTC
		return nil
	}
	tz, err := time.LoadLocation(l.TZID)
	if err != nil {
		return fmt.Errorf("time zone %q: %w", l.TZID, err)
	}
	l.tz = tz
	return nil
}

var (
	citiesOnce sync.Once
	cities     map[string]Location
	citiesErr  error
)

func loadCities() {
	var list []Location
	if err := yaml.Unmarshal(citiesYAML, &list); err != nil {
		citiesErr = fmt.Errorf("parse city table: %w", err)
		return
	}
	cities = make(map[string]Location, len(list))
	for _, c := range list {
		cities[strings.ToLower(c.Name)] = c
	}
}

// Lookup returns a copy of the named city, matched case-insensitively.
func Lookup(name string) (*Location, error) {
	citiesOnce.Do(loadCities)
	if citiesErr != nil {
		return nil, citiesErr
	}
	c, ok := cities[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, name)
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Names lists the cities in the embedded table.
func Names() []string {
	citiesOnce.Do(loadCities)
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	return names
}
