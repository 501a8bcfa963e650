package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/location"
)

var (
	// ErrHavdalahConflict is returned when both Havdalah minutes and
	// degrees are given.
	ErrHavdalahConflict = errors.New("havdalah minutes and degrees are mutually exclusive")
	// ErrInvalidRange is returned for unusable year, month or start/end
	// selections.
	ErrInvalidRange = errors.New("invalid calendar range")
	// ErrNoLocation is returned when times are requested without a location.
	ErrNoLocation = errors.New("candle lighting requires a location")
	// ErrNoPortionLookup is returned when weekly portions are requested but
	// the generator has no PortionLookup.
	ErrNoPortionLookup = errors.New("weekly portions require a portion lookup")
)

// CalOptions selects the range, region and event families of a calendar.
// The zero value produces the current Gregorian year's holidays for the
// Diaspora.
type CalOptions struct {
	Location *location.Location
	IL       bool

	// Year is Gregorian unless IsHebrewYear is set; 0 means the current
	// year. Month restricts the range to one month of that year.
	Year         int `validate:"min=0,max=32658"`
	IsHebrewYear bool
	Month        int `validate:"min=0,max=13"`
	NumYears     int `validate:"min=0,max=100"`
	// Start and End, when both set, take precedence over Year.
	Start time.Time
	End   time.Time

	CandleLighting bool
	// CandleLightingMins defaults to 18, or 40 in Jerusalem.
	CandleLightingMins *int `validate:"omitempty,min=0,max=120"`
	// HavdalahMins and HavdalahDeg are mutually exclusive; an explicit 0 in
	// either suppresses Havdalah.
	HavdalahMins *int     `validate:"omitempty,min=0,max=180,excluded_with=HavdalahDeg"`
	HavdalahDeg  *float64 `validate:"omitempty,min=0,max=18"`
	// FastEndDeg defaults to 7.083.
	FastEndDeg   float64 `validate:"min=0,max=18"`
	UseElevation bool

	// Locale is used for pre-formatted clock times.
	Locale string

	NoHolidays       bool
	NoRoshChodesh    bool
	NoModern         bool
	NoMinorFast      bool
	NoSpecialShabbat bool

	Sedrot                  bool
	Omer                    bool
	Molad                   bool
	DailyLearning           bool
	YomKippurKatan          bool
	ShabbatMevarchim        bool
	AddHebrewDates          bool
	AddHebrewDatesForEvents bool
}

// Validate reports option errors before any day is processed.
func (o *CalOptions) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "excluded_with" {
					return fmt.Errorf("%s: %w", config.ErrOptionsInvalid, ErrHavdalahConflict)
				}
			}
		}
		return fmt.Errorf("%s: %w", config.ErrOptionsInvalid, err)
	}

	if o.CandleLighting && o.Location == nil {
		return fmt.Errorf("%s: %w", config.ErrOptionsInvalid, ErrNoLocation)
	}

	hasStart, hasEnd := !o.Start.IsZero(), !o.End.IsZero()
	switch {
	case hasStart != hasEnd:
		return fmt.Errorf("%w: start and end must be given together", ErrInvalidRange)
	case hasStart && o.End.Before(o.Start):
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidRange,
			o.End.Format(config.DateFormatISO), o.Start.Format(config.DateFormatISO))
	case hasStart:
		return nil
	}

	years := max(o.NumYears, 1)
	if o.IsHebrewYear {
		if o.Year != 0 && o.Year+years-1 > config.MaxHebrewYear {
			return fmt.Errorf("%w: hebrew year %d", ErrInvalidRange, o.Year)
		}
		if o.Month != 0 && o.Year != 0 && o.Month > hdate.MonthsInYear(o.Year) {
			return fmt.Errorf("%w: month %d of hebrew year %d", ErrInvalidRange, o.Month, o.Year)
		}
		return nil
	}
	if o.Year+years-1 > config.MaxGregorianYear {
		return fmt.Errorf("%w: gregorian year %d", ErrInvalidRange, o.Year)
	}
	if o.Month > 12 {
		return fmt.Errorf("%w: gregorian month %d", ErrInvalidRange, o.Month)
	}
	return nil
}

// Mask reduces the options to the event flags they admit. The order of the
// steps matters: suppressions apply to the defaults and candle flags, but
// the optional families added last are never suppressed.
func (o *CalOptions) Mask() event.Flags {
	var mask event.Flags
	if !o.NoHolidays {
		mask |= event.RoshChodesh | event.YomTovEnds | event.MinorFast |
			event.SpecialShabbat | event.ModernHoliday | event.MajorFast |
			event.MinorHoliday | event.Erev | event.CholHamoed |
			event.LightCandles | event.LightCandlesTzeis | event.ChanukahCandles
	}
	if o.CandleLighting {
		mask |= event.LightCandles | event.LightCandlesTzeis | event.YomTovEnds
	}

	if o.NoRoshChodesh {
		mask &^= event.RoshChodesh
	}
	if o.NoModern {
		mask &^= event.ModernHoliday
	}
	if o.NoMinorFast {
		mask &^= event.MinorFast
	}
	if o.NoSpecialShabbat {
		mask &^= event.SpecialShabbat | event.ShabbatMevarchim
	}

	if o.IL {
		mask |= event.ILOnly
	} else {
		mask |= event.ChulOnly
	}

	if o.Sedrot {
		mask |= event.ParshaHashavua
	}
	if o.DailyLearning {
		mask |= event.DafYomi
	}
	if o.Omer {
		mask |= event.OmerCount
	}
	if o.ShabbatMevarchim {
		mask |= event.ShabbatMevarchim
	}
	if o.Molad {
		mask |= event.Molad
	}
	if o.YomKippurKatan {
		mask |= event.YomKippurKatan
	}
	return mask
}

// candleLightingMins resolves the default offset for the location.
func (o *CalOptions) candleLightingMins() int {
	if o.CandleLightingMins != nil {
		return *o.CandleLightingMins
	}
	if o.Location != nil && o.Location.IsJerusalem() {
		return config.JerusalemCandleLightingMins
	}
	return config.DefaultCandleLightingMins
}

// OptionsFromSettings maps loaded settings to calendar options, resolving
// the configured city.
func OptionsFromSettings(s *config.Settings) (CalOptions, error) {
	o := CalOptions{
		IL:               s.Calendar.Israel,
		Year:             s.Calendar.Year,
		IsHebrewYear:     s.Calendar.HebrewYear,
		Month:            s.Calendar.Month,
		NumYears:         s.Calendar.Years,
		Locale:           s.Calendar.Locale,
		CandleLighting:   s.Candles.Enabled,
		HavdalahMins:     s.Candles.HavdalahMinutes,
		HavdalahDeg:      s.Candles.HavdalahDegrees,
		FastEndDeg:       s.Candles.FastEndDegrees,
		UseElevation:     s.Candles.UseElevation,
		NoHolidays:       s.Suppress.Holidays,
		NoRoshChodesh:    s.Suppress.RoshChodesh,
		NoModern:         s.Suppress.Modern,
		NoMinorFast:      s.Suppress.MinorFast,
		NoSpecialShabbat: s.Suppress.SpecialShabbat,
		Omer:             s.Extras.Omer,
		Sedrot:           s.Extras.Sedrot,
		Molad:            s.Extras.Molad,
		DailyLearning:    s.Extras.DafYomi,
		YomKippurKatan:   s.Extras.YomKippurKatan,
		ShabbatMevarchim: s.Extras.ShabbatMevarchim,
		AddHebrewDates:   s.Extras.HebrewDates,
	}
	// An offset equal to the default counts as unset; Jerusalem keeps 40.
	if s.Candles.Minutes != config.DefaultCandleLightingMins {
		mins := s.Candles.Minutes
		o.CandleLightingMins = &mins
	}

	if s.Calendar.City != "" {
		loc, err := location.Lookup(s.Calendar.City)
		if err != nil {
			return CalOptions{}, fmt.Errorf("%s: %w", config.ErrCityLookup, err)
		}
		o.Location = loc
		if !s.Calendar.Israel && loc.InIsrael() {
			o.IL = true
		}
	}
	return o, nil
}
