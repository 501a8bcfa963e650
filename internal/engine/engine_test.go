package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
	"github.com/tartampluch/go-luach/internal/holidays"
	"github.com/tartampluch/go-luach/internal/location"
	"github.com/tartampluch/go-luach/internal/zmanim"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls "now" for deterministic testing.
type MockClock struct {
	mock.Mock
}

func (m *MockClock) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}

// MockPortions simulates the weekly-portion collaborator.
type MockPortions struct {
	mock.Mock
}

func (m *MockPortions) Portion(hd hdate.HDate, il bool) ([]string, bool) {
	args := m.Called(hd, il)
	names, _ := args.Get(0).([]string)
	return names, args.Bool(1)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func city(t *testing.T, name string) *location.Location {
	t.Helper()
	loc, err := location.Lookup(name)
	require.NoError(t, err)
	return loc
}

func newGen() *engine.Generator {
	clock := &MockClock{}
	clock.On("Now").Return(day(2025, time.June, 15))
	return engine.NewGenerator(clock, nil)
}

func calendar(t *testing.T, opts engine.CalOptions) []*event.Event {
	t.Helper()
	evs, err := newGen().Calendar(opts)
	require.NoError(t, err)
	return evs
}

// on returns the events dated on the Gregorian day d.
func on(evs []*event.Event, d time.Time) []*event.Event {
	var out []*event.Event
	for _, ev := range evs {
		if ev.Date.Time().Equal(d) {
			out = append(out, ev)
		}
	}
	return out
}

func ofKind(evs []*event.Event, k event.Kind) []*event.Event {
	var out []*event.Event
	for _, ev := range evs {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}

func sunsetOffset(t *testing.T, loc *location.Location, d time.Time, mins float64) time.Time {
	t.Helper()
	tm, ok := zmanim.New(loc, d, false).SunsetOffset(mins, true)
	require.True(t, ok)
	return tm
}

func tzeit(t *testing.T, loc *location.Location, d time.Time, deg float64) time.Time {
	t.Helper()
	tm, ok := zmanim.New(loc, d, false).Tzeit(deg)
	require.True(t, ok)
	return zmanim.RoundToMinute(tm)
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func descs(evs []*event.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Desc
	}
	return out
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

func TestMask(t *testing.T) {
	def := (&engine.CalOptions{}).Mask()
	assert.True(t, def.Any(event.ChulOnly))
	assert.False(t, def.Any(event.ILOnly))
	assert.True(t, def.Has(event.RoshChodesh|event.MinorFast|event.MajorFast|event.Erev|event.ChanukahCandles))
	assert.False(t, def.Any(event.YomKippurKatan|event.OmerCount|event.DafYomi|event.ShabbatMevarchim))

	il := (&engine.CalOptions{IL: true}).Mask()
	assert.True(t, il.Any(event.ILOnly))
	assert.False(t, il.Any(event.ChulOnly))

	none := (&engine.CalOptions{NoHolidays: true}).Mask()
	assert.False(t, none.Any(event.RoshChodesh|event.MinorHoliday|event.LightCandles))

	candles := (&engine.CalOptions{NoHolidays: true, CandleLighting: true}).Mask()
	assert.True(t, candles.Has(event.LightCandles|event.LightCandlesTzeis|event.YomTovEnds))

	suppressed := (&engine.CalOptions{NoRoshChodesh: true, NoModern: true, NoMinorFast: true, NoSpecialShabbat: true}).Mask()
	assert.False(t, suppressed.Any(event.RoshChodesh|event.ModernHoliday|event.MinorFast|event.SpecialShabbat))

	// Optional families are added after suppression.
	mevarchim := (&engine.CalOptions{NoSpecialShabbat: true, ShabbatMevarchim: true}).Mask()
	assert.True(t, mevarchim.Any(event.ShabbatMevarchim))
	assert.False(t, mevarchim.Any(event.SpecialShabbat))

	extras := (&engine.CalOptions{Sedrot: true, DailyLearning: true, Omer: true, Molad: true, YomKippurKatan: true}).Mask()
	assert.True(t, extras.Has(event.ParshaHashavua|event.DafYomi|event.OmerCount|event.Molad|event.YomKippurKatan))
}

func TestValidate(t *testing.T) {
	ny := &location.Location{Name: "Test", CountryCode: "US", TZID: "UTC"}
	tests := []struct {
		name string
		opts engine.CalOptions
		want error
	}{
		{"Havdalah minutes and degrees", engine.CalOptions{HavdalahMins: intPtr(50), HavdalahDeg: floatPtr(8.5)}, engine.ErrHavdalahConflict},
		{"Candles without location", engine.CalOptions{CandleLighting: true}, engine.ErrNoLocation},
		{"Start without end", engine.CalOptions{Start: day(2024, time.January, 1)}, engine.ErrInvalidRange},
		{"End before start", engine.CalOptions{Start: day(2024, time.February, 1), End: day(2024, time.January, 1)}, engine.ErrInvalidRange},
		{"Gregorian month 13", engine.CalOptions{Year: 2024, Month: 13}, engine.ErrInvalidRange},
		{"Gregorian year too late", engine.CalOptions{Year: 9999, NumYears: 2}, engine.ErrInvalidRange},
		{"Hebrew year too late", engine.CalOptions{Year: 32658, IsHebrewYear: true, NumYears: 2}, engine.ErrInvalidRange},
		{"Adar II in a common year", engine.CalOptions{Year: 5785, IsHebrewYear: true, Month: 13}, engine.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			assert.ErrorIs(t, err, tt.want)
		})
	}

	ok := engine.CalOptions{CandleLighting: true, Location: ny, HavdalahMins: intPtr(0)}
	assert.NoError(t, ok.Validate())

	negative := engine.CalOptions{NumYears: -1}
	assert.Error(t, negative.Validate())
}

func TestCalendar_ValidatesBeforeProcessing(t *testing.T) {
	clock := &MockClock{}
	gen := engine.NewGenerator(clock, nil)

	_, err := gen.Calendar(engine.CalOptions{HavdalahMins: intPtr(42), HavdalahDeg: floatPtr(7)})
	assert.ErrorIs(t, err, engine.ErrHavdalahConflict)

	_, err = gen.Calendar(engine.CalOptions{Sedrot: true})
	assert.ErrorIs(t, err, engine.ErrNoPortionLookup)

	clock.AssertNotCalled(t, "Now")
}

func TestOptionsFromSettings(t *testing.T) {
	s := &config.Settings{}
	s.Calendar.City = "Jerusalem"
	s.Calendar.Years = 1
	s.Candles.Enabled = true
	s.Candles.Minutes = config.DefaultCandleLightingMins
	s.Extras.Omer = true

	opts, err := engine.OptionsFromSettings(s)
	require.NoError(t, err)
	assert.True(t, opts.IL, "Israeli city implies the Israeli schedule")
	assert.Nil(t, opts.CandleLightingMins)
	assert.True(t, opts.CandleLighting)
	assert.True(t, opts.Omer)
	require.NotNil(t, opts.Location)
	assert.Equal(t, "Jerusalem", opts.Location.Name)

	s.Calendar.City = "London"
	s.Candles.Minutes = 15
	opts, err = engine.OptionsFromSettings(s)
	require.NoError(t, err)
	assert.False(t, opts.IL)
	require.NotNil(t, opts.CandleLightingMins)
	assert.Equal(t, 15, *opts.CandleLightingMins)

	s.Calendar.City = "Atlantis"
	_, err = engine.OptionsFromSettings(s)
	assert.ErrorIs(t, err, location.ErrUnknownCity)
}

// -----------------------------------------------------------------------------
// Ranges and filtering
// -----------------------------------------------------------------------------

func TestCalendar_HebrewYearMatchesEngine(t *testing.T) {
	for _, il := range []bool{false, true} {
		evs := calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, IL: il})

		ym, err := holidays.ForYear(5785)
		require.NoError(t, err)
		var want []*event.Event
		for _, ev := range ym.EventsIn(il) {
			if ev.Kind != event.KindYomKippurKatan {
				want = append(want, ev)
			}
		}
		require.Equal(t, descs(want), descs(evs))
		for i := range want {
			assert.True(t, want[i].Date.Equal(evs[i].Date))
		}
	}
}

func TestCalendar_DefaultsToCurrentYear(t *testing.T) {
	clock := &MockClock{}
	clock.On("Now").Return(day(2025, time.June, 15))
	gen := engine.NewGenerator(clock, nil)

	evs, err := gen.Calendar(engine.CalOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, evs)
	for _, ev := range evs {
		assert.Equal(t, 2025, ev.Date.Time().Year(), ev.Desc)
	}
	clock.AssertCalled(t, "Now")
}

func TestCalendar_GregorianMonth(t *testing.T) {
	evs := calendar(t, engine.CalOptions{Year: 2024, Month: 10})
	require.NotEmpty(t, evs)
	for _, ev := range evs {
		assert.Equal(t, time.October, ev.Date.Time().Month())
	}
	assert.Contains(t, descs(evs), "Rosh Hashana 5785")
	assert.Contains(t, descs(evs), "Yom Kippur")
}

func TestCalendar_HebrewMonth(t *testing.T) {
	evs := calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, Month: int(hdate.Kislev)})
	for _, ev := range evs {
		assert.Equal(t, hdate.Kislev, ev.Date.Month())
	}
	assert.Contains(t, descs(evs), "Chanukah: 1 Candle")
	assert.NotContains(t, descs(evs), "Chanukah: 8th Day")
}

func TestCalendar_StartEnd(t *testing.T) {
	evs := calendar(t, engine.CalOptions{Start: day(2025, time.March, 13), End: day(2025, time.March, 14)})
	assert.Equal(t, []string{"Erev Purim", "Ta'anit Esther", "Purim"}, descs(evs))
}

func TestCalendar_Suppression(t *testing.T) {
	opts := engine.CalOptions{Year: 5785, IsHebrewYear: true, IL: true, NoRoshChodesh: true, NoModern: true, NoMinorFast: true, NoSpecialShabbat: true}
	for _, ev := range calendar(t, opts) {
		assert.False(t, ev.Flags.Any(event.RoshChodesh|event.ModernHoliday|event.MinorFast|event.SpecialShabbat), ev.Desc)
	}

	assert.Empty(t, calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, NoHolidays: true}))
}

func TestCalendar_YomKippurKatan(t *testing.T) {
	evs := calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, YomKippurKatan: true})
	assert.Len(t, ofKind(evs, event.KindYomKippurKatan), 8)

	only := calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, NoHolidays: true, YomKippurKatan: true})
	assert.Len(t, only, 8)
	for _, ev := range only {
		assert.Equal(t, event.KindYomKippurKatan, ev.Kind)
	}
}

// -----------------------------------------------------------------------------
// Extras
// -----------------------------------------------------------------------------

func TestCalendar_Omer(t *testing.T) {
	evs := ofKind(calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, Omer: true}), event.KindOmer)
	require.Len(t, evs, config.OmerDays)
	assert.Equal(t, 1, evs[0].OmerDay)
	assert.True(t, evs[0].Date.Equal(hdate.New(16, hdate.Nisan, 5785)))
	assert.Equal(t, 49, evs[48].OmerDay)
	assert.True(t, evs[48].Date.Equal(hdate.New(5, hdate.Sivan, 5785)))
}

func TestCalendar_MevarchimAndMolad(t *testing.T) {
	evs := calendar(t, engine.CalOptions{Year: 5785, IsHebrewYear: true, ShabbatMevarchim: true, Molad: true, NoSpecialShabbat: true})

	mev := ofKind(evs, event.KindMevarchimChodesh)
	molad := ofKind(evs, event.KindMolad)
	assert.Len(t, mev, 11)
	assert.Len(t, molad, 11)
	for _, ev := range mev {
		assert.Equal(t, time.Saturday, ev.Date.Weekday())
		assert.GreaterOrEqual(t, ev.Date.Day(), 23)
		assert.NotEqual(t, "Tishrei", ev.Month)
		assert.True(t, strings.HasPrefix(ev.Memo, "Molad "+ev.Month), ev.Memo)
	}
	for _, ev := range evs {
		assert.False(t, ev.Flags.Any(event.SpecialShabbat), ev.Desc)
	}
}

func TestCalendar_Sedrot(t *testing.T) {
	portions := &MockPortions{}
	portions.On("Portion", mock.Anything, false).Return([]string{"Bereshit"}, true)
	clock := &MockClock{}
	gen := engine.NewGenerator(clock, portions)

	evs, err := gen.Calendar(engine.CalOptions{Start: day(2024, time.October, 1), End: day(2024, time.October, 31), Sedrot: true})
	require.NoError(t, err)

	parsha := ofKind(evs, event.KindParsha)
	assert.Len(t, parsha, 4)
	for _, ev := range parsha {
		assert.Equal(t, time.Saturday, ev.Date.Weekday())
		assert.Equal(t, "Parashat Bereshit", ev.Desc)
	}
	portions.AssertNumberOfCalls(t, "Portion", 4)
}

// TestCalendar_SedrotAfterHolidays lists the weekly portion after the
// day's holidays.
func TestCalendar_SedrotAfterHolidays(t *testing.T) {
	shirah := day(2025, time.February, 8)
	portions := &MockPortions{}
	portions.On("Portion", mock.Anything, false).Return([]string{"Beshalach"}, true)
	gen := engine.NewGenerator(&MockClock{}, portions)

	evs, err := gen.Calendar(engine.CalOptions{Start: shirah, End: shirah, Sedrot: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shabbat Shirah", "Parashat Beshalach"}, descs(evs))
}

func TestSedraPortions(t *testing.T) {
	sp := engine.NewSedraPortions()

	names, ok := sp.Portion(hdate.FromTime(day(2024, time.October, 26)), false)
	require.True(t, ok)
	assert.Equal(t, []string{"Bereshit"}, names)

	names, ok = sp.Portion(hdate.FromTime(day(2025, time.March, 22)), false)
	require.True(t, ok)
	assert.Equal(t, []string{"Vayakhel", "Pekudei"}, names)

	// Shabbat Chol HaMoed Sukkot has a festival reading.
	_, ok = sp.Portion(hdate.FromTime(day(2024, time.October, 19)), false)
	assert.False(t, ok)
}

func TestCalendar_DafYomi(t *testing.T) {
	d := day(2024, time.October, 3)
	evs := ofKind(calendar(t, engine.CalOptions{Start: d, End: d, DailyLearning: true}), event.KindDafYomi)
	require.Len(t, evs, 1)
	assert.Equal(t, "Baba Batra", evs[0].Tractate)
	assert.Equal(t, 100, evs[0].Page)

	early := day(1900, time.January, 1)
	assert.Empty(t, ofKind(calendar(t, engine.CalOptions{Start: early, End: early, DailyLearning: true}), event.KindDafYomi))
}

func TestCalendar_HebrewDates(t *testing.T) {
	rh := day(2024, time.October, 3)
	evs := calendar(t, engine.CalOptions{Start: rh, End: rh, AddHebrewDates: true})
	require.NotEmpty(t, evs)
	assert.Equal(t, event.KindHebrewDate, evs[0].Kind)
	assert.Equal(t, "1 Tishrei 5785", evs[0].Desc)

	plain := day(2024, time.November, 5)
	assert.Empty(t, calendar(t, engine.CalOptions{Start: plain, End: plain, AddHebrewDatesForEvents: true}))
	withEvents := calendar(t, engine.CalOptions{Start: rh, End: rh, AddHebrewDatesForEvents: true})
	assert.Equal(t, event.KindHebrewDate, withEvents[0].Kind)

	all := calendar(t, engine.CalOptions{Start: day(2024, time.November, 4), End: day(2024, time.November, 10), AddHebrewDates: true})
	assert.Len(t, ofKind(all, event.KindHebrewDate), 7)
}

// -----------------------------------------------------------------------------
// Candle lighting, Havdalah and fasts
// -----------------------------------------------------------------------------

func TestCalendar_CandleLighting(t *testing.T) {
	ny := city(t, "New York")
	evs := calendar(t, engine.CalOptions{
		Start:          day(2024, time.October, 1),
		End:            day(2024, time.October, 13),
		CandleLighting: true,
		Location:       ny,
	})

	// Erev Rosh Hashana, Wednesday: 18 minutes before sunset.
	erev := ofKind(on(evs, day(2024, time.October, 2)), event.KindCandleLighting)
	require.Len(t, erev, 1)
	assert.True(t, sunsetOffset(t, ny, day(2024, time.October, 2), -18).Equal(erev[0].Time))
	require.NotNil(t, erev[0].Linked)
	assert.Equal(t, "Erev Rosh Hashana", erev[0].Linked.Desc)
	assert.NotEmpty(t, erev[0].FmtTime)

	// Second-night candles after nightfall.
	rh1 := ofKind(on(evs, day(2024, time.October, 3)), event.KindCandleLighting)
	require.Len(t, rh1, 1)
	assert.True(t, tzeit(t, ny, day(2024, time.October, 3), config.DefaultHavdalahDeg).Equal(rh1[0].Time))

	// Rosh Hashana II on Friday leads into Shabbat.
	rh2 := on(evs, day(2024, time.October, 4))
	assert.Empty(t, ofKind(rh2, event.KindHavdalah))
	require.Len(t, ofKind(rh2, event.KindCandleLighting), 1)
	assert.True(t, sunsetOffset(t, ny, day(2024, time.October, 4), -18).Equal(ofKind(rh2, event.KindCandleLighting)[0].Time))

	// Shabbat Shuva ends with Havdalah.
	hav := ofKind(on(evs, day(2024, time.October, 5)), event.KindHavdalah)
	require.Len(t, hav, 1)
	assert.True(t, tzeit(t, ny, day(2024, time.October, 5), config.DefaultHavdalahDeg).Equal(hav[0].Time))
	assert.Zero(t, hav[0].HavdalahMins)

	// Yom Kippur on Shabbat: Havdalah, no fast times.
	yk := on(evs, day(2024, time.October, 12))
	assert.Len(t, ofKind(yk, event.KindHavdalah), 1)
	assert.Empty(t, ofKind(yk, event.KindTimed))
	assert.Empty(t, ofKind(yk, event.KindFastDay))
	for _, ev := range yk {
		if ev.Kind == event.KindHavdalah {
			require.NotNil(t, ev.Linked)
			assert.Equal(t, "Yom Kippur", ev.Linked.Desc)
		}
	}
}

// TestCalendar_NoHolidaysKeepsCandleTimes drops the holidays themselves but
// keeps the candle lighting and Havdalah they call for.
func TestCalendar_NoHolidaysKeepsCandleTimes(t *testing.T) {
	ny := city(t, "New York")
	base := engine.CalOptions{Start: day(2024, time.April, 22), End: day(2024, time.April, 24), CandleLighting: true, Location: ny}

	full := calendar(t, base)
	require.Len(t, ofKind(full, event.KindCandleLighting), 2)
	require.Len(t, ofKind(full, event.KindHavdalah), 1)

	base.NoHolidays = true
	bare := calendar(t, base)
	assert.Len(t, ofKind(bare, event.KindCandleLighting), 2)
	assert.Len(t, ofKind(bare, event.KindHavdalah), 1)
	assert.Empty(t, ofKind(bare, event.KindHoliday))
	for _, ev := range bare {
		require.NotNil(t, ev.Linked, ev.Desc)
	}

	// Yom Kippur 5785: no holiday event, but its Havdalah remains.
	yk := day(2024, time.October, 12)
	evs := calendar(t, engine.CalOptions{Start: yk, End: yk, CandleLighting: true, Location: ny, NoHolidays: true})
	require.Len(t, evs, 1)
	assert.Equal(t, event.KindHavdalah, evs[0].Kind)
}

func TestCalendar_JerusalemCandleLighting(t *testing.T) {
	jlm := city(t, "Jerusalem")
	fri := day(2024, time.November, 1)
	evs := ofKind(calendar(t, engine.CalOptions{Start: fri, End: fri, CandleLighting: true, Location: jlm, IL: true}), event.KindCandleLighting)
	require.Len(t, evs, 1)
	assert.True(t, sunsetOffset(t, jlm, fri, -40).Equal(evs[0].Time))

	evs = ofKind(calendar(t, engine.CalOptions{Start: fri, End: fri, CandleLighting: true, Location: jlm, IL: true, CandleLightingMins: intPtr(30)}), event.KindCandleLighting)
	require.Len(t, evs, 1)
	assert.True(t, sunsetOffset(t, jlm, fri, -30).Equal(evs[0].Time))
}

func TestCalendar_HavdalahOptions(t *testing.T) {
	london := city(t, "London")
	sat := day(2024, time.November, 9)

	evs := ofKind(calendar(t, engine.CalOptions{Start: sat, End: sat, CandleLighting: true, Location: london, HavdalahMins: intPtr(50)}), event.KindHavdalah)
	require.Len(t, evs, 1)
	assert.Equal(t, 50, evs[0].HavdalahMins)
	assert.True(t, sunsetOffset(t, london, sat, 50).Equal(evs[0].Time))

	evs = ofKind(calendar(t, engine.CalOptions{Start: sat, End: sat, CandleLighting: true, Location: london, HavdalahDeg: floatPtr(7.5)}), event.KindHavdalah)
	require.Len(t, evs, 1)
	assert.True(t, tzeit(t, london, sat, 7.5).Equal(evs[0].Time))

	for _, opts := range []engine.CalOptions{
		{Start: sat, End: sat, CandleLighting: true, Location: london, HavdalahMins: intPtr(0)},
		{Start: sat, End: sat, CandleLighting: true, Location: london, HavdalahDeg: floatPtr(0)},
	} {
		assert.Empty(t, ofKind(calendar(t, opts), event.KindHavdalah))
	}
}

func TestCalendar_ChanukahLighting(t *testing.T) {
	ny := city(t, "New York")
	thu := day(2024, time.December, 26)
	evs := calendar(t, engine.CalOptions{Start: thu, End: thu, CandleLighting: true, Location: ny})
	require.Len(t, evs, 1)

	ch := evs[0]
	assert.Equal(t, "Chanukah: 2 Candles", ch.Desc)
	tz, ok := zmanim.New(ny, thu, false).Tzeit(config.ChanukahTzeitDeg)
	require.True(t, ok)
	want := zmanim.RoundToMinute(tz.Add(-time.Duration(config.ChanukahBeforeTzeitMins * float64(time.Minute))))
	assert.True(t, want.Equal(ch.Time))

	// The shared holiday event is left untouched.
	ym, err := holidays.ForYear(5785)
	require.NoError(t, err)
	shared := ym.Get(hdate.FromTime(thu))
	require.Len(t, shared, 1)
	assert.False(t, shared[0].HasTime())

	// Friday: ordinary candle lighting linked to Chanukah.
	fri := day(2024, time.December, 27)
	evs = calendar(t, engine.CalOptions{Start: fri, End: fri, CandleLighting: true, Location: ny})
	candles := ofKind(evs, event.KindCandleLighting)
	require.Len(t, candles, 1)
	assert.Equal(t, "Chanukah: 3 Candles", candles[0].Linked.Desc)
	assert.True(t, sunsetOffset(t, ny, fri, -18).Equal(candles[0].Time))

	// Shabbat: Chanukah candles after nightfall, then Havdalah.
	sat := day(2024, time.December, 28)
	evs = calendar(t, engine.CalOptions{Start: sat, End: sat, CandleLighting: true, Location: ny})
	require.Len(t, evs, 2)
	assert.True(t, evs[0].HasTime())
	assert.Equal(t, event.KindHavdalah, evs[1].Kind)
	assert.True(t, evs[0].Time.Equal(evs[1].Time))
}

func TestCalendar_FastTimes(t *testing.T) {
	ny := city(t, "New York")
	opts := func(d time.Time) engine.CalOptions {
		return engine.CalOptions{Start: d, End: d, CandleLighting: true, Location: ny}
	}

	// Tzom Gedaliah: dawn to nightfall.
	sun := day(2024, time.October, 6)
	evs := calendar(t, opts(sun))
	require.Equal(t, []string{"Fast begins", "Tzom Gedaliah", "Fast ends"}, descs(evs))
	fd := evs[1]
	assert.Equal(t, event.KindFastDay, fd.Kind)
	assert.Same(t, evs[0], fd.StartEvent)
	assert.Same(t, evs[2], fd.EndEvent)
	dawn, ok := zmanim.New(ny, sun, false).AlotHaShachar()
	require.True(t, ok)
	assert.True(t, zmanim.RoundToMinute(dawn).Equal(evs[0].Time))
	assert.True(t, tzeit(t, ny, sun, config.DefaultFastEndDeg).Equal(evs[2].Time))

	// Asara B'Tevet on Friday has no end time.
	fri := day(2025, time.January, 10)
	evs = calendar(t, opts(fri))
	assert.Contains(t, descs(evs), "Fast begins")
	assert.NotContains(t, descs(evs), "Fast ends")

	// Tish'a B'Av postponed to Sunday: begins Saturday at sunset.
	sat := day(2025, time.August, 2)
	evs = calendar(t, opts(sat))
	begins := ofKind(evs, event.KindTimed)
	require.Len(t, begins, 1)
	assert.Equal(t, "Fast begins", begins[0].Desc)
	assert.True(t, sunsetOffset(t, ny, sat, 0).Equal(begins[0].Time))
	assert.Len(t, ofKind(evs, event.KindHavdalah), 1)

	tb := calendar(t, opts(day(2025, time.August, 3)))
	assert.Equal(t, []string{"Tish'a B'Av (observed)", "Fast ends"}, descs(tb))
	assert.Nil(t, tb[0].StartEvent)
	assert.NotNil(t, tb[0].EndEvent)

	// Ta'anit Bechorot on Erev Pesach has no end time.
	evs = calendar(t, opts(day(2024, time.April, 22)))
	assert.Contains(t, descs(evs), "Ta'anit Bechorot")
	assert.NotContains(t, descs(evs), "Fast ends")

	// Moved to Thursday it does.
	evs = calendar(t, opts(day(2025, time.April, 10)))
	assert.Contains(t, descs(evs), "Fast ends")
}

func TestCalendar_NoSunset(t *testing.T) {
	tromso := city(t, "Tromso")
	evs := calendar(t, engine.CalOptions{
		Start:          day(2025, time.June, 1),
		End:            day(2025, time.June, 30),
		CandleLighting: true,
		Location:       tromso,
	})
	assert.Empty(t, ofKind(evs, event.KindCandleLighting))
	assert.Empty(t, ofKind(evs, event.KindHavdalah))
}
