package holidays

import (
	"time"

	"github.com/tartampluch/go-luach/internal/hdate"
)

// TachanunResult reports whether Tachanun is said on a day. On Shabbat,
// Mincha reports whether Tzidkatcha is said.
type TachanunResult struct {
	Shacharit bool
	Mincha    bool
	// AllCongs is false when only some congregations say it.
	AllCongs bool
}

type tachanunDays struct {
	none    map[int64]bool
	some    map[int64]bool
	yesPrev map[int64]bool
}

// Tachanun reports whether the Tachanun supplication is said on hd in
// Israel (il) or the Diaspora.
func Tachanun(hd hdate.HDate, il bool) TachanunResult {
	abs := hd.Abs()
	today := tachanunYear(hd.Year(), il)
	if today.none[abs] {
		return TachanunResult{AllCongs: true}
	}

	tomorrow := today
	if next := hd.Next(); next.Year() != hd.Year() {
		tomorrow = tachanunYear(next.Year(), il)
	}

	dow := hd.Weekday()
	ret := TachanunResult{
		Shacharit: dow != time.Saturday,
		Mincha:    dow != time.Friday,
		AllCongs:  !today.some[abs],
	}
	if !tomorrow.yesPrev[abs+1] {
		if tomorrow.none[abs+1] {
			ret.Mincha = false
		} else if tomorrow.some[abs+1] {
			ret.AllCongs = false
		}
	}
	return ret
}

func tachanunYear(year int, il bool) tachanunDays {
	d := tachanunDays{
		none:    map[int64]bool{},
		some:    map[int64]bool{},
		yesPrev: map[int64]bool{},
	}
	date := func(day int, month hdate.HMonth) int64 { return hdate.New(day, month, year).Abs() }
	span := func(set map[int64]bool, month hdate.HMonth, from, to int) {
		for day := from; day <= to; day++ {
			set[date(day, month)] = true
		}
	}

	months := hdate.HMonth(hdate.MonthsInYear(year))
	for m := hdate.Nisan; m <= months; m++ {
		d.none[date(1, m)] = true
		if hdate.DaysInMonth(m, year) == 30 {
			d.none[date(30, m)] = true
		}
	}

	isruShavuot, isruSukkot := 8, 24
	if il {
		isruShavuot, isruSukkot = 7, 23
	}

	span(d.none, hdate.Nisan, 1, 30)
	d.none[date(18, hdate.Iyyar)] = true
	span(d.none, hdate.Sivan, 1, isruShavuot)
	av9 := hdate.New(9, hdate.Av, year)
	if av9.Weekday() == time.Saturday {
		av9 = av9.Next()
	}
	d.none[av9.Abs()] = true
	d.none[date(15, hdate.Av)] = true
	d.none[date(29, hdate.Elul)] = true
	span(d.none, hdate.Tishrei, 1, 2)
	span(d.none, hdate.Tishrei, 9, isruSukkot)
	span(d.none, hdate.Kislev, 25, 32)
	d.none[date(15, hdate.Shvat)] = true
	span(d.none, hdate.Adar2, 14, 15)
	if hdate.IsLeapYear(year) {
		span(d.none, hdate.Adar1, 14, 15)
	}

	d.some[date(14, hdate.Iyyar)] = true
	span(d.some, hdate.Sivan, isruShavuot+1, 12)
	span(d.some, hdate.Tishrei, isruSukkot+1, hdate.DaysInMonth(hdate.Tishrei, year))
	if ym, err := ForYear(year); err == nil {
		for _, ev := range ym.EventsIn(il) {
			if ev.Desc == "Yom HaAtzma'ut" || ev.Desc == "Yom Yerushalayim" {
				d.some[ev.Date.Abs()] = true
			}
		}
	}

	d.yesPrev[date(29, hdate.Elul)] = true
	d.yesPrev[date(9, hdate.Tishrei)] = true
	return d
}
