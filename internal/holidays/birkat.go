package holidays

import "github.com/tartampluch/go-luach/internal/hdate"

const (
	// birkatCycle is the 28-year solar cycle in days.
	birkatCycle = 10227
	// birkatOffset aligns the cycle with the vernal equinox of Shmuel.
	birkatOffset = 172
	// birkatShift converts an absolute day number to days since creation.
	birkatShift  = 1373429
	birkatWindow = 40
)

// BirkatHachamah returns the day of the Blessing of the Sun in year, if
// the 28-year cycle completes that year. The day always falls in the
// weeks before Pesach.
func BirkatHachamah(year int) (hdate.HDate, bool) {
	base := hdate.New(1, hdate.Nisan, year)
	if hdate.IsLeapYear(year) {
		base = hdate.New(20, hdate.Adar2, year)
	}
	for d := int64(0); d <= birkatWindow; d++ {
		abs := base.Abs() + d
		if (abs+birkatShift)%birkatCycle == birkatOffset {
			return hdate.FromAbs(abs), true
		}
	}
	return hdate.HDate{}, false
}
