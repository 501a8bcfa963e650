package hdate

import (
	"time"

	hc "github.com/hebcal/hdate"
	"github.com/hebcal/hebcal-go/molad"
)

// Molad is the mean lunar conjunction that begins a Hebrew month, expressed
// as a weekday, a clock time measured from midnight, and chalakim (1/18
// minute units).
type Molad struct {
	Year     int
	Month    HMonth
	Weekday  time.Weekday
	Hour     int
	Minutes  int
	Chalakim int
}

// NewMolad computes the molad of month in year.
func NewMolad(year int, month HMonth) Molad {
	m := molad.New(year, hc.HMonth(month))
	return Molad{
		Year:     year,
		Month:    month,
		Weekday:  m.Date.Weekday(),
		Hour:     m.Hours,
		Minutes:  m.Minutes,
		Chalakim: m.Chalakim,
	}
}
