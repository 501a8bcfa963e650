package event

// Flags classify an event. Calendar options are reduced to a Flags mask and
// an event is kept when it shares at least one bit with that mask.
type Flags uint32

const (
	Chag Flags = 1 << iota
	LightCandles
	YomTovEnds
	ChulOnly
	ILOnly
	LightCandlesTzeis
	ChanukahCandles
	RoshChodesh
	MinorFast
	SpecialShabbat
	ParshaHashavua
	DafYomi
	OmerCount
	ModernHoliday
	MajorFast
	ShabbatMevarchim
	Molad
	UserEvent
	HebrewDate
	MinorHoliday
	Erev
	CholHamoed
	MishnaYomi
	YomKippurKatan
)

// Has reports whether every bit of mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Any reports whether f shares a bit with mask.
func (f Flags) Any(mask Flags) bool { return f&mask != 0 }
