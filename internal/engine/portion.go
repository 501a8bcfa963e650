package engine

import (
	"sync"

	"github.com/hebcal/hebcal-go/sedra"

	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hdate"
)

// PortionLookup names the weekly Torah portion read on a Shabbat.
type PortionLookup interface {
	// Portion returns the portion names (two for a double portion) read on
	// hd, or false when a festival reading replaces it.
	Portion(hd hdate.HDate, il bool) ([]string, bool)
}

type sedraKey struct {
	year int
	il   bool
}

// SedraPortions is a PortionLookup over hebcal-go's weekly reading cycle.
// One schedule is kept per Hebrew year and region.
type SedraPortions struct {
	mu    sync.Mutex
	years map[sedraKey]sedra.Sedra
}

// NewSedraPortions returns an empty SedraPortions.
func NewSedraPortions() *SedraPortions {
	return &SedraPortions{years: make(map[sedraKey]sedra.Sedra)}
}

// Portion implements PortionLookup.
func (s *SedraPortions) Portion(hd hdate.HDate, il bool) ([]string, bool) {
	sd := s.schedule(hd.Year(), il)
	p := sd.Lookup(hd.Hebcal())
	if p.Chag || len(p.Name) == 0 {
		return nil, false
	}
	return p.Name, true
}

func (s *SedraPortions) schedule(year int, il bool) sedra.Sedra {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sedraKey{year: year, il: il}
	if sd, ok := s.years[key]; ok {
		return sd
	}
	if len(s.years) >= config.YearCacheCapacity {
		clear(s.years)
	}
	sd := sedra.New(year, il)
	s.years[key] = sd
	return sd
}
