package pricing

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time view of the rate data the resolver reads.
// Callers assemble it from persistence; the engine never fetches anything
// itself. Absent entries resolve to documented defaults, so a stale snapshot
// degrades to default pricing rather than an error.
type Snapshot struct {
	Settings    SeasonSettings
	Seasons     map[string]Season                      // date key → season, absent = mid
	AnnualRates map[uuid.UUID][]AnnualBaseRate         // per room, any order
	Overrides   map[uuid.UUID]map[string]RateOverride  // room → date key → override
}

// NewSnapshot creates an empty Snapshot with default season settings.
func NewSnapshot(settings SeasonSettings) *Snapshot {
	return &Snapshot{
		Settings:    settings,
		Seasons:     make(map[string]Season),
		AnnualRates: make(map[uuid.UUID][]AnnualBaseRate),
		Overrides:   make(map[uuid.UUID]map[string]RateOverride),
	}
}

// AddAnnualRate records a base rate for a room type.
func (s *Snapshot) AddAnnualRate(rate AnnualBaseRate) {
	s.AnnualRates[rate.RoomTypeID] = append(s.AnnualRates[rate.RoomTypeID], rate)
}

// AddOverride records a per-date override for a room type.
func (s *Snapshot) AddOverride(o RateOverride) {
	if s.Overrides[o.RoomTypeID] == nil {
		s.Overrides[o.RoomTypeID] = make(map[string]RateOverride)
	}
	s.Overrides[o.RoomTypeID][o.Date] = o
}

// SeasonFor returns the season assigned to the date, defaulting to mid.
func (s *Snapshot) SeasonFor(date time.Time) Season {
	if season, ok := s.Seasons[DateKey(date)]; ok && season.IsValid() {
		return season
	}
	return SeasonMid
}

// BaseRateFor returns the annual base rate for the room and year: the exact
// year when present, otherwise the most recent earlier year, otherwise a zero
// rate.
func (s *Snapshot) BaseRateFor(roomTypeID uuid.UUID, year int) AnnualBaseRate {
	rates := s.AnnualRates[roomTypeID]
	if len(rates) == 0 {
		return AnnualBaseRate{RoomTypeID: roomTypeID, Year: year}
	}

	sorted := make([]AnnualBaseRate, len(rates))
	copy(sorted, rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	best := AnnualBaseRate{RoomTypeID: roomTypeID, Year: year}
	found := false
	for _, r := range sorted {
		if r.Year == year {
			return r
		}
		if r.Year < year {
			best = r
			found = true
		}
	}
	if found {
		return best
	}
	return AnnualBaseRate{RoomTypeID: roomTypeID, Year: year}
}

// OverrideFor returns the override for the exact date, if any.
func (s *Snapshot) OverrideFor(roomTypeID uuid.UUID, date time.Time) (RateOverride, bool) {
	byDate, ok := s.Overrides[roomTypeID]
	if !ok {
		return RateOverride{}, false
	}
	o, ok := byDate[DateKey(date)]
	return o, ok
}
