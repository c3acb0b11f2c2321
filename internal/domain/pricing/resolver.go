package pricing

import (
	"time"

	"github.com/google/uuid"
)

// ResolvedRate is the effective nightly rate for one room type on one date.
type ResolvedRate struct {
	RoomTypeID      uuid.UUID     `json:"room_type_id"`
	Date            string        `json:"date"`
	Season          Season        `json:"season"`
	BaseCost        float64       `json:"base_cost"`
	BasePrice       float64       `json:"base_price"`
	SeasonPrice     float64       `json:"season_price"`
	Cost            float64       `json:"cost"`
	Price           float64       `json:"price"`
	OverrideApplied bool          `json:"override_applied"`
	Override        *RateOverride `json:"override,omitempty"`
}

// RateResolver resolves effective nightly rates from a Snapshot. It never
// fails: missing data resolves to the zero rate and the mid season, since the
// result feeds read-only displays.
type RateResolver struct {
	snap *Snapshot
}

// NewRateResolver creates a RateResolver over the given snapshot.
func NewRateResolver(snap *Snapshot) *RateResolver {
	return &RateResolver{snap: snap}
}

// Resolve computes the effective rate for a room type on a date.
//
// Price = base price for the date's year (with earlier-year fallback),
// season-multiplied, then adjusted by any exact-date override, floored at 0.
// Cost passes through un-adjusted by season or override.
func (r *RateResolver) Resolve(roomTypeID uuid.UUID, date time.Time) ResolvedRate {
	base := r.snap.BaseRateFor(roomTypeID, date.Year())
	season := r.snap.SeasonFor(date)

	seasonPrice := base.PricePerNight * (1 + r.snap.Settings.Multiplier(season)/100)

	price := seasonPrice
	result := ResolvedRate{
		RoomTypeID:  roomTypeID,
		Date:        DateKey(date),
		Season:      season,
		BaseCost:    base.CostPerNight,
		BasePrice:   base.PricePerNight,
		SeasonPrice: seasonPrice,
		Cost:        base.CostPerNight,
	}

	if o, ok := r.snap.OverrideFor(roomTypeID, date); ok {
		price = o.Apply(seasonPrice)
		result.OverrideApplied = true
		result.Override = &o
	}

	result.Price = ClampZero(price)
	return result
}

// ResolveRange resolves every night in [from, to) in date order.
func (r *RateResolver) ResolveRange(roomTypeID uuid.UUID, from, to time.Time) []ResolvedRate {
	var rates []ResolvedRate
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		rates = append(rates, r.Resolve(roomTypeID, d))
	}
	return rates
}
