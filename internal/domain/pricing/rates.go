package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateKey formats a date as the YYYY-MM-DD key used throughout the engine.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RoomType identifies a bookable room category.
type RoomType struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	DisplayOrder int       `json:"display_order"`
}

// AnnualBaseRate is the per-year base cost/price for a room type. The season
// multiplier is applied on top of PricePerNight; CostPerNight is never
// season-adjusted.
type AnnualBaseRate struct {
	RoomTypeID    uuid.UUID `json:"room_type_id"`
	Year          int       `json:"year"`
	CostPerNight  float64   `json:"cost_per_night"`
	PricePerNight float64   `json:"price_per_night"`
}

// SeasonalRate is the parallel base-rate representation keyed by explicit
// season, maintained only through the bulk seasonal editor. It is not
// reconciled with AnnualBaseRate.
type SeasonalRate struct {
	RoomTypeID    uuid.UUID `json:"room_type_id"`
	Season        Season    `json:"season"`
	Year          int       `json:"year"`
	CostPerNight  float64   `json:"cost_per_night"`
	PricePerNight float64   `json:"price_per_night"`
}

// OverrideType selects how a RateOverride adjusts the seasonal price.
type OverrideType string

const (
	OverrideSet          OverrideType = "set"
	OverrideDeltaAmount  OverrideType = "delta_amount"
	OverrideDeltaPercent OverrideType = "delta_percent"
)

// IsValid returns true if the override type is one of the three kinds.
func (o OverrideType) IsValid() bool {
	switch o {
	case OverrideSet, OverrideDeltaAmount, OverrideDeltaPercent:
		return true
	}
	return false
}

// ParseOverrideType converts a string to an OverrideType.
func ParseOverrideType(s string) (OverrideType, error) {
	t := OverrideType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid override type: %s", s)
	}
	return t, nil
}

// RateOverride is a per-date, per-room manual adjustment of the seasonal price.
type RateOverride struct {
	RoomTypeID uuid.UUID    `json:"room_type_id"`
	Date       string       `json:"date"` // YYYY-MM-DD
	Type       OverrideType `json:"type"`
	Value      float64      `json:"value"`
	Note       string       `json:"note,omitempty"`
}

// Apply adjusts the given seasonal price according to the override kind.
func (o RateOverride) Apply(seasonPrice float64) float64 {
	switch o.Type {
	case OverrideSet:
		return o.Value
	case OverrideDeltaAmount:
		return seasonPrice + o.Value
	case OverrideDeltaPercent:
		return seasonPrice * (1 + o.Value/100)
	default:
		return seasonPrice
	}
}

// Restriction holds per-date booking constraints for a room type. The pricing
// engine never reads these; they are managed alongside rates for the booking
// calendar.
type Restriction struct {
	RoomTypeID        uuid.UUID `json:"room_type_id"`
	Date              string    `json:"date"` // YYYY-MM-DD
	Closed            bool      `json:"closed"`
	ClosedToArrival   bool      `json:"closed_to_arrival"`
	ClosedToDeparture bool      `json:"closed_to_departure"`
	MinStayNights     int       `json:"min_stay_nights"`
	MaxStayNights     int       `json:"max_stay_nights"`
	MinAdvanceDays    int       `json:"min_advance_days"`
	MaxAdvanceDays    int       `json:"max_advance_days"`
}
