package pricing

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AppliesTo scopes a promotion or surcharge to bookings of a certain shape.
type AppliesTo string

const (
	AppliesToAll      AppliesTo = "all"
	AppliesToRoomType AppliesTo = "room_type"
	AppliesToPackage  AppliesTo = "package"
)

// Promotion is an eligibility-filtered percentage discount.
type Promotion struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	DateStart        time.Time  `json:"date_start"`
	DateEnd          time.Time  `json:"date_end"`
	TargetSeason     Season     `json:"target_season,omitempty"` // empty = any season
	PercentOff       float64    `json:"percent_off"`
	MinDaysInAdvance int        `json:"min_days_in_advance"` // 0 = no advance requirement
	AppliesTo        AppliesTo  `json:"applies_to"`
	RoomTypeID       *uuid.UUID `json:"room_type_id,omitempty"`
	PackageCode      string     `json:"package_code,omitempty"`
	Weekdays         []int      `json:"weekdays,omitempty"` // ISO Mon=1..Sun=7, empty = all
	Active           bool       `json:"active"`
}

// Surcharge is an eligibility-filtered flat per-pax addition. It carries the
// same adult/child flags as Tax but, unlike taxes, the engine ignores them
// and always scales by total pax.
type Surcharge struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	DateStart       time.Time  `json:"date_start"`
	DateEnd         time.Time  `json:"date_end"`
	TargetSeason    Season     `json:"target_season,omitempty"`
	AmountPerPax    float64    `json:"amount_per_pax"`
	AppliesTo       AppliesTo  `json:"applies_to"`
	RoomTypeID      *uuid.UUID `json:"room_type_id,omitempty"`
	PackageCode     string     `json:"package_code,omitempty"`
	Weekdays        []int      `json:"weekdays,omitempty"`
	ApplyToAdults   bool       `json:"apply_to_adults"`
	ApplyToChildren bool       `json:"apply_to_children"`
	Active          bool       `json:"active"`
}

// ISOWeekday returns the ISO weekday number for a date (Mon=1..Sun=7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// StayParams describes one stay for promotion/surcharge adjustment.
type StayParams struct {
	BasePrice   float64
	Dates       []time.Time // ordered stay nights
	CreatedAt   time.Time   // booking creation timestamp, for advance filters
	RoomTypeID  uuid.UUID
	PackageCode string
	Adults      int
	Children    int
	RoundToFive bool
	Seasons     map[string]Season // date key → season, absent = mid
}

func (p StayParams) seasonFor(date time.Time) Season {
	if s, ok := p.Seasons[DateKey(date)]; ok && s.IsValid() {
		return s
	}
	return SeasonMid
}

// AppliedPromotion records one promotion application on one night.
type AppliedPromotion struct {
	PromotionID uuid.UUID `json:"promotion_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	PercentOff  float64   `json:"percent_off"`
	Amount      float64   `json:"amount"`
}

// AppliedSurcharge records one surcharge application on one night.
type AppliedSurcharge struct {
	SurchargeID  uuid.UUID `json:"surcharge_id"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	AmountPerPax float64   `json:"amount_per_pax"`
	Total        float64   `json:"total"`
}

// StayAdjustment is the outcome of applying promotions and surcharges.
type StayAdjustment struct {
	FinalPrice float64            `json:"final_price"`
	Promotions []AppliedPromotion `json:"promotions"`
	Surcharges []AppliedSurcharge `json:"surcharges"`
}

// StayAdjuster applies eligibility-filtered promotions and surcharges across
// a stay's nights.
type StayAdjuster struct {
	promotions []Promotion
	surcharges []Surcharge
}

// NewStayAdjuster creates a StayAdjuster over the supplied records.
func NewStayAdjuster(promotions []Promotion, surcharges []Surcharge) *StayAdjuster {
	return &StayAdjuster{promotions: promotions, surcharges: surcharges}
}

// Apply walks the stay night by night in date order. Each matching promotion
// discounts the running price sequentially, so discounts compound across
// promotions and across nights. Surcharges add amount_per_pax × total pax,
// independent of the running price. The final price is optionally rounded to
// the nearest 5, floored at 0, and rounded to the nearest integer.
func (a *StayAdjuster) Apply(params StayParams) StayAdjustment {
	result := StayAdjustment{
		Promotions: []AppliedPromotion{},
		Surcharges: []AppliedSurcharge{},
	}

	running := params.BasePrice
	var surchargeTotal float64
	totalPax := params.Adults + params.Children

	for _, date := range params.Dates {
		season := params.seasonFor(date)

		for _, p := range a.promotions {
			if !a.promotionMatches(p, date, season, params) {
				continue
			}
			discount := running * p.PercentOff / 100
			running -= discount
			result.Promotions = append(result.Promotions, AppliedPromotion{
				PromotionID: p.ID,
				Name:        p.Name,
				Date:        DateKey(date),
				PercentOff:  p.PercentOff,
				Amount:      discount,
			})
		}

		for _, s := range a.surcharges {
			if !a.surchargeMatches(s, date, season, params) {
				continue
			}
			total := s.AmountPerPax * float64(totalPax)
			surchargeTotal += total
			result.Surcharges = append(result.Surcharges, AppliedSurcharge{
				SurchargeID:  s.ID,
				Name:         s.Name,
				Date:         DateKey(date),
				AmountPerPax: s.AmountPerPax,
				Total:        total,
			})
		}
	}

	final := running + surchargeTotal
	if params.RoundToFive {
		final = RoundToNearestFive(final)
	}
	result.FinalPrice = math.Round(ClampZero(final))
	return result
}

func (a *StayAdjuster) promotionMatches(p Promotion, date time.Time, season Season, params StayParams) bool {
	if !p.Active {
		return false
	}
	if !windowCovers(p.DateStart, p.DateEnd, date) {
		return false
	}
	if p.TargetSeason != "" && p.TargetSeason != season {
		return false
	}
	if !scopeMatches(p.AppliesTo, p.RoomTypeID, p.PackageCode, params) {
		return false
	}
	if !weekdayMatches(p.Weekdays, date) {
		return false
	}
	if p.MinDaysInAdvance > 0 {
		days := int(math.Ceil(date.Sub(params.CreatedAt).Hours() / 24))
		if days < p.MinDaysInAdvance {
			return false
		}
	}
	return true
}

func (a *StayAdjuster) surchargeMatches(s Surcharge, date time.Time, season Season, params StayParams) bool {
	if !s.Active {
		return false
	}
	if !windowCovers(s.DateStart, s.DateEnd, date) {
		return false
	}
	if s.TargetSeason != "" && s.TargetSeason != season {
		return false
	}
	if !scopeMatches(s.AppliesTo, s.RoomTypeID, s.PackageCode, params) {
		return false
	}
	return weekdayMatches(s.Weekdays, date)
}

func windowCovers(start, end, date time.Time) bool {
	day := DateKey(date)
	return DateKey(start) <= day && day <= DateKey(end)
}

func scopeMatches(applies AppliesTo, roomTypeID *uuid.UUID, packageCode string, params StayParams) bool {
	switch applies {
	case AppliesToRoomType:
		return roomTypeID != nil && *roomTypeID == params.RoomTypeID
	case AppliesToPackage:
		return packageCode != "" && packageCode == params.PackageCode
	default:
		return true
	}
}

func weekdayMatches(weekdays []int, date time.Time) bool {
	if len(weekdays) == 0 {
		return true
	}
	wd := ISOWeekday(date)
	for _, w := range weekdays {
		if w == wd {
			return true
		}
	}
	return false
}
