package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(base float64, dates ...string) StayParams {
	parsed := make([]time.Time, len(dates))
	for i, d := range dates {
		parsed[i] = day(d)
	}
	return StayParams{
		BasePrice: base,
		Dates:     parsed,
		CreatedAt: day("2026-01-01"),
		Adults:    2,
		Children:  1,
		Seasons:   map[string]Season{},
	}
}

func promo(percent float64) Promotion {
	return Promotion{
		ID:         uuid.New(),
		Name:       "promo",
		DateStart:  day("2026-01-01"),
		DateEnd:    day("2026-12-31"),
		PercentOff: percent,
		AppliesTo:  AppliesToAll,
		Active:     true,
	}
}

func TestApply_SequentialDiscountsCompound(t *testing.T) {
	adjuster := NewStayAdjuster([]Promotion{promo(10), promo(20)}, nil)

	got := adjuster.Apply(stay(1000, "2026-06-01"))

	// 1000 × 0.9 × 0.8, not 1000 − 300.
	assert.Equal(t, 720.0, got.FinalPrice)
	require.Len(t, got.Promotions, 2)
	assert.Equal(t, 100.0, got.Promotions[0].Amount)
	assert.Equal(t, 180.0, got.Promotions[1].Amount)
}

func TestApply_DiscountsCompoundAcrossNights(t *testing.T) {
	adjuster := NewStayAdjuster([]Promotion{promo(10)}, nil)

	got := adjuster.Apply(stay(1000, "2026-06-01", "2026-06-02"))

	// The same promotion matches both nights against the running price.
	assert.Equal(t, 810.0, got.FinalPrice)
}

func TestApply_SurchargeScalesByTotalPax(t *testing.T) {
	surcharge := Surcharge{
		ID:           uuid.New(),
		Name:         "peak supplement",
		DateStart:    day("2026-01-01"),
		DateEnd:      day("2026-12-31"),
		AmountPerPax: 20,
		AppliesTo:    AppliesToAll,
		// The flags are ignored for surcharges; total pax always applies.
		ApplyToAdults:   true,
		ApplyToChildren: false,
		Active:          true,
	}
	adjuster := NewStayAdjuster(nil, []Surcharge{surcharge})

	params := stay(0, "2026-06-01", "2026-06-02")
	params.Adults = 2
	params.Children = 1

	got := adjuster.Apply(params)

	// 20 × 3 pax × 2 nights.
	assert.Equal(t, 120.0, got.FinalPrice)
	require.Len(t, got.Surcharges, 2)
	assert.Equal(t, 60.0, got.Surcharges[0].Total)
}

func TestApply_SeasonFilter(t *testing.T) {
	p := promo(10)
	p.TargetSeason = SeasonLow
	adjuster := NewStayAdjuster([]Promotion{p}, nil)

	params := stay(1000, "2026-06-01", "2026-06-02")
	params.Seasons["2026-06-01"] = SeasonLow
	// 06-02 is unassigned and defaults to mid.

	got := adjuster.Apply(params)
	require.Len(t, got.Promotions, 1)
	assert.Equal(t, "2026-06-01", got.Promotions[0].Date)
	assert.Equal(t, 900.0, got.FinalPrice)
}

func TestApply_WeekdayFilter(t *testing.T) {
	p := promo(10)
	p.Weekdays = []int{6, 7} // weekend only

	adjuster := NewStayAdjuster([]Promotion{p}, nil)

	// 2026-06-05 is a Friday, 2026-06-06 a Saturday.
	got := adjuster.Apply(stay(1000, "2026-06-05", "2026-06-06"))
	require.Len(t, got.Promotions, 1)
	assert.Equal(t, "2026-06-06", got.Promotions[0].Date)
}

func TestApply_AdvancePurchaseFilter(t *testing.T) {
	p := promo(10)
	p.MinDaysInAdvance = 30
	adjuster := NewStayAdjuster([]Promotion{p}, nil)

	early := stay(1000, "2026-06-01")
	early.CreatedAt = day("2026-01-01")
	assert.Equal(t, 900.0, adjuster.Apply(early).FinalPrice)

	late := stay(1000, "2026-06-01")
	late.CreatedAt = day("2026-05-25")
	assert.Equal(t, 1000.0, adjuster.Apply(late).FinalPrice)
}

func TestApply_ScopeFilters(t *testing.T) {
	roomID := uuid.New()
	otherRoom := uuid.New()

	roomPromo := promo(10)
	roomPromo.AppliesTo = AppliesToRoomType
	roomPromo.RoomTypeID = &roomID

	pkgPromo := promo(20)
	pkgPromo.AppliesTo = AppliesToPackage
	pkgPromo.PackageCode = "FB"

	adjuster := NewStayAdjuster([]Promotion{roomPromo, pkgPromo}, nil)

	params := stay(1000, "2026-06-01")
	params.RoomTypeID = otherRoom
	params.PackageCode = "FB"

	got := adjuster.Apply(params)
	require.Len(t, got.Promotions, 1)
	assert.Equal(t, 20.0, got.Promotions[0].PercentOff)
}

func TestApply_InactiveAndOutOfWindowSkipped(t *testing.T) {
	inactive := promo(10)
	inactive.Active = false

	outside := promo(20)
	outside.DateStart = day("2026-01-01")
	outside.DateEnd = day("2026-01-31")

	adjuster := NewStayAdjuster([]Promotion{inactive, outside}, nil)

	got := adjuster.Apply(stay(1000, "2026-06-01"))
	assert.Empty(t, got.Promotions)
	assert.Equal(t, 1000.0, got.FinalPrice)
}

func TestApply_RoundToFiveAndClamp(t *testing.T) {
	adjuster := NewStayAdjuster([]Promotion{promo(10)}, nil)

	params := stay(997, "2026-06-01")
	params.RoundToFive = true

	// 997 × 0.9 = 897.3 → 895.
	assert.Equal(t, 895.0, adjuster.Apply(params).FinalPrice)

	total := NewStayAdjuster([]Promotion{promo(100), promo(50)}, nil)
	assert.Equal(t, 0.0, total.Apply(stay(1000, "2026-06-01")).FinalPrice)
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(day("2026-06-01"))) // Monday
	assert.Equal(t, 7, ISOWeekday(day("2026-06-07"))) // Sunday
}
