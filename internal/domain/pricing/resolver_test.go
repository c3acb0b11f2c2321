package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve_SeasonMultiplier(t *testing.T) {
	roomID := uuid.New()
	snap := NewSnapshot(DefaultSeasonSettings())
	snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2026, CostPerNight: 250, PricePerNight: 400})
	snap.Seasons["2026-01-10"] = SeasonLow
	snap.Seasons["2026-07-10"] = SeasonHigh

	resolver := NewRateResolver(snap)

	tests := []struct {
		name   string
		date   string
		season Season
		price  float64
	}{
		{"low season applies -10%", "2026-01-10", SeasonLow, 360},
		{"high season applies +15%", "2026-07-10", SeasonHigh, 460},
		{"unassigned date defaults to mid", "2026-04-10", SeasonMid, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(roomID, day(tt.date))
			assert.Equal(t, tt.season, got.Season)
			assert.InDelta(t, tt.price, got.Price, 1e-9)
			// Cost never follows the season.
			assert.Equal(t, 250.0, got.Cost)
		})
	}
}

func TestResolve_YearFallback(t *testing.T) {
	roomID := uuid.New()
	snap := NewSnapshot(SeasonSettings{})
	snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2024, PricePerNight: 300})
	snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2022, PricePerNight: 200})

	resolver := NewRateResolver(snap)

	// No 2026 rate: the latest earlier year wins.
	got := resolver.Resolve(roomID, day("2026-06-01"))
	assert.Equal(t, 300.0, got.BasePrice)

	// No rate at or before 2021: zero rate.
	got = resolver.Resolve(roomID, day("2021-06-01"))
	assert.Equal(t, 0.0, got.Price)
}

func TestResolve_UnknownRoomIsZero(t *testing.T) {
	snap := NewSnapshot(DefaultSeasonSettings())
	got := NewRateResolver(snap).Resolve(uuid.New(), day("2026-06-01"))
	assert.Equal(t, 0.0, got.Price)
	assert.Equal(t, SeasonMid, got.Season)
}

func TestResolve_Overrides(t *testing.T) {
	roomID := uuid.New()

	tests := []struct {
		name  string
		kind  OverrideType
		value float64
		price float64
	}{
		{"set replaces the season price", OverrideSet, 999, 999},
		{"delta_amount adds to the season price", OverrideDeltaAmount, -50, 350},
		{"delta_percent scales the season price", OverrideDeltaPercent, 10, 440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(SeasonSettings{})
			snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2026, PricePerNight: 400})
			snap.AddOverride(RateOverride{RoomTypeID: roomID, Date: "2026-03-02", Type: tt.kind, Value: tt.value})

			resolver := NewRateResolver(snap)

			got := resolver.Resolve(roomID, day("2026-03-02"))
			assert.True(t, got.OverrideApplied)
			assert.InDelta(t, tt.price, got.Price, 1e-9)

			// The override binds to its exact date only.
			next := resolver.Resolve(roomID, day("2026-03-03"))
			assert.False(t, next.OverrideApplied)
			assert.Equal(t, 400.0, next.Price)
		})
	}
}

func TestResolve_NegativeClampsToZero(t *testing.T) {
	roomID := uuid.New()
	snap := NewSnapshot(SeasonSettings{})
	snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2026, PricePerNight: 400})
	snap.AddOverride(RateOverride{RoomTypeID: roomID, Date: "2026-03-02", Type: OverrideDeltaAmount, Value: -500})

	got := NewRateResolver(snap).Resolve(roomID, day("2026-03-02"))
	assert.Equal(t, 0.0, got.Price)
}

func TestResolveRange_HalfOpen(t *testing.T) {
	roomID := uuid.New()
	snap := NewSnapshot(SeasonSettings{})
	snap.AddAnnualRate(AnnualBaseRate{RoomTypeID: roomID, Year: 2026, PricePerNight: 400})

	rates := NewRateResolver(snap).ResolveRange(roomID, day("2026-03-01"), day("2026-03-04"))
	require.Len(t, rates, 3)
	assert.Equal(t, "2026-03-01", rates[0].Date)
	assert.Equal(t, "2026-03-03", rates[2].Date)
}
