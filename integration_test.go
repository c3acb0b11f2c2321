//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resort-pms/service-pricing/internal/application"
	"github.com/resort-pms/service-pricing/internal/events"
)

// TestAnnualCSVImport_UpsertsAndPublishes verifies that importing the annual
// CSV schema writes keyed rows, that re-running the identical import does not
// duplicate them, and that a bulk-imported event lands on pricing.events.
func TestAnnualCSVImport_UpsertsAndPublishes(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupPricingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	seaView := seedRoomType(t, stack.RoomTypes, "Sea View", "SV")
	seedRoomType(t, stack.RoomTypes, "Garden", "GD")

	csv := "room_type,year,cost_base_per_night,price_base_per_night\n" +
		"Sea View,2026,250,400\n" +
		"Garden,2026,180,300\n" +
		"Penthouse,2026,900,1500\n"

	result, err := stack.Bulk.ImportAnnualCSV(ctx, csv)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, []string{"Penthouse"}, result.UnknownNames)
	assert.Equal(t, int64(2), countAnnualRates(t, infra.DB))

	// Re-running the identical import is idempotent: same keys, same count.
	again, err := stack.Bulk.ImportAnnualCSV(ctx, csv)
	require.NoError(t, err)
	assert.Equal(t, 2, again.SuccessCount)
	assert.Equal(t, int64(2), countAnnualRates(t, infra.DB))

	stored, err := stack.RateRepo.FindAnnualBaseRate(ctx, seaView.ID, 2026)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 250.0, stored.CostPerNight)
	assert.Equal(t, 400.0, stored.PricePerNight)

	// Assert: bulk-imported event on pricing.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicPricingEvents,
		events.RatesBulkImported, 15*time.Second)

	var imported events.RatesBulkImportedEvent
	require.NoError(t, ce.ParseData(&imported))
	assert.Equal(t, "annual", imported.Schema)
	assert.Equal(t, 2026, imported.Year)
	assert.Equal(t, 2, imported.SuccessCount)
	assert.Equal(t, 1, imported.ErrorCount)
}

// TestResolveCalendar_AppliesSeasonAndOverride verifies the resolver against
// real storage: season multiplier applied on the assigned date, override on
// its exact date, mid defaults elsewhere.
func TestResolveCalendar_AppliesSeasonAndOverride(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupPricingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	room := seedRoomType(t, stack.RoomTypes, "Sea View", "SV")

	upserted := stack.Bulk.BulkUpsertAnnualRates(ctx, []application.AnnualRateRequest{
		{RoomTypeID: room.ID, Year: 2026, CostPerNight: 250, PricePerNight: 400},
	})
	require.Equal(t, 1, upserted.SuccessCount)

	_, err := stack.Rates.ApplyOverride(ctx, application.OverrideRequest{
		RoomTypeID: room.ID,
		Date:       "2026-03-02",
		Type:       "set",
		Value:      999,
	})
	require.NoError(t, err)

	cal, err := stack.Rates.ResolveCalendar(ctx, room.ID, "2026-03-01", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, cal.Rates, 2)

	// No season assignments seeded: both dates default to mid (0%).
	assert.Equal(t, 400.0, cal.Rates[0].Price)
	assert.True(t, cal.Rates[1].OverrideApplied)
	assert.Equal(t, 999.0, cal.Rates[1].Price)
}
