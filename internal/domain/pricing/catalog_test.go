package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateComposites(t *testing.T) {
	plans := []MealPlan{
		{Code: MealBreakfast, PriceAdult: 20, PriceChild: 10, CostAdult: 10, CostChild: 5},
		{Code: MealLunch, PriceAdult: 25, PriceChild: 12, CostAdult: 12, CostChild: 6},
		{Code: MealDinner, PriceAdult: 30, PriceChild: 15, CostAdult: 15, CostChild: 8},
		{Code: MealHighTea, PriceAdult: 8, CostAdult: 4},
		{Code: MealSupper, PriceAdult: 12, CostAdult: 6},
		{Code: MealFullBoard, Name: "Full Board"},
		{Code: MealFullBoardA, Name: "Full Board A"},
		{Code: MealFullBoardB, Name: "Full Board B"},
	}

	updated := RecalculateComposites(plans)
	require.Len(t, updated, 3)

	fb, ok := FindMealPlan(updated, MealFullBoard)
	require.True(t, ok)
	assert.Equal(t, 75.0, fb.PriceAdult)
	assert.Equal(t, 37.0, fb.PriceChild)
	assert.Equal(t, 37.0, fb.CostAdult)
	// Non-price fields of the existing row survive.
	assert.Equal(t, "Full Board", fb.Name)

	fba, ok := FindMealPlan(updated, MealFullBoardA)
	require.True(t, ok)
	assert.Equal(t, 83.0, fba.PriceAdult)

	fbb, ok := FindMealPlan(updated, MealFullBoardB)
	require.True(t, ok)
	assert.Equal(t, 95.0, fbb.PriceAdult)
}

func TestRecalculateComposites_MissingCompositeRowSkipped(t *testing.T) {
	plans := []MealPlan{
		{Code: MealBreakfast, PriceAdult: 20},
		{Code: MealFullBoard},
	}

	updated := RecalculateComposites(plans)

	// FBA and FBB have no stored row, so only FB is recomputed.
	require.Len(t, updated, 1)
	assert.Equal(t, MealFullBoard, updated[0].Code)
}

func TestActivityTripCost(t *testing.T) {
	a := Activity{ResortTripCost: 40, VendorTripCost: 55}

	a.DefaultCostSource = CostSourceResort
	assert.Equal(t, 40.0, a.TripCost())

	a.DefaultCostSource = CostSourceVendor
	assert.Equal(t, 55.0, a.TripCost())

	// Unset source falls back to the resort cost.
	a.DefaultCostSource = ""
	assert.Equal(t, 40.0, a.TripCost())
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 150.0, RoundToNearestFive(151.5))
	assert.Equal(t, 155.0, RoundToNearestFive(153))
	assert.Equal(t, 152.0, RoundPrice(151.5, false))
	assert.Equal(t, 0.0, ClampZero(-3))
	assert.Equal(t, 3.0, ClampZero(3))
}
