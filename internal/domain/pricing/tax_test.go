package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tax(name string, app TaxApplication, rate float64, pct bool, order int) Tax {
	return Tax{
		ID:              uuid.New(),
		Name:            name,
		Rate:            rate,
		Application:     app,
		IsPercentage:    pct,
		ApplyToAdults:   true,
		ApplyToChildren: true,
		DisplayOrder:    order,
		Active:          true,
	}
}

func TestComputeTaxBreakdown_PerTotalPercentage(t *testing.T) {
	got := ComputeTaxBreakdown(1000, 2, 2, 0, []Tax{tax("SST", TaxPerTotal, 8, true, 1)})

	require.Len(t, got.Lines, 1)
	assert.Equal(t, 80.0, got.Lines[0].Amount)
	assert.Equal(t, 80.0, got.TotalTax)
	assert.Equal(t, 920.0, got.Subtotal)
}

// The per_pax and per_night percentage formulas divide by the count and
// multiply it straight back, so they equal the per_total amount. This pins
// the historical behavior.
func TestComputeTaxBreakdown_PercentageCollapse(t *testing.T) {
	perTotal := ComputeTaxBreakdown(1000, 3, 2, 1, []Tax{tax("t", TaxPerTotal, 6, true, 1)})
	perPax := ComputeTaxBreakdown(1000, 3, 2, 1, []Tax{tax("t", TaxPerPax, 6, true, 1)})
	perNight := ComputeTaxBreakdown(1000, 3, 2, 1, []Tax{tax("t", TaxPerNight, 6, true, 1)})

	assert.Equal(t, 60.0, perTotal.TotalTax)
	assert.Equal(t, perTotal.TotalTax, perPax.TotalTax)
	assert.Equal(t, perTotal.TotalTax, perNight.TotalTax)
}

func TestComputeTaxBreakdown_FixedAmounts(t *testing.T) {
	taxes := []Tax{
		tax("tourism levy", TaxPerPax, 10, false, 1),
		tax("heritage fee", TaxPerNight, 5, false, 2),
		tax("service", TaxPerRoom, 25, false, 3),
	}

	got := ComputeTaxBreakdown(1000, 3, 2, 1, taxes)

	require.Len(t, got.Lines, 3)
	assert.Equal(t, 30.0, got.Lines[0].Amount) // 10 × 3 pax
	assert.Equal(t, 15.0, got.Lines[1].Amount) // 5 × 3 nights
	assert.Equal(t, 25.0, got.Lines[2].Amount) // flat, no room count
	assert.Equal(t, 930.0, got.Subtotal)
}

func TestComputeTaxBreakdown_PaxFlags(t *testing.T) {
	adultOnly := tax("adult levy", TaxPerPax, 10, false, 1)
	adultOnly.ApplyToChildren = false

	got := ComputeTaxBreakdown(1000, 1, 2, 3, []Tax{adultOnly})
	assert.Equal(t, 20.0, got.TotalTax)
}

func TestComputeTaxBreakdown_ZeroCountGuards(t *testing.T) {
	got := ComputeTaxBreakdown(1000, 0, 0, 0, []Tax{
		tax("per pax pct", TaxPerPax, 6, true, 1),
		tax("per night pct", TaxPerNight, 6, true, 2),
	})
	assert.Equal(t, 0.0, got.TotalTax)
	assert.Equal(t, 1000.0, got.Subtotal)
}

func TestComputeTaxBreakdown_OrderAndInactive(t *testing.T) {
	second := tax("second", TaxPerTotal, 2, true, 5)
	first := tax("first", TaxPerTotal, 1, true, 1)
	inactive := tax("inactive", TaxPerTotal, 50, true, 0)
	inactive.Active = false

	got := ComputeTaxBreakdown(1000, 1, 1, 0, []Tax{second, inactive, first})

	require.Len(t, got.Lines, 2)
	assert.Equal(t, "first", got.Lines[0].Name)
	assert.Equal(t, "second", got.Lines[1].Name)
}
