package pricing

import (
	"sort"

	"github.com/google/uuid"
)

// TaxApplication selects which formula a tax uses.
type TaxApplication string

const (
	TaxPerTotal TaxApplication = "per_total"
	TaxPerRoom  TaxApplication = "per_room"
	TaxPerPax   TaxApplication = "per_pax"
	TaxPerNight TaxApplication = "per_night"
)

// Tax is one row of the itemized, inclusive-tax breakdown configuration.
type Tax struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Rate            float64        `json:"rate"`
	Application     TaxApplication `json:"application_type"`
	IsPercentage    bool           `json:"is_percentage"`
	ApplyToAdults   bool           `json:"apply_to_adults"`
	ApplyToChildren bool           `json:"apply_to_children"`
	DisplayOrder    int            `json:"display_order"`
	Active          bool           `json:"active"`
}

// TaxLine is one computed row of the breakdown.
type TaxLine struct {
	Name        string         `json:"name"`
	Application TaxApplication `json:"application_type"`
	Rate        float64        `json:"rate"`
	Amount      float64        `json:"amount"`
}

// TaxBreakdown is the itemized result. The price total is treated as
// tax-inclusive, so Subtotal = PriceTotal − TotalTax.
type TaxBreakdown struct {
	PriceTotal float64   `json:"price_total"`
	Lines      []TaxLine `json:"lines"`
	TotalTax   float64   `json:"total_tax"`
	Subtotal   float64   `json:"subtotal"`
}

// ComputeTaxBreakdown itemizes the active taxes against a tax-inclusive price
// total, ordered by display order.
//
// The percentage branches of per_pax and per_night divide by the count and
// multiply it straight back, so they collapse to the per_total result. That
// matches the historical behavior and is covered by tests; do not simplify
// the formulas without a confirmed product decision.
func ComputeTaxBreakdown(priceTotal float64, nights, adults, children int, taxes []Tax) TaxBreakdown {
	sorted := make([]Tax, 0, len(taxes))
	for _, t := range taxes {
		if t.Active {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})

	breakdown := TaxBreakdown{PriceTotal: priceTotal, Lines: []TaxLine{}}

	for _, t := range sorted {
		paxCount := 0
		if t.ApplyToAdults {
			paxCount += adults
		}
		if t.ApplyToChildren {
			paxCount += children
		}

		var amount float64
		switch t.Application {
		case TaxPerPax:
			if t.IsPercentage {
				if paxCount > 0 {
					amount = (priceTotal / float64(paxCount)) * t.Rate / 100 * float64(paxCount)
				}
			} else {
				amount = t.Rate * float64(paxCount)
			}
		case TaxPerNight:
			if t.IsPercentage {
				if nights > 0 {
					amount = (priceTotal / float64(nights)) * t.Rate / 100 * float64(nights)
				}
			} else {
				amount = t.Rate * float64(nights)
			}
		default: // per_total and per_room share one formula; no room count is applied
			if t.IsPercentage {
				amount = priceTotal * t.Rate / 100
			} else {
				amount = t.Rate
			}
		}

		breakdown.Lines = append(breakdown.Lines, TaxLine{
			Name:        t.Name,
			Application: t.Application,
			Rate:        t.Rate,
			Amount:      amount,
		})
		breakdown.TotalTax += amount
	}

	breakdown.Subtotal = priceTotal - breakdown.TotalTax
	return breakdown
}
