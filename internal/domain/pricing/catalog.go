package pricing

// Atomic and composite meal plan codes.
const (
	MealBreakfast  = "BO"
	MealLunch      = "LO"
	MealDinner     = "DO"
	MealHighTea    = "HT"
	MealSupper     = "SU"
	MealFullBoard  = "FB"  // BO+LO+DO
	MealFullBoardA = "FBA" // FB+HT
	MealFullBoardB = "FBB" // FBA+SU
)

// MealPlan is one meal plan row with per-adult/child cost and price.
type MealPlan struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	CostAdult  float64 `json:"cost_adult"`
	CostChild  float64 `json:"cost_child"`
	PriceAdult float64 `json:"price_adult"`
	PriceChild float64 `json:"price_child"`
	Active     bool    `json:"active"`
}

// FindMealPlan returns the plan with the given code, if present.
func FindMealPlan(plans []MealPlan, code string) (MealPlan, bool) {
	for _, p := range plans {
		if p.Code == code {
			return p, true
		}
	}
	return MealPlan{}, false
}

// RecalculateComposites recomputes the FB/FBA/FBB composite plans as sums of
// their atomic components and returns the updated composite rows. The sums
// are snapshots: once recalculated they do not track later edits to the
// atomic plans until the next explicit recalculation.
func RecalculateComposites(plans []MealPlan) []MealPlan {
	sum := func(codes ...string) MealPlan {
		var total MealPlan
		for _, code := range codes {
			if p, ok := FindMealPlan(plans, code); ok {
				total.CostAdult += p.CostAdult
				total.CostChild += p.CostChild
				total.PriceAdult += p.PriceAdult
				total.PriceChild += p.PriceChild
			}
		}
		return total
	}

	composites := map[string]MealPlan{
		MealFullBoard:  sum(MealBreakfast, MealLunch, MealDinner),
		MealFullBoardA: sum(MealBreakfast, MealLunch, MealDinner, MealHighTea),
		MealFullBoardB: sum(MealBreakfast, MealLunch, MealDinner, MealHighTea, MealSupper),
	}

	var updated []MealPlan
	for _, code := range []string{MealFullBoard, MealFullBoardA, MealFullBoardB} {
		existing, ok := FindMealPlan(plans, code)
		if !ok {
			continue
		}
		totals := composites[code]
		existing.CostAdult = totals.CostAdult
		existing.CostChild = totals.CostChild
		existing.PriceAdult = totals.PriceAdult
		existing.PriceChild = totals.PriceChild
		updated = append(updated, existing)
	}
	return updated
}

// CostSource selects whose trip cost an activity uses by default.
type CostSource string

const (
	CostSourceResort CostSource = "resort"
	CostSourceVendor CostSource = "vendor"
)

// Activity is a bookable excursion with a one-time trip cost plus per-pax
// variable cost/price.
type Activity struct {
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	ResortTripCost    float64    `json:"resort_trip_cost"`
	VendorTripCost    float64    `json:"vendor_trip_cost"`
	CostAdult         float64    `json:"cost_adult"`
	CostChild         float64    `json:"cost_child"`
	PriceAdult        float64    `json:"price_adult"`
	PriceChild        float64    `json:"price_child"`
	DefaultCostSource CostSource `json:"default_cost_source"`
	Active            bool       `json:"active"`
}

// TripCost returns the one-time trip cost from the default cost source.
func (a Activity) TripCost() float64 {
	if a.DefaultCostSource == CostSourceVendor {
		return a.VendorTripCost
	}
	return a.ResortTripCost
}

// PricingConfig is the per-resort pricing configuration. It is a plain value
// passed into every computation, never process-global state.
type PricingConfig struct {
	BoatCostPerBooking  float64 `json:"boat_cost_per_booking"` // incurred once per booking
	BoatPriceAdult      float64 `json:"boat_price_adult"`
	BoatPriceChild      float64 `json:"boat_price_child"`
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
}

// PackageConfig gates whether a package variant is emitted. The inclusion
// flags are informational only; the composition math hardcodes which meal
// codes feed which variant.
type PackageConfig struct {
	PackageCode        string `json:"package_code"`
	Active             bool   `json:"active"`
	IncludesMeals      bool   `json:"includes_meals"`
	IncludesBoat       bool   `json:"includes_boat"`
	IncludesActivities bool   `json:"includes_activities"`
}
