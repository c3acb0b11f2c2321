package pricing

import (
	"github.com/google/uuid"
)

// Canonical package variant codes.
const (
	PackageRB   = "RB"   // room + breakfast + boat
	PackageRBB  = "RBB"  // presentation duplicate of RB
	PackageRB3I = "RB3I" // RB + three-island activities
	PackageFB   = "FB"   // room + fullboard meals + boat
	PackageFB3I = "FB3I" // FB + three-island activities
)

// CompositionInput is the data the package matrix sweeps over. The matrix
// prices adults only; children stay in per-booking quote territory.
type CompositionInput struct {
	RoomTypes  []RoomType
	BaseRates  map[uuid.UUID]AnnualBaseRate // already resolved for the matrix year
	Settings   SeasonSettings
	Meals      []MealPlan
	Activities []Activity
	Config     PricingConfig
	Packages   []PackageConfig
	PaxCounts  []int
	Nights     int
}

// PackageBreakdown exposes each cost/price sub-component for display.
type PackageBreakdown struct {
	RoomPricePerAdult       float64 `json:"room_price_per_adult"`
	RoomCostPerAdult        float64 `json:"room_cost_per_adult"`
	MealPricePerAdult       float64 `json:"meal_price_per_adult"`
	MealCostTotal           float64 `json:"meal_cost_total"`
	BoatPricePerAdult       float64 `json:"boat_price_per_adult"`
	BoatCostOnce            float64 `json:"boat_cost_once"`
	ActivitiesPricePerAdult float64 `json:"activities_price_per_adult"`
	ActivitiesCostTotal     float64 `json:"activities_cost_total"`
}

// PackageRow is one cell of the composition matrix.
type PackageRow struct {
	PackageCode    string           `json:"package_code"`
	RoomTypeID     uuid.UUID        `json:"room_type_id"`
	RoomTypeName   string           `json:"room_type_name"`
	Season         Season           `json:"season"`
	Pax            int              `json:"pax"`
	Nights         int              `json:"nights"`
	TotalCost      float64          `json:"total_cost"`
	PricePerAdult  float64          `json:"price_per_adult"`
	TotalPrice     float64          `json:"total_price"`
	ProfitPerAdult float64          `json:"profit_per_adult"`
	Breakdown      PackageBreakdown `json:"breakdown"`
}

// PackageComposer builds the five canonical package variants across
// room type × season × pax × nights.
type PackageComposer struct {
	in CompositionInput
}

// NewPackageComposer creates a PackageComposer over the given inputs.
func NewPackageComposer(in CompositionInput) *PackageComposer {
	return &PackageComposer{in: in}
}

func (c *PackageComposer) packageActive(code string) bool {
	for _, p := range c.in.Packages {
		if p.PackageCode == code {
			return p.Active
		}
	}
	return false
}

// Compose sweeps the matrix and returns the rows for every active variant.
func (c *PackageComposer) Compose() []PackageRow {
	var rows []PackageRow
	for _, room := range c.in.RoomTypes {
		for _, season := range []Season{SeasonLow, SeasonMid, SeasonHigh} {
			for _, pax := range c.in.PaxCounts {
				rows = append(rows, c.composeCell(room, season, pax)...)
			}
		}
	}
	return rows
}

// composeCell builds the variants for one room/season/pax combination.
func (c *PackageComposer) composeCell(room RoomType, season Season, pax int) []PackageRow {
	nights := c.in.Nights
	base := c.in.BaseRates[room.ID]
	seasonalRoomPrice := base.PricePerNight * (1 + c.in.Settings.Multiplier(season)/100)

	// The division by max(1,pax) followed by ×pax is a no-op for pax ≥ 1 but
	// defines the pax=0 behavior and the displayed per-adult figures.
	divPax := float64(pax)
	if divPax < 1 {
		divPax = 1
	}
	roomPricePerAdult := seasonalRoomPrice * float64(nights) / divPax
	roomCostPerAdult := base.CostPerNight * float64(nights) / divPax

	breakfast := c.mealComponent(pax, MealBreakfast)
	fullboard := c.mealComponent(pax, MealBreakfast, MealLunch, MealDinner)
	activities := c.activityComponent(pax)

	var rows []PackageRow
	emit := func(code string, row PackageRow) {
		if c.packageActive(code) {
			row.PackageCode = code
			rows = append(rows, row)
		}
	}

	rbRaw := roomPricePerAdult + breakfast.pricePerAdult + c.in.Config.BoatPriceAdult
	rb := c.buildRow(room, season, pax, roomPricePerAdult, roomCostPerAdult, breakfast, rbRaw)
	emit(PackageRB, rb)
	// RBB is a presentation-only duplicate: the boat is already in RB.
	emit(PackageRBB, rb)
	emit(PackageRB3I, c.withActivities(rb, activities, pax))

	fbRaw := roomPricePerAdult + fullboard.pricePerAdult + c.in.Config.BoatPriceAdult
	fb := c.buildRow(room, season, pax, roomPricePerAdult, roomCostPerAdult, fullboard, fbRaw)
	emit(PackageFB, fb)
	emit(PackageFB3I, c.withActivities(fb, activities, pax))

	return rows
}

type mealComponent struct {
	pricePerAdult float64
	costTotal     float64
}

// mealComponent totals the named meal codes over pax adults and the stay's
// nights, then divides the price back to a per-adult figure.
func (c *PackageComposer) mealComponent(pax int, codes ...string) mealComponent {
	var priceAdult, costAdult float64
	for _, code := range codes {
		if p, ok := FindMealPlan(c.in.Meals, code); ok {
			priceAdult += p.PriceAdult
			costAdult += p.CostAdult
		}
	}

	totalPrice := priceAdult * float64(pax) * float64(c.in.Nights)
	totalCost := costAdult * float64(pax) * float64(c.in.Nights)

	divHeads := float64(pax) // adults + children; the matrix sweeps adults only
	if divHeads < 1 {
		divHeads = 1
	}
	return mealComponent{
		pricePerAdult: totalPrice / divHeads,
		costTotal:     totalCost,
	}
}

type activityComponent struct {
	pricePerAdult float64
	costTotal     float64
}

// activityComponent sums every active activity: price per adult once per
// stay, cost as one-time trip cost plus per-pax variable cost.
func (c *PackageComposer) activityComponent(pax int) activityComponent {
	var comp activityComponent
	for _, a := range c.in.Activities {
		if !a.Active {
			continue
		}
		comp.pricePerAdult += a.PriceAdult
		comp.costTotal += a.TripCost() + a.CostAdult*float64(pax)
	}
	return comp
}

func (c *PackageComposer) buildRow(
	room RoomType,
	season Season,
	pax int,
	roomPricePerAdult, roomCostPerAdult float64,
	meal mealComponent,
	rawPerAdult float64,
) PackageRow {
	perAdult := RoundPrice(rawPerAdult, c.in.Settings.RoundToFive)
	totalPrice := perAdult * float64(pax)
	totalCost := roomCostPerAdult*float64(pax) + c.in.Config.BoatCostPerBooking + meal.costTotal

	return PackageRow{
		RoomTypeID:     room.ID,
		RoomTypeName:   room.Name,
		Season:         season,
		Pax:            pax,
		Nights:         c.in.Nights,
		TotalCost:      totalCost,
		PricePerAdult:  perAdult,
		TotalPrice:     totalPrice,
		ProfitPerAdult: profitPerAdult(totalPrice, totalCost, pax),
		Breakdown: PackageBreakdown{
			RoomPricePerAdult: roomPricePerAdult,
			RoomCostPerAdult:  roomCostPerAdult,
			MealPricePerAdult: meal.pricePerAdult,
			MealCostTotal:     meal.costTotal,
			BoatPricePerAdult: c.in.Config.BoatPriceAdult,
			BoatCostOnce:      c.in.Config.BoatCostPerBooking,
		},
	}
}

// withActivities derives the 3I variant from an already-rounded base row.
// The base per-adult price is rounded first and the activity addition is
// rounded again on top of it; that double rounding is the historical
// behavior and is preserved deliberately.
func (c *PackageComposer) withActivities(base PackageRow, activities activityComponent, pax int) PackageRow {
	row := base
	row.PricePerAdult = RoundPrice(base.PricePerAdult+activities.pricePerAdult, c.in.Settings.RoundToFive)
	row.TotalPrice = row.PricePerAdult * float64(pax)
	row.TotalCost = base.TotalCost + activities.costTotal
	row.ProfitPerAdult = profitPerAdult(row.TotalPrice, row.TotalCost, pax)
	row.Breakdown.ActivitiesPricePerAdult = activities.pricePerAdult
	row.Breakdown.ActivitiesCostTotal = activities.costTotal
	return row
}

// profitPerAdult reports profit per paying adult. A zero-pax row has no
// paying adults, so it reports zero rather than dividing by zero.
func profitPerAdult(totalPrice, totalCost float64, pax int) float64 {
	if pax == 0 {
		return 0
	}
	return (totalPrice - totalCost) / float64(pax)
}
