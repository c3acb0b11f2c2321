package pricing

import (
	"context"

	"github.com/google/uuid"
)

// Finders return (nil, nil) when the record is absent: missing optional rows
// are resolved to documented defaults by the engine, never treated as errors.

// RoomTypeRepository persists room type rows.
type RoomTypeRepository interface {
	List(ctx context.Context) ([]RoomType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RoomType, error)
	Upsert(ctx context.Context, rt RoomType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RateRepository persists both base-rate representations. The annual and
// seasonal tables are deliberately parallel and unreconciled; the resolver
// reads only the annual side, the bulk seasonal editor only the seasonal one.
type RateRepository interface {
	FindAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, year int) (*AnnualBaseRate, error)
	// FindLatestAnnualBaseRate returns the rate with the greatest year strictly
	// before maxYear, or nil when none exists.
	FindLatestAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, maxYear int) (*AnnualBaseRate, error)
	ListAnnualBaseRates(ctx context.Context, year int) ([]AnnualBaseRate, error)
	ListAnnualBaseRatesForRoom(ctx context.Context, roomTypeID uuid.UUID) ([]AnnualBaseRate, error)
	UpsertAnnualBaseRate(ctx context.Context, rate AnnualBaseRate) error

	ListSeasonalRates(ctx context.Context, year int) ([]SeasonalRate, error)
	UpsertSeasonalRate(ctx context.Context, rate SeasonalRate) error
}

// OverrideRepository persists per-date manual rate overrides.
type OverrideRepository interface {
	FindOverride(ctx context.Context, roomTypeID uuid.UUID, date string) (*RateOverride, error)
	ListOverrides(ctx context.Context, roomTypeID uuid.UUID, from, to string) ([]RateOverride, error)
	UpsertOverride(ctx context.Context, o RateOverride) error
	DeleteOverride(ctx context.Context, roomTypeID uuid.UUID, date string) error
}

// RestrictionRepository persists per-date booking restrictions (CRUD only;
// the pricing engine never reads them).
type RestrictionRepository interface {
	FindRestriction(ctx context.Context, roomTypeID uuid.UUID, date string) (*Restriction, error)
	ListRestrictions(ctx context.Context, roomTypeID uuid.UUID, from, to string) ([]Restriction, error)
	UpsertRestriction(ctx context.Context, r Restriction) error
	DeleteRestriction(ctx context.Context, roomTypeID uuid.UUID, date string) error
}

// SeasonRepository persists the per-resort season settings singleton and the
// date → season assignments.
type SeasonRepository interface {
	GetSettings(ctx context.Context) (*SeasonSettings, error)
	SaveSettings(ctx context.Context, s SeasonSettings) error
	ListAssignments(ctx context.Context, from, to string) ([]SeasonAssignment, error)
	UpsertAssignment(ctx context.Context, a SeasonAssignment) error
	DeleteAssignment(ctx context.Context, date string) error
}

// CatalogRepository persists meal plans, activities, the pricing config
// singleton and package configs.
type CatalogRepository interface {
	ListMealPlans(ctx context.Context) ([]MealPlan, error)
	UpsertMealPlan(ctx context.Context, p MealPlan) error
	DeleteMealPlan(ctx context.Context, code string) error

	ListActivities(ctx context.Context) ([]Activity, error)
	UpsertActivity(ctx context.Context, a Activity) error
	DeleteActivity(ctx context.Context, code string) error

	GetPricingConfig(ctx context.Context) (*PricingConfig, error)
	SavePricingConfig(ctx context.Context, c PricingConfig) error

	ListPackageConfigs(ctx context.Context) ([]PackageConfig, error)
	UpsertPackageConfig(ctx context.Context, p PackageConfig) error
}

// AdjustmentRepository persists promotions, surcharges and taxes.
type AdjustmentRepository interface {
	// ListActivePromotions returns active promotions whose window overlaps
	// [from, to] (date keys). Finer eligibility filtering happens in the engine.
	ListActivePromotions(ctx context.Context, from, to string) ([]Promotion, error)
	ListPromotions(ctx context.Context) ([]Promotion, error)
	UpsertPromotion(ctx context.Context, p Promotion) error
	DeletePromotion(ctx context.Context, id uuid.UUID) error

	ListActiveSurcharges(ctx context.Context, from, to string) ([]Surcharge, error)
	ListSurcharges(ctx context.Context) ([]Surcharge, error)
	UpsertSurcharge(ctx context.Context, s Surcharge) error
	DeleteSurcharge(ctx context.Context, id uuid.UUID) error

	ListActiveTaxes(ctx context.Context) ([]Tax, error)
	ListTaxes(ctx context.Context) ([]Tax, error)
	UpsertTax(ctx context.Context, t Tax) error
	DeleteTax(ctx context.Context, id uuid.UUID) error
}

// BulkResult accumulates the outcome of a bulk operation. Bulk operations
// are sequential loops of independent per-row writes with no batch
// atomicity; each row succeeds or fails on its own.
type BulkResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// AddSuccess records one successful row.
func (r *BulkResult) AddSuccess() {
	r.SuccessCount++
}

// AddError records one failed row.
func (r *BulkResult) AddError(message string) {
	r.ErrorCount++
	r.Errors = append(r.Errors, message)
}
