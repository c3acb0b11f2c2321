package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
	"github.com/resort-pms/service-pricing/internal/events"
	"github.com/resort-pms/service-pricing/internal/pkg/domainerr"
)

// RoomTypeRequest is the payload for creating or updating a room type.
type RoomTypeRequest struct {
	ID           *uuid.UUID `json:"id"`
	Name         string     `json:"name" binding:"required"`
	Code         string     `json:"code" binding:"required"`
	DisplayOrder int        `json:"display_order"`
}

// SeasonAssignmentRequest maps one date to a season label.
type SeasonAssignmentRequest struct {
	Date   string `json:"date" binding:"required"`
	Season string `json:"season" binding:"required"`
}

// CatalogService manages the reference data every pricing computation reads:
// room types, meal plans, activities, package and pricing config, season
// settings and assignments, promotions, surcharges and taxes.
type CatalogService struct {
	roomTypes   pricing.RoomTypeRepository
	catalog     pricing.CatalogRepository
	seasons     pricing.SeasonRepository
	adjustments pricing.AdjustmentRepository
	publisher   *events.Publisher
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	roomTypes pricing.RoomTypeRepository,
	catalog pricing.CatalogRepository,
	seasons pricing.SeasonRepository,
	adjustments pricing.AdjustmentRepository,
	publisher *events.Publisher,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		roomTypes:   roomTypes,
		catalog:     catalog,
		seasons:     seasons,
		adjustments: adjustments,
		publisher:   publisher,
		logger:      logger,
	}
}

// --- Room types ---

// ListRoomTypes lists every room type.
func (s *CatalogService) ListRoomTypes(ctx context.Context) ([]pricing.RoomType, error) {
	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	if rooms == nil {
		rooms = []pricing.RoomType{}
	}
	return rooms, nil
}

// SaveRoomType creates or updates a room type. A request without an ID gets a
// fresh one.
func (s *CatalogService) SaveRoomType(ctx context.Context, req RoomTypeRequest) (*pricing.RoomType, error) {
	if req.Name == "" || req.Code == "" {
		return nil, domainerr.NewValidationError("room type name and code are required")
	}

	room := pricing.RoomType{
		Name:         req.Name,
		Code:         req.Code,
		DisplayOrder: req.DisplayOrder,
	}
	if req.ID != nil {
		room.ID = *req.ID
	} else {
		room.ID = uuid.New()
	}

	if err := s.roomTypes.Upsert(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to upsert room type: %w", err)
	}
	return &room, nil
}

// DeleteRoomType removes a room type.
func (s *CatalogService) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	existing, err := s.roomTypes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find room type: %w", err)
	}
	if existing == nil {
		return domainerr.NewNotFoundError("room type", id.String())
	}
	if err := s.roomTypes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}
	return nil
}

// --- Meal plans ---

// ListMealPlans lists every meal plan.
func (s *CatalogService) ListMealPlans(ctx context.Context) ([]pricing.MealPlan, error) {
	plans, err := s.catalog.ListMealPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	if plans == nil {
		plans = []pricing.MealPlan{}
	}
	return plans, nil
}

// SaveMealPlan creates or updates a meal plan by code.
func (s *CatalogService) SaveMealPlan(ctx context.Context, plan pricing.MealPlan) (*pricing.MealPlan, error) {
	if plan.Code == "" {
		return nil, domainerr.NewValidationError("meal plan code is required")
	}
	if err := s.catalog.UpsertMealPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to upsert meal plan: %w", err)
	}
	return &plan, nil
}

// DeleteMealPlan removes a meal plan by code.
func (s *CatalogService) DeleteMealPlan(ctx context.Context, code string) error {
	if err := s.catalog.DeleteMealPlan(ctx, code); err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return nil
}

// RecalculateComposites recomputes the FB/FBA/FBB composite plans from their
// atomic components and persists the updated rows.
func (s *CatalogService) RecalculateComposites(ctx context.Context) ([]pricing.MealPlan, error) {
	plans, err := s.catalog.ListMealPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}

	updated := pricing.RecalculateComposites(plans)
	for _, plan := range updated {
		if err := s.catalog.UpsertMealPlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to upsert meal plan %s: %w", plan.Code, err)
		}
	}
	if updated == nil {
		updated = []pricing.MealPlan{}
	}
	return updated, nil
}

// --- Activities ---

// ListActivities lists every activity.
func (s *CatalogService) ListActivities(ctx context.Context) ([]pricing.Activity, error) {
	activities, err := s.catalog.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if activities == nil {
		activities = []pricing.Activity{}
	}
	return activities, nil
}

// SaveActivity creates or updates an activity by code.
func (s *CatalogService) SaveActivity(ctx context.Context, a pricing.Activity) (*pricing.Activity, error) {
	if a.Code == "" {
		return nil, domainerr.NewValidationError("activity code is required")
	}
	if a.DefaultCostSource == "" {
		a.DefaultCostSource = pricing.CostSourceResort
	}
	if a.DefaultCostSource != pricing.CostSourceResort && a.DefaultCostSource != pricing.CostSourceVendor {
		return nil, domainerr.NewValidationError(fmt.Sprintf("invalid cost source: %s", a.DefaultCostSource))
	}
	if err := s.catalog.UpsertActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to upsert activity: %w", err)
	}
	return &a, nil
}

// DeleteActivity removes an activity by code.
func (s *CatalogService) DeleteActivity(ctx context.Context, code string) error {
	if err := s.catalog.DeleteActivity(ctx, code); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// --- Pricing and package config ---

// GetPricingConfig returns the pricing config, zero-valued when unset.
func (s *CatalogService) GetPricingConfig(ctx context.Context) (*pricing.PricingConfig, error) {
	config, err := s.catalog.GetPricingConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing config: %w", err)
	}
	if config == nil {
		config = &pricing.PricingConfig{}
	}
	return config, nil
}

// SavePricingConfig replaces the pricing config and publishes the change.
func (s *CatalogService) SavePricingConfig(ctx context.Context, config pricing.PricingConfig) (*pricing.PricingConfig, error) {
	if err := s.catalog.SavePricingConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save pricing config: %w", err)
	}

	s.publisher.Publish(ctx, events.ConfigUpdated, events.ConfigUpdatedEvent{
		BoatCostPerBooking:  config.BoatCostPerBooking,
		BoatPriceAdult:      config.BoatPriceAdult,
		BoatPriceChild:      config.BoatPriceChild,
		ProfitMarginPercent: config.ProfitMarginPercent,
		OccurredAt:          time.Now().UTC(),
	})
	return &config, nil
}

// ListPackageConfigs lists every package config.
func (s *CatalogService) ListPackageConfigs(ctx context.Context) ([]pricing.PackageConfig, error) {
	configs, err := s.catalog.ListPackageConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list package configs: %w", err)
	}
	if configs == nil {
		configs = []pricing.PackageConfig{}
	}
	return configs, nil
}

// SavePackageConfig creates or updates a package config by code.
func (s *CatalogService) SavePackageConfig(ctx context.Context, config pricing.PackageConfig) (*pricing.PackageConfig, error) {
	if config.PackageCode == "" {
		return nil, domainerr.NewValidationError("package code is required")
	}
	if err := s.catalog.UpsertPackageConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to upsert package config: %w", err)
	}
	return &config, nil
}

// --- Season settings and assignments ---

// GetSeasonSettings returns the season settings, defaulted when unset.
func (s *CatalogService) GetSeasonSettings(ctx context.Context) (*pricing.SeasonSettings, error) {
	settings, err := s.seasons.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get season settings: %w", err)
	}
	if settings == nil {
		def := pricing.DefaultSeasonSettings()
		settings = &def
	}
	return settings, nil
}

// SaveSeasonSettings replaces the season settings and publishes the change.
func (s *CatalogService) SaveSeasonSettings(ctx context.Context, settings pricing.SeasonSettings) (*pricing.SeasonSettings, error) {
	if err := s.seasons.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save season settings: %w", err)
	}

	s.publisher.Publish(ctx, events.SeasonSettingsUpdated, events.SeasonSettingsUpdatedEvent{
		LowPercent:  settings.LowPercent,
		MidPercent:  settings.MidPercent,
		HighPercent: settings.HighPercent,
		RoundToFive: settings.RoundToFive,
		OccurredAt:  time.Now().UTC(),
	})
	return &settings, nil
}

// ListSeasonAssignments lists the date-to-season assignments in [from, to].
func (s *CatalogService) ListSeasonAssignments(ctx context.Context, from, to string) ([]pricing.SeasonAssignment, error) {
	if _, _, err := parseDateRange(from, to); err != nil {
		return nil, err
	}
	assignments, err := s.seasons.ListAssignments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list season assignments: %w", err)
	}
	if assignments == nil {
		assignments = []pricing.SeasonAssignment{}
	}
	return assignments, nil
}

// AssignSeason maps one date to a season label.
func (s *CatalogService) AssignSeason(ctx context.Context, req SeasonAssignmentRequest) (*pricing.SeasonAssignment, error) {
	assignment, err := buildAssignment(req)
	if err != nil {
		return nil, err
	}
	if err := s.seasons.UpsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to upsert season assignment: %w", err)
	}
	return &assignment, nil
}

// BulkAssignSeasons applies assignments row by row with partial success.
func (s *CatalogService) BulkAssignSeasons(ctx context.Context, reqs []SeasonAssignmentRequest) *pricing.BulkResult {
	result := &pricing.BulkResult{Errors: []string{}}
	for i, req := range reqs {
		assignment, err := buildAssignment(req)
		if err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := s.seasons.UpsertAssignment(ctx, assignment); err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.AddSuccess()
	}
	return result
}

// DeleteSeasonAssignment removes the assignment for one date; the date falls
// back to mid.
func (s *CatalogService) DeleteSeasonAssignment(ctx context.Context, date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if err := s.seasons.DeleteAssignment(ctx, date); err != nil {
		return fmt.Errorf("failed to delete season assignment: %w", err)
	}
	return nil
}

// --- Promotions, surcharges, taxes ---

// ListPromotions lists every promotion.
func (s *CatalogService) ListPromotions(ctx context.Context) ([]pricing.Promotion, error) {
	promotions, err := s.adjustments.ListPromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	if promotions == nil {
		promotions = []pricing.Promotion{}
	}
	return promotions, nil
}

// SavePromotion creates or updates a promotion.
func (s *CatalogService) SavePromotion(ctx context.Context, p pricing.Promotion) (*pricing.Promotion, error) {
	if err := validateAdjustmentScope(p.AppliesTo, p.RoomTypeID, p.PackageCode); err != nil {
		return nil, err
	}
	if p.TargetSeason != "" && !p.TargetSeason.IsValid() {
		return nil, domainerr.NewValidationError(fmt.Sprintf("invalid season: %s", p.TargetSeason))
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := s.adjustments.UpsertPromotion(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to upsert promotion: %w", err)
	}
	return &p, nil
}

// DeletePromotion removes a promotion.
func (s *CatalogService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	if err := s.adjustments.DeletePromotion(ctx, id); err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}

// ListSurcharges lists every surcharge.
func (s *CatalogService) ListSurcharges(ctx context.Context) ([]pricing.Surcharge, error) {
	surcharges, err := s.adjustments.ListSurcharges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list surcharges: %w", err)
	}
	if surcharges == nil {
		surcharges = []pricing.Surcharge{}
	}
	return surcharges, nil
}

// SaveSurcharge creates or updates a surcharge.
func (s *CatalogService) SaveSurcharge(ctx context.Context, sc pricing.Surcharge) (*pricing.Surcharge, error) {
	if err := validateAdjustmentScope(sc.AppliesTo, sc.RoomTypeID, sc.PackageCode); err != nil {
		return nil, err
	}
	if sc.TargetSeason != "" && !sc.TargetSeason.IsValid() {
		return nil, domainerr.NewValidationError(fmt.Sprintf("invalid season: %s", sc.TargetSeason))
	}
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	if err := s.adjustments.UpsertSurcharge(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to upsert surcharge: %w", err)
	}
	return &sc, nil
}

// DeleteSurcharge removes a surcharge.
func (s *CatalogService) DeleteSurcharge(ctx context.Context, id uuid.UUID) error {
	if err := s.adjustments.DeleteSurcharge(ctx, id); err != nil {
		return fmt.Errorf("failed to delete surcharge: %w", err)
	}
	return nil
}

// ListTaxes lists every tax ordered by display order.
func (s *CatalogService) ListTaxes(ctx context.Context) ([]pricing.Tax, error) {
	taxes, err := s.adjustments.ListTaxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	if taxes == nil {
		taxes = []pricing.Tax{}
	}
	return taxes, nil
}

// SaveTax creates or updates a tax.
func (s *CatalogService) SaveTax(ctx context.Context, t pricing.Tax) (*pricing.Tax, error) {
	switch t.Application {
	case pricing.TaxPerTotal, pricing.TaxPerRoom, pricing.TaxPerPax, pricing.TaxPerNight:
	default:
		return nil, domainerr.NewValidationError(fmt.Sprintf("invalid tax application type: %s", t.Application))
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := s.adjustments.UpsertTax(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to upsert tax: %w", err)
	}
	return &t, nil
}

// DeleteTax removes a tax.
func (s *CatalogService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	if err := s.adjustments.DeleteTax(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tax: %w", err)
	}
	return nil
}

func buildAssignment(req SeasonAssignmentRequest) (pricing.SeasonAssignment, error) {
	if _, err := parseDate(req.Date); err != nil {
		return pricing.SeasonAssignment{}, err
	}
	season, err := pricing.ParseSeason(req.Season)
	if err != nil {
		return pricing.SeasonAssignment{}, domainerr.NewValidationError(err.Error())
	}
	return pricing.SeasonAssignment{Date: req.Date, Season: season}, nil
}

func validateAdjustmentScope(applies pricing.AppliesTo, roomTypeID *uuid.UUID, packageCode string) error {
	switch applies {
	case pricing.AppliesToAll, "":
	case pricing.AppliesToRoomType:
		if roomTypeID == nil {
			return domainerr.NewValidationError("room_type scope requires a room_type_id")
		}
	case pricing.AppliesToPackage:
		if packageCode == "" {
			return domainerr.NewValidationError("package scope requires a package_code")
		}
	default:
		return domainerr.NewValidationError(fmt.Sprintf("invalid applies_to: %s", applies))
	}
	return nil
}
