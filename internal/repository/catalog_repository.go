package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

// MealPlanModel is the GORM model for the meal_plans table, keyed by code.
type MealPlanModel struct {
	Code       string  `gorm:"primaryKey;size:10"`
	Name       string  `gorm:"not null;size:100"`
	CostAdult  float64 `gorm:"not null;default:0"`
	CostChild  float64 `gorm:"not null;default:0"`
	PriceAdult float64 `gorm:"not null;default:0"`
	PriceChild float64 `gorm:"not null;default:0"`
	Active     bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for the GORM model.
func (MealPlanModel) TableName() string { return "meal_plans" }

// ActivityModel is the GORM model for the activities table, keyed by code.
type ActivityModel struct {
	Code              string  `gorm:"primaryKey;size:10"`
	Name              string  `gorm:"not null;size:100"`
	ResortTripCost    float64 `gorm:"not null;default:0"`
	VendorTripCost    float64 `gorm:"not null;default:0"`
	CostAdult         float64 `gorm:"not null;default:0"`
	CostChild         float64 `gorm:"not null;default:0"`
	PriceAdult        float64 `gorm:"not null;default:0"`
	PriceChild        float64 `gorm:"not null;default:0"`
	DefaultCostSource string  `gorm:"not null;size:10;default:'resort'"`
	Active            bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for the GORM model.
func (ActivityModel) TableName() string { return "activities" }

// PricingConfigModel is the singleton pricing_config row.
type PricingConfigModel struct {
	ID                  uint    `gorm:"primaryKey"`
	BoatCostPerBooking  float64 `gorm:"not null;default:0"`
	BoatPriceAdult      float64 `gorm:"not null;default:0"`
	BoatPriceChild      float64 `gorm:"not null;default:0"`
	ProfitMarginPercent float64 `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (PricingConfigModel) TableName() string { return "pricing_config" }

// PackageConfigModel is the GORM model for the package_configs table.
type PackageConfigModel struct {
	PackageCode        string `gorm:"primaryKey;size:10"`
	Active             bool   `gorm:"not null;default:false"`
	IncludesMeals      bool   `gorm:"not null;default:false"`
	IncludesBoat       bool   `gorm:"not null;default:false"`
	IncludesActivities bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for the GORM model.
func (PackageConfigModel) TableName() string { return "package_configs" }

// GormCatalogRepository is the GORM implementation of CatalogRepository.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

const pricingConfigRowID = 1

// ListMealPlans returns every meal plan ordered by code.
func (r *GormCatalogRepository) ListMealPlans(ctx context.Context) ([]pricing.MealPlan, error) {
	var models []MealPlanModel
	if err := r.db.WithContext(ctx).Order("code").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}

	plans := make([]pricing.MealPlan, len(models))
	for i, m := range models {
		plans[i] = pricing.MealPlan{
			Code:       m.Code,
			Name:       m.Name,
			CostAdult:  m.CostAdult,
			CostChild:  m.CostChild,
			PriceAdult: m.PriceAdult,
			PriceChild: m.PriceChild,
			Active:     m.Active,
		}
	}
	return plans, nil
}

// UpsertMealPlan inserts or updates by code.
func (r *GormCatalogRepository) UpsertMealPlan(ctx context.Context, p pricing.MealPlan) error {
	model := MealPlanModel{
		Code:       p.Code,
		Name:       p.Name,
		CostAdult:  p.CostAdult,
		CostChild:  p.CostChild,
		PriceAdult: p.PriceAdult,
		PriceChild: p.PriceChild,
		Active:     p.Active,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert meal plan: %w", err)
	}
	return nil
}

// DeleteMealPlan removes a meal plan by code.
func (r *GormCatalogRepository) DeleteMealPlan(ctx context.Context, code string) error {
	if err := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "code = ?", code).Error; err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	return nil
}

// ListActivities returns every activity ordered by code.
func (r *GormCatalogRepository) ListActivities(ctx context.Context) ([]pricing.Activity, error) {
	var models []ActivityModel
	if err := r.db.WithContext(ctx).Order("code").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]pricing.Activity, len(models))
	for i, m := range models {
		activities[i] = pricing.Activity{
			Code:              m.Code,
			Name:              m.Name,
			ResortTripCost:    m.ResortTripCost,
			VendorTripCost:    m.VendorTripCost,
			CostAdult:         m.CostAdult,
			CostChild:         m.CostChild,
			PriceAdult:        m.PriceAdult,
			PriceChild:        m.PriceChild,
			DefaultCostSource: pricing.CostSource(m.DefaultCostSource),
			Active:            m.Active,
		}
	}
	return activities, nil
}

// UpsertActivity inserts or updates by code.
func (r *GormCatalogRepository) UpsertActivity(ctx context.Context, a pricing.Activity) error {
	model := ActivityModel{
		Code:              a.Code,
		Name:              a.Name,
		ResortTripCost:    a.ResortTripCost,
		VendorTripCost:    a.VendorTripCost,
		CostAdult:         a.CostAdult,
		CostChild:         a.CostChild,
		PriceAdult:        a.PriceAdult,
		PriceChild:        a.PriceChild,
		DefaultCostSource: string(a.DefaultCostSource),
		Active:            a.Active,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity by code.
func (r *GormCatalogRepository) DeleteActivity(ctx context.Context, code string) error {
	if err := r.db.WithContext(ctx).Delete(&ActivityModel{}, "code = ?", code).Error; err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// GetPricingConfig returns the pricing config singleton, or nil when never saved.
func (r *GormCatalogRepository) GetPricingConfig(ctx context.Context) (*pricing.PricingConfig, error) {
	var model PricingConfigModel
	err := r.db.WithContext(ctx).Where("id = ?", pricingConfigRowID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pricing config: %w", err)
	}
	return &pricing.PricingConfig{
		BoatCostPerBooking:  model.BoatCostPerBooking,
		BoatPriceAdult:      model.BoatPriceAdult,
		BoatPriceChild:      model.BoatPriceChild,
		ProfitMarginPercent: model.ProfitMarginPercent,
	}, nil
}

// SavePricingConfig writes the pricing config singleton row.
func (r *GormCatalogRepository) SavePricingConfig(ctx context.Context, c pricing.PricingConfig) error {
	model := PricingConfigModel{
		ID:                  pricingConfigRowID,
		BoatCostPerBooking:  c.BoatCostPerBooking,
		BoatPriceAdult:      c.BoatPriceAdult,
		BoatPriceChild:      c.BoatPriceChild,
		ProfitMarginPercent: c.ProfitMarginPercent,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save pricing config: %w", err)
	}
	return nil
}

// ListPackageConfigs returns every package config.
func (r *GormCatalogRepository) ListPackageConfigs(ctx context.Context) ([]pricing.PackageConfig, error) {
	var models []PackageConfigModel
	if err := r.db.WithContext(ctx).Order("package_code").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list package configs: %w", err)
	}

	configs := make([]pricing.PackageConfig, len(models))
	for i, m := range models {
		configs[i] = pricing.PackageConfig{
			PackageCode:        m.PackageCode,
			Active:             m.Active,
			IncludesMeals:      m.IncludesMeals,
			IncludesBoat:       m.IncludesBoat,
			IncludesActivities: m.IncludesActivities,
		}
	}
	return configs, nil
}

// UpsertPackageConfig inserts or updates by package code.
func (r *GormCatalogRepository) UpsertPackageConfig(ctx context.Context, p pricing.PackageConfig) error {
	model := PackageConfigModel{
		PackageCode:        p.PackageCode,
		Active:             p.Active,
		IncludesMeals:      p.IncludesMeals,
		IncludesBoat:       p.IncludesBoat,
		IncludesActivities: p.IncludesActivities,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "package_code"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert package config: %w", err)
	}
	return nil
}
