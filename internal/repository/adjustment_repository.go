package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

// PromotionModel is the GORM model for the promotions table.
type PromotionModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"not null;size:100"`
	DateStart        time.Time  `gorm:"not null;index"`
	DateEnd          time.Time  `gorm:"not null;index"`
	TargetSeason     string     `gorm:"size:10"`
	PercentOff       float64    `gorm:"not null"`
	MinDaysInAdvance int        `gorm:"not null;default:0"`
	AppliesTo        string     `gorm:"not null;size:20;default:'all'"`
	RoomTypeID       *uuid.UUID `gorm:"type:uuid"`
	PackageCode      string     `gorm:"size:10"`
	Weekdays         string     `gorm:"size:20"` // comma-separated ISO weekdays, empty = all
	Active           bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for the GORM model.
func (PromotionModel) TableName() string { return "promotions" }

// SurchargeModel is the GORM model for the surcharges table.
type SurchargeModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"not null;size:100"`
	DateStart       time.Time  `gorm:"not null;index"`
	DateEnd         time.Time  `gorm:"not null;index"`
	TargetSeason    string     `gorm:"size:10"`
	AmountPerPax    float64    `gorm:"not null"`
	AppliesTo       string     `gorm:"not null;size:20;default:'all'"`
	RoomTypeID      *uuid.UUID `gorm:"type:uuid"`
	PackageCode     string     `gorm:"size:10"`
	Weekdays        string     `gorm:"size:20"`
	ApplyToAdults   bool       `gorm:"not null;default:true"`
	ApplyToChildren bool       `gorm:"not null;default:true"`
	Active          bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for the GORM model.
func (SurchargeModel) TableName() string { return "surcharges" }

// TaxModel is the GORM model for the taxes table.
type TaxModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null;size:100"`
	Rate            float64   `gorm:"not null"`
	ApplicationType string    `gorm:"not null;size:20"`
	IsPercentage    bool      `gorm:"not null;default:true"`
	ApplyToAdults   bool      `gorm:"not null;default:true"`
	ApplyToChildren bool      `gorm:"not null;default:true"`
	DisplayOrder    int       `gorm:"not null;default:0"`
	Active          bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for the GORM model.
func (TaxModel) TableName() string { return "taxes" }

// GormAdjustmentRepository is the GORM implementation of AdjustmentRepository.
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository.
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// ListActivePromotions returns active promotions whose window overlaps [from, to].
func (r *GormAdjustmentRepository) ListActivePromotions(ctx context.Context, from, to string) ([]pricing.Promotion, error) {
	var models []PromotionModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND date_start <= ? AND date_end >= ?", true, to, from).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active promotions: %w", err)
	}
	return toPromotions(models), nil
}

// ListPromotions returns every promotion.
func (r *GormAdjustmentRepository) ListPromotions(ctx context.Context) ([]pricing.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).Order("date_start").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return toPromotions(models), nil
}

// UpsertPromotion inserts or updates by ID.
func (r *GormAdjustmentRepository) UpsertPromotion(ctx context.Context, p pricing.Promotion) error {
	model := PromotionModel{
		ID:               p.ID,
		Name:             p.Name,
		DateStart:        p.DateStart,
		DateEnd:          p.DateEnd,
		TargetSeason:     string(p.TargetSeason),
		PercentOff:       p.PercentOff,
		MinDaysInAdvance: p.MinDaysInAdvance,
		AppliesTo:        string(p.AppliesTo),
		RoomTypeID:       p.RoomTypeID,
		PackageCode:      p.PackageCode,
		Weekdays:         joinWeekdays(p.Weekdays),
		Active:           p.Active,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert promotion: %w", err)
	}
	return nil
}

// DeletePromotion removes a promotion by ID.
func (r *GormAdjustmentRepository) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&PromotionModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}

// ListActiveSurcharges returns active surcharges whose window overlaps [from, to].
func (r *GormAdjustmentRepository) ListActiveSurcharges(ctx context.Context, from, to string) ([]pricing.Surcharge, error) {
	var models []SurchargeModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND date_start <= ? AND date_end >= ?", true, to, from).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active surcharges: %w", err)
	}
	return toSurcharges(models), nil
}

// ListSurcharges returns every surcharge.
func (r *GormAdjustmentRepository) ListSurcharges(ctx context.Context) ([]pricing.Surcharge, error) {
	var models []SurchargeModel
	if err := r.db.WithContext(ctx).Order("date_start").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list surcharges: %w", err)
	}
	return toSurcharges(models), nil
}

// UpsertSurcharge inserts or updates by ID.
func (r *GormAdjustmentRepository) UpsertSurcharge(ctx context.Context, s pricing.Surcharge) error {
	model := SurchargeModel{
		ID:              s.ID,
		Name:            s.Name,
		DateStart:       s.DateStart,
		DateEnd:         s.DateEnd,
		TargetSeason:    string(s.TargetSeason),
		AmountPerPax:    s.AmountPerPax,
		AppliesTo:       string(s.AppliesTo),
		RoomTypeID:      s.RoomTypeID,
		PackageCode:     s.PackageCode,
		Weekdays:        joinWeekdays(s.Weekdays),
		ApplyToAdults:   s.ApplyToAdults,
		ApplyToChildren: s.ApplyToChildren,
		Active:          s.Active,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert surcharge: %w", err)
	}
	return nil
}

// DeleteSurcharge removes a surcharge by ID.
func (r *GormAdjustmentRepository) DeleteSurcharge(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&SurchargeModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete surcharge: %w", err)
	}
	return nil
}

// ListActiveTaxes returns active taxes ordered by display order.
func (r *GormAdjustmentRepository) ListActiveTaxes(ctx context.Context) ([]pricing.Tax, error) {
	var models []TaxModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active taxes: %w", err)
	}
	return toTaxes(models), nil
}

// ListTaxes returns every tax ordered by display order.
func (r *GormAdjustmentRepository) ListTaxes(ctx context.Context) ([]pricing.Tax, error) {
	var models []TaxModel
	if err := r.db.WithContext(ctx).Order("display_order").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return toTaxes(models), nil
}

// UpsertTax inserts or updates by ID.
func (r *GormAdjustmentRepository) UpsertTax(ctx context.Context, t pricing.Tax) error {
	model := TaxModel{
		ID:              t.ID,
		Name:            t.Name,
		Rate:            t.Rate,
		ApplicationType: string(t.Application),
		IsPercentage:    t.IsPercentage,
		ApplyToAdults:   t.ApplyToAdults,
		ApplyToChildren: t.ApplyToChildren,
		DisplayOrder:    t.DisplayOrder,
		Active:          t.Active,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert tax: %w", err)
	}
	return nil
}

// DeleteTax removes a tax by ID.
func (r *GormAdjustmentRepository) DeleteTax(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&TaxModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete tax: %w", err)
	}
	return nil
}

// --- Conversion helpers ---

func toPromotions(models []PromotionModel) []pricing.Promotion {
	promotions := make([]pricing.Promotion, len(models))
	for i, m := range models {
		promotions[i] = pricing.Promotion{
			ID:               m.ID,
			Name:             m.Name,
			DateStart:        m.DateStart,
			DateEnd:          m.DateEnd,
			TargetSeason:     pricing.Season(m.TargetSeason),
			PercentOff:       m.PercentOff,
			MinDaysInAdvance: m.MinDaysInAdvance,
			AppliesTo:        pricing.AppliesTo(m.AppliesTo),
			RoomTypeID:       m.RoomTypeID,
			PackageCode:      m.PackageCode,
			Weekdays:         splitWeekdays(m.Weekdays),
			Active:           m.Active,
		}
	}
	return promotions
}

func toSurcharges(models []SurchargeModel) []pricing.Surcharge {
	surcharges := make([]pricing.Surcharge, len(models))
	for i, m := range models {
		surcharges[i] = pricing.Surcharge{
			ID:              m.ID,
			Name:            m.Name,
			DateStart:       m.DateStart,
			DateEnd:         m.DateEnd,
			TargetSeason:    pricing.Season(m.TargetSeason),
			AmountPerPax:    m.AmountPerPax,
			AppliesTo:       pricing.AppliesTo(m.AppliesTo),
			RoomTypeID:      m.RoomTypeID,
			PackageCode:     m.PackageCode,
			Weekdays:        splitWeekdays(m.Weekdays),
			ApplyToAdults:   m.ApplyToAdults,
			ApplyToChildren: m.ApplyToChildren,
			Active:          m.Active,
		}
	}
	return surcharges
}

func toTaxes(models []TaxModel) []pricing.Tax {
	taxes := make([]pricing.Tax, len(models))
	for i, m := range models {
		taxes[i] = pricing.Tax{
			ID:              m.ID,
			Name:            m.Name,
			Rate:            m.Rate,
			Application:     pricing.TaxApplication(m.ApplicationType),
			IsPercentage:    m.IsPercentage,
			ApplyToAdults:   m.ApplyToAdults,
			ApplyToChildren: m.ApplyToChildren,
			DisplayOrder:    m.DisplayOrder,
			Active:          m.Active,
		}
	}
	return taxes
}

func joinWeekdays(weekdays []int) string {
	if len(weekdays) == 0 {
		return ""
	}
	parts := make([]string, len(weekdays))
	for i, w := range weekdays {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func splitWeekdays(s string) []int {
	if s == "" {
		return nil
	}
	var weekdays []int
	for _, part := range strings.Split(s, ",") {
		if w, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			weekdays = append(weekdays, w)
		}
	}
	return weekdays
}
