package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

// RoomTypeModel is the GORM model for the room_types table.
type RoomTypeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;size:100;uniqueIndex"`
	Code         string    `gorm:"not null;size:20;uniqueIndex"`
	DisplayOrder int       `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (RoomTypeModel) TableName() string { return "room_types" }

// AnnualBaseRateModel is the GORM model for the annual_base_rates table,
// keyed by (room_type_id, year).
type AnnualBaseRateModel struct {
	RoomTypeID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year          int       `gorm:"primaryKey"`
	CostPerNight  float64   `gorm:"not null;default:0"`
	PricePerNight float64   `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (AnnualBaseRateModel) TableName() string { return "annual_base_rates" }

// SeasonalRateModel is the GORM model for the seasonal_rates table, keyed by
// (room_type_id, season, year). This is the parallel representation fed only
// by the bulk seasonal editor.
type SeasonalRateModel struct {
	RoomTypeID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Season        string    `gorm:"primaryKey;size:10"`
	Year          int       `gorm:"primaryKey"`
	CostPerNight  float64   `gorm:"not null;default:0"`
	PricePerNight float64   `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (SeasonalRateModel) TableName() string { return "seasonal_rates" }

// GormRoomTypeRepository is the GORM implementation of RoomTypeRepository.
type GormRoomTypeRepository struct {
	db *gorm.DB
}

// NewGormRoomTypeRepository creates a new GormRoomTypeRepository.
func NewGormRoomTypeRepository(db *gorm.DB) *GormRoomTypeRepository {
	return &GormRoomTypeRepository{db: db}
}

// List returns all room types ordered for display.
func (r *GormRoomTypeRepository) List(ctx context.Context) ([]pricing.RoomType, error) {
	var models []RoomTypeModel
	if err := r.db.WithContext(ctx).Order("display_order, name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	rooms := make([]pricing.RoomType, len(models))
	for i, m := range models {
		rooms[i] = toRoomType(m)
	}
	return rooms, nil
}

// FindByID returns the room type, or nil when absent.
func (r *GormRoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.RoomType, error) {
	var model RoomTypeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}
	rt := toRoomType(model)
	return &rt, nil
}

// Upsert inserts or updates a room type by primary key.
func (r *GormRoomTypeRepository) Upsert(ctx context.Context, rt pricing.RoomType) error {
	model := RoomTypeModel{ID: rt.ID, Name: rt.Name, Code: rt.Code, DisplayOrder: rt.DisplayOrder}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert room type: %w", err)
	}
	return nil
}

// Delete removes a room type by ID.
func (r *GormRoomTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&RoomTypeModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}
	return nil
}

// GormRateRepository is the GORM implementation of RateRepository.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository.
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindAnnualBaseRate returns the rate for the exact year, or nil when absent.
func (r *GormRateRepository) FindAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, year int) (*pricing.AnnualBaseRate, error) {
	var model AnnualBaseRateModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND year = ?", roomTypeID, year).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find annual base rate: %w", err)
	}
	rate := toAnnualBaseRate(model)
	return &rate, nil
}

// FindLatestAnnualBaseRate returns the rate with the greatest year strictly
// before maxYear, or nil when none exists.
func (r *GormRateRepository) FindLatestAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, maxYear int) (*pricing.AnnualBaseRate, error) {
	var model AnnualBaseRateModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND year < ?", roomTypeID, maxYear).
		Order("year DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest annual base rate: %w", err)
	}
	rate := toAnnualBaseRate(model)
	return &rate, nil
}

// ListAnnualBaseRates returns every room's rate for the given year.
func (r *GormRateRepository) ListAnnualBaseRates(ctx context.Context, year int) ([]pricing.AnnualBaseRate, error) {
	var models []AnnualBaseRateModel
	if err := r.db.WithContext(ctx).Where("year = ?", year).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list annual base rates: %w", err)
	}

	rates := make([]pricing.AnnualBaseRate, len(models))
	for i, m := range models {
		rates[i] = toAnnualBaseRate(m)
	}
	return rates, nil
}

// ListAnnualBaseRatesForRoom returns every year's rate for one room.
func (r *GormRateRepository) ListAnnualBaseRatesForRoom(ctx context.Context, roomTypeID uuid.UUID) ([]pricing.AnnualBaseRate, error) {
	var models []AnnualBaseRateModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("year").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list annual base rates for room: %w", err)
	}

	rates := make([]pricing.AnnualBaseRate, len(models))
	for i, m := range models {
		rates[i] = toAnnualBaseRate(m)
	}
	return rates, nil
}

// UpsertAnnualBaseRate inserts or updates by the (room_type_id, year) key, so
// re-running an identical batch never creates duplicates.
func (r *GormRateRepository) UpsertAnnualBaseRate(ctx context.Context, rate pricing.AnnualBaseRate) error {
	model := AnnualBaseRateModel{
		RoomTypeID:    rate.RoomTypeID,
		Year:          rate.Year,
		CostPerNight:  rate.CostPerNight,
		PricePerNight: rate.PricePerNight,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "year"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert annual base rate: %w", err)
	}
	return nil
}

// ListSeasonalRates returns every seasonal rate for the given year.
func (r *GormRateRepository) ListSeasonalRates(ctx context.Context, year int) ([]pricing.SeasonalRate, error) {
	var models []SeasonalRateModel
	if err := r.db.WithContext(ctx).Where("year = ?", year).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list seasonal rates: %w", err)
	}

	rates := make([]pricing.SeasonalRate, len(models))
	for i, m := range models {
		rates[i] = pricing.SeasonalRate{
			RoomTypeID:    m.RoomTypeID,
			Season:        pricing.Season(m.Season),
			Year:          m.Year,
			CostPerNight:  m.CostPerNight,
			PricePerNight: m.PricePerNight,
		}
	}
	return rates, nil
}

// UpsertSeasonalRate inserts or updates by the (room_type_id, season, year) key.
func (r *GormRateRepository) UpsertSeasonalRate(ctx context.Context, rate pricing.SeasonalRate) error {
	model := SeasonalRateModel{
		RoomTypeID:    rate.RoomTypeID,
		Season:        string(rate.Season),
		Year:          rate.Year,
		CostPerNight:  rate.CostPerNight,
		PricePerNight: rate.PricePerNight,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "season"}, {Name: "year"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert seasonal rate: %w", err)
	}
	return nil
}

func toRoomType(m RoomTypeModel) pricing.RoomType {
	return pricing.RoomType{ID: m.ID, Name: m.Name, Code: m.Code, DisplayOrder: m.DisplayOrder}
}

func toAnnualBaseRate(m AnnualBaseRateModel) pricing.AnnualBaseRate {
	return pricing.AnnualBaseRate{
		RoomTypeID:    m.RoomTypeID,
		Year:          m.Year,
		CostPerNight:  m.CostPerNight,
		PricePerNight: m.PricePerNight,
	}
}
