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

// RateOverrideModel is the GORM model for the rate_overrides table, keyed by
// (room_type_id, date).
type RateOverrideModel struct {
	RoomTypeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date       string    `gorm:"primaryKey;size:10"` // YYYY-MM-DD
	Type       string    `gorm:"not null;size:20"`
	Value      float64   `gorm:"not null"`
	Note       string    `gorm:"size:500"`
}

// TableName returns the table name for the GORM model.
func (RateOverrideModel) TableName() string { return "rate_overrides" }

// RestrictionModel is the GORM model for the restrictions table.
type RestrictionModel struct {
	RoomTypeID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date              string    `gorm:"primaryKey;size:10"`
	Closed            bool      `gorm:"not null;default:false"`
	ClosedToArrival   bool      `gorm:"not null;default:false"`
	ClosedToDeparture bool      `gorm:"not null;default:false"`
	MinStayNights     int       `gorm:"not null;default:0"`
	MaxStayNights     int       `gorm:"not null;default:0"`
	MinAdvanceDays    int       `gorm:"not null;default:0"`
	MaxAdvanceDays    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for the GORM model.
func (RestrictionModel) TableName() string { return "restrictions" }

// SeasonSettingsModel is the singleton season_settings row.
type SeasonSettingsModel struct {
	ID          uint    `gorm:"primaryKey"`
	LowPercent  float64 `gorm:"not null;default:-10"`
	MidPercent  float64 `gorm:"not null;default:0"`
	HighPercent float64 `gorm:"not null;default:15"`
	RoundToFive bool    `gorm:"not null;default:false"`
}

// TableName returns the table name for the GORM model.
func (SeasonSettingsModel) TableName() string { return "season_settings" }

// SeasonAssignmentModel maps a calendar date to a season label.
type SeasonAssignmentModel struct {
	Date   string `gorm:"primaryKey;size:10"`
	Season string `gorm:"not null;size:10"`
}

// TableName returns the table name for the GORM model.
func (SeasonAssignmentModel) TableName() string { return "season_assignments" }

// GormOverrideRepository is the GORM implementation of OverrideRepository.
type GormOverrideRepository struct {
	db *gorm.DB
}

// NewGormOverrideRepository creates a new GormOverrideRepository.
func NewGormOverrideRepository(db *gorm.DB) *GormOverrideRepository {
	return &GormOverrideRepository{db: db}
}

// FindOverride returns the override for the exact date, or nil when absent.
func (r *GormOverrideRepository) FindOverride(ctx context.Context, roomTypeID uuid.UUID, date string) (*pricing.RateOverride, error) {
	var model RateOverrideModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date = ?", roomTypeID, date).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find override: %w", err)
	}
	o := toOverride(model)
	return &o, nil
}

// ListOverrides returns overrides for a room in [from, to].
func (r *GormOverrideRepository) ListOverrides(ctx context.Context, roomTypeID uuid.UUID, from, to string) ([]pricing.RateOverride, error) {
	var models []RateOverrideModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date BETWEEN ? AND ?", roomTypeID, from, to).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	overrides := make([]pricing.RateOverride, len(models))
	for i, m := range models {
		overrides[i] = toOverride(m)
	}
	return overrides, nil
}

// UpsertOverride inserts or updates by the (room_type_id, date) key.
func (r *GormOverrideRepository) UpsertOverride(ctx context.Context, o pricing.RateOverride) error {
	model := RateOverrideModel{
		RoomTypeID: o.RoomTypeID,
		Date:       o.Date,
		Type:       string(o.Type),
		Value:      o.Value,
		Note:       o.Note,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert override: %w", err)
	}
	return nil
}

// DeleteOverride removes the override for the exact date.
func (r *GormOverrideRepository) DeleteOverride(ctx context.Context, roomTypeID uuid.UUID, date string) error {
	err := r.db.WithContext(ctx).
		Delete(&RateOverrideModel{}, "room_type_id = ? AND date = ?", roomTypeID, date).Error
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// GormRestrictionRepository is the GORM implementation of RestrictionRepository.
type GormRestrictionRepository struct {
	db *gorm.DB
}

// NewGormRestrictionRepository creates a new GormRestrictionRepository.
func NewGormRestrictionRepository(db *gorm.DB) *GormRestrictionRepository {
	return &GormRestrictionRepository{db: db}
}

// FindRestriction returns the restriction for the exact date, or nil when absent.
func (r *GormRestrictionRepository) FindRestriction(ctx context.Context, roomTypeID uuid.UUID, date string) (*pricing.Restriction, error) {
	var model RestrictionModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date = ?", roomTypeID, date).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find restriction: %w", err)
	}
	res := toRestriction(model)
	return &res, nil
}

// ListRestrictions returns restrictions for a room in [from, to].
func (r *GormRestrictionRepository) ListRestrictions(ctx context.Context, roomTypeID uuid.UUID, from, to string) ([]pricing.Restriction, error) {
	var models []RestrictionModel
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date BETWEEN ? AND ?", roomTypeID, from, to).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restrictions: %w", err)
	}

	restrictions := make([]pricing.Restriction, len(models))
	for i, m := range models {
		restrictions[i] = toRestriction(m)
	}
	return restrictions, nil
}

// UpsertRestriction inserts or updates by the (room_type_id, date) key.
func (r *GormRestrictionRepository) UpsertRestriction(ctx context.Context, res pricing.Restriction) error {
	model := RestrictionModel{
		RoomTypeID:        res.RoomTypeID,
		Date:              res.Date,
		Closed:            res.Closed,
		ClosedToArrival:   res.ClosedToArrival,
		ClosedToDeparture: res.ClosedToDeparture,
		MinStayNights:     res.MinStayNights,
		MaxStayNights:     res.MaxStayNights,
		MinAdvanceDays:    res.MinAdvanceDays,
		MaxAdvanceDays:    res.MaxAdvanceDays,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert restriction: %w", err)
	}
	return nil
}

// DeleteRestriction removes the restriction for the exact date.
func (r *GormRestrictionRepository) DeleteRestriction(ctx context.Context, roomTypeID uuid.UUID, date string) error {
	err := r.db.WithContext(ctx).
		Delete(&RestrictionModel{}, "room_type_id = ? AND date = ?", roomTypeID, date).Error
	if err != nil {
		return fmt.Errorf("failed to delete restriction: %w", err)
	}
	return nil
}

// GormSeasonRepository is the GORM implementation of SeasonRepository.
type GormSeasonRepository struct {
	db *gorm.DB
}

// NewGormSeasonRepository creates a new GormSeasonRepository.
func NewGormSeasonRepository(db *gorm.DB) *GormSeasonRepository {
	return &GormSeasonRepository{db: db}
}

const seasonSettingsRowID = 1

// GetSettings returns the season settings singleton, or nil when never saved.
func (r *GormSeasonRepository) GetSettings(ctx context.Context) (*pricing.SeasonSettings, error) {
	var model SeasonSettingsModel
	err := r.db.WithContext(ctx).Where("id = ?", seasonSettingsRowID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get season settings: %w", err)
	}
	return &pricing.SeasonSettings{
		LowPercent:  model.LowPercent,
		MidPercent:  model.MidPercent,
		HighPercent: model.HighPercent,
		RoundToFive: model.RoundToFive,
	}, nil
}

// SaveSettings writes the season settings singleton row.
func (r *GormSeasonRepository) SaveSettings(ctx context.Context, s pricing.SeasonSettings) error {
	model := SeasonSettingsModel{
		ID:          seasonSettingsRowID,
		LowPercent:  s.LowPercent,
		MidPercent:  s.MidPercent,
		HighPercent: s.HighPercent,
		RoundToFive: s.RoundToFive,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save season settings: %w", err)
	}
	return nil
}

// ListAssignments returns season assignments in [from, to].
func (r *GormSeasonRepository) ListAssignments(ctx context.Context, from, to string) ([]pricing.SeasonAssignment, error) {
	var models []SeasonAssignmentModel
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list season assignments: %w", err)
	}

	assignments := make([]pricing.SeasonAssignment, len(models))
	for i, m := range models {
		assignments[i] = pricing.SeasonAssignment{Date: m.Date, Season: pricing.Season(m.Season)}
	}
	return assignments, nil
}

// UpsertAssignment inserts or updates by date.
func (r *GormSeasonRepository) UpsertAssignment(ctx context.Context, a pricing.SeasonAssignment) error {
	model := SeasonAssignmentModel{Date: a.Date, Season: string(a.Season)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert season assignment: %w", err)
	}
	return nil
}

// DeleteAssignment removes the assignment for a date.
func (r *GormSeasonRepository) DeleteAssignment(ctx context.Context, date string) error {
	if err := r.db.WithContext(ctx).Delete(&SeasonAssignmentModel{}, "date = ?", date).Error; err != nil {
		return fmt.Errorf("failed to delete season assignment: %w", err)
	}
	return nil
}

func toOverride(m RateOverrideModel) pricing.RateOverride {
	return pricing.RateOverride{
		RoomTypeID: m.RoomTypeID,
		Date:       m.Date,
		Type:       pricing.OverrideType(m.Type),
		Value:      m.Value,
		Note:       m.Note,
	}
}

func toRestriction(m RestrictionModel) pricing.Restriction {
	return pricing.Restriction{
		RoomTypeID:        m.RoomTypeID,
		Date:              m.Date,
		Closed:            m.Closed,
		ClosedToArrival:   m.ClosedToArrival,
		ClosedToDeparture: m.ClosedToDeparture,
		MinStayNights:     m.MinStayNights,
		MaxStayNights:     m.MaxStayNights,
		MinAdvanceDays:    m.MinAdvanceDays,
		MaxAdvanceDays:    m.MaxAdvanceDays,
	}
}
