package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
	"github.com/resort-pms/service-pricing/internal/pkg/domainerr"
)

// OverrideRequest is one per-date rate override to apply.
type OverrideRequest struct {
	RoomTypeID uuid.UUID `json:"room_type_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Type       string    `json:"type" binding:"required"`
	Value      float64   `json:"value"`
	Note       string    `json:"note"`
}

// RestrictionRequest is one per-date booking restriction to apply.
type RestrictionRequest struct {
	RoomTypeID        uuid.UUID `json:"room_type_id" binding:"required"`
	Date              string    `json:"date" binding:"required"`
	Closed            bool      `json:"closed"`
	ClosedToArrival   bool      `json:"closed_to_arrival"`
	ClosedToDeparture bool      `json:"closed_to_departure"`
	MinStayNights     int       `json:"min_stay_nights"`
	MaxStayNights     int       `json:"max_stay_nights"`
	MinAdvanceDays    int       `json:"min_advance_days"`
	MaxAdvanceDays    int       `json:"max_advance_days"`
}

// CalendarDTO is the resolved calendar for one room type.
type CalendarDTO struct {
	RoomTypeID   uuid.UUID             `json:"room_type_id"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Rates        []pricing.ResolvedRate `json:"rates"`
	Restrictions []pricing.Restriction  `json:"restrictions"`
}

// RateService resolves effective nightly rates and manages the per-date
// override and restriction layers.
type RateService struct {
	roomTypes    pricing.RoomTypeRepository
	rates        pricing.RateRepository
	overrides    pricing.OverrideRepository
	restrictions pricing.RestrictionRepository
	seasons      pricing.SeasonRepository
	logger       *zap.Logger
}

// NewRateService creates a new RateService.
func NewRateService(
	roomTypes pricing.RoomTypeRepository,
	rates pricing.RateRepository,
	overrides pricing.OverrideRepository,
	restrictions pricing.RestrictionRepository,
	seasons pricing.SeasonRepository,
	logger *zap.Logger,
) *RateService {
	return &RateService{
		roomTypes:    roomTypes,
		rates:        rates,
		overrides:    overrides,
		restrictions: restrictions,
		seasons:      seasons,
		logger:       logger,
	}
}

// ResolveRate resolves the effective rate for one room type on one date.
func (s *RateService) ResolveRate(ctx context.Context, roomTypeID uuid.UUID, date string) (*pricing.ResolvedRate, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, roomTypeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	resolved := pricing.NewRateResolver(snap).Resolve(roomTypeID, day)
	return &resolved, nil
}

// ResolveCalendar resolves every night in [from, to] and lists the booking
// restrictions alongside, for the admin calendar view.
func (s *RateService) ResolveCalendar(ctx context.Context, roomTypeID uuid.UUID, from, to string) (*CalendarDTO, error) {
	fromDay, toDay, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	// The range is inclusive of the end date.
	end := toDay.AddDate(0, 0, 1)

	snap, err := s.loadSnapshot(ctx, roomTypeID, fromDay, end)
	if err != nil {
		return nil, err
	}

	restrictions, err := s.restrictions.ListRestrictions(ctx, roomTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list restrictions: %w", err)
	}
	if restrictions == nil {
		restrictions = []pricing.Restriction{}
	}

	return &CalendarDTO{
		RoomTypeID:   roomTypeID,
		From:         from,
		To:           to,
		Rates:        pricing.NewRateResolver(snap).ResolveRange(roomTypeID, fromDay, end),
		Restrictions: restrictions,
	}, nil
}

// ApplyOverride upserts one per-date override.
func (s *RateService) ApplyOverride(ctx context.Context, req OverrideRequest) (*pricing.RateOverride, error) {
	o, err := s.buildOverride(req)
	if err != nil {
		return nil, err
	}
	if err := s.overrides.UpsertOverride(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to upsert override: %w", err)
	}
	return &o, nil
}

// BulkApplyOverrides applies overrides row by row. Each row succeeds or fails
// on its own; there is no batch atomicity.
func (s *RateService) BulkApplyOverrides(ctx context.Context, reqs []OverrideRequest) *pricing.BulkResult {
	result := &pricing.BulkResult{Errors: []string{}}
	for i, req := range reqs {
		o, err := s.buildOverride(req)
		if err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := s.overrides.UpsertOverride(ctx, o); err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.AddSuccess()
	}
	return result
}

// DeleteOverride removes the override for one room/date.
func (s *RateService) DeleteOverride(ctx context.Context, roomTypeID uuid.UUID, date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if err := s.overrides.DeleteOverride(ctx, roomTypeID, date); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// ListOverrides lists the overrides for one room in [from, to].
func (s *RateService) ListOverrides(ctx context.Context, roomTypeID uuid.UUID, from, to string) ([]pricing.RateOverride, error) {
	if _, _, err := parseDateRange(from, to); err != nil {
		return nil, err
	}
	overrides, err := s.overrides.ListOverrides(ctx, roomTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	if overrides == nil {
		overrides = []pricing.RateOverride{}
	}
	return overrides, nil
}

// ApplyRestriction upserts one per-date restriction.
func (s *RateService) ApplyRestriction(ctx context.Context, req RestrictionRequest) (*pricing.Restriction, error) {
	r, err := buildRestriction(req)
	if err != nil {
		return nil, err
	}
	if err := s.restrictions.UpsertRestriction(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to upsert restriction: %w", err)
	}
	return &r, nil
}

// BulkApplyRestrictions applies restrictions row by row with partial success.
func (s *RateService) BulkApplyRestrictions(ctx context.Context, reqs []RestrictionRequest) *pricing.BulkResult {
	result := &pricing.BulkResult{Errors: []string{}}
	for i, req := range reqs {
		r, err := buildRestriction(req)
		if err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := s.restrictions.UpsertRestriction(ctx, r); err != nil {
			result.AddError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.AddSuccess()
	}
	return result
}

// DeleteRestriction removes the restriction for one room/date.
func (s *RateService) DeleteRestriction(ctx context.Context, roomTypeID uuid.UUID, date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if err := s.restrictions.DeleteRestriction(ctx, roomTypeID, date); err != nil {
		return fmt.Errorf("failed to delete restriction: %w", err)
	}
	return nil
}

// loadSnapshot assembles the snapshot the resolver reads for one room over
// [from, to). Absent settings, assignments and rates are left out; the engine
// resolves them to defaults.
func (s *RateService) loadSnapshot(ctx context.Context, roomTypeID uuid.UUID, from, to time.Time) (*pricing.Snapshot, error) {
	settings, err := s.seasons.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get season settings: %w", err)
	}
	if settings == nil {
		def := pricing.DefaultSeasonSettings()
		settings = &def
	}

	snap := pricing.NewSnapshot(*settings)

	fromKey, toKey := pricing.DateKey(from), pricing.DateKey(to.AddDate(0, 0, -1))
	assignments, err := s.seasons.ListAssignments(ctx, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list season assignments: %w", err)
	}
	for _, a := range assignments {
		snap.Seasons[a.Date] = a.Season
	}

	rates, err := s.rates.ListAnnualBaseRatesForRoom(ctx, roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list base rates: %w", err)
	}
	for _, r := range rates {
		snap.AddAnnualRate(r)
	}

	overrides, err := s.overrides.ListOverrides(ctx, roomTypeID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	for _, o := range overrides {
		snap.AddOverride(o)
	}

	return snap, nil
}

func (s *RateService) buildOverride(req OverrideRequest) (pricing.RateOverride, error) {
	if _, err := parseDate(req.Date); err != nil {
		return pricing.RateOverride{}, err
	}
	kind, err := pricing.ParseOverrideType(req.Type)
	if err != nil {
		return pricing.RateOverride{}, domainerr.NewValidationError(err.Error())
	}
	return pricing.RateOverride{
		RoomTypeID: req.RoomTypeID,
		Date:       req.Date,
		Type:       kind,
		Value:      req.Value,
		Note:       req.Note,
	}, nil
}

func buildRestriction(req RestrictionRequest) (pricing.Restriction, error) {
	if _, err := parseDate(req.Date); err != nil {
		return pricing.Restriction{}, err
	}
	if req.MinStayNights < 0 || req.MaxStayNights < 0 || req.MinAdvanceDays < 0 || req.MaxAdvanceDays < 0 {
		return pricing.Restriction{}, domainerr.NewValidationError("restriction limits must not be negative")
	}
	return pricing.Restriction{
		RoomTypeID:        req.RoomTypeID,
		Date:              req.Date,
		Closed:            req.Closed,
		ClosedToArrival:   req.ClosedToArrival,
		ClosedToDeparture: req.ClosedToDeparture,
		MinStayNights:     req.MinStayNights,
		MaxStayNights:     req.MaxStayNights,
		MinAdvanceDays:    req.MinAdvanceDays,
		MaxAdvanceDays:    req.MaxAdvanceDays,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domainerr.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDay, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toDay, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if toDay.Before(fromDay) {
		return time.Time{}, time.Time{}, domainerr.NewValidationError("to date must not be before from date")
	}
	return fromDay, toDay, nil
}
