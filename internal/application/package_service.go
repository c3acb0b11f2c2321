package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
	"github.com/resort-pms/service-pricing/internal/pkg/domainerr"
)

// MatrixRequest selects the sweep of the package composition matrix.
type MatrixRequest struct {
	Year      int
	Nights    int
	PaxCounts []int
}

// MatrixDTO is the composed package matrix.
type MatrixDTO struct {
	Year      int                  `json:"year"`
	Nights    int                  `json:"nights"`
	PaxCounts []int                `json:"pax_counts"`
	Rows      []pricing.PackageRow `json:"rows"`
}

// PackageService sweeps the package composition matrix over every room type,
// season and pax count.
type PackageService struct {
	roomTypes pricing.RoomTypeRepository
	rates     pricing.RateRepository
	seasons   pricing.SeasonRepository
	catalog   pricing.CatalogRepository
	logger    *zap.Logger
}

// NewPackageService creates a new PackageService.
func NewPackageService(
	roomTypes pricing.RoomTypeRepository,
	rates pricing.RateRepository,
	seasons pricing.SeasonRepository,
	catalog pricing.CatalogRepository,
	logger *zap.Logger,
) *PackageService {
	return &PackageService{
		roomTypes: roomTypes,
		rates:     rates,
		seasons:   seasons,
		catalog:   catalog,
		logger:    logger,
	}
}

// ComposeMatrix builds the matrix for the requested year, nights and pax
// counts. Rooms without a rate for the year fall back to the latest earlier
// year, then to the zero rate.
func (s *PackageService) ComposeMatrix(ctx context.Context, req MatrixRequest) (*MatrixDTO, error) {
	if req.Nights < 1 {
		return nil, domainerr.NewValidationError("nights must be at least 1")
	}
	if len(req.PaxCounts) == 0 {
		return nil, domainerr.NewValidationError("at least one pax count is required")
	}
	for _, pax := range req.PaxCounts {
		if pax < 0 {
			return nil, domainerr.NewValidationError("pax counts must not be negative")
		}
	}

	roomTypes, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	baseRates := make(map[uuid.UUID]pricing.AnnualBaseRate, len(roomTypes))
	for _, room := range roomTypes {
		rates, err := s.rates.ListAnnualBaseRatesForRoom(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list base rates: %w", err)
		}
		snap := pricing.NewSnapshot(pricing.SeasonSettings{})
		for _, r := range rates {
			snap.AddAnnualRate(r)
		}
		baseRates[room.ID] = snap.BaseRateFor(room.ID, req.Year)
	}

	settings, err := s.seasons.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get season settings: %w", err)
	}
	if settings == nil {
		def := pricing.DefaultSeasonSettings()
		settings = &def
	}

	meals, err := s.catalog.ListMealPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	activities, err := s.catalog.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	config, err := s.catalog.GetPricingConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing config: %w", err)
	}
	if config == nil {
		config = &pricing.PricingConfig{}
	}
	packages, err := s.catalog.ListPackageConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list package configs: %w", err)
	}

	composer := pricing.NewPackageComposer(pricing.CompositionInput{
		RoomTypes:  roomTypes,
		BaseRates:  baseRates,
		Settings:   *settings,
		Meals:      meals,
		Activities: activities,
		Config:     *config,
		Packages:   packages,
		PaxCounts:  req.PaxCounts,
		Nights:     req.Nights,
	})

	rows := composer.Compose()
	if rows == nil {
		rows = []pricing.PackageRow{}
	}

	return &MatrixDTO{
		Year:      req.Year,
		Nights:    req.Nights,
		PaxCounts: req.PaxCounts,
		Rows:      rows,
	}, nil
}
