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

// QuoteRequest describes one stay to price.
type QuoteRequest struct {
	RoomTypeID  uuid.UUID `json:"room_type_id" binding:"required"`
	CheckIn     string    `json:"check_in" binding:"required"`
	CheckOut    string    `json:"check_out" binding:"required"`
	Adults      int       `json:"adults" binding:"required,min=1"`
	Children    int       `json:"children" binding:"min=0"`
	PackageCode string    `json:"package_code"`
	// CreatedAt is the booking creation time used by advance-purchase
	// promotion filters; it defaults to now.
	CreatedAt *time.Time `json:"created_at"`
}

// QuoteDTO is the full booking-time quote: nightly rates, the adjusted stay
// price and the inclusive-tax breakdown.
type QuoteDTO struct {
	RoomTypeID   uuid.UUID              `json:"room_type_id"`
	CheckIn      string                 `json:"check_in"`
	CheckOut     string                 `json:"check_out"`
	Nights       int                    `json:"nights"`
	Adults       int                    `json:"adults"`
	Children     int                    `json:"children"`
	NightlyRates []pricing.ResolvedRate `json:"nightly_rates"`
	RoomTotal    float64                `json:"room_total"`
	Adjustment   pricing.StayAdjustment `json:"adjustment"`
	TaxBreakdown pricing.TaxBreakdown   `json:"tax_breakdown"`
}

// QuoteService prices one stay end to end: nightly resolution, promotion and
// surcharge adjustment, then the inclusive-tax breakdown.
type QuoteService struct {
	rates       *RateService
	adjustments pricing.AdjustmentRepository
	seasons     pricing.SeasonRepository
	logger      *zap.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	rates *RateService,
	adjustments pricing.AdjustmentRepository,
	seasons pricing.SeasonRepository,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		rates:       rates,
		adjustments: adjustments,
		seasons:     seasons,
		logger:      logger,
	}
}

// Quote prices the stay [check_in, check_out).
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, domainerr.NewValidationError("check_out must be after check_in")
	}
	if req.Adults < 1 {
		return nil, domainerr.NewValidationError("at least one adult is required")
	}

	snap, err := s.rates.loadSnapshot(ctx, req.RoomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	resolver := pricing.NewRateResolver(snap)
	nightly := resolver.ResolveRange(req.RoomTypeID, checkIn, checkOut)

	var roomTotal float64
	dates := make([]time.Time, 0, len(nightly))
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	for _, r := range nightly {
		roomTotal += r.Price
	}

	fromKey := pricing.DateKey(checkIn)
	toKey := pricing.DateKey(checkOut.AddDate(0, 0, -1))

	promotions, err := s.adjustments.ListActivePromotions(ctx, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	surcharges, err := s.adjustments.ListActiveSurcharges(ctx, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list surcharges: %w", err)
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	adjustment := pricing.NewStayAdjuster(promotions, surcharges).Apply(pricing.StayParams{
		BasePrice:   roomTotal,
		Dates:       dates,
		CreatedAt:   createdAt,
		RoomTypeID:  req.RoomTypeID,
		PackageCode: req.PackageCode,
		Adults:      req.Adults,
		Children:    req.Children,
		RoundToFive: snap.Settings.RoundToFive,
		Seasons:     snap.Seasons,
	})

	taxes, err := s.adjustments.ListActiveTaxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}

	breakdown := pricing.ComputeTaxBreakdown(
		adjustment.FinalPrice,
		len(dates),
		req.Adults,
		req.Children,
		taxes,
	)

	return &QuoteDTO{
		RoomTypeID:   req.RoomTypeID,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Nights:       len(dates),
		Adults:       req.Adults,
		Children:     req.Children,
		NightlyRates: nightly,
		RoomTotal:    roomTotal,
		Adjustment:   adjustment,
		TaxBreakdown: breakdown,
	}, nil
}
