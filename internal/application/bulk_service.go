package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/domain/bulkedit"
	"github.com/resort-pms/service-pricing/internal/domain/pricing"
	"github.com/resort-pms/service-pricing/internal/events"
	"github.com/resort-pms/service-pricing/internal/pkg/domainerr"
)

// QuickPasteRequest carries raw pasted text for a bulk rate edit.
type QuickPasteRequest struct {
	Text string `json:"text" binding:"required"`
	Year int    `json:"year" binding:"required"`
	// Season selects the target season for the single-value form; ignored by
	// the three-season form.
	Season string `json:"season"`
}

// AnnualRateRequest is one annual base rate row for a bulk upsert.
type AnnualRateRequest struct {
	RoomTypeID    uuid.UUID `json:"room_type_id" binding:"required"`
	Year          int       `json:"year" binding:"required"`
	CostPerNight  float64   `json:"cost_per_night"`
	PricePerNight float64   `json:"price_per_night"`
}

// BulkResultDTO is the partial-success outcome of a bulk operation, with the
// room names no room type matched listed separately.
type BulkResultDTO struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	UnknownNames []string `json:"unknown_names,omitempty"`
}

// BulkService runs the bulk rate edits: quick-paste text, CSV import/export
// and JSON bulk upserts. Every operation is a sequential per-row loop with
// partial success; a published event records the outcome.
type BulkService struct {
	roomTypes pricing.RoomTypeRepository
	rates     pricing.RateRepository
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewBulkService creates a new BulkService.
func NewBulkService(
	roomTypes pricing.RoomTypeRepository,
	rates pricing.RateRepository,
	publisher *events.Publisher,
	logger *zap.Logger,
) *BulkService {
	return &BulkService{
		roomTypes: roomTypes,
		rates:     rates,
		publisher: publisher,
		logger:    logger,
	}
}

// QuickPasteSeasonal parses three-season quick-paste text and upserts one
// seasonal rate per season for every matched room.
func (s *BulkService) QuickPasteSeasonal(ctx context.Context, req QuickPasteRequest) (*BulkResultDTO, error) {
	if req.Year <= 0 {
		return nil, domainerr.NewValidationError("year must be positive")
	}

	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	lines, parseErrs := bulkedit.ParseSeasonalText(req.Text)

	result := &BulkResultDTO{Errors: []string{}}
	for _, msg := range parseErrs {
		result.ErrorCount++
		result.Errors = append(result.Errors, msg)
	}

	for _, line := range lines {
		room, ok := bulkedit.MatchRoom(rooms, line.Name)
		if !ok {
			result.ErrorCount++
			result.UnknownNames = append(result.UnknownNames, line.Name)
			continue
		}

		values := map[pricing.Season]float64{
			pricing.SeasonLow:  line.Low,
			pricing.SeasonMid:  line.Mid,
			pricing.SeasonHigh: line.High,
		}
		failed := false
		for _, season := range []pricing.Season{pricing.SeasonLow, pricing.SeasonMid, pricing.SeasonHigh} {
			err := s.rates.UpsertSeasonalRate(ctx, pricing.SeasonalRate{
				RoomTypeID:    room.ID,
				Season:        season,
				Year:          req.Year,
				PricePerNight: values[season],
			})
			if err != nil {
				result.ErrorCount++
				result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", line.Name, season, err))
				failed = true
				break
			}
		}
		if !failed {
			result.SuccessCount++
		}
	}

	s.publishImported(ctx, "quick_paste_seasonal", req.Year, result)
	return result, nil
}

// QuickPasteSingle parses single-value quick-paste text and upserts one
// seasonal rate in the requested season for every matched room.
func (s *BulkService) QuickPasteSingle(ctx context.Context, req QuickPasteRequest) (*BulkResultDTO, error) {
	if req.Year <= 0 {
		return nil, domainerr.NewValidationError("year must be positive")
	}
	season, err := pricing.ParseSeason(req.Season)
	if err != nil {
		return nil, domainerr.NewValidationError(err.Error())
	}

	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	lines, parseErrs := bulkedit.ParseSingleValueText(req.Text)

	result := &BulkResultDTO{Errors: []string{}}
	for _, msg := range parseErrs {
		result.ErrorCount++
		result.Errors = append(result.Errors, msg)
	}

	for _, line := range lines {
		room, ok := bulkedit.MatchRoom(rooms, line.Name)
		if !ok {
			result.ErrorCount++
			result.UnknownNames = append(result.UnknownNames, line.Name)
			continue
		}

		err := s.rates.UpsertSeasonalRate(ctx, pricing.SeasonalRate{
			RoomTypeID:    room.ID,
			Season:        season,
			Year:          req.Year,
			PricePerNight: line.Value,
		})
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", line.Name, err))
			continue
		}
		result.SuccessCount++
	}

	s.publishImported(ctx, "quick_paste_single", req.Year, result)
	return result, nil
}

// ImportAnnualCSV imports annual base rates from CSV text. A missing required
// column aborts the whole import; row errors are partial.
func (s *BulkService) ImportAnnualCSV(ctx context.Context, text string) (*BulkResultDTO, error) {
	rows, rowErrs, err := bulkedit.ParseAnnualCSV(text)
	if err != nil {
		return nil, domainerr.NewValidationError(err.Error())
	}

	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	result := &BulkResultDTO{Errors: []string{}}
	for _, msg := range rowErrs {
		result.ErrorCount++
		result.Errors = append(result.Errors, msg)
	}

	year := 0
	for _, row := range rows {
		room, ok := bulkedit.MatchRoom(rooms, row.RoomName)
		if !ok {
			result.ErrorCount++
			result.UnknownNames = append(result.UnknownNames, row.RoomName)
			continue
		}
		year = row.Year

		err := s.rates.UpsertAnnualBaseRate(ctx, pricing.AnnualBaseRate{
			RoomTypeID:    room.ID,
			Year:          row.Year,
			CostPerNight:  row.Cost,
			PricePerNight: row.Price,
		})
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%d: %v", row.RoomName, row.Year, err))
			continue
		}
		result.SuccessCount++
	}

	s.publishImported(ctx, "annual", year, result)
	return result, nil
}

// ImportSeasonalCSV imports seasonal rates from CSV text: one upsert per
// season per row.
func (s *BulkService) ImportSeasonalCSV(ctx context.Context, text string) (*BulkResultDTO, error) {
	rows, rowErrs, err := bulkedit.ParseSeasonalCSV(text)
	if err != nil {
		return nil, domainerr.NewValidationError(err.Error())
	}

	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	result := &BulkResultDTO{Errors: []string{}}
	for _, msg := range rowErrs {
		result.ErrorCount++
		result.Errors = append(result.Errors, msg)
	}

	year := 0
	for _, row := range rows {
		room, ok := bulkedit.MatchRoom(rooms, row.RoomName)
		if !ok {
			result.ErrorCount++
			result.UnknownNames = append(result.UnknownNames, row.RoomName)
			continue
		}
		year = row.Year

		seasonal := []pricing.SeasonalRate{
			{RoomTypeID: room.ID, Season: pricing.SeasonLow, Year: row.Year, CostPerNight: row.LowCost, PricePerNight: row.LowPrice},
			{RoomTypeID: room.ID, Season: pricing.SeasonMid, Year: row.Year, CostPerNight: row.MidCost, PricePerNight: row.MidPrice},
			{RoomTypeID: room.ID, Season: pricing.SeasonHigh, Year: row.Year, CostPerNight: row.HighCost, PricePerNight: row.HighPrice},
		}
		failed := false
		for _, rate := range seasonal {
			if err := s.rates.UpsertSeasonalRate(ctx, rate); err != nil {
				result.ErrorCount++
				result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", row.RoomName, rate.Season, err))
				failed = true
				break
			}
		}
		if !failed {
			result.SuccessCount++
		}
	}

	s.publishImported(ctx, "seasonal", year, result)
	return result, nil
}

// ExportAnnualCSV renders the stored annual base rates for one year.
func (s *BulkService) ExportAnnualCSV(ctx context.Context, year int) (string, error) {
	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list room types: %w", err)
	}
	rates, err := s.rates.ListAnnualBaseRates(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to list base rates: %w", err)
	}

	names := roomNamesByID(rooms)
	rows := make([]bulkedit.AnnualCSVRow, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, bulkedit.AnnualCSVRow{
			RoomName: names[r.RoomTypeID],
			Year:     r.Year,
			Cost:     r.CostPerNight,
			Price:    r.PricePerNight,
		})
	}
	return bulkedit.GenerateAnnualCSV(rows), nil
}

// ExportSeasonalCSV renders the stored seasonal rates for one year, one row
// per room.
func (s *BulkService) ExportSeasonalCSV(ctx context.Context, year int) (string, error) {
	rooms, err := s.roomTypes.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list room types: %w", err)
	}
	rates, err := s.rates.ListSeasonalRates(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to list seasonal rates: %w", err)
	}

	names := roomNamesByID(rooms)
	byRoom := make(map[uuid.UUID]*bulkedit.SeasonalCSVRow)
	var order []uuid.UUID
	for _, r := range rates {
		row, ok := byRoom[r.RoomTypeID]
		if !ok {
			row = &bulkedit.SeasonalCSVRow{RoomName: names[r.RoomTypeID], Year: r.Year}
			byRoom[r.RoomTypeID] = row
			order = append(order, r.RoomTypeID)
		}
		switch r.Season {
		case pricing.SeasonLow:
			row.LowPrice, row.LowCost = r.PricePerNight, r.CostPerNight
		case pricing.SeasonMid:
			row.MidPrice, row.MidCost = r.PricePerNight, r.CostPerNight
		case pricing.SeasonHigh:
			row.HighPrice, row.HighCost = r.PricePerNight, r.CostPerNight
		}
	}

	rows := make([]bulkedit.SeasonalCSVRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byRoom[id])
	}
	return bulkedit.GenerateSeasonalCSV(rows), nil
}

// BulkUpsertAnnualRates applies annual base rates row by row with partial
// success. Re-running the same batch is idempotent.
func (s *BulkService) BulkUpsertAnnualRates(ctx context.Context, reqs []AnnualRateRequest) *BulkResultDTO {
	result := &BulkResultDTO{Errors: []string{}}
	year := 0
	for i, req := range reqs {
		if req.Year <= 0 {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: year must be positive", i+1))
			continue
		}
		year = req.Year

		err := s.rates.UpsertAnnualBaseRate(ctx, pricing.AnnualBaseRate{
			RoomTypeID:    req.RoomTypeID,
			Year:          req.Year,
			CostPerNight:  req.CostPerNight,
			PricePerNight: req.PricePerNight,
		})
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	s.publishImported(ctx, "annual", year, result)
	return result
}

func (s *BulkService) publishImported(ctx context.Context, schema string, year int, result *BulkResultDTO) {
	s.publisher.Publish(ctx, events.RatesBulkImported, events.RatesBulkImportedEvent{
		Schema:       schema,
		Year:         year,
		SuccessCount: result.SuccessCount,
		ErrorCount:   result.ErrorCount,
		OccurredAt:   time.Now().UTC(),
	})
}

func roomNamesByID(rooms []pricing.RoomType) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names
}
