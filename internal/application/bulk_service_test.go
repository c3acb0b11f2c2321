package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

type fakeRoomTypeRepository struct {
	rooms []pricing.RoomType
}

func (f *fakeRoomTypeRepository) List(ctx context.Context) ([]pricing.RoomType, error) {
	return f.rooms, nil
}

func (f *fakeRoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.RoomType, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			rt := r
			return &rt, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomTypeRepository) Upsert(ctx context.Context, rt pricing.RoomType) error { return nil }
func (f *fakeRoomTypeRepository) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

// fakeRateRepository stores rates in keyed maps so repeated upserts overwrite
// instead of duplicating, matching the database's conflict clause.
type fakeRateRepository struct {
	annual     map[string]pricing.AnnualBaseRate
	seasonal   map[string]pricing.SeasonalRate
	failRoomID uuid.UUID
}

func newFakeRateRepository() *fakeRateRepository {
	return &fakeRateRepository{
		annual:   make(map[string]pricing.AnnualBaseRate),
		seasonal: make(map[string]pricing.SeasonalRate),
	}
}

func (f *fakeRateRepository) FindAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, year int) (*pricing.AnnualBaseRate, error) {
	r, ok := f.annual[fmt.Sprintf("%s/%d", roomTypeID, year)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRateRepository) FindLatestAnnualBaseRate(ctx context.Context, roomTypeID uuid.UUID, maxYear int) (*pricing.AnnualBaseRate, error) {
	var best *pricing.AnnualBaseRate
	for _, r := range f.annual {
		if r.RoomTypeID == roomTypeID && r.Year < maxYear && (best == nil || r.Year > best.Year) {
			rate := r
			best = &rate
		}
	}
	return best, nil
}

func (f *fakeRateRepository) ListAnnualBaseRates(ctx context.Context, year int) ([]pricing.AnnualBaseRate, error) {
	var out []pricing.AnnualBaseRate
	for _, r := range f.annual {
		if r.Year == year {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomTypeID.String() < out[j].RoomTypeID.String() })
	return out, nil
}

func (f *fakeRateRepository) ListAnnualBaseRatesForRoom(ctx context.Context, roomTypeID uuid.UUID) ([]pricing.AnnualBaseRate, error) {
	var out []pricing.AnnualBaseRate
	for _, r := range f.annual {
		if r.RoomTypeID == roomTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRateRepository) UpsertAnnualBaseRate(ctx context.Context, rate pricing.AnnualBaseRate) error {
	if rate.RoomTypeID == f.failRoomID {
		return errors.New("write failed")
	}
	f.annual[fmt.Sprintf("%s/%d", rate.RoomTypeID, rate.Year)] = rate
	return nil
}

func (f *fakeRateRepository) ListSeasonalRates(ctx context.Context, year int) ([]pricing.SeasonalRate, error) {
	var out []pricing.SeasonalRate
	for _, r := range f.seasonal {
		if r.Year == year {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomTypeID != out[j].RoomTypeID {
			return out[i].RoomTypeID.String() < out[j].RoomTypeID.String()
		}
		return out[i].Season < out[j].Season
	})
	return out, nil
}

func (f *fakeRateRepository) UpsertSeasonalRate(ctx context.Context, rate pricing.SeasonalRate) error {
	if rate.RoomTypeID == f.failRoomID {
		return errors.New("write failed")
	}
	f.seasonal[fmt.Sprintf("%s/%s/%d", rate.RoomTypeID, rate.Season, rate.Year)] = rate
	return nil
}

func newTestBulkService(rooms *fakeRoomTypeRepository, rates *fakeRateRepository) *BulkService {
	return NewBulkService(rooms, rates, nil, zap.NewNop())
}

func TestQuickPasteSeasonal_PartialSuccess(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	garden := pricing.RoomType{ID: uuid.New(), Name: "Garden"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView, garden}}
	rates := newFakeRateRepository()
	svc := newTestBulkService(rooms, rates)

	text := "Sea View: 360,400,460\n" +
		"Penthouse | 500 | 550 | 600\n" +
		"garden, 280, 330, 400\n" +
		"no numbers here"

	result, err := svc.QuickPasteSeasonal(context.Background(), QuickPasteRequest{Text: text, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
	// Unknown names keep the input's casing.
	assert.Equal(t, []string{"Penthouse"}, result.UnknownNames)

	// Each matched line writes all three seasons.
	assert.Len(t, rates.seasonal, 6)
	mid := rates.seasonal[fmt.Sprintf("%s/%s/%d", seaView.ID, pricing.SeasonMid, 2026)]
	assert.Equal(t, 400.0, mid.PricePerNight)
}

func TestQuickPasteSeasonal_UpsertFailureCountsLine(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView}}
	rates := newFakeRateRepository()
	rates.failRoomID = seaView.ID
	svc := newTestBulkService(rooms, rates)

	result, err := svc.QuickPasteSeasonal(context.Background(), QuickPasteRequest{Text: "Sea View: 360,400,460", Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "write failed")
}

func TestQuickPasteSingle(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView}}
	rates := newFakeRateRepository()
	svc := newTestBulkService(rooms, rates)

	result, err := svc.QuickPasteSingle(context.Background(), QuickPasteRequest{Text: "Sea View - 420", Year: 2026, Season: "high"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)

	rate := rates.seasonal[fmt.Sprintf("%s/%s/%d", seaView.ID, pricing.SeasonHigh, 2026)]
	assert.Equal(t, 420.0, rate.PricePerNight)
}

func TestQuickPasteSingle_InvalidSeason(t *testing.T) {
	svc := newTestBulkService(&fakeRoomTypeRepository{}, newFakeRateRepository())

	_, err := svc.QuickPasteSingle(context.Background(), QuickPasteRequest{Text: "Sea View - 420", Year: 2026, Season: "peak"})
	require.Error(t, err)
}

func TestImportAnnualCSV_HeaderErrorAborts(t *testing.T) {
	rates := newFakeRateRepository()
	svc := newTestBulkService(&fakeRoomTypeRepository{}, rates)

	_, err := svc.ImportAnnualCSV(context.Background(), "room_type,year\nSea View,2026")
	require.Error(t, err)
	assert.Empty(t, rates.annual)
}

func TestImportAnnualCSV_Idempotent(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView}}
	rates := newFakeRateRepository()
	svc := newTestBulkService(rooms, rates)

	csv := "room_type,year,cost_base_per_night,price_base_per_night\nSea View,2026,250,400"

	for range 2 {
		result, err := svc.ImportAnnualCSV(context.Background(), csv)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
	}

	assert.Len(t, rates.annual, 1)
	stored := rates.annual[fmt.Sprintf("%s/%d", seaView.ID, 2026)]
	assert.Equal(t, 400.0, stored.PricePerNight)
}

func TestImportSeasonalCSV(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView}}
	rates := newFakeRateRepository()
	svc := newTestBulkService(rooms, rates)

	csv := "room_type,year,low_price,mid_price,high_price,low_cost,mid_cost,high_cost\n" +
		"Sea View,2026,360,400,460,225,250,287.5\n" +
		"Penthouse,2026,500,550,600,300,330,360"

	result, err := svc.ImportSeasonalCSV(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, []string{"Penthouse"}, result.UnknownNames)
	assert.Len(t, rates.seasonal, 3)
}

func TestExportSeasonalCSV_OneRowPerRoom(t *testing.T) {
	seaView := pricing.RoomType{ID: uuid.New(), Name: "Sea View"}
	rooms := &fakeRoomTypeRepository{rooms: []pricing.RoomType{seaView}}
	rates := newFakeRateRepository()
	svc := newTestBulkService(rooms, rates)

	seasonal := []pricing.SeasonalRate{
		{RoomTypeID: seaView.ID, Season: pricing.SeasonLow, Year: 2026, PricePerNight: 360, CostPerNight: 216},
		{RoomTypeID: seaView.ID, Season: pricing.SeasonMid, Year: 2026, PricePerNight: 400, CostPerNight: 240},
		{RoomTypeID: seaView.ID, Season: pricing.SeasonHigh, Year: 2026, PricePerNight: 460, CostPerNight: 276},
	}
	for _, rate := range seasonal {
		require.NoError(t, rates.UpsertSeasonalRate(context.Background(), rate))
	}

	out, err := svc.ExportSeasonalCSV(context.Background(), 2026)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Sea View,2026,360,400,460,216,240,276", lines[1])
}

func TestBulkUpsertAnnualRates_PartialSuccess(t *testing.T) {
	good := uuid.New()
	bad := uuid.New()
	rates := newFakeRateRepository()
	rates.failRoomID = bad
	svc := newTestBulkService(&fakeRoomTypeRepository{}, rates)

	result := svc.BulkUpsertAnnualRates(context.Background(), []AnnualRateRequest{
		{RoomTypeID: good, Year: 2026, CostPerNight: 250, PricePerNight: 400},
		{RoomTypeID: bad, Year: 2026, CostPerNight: 100, PricePerNight: 200},
		{RoomTypeID: good, Year: 0, PricePerNight: 300},
	})

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "row 2:")
	assert.Contains(t, result.Errors[1], "row 3:")
	assert.Len(t, rates.annual, 1)
}
