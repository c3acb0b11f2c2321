package bulkedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualCSV_RoundTrip(t *testing.T) {
	rows := []AnnualCSVRow{
		{RoomName: "Sea View", Year: 2026, Cost: 250, Price: 400},
		{RoomName: "Garden", Year: 2026, Cost: 180.5, Price: 300.25},
	}

	parsed, rowErrs, err := ParseAnnualCSV(GenerateAnnualCSV(rows))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Equal(t, rows, parsed)
}

func TestSeasonalCSV_RoundTrip(t *testing.T) {
	rows := []SeasonalCSVRow{
		{RoomName: "Sea View", Year: 2026, LowPrice: 360, MidPrice: 400, HighPrice: 460, LowCost: 225, MidCost: 250, HighCost: 287.5},
	}

	parsed, rowErrs, err := ParseSeasonalCSV(GenerateSeasonalCSV(rows))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Equal(t, rows, parsed)
}

func TestParseAnnualCSV_MissingColumnAborts(t *testing.T) {
	csv := "room_type,year,cost_base_per_night\nSea View,2026,250"

	rows, rowErrs, err := ParseAnnualCSV(csv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_base_per_night")
	assert.Nil(t, rows)
	assert.Nil(t, rowErrs)
}

func TestParseAnnualCSV_ColumnOrderIrrelevant(t *testing.T) {
	csv := "year,price_base_per_night,room_type,cost_base_per_night\n2026,400,Sea View,250"

	rows, rowErrs, err := ParseAnnualCSV(csv)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, AnnualCSVRow{RoomName: "Sea View", Year: 2026, Cost: 250, Price: 400}, rows[0])
}

func TestParseAnnualCSV_RowErrorsArePartial(t *testing.T) {
	csv := "room_type,year,cost_base_per_night,price_base_per_night\n" +
		"Sea View,2026,250,400\n" +
		"Garden,not-a-year,180,300\n" +
		"Pool,2026,abc,300\n" +
		"short,row\n" +
		"Villa,2026,500,800"

	rows, rowErrs, err := ParseAnnualCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sea View", rows[0].RoomName)
	assert.Equal(t, "Villa", rows[1].RoomName)

	require.Len(t, rowErrs, 3)
	assert.Contains(t, rowErrs[0], "row 3:")
	assert.Contains(t, rowErrs[1], "row 4:")
	assert.Contains(t, rowErrs[2], "row 5:")
}

func TestParseSeasonalCSV_RowErrors(t *testing.T) {
	csv := "room_type,year,low_price,mid_price,high_price,low_cost,mid_cost,high_cost\n" +
		"Sea View,2026,360,400,460,225,250,287.5\n" +
		"Garden,2026,bad,330,400,150,165,200"

	rows, rowErrs, err := ParseSeasonalCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0], "row 3:")
}

func TestParseAnnualCSV_EmptyInput(t *testing.T) {
	_, _, err := ParseAnnualCSV("   \n  ")
	require.Error(t, err)
}

// Fields are split on raw commas; a quoted room name containing a comma
// shifts every later column. This pins the documented limitation.
func TestParseAnnualCSV_NoQuoteHandling(t *testing.T) {
	csv := "room_type,year,cost_base_per_night,price_base_per_night\n" +
		"\"Deluxe, Sea View\",2026,250,400"

	rows, rowErrs, err := ParseAnnualCSV(csv)
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0], "invalid year")
}

func TestParseSeasonalCSV_CRLFInput(t *testing.T) {
	csv := "room_type,year,low_price,mid_price,high_price,low_cost,mid_cost,high_cost\r\n" +
		"Sea View,2026,360,400,460,225,250,287.5\r\n"

	rows, rowErrs, err := ParseSeasonalCSV(csv)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, 400.0, rows[0].MidPrice)
}

func TestGenerateAnnualCSV_CompactNumbers(t *testing.T) {
	out := GenerateAnnualCSV([]AnnualCSVRow{{RoomName: "Sea View", Year: 2026, Cost: 250, Price: 400.5}})
	assert.Equal(t, "room_type,year,cost_base_per_night,price_base_per_night\nSea View,2026,250,400.5", out)
}
