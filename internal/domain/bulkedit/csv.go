package bulkedit

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed CSV schemas for the two rate tables. Values are joined and split on
// plain commas; embedded delimiters in room names are not escaped (a
// documented limitation of the format).
var (
	annualColumns   = []string{"room_type", "year", "cost_base_per_night", "price_base_per_night"}
	seasonalColumns = []string{"room_type", "year", "low_price", "mid_price", "high_price", "low_cost", "mid_cost", "high_cost"}
)

// AnnualCSVRow is one row of the annual-rate schema.
type AnnualCSVRow struct {
	RoomName string
	Year     int
	Cost     float64
	Price    float64
}

// SeasonalCSVRow is one row of the seasonal-rate schema.
type SeasonalCSVRow struct {
	RoomName  string
	Year      int
	LowPrice  float64
	MidPrice  float64
	HighPrice float64
	LowCost   float64
	MidCost   float64
	HighCost  float64
}

// GenerateAnnualCSV serializes rows under the annual-rate header.
func GenerateAnnualCSV(rows []AnnualCSVRow) string {
	var b strings.Builder
	b.WriteString(strings.Join(annualColumns, ","))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			r.RoomName,
			strconv.Itoa(r.Year),
			formatNumber(r.Cost),
			formatNumber(r.Price),
		}, ","))
	}
	return b.String()
}

// GenerateSeasonalCSV serializes rows under the seasonal-rate header.
func GenerateSeasonalCSV(rows []SeasonalCSVRow) string {
	var b strings.Builder
	b.WriteString(strings.Join(seasonalColumns, ","))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			r.RoomName,
			strconv.Itoa(r.Year),
			formatNumber(r.LowPrice),
			formatNumber(r.MidPrice),
			formatNumber(r.HighPrice),
			formatNumber(r.LowCost),
			formatNumber(r.MidCost),
			formatNumber(r.HighCost),
		}, ","))
	}
	return b.String()
}

// ParseAnnualCSV parses annual-rate CSV text. A header mismatch aborts with a
// single error before any row is processed; malformed rows afterwards are
// collected as error strings without failing the batch.
func ParseAnnualCSV(text string) ([]AnnualCSVRow, []string, error) {
	lines, index, err := splitAndValidate(text, annualColumns)
	if err != nil {
		return nil, nil, err
	}

	var rows []AnnualCSVRow
	var rowErrs []string
	for i, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) < len(annualColumns) {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: expected %d columns, got %d", i+2, len(annualColumns), len(fields)))
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(fields[index["year"]]))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: invalid year %q", i+2, fields[index["year"]]))
			continue
		}
		cost, err1 := parseFloatField(fields[index["cost_base_per_night"]])
		price, err2 := parseFloatField(fields[index["price_base_per_night"]])
		if err1 != nil || err2 != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: invalid numeric value", i+2))
			continue
		}

		rows = append(rows, AnnualCSVRow{
			RoomName: strings.TrimSpace(fields[index["room_type"]]),
			Year:     year,
			Cost:     cost,
			Price:    price,
		})
	}
	return rows, rowErrs, nil
}

// ParseSeasonalCSV parses seasonal-rate CSV text with the same header-then-
// partial-success behavior as ParseAnnualCSV.
func ParseSeasonalCSV(text string) ([]SeasonalCSVRow, []string, error) {
	lines, index, err := splitAndValidate(text, seasonalColumns)
	if err != nil {
		return nil, nil, err
	}

	var rows []SeasonalCSVRow
	var rowErrs []string
	for i, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) < len(seasonalColumns) {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: expected %d columns, got %d", i+2, len(seasonalColumns), len(fields)))
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(fields[index["year"]]))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: invalid year %q", i+2, fields[index["year"]]))
			continue
		}

		values := make([]float64, 0, 6)
		valid := true
		for _, col := range seasonalColumns[2:] {
			v, err := parseFloatField(fields[index[col]])
			if err != nil {
				valid = false
				break
			}
			values = append(values, v)
		}
		if !valid {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: invalid numeric value", i+2))
			continue
		}

		rows = append(rows, SeasonalCSVRow{
			RoomName:  strings.TrimSpace(fields[index["room_type"]]),
			Year:      year,
			LowPrice:  values[0],
			MidPrice:  values[1],
			HighPrice: values[2],
			LowCost:   values[3],
			MidCost:   values[4],
			HighCost:  values[5],
		})
	}
	return rows, rowErrs, nil
}

// splitAndValidate checks the header all-or-nothing and returns the data
// lines plus a column → position index.
func splitAndValidate(text string, required []string) ([]string, map[string]int, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var nonEmpty []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil, fmt.Errorf("empty CSV input")
	}

	index := make(map[string]int)
	for i, col := range strings.Split(nonEmpty[0], ",") {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return nonEmpty[1:], index, nil
}

func parseFloatField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// formatNumber keeps round values compact while preserving decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
