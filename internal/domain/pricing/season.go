package pricing

import "fmt"

// Season labels a calendar date and drives the price multiplier.
type Season string

const (
	SeasonLow  Season = "low"
	SeasonMid  Season = "mid"
	SeasonHigh Season = "high"
)

// IsValid returns true if the season is a recognized label.
func (s Season) IsValid() bool {
	switch s {
	case SeasonLow, SeasonMid, SeasonHigh:
		return true
	}
	return false
}

// String returns the string representation of the season.
func (s Season) String() string {
	return string(s)
}

// ParseSeason converts a string to a Season, returning an error if invalid.
func ParseSeason(s string) (Season, error) {
	season := Season(s)
	if !season.IsValid() {
		return "", fmt.Errorf("invalid season: %s", s)
	}
	return season, nil
}

// SeasonSettings holds the per-resort season multipliers and rounding flag.
type SeasonSettings struct {
	LowPercent  float64 `json:"low_percent"`
	MidPercent  float64 `json:"mid_percent"`
	HighPercent float64 `json:"high_percent"`
	RoundToFive bool    `json:"round_to_five"`
}

// DefaultSeasonSettings returns the stock multipliers: low -10%, mid 0%, high +15%.
func DefaultSeasonSettings() SeasonSettings {
	return SeasonSettings{
		LowPercent:  -10,
		MidPercent:  0,
		HighPercent: 15,
	}
}

// Multiplier returns the percentage multiplier for the given season.
// Unrecognized seasons fall back to the mid multiplier.
func (s SeasonSettings) Multiplier(season Season) float64 {
	switch season {
	case SeasonLow:
		return s.LowPercent
	case SeasonHigh:
		return s.HighPercent
	default:
		return s.MidPercent
	}
}

// SeasonAssignment maps a calendar date to a season label.
type SeasonAssignment struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Season Season `json:"season"`
}
