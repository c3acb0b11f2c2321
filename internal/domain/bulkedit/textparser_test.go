package bulkedit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

func TestParseSeasonalText_Grammars(t *testing.T) {
	tests := []struct {
		name string
		line string
		want SeasonalLine
	}{
		{"colon form", "SeaView: 400,440,520", SeasonalLine{Name: "SeaView", Low: 400, Mid: 440, High: 520}},
		{"pipe form", "PoolView | 350 | 390 | 470", SeasonalLine{Name: "PoolView", Low: 350, Mid: 390, High: 470}},
		{"comma form", "Garden,300,330,400", SeasonalLine{Name: "Garden", Low: 300, Mid: 330, High: 400}},
		{"keyed tokens", "Sea View low=400 mid=440 high=520", SeasonalLine{Name: "Sea View", Low: 400, Mid: 440, High: 520}},
		{"trailing numbers", "Beach Villa 500 550 650", SeasonalLine{Name: "Beach Villa", Low: 500, Mid: 550, High: 650}},
		{"decimals and negatives", "Promo: -10.5,0,15.25", SeasonalLine{Name: "Promo", Low: -10.5, Mid: 0, High: 15.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, errs := ParseSeasonalText(tt.line)
			require.Empty(t, errs)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestParseSeasonalText_PipeBeatsTrailingNumbers(t *testing.T) {
	// The pipe grammar claims the line even though the trailing-number
	// fallback could also read it.
	lines, errs := ParseSeasonalText("SeaView | 400 | 440 | 520 | extra")
	require.Empty(t, errs)
	require.Len(t, lines, 1)
	assert.Equal(t, SeasonalLine{Name: "SeaView", Low: 400, Mid: 440, High: 520}, lines[0])
}

func TestParseSeasonalText_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"two trailing numbers", "SeaView 400 440"},
		{"four trailing numbers", "SeaView 400 440 520 600"},
		{"colon without numbers", "SeaView: cheap,nice,pricey"},
		{"colon with space-separated values", "SeaView: 400 440 520"},
		{"pipe with too few fields", "SeaView | 400 | 440"},
		{"keyed missing high", "SeaView low=400 mid=440"},
		{"no name", "400 440 520"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, errs := ParseSeasonalText(tt.line)
			assert.Empty(t, lines)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], "line 1:")
		})
	}
}

func TestParseSeasonalText_MixedLines(t *testing.T) {
	text := "SeaView: 400,440,520\n" +
		"\n" +
		"bad line here\n" +
		"Garden 300 330 400\n"

	lines, errs := ParseSeasonalText(text)
	require.Len(t, lines, 2)
	assert.Equal(t, "SeaView", lines[0].Name)
	assert.Equal(t, "Garden", lines[1].Name)

	// Blank lines are skipped, so the error keeps its original line number.
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "line 3:")
}

func TestParseSingleValueText(t *testing.T) {
	tests := []struct {
		name string
		line string
		want SingleValueLine
	}{
		{"dash form", "Sea View - 440", SingleValueLine{Name: "Sea View", Value: 440}},
		{"comma form", "Garden, 330", SingleValueLine{Name: "Garden", Value: 330}},
		{"trailing token", "Beach Villa 550", SingleValueLine{Name: "Beach Villa", Value: 550}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, errs := ParseSingleValueText(tt.line)
			require.Empty(t, errs)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestParseSingleValueText_Errors(t *testing.T) {
	lines, errs := ParseSingleValueText("just words here\nGarden, 330")
	require.Len(t, lines, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "line 1:")
}

func TestMatchRoom(t *testing.T) {
	rooms := []pricing.RoomType{
		{ID: uuid.New(), Name: "Sea View"},
		{ID: uuid.New(), Name: "Garden"},
	}

	got, ok := MatchRoom(rooms, "sea view")
	require.True(t, ok)
	assert.Equal(t, "Sea View", got.Name)

	_, ok = MatchRoom(rooms, "penthouse")
	assert.False(t, ok)
}
