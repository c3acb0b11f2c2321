// Package bulkedit parses the admin bulk-edit inputs: quick-paste free text
// and the fixed-schema CSV import/export. Parsing is forgiving line by line —
// a malformed line becomes an error string, never a failure of the whole
// batch.
package bulkedit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/resort-pms/service-pricing/internal/domain/pricing"
)

// SeasonalLine is one parsed three-season quick-paste line. Name keeps the
// input's casing; room matching is case-insensitive.
type SeasonalLine struct {
	Name string
	Low  float64
	Mid  float64
	High float64
}

// SingleValueLine is one parsed single-value quick-paste line.
type SingleValueLine struct {
	Name  string
	Value float64
}

// seasonalMatcher tries one grammar against a line. It returns the parsed
// line, whether the grammar claimed the line, and a non-empty error message
// when the grammar claimed the line but found it malformed.
type seasonalMatcher func(line string) (SeasonalLine, bool, string)

// Grammar precedence is fixed; the first matcher to claim a line wins.
var seasonalMatchers = []seasonalMatcher{
	matchKeyedTokens,
	matchColonForm,
	matchPipeForm,
	matchCommaForm,
	matchTrailingNumbers,
}

// ParseSeasonalText parses newline-delimited three-season quick-paste text.
// Malformed lines are collected as error strings; parsing never fails as a
// whole.
func ParseSeasonalText(text string) ([]SeasonalLine, []string) {
	var lines []SeasonalLine
	var errs []string

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		claimed := false
		for _, match := range seasonalMatchers {
			parsed, ok, errMsg := match(line)
			if errMsg != "" {
				errs = append(errs, fmt.Sprintf("line %d: %s", i+1, errMsg))
				claimed = true
				break
			}
			if ok {
				lines = append(lines, parsed)
				claimed = true
				break
			}
		}
		if !claimed {
			errs = append(errs, fmt.Sprintf("line %d: unrecognized format: %q", i+1, line))
		}
	}
	return lines, errs
}

var (
	lowKeyRe  = regexp.MustCompile(`(?i)low\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	midKeyRe  = regexp.MustCompile(`(?i)mid\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	highKeyRe = regexp.MustCompile(`(?i)high\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
)

// matchKeyedTokens parses "Name low=400 mid=440 high=520". The grammar claims
// any line containing a low= token; the name is everything before the first
// "low".
func matchKeyedTokens(line string) (SeasonalLine, bool, string) {
	lower := strings.ToLower(line)
	idx := strings.Index(lower, "low")
	if idx < 0 || !lowKeyRe.MatchString(line) {
		return SeasonalLine{}, false, ""
	}

	low := lowKeyRe.FindStringSubmatch(line)
	mid := midKeyRe.FindStringSubmatch(line)
	high := highKeyRe.FindStringSubmatch(line)
	if mid == nil || high == nil {
		return SeasonalLine{}, false, fmt.Sprintf("keyed form needs low=, mid= and high= values: %q", line)
	}

	name := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[:idx]), ",;:-"))
	if name == "" {
		return SeasonalLine{}, false, fmt.Sprintf("keyed form is missing a room name: %q", line)
	}

	l, _ := strconv.ParseFloat(low[1], 64)
	m, _ := strconv.ParseFloat(mid[1], 64)
	h, _ := strconv.ParseFloat(high[1], 64)
	return SeasonalLine{Name: name, Low: l, Mid: m, High: h}, true, ""
}

// matchColonForm parses "Name: v1,v2,v3".
func matchColonForm(line string) (SeasonalLine, bool, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return SeasonalLine{}, false, ""
	}

	name := strings.TrimSpace(line[:idx])
	values, ok := parseNumberList(strings.Split(line[idx+1:], ","), 3)
	if !ok || name == "" {
		return SeasonalLine{}, false, fmt.Sprintf("colon form needs a name and 3 comma-separated values: %q", line)
	}
	return SeasonalLine{Name: name, Low: values[0], Mid: values[1], High: values[2]}, true, ""
}

// matchPipeForm parses "Name | v1 | v2 | v3" (extra fields are ignored).
func matchPipeForm(line string) (SeasonalLine, bool, string) {
	if !strings.Contains(line, "|") {
		return SeasonalLine{}, false, ""
	}

	fields := strings.Split(line, "|")
	if len(fields) < 4 {
		return SeasonalLine{}, false, fmt.Sprintf("pipe form needs at least 4 fields: %q", line)
	}
	name := strings.TrimSpace(fields[0])
	values, ok := parseNumberList(fields[1:4], 3)
	if !ok || name == "" {
		return SeasonalLine{}, false, fmt.Sprintf("pipe form needs a name and 3 numeric values: %q", line)
	}
	return SeasonalLine{Name: name, Low: values[0], Mid: values[1], High: values[2]}, true, ""
}

// matchCommaForm parses "Name,v1,v2,v3" with exactly 4 fields. Anything else
// falls through to the trailing-numbers fallback.
func matchCommaForm(line string) (SeasonalLine, bool, string) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return SeasonalLine{}, false, ""
	}
	values, ok := parseNumberList(fields[1:], 3)
	if !ok {
		return SeasonalLine{}, false, ""
	}
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return SeasonalLine{}, false, ""
	}
	return SeasonalLine{Name: name, Low: values[0], Mid: values[1], High: values[2]}, true, ""
}

// matchTrailingNumbers is the fallback: collect trailing numeric tokens
// right to left until a non-numeric token; exactly 3 are required, and the
// remaining prefix joins into the name.
func matchTrailingNumbers(line string) (SeasonalLine, bool, string) {
	tokens := strings.Fields(line)

	var numbers []float64
	i := len(tokens) - 1
	for ; i >= 0; i-- {
		v, err := strconv.ParseFloat(strings.TrimRight(tokens[i], ","), 64)
		if err != nil {
			break
		}
		numbers = append([]float64{v}, numbers...)
	}

	if len(numbers) != 3 || i < 0 {
		return SeasonalLine{}, false, fmt.Sprintf("expected a room name followed by 3 numeric values: %q", line)
	}

	name := strings.Join(tokens[:i+1], " ")
	return SeasonalLine{Name: name, Low: numbers[0], Mid: numbers[1], High: numbers[2]}, true, ""
}

// ParseSingleValueText parses the single-value quick-paste forms:
// "Name - value", "Name, value" or a trailing "Name value".
func ParseSingleValueText(text string) ([]SingleValueLine, []string) {
	var lines []SingleValueLine
	var errs []string

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		parsed, ok := parseSingleValueLine(line)
		if !ok {
			errs = append(errs, fmt.Sprintf("line %d: expected a room name and one value: %q", i+1, line))
			continue
		}
		lines = append(lines, parsed)
	}
	return lines, errs
}

func parseSingleValueLine(line string) (SingleValueLine, bool) {
	// Dash form: "Name - value".
	if idx := strings.LastIndex(line, " - "); idx >= 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(line[idx+3:]), 64); err == nil {
			if name := strings.TrimSpace(line[:idx]); name != "" {
				return SingleValueLine{Name: name, Value: v}, true
			}
		}
	}

	// Comma form: "Name, value".
	if fields := strings.Split(line, ","); len(fields) == 2 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64); err == nil {
			if name := strings.TrimSpace(fields[0]); name != "" {
				return SingleValueLine{Name: name, Value: v}, true
			}
		}
	}

	// Trailing token: "Name value".
	if tokens := strings.Fields(line); len(tokens) >= 2 {
		if v, err := strconv.ParseFloat(tokens[len(tokens)-1], 64); err == nil {
			name := strings.Join(tokens[:len(tokens)-1], " ")
			if name != "" {
				return SingleValueLine{Name: name, Value: v}, true
			}
		}
	}

	return SingleValueLine{}, false
}

// MatchRoom finds a room type whose name equals the given name,
// case-insensitively.
func MatchRoom(rooms []pricing.RoomType, name string) (pricing.RoomType, bool) {
	want := normalizeName(name)
	for _, r := range rooms {
		if normalizeName(r.Name) == want {
			return r, true
		}
	}
	return pricing.RoomType{}, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseNumberList(fields []string, want int) ([]float64, bool) {
	if len(fields) != want {
		return nil, false
	}
	values := make([]float64, 0, want)
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}
