package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Growth summaries and reply templates
// ============================================================================

// BuildGrowthText computes change-over-time metrics from year-keyed groups.
// Input order does not matter; groups are read in year order.
func BuildGrowthText(groups []Group, unit string) *TextData {
	if len(groups) == 0 {
		return &TextData{
			Value:  "No data",
			Unit:   unit,
			Period: "No data",
		}
	}

	ordered := make([]Group, len(groups))
	copy(ordered, groups)
	SortGroups(ordered, SortYearAsc)

	earliest := ordered[0]
	latest := ordered[len(ordered)-1]
	peak := ordered[0]
	count := 0
	for _, g := range ordered {
		if g.Value > peak.Value {
			peak = g
		}
		count += g.Count
	}

	period := DerivePeriod(ordered)

	if len(ordered) < 2 {
		return &TextData{
			Value:    FormatNumber(earliest.Value),
			RawValue: earliest.Value,
			Unit:     unit,
			Period:   period,
			Count:    count,
			Growth: &GrowthData{
				EarliestValue:  earliest.Value,
				LatestValue:    earliest.Value,
				EarliestPeriod: earliest.Key,
				LatestPeriod:   earliest.Key,
				PeakValue:      earliest.Value,
				PeakPeriod:     earliest.Key,
				Direction:      "insufficient data",
			},
		}
	}

	changeAmount := latest.Value - earliest.Value
	var changePercent float64
	if earliest.Value != 0 {
		changePercent = (changeAmount / earliest.Value) * 100
	}

	direction := "unchanged"
	switch {
	case changeAmount > 0:
		direction = "increased"
	case changeAmount < 0:
		direction = "decreased"
	}

	absPercent := changePercent
	if absPercent < 0 {
		absPercent = -absPercent
	}
	var displayValue string
	switch {
	case direction == "increased" && earliest.Value == 0:
		displayValue = fmt.Sprintf("↑ from 0 to %s", FormatNumber(latest.Value))
	case direction == "increased":
		displayValue = fmt.Sprintf("↑ %.1f%%", absPercent)
	case direction == "decreased":
		displayValue = fmt.Sprintf("↓ %.1f%%", absPercent)
	default:
		displayValue = "→ No change"
	}

	return &TextData{
		Value:    displayValue,
		RawValue: changePercent,
		Unit:     unit,
		Period:   period,
		Count:    count,
		Growth: &GrowthData{
			EarliestValue:  earliest.Value,
			LatestValue:    latest.Value,
			EarliestPeriod: earliest.Key,
			LatestPeriod:   latest.Key,
			PeakValue:      peak.Value,
			PeakPeriod:     peak.Key,
			ChangeAmount:   changeAmount,
			ChangePercent:  changePercent,
			Direction:      direction,
		},
	}
}

// DerivePeriod builds a "first – last" period string from year-keyed groups.
func DerivePeriod(groups []Group) string {
	if len(groups) == 0 {
		return "No data"
	}
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	sort.SliceStable(keys, func(i, j int) bool { return yearOrder(keys[i]) < yearOrder(keys[j]) })

	if keys[0] == keys[len(keys)-1] {
		return keys[0]
	}
	return fmt.Sprintf("%s – %s", keys[0], keys[len(keys)-1])
}

// ============================================================================
// PLACEHOLDER RESOLUTION
// ============================================================================

// ResolvePlaceholders substitutes values into a "{name}" style template.
// Placeholders without a value are stripped.
func ResolvePlaceholders(template string, values map[string]string) string {
	result := template
	for placeholder, value := range values {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", value)
	}
	return stripUnresolvedPlaceholders(result)
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func stripUnresolvedPlaceholders(text string) string {
	if !placeholderRegex.MatchString(text) {
		return text
	}
	cleaned := placeholderRegex.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, " .—-–")
	if cleaned == "" {
		return text
	}
	return cleaned
}
