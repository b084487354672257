package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from ChartSpec + Groups
// ============================================================================
// Groups without SubGroups become one series. Groups with SubGroups become
// one series per sub-key (e.g. one line per sex), labelled by the parent key.
// An empty group list still yields a chart: axes and title, no points.
// ============================================================================

// Categorical palette for multi-series charts.
var defaultPalette = []string{"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1"}

// Sequential scales, light to dark. Bars of a single series take a color
// from the scale by value.
var scales = map[string][]string{
	"greenblue":   {"#E0F3DB", "#A8DDB5", "#7BCCC4", "#43A2CA", "#0868AC"},
	"goldred":     {"#F4D166", "#F8AC53", "#EE7A46", "#D4483F", "#B71D3E"},
	"yellowgreen": {"#F7FCB9", "#ADDD8E", "#78C679", "#31A354", "#006837"},
}

// Palette returns the colors of a named scale, falling back to the
// categorical default palette.
func Palette(name string) []string {
	if p, ok := scales[name]; ok {
		return p
	}
	return defaultPalette
}

// BuildChart produces a ChartConfig from a ChartSpec and aggregated groups.
func BuildChart(spec ChartSpec, groups []Group) *ChartConfig {
	chartType := spec.ChartType
	if chartType == "" {
		chartType = "bar"
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      spec.Title,
		XAxis:      spec.XAxis,
		YAxis:      spec.YAxis,
		YMax:       spec.YMax,
		ShowLegend: hasSubGroups(groups),
		ShowGrid:   true,
	}

	colors := Palette(spec.Palette)
	switch scale, sequential := scales[spec.Palette]; {
	case hasSubGroups(groups):
		config.Series = buildMultiSeries(groups, colors)
	case sequential:
		config.Series = buildSingleSeries(groups, spec.Series, scale[len(scale)-1])
		colorByValue(config.Series[0].Data, scale)
	default:
		config.Series = buildSingleSeries(groups, spec.Series, colors[0])
	}

	config.Colors = assignColors(colors, len(config.Series))
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string, color string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name:  seriesName,
		Data:  points,
		Color: color,
	}}
}

// buildMultiSeries emits only the points a sub-group actually has; a missing
// (parent, sub-key) pair is a gap, not a zero.
func buildMultiSeries(groups []Group, colors []string) []ChartSeries {
	subKeySet := make(map[string]bool)
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			subKeySet[sg.Key] = true
		}
	}

	subKeys := make([]string, 0, len(subKeySet))
	for k := range subKeySet {
		subKeys = append(subKeys, k)
	}
	sort.Strings(subKeys)

	seriesMap := make(map[string][]ChartPoint, len(subKeys))
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			seriesMap[sg.Key] = append(seriesMap[sg.Key], ChartPoint{
				Label: g.Label,
				Value: RoundTo2(sg.Value),
			})
		}
	}

	series := make([]ChartSeries, 0, len(subKeys))
	for i, key := range subKeys {
		series = append(series, ChartSeries{
			Name:  key,
			Data:  seriesMap[key],
			Color: colors[i%len(colors)],
		})
	}

	return series
}

// colorByValue colors each point along scale, the smallest value taking the
// first color and the largest the last. Equal values share a color.
func colorByValue(points []ChartPoint, scale []string) {
	if len(points) == 0 {
		return
	}
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points {
		lo, hi = min(lo, p.Value), max(hi, p.Value)
	}
	for i := range points {
		t := 1.0
		if hi > lo {
			t = (points[i].Value - lo) / (hi - lo)
		}
		points[i].Color = ScaleColor(scale, t)
	}
}

// ScaleColor returns the color at position t in [0, 1] along scale,
// blending linearly between neighbouring stops.
func ScaleColor(scale []string, t float64) string {
	if len(scale) == 0 {
		return ""
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(scale)-1)
	i := int(math.Floor(pos))
	if i >= len(scale)-1 {
		return strings.ToUpper(scale[len(scale)-1])
	}
	return blendHex(scale[i], scale[i+1], pos-float64(i))
}

func blendHex(a, b string, t float64) string {
	ca, okA := parseHex(a)
	cb, okB := parseHex(b)
	if !okA || !okB {
		return a
	}
	var out [3]uint8
	for k := range out {
		out[k] = uint8(math.Round(float64(ca[k]) + (float64(cb[k])-float64(ca[k]))*t))
	}
	return fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2])
}

func parseHex(s string) ([3]uint8, bool) {
	var c [3]uint8
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return c, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return c, false
	}
	c[0], c[1], c[2] = uint8(v>>16), uint8(v>>8), uint8(v)
	return c, true
}

func hasSubGroups(groups []Group) bool {
	for _, g := range groups {
		if len(g.SubGroups) > 0 {
			return true
		}
	}
	return false
}

func assignColors(palette []string, count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
