// Package render draws engine chart configs to PNG or SVG with go-chart.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// RENDER — ChartConfig → image bytes
// ============================================================================
// Bar charts become a go-chart BarChart, one bar per point of the first
// series, each filled with its point color when it has one. Line charts become a Chart of ContinuousSeries with years on the
// x axis. An empty config still renders: axes and title, no data.
// ============================================================================

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ErrUnsupportedFormat is returned for image formats other than PNG and SVG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FormatFromPath picks the format from a file extension. No extension means PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case PNG:
		return chart.PNG, nil
	case SVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// Size is the canvas size in pixels. Zero fields take defaults.
type Size struct {
	Width  int
	Height int
}

const (
	defaultWidth  = 1024
	defaultHeight = 512
	barWidth      = 40
	barSpacing    = 12
)

// Render writes cfg to w in the given format.
func Render(w io.Writer, cfg *engine.ChartConfig, format Format, size Size) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = &engine.ChartConfig{ChartType: "bar"}
	}

	switch cfg.ChartType {
	case "line":
		return lineChart(cfg, size).Render(provider, w)
	default:
		return barChart(cfg, size).Render(provider, w)
	}
}

// WriteFile renders cfg to path, choosing the format from the extension.
func WriteFile(path string, cfg *engine.ChartConfig, size Size) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Render(&buf, cfg, format, size); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ============================================================================
// BAR
// ============================================================================

func barChart(cfg *engine.ChartConfig, size Size) *chart.BarChart {
	var points []engine.ChartPoint
	color := engine.Palette("")[0]
	if len(cfg.Series) > 0 {
		points = cfg.Series[0].Data
		if cfg.Series[0].Color != "" {
			color = cfg.Series[0].Color
		}
	}

	bars := make([]chart.Value, 0, len(points))
	dataMax := 0.0
	for _, p := range points {
		barColor := color
		if p.Color != "" {
			barColor = p.Color
		}
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: fill(barColor),
		})
		dataMax = math.Max(dataMax, p.Value)
	}
	if len(bars) == 0 {
		// go-chart refuses a bar chart without bars.
		bars = append(bars, chart.Value{Label: " ", Value: 0, Style: fill(color)})
	}

	canvasWidth := size.Width
	if canvasWidth == 0 {
		canvasWidth = max(defaultWidth, len(bars)*(barWidth+barSpacing)+160)
	}

	xStyle := chart.Style{}
	if len(bars) > 10 {
		xStyle.TextRotationDegrees = 60
	}

	return &chart.BarChart{
		Title:      cfg.Title,
		Width:      canvasWidth,
		Height:     height(size),
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xStyle,
		YAxis: chart.YAxis{
			Name:           cfg.YAxis,
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax(cfg.YMax, dataMax)},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	}
}

// ============================================================================
// LINE
// ============================================================================

func lineChart(cfg *engine.ChartConfig, size Size) *chart.Chart {
	var series []chart.Series
	minYear, maxYear := math.MaxInt, math.MinInt
	dataMax := 0.0

	for _, s := range cfg.Series {
		var xs, ys []float64
		for _, p := range s.Data {
			year, err := strconv.Atoi(p.Label)
			if err != nil {
				continue
			}
			xs = append(xs, float64(year))
			ys = append(ys, p.Value)
			minYear, maxYear = min(minYear, year), max(maxYear, year)
			dataMax = math.Max(dataMax, p.Value)
		}
		if len(xs) == 0 {
			continue
		}
		// Pad to at least two X values for go-chart.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}

		color := hexColor(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    drawing.ColorWhite,
				DotWidth:    4,
			},
		})
	}

	if len(series) == 0 {
		// Nothing to plot: a transparent line keeps the axes and title.
		minYear, maxYear = 0, 1
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		})
	}
	if minYear == maxYear {
		minYear, maxYear = minYear-1, maxYear+1
	}

	ticks := make([]chart.Tick, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		ticks = append(ticks, chart.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}

	ch := &chart.Chart{
		Title:      cfg.Title,
		Width:      width(size),
		Height:     height(size),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  cfg.XAxis,
			Range: &chart.ContinuousRange{Min: float64(minYear), Max: float64(maxYear)},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           cfg.YAxis,
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax(cfg.YMax, dataMax*1.1)},
			ValueFormatter: countFormatter,
		},
		Series: series,
	}
	if cfg.ShowLegend && !cfg.IsEmpty() {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch
}

// ============================================================================
// HELPERS
// ============================================================================

func fill(hex string) chart.Style {
	color := hexColor(hex)
	return chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1}
}

// hexColor parses "#RRGGBB" or "RRGGBB"; anything else takes the first
// default palette color.
func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 3 {
		hex = strings.TrimPrefix(engine.Palette("")[0], "#")
	}
	return drawing.ColorFromHex(hex)
}

// yMax keeps a fixed domain when one is set, but never clips data.
func yMax(fixed, dataMax float64) float64 {
	return math.Max(math.Max(fixed, dataMax), 1)
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Comma(int64(math.Round(f)))
	}
	return ""
}

func width(size Size) int {
	if size.Width > 0 {
		return size.Width
	}
	return defaultWidth
}

func height(size Size) int {
	if size.Height > 0 {
		return size.Height
	}
	return defaultHeight
}
