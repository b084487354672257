package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var barConfig = &engine.ChartConfig{
	ChartType: "bar",
	Title:     "Top 3 Baby Names for the US in 2015",
	XAxis:     "Baby Name",
	YAxis:     "Count",
	YMax:      24000,
	Series: []engine.ChartSeries{{
		Name:  "Count",
		Color: "#2B8CBE",
		Data: []engine.ChartPoint{
			{Label: "Olivia", Value: 19638},
			{Label: "Emma", Value: 20455},
			{Label: "Ava", Value: 16340},
		},
	}},
}

var lineConfig = &engine.ChartConfig{
	ChartType:  "line",
	Title:      "Baby Name Relevance Over Time: Charlie",
	XAxis:      "Year",
	YAxis:      "Count",
	ShowLegend: true,
	Series: []engine.ChartSeries{
		{Name: "F", Color: "#4F46E5", Data: []engine.ChartPoint{{Label: "2015", Value: 1200}, {Label: "2016", Value: 1500}, {Label: "2017", Value: 1700}}},
		{Name: "M", Color: "#10B981", Data: []engine.ChartPoint{{Label: "2015", Value: 2000}, {Label: "2017", Value: 1600}}},
	},
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name string
		cfg  *engine.ChartConfig
	}{
		{"bar", barConfig},
		{"line", lineConfig},
		{"empty bar", &engine.ChartConfig{ChartType: "bar", Title: "Dog Name Twins", YMax: 600, Series: []engine.ChartSeries{{Name: "Count"}}}},
		{"empty line", &engine.ChartConfig{ChartType: "line", Title: "Dog Name Relevance Over Time: Nobody"}},
		{"single point line", &engine.ChartConfig{ChartType: "line", Series: []engine.ChartSeries{{Name: "Luna", Data: []engine.ChartPoint{{Label: "2016", Value: 2}}}}}},
		{"nil config", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.cfg, PNG, Size{}); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Errorf("output is not a PNG (%d bytes)", buf.Len())
			}
		})
	}
}

func TestBarColorsFollowPoints(t *testing.T) {
	cfg := &engine.ChartConfig{
		ChartType: "bar",
		Series: []engine.ChartSeries{{
			Name:  "Count",
			Color: "#0868AC",
			Data: []engine.ChartPoint{
				{Label: "Luna", Value: 40, Color: "#0868AC"},
				{Label: "Max", Value: 10, Color: "#E0F3DB"},
				{Label: "Rex", Value: 25},
			},
		}},
	}

	bars := barChart(cfg, Size{}).Bars
	want := []string{"#0868AC", "#E0F3DB", "#0868AC"}
	if len(bars) != len(want) {
		t.Fatalf("got %d bars, want %d", len(bars), len(want))
	}
	for i, w := range want {
		if bars[i].Style.FillColor != hexColor(w) {
			t.Errorf("%s: fill = %v, want %s", bars[i].Label, bars[i].Style.FillColor, w)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, barConfig, SVG, Size{Width: 800, Height: 400}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("output is not an SVG document")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, barConfig, Format("gif"), Size{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"chart.png", PNG, false},
		{"chart.PNG", PNG, false},
		{"out/chart.svg", SVG, false},
		{"chart", PNG, false},
		{"chart.jpg", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_babies.png")
	if err := WriteFile(path, barConfig, Size{}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("written file is not a PNG")
	}
}

func TestYMax(t *testing.T) {
	if got := yMax(24000, 500); got != 24000 {
		t.Errorf("fixed domain should win over smaller data: %v", got)
	}
	if got := yMax(55, 80); got != 80 {
		t.Errorf("data above the fixed domain should extend it: %v", got)
	}
	if got := yMax(0, 0); got != 1 {
		t.Errorf("empty data should still give a non-zero domain: %v", got)
	}
}
