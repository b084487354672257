package engine

// ============================================================================
// ENGINE TYPES — Generic grouping and render-ready output
// ============================================================================
// The engine knows nothing about dogs or babies. Callers bind their typed
// slices through a DomainAdapter and ask for groups, charts, tables or text.
//
// Dependency: engine has ZERO external dependencies.
// ============================================================================

// Aggregations supported by GroupAndAggregate.
const (
	AggSum   = "sum"   // total of a measure
	AggCount = "count" // number of rows
)

// Sort modes supported by SortGroups. Any other mode keeps grouping order.
const (
	SortValueDesc = "value_desc"
	SortYearAsc   = "year_asc"
	SortLabelAsc  = "label_asc"
)

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Where builds a single-dimension filter.
func Where(dimension string, values ...string) Filters {
	return Filters{Dimensions: map[string][]string{dimension: values}}
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig, TableData, or TextData.
type Group struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Count     int        `json:"count"`
	SubGroups []Group    `json:"subGroups,omitempty"`
	View      RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartSpec describes the chart a caller wants built from groups.
type ChartSpec struct {
	ChartType string  `json:"chartType"` // "bar", "line"
	Title     string  `json:"title"`
	XAxis     string  `json:"xAxis"`
	YAxis     string  `json:"yAxis"`
	YMax      float64 `json:"yMax,omitempty"` // fixed upper bound of the y domain, 0 = auto
	Series    string  `json:"series,omitempty"`
	Palette   string  `json:"palette,omitempty"`
}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType" yaml:"chartType"`
	Title      string        `json:"title" yaml:"title"`
	XAxis      string        `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	YMax       float64       `json:"yMax,omitempty" yaml:"yMax,omitempty"`
	Series     []ChartSeries `json:"series" yaml:"series"`
	Colors     []string      `json:"colors,omitempty" yaml:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend" yaml:"showLegend"`
	ShowGrid   bool          `json:"showGrid" yaml:"showGrid"`
}

// IsEmpty reports whether the chart has no data points at all.
func (c *ChartConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.Series {
		if len(s.Data) > 0 {
			return false
		}
	}
	return true
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name" yaml:"name"`
	Data  []ChartPoint `json:"data" yaml:"data"`
	Color string       `json:"color,omitempty" yaml:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"` // set on sequential-scale bars
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []Column   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
	Summary *Summary   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type" yaml:"type"`   // "text", "number"
	Align string `json:"align" yaml:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label" yaml:"label"`
	Values map[string]string `json:"values" yaml:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is structured data for a narrative answer.
type TextData struct {
	Value    string      `json:"value" yaml:"value"`
	RawValue float64     `json:"rawValue" yaml:"rawValue"`
	Unit     string      `json:"unit,omitempty" yaml:"unit,omitempty"`
	Period   string      `json:"period" yaml:"period"`
	Count    int         `json:"count" yaml:"count"`
	Growth   *GrowthData `json:"growth,omitempty" yaml:"growth,omitempty"`
}

// GrowthData contains change-over-time metrics.
type GrowthData struct {
	EarliestValue  float64 `json:"earliestValue" yaml:"earliestValue"`
	LatestValue    float64 `json:"latestValue" yaml:"latestValue"`
	EarliestPeriod string  `json:"earliestPeriod" yaml:"earliestPeriod"`
	LatestPeriod   string  `json:"latestPeriod" yaml:"latestPeriod"`
	PeakValue      float64 `json:"peakValue" yaml:"peakValue"`
	PeakPeriod     string  `json:"peakPeriod" yaml:"peakPeriod"`
	ChangeAmount   float64 `json:"changeAmount" yaml:"changeAmount"`
	ChangePercent  float64 `json:"changePercent" yaml:"changePercent"`
	Direction      string  `json:"direction" yaml:"direction"` // "increased", "decreased", "unchanged", "insufficient data"
}
