package story

import (
	"fmt"
	"strings"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// STORY TYPES — Derived tables handed to the presentation layer
// ============================================================================
// Every derived table is a fresh value computed from the loaded source slices
// and explicit parameters. Nothing here points back into the sources.
// ============================================================================

// NameCount is one row of a NameCountTable.
type NameCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// NameCountTable is unique by normalized name and ordered by count
// descending. Ties keep first-seen order.
type NameCountTable []NameCount

// Names returns the names of the table in order.
func (t NameCountTable) Names() []string {
	names := make([]string, len(t))
	for i, row := range t {
		names[i] = row.Name
	}
	return names
}

// Total sums the counts of the table.
func (t NameCountTable) Total() int {
	total := 0
	for _, row := range t {
		total += row.Count
	}
	return total
}

// Lookup returns the row for a name, compared after normalization.
func (t NameCountTable) Lookup(name string) (NameCount, bool) {
	want := dataset.NormalizeName(name)
	for _, row := range t {
		if row.Name == want {
			return row, true
		}
	}
	return NameCount{}, false
}

// groups converts the table into engine groups for the chart and table builders.
func (t NameCountTable) groups() []engine.Group {
	groups := make([]engine.Group, len(t))
	for i, row := range t {
		groups[i] = engine.Group{Key: row.Name, Label: row.Name, Value: float64(row.Count), Count: row.Count}
	}
	return groups
}

// SeriesPoint is one (year, category) count of a time series.
// Category is empty when the series has no category column.
type SeriesPoint struct {
	Year     int    `json:"year" yaml:"year"`
	Count    int    `json:"count" yaml:"count"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// NameTimeSeries is the history of one name, ordered by year then category.
type NameTimeSeries struct {
	Name   string        `json:"name" yaml:"name"`
	Points []SeriesPoint `json:"points" yaml:"points"`
}

// IsEmpty reports whether the name never occurs.
func (s NameTimeSeries) IsEmpty() bool { return len(s.Points) == 0 }

// ============================================================================
// SOURCES
// ============================================================================

// Source selects one of the two loaded datasets.
type Source string

const (
	Dogs   Source = "dogs"
	Babies Source = "babies"
)

// ParseSource accepts "dogs"/"dog" and "babies"/"baby", case-insensitive.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dogs", "dog":
		return Dogs, nil
	case "babies", "baby":
		return Babies, nil
	}
	return "", fmt.Errorf("unknown dataset %q (want dogs or babies)", s)
}

// ============================================================================
// PAGE
// ============================================================================

// Section is one rendered block of the story: a table, a chart and the
// narrative that goes with them.
type Section struct {
	Key    string              `json:"key" yaml:"key"`
	Title  string              `json:"title" yaml:"title"`
	Text   string              `json:"text" yaml:"text"`
	Table  *engine.TableData   `json:"table" yaml:"table"`
	Chart  *engine.ChartConfig `json:"chart" yaml:"chart"`
	Growth *engine.TextData    `json:"growth,omitempty" yaml:"growth,omitempty"`
	Names  NameCountTable      `json:"names,omitempty" yaml:"names,omitempty"`
	Series *NameTimeSeries     `json:"series,omitempty" yaml:"series,omitempty"`
}

// Page is every section of the story for one set of parameters.
type Page struct {
	SessionID string    `json:"sessionId" yaml:"sessionId"`
	Year      int       `json:"year" yaml:"year"`
	Count     int       `json:"count" yaml:"count"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// Section returns the section with the given key, or nil.
func (p *Page) Section(key string) *Section {
	for i := range p.Sections {
		if p.Sections[i].Key == key {
			return &p.Sections[i]
		}
	}
	return nil
}
