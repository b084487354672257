package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a header lacks a schema column.
var ErrMissingColumn = errors.New("missing column")

// ============================================================================
// SCHEMA — Fixed shapes of the two source datasets
// ============================================================================
// Column names and order match the published files exactly:
//   dogdata.csv   — Allegheny County dog licenses (WPRDC)
//   humandata.csv — SSA baby names, national data, merged per year
//
// Keep marks the columns that survive the Column Pruner. Everything else is
// administrative and dropped before analysis.
// ============================================================================

// Column types.
const (
	TypeString  = "string"
	TypeDate    = "date"
	TypeInteger = "integer"
	TypeEnum    = "enum"
)

// Column describes a single source column.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Key         string `json:"key" yaml:"key"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Type        string `json:"type" yaml:"type"`
	Keep        bool   `json:"keep" yaml:"keep"`
}

// Dataset describes one source file.
type Dataset struct {
	Name        string   `json:"name" yaml:"name"`
	File        string   `json:"file" yaml:"file"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []Column `json:"columns" yaml:"columns"`
}

// DogLicenses is the schema of dogdata.csv.
var DogLicenses = Dataset{
	Name:        "Dog Licenses",
	File:        "dogdata.csv",
	Description: "Allegheny County dog license records, one row per license event",
	Columns: []Column{
		column("_id", TypeInteger, false),
		column("LicenseType", TypeString, false),
		column("DogName", TypeString, true),
		column("Breed", TypeString, false),
		column("Color", TypeString, false),
		column("ValidDate", TypeDate, true),
		column("OwnerZip", TypeString, false),
		column("ExpYear", TypeInteger, false),
	},
}

// BabyNames is the schema of humandata.csv.
var BabyNames = Dataset{
	Name:        "Baby Names",
	File:        "humandata.csv",
	Description: "US social security card applications, one row per (name, sex, year)",
	Columns: []Column{
		column("Name", TypeString, true),
		column("Sex", TypeEnum, true),
		column("Year", TypeInteger, true),
		column("Count", TypeInteger, true),
	},
}

func column(name, typ string, keep bool) Column {
	return Column{
		Name:        name,
		Key:         toSnakeCase(name),
		DisplayName: toDisplayName(name),
		Type:        typ,
		Keep:        keep,
	}
}

// Kept returns the names of the columns retained after pruning, in file order.
func (d Dataset) Kept() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Keep {
			names = append(names, c.Name)
		}
	}
	return names
}

// Dropped returns the names of the columns removed by the pruner.
func (d Dataset) Dropped() []string {
	var names []string
	for _, c := range d.Columns {
		if !c.Keep {
			names = append(names, c.Name)
		}
	}
	return names
}

// Missing returns the schema columns absent from headers.
// Header names are compared after trimming surrounding whitespace.
func (d Dataset) Missing(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, c := range d.Columns {
		if !present[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// Validate checks that every schema column is present in headers.
// The error wraps ErrMissingColumn and names every absent column.
func (d Dataset) Validate(headers []string) error {
	if missing := d.Missing(headers); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
