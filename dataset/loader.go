package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/calebsarmiento/Babies-Dogs-Naming/schema"
	"github.com/go-gota/gota/dataframe"
)

// ============================================================================
// LOADER — delimited text → pruned frame → typed records
// ============================================================================

// LoadDogs reads and parses a dog license file.
func LoadDogs(path string) ([]DogLicense, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseDogs(filepath.Base(path), data)
}

// ParseDogCSV parses dog license CSV bytes.
func ParseDogCSV(data []byte) ([]DogLicense, error) {
	return parseDogs(schema.DogLicenses.File, data)
}

// LoadBabies reads and parses a baby name file.
func LoadBabies(path string) ([]BabyName, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseBabies(filepath.Base(path), data)
}

// ParseBabyCSV parses baby name CSV bytes.
func ParseBabyCSV(data []byte) ([]BabyName, error) {
	return parseBabies(schema.BabyNames.File, data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ============================================================================
// DOGS
// ============================================================================

func parseDogs(file string, data []byte) ([]DogLicense, error) {
	cols, n, err := loadColumns(file, data, schema.DogLicenses)
	if err != nil {
		return nil, err
	}

	names := cols["DogName"]
	dates := cols["ValidDate"]

	dogs := make([]DogLicense, n)
	for i := 0; i < n; i++ {
		valid, err := parseDate(dates[i])
		if err != nil {
			return nil, &ParseError{File: file, Row: i + 2, Column: "ValidDate", Value: dates[i], Err: err}
		}
		dogs[i] = DogLicense{
			Name:      names[i],
			ValidDate: valid,
			Year:      valid.Year(),
		}
	}
	return dogs, nil
}

// ============================================================================
// BABIES
// ============================================================================

func parseBabies(file string, data []byte) ([]BabyName, error) {
	cols, n, err := loadColumns(file, data, schema.BabyNames)
	if err != nil {
		return nil, err
	}

	names, sexes, years, counts := cols["Name"], cols["Sex"], cols["Year"], cols["Count"]

	babies := make([]BabyName, n)
	for i := 0; i < n; i++ {
		row := i + 2

		sex, err := ParseSex(sexes[i])
		if err != nil {
			return nil, &ParseError{File: file, Row: row, Column: "Sex", Value: sexes[i], Err: err}
		}
		year, err := parseInt(years[i])
		if err != nil {
			return nil, &ParseError{File: file, Row: row, Column: "Year", Value: years[i], Err: err}
		}
		count, err := parseInt(counts[i])
		if err != nil {
			return nil, &ParseError{File: file, Row: row, Column: "Count", Value: counts[i], Err: err}
		}
		if count < 0 {
			return nil, &ParseError{File: file, Row: row, Column: "Count", Value: counts[i], Err: errors.New("count must not be negative")}
		}

		babies[i] = BabyName{Name: names[i], Sex: sex, Year: year, Count: count}
	}
	return babies, nil
}

// ============================================================================
// FRAME + PRUNER
// ============================================================================

// loadColumns reads CSV bytes, validates the header, prunes the columns the
// schema drops and returns the kept columns by name with the data row count.
func loadColumns(file string, data []byte, ds schema.Dataset) (map[string][]string, int, error) {
	records, err := readRecords(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w: %w", file, ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("%s: %w: no header row", file, ErrMalformedCSV)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := ds.Validate(header); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", file, err)
	}

	kept := ds.Kept()
	cols := make(map[string][]string, len(kept))
	if len(records) == 1 {
		for _, name := range kept {
			cols[name] = nil
		}
		return cols, 0, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
	if dropped := ds.Dropped(); len(dropped) > 0 {
		df = df.Drop(dropped)
	}
	df = df.Select(kept)
	if df.Err != nil {
		return nil, 0, fmt.Errorf("%s: %w: %v", file, ErrMalformedCSV, df.Err)
	}

	for _, name := range kept {
		cols[name] = df.Col(name).Records()
	}
	return cols, df.Nrow(), nil
}

// readRecords parses delimited text strictly: every row must have as many
// fields as the header.
func readRecords(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, nil
}

// ============================================================================
// TYPE COERCION
// ============================================================================

// parseDate accepts any representation dateparse understands and reads it in
// UTC so the calendar year does not depend on the local zone.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	return dateparse.ParseIn(s, time.UTC)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
