package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ============================================================================
// FIXTURES
// ============================================================================

var dogCSV = []byte(`_id,LicenseType,DogName,Breed,Color,ValidDate,OwnerZip,ExpYear
1,Dog Individual Spayed Female,bella,LABRADOR RETRIEVER,BLACK,2015-03-01T00:00:00,15213,2016
2,Dog Individual Spayed Female,BELLA,BEAGLE,BROWN,2015-03-01,15217,2016
3,Dog Individual Neutered Male,Max,BOXER,FAWN,03/14/2015,15101,2016
4,Dog Lifetime Spayed Female,Bella,POODLE,WHITE,2016-01-01,15237,2099
5,Dog Individual Female,,MIXED,BROWN,2016-07-09,15090,2017
`)

var babyCSV = []byte(`Name,Sex,Year,Count
Luna,F,2015,500
Luna,M,2015,5
Olivia,F,2009,17000
NA,F,2012,9
`)

// ============================================================================
// DOGS
// ============================================================================

func TestParseDogCSV(t *testing.T) {
	dogs, err := ParseDogCSV(dogCSV)
	if err != nil {
		t.Fatalf("ParseDogCSV failed: %v", err)
	}
	if len(dogs) != 5 {
		t.Fatalf("got %d dogs, want 5", len(dogs))
	}

	wantYears := []int{2015, 2015, 2015, 2016, 2016}
	for i, d := range dogs {
		if d.Year != wantYears[i] {
			t.Errorf("dog %d year = %d, want %d", i, d.Year, wantYears[i])
		}
		if d.ValidDate.Year() != d.Year {
			t.Errorf("dog %d ValidDate %v disagrees with Year %d", i, d.ValidDate, d.Year)
		}
	}

	// Names are kept as written; normalization happens at comparison time.
	if dogs[0].Name != "bella" || dogs[1].Name != "BELLA" {
		t.Errorf("raw names changed: %q, %q", dogs[0].Name, dogs[1].Name)
	}
	if dogs[4].Name != "" {
		t.Errorf("blank name should stay blank, got %q", dogs[4].Name)
	}
}

func TestParseDogCSVBadDate(t *testing.T) {
	data := []byte(`_id,LicenseType,DogName,Breed,Color,ValidDate,OwnerZip,ExpYear
1,Dog Individual,Rex,BOXER,FAWN,2015-03-01,15101,2016
2,Dog Individual,Fido,BOXER,FAWN,not a date,15101,2016
`)
	_, err := ParseDogCSV(data)
	if err == nil {
		t.Fatal("expected a parse error for an invalid date")
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error should wrap ErrInvalidValue: %v", err)
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be a *ParseError: %T", err)
	}
	if pe.Row != 3 || pe.Column != "ValidDate" || pe.Value != "not a date" {
		t.Errorf("unexpected ParseError %+v", pe)
	}
}

func TestParseDogCSVMissingColumn(t *testing.T) {
	data := []byte("_id,LicenseType,DogName,Breed,Color,OwnerZip,ExpYear\n1,x,Rex,y,z,15101,2016\n")
	_, err := ParseDogCSV(data)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "ValidDate") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestParseDogCSVMalformed(t *testing.T) {
	data := []byte("_id,LicenseType,DogName,Breed,Color,ValidDate,OwnerZip,ExpYear\n1,x,Rex,y,z,2015-01-01,15101\n")
	_, err := ParseDogCSV(data)
	if !errors.Is(err, ErrMalformedCSV) {
		t.Fatalf("expected ErrMalformedCSV, got %v", err)
	}
}

func TestParseDogCSVHeaderOnly(t *testing.T) {
	dogs, err := ParseDogCSV([]byte("_id,LicenseType,DogName,Breed,Color,ValidDate,OwnerZip,ExpYear\n"))
	if err != nil {
		t.Fatalf("header-only file should parse: %v", err)
	}
	if len(dogs) != 0 {
		t.Errorf("got %d dogs, want 0", len(dogs))
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := ParseBabyCSV(nil); !errors.Is(err, ErrMalformedCSV) {
		t.Fatalf("expected ErrMalformedCSV for an empty file, got %v", err)
	}
}

// ============================================================================
// BABIES
// ============================================================================

func TestParseBabyCSV(t *testing.T) {
	babies, err := ParseBabyCSV(babyCSV)
	if err != nil {
		t.Fatalf("ParseBabyCSV failed: %v", err)
	}
	if len(babies) != 4 {
		t.Fatalf("got %d babies, want 4", len(babies))
	}

	want := BabyName{Name: "Luna", Sex: Male, Year: 2015, Count: 5}
	if babies[1] != want {
		t.Errorf("babies[1] = %+v, want %+v", babies[1], want)
	}
	if babies[3].Name != "NA" {
		t.Errorf("the name NA must not be read as missing, got %q", babies[3].Name)
	}
}

func TestParseBabyCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"non numeric count", "Luna,F,2015,lots", "Count"},
		{"negative count", "Luna,F,2015,-4", "Count"},
		{"non numeric year", "Luna,F,twenty,4", "Year"},
		{"unknown sex", "Luna,X,2015,4", "Sex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBabyCSV([]byte("Name,Sex,Year,Count\n" + tt.row + "\n"))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Column != tt.column || pe.Row != 2 {
				t.Errorf("got column %s row %d, want column %s row 2", pe.Column, pe.Row, tt.column)
			}
		})
	}
}

func TestParseSex(t *testing.T) {
	tests := map[string]Sex{"F": Female, "m": Male, "Female": Female, " male ": Male}
	for in, want := range tests {
		got, err := ParseSex(in)
		if err != nil || got != want {
			t.Errorf("ParseSex(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSex("U"); err == nil {
		t.Error("ParseSex(U) should fail")
	}
	if Female.Label() != "Female" || Male.Label() != "Male" {
		t.Error("unexpected sex labels")
	}
}

// ============================================================================
// FILES
// ============================================================================

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	dogPath := filepath.Join(dir, "dogdata.csv")
	babyPath := filepath.Join(dir, "humandata.csv")
	writeFile(t, dogPath, dogCSV)
	writeFile(t, babyPath, babyCSV)

	dogs, err := LoadDogs(dogPath)
	if err != nil || len(dogs) != 5 {
		t.Fatalf("LoadDogs = %d, %v", len(dogs), err)
	}
	babies, err := LoadBabies(babyPath)
	if err != nil || len(babies) != 4 {
		t.Fatalf("LoadBabies = %d, %v", len(babies), err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadDogs(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "babies-2015.csv")
	writeFile(t, path, []byte("Name,Sex,Year,Count\nLuna,F,2015,x\n"))

	var pe *ParseError
	if _, err := LoadBabies(path); !errors.As(err, &pe) || pe.File != "babies-2015.csv" {
		t.Fatalf("expected ParseError naming babies-2015.csv, got %v", err)
	}
}

// ============================================================================
// NORMALIZATION & VIEWS
// ============================================================================

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"bella", "Bella"},
		{"BELLA", "Bella"},
		{"  bElLa  ", "Bella"},
		{"mary   jane", "Mary Jane"},
		{"o'neil", "O'Neil"},
		{"D'ANGELO", "D'Angelo"},
		{"o’brien", "O’Brien"},
		{"mary-kate", "Mary-Kate"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.expected {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeNames(t *testing.T) {
	got := NormalizeNames([]string{"luna", "Max", "LUNA", "", "max", "Bella"})
	want := []string{"Luna", "Max", "Bella"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("NormalizeNames = %v, want %v", got, want)
	}
}

func TestNameCache(t *testing.T) {
	cache := newNameCache()
	inputs := []string{"bella", "BELLA", "o'neil", "bella", " Bella ", "o'neil", "max"}
	for _, in := range inputs {
		if got, want := cache.normalize(in), NormalizeName(in); got != want {
			t.Errorf("cached normalize(%q) = %q, want %q", in, got, want)
		}
	}
	if len(cache.seen) != 5 {
		t.Errorf("cache holds %d spellings, want 5 distinct inputs", len(cache.seen))
	}
}

func TestViewNormalizesOncePerSpelling(t *testing.T) {
	dogs := make([]DogLicense, 0, 3000)
	for i := 0; i < 1000; i++ {
		dogs = append(dogs,
			DogLicense{Name: "bella", Year: 2015},
			DogLicense{Name: "O'NEIL", Year: 2016},
			DogLicense{Name: "", Year: 2016},
		)
	}
	view := DogView(dogs)
	for i := 0; i < view.Len(); i += 997 {
		want := NormalizeName(dogs[i].Name)
		if got := view.Dimension(i, KeyName); got != want {
			t.Errorf("[%d] name = %q, want %q", i, got, want)
		}
	}
	if got := view.Dimension(1, KeyName); got != "O'Neil" {
		t.Errorf("apostrophe name = %q, want O'Neil", got)
	}
	if dogs[1].Name != "O'NEIL" {
		t.Error("binding a view must not modify the records")
	}
}

func TestSinceYear(t *testing.T) {
	babies, err := ParseBabyCSV(babyCSV)
	if err != nil {
		t.Fatal(err)
	}
	recent := SinceYear(babies, 2010)
	if len(recent) != 3 {
		t.Fatalf("got %d records since 2010, want 3", len(recent))
	}
	for _, b := range recent {
		if b.Year < 2010 {
			t.Errorf("record from %d should have been excluded", b.Year)
		}
	}
	if len(babies) != 4 {
		t.Error("SinceYear must not modify its input")
	}
}

func TestViews(t *testing.T) {
	dogs, _ := ParseDogCSV(dogCSV)
	view := DogView(dogs)
	if got := view.Dimension(1, KeyName); got != "Bella" {
		t.Errorf("dog name dimension = %q, want Bella", got)
	}
	if got := view.Dimension(1, KeyRawName); got != "BELLA" {
		t.Errorf("dog raw name dimension = %q, want BELLA", got)
	}
	if got := view.Measure(1, KeyCount); got != 1 {
		t.Errorf("dog weight = %v, want 1", got)
	}

	babies, _ := ParseBabyCSV(babyCSV)
	bv := BabyView(babies)
	if got := bv.Dimension(0, KeySex); got != "F" {
		t.Errorf("baby sex dimension = %q", got)
	}
	if got := bv.Measure(0, KeyCount); got != 500 {
		t.Errorf("baby count = %v", got)
	}
	if got := bv.Dimension(2, KeyYear); got != "2009" {
		t.Errorf("baby year = %q", got)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
