package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestDogLicensePruning(t *testing.T) {
	kept := DogLicenses.Kept()
	assertEqualSlices(t, kept, []string{"DogName", "ValidDate"}, "kept dog columns")

	dropped := DogLicenses.Dropped()
	assertEqualSlices(t, dropped, []string{"_id", "LicenseType", "Breed", "Color", "OwnerZip", "ExpYear"}, "dropped dog columns")
}

func TestBabyNamesKeepsEverything(t *testing.T) {
	assertEqualSlices(t, BabyNames.Kept(), []string{"Name", "Sex", "Year", "Count"}, "kept baby columns")
	if len(BabyNames.Dropped()) != 0 {
		t.Errorf("baby schema should drop nothing, got %v", BabyNames.Dropped())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		headers []string
		wantErr string
	}{
		{
			name:    "dog headers in file order",
			ds:      DogLicenses,
			headers: []string{"_id", "LicenseType", "DogName", "Breed", "Color", "ValidDate", "OwnerZip", "ExpYear"},
		},
		{
			name:    "baby headers with padding",
			ds:      BabyNames,
			headers: []string{" Name", "Sex ", "Year", "Count"},
		},
		{
			name:    "dog headers missing date",
			ds:      DogLicenses,
			headers: []string{"_id", "LicenseType", "DogName", "Breed", "Color", "OwnerZip", "ExpYear"},
			wantErr: "ValidDate",
		},
		{
			name:    "baby headers lowercase",
			ds:      BabyNames,
			headers: []string{"name", "sex", "year", "count"},
			wantErr: "Name, Sex, Year, Count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate(tt.headers)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q", tt.wantErr)
			}
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("error %v should wrap ErrMissingColumn", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DogName", "dog_name"},
		{"LicenseType", "license_type"},
		{"_id", "id"},
		{"ExpYear", "exp_year"},
		{"Owner Zip", "owner_zip"},
		{"Count", "count"},
		{"created_at", "created_at"},
	}

	for _, tt := range tests {
		got := toSnakeCase(tt.input)
		if got != tt.expected {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DogName", "Dog Name"},
		{"_id", "Id"},
		{"owner_zip", "Owner Zip"},
		{"Dog Name", "Dog Name"},
		{"Sex", "Sex"},
	}

	for _, tt := range tests {
		got := toDisplayName(tt.input)
		if got != tt.expected {
			t.Errorf("toDisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func assertEqualSlices(t *testing.T, got, want []string, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v, want %v", msg, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s: [%d] got %q, want %q", msg, i, got[i], want[i])
		}
	}
}
