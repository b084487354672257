package dataset

import (
	"fmt"
	"strings"
	"time"
)

// DogLicense is one license event after pruning. Many records share a name.
type DogLicense struct {
	Name      string    `json:"dogName" yaml:"dogName"`
	ValidDate time.Time `json:"validDate" yaml:"validDate"`
	Year      int       `json:"year" yaml:"year"`
}

// RecordYear implements Yearly.
func (d DogLicense) RecordYear() int { return d.Year }

// BabyName is one (name, sex, year) application count.
type BabyName struct {
	Name  string `json:"name" yaml:"name"`
	Sex   Sex    `json:"sex" yaml:"sex"`
	Year  int    `json:"year" yaml:"year"`
	Count int    `json:"count" yaml:"count"`
}

// RecordYear implements Yearly.
func (b BabyName) RecordYear() int { return b.Year }

// Sex of a baby name record, stored as the single-letter code of the source.
type Sex string

const (
	Female Sex = "F"
	Male   Sex = "M"
)

// ParseSex accepts "F"/"M" and "Female"/"Male" in any case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female":
		return Female, nil
	case "m", "male":
		return Male, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// Label returns "Female" or "Male".
func (s Sex) Label() string {
	switch s {
	case Female:
		return "Female"
	case Male:
		return "Male"
	}
	return string(s)
}

// Yearly is implemented by records that carry a calendar year.
type Yearly interface {
	RecordYear() int
}

// SinceYear returns the records whose year is at least minYear.
// The input slice is left untouched.
func SinceYear[T Yearly](records []T, minYear int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.RecordYear() >= minYear {
			out = append(out, r)
		}
	}
	return out
}
