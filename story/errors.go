package story

import "errors"

var (
	// ErrYearOutOfRange is returned when a selected year lies outside the
	// years the loaded data can answer for.
	ErrYearOutOfRange = errors.New("year out of range")
	// ErrUnknownName is returned when a selected name is not in the known
	// name set of a dataset.
	ErrUnknownName = errors.New("unknown name")
)
