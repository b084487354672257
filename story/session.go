package story

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// SESSION — one loaded copy of both datasets
// ============================================================================
// A Session owns its source slices and never writes to them. Each call
// recomputes its derived tables from scratch, so a Session answers any
// sequence of parameter changes without carrying state between them.
// ============================================================================

// Session holds the loaded datasets and the parameter bounds derived from them.
type Session struct {
	ID string

	dogs   []dataset.DogLicense
	babies []dataset.BabyName

	// Bound once; every computation reads these.
	dogView  engine.RecordView
	babyView engine.RecordView

	minYear  int
	maxCount int
	logger   *slog.Logger
}

// Open loads both datasets from disk and starts a session over them.
func Open(dogPath, babyPath string, opts ...Option) (*Session, error) {
	dogs, err := dataset.LoadDogs(dogPath)
	if err != nil {
		return nil, fmt.Errorf("load dogs: %w", err)
	}
	babies, err := dataset.LoadBabies(babyPath)
	if err != nil {
		return nil, fmt.Errorf("load babies: %w", err)
	}
	return NewSession(dogs, babies, opts...), nil
}

// NewSession starts a session over already-parsed records. Records older
// than the minimum year are left out; the caller's slices are not modified.
func NewSession(dogs []dataset.DogLicense, babies []dataset.BabyName, opts ...Option) *Session {
	cfg := applyOptions(opts)

	s := &Session{
		ID:       uuid.NewString(),
		dogs:     dataset.SinceYear(dogs, cfg.MinYear),
		babies:   dataset.SinceYear(babies, cfg.MinYear),
		minYear:  cfg.MinYear,
		maxCount: cfg.MaxCount,
	}
	s.dogView = dataset.DogView(s.dogs)
	s.babyView = dataset.BabyView(s.babies)
	s.logger = cfg.Logger.With("session", s.ID)

	s.logger.Info("session opened",
		"dogs", len(s.dogs),
		"dogs_dropped", len(dogs)-len(s.dogs),
		"babies", len(s.babies),
		"babies_dropped", len(babies)-len(s.babies),
		"min_year", s.minYear,
	)
	return s
}

// View returns the record view of a dataset. The same view is returned on
// every call.
func (s *Session) View(src Source) engine.RecordView {
	if src == Babies {
		return s.babyView
	}
	return s.dogView
}

// Len returns the number of records of a dataset in the session.
func (s *Session) Len(src Source) int {
	if src == Babies {
		return len(s.babies)
	}
	return len(s.dogs)
}

// ============================================================================
// PARAMETER BOUNDS
// ============================================================================

// Years returns the selectable year range: the minimum year through the
// latest year either dataset has. With no data both ends are the minimum.
func (s *Session) Years() (first, last int) {
	last = s.minYear
	all := engine.NewConcatView(s.View(Dogs), s.View(Babies))
	if _, latest, ok := YearRange(all, dataset.KeyYear); ok && latest > last {
		last = latest
	}
	return s.minYear, last
}

// CheckYear reports ErrYearOutOfRange for a year outside Years().
func (s *Session) CheckYear(year int) error {
	first, last := s.Years()
	if year < first || year > last {
		return fmt.Errorf("%w: %d is not in [%d, %d]", ErrYearOutOfRange, year, first, last)
	}
	return nil
}

// ClampCount bounds a display count to [1, max count].
func (s *Session) ClampCount(n int) int {
	return clamp(n, 1, s.maxCount)
}

// KnownNames returns the distinct normalized names of a dataset.
func (s *Session) KnownNames(src Source) []string {
	return Names(s.View(src), dataset.KeyName)
}

// AllNames returns the distinct names of both datasets, dog names first.
func (s *Session) AllNames() []string {
	return Names(engine.NewConcatView(s.View(Dogs), s.View(Babies)), dataset.KeyName)
}

// CheckName reports ErrUnknownName when name is not among the dataset's names.
func (s *Session) CheckName(src Source, name string) error {
	want := dataset.NormalizeName(name)
	if want != "" && slices.Contains(s.KnownNames(src), want) {
		return nil
	}
	return fmt.Errorf("%w: %q is not a known %s name", ErrUnknownName, name, src)
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
