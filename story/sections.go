package story

import (
	"fmt"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// SECTIONS — tables, charts and text for each block of the story
// ============================================================================

// Section keys.
const (
	KeyTopBabies  = "top_babies"
	KeyTopDogs    = "top_dogs"
	KeyBabyTrend  = "baby_trend"
	KeyDogTrend   = "dog_trend"
	KeyTwins      = "twins"
	KeyTwinLookup = "twin_lookup"
)

// Fixed y domains of the bar charts, so charts of different years compare.
const (
	babyChartMax  = 24000
	dogChartMax   = 55
	twinsChartMax = 600
)

// Params are the user-chosen parameters of one page render.
type Params struct {
	Year      int
	Count     int
	BabyName  string
	DogName   string
	TwinCount int    // 0 = Count
	TwinName  string // optional twin lookup
	YearOnly  bool   // twins count dogs of Year only
}

// ============================================================================
// TOP NAMES
// ============================================================================

// TopBabies is the bar chart section of the most common baby names of a year.
func (s *Session) TopBabies(year, count int) (*Section, error) {
	return s.top(Babies, year, count)
}

// TopDogs is the bar chart section of the most common dog names of a year.
func (s *Session) TopDogs(year, count int) (*Section, error) {
	return s.top(Dogs, year, count)
}

func (s *Session) top(src Source, year, count int) (*Section, error) {
	if err := s.CheckYear(year); err != nil {
		return nil, err
	}
	count = s.ClampCount(count)

	var table NameCountTable
	if src == Babies {
		table = Aggregate(s.View(Babies), BabySpec(year))
	} else {
		table = Aggregate(s.View(Dogs), DogSpec(year))
	}
	shown := TopN(table, count)

	s.logger.Debug("top names", "dataset", src, "year", year, "names", len(table), "shown", len(shown))

	spec := engine.ChartSpec{ChartType: "bar", YAxis: "Count", Series: "Count"}
	key := KeyTopDogs
	if src == Babies {
		key = KeyTopBabies
		spec.Title = fmt.Sprintf("Top %d Baby Names for the US in %d", count, year)
		spec.XAxis = "Baby Name"
		spec.YMax = babyChartMax
		spec.Palette = "greenblue"
	} else {
		spec.Title = fmt.Sprintf("Top %d Dog Names for Allegheny County in %d", count, year)
		spec.XAxis = "Dog Name"
		spec.YMax = dogChartMax
		spec.Palette = "goldred"
	}

	return &Section{
		Key:   key,
		Title: spec.Title,
		Text:  topText(src, year, table, shown),
		Table: engine.BuildTable(engine.TableSpec{Title: spec.Title, GroupLabel: spec.XAxis, ValueLabel: "Count"}, shown.groups()),
		Chart: engine.BuildChart(spec, shown.groups()),
		Names: shown,
	}, nil
}

// ============================================================================
// TRENDS
// ============================================================================

// BabyTrend is the line chart section of one baby name, one line per sex.
func (s *Session) BabyTrend(name string) *Section {
	return s.trend(Babies, name)
}

// DogTrend is the line chart section of one dog name.
func (s *Session) DogTrend(name string) *Section {
	return s.trend(Dogs, name)
}

func (s *Session) trend(src Source, name string) *Section {
	spec := DogSeriesSpec(name)
	key, title := KeyDogTrend, "Dog Name Relevance Over Time"
	if src == Babies {
		spec = BabySeriesSpec(name)
		key, title = KeyBabyTrend, "Baby Name Relevance Over Time"
	}

	view := s.View(src)
	groups := seriesGroups(view, spec)
	series := TimeSeries(view, spec)
	normalized := dataset.NormalizeName(name)

	s.logger.Debug("trend", "dataset", src, "name", normalized, "points", len(series.Points))

	chartSpec := engine.ChartSpec{
		ChartType: "line",
		Title:     fmt.Sprintf("%s: %s", title, normalized),
		XAxis:     "Year",
		YAxis:     "Count",
		Series:    normalized,
	}
	tableSpec := engine.TableSpec{Title: chartSpec.Title, GroupLabel: "Year", SubLabel: "Sex", ValueLabel: "Count"}

	var growth *engine.TextData
	if len(groups) > 0 {
		growth = engine.BuildGrowthText(groups, unitFor(src))
	}

	return &Section{
		Key:    key,
		Title:  chartSpec.Title,
		Text:   trendText(src, normalized, growth),
		Table:  engine.BuildTable(tableSpec, groups),
		Chart:  engine.BuildChart(chartSpec, groups),
		Growth: growth,
		Series: &series,
	}
}

// ============================================================================
// TWINS
// ============================================================================

// TwinTable is the dog counts of every dog name that is also a baby name of
// year. Dog counts cover all years unless yearOnly is set.
func (s *Session) TwinTable(year int, yearOnly bool) (NameCountTable, error) {
	if err := s.CheckYear(year); err != nil {
		return nil, err
	}

	dogCounts := AggregateAllYears(s.View(Dogs), DogSpec(year))
	if yearOnly {
		dogCounts = Aggregate(s.View(Dogs), DogSpec(year))
	}
	babyNames := Aggregate(s.View(Babies), BabySpec(year)).Names()

	twins := Intersect(dogCounts, babyNames)
	s.logger.Debug("twins", "year", year, "year_only", yearOnly, "dog_names", len(dogCounts), "baby_names", len(babyNames), "twins", len(twins))
	return twins, nil
}

// Twins is the bar chart section of dog name twins. The display count is
// bounded by the number of dog names licensed in year.
func (s *Session) Twins(year, count int, yearOnly bool) (*Section, error) {
	twins, err := s.TwinTable(year, yearOnly)
	if err != nil {
		return nil, err
	}

	limit := len(Aggregate(s.View(Dogs), DogSpec(year)))
	count = clamp(count, 1, limit)
	shown := TopN(twins, count)

	spec := engine.ChartSpec{
		ChartType: "bar",
		Title:     "Dog Name Twins",
		XAxis:     "Dog Name",
		YAxis:     "Count",
		YMax:      twinsChartMax,
		Series:    "Count",
		Palette:   "yellowgreen",
	}

	return &Section{
		Key:   KeyTwins,
		Title: spec.Title,
		Text:  twinsText(year, twins, yearOnly),
		Table: engine.BuildTable(engine.TableSpec{Title: spec.Title, GroupLabel: "Dog Name", ValueLabel: "Count"}, shown.groups()),
		Chart: engine.BuildChart(spec, shown.groups()),
		Names: shown,
	}, nil
}

// TwinLookup returns the twin row of one name: a single row, or an empty
// table when the name is not a twin.
func (s *Session) TwinLookup(name string, year int, yearOnly bool) (NameCountTable, error) {
	twins, err := s.TwinTable(year, yearOnly)
	if err != nil {
		return nil, err
	}
	if row, ok := twins.Lookup(name); ok {
		return NameCountTable{row}, nil
	}
	return NameCountTable{}, nil
}

// TwinLookupSection is the table section of one name's twin row.
func (s *Session) TwinLookupSection(name string, year int, yearOnly bool) (*Section, error) {
	lookup, err := s.TwinLookup(name, year, yearOnly)
	if err != nil {
		return nil, err
	}
	title := "Twin Lookup: " + dataset.NormalizeName(name)
	return &Section{
		Key:   KeyTwinLookup,
		Title: title,
		Text:  lookupText(name, year, lookup, yearOnly),
		Table: engine.BuildTable(engine.TableSpec{Title: title, GroupLabel: "Dog Name", ValueLabel: "Count"}, lookup.groups()),
		Names: lookup,
	}, nil
}

// ============================================================================
// PAGE
// ============================================================================

// Page computes every section of the story for one set of parameters.
func (s *Session) Page(p Params) (*Page, error) {
	topBabies, err := s.TopBabies(p.Year, p.Count)
	if err != nil {
		return nil, err
	}
	topDogs, err := s.TopDogs(p.Year, p.Count)
	if err != nil {
		return nil, err
	}

	twinCount := p.TwinCount
	if twinCount == 0 {
		twinCount = p.Count
	}
	twins, err := s.Twins(p.Year, twinCount, p.YearOnly)
	if err != nil {
		return nil, err
	}

	page := &Page{
		SessionID: s.ID,
		Year:      p.Year,
		Count:     s.ClampCount(p.Count),
		Sections: []Section{
			*topBabies,
			*topDogs,
			*s.BabyTrend(p.BabyName),
			*s.DogTrend(p.DogName),
			*twins,
		},
	}

	if p.TwinName != "" {
		lookup, err := s.TwinLookupSection(p.TwinName, p.Year, p.YearOnly)
		if err != nil {
			return nil, err
		}
		page.Sections = append(page.Sections, *lookup)
	}

	s.logger.Info("page built", "year", p.Year, "count", page.Count, "sections", len(page.Sections))
	return page, nil
}
