package story

import (
	"strconv"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// TIME-SERIES EXTRACTOR — one name across years
// ============================================================================

// SeriesSpec names the dimensions a time series reads. CategoryKey splits
// each year into one point per category (e.g. sex); CountKey as in
// AggregateSpec.
type SeriesSpec struct {
	NameKey     string
	Name        string
	YearKey     string
	CountKey    string
	CategoryKey string
}

// TimeSeries extracts the per-year counts of one name, year ascending and
// category ascending within a year. An absent name yields an empty series.
func TimeSeries(view engine.RecordView, spec SeriesSpec) NameTimeSeries {
	series := NameTimeSeries{Name: dataset.NormalizeName(spec.Name), Points: []SeriesPoint{}}

	for _, g := range seriesGroups(view, spec) {
		year, err := strconv.Atoi(g.Key)
		if err != nil {
			continue
		}
		if spec.CategoryKey == "" {
			series.Points = append(series.Points, SeriesPoint{Year: year, Count: int(g.Value)})
			continue
		}
		for _, sg := range g.SubGroups {
			series.Points = append(series.Points, SeriesPoint{Year: year, Count: int(sg.Value), Category: sg.Key})
		}
	}
	return series
}

// DogSeries is the licenses per year of one dog name.
func DogSeries(dogs []dataset.DogLicense, name string) NameTimeSeries {
	return TimeSeries(dataset.DogView(dogs), DogSeriesSpec(name))
}

// BabySeries is the births per year and sex of one baby name.
func BabySeries(babies []dataset.BabyName, name string) NameTimeSeries {
	return TimeSeries(dataset.BabyView(babies), BabySeriesSpec(name))
}

// DogSeriesSpec reads the dog view: per-year row counts.
func DogSeriesSpec(name string) SeriesSpec {
	return SeriesSpec{NameKey: dataset.KeyName, Name: name, YearKey: dataset.KeyYear}
}

// BabySeriesSpec reads the baby view: per-year count sums split by sex.
func BabySeriesSpec(name string) SeriesSpec {
	return SeriesSpec{
		NameKey:     dataset.KeyName,
		Name:        name,
		YearKey:     dataset.KeyYear,
		CountKey:    dataset.KeyCount,
		CategoryKey: dataset.KeySex,
	}
}

// seriesGroups returns year groups (with category sub-groups when asked)
// sorted by year. Parent values total every category of the year.
func seriesGroups(view engine.RecordView, spec SeriesSpec) []engine.Group {
	name := dataset.NormalizeName(spec.Name)
	if name == "" {
		return nil
	}
	matched := engine.ApplyFilters(view, engine.Where(spec.NameKey, name))

	groupBy := []string{spec.YearKey}
	if spec.CategoryKey != "" {
		groupBy = append(groupBy, spec.CategoryKey)
	}

	measure, agg := aggregation(spec.CountKey)
	return engine.GroupAndAggregate(matched, groupBy, measure, agg, engine.SortYearAsc)
}
