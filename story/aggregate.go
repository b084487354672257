package story

import (
	"strconv"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// AGGREGATOR — name counts for one year
// ============================================================================
// Pipeline: filter year → drop blank names → group by name → count or sum →
// stable value_desc sort. The name dimension must already be normalized
// (dataset.KeyName is).
// ============================================================================

// AggregateSpec names the dimensions and measure an aggregation reads.
// An empty CountKey weighs every row as 1.
type AggregateSpec struct {
	NameKey  string
	YearKey  string
	Year     int
	CountKey string
}

// Aggregate counts names among the rows of spec.Year. A year without rows
// yields an empty table; names absent from the year do not appear at all.
func Aggregate(view engine.RecordView, spec AggregateSpec) NameCountTable {
	inYear := engine.ApplyFilters(view, engine.Where(spec.YearKey, strconv.Itoa(spec.Year)))
	return aggregateNames(inYear, spec)
}

// AggregateAllYears counts names across every year of the view.
func AggregateAllYears(view engine.RecordView, spec AggregateSpec) NameCountTable {
	return aggregateNames(view, spec)
}

// AggregateDogs counts dog licenses per name for a year.
func AggregateDogs(dogs []dataset.DogLicense, year int) NameCountTable {
	return Aggregate(dataset.DogView(dogs), DogSpec(year))
}

// AggregateBabies sums baby counts per name for a year, both sexes together.
func AggregateBabies(babies []dataset.BabyName, year int) NameCountTable {
	return Aggregate(dataset.BabyView(babies), BabySpec(year))
}

// DogSpec is the aggregation of the dog view: one row is one dog.
func DogSpec(year int) AggregateSpec {
	return AggregateSpec{NameKey: dataset.KeyName, YearKey: dataset.KeyYear, Year: year}
}

// BabySpec is the aggregation of the baby view: rows carry a count.
func BabySpec(year int) AggregateSpec {
	return AggregateSpec{NameKey: dataset.KeyName, YearKey: dataset.KeyYear, Year: year, CountKey: dataset.KeyCount}
}

func aggregateNames(view engine.RecordView, spec AggregateSpec) NameCountTable {
	named := engine.FilterFunc(view, func(i int) bool {
		return view.Dimension(i, spec.NameKey) != ""
	})

	measure, agg := aggregation(spec.CountKey)
	groups := engine.GroupAndAggregate(named, []string{spec.NameKey}, measure, agg, engine.SortValueDesc)

	table := make(NameCountTable, 0, len(groups))
	for _, g := range groups {
		table = append(table, NameCount{Name: g.Key, Count: int(g.Value)})
	}
	return table
}

// aggregation picks row counting or summing of countKey.
func aggregation(countKey string) (measure, agg string) {
	if countKey == "" {
		return "", engine.AggCount
	}
	return countKey, engine.AggSum
}

// ============================================================================
// TOP-N SELECTOR
// ============================================================================

// TopN returns the first n rows of an already-sorted table. n larger than the
// table returns all of it; n below 1 is treated as 1.
func TopN(table NameCountTable, n int) NameCountTable {
	if n < 1 {
		n = 1
	}
	if n > len(table) {
		n = len(table)
	}
	out := make(NameCountTable, n)
	copy(out, table[:n])
	return out
}

// ============================================================================
// INTERSECTION FINDER
// ============================================================================

// Intersect keeps the rows of dogCounts whose name also appears in babyNames.
// Order and counts of dogCounts are preserved.
func Intersect(dogCounts NameCountTable, babyNames []string) NameCountTable {
	wanted := make(map[string]bool, len(babyNames))
	for _, name := range dataset.NormalizeNames(babyNames) {
		wanted[name] = true
	}

	out := make(NameCountTable, 0)
	for _, row := range dogCounts {
		if wanted[dataset.NormalizeName(row.Name)] {
			out = append(out, row)
		}
	}
	return out
}

// ============================================================================
// KNOWN NAMES & YEARS
// ============================================================================

// Names returns the distinct non-blank values of a name dimension in
// first-seen order.
func Names(view engine.RecordView, nameKey string) []string {
	names := engine.UniqueValues(view, nameKey)
	if names == nil {
		return []string{}
	}
	return names
}

// YearRange returns the smallest and largest year of a view.
// ok is false when the view holds no parseable year.
func YearRange(view engine.RecordView, yearKey string) (first, last int, ok bool) {
	for _, key := range engine.UniqueValues(view, yearKey) {
		year, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if !ok || year < first {
			first = year
		}
		if !ok || year > last {
			last = year
		}
		ok = true
	}
	return first, last, ok
}
