package dataset

import (
	"strconv"

	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// Dimension and measure keys exposed by the dataset views.
const (
	KeyName    = "name"     // normalized name
	KeyRawName = "raw_name" // name as written in the source
	KeyYear    = "year"
	KeySex     = "sex"
	KeyCount   = "count"
)

// dogRow and babyRow pair a record with its normalized name, computed once
// when the view is bound.
type dogRow struct {
	DogLicense
	key string
}

type babyRow struct {
	BabyName
	key string
}

var dogAdapter = engine.NewDomainAdapter[dogRow]().
	Dimension(KeyName, func(d dogRow) string { return d.key }).
	Dimension(KeyRawName, func(d dogRow) string { return d.Name }).
	Dimension(KeyYear, func(d dogRow) string { return strconv.Itoa(d.Year) }).
	Measure(KeyCount, func(dogRow) float64 { return 1 })

var babyAdapter = engine.NewDomainAdapter[babyRow]().
	Dimension(KeyName, func(b babyRow) string { return b.key }).
	Dimension(KeyRawName, func(b babyRow) string { return b.Name }).
	Dimension(KeyYear, func(b babyRow) string { return strconv.Itoa(b.Year) }).
	Dimension(KeySex, func(b babyRow) string { return string(b.Sex) }).
	Measure(KeyCount, func(b babyRow) float64 { return float64(b.Count) })

// DogView exposes dog licenses to the engine. Every row weighs 1.
// Names are normalized once here; bind once and reuse the view.
func DogView(dogs []DogLicense) engine.RecordView {
	names := newNameCache()
	rows := make([]dogRow, len(dogs))
	for i, d := range dogs {
		rows[i] = dogRow{DogLicense: d, key: names.normalize(d.Name)}
	}
	return dogAdapter.Bind(rows)
}

// BabyView exposes baby name records to the engine, weighted by Count.
// Names are normalized once here; bind once and reuse the view.
func BabyView(babies []BabyName) engine.RecordView {
	names := newNameCache()
	rows := make([]babyRow, len(babies))
	for i, b := range babies {
		rows[i] = babyRow{BabyName: b, key: names.normalize(b.Name)}
	}
	return babyAdapter.Bind(rows)
}
