package story

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/calebsarmiento/Babies-Dogs-Naming/dataset"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
)

// ============================================================================
// NARRATIVE — placeholder templates filled from derived tables
// ============================================================================

const (
	topBabyTemplate = "In {year}, {top_name} was the most popular baby name in the US with {top_count} babies. " +
		"The top {shown} names account for {shown_total} of {total} births."

	topDogTemplate = "In {year}, {top_name} led Allegheny County's dog licenses with {top_count} dogs. " +
		"The top {shown} names account for {shown_total} of {total} licenses."

	topEmptyTemplate = "No {unit} recorded for {year}."

	trendTemplate = "{name} {change} from {first_year} to {last_year}, going from {first} to {last} {unit}. " +
		"It peaked in {peak_year} with {peak} {unit}."

	trendSingleTemplate = "{name} only appears in {first_year}, with {first} {unit}."
	trendEmptyTemplate  = "{name} does not appear in the {dataset} data."

	twinsTemplate = "{matches} baby names from {year} are also dog names. " +
		"{top_name} leads the twins with {top_count} dogs {scope}."

	twinsEmptyTemplate = "No baby names from {year} appear among the dog names."

	lookupTemplate      = "{name} is a dog name twin with {count} dogs {scope}."
	lookupEmptyTemplate = "{name} is not a dog name twin for {year}."
)

func topText(src Source, year int, table, shown NameCountTable) string {
	values := map[string]string{
		"year": strconv.Itoa(year),
		"unit": unitFor(src),
	}
	if len(shown) == 0 {
		return engine.ResolvePlaceholders(topEmptyTemplate, values)
	}

	values["top_name"] = shown[0].Name
	values["top_count"] = comma(shown[0].Count)
	values["shown"] = strconv.Itoa(len(shown))
	values["shown_total"] = comma(shown.Total())
	values["total"] = comma(table.Total())

	template := topDogTemplate
	if src == Babies {
		template = topBabyTemplate
	}
	return engine.ResolvePlaceholders(template, values)
}

func trendText(src Source, name string, growth *engine.TextData) string {
	values := map[string]string{
		"name":    name,
		"dataset": string(src),
		"unit":    unitFor(src),
	}
	if growth == nil || growth.Growth == nil {
		return engine.ResolvePlaceholders(trendEmptyTemplate, values)
	}

	g := growth.Growth
	values["first_year"] = g.EarliestPeriod
	values["first"] = comma(int(g.EarliestValue))

	if g.Direction == "insufficient data" {
		return engine.ResolvePlaceholders(trendSingleTemplate, values)
	}

	values["last_year"] = g.LatestPeriod
	values["last"] = comma(int(g.LatestValue))
	values["peak_year"] = g.PeakPeriod
	values["peak"] = comma(int(g.PeakValue))
	values["change"] = changePhrase(g)
	return engine.ResolvePlaceholders(trendTemplate, values)
}

func twinsText(year int, twins NameCountTable, yearOnly bool) string {
	values := map[string]string{"year": strconv.Itoa(year)}
	if len(twins) == 0 {
		return engine.ResolvePlaceholders(twinsEmptyTemplate, values)
	}

	values["matches"] = comma(len(twins))
	values["top_name"] = twins[0].Name
	values["top_count"] = comma(twins[0].Count)
	values["scope"] = twinScope(year, yearOnly)
	return engine.ResolvePlaceholders(twinsTemplate, values)
}

func lookupText(name string, year int, lookup NameCountTable, yearOnly bool) string {
	values := map[string]string{
		"name":  dataset.NormalizeName(name),
		"year":  strconv.Itoa(year),
		"scope": twinScope(year, yearOnly),
	}
	if len(lookup) == 0 {
		return engine.ResolvePlaceholders(lookupEmptyTemplate, values)
	}
	values["count"] = comma(lookup[0].Count)
	return engine.ResolvePlaceholders(lookupTemplate, values)
}

func twinScope(year int, yearOnly bool) string {
	if yearOnly {
		return "in " + strconv.Itoa(year)
	}
	return "over all time"
}

func changePhrase(g *engine.GrowthData) string {
	pct := math.Abs(g.ChangePercent)
	switch g.Direction {
	case "increased":
		if g.EarliestValue == 0 {
			return "rose from nothing"
		}
		return fmt.Sprintf("grew by %.1f%%", pct)
	case "decreased":
		return fmt.Sprintf("fell by %.1f%%", pct)
	default:
		return "held steady"
	}
}

func unitFor(src Source) string {
	if src == Babies {
		return "babies"
	}
	return "dogs"
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}
