package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from TableSpec + Groups
// ============================================================================
// Flat groups become (rank, label, value) rows. Groups with SubGroups are
// flattened to (label, sub-label, value) rows, one per sub-group.
// ============================================================================

// TableSpec names the columns of a built table.
type TableSpec struct {
	Title      string `json:"title"`
	GroupLabel string `json:"groupLabel"`
	SubLabel   string `json:"subLabel,omitempty"`
	ValueLabel string `json:"valueLabel"`
}

// BuildTable produces a TableData from aggregated groups.
func BuildTable(spec TableSpec, groups []Group) *TableData {
	groupLabel := spec.GroupLabel
	if groupLabel == "" {
		groupLabel = "Group"
	}
	valueLabel := spec.ValueLabel
	if valueLabel == "" {
		valueLabel = "Value"
	}

	if hasSubGroups(groups) {
		return buildNestedTable(spec.Title, groupLabel, spec.SubLabel, valueLabel, groups)
	}
	return buildRankedTable(spec.Title, groupLabel, valueLabel, groups)
}

// ============================================================================
// RANKED TABLE — one row per group
// ============================================================================

func buildRankedTable(title, groupLabel, valueLabel string, groups []Group) *TableData {
	columns := []Column{
		{Key: "rank", Label: "#", Type: "number", Align: "right"},
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	var total float64
	for i, g := range groups {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			g.Label,
			FormatNumber(g.Value),
		})
		total += g.Value
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d rows)", len(groups)),
			Values: map[string]string{
				"value": FormatNumber(total),
			},
		},
	}
}

// ============================================================================
// NESTED TABLE — one row per sub-group
// ============================================================================

func buildNestedTable(title, groupLabel, subLabel, valueLabel string, groups []Group) *TableData {
	if subLabel == "" {
		subLabel = "Category"
	}

	columns := []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "sub", Label: subLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
	}

	var rows [][]string
	var total float64
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			rows = append(rows, []string{g.Label, sg.Label, FormatNumber(sg.Value)})
			total += sg.Value
		}
	}
	if rows == nil {
		rows = [][]string{}
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d rows)", len(rows)),
			Values: map[string]string{
				"value": FormatNumber(total),
			},
		},
	}
}
