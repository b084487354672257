package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/calebsarmiento/Babies-Dogs-Naming/config"
	"github.com/calebsarmiento/Babies-Dogs-Naming/engine"
	"github.com/calebsarmiento/Babies-Dogs-Naming/schema"
	"github.com/calebsarmiento/Babies-Dogs-Naming/story"
)

// ============================================================================
// STRUCTURED OUTPUT — json, pretty, yaml
// ============================================================================

func writeValue(w io.Writer, v interface{}, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		return enc.Close()
	}

	var out []byte
	var err error
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeSection writes a section's table as CSV, its narrative and table as
// text, or the whole section as structured data.
func writeSection(w io.Writer, sec *story.Section, format string) error {
	switch format {
	case "csv":
		if sec.Table == nil {
			return writeListCSV(w, "Summary", []string{sec.Text})
		}
		return writeTableCSV(w, sec.Table)
	case "text":
		if sec.Text != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", sec.Text); err != nil {
				return err
			}
		}
		return writeTableText(w, sec.Table)
	default:
		return writeValue(w, sec, format)
	}
}

// ============================================================================
// CSV OUTPUT — tables ready for Sheets
// ============================================================================

func writeTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		headers[i] = col.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}

	cw.Flush()
	return cw.Error()
}

func writeListCSV(w io.Writer, header string, values []string) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{header})
	for _, v := range values {
		cw.Write([]string{v})
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// TEXT OUTPUT — aligned tables for the terminal
// ============================================================================

func writeTableText(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if table.Title != "" {
		fmt.Fprintln(tw, table.Title)
	}
	if len(table.Rows) == 0 {
		fmt.Fprintln(tw, "No data.")
		return tw.Flush()
	}

	labels := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		labels[i] = col.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell
			if i < len(table.Columns) && table.Columns[i].Type == "number" && table.Columns[i].Key != "rank" {
				cells[i] = commaCell(cell)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if table.Summary != nil {
		cells := make([]string, len(table.Columns))
		cells[0] = table.Summary.Label
		for i, col := range table.Columns {
			if v, ok := table.Summary.Values[col.Key]; ok && i > 0 {
				cells[i] = commaCell(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func commaCell(cell string) string {
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return humanize.Comma(n)
	}
	return cell
}

func writeSchemaText(w io.Writer, datasets []schema.Dataset, format string) error {
	if format == "csv" {
		cw := csv.NewWriter(w)
		cw.Write([]string{"File", "Column", "Key", "Type", "Kept"})
		for _, ds := range datasets {
			for _, col := range ds.Columns {
				cw.Write([]string{ds.File, col.Name, col.Key, col.Type, strconv.FormatBool(col.Keep)})
			}
		}
		cw.Flush()
		return cw.Error()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, ds := range datasets {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%s)\n", ds.Name, ds.File)
		fmt.Fprintln(tw, "Column\tType\tKept")
		for _, col := range ds.Columns {
			kept := "no"
			if col.Keep {
				kept = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", col.Name, col.Type, kept)
		}
	}
	return tw.Flush()
}

func writeConfigText(w io.Writer, resolved config.ResolvedConfig, format string) error {
	if format == "csv" {
		cw := csv.NewWriter(w)
		cw.Write([]string{"Key", "Value", "Source", "From"})
		for _, e := range resolved.Entries() {
			cw.Write([]string{e.Key, e.Value, string(e.Source), e.From})
		}
		cw.Flush()
		return cw.Error()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "config file\t%s\n", resolved.ConfigPath)
	for _, e := range resolved.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Key, e.Value, e.Source, e.From)
	}
	return tw.Flush()
}

// ============================================================================
// MARKDOWN — the story page
// ============================================================================

func writeMarkdown(w io.Writer, page *story.Page, charts map[string]string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comparing the Naming of Babies to Dogs\n\n")
	fmt.Fprintf(&b, "Year %d, top %d names.\n", page.Year, page.Count)

	for _, sec := range page.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Title)
		if file, ok := charts[sec.Key]; ok {
			fmt.Fprintf(&b, "![%s](%s)\n\n", sec.Title, file)
		}
		if sec.Text != "" {
			fmt.Fprintf(&b, "%s\n", sec.Text)
		}
		if sec.Table != nil && len(sec.Table.Rows) > 0 {
			b.WriteString("\n")
			writeTableMarkdown(&b, sec.Table)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTableMarkdown(b *strings.Builder, table *engine.TableData) {
	labels := make([]string, len(table.Columns))
	rule := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		labels[i] = col.Label
		rule[i] = "---"
		if col.Align == "right" {
			rule[i] = "---:"
		}
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(labels, " | "))
	fmt.Fprintf(b, "| %s |\n", strings.Join(rule, " | "))
	for _, row := range table.Rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}
}
