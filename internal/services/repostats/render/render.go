// Package render writes rankings to the terminal
package render

import (
	"fmt"
	"io"
	"strings"

	"ghstats/internal/services/repostats/domain"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects the output layout
type Format string

const (
	// FormatLines prints "<repo>: <count> events" per row
	FormatLines Format = "lines"

	// FormatTable prints a bordered table with a total footer
	FormatTable Format = "table"
)

// Formats lists the accepted values, default first
var Formats = []string{string(FormatLines), string(FormatTable)}

// ParseFormat accepts the names in Formats, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLines, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats, ", "))
	}
}

// Write renders rows in the given format
func Write(w io.Writer, f Format, rows []domain.RankedRepo) error {
	if f == FormatTable {
		return Table(w, rows)
	}
	return Lines(w, rows)
}

// Lines writes one "<repo>: <count> events" line per row and nothing for no rows
func Lines(w io.Writer, rows []domain.RankedRepo) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s: %d events\n", r.Key, r.Count); err != nil {
			return err
		}
	}
	return nil
}

// Table writes rows as a go-pretty table
func Table(w io.Writer, rows []domain.RankedRepo) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Repository", "Events"})

	total := 0
	for i, r := range rows {
		tbl.AppendRow(table.Row{i + 1, r.Key, humanize.Comma(int64(r.Count))})
		total += r.Count
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d repositories", len(rows)), humanize.Comma(int64(total))})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	tbl.Render()
	return nil
}
