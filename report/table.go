// Package report renders inventory report tables. Model packages produce
// Table values; layout is delegated here so callers never deal with
// formatting.
package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table is an ordered set of report rows with declared column headers.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Append adds one row.
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Render writes the table to w.
func Render(w io.Writer, t Table) {
	if t.Title != "" {
		io.WriteString(w, t.Title+"\n")
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(t.Rows)
	tw.Render()
}
