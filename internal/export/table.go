package export

import (
	"io"

	"cpolar-export/internal/tunnel"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders records as a rounded console table.
func WriteTable(w io.Writer, records []tunnel.Record) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Name", "Proto", "URL", "Local", "Region"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Name,
			orEmpty(rec.Proto),
			orEmpty(rec.Url),
			orEmpty(rec.Local),
			orEmpty(rec.Region),
		})
	}
	t.Render()
}
