package export

import (
	"encoding/csv"
	"io"

	"cpolar-export/internal/tunnel"
)

var csvHeader = []string{"name", "proto", "url", "local", "region"}

// utf8Bom makes spreadsheet apps detect the encoding of non-ASCII names.
var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes one header line and one line per record, with absent
// optional fields as empty strings.
func WriteCSV(w io.Writer, records []tunnel.Record) error {
	if _, err := w.Write(utf8Bom); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		err := cw.Write([]string{
			rec.Name,
			orEmpty(rec.Proto),
			orEmpty(rec.Url),
			orEmpty(rec.Local),
			orEmpty(rec.Region),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
