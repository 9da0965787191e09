// Package export renders tunnel records into the supported output artifacts:
// indented JSON, CSV, a self-contained HTML report and a console table.
package export

import (
	"encoding/json"
	"io"

	"cpolar-export/internal/tunnel"
)

// WriteJSON serializes records with two-space indentation. HTML escaping is
// off so non-ASCII tunnel names pass through verbatim; absent optional fields
// render as explicit nulls.
func WriteJSON(w io.Writer, records []tunnel.Record) error {
	// the export is always a list, even when nothing matched; a nil slice
	// would serialize as null
	if records == nil {
		records = []tunnel.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ReadJSON is the inverse of WriteJSON.
func ReadJSON(r io.Reader) ([]tunnel.Record, error) {
	var records []tunnel.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
