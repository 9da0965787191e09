package export

import (
	"fmt"
	"os"
	"time"

	"cpolar-export/internal/tunnel"
)

func saveArtifact(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes the JSON export to path.
func SaveJSON(path string, records []tunnel.Record) error {
	return saveArtifact(path, func(f *os.File) error {
		return WriteJSON(f, records)
	})
}

// SaveCSV writes the CSV export to path.
func SaveCSV(path string, records []tunnel.Record) error {
	return saveArtifact(path, func(f *os.File) error {
		return WriteCSV(f, records)
	})
}

// SaveReport writes the HTML report to path.
func SaveReport(path string, records []tunnel.Record, generatedAt time.Time) error {
	return saveArtifact(path, func(f *os.File) error {
		return WriteReport(f, records, generatedAt)
	})
}
