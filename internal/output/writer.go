package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter accumulates report rows and writes them as comma-delimited
// UTF-8 with a leading header row.
type CSVWriter struct {
	header []string
	rows   [][]string
}

// NewCSVWriter creates a writer for the given header columns.
func NewCSVWriter(header []string) *CSVWriter {
	return &CSVWriter{header: header}
}

// Append buffers one row. Rows are kept in append order.
func (w *CSVWriter) Append(row []string) {
	w.rows = append(w.rows, row)
}

// Count returns the number of buffered rows.
func (w *CSVWriter) Count() int {
	return len(w.rows)
}

// Flush writes the header and all buffered rows to path in one pass.
func (w *CSVWriter) Flush(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(w.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(w.rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return file.Close()
}
