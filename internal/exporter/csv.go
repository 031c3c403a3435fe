package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"swimparse/internal/ingest"
)

// CSVWriter writes result sheets as CSV files under one directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at dir. A nil logger falls
// back to slog.Default().
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteResult writes one CSV per populated sheet, named
// <base>_<sheet>.csv. Returns the paths written.
func (w *CSVWriter) WriteResult(base string, res *ingest.Result) ([]string, error) {
	var written []string
	for _, sheet := range ResultSheets(res) {
		path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.csv", base, sheet.Name))
		if err := w.writeSheet(path, sheet); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (w *CSVWriter) writeSheet(path string, sheet Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM so Excel opens the file with the right encoding.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(sheet.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range sheet.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	w.logger.Info("csv written",
		slog.String("path", path),
		slog.Int("records", len(sheet.Records)))
	return nil
}
