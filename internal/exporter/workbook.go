package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"swimparse/internal/ingest"
)

// WorkbookWriter writes one xlsx workbook per result, with one sheet
// per populated row kind.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer. A nil logger falls back
// to slog.Default().
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write renders the result into an xlsx file at path. An empty result
// still produces a workbook with a single summary sheet so the caller
// can tell "processed, nothing extracted" from "never processed".
func (w *WorkbookWriter) Write(path string, res *ingest.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, res); err != nil {
		return err
	}
	for _, sheet := range ResultSheets(res) {
		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	w.logger.Info("workbook written", slog.String("path", path))
	return nil
}

// writeSummary fills the default sheet with upload provenance.
func (w *WorkbookWriter) writeSummary(f *excelize.File, res *ingest.Result) error {
	const sheet = "Sheet1"
	if err := f.SetSheetName(sheet, "summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"upload_id", res.Manifest.UploadID},
		{"content_hash", res.Manifest.ContentHash},
		{"report_type", string(res.Manifest.ReportType)},
		{"location", res.Manifest.Metadata.DetectedLocationName},
		{"warnings", len(res.Warnings)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow("summary", cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	name := sanitizeSheetName(sheet.Name)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range sheet.Records {
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
