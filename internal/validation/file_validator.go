// Package validation gates uploaded report files before they reach the
// parsing pipeline.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaxReportSize caps how large an uploaded report may be. Vendor HTML
// exports run tens of kilobytes; anything past this is not a report.
const MaxReportSize = 20 << 20

var allowedExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// FileValidator checks uploaded report files for basic sanity: a known
// extension, a non-empty body, and a size within MaxReportSize.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a validator. A nil logger falls back to
// slog.Default().
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateReportFile rejects files the parser should never see. The
// returned error names the failing check.
func (v *FileValidator) ValidateReportFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file extension %q for %s", ext, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a report file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	if info.Size() > MaxReportSize {
		return fmt.Errorf("%s exceeds maximum report size (%d bytes)", path, info.Size())
	}

	v.logger.Debug("report file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}
