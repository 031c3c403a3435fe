package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Archiver moves processed uploads into an archive directory so the
// next discovery pass does not re-ingest them.
type Archiver struct {
	dir    string
	logger *slog.Logger
}

// NewArchiver creates an Archiver writing into dir. A nil logger falls
// back to slog.Default().
func NewArchiver(dir string, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{dir: dir, logger: logger}
}

// Archive moves the document into the archive directory, keeping its
// file name. Rename is tried first; a cross-filesystem move falls back
// to copy and delete.
func (a *Archiver) Archive(doc Document) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	dst := filepath.Join(a.dir, doc.Name)

	if err := os.Rename(doc.Path, dst); err != nil {
		if err := copyFile(doc.Path, dst); err != nil {
			return err
		}
		if err := os.Remove(doc.Path); err != nil {
			return fmt.Errorf("failed to remove archived source: %w", err)
		}
	}

	a.logger.Info("document archived",
		slog.String("src", doc.Path),
		slog.String("dst", dst))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return out.Sync()
}
