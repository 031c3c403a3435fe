package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportFile(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	good := filepath.Join(dir, "roster.html")
	require.NoError(t, os.WriteFile(good, []byte("<html></html>"), 0o644))
	assert.NoError(t, v.ValidateReportFile(good))

	upper := filepath.Join(dir, "drops.HTM")
	require.NoError(t, os.WriteFile(upper, []byte("<html></html>"), 0o644))
	assert.NoError(t, v.ValidateReportFile(upper))
}

func TestValidateReportFileRejections(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	pdf := filepath.Join(dir, "roster.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o644))
	assert.ErrorContains(t, v.ValidateReportFile(pdf), "unsupported file extension")

	empty := filepath.Join(dir, "empty.html")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.ErrorContains(t, v.ValidateReportFile(empty), "empty")

	assert.Error(t, v.ValidateReportFile(filepath.Join(dir, "missing.html")))

	subdir := filepath.Join(dir, "nested.html")
	require.NoError(t, os.MkdirAll(subdir, 0o755))
	assert.ErrorContains(t, v.ValidateReportFile(subdir), "directory")
}
