package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindReportsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "roster_week1.html", "<html>a</html>")
	writeFile(t, dir, "drops.HTM", "<html>b</html>")
	writeFile(t, dir, "notes.txt", "not a report")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "archive"), 0o755))
	writeFile(t, filepath.Join(dir, "archive"), "old.html", "<html>old</html>")

	docs, err := NewDiscovery(dir).FindReports(".")
	require.NoError(t, err)
	require.Len(t, docs, 2, "non-HTML files and subdirectories are skipped")

	assert.Equal(t, "drops.HTM", docs[0].Name)
	assert.Equal(t, "drops", docs[0].Key)
	assert.Equal(t, "roster_week1", docs[1].Key)
	assert.Positive(t, docs[0].Size)
}

func TestFindReportsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "roster.html", "<html>a</html>")

	docs, err := NewDiscovery("/elsewhere").FindReports(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Path)
	assert.Equal(t, "roster", docs[0].Key)
}

func TestFindReportsMissingInput(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindReports("nope")
	assert.Error(t, err)
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", "<html>alpha</html>")
	writeFile(t, dir, "b.html", "<html>beta</html>")

	docs, err := NewDiscovery(dir).FindReports(".")
	require.NoError(t, err)

	contents, err := LoadDocuments(docs)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a": "<html>alpha</html>",
		"b": "<html>beta</html>",
	}, contents)
}

func TestIsReportFile(t *testing.T) {
	assert.True(t, IsReportFile("roster.html"))
	assert.True(t, IsReportFile("roster.HTM"))
	assert.False(t, IsReportFile("roster.pdf"))
	assert.False(t, IsReportFile("roster"))
}

func TestArchiverArchive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "roster.html", "<html>a</html>")

	docs, err := NewDiscovery(dir).FindReports(".")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	archiveDir := filepath.Join(dir, "archive")
	require.NoError(t, NewArchiver(archiveDir, nil).Archive(docs[0]))

	_, err = os.Stat(docs[0].Path)
	assert.True(t, os.IsNotExist(err), "source must be gone after archiving")
	data, err := os.ReadFile(filepath.Join(archiveDir, "roster.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>a</html>", string(data))

	// A second discovery pass must not pick the archived file back up.
	again, err := NewDiscovery(dir).FindReports(".")
	require.NoError(t, err)
	assert.Empty(t, again)
}
