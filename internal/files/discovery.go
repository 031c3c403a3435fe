package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Document describes one discovered report file. Key is the base name
// without extension; batch results and export files are keyed on it.
type Document struct {
	Path    string
	Name    string
	Key     string
	Size    int64
	ModTime time.Time
}

// Discovery finds uploaded report documents.
type Discovery struct {
	baseDir string
}

// NewDiscovery creates a Discovery rooted at baseDir. Relative inputs
// are resolved against it; absolute inputs are used as given.
func NewDiscovery(baseDir string) *Discovery {
	return &Discovery{baseDir: baseDir}
}

// FindReports returns the HTML report documents at in, which may be a
// single file or a directory. Directory scans are non-recursive and
// skip everything without an .html or .htm extension. Results are
// sorted by name for stable batch ordering.
func (d *Discovery) FindReports(in string) ([]Document, error) {
	path := in
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}
	if !info.IsDir() {
		return []Document{describe(path, info)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !IsReportFile(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, describe(filepath.Join(path, entry.Name()), fi))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// LoadDocuments reads every document's content, keyed by Document.Key.
func LoadDocuments(docs []Document) (map[string]string, error) {
	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", doc.Path, err)
		}
		out[doc.Key] = string(data)
	}
	return out, nil
}

// IsReportFile reports whether name has an HTML report extension.
func IsReportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func describe(path string, info os.FileInfo) Document {
	name := info.Name()
	return Document{
		Path:    path,
		Name:    name,
		Key:     strings.TrimSuffix(name, filepath.Ext(name)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
