package reportparse

import (
	"errors"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrEmptyDocument is returned when a caller passes an empty (or
// whitespace-only) string where an HTML document is required. This is
// the only input condition extractors treat as caller misuse; every
// malformed-but-parseable document degrades to empty results instead.
var ErrEmptyDocument = errors.New("reportparse: empty document")

// newDocument parses raw HTML into a queryable document. The extractor
// logic only uses the small query surface below, so the selector engine
// stays swappable.
func newDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// visibleText returns the document's rendered text with script and
// style bodies removed, whitespace-collapsed. Detection regexes run
// over this, not over raw markup, so tag soup cannot fake a match.
func visibleText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style").Remove()
	return CleanCellText(clone.Text())
}

// visibleLines is visibleText's line-preserving counterpart: script and
// style bodies removed, each line cleaned on its own, newlines kept.
// Label regexes bounded at end of line run over this, so a label's
// capture cannot swallow the lines that follow it.
func visibleLines(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style").Remove()
	lines := strings.Split(clone.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = CleanCellText(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// cellText is the cleaned text content of one selection.
func cellText(sel *goquery.Selection) string {
	return CleanCellText(sel.Text())
}

// labeledCellValue finds a th/td whose text carries the given label and
// returns the associated value: the next sibling cell's text when one
// exists, else whatever follows the label inside the same cell. Empty
// string means the label was not found.
func labeledCellValue(root *goquery.Selection, label string) string {
	value := ""
	root.Find("th, td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := cellText(cell)
		if !strings.Contains(strings.ToLower(text), strings.ToLower(label)) {
			return true
		}
		if next := cell.Next(); next.Length() > 0 {
			if v := cellText(next); v != "" {
				value = v
				return false
			}
		}
		if _, after, found := strings.Cut(text, ":"); found {
			value = strings.TrimSpace(after)
			return false
		}
		return true
	})
	return value
}

// imageBlob flattens every attribute an <img> can carry an identity in
// (src, alt, title, class) plus the src basename into one lowercase
// string for substring probing.
func imageBlob(img *goquery.Selection) string {
	var parts []string
	for _, attr := range []string{"src", "alt", "title", "class"} {
		if v, ok := img.Attr(attr); ok {
			parts = append(parts, v)
		}
	}
	if src, ok := img.Attr("src"); ok {
		parts = append(parts, path.Base(src))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// imageBasename returns the lowercase filename of an <img> src, query
// string stripped.
func imageBasename(img *goquery.Selection) string {
	src, ok := img.Attr("src")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return strings.ToLower(path.Base(src))
}

// hasLineThrough reports whether the selection or any descendant is
// styled with a strikethrough.
func hasLineThrough(sel *goquery.Selection) bool {
	found := false
	probe := func(_ int, s *goquery.Selection) bool {
		if style, ok := s.Attr("style"); ok && strings.Contains(strings.ToLower(style), "line-through") {
			found = true
			return false
		}
		return true
	}
	if !probe(0, sel) {
		return true
	}
	sel.Find("*").EachWithBreak(probe)
	return found
}

// hasClassContaining reports whether the selection or any descendant
// has a class attribute containing any of the given fragments.
func hasClassContaining(sel *goquery.Selection, fragments ...string) bool {
	match := func(s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok {
			return false
		}
		class = strings.ToLower(class)
		for _, f := range fragments {
			if strings.Contains(class, f) {
				return true
			}
		}
		return false
	}
	if match(sel) {
		return true
	}
	found := false
	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if match(s) {
			found = true
			return false
		}
		return true
	})
	return found
}
