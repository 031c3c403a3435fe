package reportparse

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"swimparse/pkg/contracts/domain"
)

// retentionRowRe matches a flattened retention row: instructor name,
// booked count, booked percent, retained count, retention percent.
var retentionRowRe = regexp.MustCompile(`^(.*?)\s+(\d+)\s+\d+(?:\.\d+)?%\s+(\d+)\s+([\d.]+)%`)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// ExtractInstructorRetention recovers per-instructor retention rows.
// Three tiers run in order and the first one producing any rows wins:
// structural h2-plus-table traversal, a row regex over flattened table
// text, and the same regex over raw source lines for markup the DOM
// parser does not expose as rows.
func (p *Parser) ExtractInstructorRetention(html string) ([]domain.InstructorRetentionRow, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	tiers := []struct {
		name    string
		extract func() []domain.InstructorRetentionRow
	}{
		{"structural", func() []domain.InstructorRetentionRow { return retentionStructural(doc) }},
		{"row_regex", func() []domain.InstructorRetentionRow { return retentionRowRegex(doc) }},
		{"raw_lines", func() []domain.InstructorRetentionRow { return retentionRawLines(html) }},
	}
	for _, tier := range tiers {
		if rows := tier.extract(); len(rows) > 0 {
			p.logger.Debug("retention extracted",
				slog.String("tier", tier.name),
				slog.Int("rows", len(rows)))
			return rows, nil
		}
	}
	return nil, nil
}

// retentionStructural walks h2 instructor headers to their tables. The
// data row is the first shaded row, else the table's first row; its
// cells past the first two columns become a numeric-or-null slice with
// booked read from the first seven positions and retained from
// positions nine through fifteen, last non-null winning in each window.
func retentionStructural(doc *goquery.Document) []domain.InstructorRetentionRow {
	var rows []domain.InstructorRetentionRow
	doc.Find("h2").Each(func(_ int, h *goquery.Selection) {
		name := cellText(h)
		if name == "" || strings.EqualFold(name, "totals") {
			return
		}
		table := h.Closest("table")
		if table.Length() == 0 {
			table = h.NextAllFiltered("table").First()
		}
		if table.Length() == 0 {
			return
		}
		row := table.Find("tr.bg-shaded").First()
		if row.Length() == 0 {
			row = table.Find("tr").First()
		}
		if row.Length() == 0 {
			return
		}

		var values []*int64
		row.Find("td, th").Each(func(i int, cell *goquery.Selection) {
			if i < 2 {
				return
			}
			values = append(values, parseNumericCell(cellText(cell)))
		})
		booked := windowValue(values, 0, 7)
		retained := windowValue(values, 9, 16)

		out := domain.InstructorRetentionRow{
			InstructorName:    flipSurnameFirst(name),
			StartingHeadcount: booked,
			EndingHeadcount:   retained,
		}
		if booked != nil && retained != nil && *booked != 0 {
			pct := round2(float64(*retained) / float64(*booked) * 100)
			out.RetentionPercent = &pct
		}
		rows = append(rows, out)
	})
	return rows
}

// windowValue picks the last non-nil value in values[lo:hi], falling
// back to the first non-nil value anywhere past lo.
func windowValue(values []*int64, lo, hi int) *int64 {
	if hi > len(values) {
		hi = len(values)
	}
	for i := hi - 1; i >= lo && i < len(values); i-- {
		if values[i] != nil {
			return values[i]
		}
	}
	for i := lo; i < len(values); i++ {
		if values[i] != nil {
			return values[i]
		}
	}
	return nil
}

// retentionRowRegex flattens each table row's cell text and matches the
// retention row pattern against it.
func retentionRowRegex(doc *goquery.Document) []domain.InstructorRetentionRow {
	var rows []domain.InstructorRetentionRow
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var parts []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			if t := cellText(cell); t != "" {
				parts = append(parts, t)
			}
		})
		if row, ok := matchRetentionLine(strings.Join(parts, " ")); ok {
			rows = append(rows, row)
		}
	})
	return rows
}

// retentionRawLines is the last resort: the row pattern applied to each
// raw source line with tags stripped.
func retentionRawLines(html string) []domain.InstructorRetentionRow {
	var rows []domain.InstructorRetentionRow
	for _, line := range strings.Split(html, "\n") {
		line = CleanCellText(htmlTagRe.ReplaceAllString(line, " "))
		if row, ok := matchRetentionLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func matchRetentionLine(line string) (domain.InstructorRetentionRow, bool) {
	m := retentionRowRe.FindStringSubmatch(line)
	if m == nil {
		return domain.InstructorRetentionRow{}, false
	}
	name := CleanCellText(m[1])
	if name == "" || strings.EqualFold(name, "totals") {
		return domain.InstructorRetentionRow{}, false
	}
	booked, _ := strconv.ParseInt(m[2], 10, 64)
	retained, _ := strconv.ParseInt(m[3], 10, 64)
	pct, err := strconv.ParseFloat(m[4], 64)
	row := domain.InstructorRetentionRow{
		InstructorName:    flipSurnameFirst(name),
		StartingHeadcount: &booked,
		EndingHeadcount:   &retained,
	}
	if err == nil {
		pct = round2(pct)
		row.RetentionPercent = &pct
	}
	return row, true
}
