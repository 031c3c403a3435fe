package reportparse

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"swimparse/pkg/contracts/domain"
)

// headerTable is a data table located by header-alias matching: the
// resolved field-to-column map plus the cleaned cell text of every data
// row below the header.
type headerTable struct {
	headers []string
	fields  map[string]int
	rows    [][]string
}

// col returns row's value for a mapped field, empty when the field is
// unmapped or the row is short.
func (t *headerTable) col(row []string, field string) string {
	idx, ok := t.fields[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// locateTable scans the document's tables for the first row with at
// least two th cells (or, when no table has one, at least two td
// cells), then maps each target field to the first column whose
// normalized header text contains any of the field's aliases. Matching
// is case- and punctuation-insensitive and alias-order-independent.
func locateTable(doc *goquery.Document, aliases map[string][]string) (*headerTable, bool) {
	table, headerRow := findHeaderRow(doc, "th")
	if table == nil {
		table, headerRow = findHeaderRow(doc, "td")
	}
	if table == nil {
		return nil, false
	}

	var headers []string
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, cellText(cell))
	})

	fields := map[string]int{}
	for field, names := range aliases {
		for i, header := range headers {
			key := normalizeKey(header)
			matched := false
			for _, alias := range names {
				if strings.Contains(key, normalizeKey(alias)) {
					matched = true
					break
				}
			}
			if matched {
				fields[field] = i
				break
			}
		}
	}

	// Data rows are every table row after the header, crossing
	// thead/tbody boundaries the sibling axis would miss.
	var rows [][]string
	pastHeader := false
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !pastHeader {
			if tr.Nodes[0] == headerRow.Nodes[0] {
				pastHeader = true
			}
			return
		}
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return &headerTable{headers: headers, fields: fields, rows: rows}, true
}

// findHeaderRow returns the first table/row pair where the row carries
// at least two cells of the given kind.
func findHeaderRow(doc *goquery.Document, kind string) (*goquery.Selection, *goquery.Selection) {
	var table, header *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		tbl.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			if tr.Find(kind).Length() >= 2 {
				table, header = tbl, tr
				return false
			}
			return true
		})
		return table == nil
	})
	return table, header
}

var dropListAliases = map[string][]string{
	"dropDate":   {"dropdate", "date"},
	"swimmer":    {"student", "swimmer", "name"},
	"class":      {"class"},
	"instructor": {"instructor"},
	"level":      {"level"},
	"reason":     {"reason"},
}

// ExtractDropList parses a dropped-enrollments table. Rows without a
// swimmer name are decoration and are skipped.
func (p *Parser) ExtractDropList(html string) ([]domain.DropListRow, []string, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, nil, err
	}
	table, ok := locateTable(doc, dropListAliases)
	if !ok {
		return nil, []string{domain.WarnTableNotFound}, nil
	}

	var rows []domain.DropListRow
	for _, cells := range table.rows {
		name := CleanCellText(table.col(cells, "swimmer"))
		if name == "" {
			continue
		}
		row := domain.DropListRow{
			SwimmerName: name,
			ClassName:   table.col(cells, "class"),
			Instructor:  table.col(cells, "instructor"),
			Level:       table.col(cells, "level"),
			Reason:      table.col(cells, "reason"),
		}
		if iso, ok := ParseUSDate(table.col(cells, "dropDate")); ok {
			row.DropDate = iso
		}
		rows = append(rows, row)
	}
	return rows, p.rowWarnings("drop_list", len(rows)), nil
}

var enrollmentAliases = map[string][]string{
	"enrollDate": {"enrolldate", "startdate", "date"},
	"swimmer":    {"student", "swimmer", "name"},
	"class":      {"class"},
	"program":    {"program"},
	"instructor": {"instructor"},
	"location":   {"location"},
}

// ExtractEnrollments parses a new-enrollments table.
func (p *Parser) ExtractEnrollments(html string) ([]domain.EnrollmentRow, []string, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, nil, err
	}
	table, ok := locateTable(doc, enrollmentAliases)
	if !ok {
		return nil, []string{domain.WarnTableNotFound}, nil
	}

	var rows []domain.EnrollmentRow
	for _, cells := range table.rows {
		name := CleanCellText(table.col(cells, "swimmer"))
		if name == "" {
			continue
		}
		row := domain.EnrollmentRow{
			SwimmerName: name,
			ClassName:   table.col(cells, "class"),
			Program:     table.col(cells, "program"),
			Instructor:  table.col(cells, "instructor"),
			Location:    table.col(cells, "location"),
		}
		if iso, ok := ParseUSDate(table.col(cells, "enrollDate")); ok {
			row.EnrollDate = iso
		}
		rows = append(rows, row)
	}
	return rows, p.rowWarnings("enrollments", len(rows)), nil
}

var acneAliases = map[string][]string{
	"createdDate": {"created", "date"},
	"guardian":    {"guardian", "account", "name"},
	"email":       {"email"},
	"phone":       {"phone"},
	"location":    {"location"},
}

// ExtractAcneLeads parses an accounts-created-not-enrolled lead table.
func (p *Parser) ExtractAcneLeads(html string) ([]domain.AcneLeadRow, []string, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, nil, err
	}
	table, ok := locateTable(doc, acneAliases)
	if !ok {
		return nil, []string{domain.WarnTableNotFound}, nil
	}

	var rows []domain.AcneLeadRow
	for _, cells := range table.rows {
		name := CleanCellText(table.col(cells, "guardian"))
		if name == "" {
			continue
		}
		row := domain.AcneLeadRow{
			GuardianName: name,
			Email:        table.col(cells, "email"),
			Phone:        table.col(cells, "phone"),
			Location:     table.col(cells, "location"),
		}
		if iso, ok := ParseUSDate(table.col(cells, "createdDate")); ok {
			row.CreatedDate = iso
		}
		rows = append(rows, row)
	}
	return rows, p.rowWarnings("acne_leads", len(rows)), nil
}

var agedAccountsAliases = map[string][]string{
	"guardian":        {"guardian", "account", "family", "name"},
	"current":         {"current"},
	"days1to30":       {"130"},
	"days31to60":      {"3160"},
	"days61to90":      {"6190"},
	"days91plus":      {"91"},
	"unappliedCredit": {"unapplied"},
	"total":           {"total"},
}

// agedBuckets pairs each aging-bucket field with its display label, in
// report column order.
var agedBuckets = []struct {
	field string
	label string
}{
	{"current", "Current"},
	{"days1to30", "1-30"},
	{"days31to60", "31-60"},
	{"days61to90", "61-90"},
	{"days91plus", "91+"},
	{"unappliedCredit", "Unapplied Credit"},
}

// ExtractAgedAccounts parses a receivables aging table. The usual shape
// is one row per account; a guardian-level export (per-guardian rows
// with per-bucket amount columns) is instead summed per bucket across
// all non-Totals rows, emitting one row per bucket with the shared
// grand total.
func (p *Parser) ExtractAgedAccounts(html string) ([]domain.AgedAccountsRow, []string, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, nil, err
	}
	table, ok := locateTable(doc, agedAccountsAliases)
	if !ok {
		return nil, []string{domain.WarnTableNotFound}, nil
	}

	if _, hasGuardian := table.fields["guardian"]; hasGuardian && agedBucketCount(table) >= 2 {
		rows := agedAccountsGuardianLevel(table)
		return rows, p.rowWarnings("aged_accounts", len(rows)), nil
	}

	var rows []domain.AgedAccountsRow
	for _, cells := range table.rows {
		name := CleanCellText(table.col(cells, "guardian"))
		if name == "" || strings.EqualFold(name, "totals") {
			continue
		}
		rows = append(rows, domain.AgedAccountsRow{
			GuardianName:    name,
			Current:         ParseMoney(table.col(cells, "current")),
			Days1To30:       ParseMoney(table.col(cells, "days1to30")),
			Days31To60:      ParseMoney(table.col(cells, "days31to60")),
			Days61To90:      ParseMoney(table.col(cells, "days61to90")),
			Days91Plus:      ParseMoney(table.col(cells, "days91plus")),
			UnappliedCredit: ParseMoney(table.col(cells, "unappliedCredit")),
			Total:           ParseMoney(table.col(cells, "total")),
		})
	}
	return rows, p.rowWarnings("aged_accounts", len(rows)), nil
}

func agedBucketCount(table *headerTable) int {
	n := 0
	for _, b := range agedBuckets {
		if _, ok := table.fields[b.field]; ok {
			n++
		}
	}
	return n
}

// agedAccountsGuardianLevel sums each bucket column across non-Totals
// guardian rows and emits one row per resolved bucket.
func agedAccountsGuardianLevel(table *headerTable) []domain.AgedAccountsRow {
	sums := map[string]float64{}
	counted := map[string]bool{}
	var total float64
	totalSeen := false

	for _, cells := range table.rows {
		name := CleanCellText(table.col(cells, "guardian"))
		if name == "" || strings.EqualFold(name, "totals") {
			continue
		}
		for _, b := range agedBuckets {
			if _, ok := table.fields[b.field]; !ok {
				continue
			}
			if v := ParseMoney(table.col(cells, b.field)); v != nil {
				sums[b.field] += *v
				counted[b.field] = true
			}
		}
		if v := ParseMoney(table.col(cells, "total")); v != nil {
			total += *v
			totalSeen = true
		}
	}

	var rows []domain.AgedAccountsRow
	for _, b := range agedBuckets {
		if _, ok := table.fields[b.field]; !ok {
			continue
		}
		amount := sums[b.field]
		row := domain.AgedAccountsRow{Bucket: b.label}
		if counted[b.field] {
			row.Amount = &amount
		}
		if totalSeen {
			t := total
			row.Total = &t
		}
		rows = append(rows, row)
	}
	return rows
}

// rowWarnings emits the no-rows warning for an extractor that located a
// table but produced nothing from it.
func (p *Parser) rowWarnings(kind string, n int) []string {
	if n > 0 {
		return nil
	}
	p.logger.Warn("table located but no rows parsed", slog.String("report", kind))
	return []string{domain.WarnNoRowsParsed}
}
