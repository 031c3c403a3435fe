package reportparse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"swimparse/pkg/contracts/domain"
)

// Parser is the entry point for every extractor in this package. It
// holds no state besides a logger; one Parser may be shared by any
// number of concurrent callers.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// reportTypePatterns maps content markers to report types. Order
// matters: "Roster" alone would also match roll-sheet and
// roster-history exports, so the specific markers are probed first.
var reportTypePatterns = []struct {
	Type     domain.ReportType
	Patterns []string
}{
	{domain.ReportTypeRollSheet, []string{"roll sheets", "rollsheet", "roll sheet"}},
	{domain.ReportTypeRosterHistory, []string{"roster history"}},
	{domain.ReportTypeRetention, []string{"instructor retention", "retention report"}},
	{domain.ReportTypeAgedAccounts, []string{"aged accounts", "aging summary"}},
	{domain.ReportTypeDropList, []string{"drop list", "drops report", "dropped enrollments"}},
	{domain.ReportTypeEnrollments, []string{"new enrollments", "enrollment report"}},
	{domain.ReportTypeAcneLeads, []string{"accounts created not enrolled", "created not enrolled", "acne report"}},
	{domain.ReportTypeRoster, []string{"roster"}},
}

var (
	locationLabelRe   = regexp.MustCompile(`(?i)Location:\s*([^|\n\r]+)`)
	scriptLocationsRe = regexp.MustCompile(`(?i)(?:locations:\s*\[([^\]]*)\])|(?:filters\.locations\s*=\s*\[([^\]]*)\])`)
	quotedStringRe    = regexp.MustCompile(`["']([^"']+)["']`)
)

// DetectMetadata classifies a document and extracts location and
// date-range signals. Location IDs are not resolved here; see
// ResolveLocations. Missing signals become warning codes, never errors.
func (p *Parser) DetectMetadata(html string) (*domain.ReportMetadata, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	meta := &domain.ReportMetadata{ReportType: detectReportType(html)}

	text := visibleText(doc)
	name, candidates := detectLocation(doc, html, visibleLines(doc))
	meta.DetectedLocationName = name
	meta.LocationCandidates = candidates
	if len(candidates) == 0 {
		meta.Warnings = append(meta.Warnings, domain.WarnLocationNotDetected)
	}

	meta.DateRanges = detectDateRanges(text)
	if len(meta.DateRanges) == 0 {
		meta.Warnings = append(meta.Warnings, domain.WarnDateRangeNotDetected)
	}

	p.logger.Debug("report metadata detected",
		slog.String("report_type", string(meta.ReportType)),
		slog.String("location", meta.DetectedLocationName),
		slog.Int("date_ranges", len(meta.DateRanges)),
		slog.Int("warnings", len(meta.Warnings)))
	return meta, nil
}

// detectReportType probes the ordered pattern table against the raw
// HTML. First hit wins; no hit is "unknown".
func detectReportType(html string) domain.ReportType {
	lower := strings.ToLower(html)
	for _, entry := range reportTypePatterns {
		for _, pat := range entry.Patterns {
			if strings.Contains(lower, pat) {
				return entry.Type
			}
		}
	}
	return domain.ReportTypeUnknown
}

// detectLocation recovers a display label and the full candidate list.
// Three signals, in priority order: a "Location" header cell's adjacent
// cell, a "Location:" label in the visible text, and location arrays
// assigned in embedded report scripts. lineText must preserve line
// breaks; the label capture is bounded at end of line.
func detectLocation(doc *goquery.Document, rawHTML, lineText string) (string, []string) {
	var candidates []string
	seen := map[string]bool{}
	add := func(name string) {
		name = CleanCellText(name)
		if name == "" || seen[normalizeKey(name)] {
			return
		}
		seen[normalizeKey(name)] = true
		candidates = append(candidates, name)
	}

	if v := labeledCellValue(doc.Selection, "location"); v != "" {
		add(v)
	}
	if m := locationLabelRe.FindStringSubmatch(lineText); m != nil {
		add(m[1])
	}
	for _, m := range scriptLocationsRe.FindAllStringSubmatch(rawHTML, -1) {
		body := m[1]
		if body == "" {
			body = m[2]
		}
		for _, q := range quotedStringRe.FindAllStringSubmatch(body, -1) {
			add(q[1])
		}
	}

	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0], candidates
}

// detectDateRanges scans visible text for M/D/Y tokens. Two or more
// tokens form one range from the first pair; a single token is a
// single-point range. Reversed ranges are swapped so start <= end.
func detectDateRanges(text string) []domain.DateRange {
	tokens := usDateRe.FindAllString(text, -1)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) == 1 {
		return []domain.DateRange{{Start: tokens[0], End: tokens[0], Raw: tokens[0]}}
	}
	r := domain.DateRange{Start: tokens[0], End: tokens[1], Raw: tokens[0] + " - " + tokens[1]}
	if s, okS := parseUSDateTime(r.Start); okS {
		if e, okE := parseUSDateTime(r.End); okE && e.Before(s) {
			r.Start, r.End = r.End, r.Start
		}
	}
	return []domain.DateRange{r}
}
