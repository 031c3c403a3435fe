package reportparse

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"swimparse/pkg/contracts/domain"
)

// ParseRollSheet extracts scheduled class occurrences from a roll-sheet
// document. Blocks that yield no class name are dropped; duplicated
// blocks collapse to one entry keyed by (name, date, start time).
func (p *Parser) ParseRollSheet(html string) ([]domain.ParsedClass, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	reportYear := sniffReportYear(html)
	sections := classSections(doc)

	classes := make([]domain.ParsedClass, 0, len(sections))
	seen := map[string]bool{}
	dropped := 0
	for _, sec := range sections {
		cls, ok := parseClassSection(sec, reportYear)
		if !ok {
			dropped++
			continue
		}
		if seen[cls.DedupKey()] {
			continue
		}
		seen[cls.DedupKey()] = true
		classes = append(classes, cls)
	}

	p.logger.Debug("roll sheet parsed",
		slog.Int("blocks", len(sections)),
		slog.Int("classes", len(classes)),
		slog.Int("dropped", dropped))
	return classes, nil
}

// parseClassSection turns one class block into a ParsedClass. ok is
// false when the block has no derivable class name, which marks it as
// decoration rather than data.
func parseClassSection(sec classSection, reportYear int) (domain.ParsedClass, bool) {
	name := deriveClassName(sec.header)
	if name == "" {
		return domain.ParsedClass{}, false
	}

	cls := domain.ParsedClass{ClassName: name}
	cls.ScheduleText = sectionScheduleText(sec)
	cls.StartTime, cls.EndTime = parseTimeRange(cls.ScheduleText)
	if cls.StartTime == "" {
		cls.StartTime, cls.EndTime = parseTimeRange(sec.header)
	}
	cls.ClassDate = sectionClassDate(sec, reportYear)

	names := collectInstructorNames(sec.root)
	if len(names) == 0 {
		if with := headerInstructor(sec.header); with != "" {
			names = []string{with}
		}
	}
	res := resolveInstructors(names)
	cls.ScheduledInstructor = res.Scheduled
	cls.ActualInstructor = res.Actual
	cls.IsSub = res.IsSub
	return cls, true
}

// sectionScheduleText resolves the block's schedule line: a labeled
// "Schedule:" cell first, then a schedule-details subtable, then the
// header itself.
func sectionScheduleText(sec classSection) string {
	if v := labeledCellValue(sec.root, "schedule"); v != "" {
		return v
	}
	if details := sec.root.Find("[class*='schedule-details']").First(); details.Length() > 0 {
		if v := cellText(details); v != "" {
			return v
		}
	}
	return sec.header
}

// sectionClassDate resolves the block's date: a date token in the
// header (with the document's report year filling in a missing year),
// else a class-date marked element. Empty means the caller supplies a
// fallback date.
func sectionClassDate(sec classSection, reportYear int) string {
	if iso := parseMonthDay(sec.header, reportYear); iso != "" {
		return iso
	}
	date := ""
	sec.root.Find("[class*='class-date']").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if iso := parseMonthDay(cellText(el), reportYear); iso != "" {
			date = iso
			return false
		}
		return true
	})
	return date
}
