package reportparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classSection is one per-class subtree of a roll-sheet or roster
// document, plus its resolved header line.
type classSection struct {
	root   *goquery.Selection
	header string
}

var (
	classNameOnRe   = regexp.MustCompile(`(?i)\s+on\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s*:?.*$`)
	classNameWithRe = regexp.MustCompile(`(?i)\s+with\s+.+$`)
	headerWithRe    = regexp.MustCompile(`(?i)\s+with\s+(.+?)\s*$`)
	timeRangeRe     = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m?\.?\s*[–—-]\s*(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m?\.?`)
	monthDayRe      = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
	reportYearRe    = regexp.MustCompile(`"startDate"\s*:\s*"(\d{4})-`)
	subMarkerRe     = regexp.MustCompile(`(?i)\(\s*sub\.?\s*\)`)
)

// classSections segments a document into per-class blocks. The primary
// shape is consecutive sibling containers under the vendor's condensed
// schedule wrapper; older exports mark blocks with a class-block class
// instead, and the last resort is one block per table carrying a
// "Schedule:" label.
func classSections(doc *goquery.Document) []classSection {
	var roots []*goquery.Selection

	doc.Find(".condensed-schedule").Each(func(_ int, wrap *goquery.Selection) {
		wrap.Children().Each(func(_ int, child *goquery.Selection) {
			roots = append(roots, child)
		})
	})
	if len(roots) == 0 {
		doc.Find("[class*='class-block']").Each(func(_ int, block *goquery.Selection) {
			roots = append(roots, block)
		})
	}
	if len(roots) == 0 {
		doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
			if strings.Contains(strings.ToLower(tbl.Text()), "schedule:") {
				roots = append(roots, tbl)
			}
		})
	}

	var sections []classSection
	for _, root := range roots {
		header := sectionHeader(root)
		if header == "" && cellText(root) == "" {
			continue
		}
		sections = append(sections, classSection{root: root, header: header})
	}
	return sections
}

// sectionHeader finds the block's header line: a heading element, a
// class-header-marked element, the first table header cell, or the
// block's first text line.
func sectionHeader(root *goquery.Selection) string {
	if h := root.Find("h1, h2, h3, h4").First(); h.Length() > 0 {
		return cellText(h)
	}
	if h := root.Find("[class*='class-header']").First(); h.Length() > 0 {
		return cellText(h)
	}
	if h := root.Find("th").First(); h.Length() > 0 {
		return cellText(h)
	}
	text := strings.TrimSpace(root.Text())
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return CleanCellText(text)
}

// deriveClassName strips the header's trailing " on <weekday>:" or
// " with <name>" suffix, in that priority order. With neither suffix
// the whole trimmed header is the class name.
func deriveClassName(header string) string {
	header = CleanCellText(header)
	if loc := classNameOnRe.FindStringIndex(header); loc != nil {
		return strings.TrimSpace(header[:loc[0]])
	}
	if loc := classNameWithRe.FindStringIndex(header); loc != nil {
		return strings.TrimSpace(header[:loc[0]])
	}
	return header
}

// sniffReportYear recovers the report's year from the embedded
// startDate JSON fragment the vendor includes in report scripts.
// Zero means no fragment was present.
func sniffReportYear(html string) int {
	m := reportYearRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return y
}

// parseMonthDay extracts the first M/D[/Y] token from text and returns
// it as ISO, borrowing reportYear when the token has no year of its
// own. Empty result means no usable token.
func parseMonthDay(text string, reportYear int) string {
	m := monthDayRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if m[3] != "" {
		if iso, ok := ParseUSDate(m[0]); ok {
			return iso
		}
		return ""
	}
	if reportYear == 0 {
		return ""
	}
	if iso, ok := ParseUSDate(m[1] + "/" + m[2] + "/" + strconv.Itoa(reportYear)); ok {
		return iso
	}
	return ""
}

// parseTimeRange extracts "H[:MM] am/pm - H[:MM] am/pm" start/end times
// as HH:MM:SS. Both results are empty when no recognizable range exists.
func parseTimeRange(text string) (string, string) {
	m := timeRangeRe.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	start, err := formatClockTime(atoiDefault(m[1]), atoiDefault(m[2]), m[3])
	if err != nil {
		return "", ""
	}
	end, err := formatClockTime(atoiDefault(m[4]), atoiDefault(m[5]), m[6])
	if err != nil {
		return "", ""
	}
	return start, end
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// instructorResolution is the outcome of reading a block's or row's
// instructor names: who was scheduled, who actually taught, and whether
// that was a substitution.
type instructorResolution struct {
	Scheduled string
	Actual    string
	Raw       string
	Norm      string
	IsSub     bool
}

// hasSubMarker reports whether a raw instructor name carries the
// vendor's substitute marking: a "(sub)" parenthetical or a trailing
// asterisk.
func hasSubMarker(raw string) bool {
	return subMarkerRe.MatchString(raw) || strings.HasSuffix(strings.TrimSpace(raw), "*")
}

// resolveInstructors applies the scheduled/actual/sub rules to an
// ordered raw name list. A marked name is the substitute (actual); the
// first unmarked name is scheduled. A single unmarked name is both with
// no substitution. IsSub requires two distinct resolved names.
func resolveInstructors(rawNames []string) instructorResolution {
	var res instructorResolution
	for _, raw := range rawNames {
		raw = CleanCellText(raw)
		if raw == "" {
			continue
		}
		if res.Raw == "" {
			res.Raw = raw
		}
		name := NormalizeInstructorName(raw)
		if name == "" {
			continue
		}
		if hasSubMarker(raw) {
			if res.Actual == "" || res.Actual == res.Scheduled {
				res.Actual = name
			}
			continue
		}
		if res.Scheduled == "" {
			res.Scheduled = name
			if res.Actual == "" {
				res.Actual = name
			}
		}
	}
	res.IsSub = res.Scheduled != "" && res.Actual != "" && res.Scheduled != res.Actual
	res.Norm = res.Actual
	if res.Norm == "" {
		res.Norm = res.Scheduled
	}
	return res
}

// collectInstructorNames gathers the raw instructor list for a section.
// Primary source is the list items of an "Instructors:" labeled cell;
// the fallback scans the section's first five list items and keeps the
// comma-bearing ones (names render "Last, First" there).
func collectInstructorNames(root *goquery.Selection) []string {
	var names []string
	root.Find("th, td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(cellText(cell)), "instructor") {
			return true
		}
		scope := cell
		if cell.Find("li").Length() == 0 {
			if next := cell.Next(); next.Length() > 0 {
				scope = next
			}
		}
		scope.Find("li").Each(func(_ int, li *goquery.Selection) {
			names = append(names, cellText(li))
		})
		if len(names) == 0 {
			if v := labeledCellValue(cell.Parent(), "instructor"); v != "" {
				names = append(names, v)
			}
		}
		return len(names) == 0
	})
	if len(names) > 0 {
		return names
	}
	root.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		if text := cellText(li); strings.Contains(text, ",") {
			names = append(names, text)
		}
		return true
	})
	return names
}

// headerInstructor pulls the " with <name>" suffix off a header line,
// the last-resort instructor source when a block has no list at all.
func headerInstructor(header string) string {
	m := headerWithRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return m[1]
}
