package reportparse

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"swimparse/pkg/contracts/domain"
)

var (
	groupLevelRe = regexp.MustCompile(`(?i)GROUP:\s*(Beginner|Intermediate|Advanced|Swimmer)\s*(\d+)`)
	zoneRe       = regexp.MustCompile(`(?i)Zone\s*[:#]?\s*(\d+)`)
	balanceRe    = regexp.MustCompile(`(?i)Balance:\s*\$?\s*(-?[\d,]+(?:\.\d+)?)`)
	ageRe        = regexp.MustCompile(`(?i)\bAge:?\s*(\d+(?:\.\d+)?\s*[a-z]*\.?)`)
)

// iconFlagTable maps the vendor's sprite filenames to roster flags.
// birthday.png doubles as a makeup marker in current exports.
var iconFlagTable = map[string]func(*domain.ParsedRosterEntry){
	"1st-ever.png": func(e *domain.ParsedRosterEntry) { e.FlagFirstTime = true },
	"balance.png":  func(e *domain.ParsedRosterEntry) { e.FlagOwes = true },
	"birthday.png": func(e *domain.ParsedRosterEntry) { e.FlagMakeup = true },
	"makeup.png":   func(e *domain.ParsedRosterEntry) { e.FlagMakeup = true },
	"policy.png":   func(e *domain.ParsedRosterEntry) { e.FlagPolicy = true },
	"trial.png":    func(e *domain.ParsedRosterEntry) { e.FlagTrial = true },
}

// circleSlashGlyphs are the empty-set style glyphs the vendor renders
// for auto-cancelled (auto-absent) sessions.
var circleSlashGlyphs = []string{"ø", "⌀", "⊘"}

// dateColumn is one class occurrence encoded in a roster table's header
// row, after colspan expansion.
type dateColumn struct {
	date      string
	startTime string
	cellIndex int
}

// ParseRosterEntries extracts per-swimmer attendance entries from a
// roster document. Tables spanning multiple date columns emit one entry
// per swimmer per column. Rows without a swimmer name are dropped.
func (p *Parser) ParseRosterEntries(html string) ([]domain.ParsedRosterEntry, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	reportYear := sniffReportYear(html)
	sections := classSections(doc)

	var entries []domain.ParsedRosterEntry
	for _, sec := range sections {
		entries = append(entries, parseRosterSection(sec, reportYear)...)
	}

	p.logger.Debug("roster parsed",
		slog.Int("sections", len(sections)),
		slog.Int("entries", len(entries)))
	return entries, nil
}

// parseRosterSection emits all entries for one class section.
func parseRosterSection(sec classSection, reportYear int) []domain.ParsedRosterEntry {
	table := rosterTable(sec.root)
	if table == nil {
		return nil
	}

	sectionText := CleanCellText(sec.root.Text())
	program, level := parseProgramLevel(labeledCellValue(sec.root, "program"), sectionText)
	zone := parseZone(sec.root, sectionText)
	className := deriveClassName(sec.header)
	sectionDate := sectionClassDate(sec, reportYear)
	sectionStart, _ := parseTimeRange(sectionScheduleText(sec))
	sectionRes := resolveInstructors(collectInstructorNames(sec.root))

	columns := rosterDateColumns(table, sectionText, reportYear)
	instructorCol := rosterInstructorColumn(table)

	var entries []domain.ParsedRosterEntry
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		nameEl := row.Find(".student-name").First()
		if nameEl.Length() == 0 {
			return
		}
		name := cellText(nameEl.Find("strong").First())
		if name == "" {
			name = cellText(nameEl)
		}
		name = ReorderName(name)
		if name == "" {
			return
		}

		base := domain.ParsedRosterEntry{
			SwimmerName: name,
			ClassName:   className,
			ClassDate:   sectionDate,
			StartTime:   sectionStart,
			Program:     program,
			Level:       level,
			Zone:        zone,
		}
		cells := row.Find("td, th")
		fillRowDetails(&base, row, cells)
		applyRowInstructor(&base, cells, instructorCol, sectionRes)

		if len(columns) == 0 {
			att, auto := detectRowAttendance(cells)
			base.Attendance = att
			base.AttendanceAutoAbsent = auto
			entries = append(entries, base)
			return
		}
		for _, col := range columns {
			entry := base
			entry.ClassDate = col.date
			if col.startTime != "" {
				entry.StartTime = col.startTime
			}
			if col.cellIndex < cells.Length() {
				entry.Attendance, entry.AttendanceAutoAbsent = detectAttendance(cells.Eq(col.cellIndex))
			}
			entries = append(entries, entry)
		}
	})
	return entries
}

// rosterTable finds the section's swimmer table, recognized by its
// student-name cells. Nil when the section has no data table.
func rosterTable(root *goquery.Selection) *goquery.Selection {
	var table *goquery.Selection
	root.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		if tbl.Find(".student-name").Length() > 0 {
			table = tbl
			return false
		}
		return true
	})
	return table
}

// parseProgramLevel normalizes the section's program label. A bare
// "GROUP" program is refined by scanning the section text for the
// group-level pattern; the combined value then splits on the first
// colon into program and level.
func parseProgramLevel(programText, sectionText string) (string, string) {
	programText = CleanCellText(programText)
	if strings.EqualFold(programText, "group") {
		if m := groupLevelRe.FindStringSubmatch(sectionText); m != nil {
			caser := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
			programText = "GROUP: " + caser + " " + m[2]
		} else {
			programText = "GROUP"
		}
	}
	if programText == "" {
		return "", ""
	}
	if before, after, found := strings.Cut(programText, ":"); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return programText, ""
}

// parseZone reads the pool-zone number from the section's Zone cell,
// falling back to a Zone token anywhere in the section text.
func parseZone(root *goquery.Selection, sectionText string) string {
	if v := labeledCellValue(root, "zone"); v != "" {
		if m := zoneRe.FindStringSubmatch("Zone " + v); m != nil {
			return m[1]
		}
	}
	if m := zoneRe.FindStringSubmatch(sectionText); m != nil {
		return m[1]
	}
	return ""
}

// fillRowDetails reads the row-level oddments: age text, icon flags and
// the balance amount from the fixed details cell. A nonzero balance
// forces FlagOwes independent of the icon signal; the two sources are
// OR'd with no reconciliation.
func fillRowDetails(entry *domain.ParsedRosterEntry, row *goquery.Selection, cells *goquery.Selection) {
	if m := ageRe.FindStringSubmatch(CleanCellText(row.Text())); m != nil {
		entry.AgeText = strings.TrimSpace(m[1])
	} else if age := row.Find("[class*='student-age']").First(); age.Length() > 0 {
		entry.AgeText = cellText(age)
	}

	row.Find("img").Each(func(_ int, img *goquery.Selection) {
		if apply, ok := iconFlagTable[imageBasename(img)]; ok {
			apply(entry)
		}
	})

	if cells.Length() > 3 {
		if m := balanceRe.FindStringSubmatch(cellText(cells.Eq(3))); m != nil {
			raw := strings.ReplaceAll(m[1], ",", "")
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				entry.BalanceAmount = &v
				if v != 0 {
					entry.FlagOwes = true
				}
			}
		}
	}
}

// rosterInstructorColumn returns the colspan-expanded index of a
// row-local Instructor column, or -1 when the table has none.
func rosterInstructorColumn(table *goquery.Selection) int {
	headerRow := rosterHeaderRow(table)
	if headerRow == nil {
		return -1
	}
	index := -1
	pos := 0
	headerRow.Find("th, td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(cellText(cell)), "instructor") {
			index = pos
			return false
		}
		pos += colspan(cell)
		return true
	})
	return index
}

// applyRowInstructor resolves the entry's instructor fields. A
// row-local instructor cell takes precedence over the section metadata;
// a row giving only a marked substitute inherits the section's
// scheduled name so the substitution still registers.
func applyRowInstructor(entry *domain.ParsedRosterEntry, cells *goquery.Selection, instructorCol int, sectionRes instructorResolution) {
	res := sectionRes
	if instructorCol >= 0 && instructorCol < cells.Length() {
		if raw := cellText(cells.Eq(instructorCol)); raw != "" {
			res = resolveInstructors([]string{raw})
			if res.Scheduled == "" && sectionRes.Scheduled != "" {
				res.Scheduled = sectionRes.Scheduled
				res.IsSub = res.Actual != "" && res.Actual != res.Scheduled
			}
		}
	}
	entry.InstructorNameRaw = res.Raw
	entry.InstructorNameNorm = res.Norm
	entry.InstructorName = res.Norm
	entry.ScheduledInstructor = res.Scheduled
	entry.ActualInstructor = res.Actual
	entry.IsSub = res.IsSub
}

// rosterHeaderRow is the first row carrying th cells, else the first
// row outright.
func rosterHeaderRow(table *goquery.Selection) *goquery.Selection {
	var header *goquery.Selection
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.Find("th").Length() > 0 {
			header = row
			return false
		}
		return true
	})
	if header == nil {
		header = table.Find("tr").First()
		if header.Length() == 0 {
			return nil
		}
	}
	return header
}

// rosterDateColumns decodes the header row's per-occurrence date
// columns. Each header cell carrying a month/day token becomes one
// column at its colspan-expanded index; a cell without an explicit year
// borrows one from a date range found in the section text, else the
// document's report year.
func rosterDateColumns(table *goquery.Selection, sectionText string, reportYear int) []dateColumn {
	headerRow := rosterHeaderRow(table)
	if headerRow == nil {
		return nil
	}
	rangeStart, rangeEnd, haveRange := sectionDateRange(sectionText)

	var columns []dateColumn
	pos := 0
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		defer func() { pos += colspan(cell) }()
		text := cellText(cell)
		m := monthDayRe.FindStringSubmatch(text)
		if m == nil {
			return
		}
		month := atoiDefault(m[1])
		day := atoiDefault(m[2])
		iso := ""
		switch {
		case m[3] != "":
			iso, _ = ParseUSDate(m[0])
		case haveRange:
			year := inferYearFromRange(month, day, rangeStart, rangeEnd)
			iso, _ = ParseUSDate(m[1] + "/" + m[2] + "/" + strconv.Itoa(year))
		case reportYear != 0:
			iso, _ = ParseUSDate(m[1] + "/" + m[2] + "/" + strconv.Itoa(reportYear))
		}
		if iso == "" {
			return
		}
		start, _ := parseTimeRange(text)
		columns = append(columns, dateColumn{date: iso, startTime: start, cellIndex: pos})
	})
	return columns
}

// sectionDateRange finds the first two fully-dated tokens in the
// section text, the range year inference keys off.
func sectionDateRange(sectionText string) (time.Time, time.Time, bool) {
	tokens := usDateRe.FindAllString(sectionText, 2)
	if len(tokens) < 2 {
		return time.Time{}, time.Time{}, false
	}
	start, okS := parseUSDateTime(tokens[0])
	end, okE := parseUSDateTime(tokens[1])
	if !okS || !okE {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// inferYearFromRange picks a year for a bare month/day header given the
// section's date range. Ranges within one calendar year use that year;
// a year-spanning range assigns the header to the range-start year when
// its month/day falls on or after the range start, else to the
// range-end year. Reports span at most two distinct years, so the
// two-endpoint choice is exhaustive.
func inferYearFromRange(month, day int, rangeStart, rangeEnd time.Time) int {
	if rangeStart.Year() == rangeEnd.Year() {
		return rangeStart.Year()
	}
	if month > int(rangeStart.Month()) ||
		(month == int(rangeStart.Month()) && day >= rangeStart.Day()) {
		return rangeStart.Year()
	}
	return rangeEnd.Year()
}

// colspan reads a cell's colspan attribute, defaulting to one.
func colspan(cell *goquery.Selection) int {
	v, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// detectAttendance classifies one attendance cell. Absence requires a
// positively detected signal; with no signal at all the state stays
// nil, never absent and never present.
func detectAttendance(cell *goquery.Selection) (*int, bool) {
	text := strings.ToLower(cellText(cell))

	glyph := false
	for _, g := range circleSlashGlyphs {
		if strings.Contains(text, g) {
			glyph = true
			break
		}
	}

	autoAbsent := glyph
	absent := glyph
	present := false

	cell.Find("img").Each(func(_ int, img *goquery.Selection) {
		blob := imageBlob(img)
		if strings.Contains(blob, "cancel") {
			autoAbsent = true
			absent = true
		}
		if strings.Contains(blob, "x-modifier") ||
			strings.Contains(blob, "absent") ||
			strings.Contains(blob, "no-show") ||
			strings.Contains(blob, "noshow") ||
			(strings.Contains(blob, "circle") &&
				(strings.Contains(blob, "slash") || strings.Contains(blob, "strike"))) {
			absent = true
		}
		// "check" alone would also match unchecked checkbox sprites.
		if !strings.Contains(blob, "unchecked") &&
			(strings.Contains(blob, "checkmark") ||
				strings.Contains(blob, "checked") ||
				strings.Contains(blob, "check.png") ||
				strings.Contains(blob, "present")) {
			present = true
		}
	})

	if strings.Contains(text, "absent") ||
		strings.Contains(text, "no show") ||
		strings.Contains(text, "noshow") {
		absent = true
	}
	if hasLineThrough(cell) {
		absent = true
	}
	if hasClassContaining(cell, "absent", "no-show", "noshow", "strike") {
		absent = true
	}

	if absent {
		v := domain.AttendanceAbsent
		return &v, autoAbsent
	}
	if present || strings.Contains(text, "present") {
		v := domain.AttendancePresent
		return &v, false
	}
	return nil, autoAbsent
}

// detectRowAttendance covers single-occurrence tables with no date
// columns: the cells after the fixed details cell are probed in order
// and the first cell showing any signal decides.
func detectRowAttendance(cells *goquery.Selection) (*int, bool) {
	var att *int
	auto := false
	cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if i <= 3 {
			return true
		}
		a, au := detectAttendance(cell)
		if a != nil || au {
			att, auto = a, au
			return false
		}
		return true
	})
	return att, auto
}
