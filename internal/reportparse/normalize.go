package reportparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	usDateRe      = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)
	moneyRe       = regexp.MustCompile(`-?[\d,]+(?:\.\d+)?`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// instructorTitles are honorifics stripped during canonicalization.
var instructorTitles = map[string]bool{
	"mr":    true,
	"mrs":   true,
	"ms":    true,
	"miss":  true,
	"coach": true,
}

// CleanCellText collapses runs of whitespace (including non-breaking
// spaces, which iClassPro exports use as cell padding) to single spaces
// and trims the result.
func CleanCellText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ParseUSDate parses a US-style M/D/YY or M/D/YYYY date and returns it
// as ISO YYYY-MM-DD. Two-digit years are taken as 2000-2099, which is
// where every report the vendor produces falls.
func ParseUSDate(s string) (string, bool) {
	m := usDateRe.FindStringSubmatch(CleanCellText(s))
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) <= 2 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 2/31 becomes 3/2); treat
	// that as a parse failure rather than a silently shifted date.
	if int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// parseUSDateTime parses a US date into a time.Time for comparisons.
func parseUSDateTime(s string) (time.Time, bool) {
	iso, ok := ParseUSDate(s)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", iso)
	return t, err == nil
}

// ParseMoney extracts a dollar amount from text such as "$1,234.50" or
// "Balance: $-20". Returns nil when no numeric token is present or the
// token does not parse.
func ParseMoney(s string) *float64 {
	tok := moneyRe.FindString(CleanCellText(s))
	if tok == "" {
		return nil
	}
	tok = strings.ReplaceAll(tok, ",", "")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ReorderName converts "Last, First [Middle]" into "First [Middle] Last".
// Text without a comma passes through whitespace-normalized.
func ReorderName(s string) string {
	s = CleanCellText(s)
	last, first, found := strings.Cut(s, ",")
	if !found {
		return s
	}
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

// NormalizeInstructorName canonicalizes an instructor name as rendered
// in a report: parentheticals (sub markers, nicknames) and trailing
// asterisks are stripped, "Last, First" order is flipped, honorific
// titles are removed and whitespace is collapsed.
func NormalizeInstructorName(s string) string {
	s = parentheticRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "*", " ")
	s = ReorderName(s)
	words := strings.Fields(s)
	out := words[:0]
	for _, w := range words {
		key := strings.ToLower(strings.TrimRight(w, "."))
		if instructorTitles[key] {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// flipSurnameFirst converts "Last First [Middle...]" (no comma, surname
// leading, as retention tables render names) to "First [Middle...] Last".
// Comma-separated names go through ReorderName instead.
func flipSurnameFirst(s string) string {
	s = CleanCellText(s)
	if strings.Contains(s, ",") {
		return ReorderName(s)
	}
	words := strings.Fields(s)
	if len(words) < 2 {
		return s
	}
	return strings.Join(append(words[1:], words[0]), " ")
}

// normalizeKey lowercases text and strips every non-alphanumeric rune,
// the shared key form for header-alias and location matching.
func normalizeKey(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
}

// round2 rounds to two decimal places, the precision retention percents
// are reported at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseNumericCell parses a cell that should hold an integer count.
// Returns nil for empty, dash or otherwise non-numeric cells.
func parseNumericCell(s string) *int64 {
	s = CleanCellText(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || s == "--" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Counts occasionally render as "12.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			return nil
		}
		v = int64(f)
	}
	return &v
}

// formatClockTime renders parsed hour/minute plus an am/pm marker as the
// canonical HH:MM:SS the data model stores.
func formatClockTime(hour, minute int, meridiem string) (string, error) {
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("clock time out of range: %d:%02d", hour, minute)
	}
	if strings.HasPrefix(strings.ToLower(meridiem), "p") && hour != 12 {
		hour += 12
	}
	if strings.HasPrefix(strings.ToLower(meridiem), "a") && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}
