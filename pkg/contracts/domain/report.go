package domain

// ReportType identifies which vendor report a document contains.
// Detection is content-based because exported iClassPro HTML carries
// no machine-readable type marker.
type ReportType string

const (
	ReportTypeRollSheet     ReportType = "roll_sheet"
	ReportTypeRosterHistory ReportType = "roster_history"
	ReportTypeRoster        ReportType = "roster"
	ReportTypeRetention     ReportType = "instructor_retention"
	ReportTypeAgedAccounts  ReportType = "aged_accounts"
	ReportTypeDropList      ReportType = "drop_list"
	ReportTypeEnrollments   ReportType = "new_enrollments"
	ReportTypeAcneLeads     ReportType = "acne_leads"
	ReportTypeUnknown       ReportType = "unknown"
)

// Warning codes surfaced by detection and extraction. Warnings are
// advisory: the caller decides whether a missing signal blocks ingestion.
const (
	WarnLocationNotDetected  = "location_not_detected"
	WarnDateRangeNotDetected = "date_range_not_detected"
	WarnTableNotFound        = "table_not_found"
	WarnNoRowsParsed         = "no_rows_parsed"
)

// DateRange is one detected reporting period. Start and End keep the
// source's M/D/YYYY spelling; Raw preserves the text they came from.
// When both ends parse as dates, Start <= End is guaranteed (reversed
// ranges are swapped during detection).
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// ReportMetadata is the result of classifying one uploaded document.
// It is computed once per document and never mutated afterwards; the
// ingestion caller uses it to route the document and record provenance.
type ReportMetadata struct {
	ReportType           ReportType  `json:"report_type" validate:"required"`
	DetectedLocationName string      `json:"detected_location_name,omitempty"`
	LocationCandidates   []string    `json:"location_candidates,omitempty"`
	DetectedLocationIDs  []int64     `json:"detected_location_ids,omitempty"`
	DateRanges           []DateRange `json:"date_ranges,omitempty"`
	Warnings             []string    `json:"warnings,omitempty"`
}

// HasWarning reports whether the given warning code was recorded.
func (m *ReportMetadata) HasWarning(code string) bool {
	for _, w := range m.Warnings {
		if w == code {
			return true
		}
	}
	return false
}
