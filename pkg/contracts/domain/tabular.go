package domain

// Tabular report rows. Each is a flat record recovered from one table
// row by header-alias resolution; a nil pointer field means the source
// cell could not be parsed into the target type.

// AgedAccountsRow is one receivables line. The usual table shape is one
// row per account with per-aging-bucket amounts. Guardian-level exports
// instead carry one row per guardian; those are summed per bucket and
// emitted as one row per bucket with Bucket/Amount set and a shared
// Total.
type AgedAccountsRow struct {
	GuardianName    string   `json:"guardian_name,omitempty"`
	Bucket          string   `json:"bucket,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Current         *float64 `json:"current,omitempty"`
	Days1To30       *float64 `json:"days_1_to_30,omitempty"`
	Days31To60      *float64 `json:"days_31_to_60,omitempty"`
	Days61To90      *float64 `json:"days_61_to_90,omitempty"`
	Days91Plus      *float64 `json:"days_91_plus,omitempty"`
	UnappliedCredit *float64 `json:"unapplied_credit,omitempty"`
	Total           *float64 `json:"total,omitempty"`
}

// DropListRow is one swimmer who dropped enrollment.
type DropListRow struct {
	DropDate    string `json:"drop_date,omitempty"`
	SwimmerName string `json:"swimmer_name" validate:"required"`
	ClassName   string `json:"class_name,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Level       string `json:"level,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// EnrollmentRow is one newly enrolled swimmer.
type EnrollmentRow struct {
	EnrollDate  string `json:"enroll_date,omitempty"`
	SwimmerName string `json:"swimmer_name" validate:"required"`
	ClassName   string `json:"class_name,omitempty"`
	Program     string `json:"program,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Location    string `json:"location,omitempty"`
}

// AcneLeadRow is one "account created, not enrolled" lead: a guardian
// who registered but never enrolled a swimmer.
type AcneLeadRow struct {
	CreatedDate  string `json:"created_date,omitempty"`
	GuardianName string `json:"guardian_name" validate:"required"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
}
