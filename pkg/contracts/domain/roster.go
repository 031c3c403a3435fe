package domain

// Attendance states for one swimmer in one class occurrence. A nil
// Attendance pointer means unknown: the source showed no positive
// present or absent signal and nothing may be inferred from that.
const (
	AttendanceAbsent  = 0
	AttendancePresent = 1
)

// ParsedRosterEntry is one swimmer's attendance-ready record for one
// class occurrence. Roster tables that span multiple date columns emit
// one entry per swimmer per column, each carrying that column's
// date/time.
type ParsedRosterEntry struct {
	ClassDate string `json:"class_date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	ClassName string `json:"class_name,omitempty"`

	SwimmerName string `json:"swimmer_name" validate:"required"`
	AgeText     string `json:"age_text,omitempty"`
	Program     string `json:"program,omitempty"`
	Level       string `json:"level,omitempty"`
	Zone        string `json:"zone,omitempty"`

	InstructorName      string `json:"instructor_name,omitempty"`
	InstructorNameRaw   string `json:"instructor_name_raw,omitempty"`
	InstructorNameNorm  string `json:"instructor_name_norm,omitempty"`
	ScheduledInstructor string `json:"scheduled_instructor,omitempty"`
	ActualInstructor    string `json:"actual_instructor,omitempty"`
	IsSub               bool   `json:"is_sub"`

	// Attendance is 0 (marked absent), 1 (marked present) or nil
	// (unknown). 0 requires a positively detected absence signal.
	Attendance           *int `json:"attendance"`
	AttendanceAutoAbsent bool `json:"attendance_auto_absent"`

	FlagFirstTime bool `json:"flag_first_time"`
	FlagMakeup    bool `json:"flag_makeup"`
	FlagPolicy    bool `json:"flag_policy"`
	FlagOwes      bool `json:"flag_owes"`
	FlagTrial     bool `json:"flag_trial"`

	BalanceAmount *float64 `json:"balance_amount,omitempty"`
}
