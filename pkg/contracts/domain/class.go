package domain

// ParsedClass represents one scheduled class occurrence recovered from a
// roll-sheet document. Dates are ISO (YYYY-MM-DD) and times are HH:MM:SS;
// empty string means the source did not expose the value and the caller
// must supply a fallback.
type ParsedClass struct {
	ClassName           string `json:"class_name" validate:"required"`
	ScheduleText        string `json:"schedule_text,omitempty"`
	ClassDate           string `json:"class_date,omitempty"`
	StartTime           string `json:"start_time,omitempty"`
	EndTime             string `json:"end_time,omitempty"`
	ScheduledInstructor string `json:"scheduled_instructor,omitempty"`
	ActualInstructor    string `json:"actual_instructor,omitempty"`
	// IsSub is true only when a distinct scheduled name and a distinct
	// substitute name were both resolved and differ.
	IsSub bool `json:"is_sub"`
}

// DedupKey identifies a class occurrence for collapse across repeated
// blocks: two entries with the same name, date and start time are the
// same occurrence.
func (c ParsedClass) DedupKey() string {
	return c.ClassName + "|" + c.ClassDate + "|" + c.StartTime
}
