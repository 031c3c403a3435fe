package domain

// InstructorRetentionRow is one instructor's headcount retention over a
// reporting period. RetentionPercent is round2(ending/starting x 100)
// when both counts were recovered, else nil.
type InstructorRetentionRow struct {
	InstructorName    string   `json:"instructor_name" validate:"required"`
	StartingHeadcount *int64   `json:"starting_headcount"`
	EndingHeadcount   *int64   `json:"ending_headcount"`
	RetentionPercent  *float64 `json:"retention_percent"`
}
