package exporter

import (
	"strings"

	"swimparse/internal/ingest"
)

// Sheet is one named block of tabular output shared by the CSV and
// workbook writers.
type Sheet struct {
	Name    string
	Headers []string
	Records [][]string
}

// ResultSheets flattens a pipeline result into output sheets, one per
// populated row kind.
func ResultSheets(res *ingest.Result) []Sheet {
	var sheets []Sheet

	if len(res.Classes) > 0 {
		s := Sheet{
			Name:    "classes",
			Headers: []string{"class_name", "class_date", "start_time", "end_time", "schedule", "scheduled_instructor", "actual_instructor", "is_sub"},
		}
		for _, c := range res.Classes {
			s.Records = append(s.Records, []string{
				c.ClassName, c.ClassDate, c.StartTime, c.EndTime, c.ScheduleText,
				c.ScheduledInstructor, c.ActualInstructor, formatBool(c.IsSub),
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.RosterEntries) > 0 {
		s := Sheet{
			Name: "roster",
			Headers: []string{
				"swimmer_name", "class_name", "class_date", "start_time", "age",
				"program", "level", "zone", "instructor", "scheduled_instructor",
				"actual_instructor", "is_sub", "attendance", "auto_absent",
				"first_time", "makeup", "policy", "owes", "trial", "balance",
			},
		}
		for _, e := range res.RosterEntries {
			s.Records = append(s.Records, []string{
				e.SwimmerName, e.ClassName, e.ClassDate, e.StartTime, e.AgeText,
				e.Program, e.Level, e.Zone, e.InstructorName, e.ScheduledInstructor,
				e.ActualInstructor, formatBool(e.IsSub), formatAttendance(e.Attendance),
				formatBool(e.AttendanceAutoAbsent), formatBool(e.FlagFirstTime),
				formatBool(e.FlagMakeup), formatBool(e.FlagPolicy), formatBool(e.FlagOwes),
				formatBool(e.FlagTrial), formatMoney(e.BalanceAmount),
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.Retention) > 0 {
		s := Sheet{
			Name:    "retention",
			Headers: []string{"instructor", "starting_headcount", "ending_headcount", "retention_percent"},
		}
		for _, r := range res.Retention {
			s.Records = append(s.Records, []string{
				r.InstructorName, formatCount(r.StartingHeadcount),
				formatCount(r.EndingHeadcount), formatPercent(r.RetentionPercent),
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.AgedAccounts) > 0 {
		s := Sheet{
			Name:    "aged_accounts",
			Headers: []string{"guardian", "bucket", "amount", "current", "1_30", "31_60", "61_90", "91_plus", "unapplied_credit", "total"},
		}
		for _, r := range res.AgedAccounts {
			s.Records = append(s.Records, []string{
				r.GuardianName, r.Bucket, formatMoney(r.Amount), formatMoney(r.Current),
				formatMoney(r.Days1To30), formatMoney(r.Days31To60), formatMoney(r.Days61To90),
				formatMoney(r.Days91Plus), formatMoney(r.UnappliedCredit), formatMoney(r.Total),
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.DropList) > 0 {
		s := Sheet{
			Name:    "drop_list",
			Headers: []string{"drop_date", "swimmer", "class", "instructor", "level", "reason"},
		}
		for _, r := range res.DropList {
			s.Records = append(s.Records, []string{
				r.DropDate, r.SwimmerName, r.ClassName, r.Instructor, r.Level, r.Reason,
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.Enrollments) > 0 {
		s := Sheet{
			Name:    "enrollments",
			Headers: []string{"enroll_date", "swimmer", "class", "program", "instructor", "location"},
		}
		for _, r := range res.Enrollments {
			s.Records = append(s.Records, []string{
				r.EnrollDate, r.SwimmerName, r.ClassName, r.Program, r.Instructor, r.Location,
			})
		}
		sheets = append(sheets, s)
	}

	if len(res.AcneLeads) > 0 {
		s := Sheet{
			Name:    "acne_leads",
			Headers: []string{"created_date", "guardian", "email", "phone", "location"},
		}
		for _, r := range res.AcneLeads {
			s.Records = append(s.Records, []string{
				r.CreatedDate, r.GuardianName, r.Email, r.Phone, r.Location,
			})
		}
		sheets = append(sheets, s)
	}

	return sheets
}

// sanitizeSheetName keeps workbook sheet names inside excelize's 31
// character limit.
func sanitizeSheetName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
