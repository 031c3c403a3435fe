package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"swimparse/internal/ingest"
	"swimparse/pkg/contracts/domain"
)

func sampleResult() *ingest.Result {
	balance := 25.0
	present := 1
	booked := int64(20)
	retained := int64(18)
	pct := 90.0
	return &ingest.Result{
		Manifest: &ingest.UploadManifest{
			UploadID:    "e3b0c442-0000-0000-0000-000000000001",
			ContentHash: "deadbeef",
			ReportType:  domain.ReportTypeRoster,
			Metadata: &domain.ReportMetadata{
				ReportType:           domain.ReportTypeRoster,
				DetectedLocationName: "Riverbend",
			},
		},
		RosterEntries: []domain.ParsedRosterEntry{
			{
				SwimmerName:   "Jane Roe",
				ClassName:     "Guppies",
				ClassDate:     "2026-01-05",
				StartTime:     "9:00 am",
				Attendance:    &present,
				FlagOwes:      true,
				BalanceAmount: &balance,
			},
		},
		Retention: []domain.InstructorRetentionRow{
			{
				InstructorName:    "John Doe",
				StartingHeadcount: &booked,
				EndingHeadcount:   &retained,
				RetentionPercent:  &pct,
			},
		},
	}
}

func TestResultSheets(t *testing.T) {
	sheets := ResultSheets(sampleResult())
	require.Len(t, sheets, 2, "only populated row kinds get sheets")

	assert.Equal(t, "roster", sheets[0].Name)
	require.Len(t, sheets[0].Records, 1)
	record := sheets[0].Records[0]
	require.Equal(t, len(sheets[0].Headers), len(record))
	assert.Equal(t, "Jane Roe", record[0])
	assert.Equal(t, "1", record[12], "attendance renders as its numeric value")
	assert.Equal(t, "25.00", record[19])

	assert.Equal(t, "retention", sheets[1].Name)
	assert.Equal(t, []string{"John Doe", "20", "18", "90.00"}, sheets[1].Records[0])
}

func TestResultSheetsEmpty(t *testing.T) {
	res := &ingest.Result{Manifest: &ingest.UploadManifest{}}
	assert.Empty(t, ResultSheets(res))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "", formatMoney(nil))
	v := 3.456
	assert.Equal(t, "3.46", formatMoney(&v))

	assert.Equal(t, "", formatAttendance(nil))
	zero := 0
	assert.Equal(t, "0", formatAttendance(&zero), "absent is distinct from unknown")

	assert.Equal(t, "", formatCount(nil))
	n := int64(7)
	assert.Equal(t, "7", formatCount(&n))

	assert.Equal(t, "true", formatBool(true))
	assert.Equal(t, "false", formatBool(false))
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "roster", sanitizeSheetName(" roster "))
	long := "a_very_long_sheet_name_that_exceeds_the_limit"
	assert.Len(t, sanitizeSheetName(long), 31)
}

func TestCSVWriterWriteResult(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	paths, err := w.WriteResult("upload1", sampleResult())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "upload1_roster.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "upload1_retention.csv"), paths[1])

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3], "UTF-8 BOM for Excel")
	body := string(data[3:])
	assert.Contains(t, body, "instructor,starting_headcount,ending_headcount,retention_percent")
	assert.Contains(t, body, "John Doe,20,18,90.00")
}

func TestCSVWriterEmptyResult(t *testing.T) {
	w := NewCSVWriter(t.TempDir(), nil)
	paths, err := w.WriteResult("upload1", &ingest.Result{Manifest: &ingest.UploadManifest{}})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestWorkbookWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "upload1.xlsx")
	w := NewWorkbookWriter(nil)

	require.NoError(t, w.Write(path, sampleResult()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"summary", "roster", "retention"}, f.GetSheetList())

	got, err := f.GetCellValue("summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "roster", got)

	got, err = f.GetCellValue("retention", "A2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got)
}

func TestWorkbookWriterEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload1.xlsx")
	w := NewWorkbookWriter(nil)

	res := &ingest.Result{
		Manifest: &ingest.UploadManifest{
			UploadID:   "e3b0c442-0000-0000-0000-000000000002",
			ReportType: domain.ReportTypeUnknown,
			Metadata:   &domain.ReportMetadata{ReportType: domain.ReportTypeUnknown},
		},
		Unsupported: true,
	}
	require.NoError(t, w.Write(path, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"summary"}, f.GetSheetList())
}
