package reportparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimparse/pkg/contracts/domain"
)

func TestExtractDropList(t *testing.T) {
	html := `<html><body><h1>Drop List</h1>
	<table>
	  <tr><th>Drop Date</th><th>Student</th><th>Reason</th></tr>
	  <tr><td>1/2/24</td><td>Jane Roe</td><td>Moved</td></tr>
	  <tr><td>1/3/24</td><td></td><td>header artifact, no student</td></tr>
	</table>
	</body></html>`

	rows, warnings, err := New(nil).ExtractDropList(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.DropListRow{
		DropDate:    "2024-01-02",
		SwimmerName: "Jane Roe",
		Reason:      "Moved",
	}, rows[0])
}

func TestExtractDropListHeaderAliasInsensitive(t *testing.T) {
	// "Student Name" must satisfy the "student" alias regardless of
	// casing, punctuation or whitespace.
	html := `<table>
	  <tr><th>DROP   DATE</th><th>student_name</th><th>Reason:</th></tr>
	  <tr><td>2/5/2026</td><td>Sam Lee</td><td>Schedule</td></tr>
	</table>`

	rows, warnings, err := New(nil).ExtractDropList(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sam Lee", rows[0].SwimmerName)
	assert.Equal(t, "2026-02-05", rows[0].DropDate)
}

func TestExtractDropListTdHeaderFallback(t *testing.T) {
	html := `<table>
	  <tr><td>Drop Date</td><td>Student</td></tr>
	  <tr><td>1/2/24</td><td>Jane Roe</td></tr>
	</table>`

	rows, warnings, err := New(nil).ExtractDropList(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
}

func TestExtractDropListTableNotFound(t *testing.T) {
	rows, warnings, err := New(nil).ExtractDropList("<html><body><p>no table</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{domain.WarnTableNotFound}, warnings)
}

func TestExtractDropListNoRowsParsed(t *testing.T) {
	html := `<table><tr><th>Drop Date</th><th>Student</th></tr></table>`
	rows, warnings, err := New(nil).ExtractDropList(html)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{domain.WarnNoRowsParsed}, warnings)
}

func TestExtractEnrollments(t *testing.T) {
	html := `<html><body><h1>New Enrollments</h1>
	<table>
	  <tr><th>Enroll Date</th><th>Student Name</th><th>Class</th><th>Instructor</th><th>Location</th></tr>
	  <tr><td>3/1/2026</td><td>Theo Park</td><td>Guppies</td><td>Amy Pond</td><td>Riverbend</td></tr>
	</table>
	</body></html>`

	rows, warnings, err := New(nil).ExtractEnrollments(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, "Theo Park", rows[0].SwimmerName)
	assert.Equal(t, "2026-03-01", rows[0].EnrollDate)
	assert.Equal(t, "Guppies", rows[0].ClassName)
	assert.Equal(t, "Riverbend", rows[0].Location)
}

func TestExtractAcneLeads(t *testing.T) {
	html := `<html><body><h1>Accounts Created Not Enrolled</h1>
	<table>
	  <tr><th>Created</th><th>Guardian</th><th>Email</th><th>Phone</th></tr>
	  <tr><td>12/1/25</td><td>Pat Roe</td><td>pat@example.com</td><td>555-0100</td></tr>
	  <tr><td></td><td></td><td>orphan@example.com</td><td></td></tr>
	</table>
	</body></html>`

	rows, warnings, err := New(nil).ExtractAcneLeads(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pat Roe", rows[0].GuardianName)
	assert.Equal(t, "2025-12-01", rows[0].CreatedDate)
	assert.Equal(t, "pat@example.com", rows[0].Email)
}

func TestExtractAgedAccountsPerAccount(t *testing.T) {
	html := `<html><body><h1>Aged Accounts</h1>
	<table>
	  <tr><th>Account Name</th><th>Current</th><th>Total</th></tr>
	  <tr><td>Roe Family</td><td>$120.00</td><td>$120.00</td></tr>
	  <tr><td>Totals</td><td>$120.00</td><td>$120.00</td></tr>
	</table>
	</body></html>`

	rows, warnings, err := New(nil).ExtractAgedAccounts(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, "Roe Family", rows[0].GuardianName)
	require.NotNil(t, rows[0].Current)
	assert.InDelta(t, 120.0, *rows[0].Current, 0.001)
}

func TestExtractAgedAccountsGuardianLevel(t *testing.T) {
	html := `<html><body><h1>Aged Accounts</h1>
	<table>
	  <tr><th>Guardian</th><th>Current</th><th>1-30</th><th>31-60</th><th>61-90</th><th>91+</th><th>Unapplied Credit</th><th>Total</th></tr>
	  <tr><td>Roe, Pat</td><td>10.00</td><td>5.00</td><td>0</td><td>0</td><td>1.00</td><td>-2.00</td><td>14.00</td></tr>
	  <tr><td>Lee, Kim</td><td>20.00</td><td>0</td><td>3.00</td><td>0</td><td>0</td><td>0</td><td>23.00</td></tr>
	  <tr><td>Totals</td><td>30.00</td><td>5.00</td><td>3.00</td><td>0</td><td>1.00</td><td>-2.00</td><td>37.00</td></tr>
	</table>
	</body></html>`

	rows, warnings, err := New(nil).ExtractAgedAccounts(html)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 6, "one row per aging bucket")

	byBucket := map[string]domain.AgedAccountsRow{}
	for _, r := range rows {
		byBucket[r.Bucket] = r
	}
	require.NotNil(t, byBucket["Current"].Amount)
	assert.InDelta(t, 30.0, *byBucket["Current"].Amount, 0.001)
	assert.InDelta(t, 5.0, *byBucket["1-30"].Amount, 0.001)
	assert.InDelta(t, 3.0, *byBucket["31-60"].Amount, 0.001)
	assert.InDelta(t, 1.0, *byBucket["91+"].Amount, 0.001)
	assert.InDelta(t, -2.0, *byBucket["Unapplied Credit"].Amount, 0.001)

	// The Totals row is excluded from every sum; the grand total is
	// shared across buckets.
	require.NotNil(t, byBucket["Current"].Total)
	assert.InDelta(t, 37.0, *byBucket["Current"].Total, 0.001)
	assert.InDelta(t, 37.0, *byBucket["91+"].Total, 0.001)
}

func TestExtractTabularEmptyInput(t *testing.T) {
	_, _, err := New(nil).ExtractDropList("")
	assert.ErrorIs(t, err, ErrEmptyDocument)
	_, _, err = New(nil).ExtractAgedAccounts("")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
