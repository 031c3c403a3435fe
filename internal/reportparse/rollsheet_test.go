package reportparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rollSheetFixture = `<html><body>
<h1>Roll Sheets</h1>
<script>var report = {"startDate":"2026-02-01","endDate":"2026-02-07"};</script>
<div class="condensed-schedule">
  <div>
    <h3>Barracudas on Monday: 2/2</h3>
    <table>
      <tr><td>Schedule:</td><td>Monday 4:00 pm - 4:30 pm</td></tr>
      <tr><td>Instructors:</td><td><ul><li>Smith, Jane</li><li>Doe, John (sub)</li></ul></td></tr>
    </table>
  </div>
  <div>
    <h3>Minnows with Amy Pond</h3>
    <table>
      <tr><td>Schedule:</td><td>Tuesday 9:00 am - 9:45 am</td></tr>
    </table>
    <div class="class-date">2/3</div>
  </div>
  <div>
    <h3></h3>
  </div>
</div>
</body></html>`

func TestParseRollSheet(t *testing.T) {
	classes, err := New(nil).ParseRollSheet(rollSheetFixture)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	barracudas := classes[0]
	assert.Equal(t, "Barracudas", barracudas.ClassName)
	assert.Equal(t, "2026-02-02", barracudas.ClassDate)
	assert.Equal(t, "16:00:00", barracudas.StartTime)
	assert.Equal(t, "16:30:00", barracudas.EndTime)
	assert.Equal(t, "Monday 4:00 pm - 4:30 pm", barracudas.ScheduleText)
	assert.Equal(t, "Jane Smith", barracudas.ScheduledInstructor)
	assert.Equal(t, "John Doe", barracudas.ActualInstructor)
	assert.True(t, barracudas.IsSub)

	minnows := classes[1]
	assert.Equal(t, "Minnows", minnows.ClassName)
	assert.Equal(t, "2026-02-03", minnows.ClassDate)
	assert.Equal(t, "09:00:00", minnows.StartTime)
	assert.Equal(t, "09:45:00", minnows.EndTime)
	// No instructor list: the header's "with" suffix is the fallback,
	// so scheduled and actual agree and no substitution registers.
	assert.Equal(t, "Amy Pond", minnows.ScheduledInstructor)
	assert.Equal(t, "Amy Pond", minnows.ActualInstructor)
	assert.False(t, minnows.IsSub)
}

func TestParseRollSheetDedup(t *testing.T) {
	// A document with a verbatim-duplicated block collapses to the
	// same set, and parsing twice yields identical results.
	duplicated := rollSheetFixture + rollSheetFixture
	once, err := New(nil).ParseRollSheet(rollSheetFixture)
	require.NoError(t, err)
	twice, err := New(nil).ParseRollSheet(duplicated)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	again, err := New(nil).ParseRollSheet(rollSheetFixture)
	require.NoError(t, err)
	assert.Equal(t, once, again)
}

func TestParseRollSheetEmptyInput(t *testing.T) {
	_, err := New(nil).ParseRollSheet("")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseRollSheetNoBlocks(t *testing.T) {
	classes, err := New(nil).ParseRollSheet("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestDeriveClassName(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Barracudas on Monday: 2/2", "Barracudas"},
		{"Barracudas on monday", "Barracudas"},
		{"Minnows with Amy Pond", "Minnows"},
		// "on <weekday>" outranks "with" when both are present.
		{"Sharks with Bob on Friday: 1/9", "Sharks with Bob"},
		{"Otters Level 2", "Otters Level 2"},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveClassName(tt.header), "header %q", tt.header)
	}
}

func TestResolveInstructors(t *testing.T) {
	t.Run("scheduled plus sub", func(t *testing.T) {
		res := resolveInstructors([]string{"Smith, Jane", "Doe, John (sub)"})
		assert.Equal(t, "Jane Smith", res.Scheduled)
		assert.Equal(t, "John Doe", res.Actual)
		assert.True(t, res.IsSub)
	})
	t.Run("single name no marker", func(t *testing.T) {
		res := resolveInstructors([]string{"Smith, Jane"})
		assert.Equal(t, "Jane Smith", res.Scheduled)
		assert.Equal(t, "Jane Smith", res.Actual)
		assert.False(t, res.IsSub)
	})
	t.Run("asterisk marks the sub", func(t *testing.T) {
		res := resolveInstructors([]string{"Smith, Jane", "Doe, John *"})
		assert.Equal(t, "Jane Smith", res.Scheduled)
		assert.Equal(t, "John Doe", res.Actual)
		assert.True(t, res.IsSub)
	})
	t.Run("sub listed first", func(t *testing.T) {
		res := resolveInstructors([]string{"Doe, John (sub)", "Smith, Jane"})
		assert.Equal(t, "Jane Smith", res.Scheduled)
		assert.Equal(t, "John Doe", res.Actual)
		assert.True(t, res.IsSub)
	})
	t.Run("empty list", func(t *testing.T) {
		res := resolveInstructors(nil)
		assert.Empty(t, res.Scheduled)
		assert.Empty(t, res.Actual)
		assert.False(t, res.IsSub)
	})
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input      string
		start, end string
	}{
		{"4:00 pm - 4:30 pm", "16:00:00", "16:30:00"},
		{"9 am - 10:15 am", "09:00:00", "10:15:00"},
		{"11:30am-12:00pm", "11:30:00", "12:00:00"},
		{"4:00 pm – 4:30 pm", "16:00:00", "16:30:00"},
		{"no times here", "", ""},
	}
	for _, tt := range tests {
		start, end := parseTimeRange(tt.input)
		assert.Equal(t, tt.start, start, "input %q", tt.input)
		assert.Equal(t, tt.end, end, "input %q", tt.input)
	}
}

func TestSniffReportYear(t *testing.T) {
	assert.Equal(t, 2026, sniffReportYear(`{"startDate":"2026-02-01"}`))
	assert.Equal(t, 0, sniffReportYear("no embedded state"))
}
