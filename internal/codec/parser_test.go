package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todobar/internal/model"
)

const twoRecords = `[
  {
    "description": "tester",
    "due-date": {"year": 2019, "month": 0, "day": 15, "hour": 23, "minute": 59},
    "priority": {"urgent": true, "important": false},
    "status": "IN_PROGRESS",
    "tags": [{"name": "tag4"}, {"name": "cpsc210"}]
  },
  {
    "description": "second",
    "due-date": null,
    "priority": {"urgent": false, "important": false},
    "status": "TODO",
    "tags": []
  }
]`

func TestParseBatch(t *testing.T) {
	tasks, err := Parse([]byte(twoRecords))
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	first := tasks[0]
	assert.Equal(t, "tester", first.Description())
	assert.Equal(t, model.StatusInProgress, first.Status())
	assert.True(t, first.Priority().Urgent())
	assert.False(t, first.Priority().Important())

	due, ok := first.DueDate()
	require.True(t, ok)
	assert.Equal(t, time.January, due.Time().Month())
	assert.Equal(t, 15, due.Time().Day())
	assert.Equal(t, 23, due.Time().Hour())

	has, err := first.ContainsTag("cpsc210")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Len(t, first.Tags(), 2)

	_, ok = tasks[1].DueDate()
	assert.False(t, ok)
	assert.Empty(t, tasks[1].Tags())
}

func TestParseMonthIsZeroBased(t *testing.T) {
	task, ok := ParseTask(`{
		"description": "december",
		"due-date": {"year": 2024, "month": 11, "day": 31, "hour": 9, "minute": 30},
		"priority": {"urgent": false, "important": false},
		"status": "TODO"
	}`)
	require.True(t, ok)
	due, _ := task.DueDate()
	assert.Equal(t, time.December, due.Time().Month())
	assert.Equal(t, 2024, due.Time().Year())
}

func TestParseMonthRollsOver(t *testing.T) {
	task, ok := ParseTask(`{
		"description": "rolled",
		"due-date": {"year": 2024, "month": 12, "day": 1, "hour": 0, "minute": 0},
		"priority": {"urgent": false, "important": false},
		"status": "TODO"
	}`)
	require.True(t, ok)
	due, _ := task.DueDate()
	assert.Equal(t, time.January, due.Time().Month())
	assert.Equal(t, 2025, due.Time().Year())
}

func TestParseRejectsBadRecords(t *testing.T) {
	data := `[
	  {"description": "no status", "priority": {"urgent": false, "important": false}},
	  {"description": "ok", "priority": {"urgent": false, "important": false}, "status": "DONE"},
	  {"description": "", "priority": {"urgent": false, "important": false}, "status": "TODO"},
	  {"description": "bad status", "priority": {"urgent": false, "important": false}, "status": "LATER"},
	  {"description": "bad priority", "priority": {"urgent": "yes", "important": false}, "status": "TODO"},
	  {"description": "bad date", "due-date": {"year": 2024}, "priority": {"urgent": false, "important": false}, "status": "TODO"},
	  {"description": "bad tags", "priority": {"urgent": false, "important": false}, "status": "TODO", "tags": "home"},
	  {"description": "bad progress", "priority": {"urgent": false, "important": false}, "status": "TODO", "progress": 101},
	  {"description": "bad estimate", "priority": {"urgent": false, "important": false}, "status": "TODO", "estimated-time-to-complete": -1},
	  {"description": "float estimate", "priority": {"urgent": false, "important": false}, "status": "TODO", "estimated-time-to-complete": 2.5},
	  "not an object",
	  null
	]`

	report, err := ParseReport([]byte(data))
	require.NoError(t, err)
	require.Len(t, report.Tasks, 1)
	assert.Equal(t, "ok", report.Tasks[0].Description())
	assert.Equal(t, model.StatusDone, report.Tasks[0].Status())

	require.Len(t, report.Rejected, 11)
	assert.Equal(t, 0, report.Rejected[0].Index)
	assert.Equal(t, 2, report.Rejected[1].Index)
	assert.Equal(t, "progress", report.Rejected[6].Path)
}

func TestParseMissingStatusDropsOnlyThatRecord(t *testing.T) {
	data := `[
	  {"description": "kept", "priority": {"urgent": false, "important": true}, "status": "UP_NEXT"},
	  {"description": "dropped", "priority": {"urgent": false, "important": true}}
	]`
	tasks, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "kept", tasks[0].Description())
}

func TestParseSkipsMalformedTags(t *testing.T) {
	data := `[{
	  "description": "tagged",
	  "priority": {"urgent": false, "important": false},
	  "status": "TODO",
	  "tags": [{"name": "home"}, {"name": ""}, {"label": "x"}, 7, {"name": 3}, {"name": "work"}]
	}]`
	report, err := ParseReport([]byte(data))
	require.NoError(t, err)
	require.Len(t, report.Tasks, 1)
	assert.Equal(t, 4, report.SkippedTags)

	var names []string
	for _, tag := range report.Tasks[0].Tags() {
		names = append(names, tag.Name())
	}
	assert.Equal(t, []string{"home", "work"}, names)
}

func TestParseOptionalFields(t *testing.T) {
	task, ok := ParseTask(map[string]any{
		"description":                "with extras",
		"priority":                   map[string]any{"urgent": true, "important": true},
		"status":                     "TODO",
		"progress":                   40,
		"estimated-time-to-complete": 6,
	})
	require.True(t, ok)
	assert.Equal(t, 40, task.Progress())
	assert.Equal(t, 6, task.EstimatedTimeToComplete())
	_, hasDue := task.DueDate()
	assert.False(t, hasDue)

	bare, ok := ParseTask(`{"description": "bare", "priority": {"urgent": false, "important": false}, "status": "TODO"}`)
	require.True(t, ok)
	assert.Equal(t, 0, bare.Progress())
	assert.Equal(t, 0, bare.EstimatedTimeToComplete())
}

func TestValidateTaskReportsPath(t *testing.T) {
	_, err := ValidateTask(`{"description": "x", "priority": {"urgent": false}, "status": "TODO"}`)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, -1, recErr.Index)
	assert.Equal(t, "priority", recErr.Path)
}

func TestParseNotArray(t *testing.T) {
	_, err := Parse([]byte(`{"description": "x"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Parse([]byte(`[{`))
	assert.ErrorIs(t, err, ErrNotArray)

	tasks, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestJSONPointerToPath(t *testing.T) {
	assert.Equal(t, "", jsonPointerToPath(""))
	assert.Equal(t, "due-date.month", jsonPointerToPath("/due-date/month"))
	assert.Equal(t, "tags[2].name", jsonPointerToPath("/tags/2/name"))
	assert.Equal(t, "a/b", jsonPointerToPath("/a~1b"))
}
