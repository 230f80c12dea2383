package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		RunID:     "2f1c7a86-8a53-4b1e-9d55-0c7c0d1f2a10",
		Command:   "export",
		Document:  "exempel.json",
		Year:      "0",
		Failed:    1,
		Findings:  0,
		Details:   "history: runtime error",
	}
}

func TestAppend_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "runs.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Command = "check"
	e2.Findings = 3
	require.NoError(t, Append(path, []Entry{e2}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "export", entries[0].Command)
	assert.Equal(t, 3, entries[1].Findings)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"x"})
	assert.Error(t, err)

	row := MarshalEntry(testEntry())
	row[colTime] = "yesterday"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "parsing timestamp")

	row = MarshalEntry(testEntry())
	row[colFailed] = "many"
	_, err = UnmarshalEntry(row)
	assert.ErrorContains(t, err, "failed_sections")
}

func TestDetailsWithCommasRoundTrip(t *testing.T) {
	e := testEntry()
	e.Details = `summary: "x", history: y`
	path := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, Append(path, []Entry{e}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.Details, entries[0].Details)
}
