// Package runlog keeps a CSV audit trail of derivation runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one derivation run.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Command   string
	Document  string
	Year      string
	Failed    int
	Findings  int
	Details   string
}

// Header is the CSV header of a run log.
const Header = "timestamp,run_id,command,document,year,failed_sections,findings,details"

const (
	numFields   = 8
	colTime     = 0
	colRunID    = 1
	colCommand  = 2
	colDocument = 3
	colYear     = 4
	colFailed   = 5
	colFindings = 6
	colDetails  = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colCommand] = e.Command
	row[colDocument] = e.Document
	row[colYear] = e.Year
	row[colFailed] = strconv.Itoa(e.Failed)
	row[colFindings] = strconv.Itoa(e.Findings)
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	failed, err := strconv.Atoi(record[colFailed])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing failed_sections %q: %w", record[colFailed], err)
	}
	findings, err := strconv.Atoi(record[colFindings])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing findings %q: %w", record[colFindings], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Command:   record[colCommand],
		Document:  record[colDocument],
		Year:      record[colYear],
		Failed:    failed,
		Findings:  findings,
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to the log at path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
