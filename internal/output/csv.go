/*
PURPOSE:
  Writes found issues to a CSV file, one row per issue.

REQUIREMENTS:
  Implementation-discovered:
  - Spreadsheet-friendly export next to the console report (--csv-out).
  - Failed searches produce no rows; the console report marks them.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.StatusReport

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("issues.csv", browseURL)
  w.Write(report)
  w.Close()
*/

package output

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/daryltucker/jira-report/internal/model"
)

// CSVWriter handles writing issues to a CSV file.
type CSVWriter struct {
	file      *os.File
	writer    *csv.Writer
	browseURL string
	mu        sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path, browseURL string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{"status", "key", "url", "priority_id", "priority", "summary"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:      f,
		writer:    w,
		browseURL: browseURL,
	}, nil
}

// Write writes one row per issue of the report.
func (cw *CSVWriter) Write(r model.StatusReport) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	for _, is := range r.Issues {
		record := []string{
			r.Status,
			is.Key,
			cw.browseURL + is.Key,
			is.Fields.Priority.ID,
			model.Priorities[is.Fields.Priority.ID],
			is.Fields.Summary,
		}
		if err := cw.writer.Write(record); err != nil {
			return err
		}
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
