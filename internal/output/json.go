/*
PURPOSE:
  Writes per-status search outcomes to a JSON Lines file (NDJSON).

REQUIREMENTS:
  Implementation-discovered:
  - Machine-readable export of the report (--json-out).
  - A failed search is written with "ok": false.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.StatusReport

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.

USAGE:
  w, err := output.NewJSONWriter("report.jsonl")
  w.Write(report)
  w.Close()
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/jira-report/internal/model"
)

// JSONWriter handles writing reports to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single report as a JSON line.
func (jw *JSONWriter) Write(r model.StatusReport) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
