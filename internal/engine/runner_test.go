package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/jira-report/internal/model"
)

type fakeSearcher struct {
	results map[string]*model.SearchResult
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, status string) (*model.SearchResult, error) {
	f.calls = append(f.calls, status)
	if res, ok := f.results[status]; ok {
		return res, nil
	}
	return nil, &StatusError{Code: http.StatusBadRequest, Status: "400 Bad Request"}
}

type recordingWriter struct {
	reports []model.StatusReport
	closed  bool
}

func (r *recordingWriter) Write(rep model.StatusReport) error {
	r.reports = append(r.reports, rep)
	return nil
}

func (r *recordingWriter) Close() error {
	r.closed = true
	return nil
}

func TestSelectStatuses(t *testing.T) {
	statuses := model.StatusMap{"open": "Open", "done": "Done", "qa": "In QA"}

	tests := []struct {
		name string
		arg  string
		want []string
	}{
		{"all", "all", []string{"Done", "Open", "In QA"}},
		{"all any case", " ALL ", []string{"Done", "Open", "In QA"}},
		{"all in list", "all,open", []string{"Open"}},
		{"explicit empty selects nothing", "", nil},
		{"list keeps order", "qa,open", []string{"In QA", "Open"}},
		{"lower-cased lookup", "OPEN,Done", []string{"Open", "Done"}},
		{"unknown skipped", "open,bogus", []string{"Open"}},
		{"only unknown", "bogus", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectStatuses(statuses, tt.arg))
		})
	}
}

func TestReport_Output(t *testing.T) {
	cfg := testConfig("http://unused")
	s := &fakeSearcher{results: map[string]*model.SearchResult{
		"Open": {Total: 2, Issues: []model.Issue{
			{Key: "A-1", Fields: model.IssueFields{Summary: "x", Priority: model.Priority{ID: "2"}}},
			{Key: "A-2", Fields: model.IssueFields{Summary: "y", Priority: model.Priority{ID: "5"}}},
		}},
	}}
	rec := &recordingWriter{}

	var out bytes.Buffer
	err := Report(context.Background(), s, cfg, &out, []string{"Open", "Done"}, rec)
	require.NoError(t, err)

	want := `"PROJ1","PROJ2"

Open:
Number of issues: 2
A-1 : https://jira.example/browse/A-1 : 2 : x
A-2 : https://jira.example/browse/A-2 : 5 : y
Done:
! Number of issues: 0
`
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"Open", "Done"}, s.calls)

	require.Len(t, rec.reports, 2)
	assert.True(t, rec.reports[0].OK)
	assert.Equal(t, 2, rec.reports[0].Total)
	assert.False(t, rec.reports[1].OK)
}

func TestReport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeSearcher{}

	err := Report(ctx, s, testConfig("http://unused"), &bytes.Buffer{}, []string{"Open"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.calls)
}

func TestRun_WithExports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("jql") == `project in ("PROJ1","PROJ2") AND status in ("Open")` {
			_, _ = w.Write([]byte(`{"total":1,"issues":[{"key":"A-1","fields":{"priority":{"id":"1"},"summary":"urgent"}}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.jsonl")
	csvPath := filepath.Join(dir, "issues.csv")

	var out bytes.Buffer
	err := Run(context.Background(), testConfig(server.URL), Options{
		Status:  "all",
		Out:     &out,
		JSONOut: jsonPath,
		CSVOut:  csvPath,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Done:\n! Number of issues: 0\n")
	assert.Contains(t, out.String(), "Open:\nNumber of issues: 1\n")

	f, err := os.Open(jsonPath)
	require.NoError(t, err)
	defer f.Close()
	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Done", lines[0]["status"])
	assert.Equal(t, false, lines[0]["ok"])
	assert.Equal(t, "Open", lines[1]["status"])
	assert.Equal(t, true, lines[1]["ok"])

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Open", "A-1", "https://jira.example/browse/A-1", "1", "Highest", "urgent"}, records[1])
}

func TestRun_BadExportPath(t *testing.T) {
	err := Run(context.Background(), testConfig("http://unused"), Options{
		Out:     &bytes.Buffer{},
		JSONOut: filepath.Join(t.TempDir(), "missing", "report.jsonl"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to init JSON writer")
}
