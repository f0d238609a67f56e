/*
PURPOSE:
  Defines the core data structures used throughout Jira Report.
  These models represent the resolved filters and the search results.

REQUIREMENTS:
  User-specified:
  - Statuses are short keys mapped to the tracker's display value.
  - Projects are quoted for direct use in a JQL clause.
  - Priorities are a fixed id -> name table.

  Implementation-discovered:
  - Need JSON tags matching the Jira search response.
  - A failed search is represented by a nil *SearchResult.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

USAGE:
  statuses := model.StatusMap{"open": "Open"}
  projects := model.ProjectList{`"PROJ"`}

RELATED FILES:
  - internal/output/report.go
  - internal/engine/client.go

MAINTENANCE:
  - Update when the report needs more issue fields.
*/

package model

import (
	"sort"
	"strings"
)

// StatusMap maps a lowercase mnemonic to the status value used in JQL.
type StatusMap map[string]string

// Keys returns the status keys in sorted order.
func (m StatusMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the status values ordered by their keys.
func (m StatusMap) Values() []string {
	values := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		values = append(values, m[k])
	}
	return values
}

// ProjectList holds project identifiers already wrapped in double quotes.
type ProjectList []string

// Join renders the list for a JQL `project in (...)` clause.
func (p ProjectList) Join() string {
	return strings.Join(p, ",")
}

// QuoteProject wraps a raw project identifier in double quotes.
func QuoteProject(id string) string {
	return `"` + id + `"`
}

// Priorities is the fixed Jira priority table, keyed by priority id.
var Priorities = map[string]string{
	"1": "Highest",
	"2": "High",
	"3": "Medium",
	"4": "Low",
	"5": "Lowest",
}

// PriorityIDs returns the priority ids in ascending order.
func PriorityIDs() []string {
	ids := make([]string, 0, len(Priorities))
	for id := range Priorities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SearchResult is the relevant subset of the Jira search response.
type SearchResult struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary  string   `json:"summary"`
	Priority Priority `json:"priority"`
}

type Priority struct {
	ID string `json:"id"`
}

// StatusReport is the outcome of querying a single status.
// Result is nil when the search failed.
type StatusReport struct {
	Status string        `json:"status"`
	OK     bool          `json:"ok"`
	Total  int           `json:"total"`
	Issues []Issue       `json:"issues,omitempty"`
	Result *SearchResult `json:"-"`
}

// NewStatusReport builds a StatusReport from a search outcome.
func NewStatusReport(status string, res *SearchResult) StatusReport {
	r := StatusReport{Status: status, Result: res}
	if res != nil {
		r.OK = true
		r.Total = res.Total
		r.Issues = res.Issues
	}
	return r
}
