/*
PURPOSE:
  Prints the console report and the status/priority help tables.

REQUIREMENTS:
  User-specified:
  - "Number of issues: <total>" then "<key> : <browse url><key> : <priority id> : <summary>".
  - A failed search prints "! Number of issues: 0".
  - Help tables print key:value lines.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli
  - Consumes: internal/model

ERROR HANDLING:
  - Returns the first write error.

USAGE:
  output.PrintReport(os.Stdout, res, cfg.BrowseURL)
*/

package output

import (
	"fmt"
	"io"

	"github.com/daryltucker/jira-report/internal/model"
)

// PrintReport writes the issue count and one line per issue.
// A nil result means the search failed and is marked with a leading "!".
func PrintReport(w io.Writer, res *model.SearchResult, browseURL string) error {
	if res == nil {
		_, err := fmt.Fprintln(w, "! Number of issues: 0")
		return err
	}
	if _, err := fmt.Fprintf(w, "Number of issues: %d\n", res.Total); err != nil {
		return err
	}
	for _, is := range res.Issues {
		if _, err := fmt.Fprintf(w, "%s : %s%s : %s : %s\n",
			is.Key, browseURL, is.Key, is.Fields.Priority.ID, is.Fields.Summary); err != nil {
			return err
		}
	}
	return nil
}

// PrintStatuses writes key:value for every configured status.
func PrintStatuses(w io.Writer, statuses model.StatusMap) error {
	for _, k := range statuses.Keys() {
		if _, err := fmt.Fprintf(w, "%s:%s\n", k, statuses[k]); err != nil {
			return err
		}
	}
	return nil
}

// PrintPriorities writes id:name for every Jira priority.
func PrintPriorities(w io.Writer) error {
	for _, id := range model.PriorityIDs() {
		if _, err := fmt.Fprintf(w, "%s:%s\n", id, model.Priorities[id]); err != nil {
			return err
		}
	}
	return nil
}
