/*
PURPOSE:
  High-level runner that queries each selected status in turn
  and prints the report.

REQUIREMENTS:
  User-specified:
  - "all" queries every configured status.
  - A comma list is lower-cased and looked up; unknown keys are skipped.
  - Strictly sequential, one request per status.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine.Client, internal/output

ERROR HANDLING:
  - A failed search is logged and reported as "! Number of issues: 0".
  - Write errors on the report or the exports abort the run.

USAGE:
  err := engine.Run(ctx, cfg, engine.Options{Status: "open,done", Out: os.Stdout})
*/

package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/daryltucker/jira-report/internal/config"
	"github.com/daryltucker/jira-report/internal/model"
	"github.com/daryltucker/jira-report/internal/output"
)

// AllStatuses selects every configured status.
const AllStatuses = "all"

// Searcher performs one status search.
type Searcher interface {
	Search(ctx context.Context, status string) (*model.SearchResult, error)
}

// ReportWriter receives every StatusReport, e.g. the CSV and JSON exports.
type ReportWriter interface {
	Write(model.StatusReport) error
	Close() error
}

// Options controls a single run.
type Options struct {
	Status  string // "all" or comma-separated keys; the CLI defaults it to "all"
	Out     io.Writer
	JSONOut string
	CSVOut  string
}

// SelectStatuses maps the --status argument to status values to query.
// Only a bare "all" selects every status; inside a list it is just an unknown key.
func SelectStatuses(statuses model.StatusMap, arg string) []string {
	if strings.EqualFold(strings.TrimSpace(arg), AllStatuses) {
		return statuses.Values()
	}

	var selected []string
	for _, t := range strings.Split(arg, ",") {
		key := strings.ToLower(strings.TrimSpace(t))
		value, ok := statuses[key]
		if !ok {
			output.Logger.Debug("Skipping unknown status", "status", t)
			continue
		}
		selected = append(selected, value)
	}
	return selected
}

// Run queries the selected statuses with a new Client and prints the report.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	writers, err := openWriters(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				output.Logger.Error("Failed to close export", "error", err)
			}
		}
	}()

	return Report(ctx, New(cfg), cfg, opts.Out, SelectStatuses(cfg.Statuses, opts.Status), writers...)
}

// Report runs the searches for statuses and writes the console report to out.
func Report(ctx context.Context, s Searcher, cfg *config.Config, out io.Writer, statuses []string, writers ...ReportWriter) error {
	if _, err := fmt.Fprintf(out, "%s\n\n", cfg.Projects.Join()); err != nil {
		return err
	}

	for _, status := range statuses {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := s.Search(ctx, status)
		if err != nil {
			output.Logger.Warn("Search failed", "status", status, "error", err)
		}

		if _, err := fmt.Fprintf(out, "%s:\n", status); err != nil {
			return err
		}
		if err := output.PrintReport(out, res, cfg.BrowseURL); err != nil {
			return err
		}

		report := model.NewStatusReport(status, res)
		for _, w := range writers {
			if err := w.Write(report); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
		}
	}
	return nil
}

func openWriters(cfg *config.Config, opts Options) ([]ReportWriter, error) {
	var writers []ReportWriter
	if opts.JSONOut != "" {
		w, err := output.NewJSONWriter(opts.JSONOut)
		if err != nil {
			return nil, fmt.Errorf("failed to init JSON writer at %s: %w", opts.JSONOut, err)
		}
		writers = append(writers, w)
	}
	if opts.CSVOut != "" {
		w, err := output.NewCSVWriter(opts.CSVOut, cfg.BrowseURL)
		if err != nil {
			for _, open := range writers {
				open.Close()
			}
			return nil, fmt.Errorf("failed to init CSV writer at %s: %w", opts.CSVOut, err)
		}
		writers = append(writers, w)
	}
	return writers, nil
}
