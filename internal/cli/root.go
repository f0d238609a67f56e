/*
PURPOSE:
  Defines the root Cobra command for the Jira Report CLI.
  Parses flags, validates configuration and dispatches to the
  help printers or the status queries.

REQUIREMENTS:
  User-specified:
  - No arguments: print usage, exit 0.
  - --statushelp / --priorityhelp print the tables.
  - --status [all|a,b,c] queries the selected statuses (default all).
  - Missing configuration exits with code 1 before any network call.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Logs must not mix into the report on stdout.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/jira-report/main.go
  - Calls: internal/config, internal/engine, internal/output

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

USAGE:
  jira-report --status open,review
  jira-report -s
  jira-report --statushelp

RELATED FILES:
  - cmd/jira-report/main.go
  - internal/engine/runner.go
*/

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/daryltucker/jira-report/internal/config"
	"github.com/daryltucker/jira-report/internal/engine"
	"github.com/daryltucker/jira-report/internal/output"
)

type rootOptions struct {
	cfgFile      string
	status       string
	statusHelp   bool
	priorityHelp bool
	verbose      bool
	logFile      string
	jsonOut      string
	csvOut       string
}

// Execute executes the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the root command with its flags.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jira-report",
		Short: "Show Jira tickets in particular states",
		Long: `Finds all Jira issues in the configured projects that are in the selected states.

Statuses and projects are read from the first non-empty source of:
  1. the "statuses" / "projects" lists of the config file
  2. the files .statuses (key:value per line) and .projects (one project per line)
  3. the env variables JIRA_STATUSES (key:value,...) and JIRA_PROJECTS (p1,p2,...)

Credentials come from JIRA_API_USER and JIRA_API_KEY.`,
		Example: `  # Query every configured status
  jira-report --status

  # Query only some statuses (keys as listed by --statushelp)
  jira-report --status open,review

  # Also export the results
  jira-report -s all --json-out report.jsonl --csv-out issues.csv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 && len(args) == 0 {
				return cmd.Help()
			}
			// "--status open" leaves "open" as a positional argument
			// because the flag value is optional.
			if len(args) == 1 {
				if !cmd.Flags().Changed("status") {
					return fmt.Errorf("unexpected argument %q", args[0])
				}
				opts.status = args[0]
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.status, "status", "s", engine.AllStatuses, "Comma separated string of states in Jira, or \"all\"")
	flags.Lookup("status").NoOptDefVal = engine.AllStatuses
	flags.BoolVar(&opts.statusHelp, "statushelp", false, "Print all Jira statuses")
	flags.BoolVar(&opts.priorityHelp, "priorityhelp", false, "Print all Jira priorities")
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./jira_report.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	flags.StringVar(&opts.jsonOut, "json-out", "", "Also write one JSON line per status to this file")
	flags.StringVar(&opts.csvOut, "csv-out", "", "Also write one CSV row per issue to this file")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	closer := output.Configure(output.LogOptions{
		Verbose: opts.verbose,
		File:    opts.logFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	defer closer.Close()

	// 1. Load Config
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Resolve(); err != nil {
		return err
	}

	// 2. Requirements
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.statusHelp:
		return output.PrintStatuses(out, cfg.Statuses)
	case opts.priorityHelp:
		return output.PrintPriorities(out)
	}

	// 3. Execution
	return engine.Run(cmd.Context(), cfg, engine.Options{
		Status:  opts.status,
		Out:     out,
		JSONOut: opts.jsonOut,
		CSVOut:  opts.csvOut,
	})
}
