// Command launchreplay replays launch scenarios against the appdelegate
// dispatch logic and reports what the application received.
//
// Usage:
//
//	launchreplay run [--format text|json] scenario.yaml...
//
// Delegate settings come from APPDELEGATE_* environment variables.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takimoto3/appdelegate/config"
	"github.com/takimoto3/appdelegate/internal/logging"
	"github.com/takimoto3/appdelegate/internal/replay"
)

// Exit codes.
const (
	exitSuccess      = 0
	exitFailure      = 1 // a scenario did not meet its expectations
	exitCommandError = 2 // invalid arguments, configuration or scenario files
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitCommandError
}

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "launchreplay:", err)
	}
	os.Exit(exitCode(err))
}

type runOptions struct {
	format string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "launchreplay",
		Short:         "Replay application launch scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.AddCommand(newRunCommand())
	return cmd
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run scenario.yaml...",
		Short: "Run scenarios and check their expectations",
		Long: `Run each scenario against a recording application on an in-memory
platform and check the expectations it lists.

Exit codes:
  0 - every scenario passed
  1 - at least one scenario failed its expectations
  2 - command error (unreadable scenario, invalid configuration)`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" {
				return &exitError{code: exitCommandError, err: fmt.Errorf("invalid format %q: must be text or json", opts.format)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json)")
	return cmd
}

func runScenarios(cmd *cobra.Command, opts *runOptions, paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &exitError{code: exitCommandError, err: err}
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return &exitError{code: exitCommandError, err: err}
	}
	defer func() { _ = logger.Sync() }()

	results := make([]*replay.Result, 0, len(paths))
	for _, path := range paths {
		s, err := replay.LoadScenario(path)
		if err != nil {
			return &exitError{code: exitCommandError, err: fmt.Errorf("%s: %w", path, err)}
		}
		res, err := replay.Run(s, logger, cfg.Options(nil)...)
		if err != nil {
			return &exitError{code: exitCommandError, err: fmt.Errorf("%s: %w", path, err)}
		}
		results = append(results, res)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return &exitError{code: exitCommandError, err: err}
		}
	} else {
		writeText(cmd.OutOrStdout(), results)
	}

	failed := 0
	for _, res := range results {
		if !res.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return &exitError{code: exitFailure, err: fmt.Errorf("%d of %d scenarios failed", failed, len(results))}
	}
	return nil
}

func writeText(w io.Writer, results []*replay.Result) {
	for _, res := range results {
		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s %s\n", status, res.Scenario)
		if res.Launched {
			fmt.Fprintf(w, "  launch: will=%t did=%t item=%s\n", res.WillFinish, res.DidFinish, res.LaunchItem)
		}
		if len(res.Calls) > 0 {
			fmt.Fprintf(w, "  calls: %s\n", strings.Join(res.Calls, ", "))
		}
		if len(res.Completions) > 0 {
			fmt.Fprintf(w, "  completions: %s\n", strings.Join(res.Completions, ", "))
		}
		if res.Faults > 0 {
			fmt.Fprintf(w, "  faults: %d\n", res.Faults)
		}
		for _, f := range res.Failures {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}
