// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"fmt"
	"time"

	"github.com/specialistvlad/hilseq/internal/app"
	"github.com/specialistvlad/hilseq/internal/runner"
	"github.com/spf13/cobra"
)

func newRunCmd(o *options) *cobra.Command {
	var halt string
	var stepTimeout time.Duration
	var uploadURL string

	cmd := &cobra.Command{
		Use:   "run NAME...",
		Short: "Run test cases and write an HTML report",
		Long: `Run one or more stored test cases as a single sequence. The containers of
every test case run in the order given. The command exits with status 1 when
any step failed.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := runner.ParseHaltPolicy(halt)
			if err != nil {
				return usageError(err)
			}
			a, err := o.newApp(func(cfg *app.Config) {
				cfg.Halt = policy
				cfg.StepTimeout = stepTimeout
				cfg.UploadURL = uploadURL
			})
			if err != nil {
				return err
			}
			defer a.Close()

			out, runErr := a.Run(cmd.Context(), args...)
			if out == nil || out.Result == nil {
				return runErr
			}
			printSummary(o, out)
			if runErr != nil {
				return runErr
			}
			if !out.Result.Passed() {
				_, failed, skipped := out.Result.Counts()
				return &ExitError{Code: 1, Message: fmt.Sprintf("test run failed: %d step(s) failed, %d test case(s) skipped", failed, skipped)}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&halt, "halt", "container", "What a failing step stops: 'container' or 'run'.")
	cmd.Flags().DurationVar(&stepTimeout, "step-timeout", 0, "Maximum duration of a single step. 0 is unlimited.")
	cmd.Flags().StringVar(&uploadURL, "upload-url", "", "Pre-signed URL the HTML report is uploaded to.")
	return cmd
}

func printSummary(o *options, out *app.RunReport) {
	var rows [][]string
	for _, c := range out.Result.Containers {
		if c.Skipped {
			rows = append(rows, []string{c.Label(), "-", "SKIPPED", ""})
			continue
		}
		if len(c.Steps) == 0 {
			rows = append(rows, []string{c.Label(), "-", status(true), "no steps"})
		}
		for _, s := range c.Steps {
			rows = append(rows, []string{c.Label(), s.Label + ": " + s.Ref.Block, status(s.Success), s.Message})
		}
		if c.Interrupted {
			rows = append(rows, []string{c.Label(), "-", "INTERRUPTED", ""})
		}
	}
	table(o.outW, []string{"TEST CASE", "STEP", "RESULT", "MESSAGE"}, rows)

	fmt.Fprintf(o.outW, "\nOverall: %s\n", status(out.Result.Passed()))
	if out.ReportPath != "" {
		fmt.Fprintf(o.outW, "Report: %s\n", out.ReportPath)
	}
}

func status(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
