// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/specialistvlad/hilseq/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// usageArgs turns positional-argument validation failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// options are the persistent flags shared by every command.
type options struct {
	testcasesDir    string
	resultsDir      string
	blocksPath      string
	hardwarePath    string
	logFormat       string
	logLevel        string
	healthcheckPort int

	outW io.Writer
	errW io.Writer
}

// config validates the flags into an app configuration. Invalid values are
// usage errors.
func (o *options) config(mutate func(*app.Config)) (*app.Config, error) {
	raw := app.Config{
		TestcasesDir:    o.testcasesDir,
		ResultsDir:      o.resultsDir,
		BlocksPath:      o.blocksPath,
		HardwarePath:    o.hardwarePath,
		LogFormat:       strings.ToLower(o.logFormat),
		LogLevel:        strings.ToLower(o.logLevel),
		HealthcheckPort: o.healthcheckPort,
	}
	if mutate != nil {
		mutate(&raw)
	}
	cfg, err := app.NewConfig(raw)
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// newApp builds the App for one command. Logs go to the error stream so
// command output stays machine readable.
func (o *options) newApp(mutate func(*app.Config)) (*app.App, error) {
	cfg, err := o.config(mutate)
	if err != nil {
		return nil, err
	}
	return app.NewApp(o.errW, cfg)
}

// NewRootCmd assembles the hilseq command tree writing to outW and errW.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	o := &options{outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "hilseq",
		Short: "hilseq - compose and run hardware-in-the-loop test sequences",
		Long: `hilseq assembles test sequences out of registered blocks (power supply,
relays, adb, timers...), stores them as JSON test cases and runs them,
writing an HTML report of every step.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&o.testcasesDir, "testcases-dir", "testcases", "Directory holding the test-case JSON files.")
	pf.StringVar(&o.resultsDir, "results-dir", "results", "Directory the HTML reports are written to.")
	pf.StringVar(&o.blocksPath, "blocks-path", "", "Directory of block manifests to use instead of the built-in ones.")
	pf.StringVar(&o.hardwarePath, "hardware", "", "Hardware configuration file (HCL).")
	pf.StringVar(&o.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&o.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&o.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server during runs. 0 is disabled.")

	root.AddCommand(
		newBlocksCmd(o),
		newListCmd(o),
		newNewCmd(o),
		newRunCmd(o),
		newRemoveCmd(o),
	)
	return root
}

// Execute runs the command line in args. Usage errors are returned as an
// ExitError with code 2.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCmd(outW, errW)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return err
}
