// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/specialistvlad/hilseq/internal/runner"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TestcasesDir string
	ResultsDir   string

	// BlocksPath is a directory of block manifests used instead of the
	// built-in ones. Empty means built-in.
	BlocksPath string

	// HardwarePath is the hardware HCL file. Empty means defaults.
	HardwarePath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Halt        runner.HaltPolicy
	StepTimeout time.Duration

	// UploadURL is a pre-signed URL each report is PUT to after a run.
	UploadURL string

	level slog.Level
}

var logLevels = map[string]slog.Level{
	"":      slog.LevelInfo,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewConfig validates cfg and resolves its log level.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TestcasesDir == "" {
		return nil, errors.New("TestcasesDir is a required configuration field and cannot be empty")
	}
	if cfg.ResultsDir == "" {
		return nil, errors.New("ResultsDir is a required configuration field and cannot be empty")
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	cfg.level = level
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.StepTimeout < 0 {
		return nil, errors.New("step timeout cannot be negative")
	}
	return &cfg, nil
}
