// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package adb drives the Android Debug Bridge executable. The wire protocol is
// never spoken directly: every operation is one invocation of the adb tool
// whose combined output is inspected.
package adb

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
)

// CommandRunner executes an external program and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Mode is the boot mode a device reports in `adb devices`.
type Mode string

const (
	ModeNormal   Mode = "device"
	ModeRecovery Mode = "recovery"
)

// Device is one line of `adb devices`.
type Device struct {
	Serial string
	Mode   Mode
}

var (
	deviceLine = regexp.MustCompile(`^(\S+)\s+(device|recovery|offline|unauthorized|sideload|bootloader)\b`)
	rootID     = regexp.MustCompile(`uid=0\(root\)`)
	pushed     = regexp.MustCompile(`\b1 file pushed\b|\b0 skipped\b`)
)

// Client issues adb commands against one device.
type Client struct {
	path   string
	serial string
	runner CommandRunner
}

// New returns a Client for the adb executable at path. serial may be empty when
// a single device is attached. A nil runner uses ExecRunner.
func New(path, serial string, runner CommandRunner) *Client {
	if path == "" {
		path = "adb"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{path: path, serial: serial, runner: runner}
}

// Command runs adb with args and returns its trimmed output.
func (c *Client) Command(ctx context.Context, args ...string) (string, error) {
	full := args
	if c.serial != "" {
		full = append([]string{"-s", c.serial}, args...)
	}
	ctxlog.FromContext(ctx).Debug("Running adb", "args", full)

	out, err := c.runner.Run(ctx, c.path, full...)
	text := strings.TrimSpace(string(out))
	if err != nil {
		if text != "" {
			return text, errors.Wrapf(err, "adb %s: %s", strings.Join(args, " "), text)
		}
		return text, errors.Wrapf(err, "adb %s", strings.Join(args, " "))
	}
	return text, nil
}

// Devices lists the attached devices.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.runner.Run(ctx, c.path, "devices")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}
	return parseDevices(string(out)), nil
}

func parseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		m := deviceLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		devices = append(devices, Device{Serial: m[1], Mode: Mode(m[2])})
	}
	return devices
}

// Mode returns the mode of the client's device.
func (c *Client) Mode(ctx context.Context) (Mode, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return "", err
	}
	for _, d := range devices {
		if c.serial == "" || d.Serial == c.serial {
			return d.Mode, nil
		}
	}
	return "", errors.New("no device attached")
}

// Root restarts adbd with root permissions.
func (c *Client) Root(ctx context.Context) error {
	_, err := c.Command(ctx, "root")
	return err
}

// IsRoot reports whether shell commands run as root.
func (c *Client) IsRoot(ctx context.Context) (bool, error) {
	out, err := c.Command(ctx, "shell", "id")
	if err != nil {
		return false, err
	}
	return rootID.MatchString(out), nil
}

// Remount remounts the system partitions read-write.
func (c *Client) Remount(ctx context.Context) error {
	_, err := c.Command(ctx, "remount")
	return err
}

// Reboot reboots the device into mode. An empty mode is a normal reboot.
func (c *Client) Reboot(ctx context.Context, mode string) error {
	args := []string{"reboot"}
	if mode != "" {
		args = append(args, mode)
	}
	_, err := c.Command(ctx, args...)
	return err
}

// Push copies a local file to the device and reports whether adb confirmed it.
func (c *Client) Push(ctx context.Context, src, dst string) (bool, error) {
	out, err := c.Command(ctx, "push", src, dst)
	if err != nil {
		return false, err
	}
	return pushed.MatchString(out), nil
}

// Shell runs a command line on the device. The line is split with shell
// quoting rules.
func (c *Client) Shell(ctx context.Context, line string) (string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return "", errors.Wrapf(err, "invalid shell command %q", line)
	}
	if len(words) == 0 {
		return "", errors.New("empty shell command")
	}
	return c.Command(ctx, append([]string{"shell"}, words...)...)
}
