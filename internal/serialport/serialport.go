// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package serialport opens the serial devices of a bench (relay board, trace
// interface) behind a small interface so block modules can be tested without
// hardware.
package serialport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"go.bug.st/serial"
)

// busyRetryDelay is how long Open waits before its single retry of a busy port.
const busyRetryDelay = time.Second

// Port is an open serial device.
type Port interface {
	io.ReadWriteCloser
}

// Opener opens a named port at a baud rate.
type Opener func(ctx context.Context, name string, baud int) (Port, error)

// Open opens name in 8N1 mode. A port that is busy or not yet accessible is
// retried once after a short delay.
func Open(ctx context.Context, name string, baud int) (Port, error) {
	logger := ctxlog.FromContext(ctx)
	mode := &serial.Mode{BaudRate: baud, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}

	port, err := serial.Open(name, mode)
	if retryable(err) {
		logger.Warn("Serial port busy, retrying", "port", name, "delay", busyRetryDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(busyRetryDelay):
		}
		port, err = serial.Open(name, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s%s: %w", name, portsHint(Ports), err)
	}
	logger.Debug("Serial port opened", "port", name, "baud", baud)
	return port, nil
}

func retryable(err error) bool {
	var portErr *serial.PortError
	if !errors.As(err, &portErr) {
		return false
	}
	return portErr.Code() == serial.PermissionDenied || portErr.Code() == serial.PortBusy
}

// Ports lists the serial devices present on the host.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// portsHint names the ports that are present, for error messages.
func portsHint(list func() ([]string, error)) string {
	ports, err := list()
	if err != nil {
		return ""
	}
	if len(ports) == 0 {
		return " (no serial ports found)"
	}
	return " (available: " + strings.Join(ports, ", ") + ")"
}
