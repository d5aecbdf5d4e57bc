// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package relay_control

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/serialport"
)

// Board switches relay channels.
type Board interface {
	Set(ctx context.Context, channel int, closed bool) error
}

// SerialBoard is a relay board driven over a serial line. A channel is
// switched by the ASCII command "R<channel>=<0|1>\r\n". The port is opened on
// first use.
type SerialBoard struct {
	Port string
	Baud int
	Open serialport.Opener

	mu   sync.Mutex
	conn serialport.Port
}

// NewSerialBoard returns a board on the named port.
func NewSerialBoard(port string, baud int) *SerialBoard {
	return &SerialBoard{Port: port, Baud: baud, Open: serialport.Open}
}

// Set implements Board.
func (b *SerialBoard) Set(ctx context.Context, channel int, closed bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		conn, err := b.Open(ctx, b.Port, b.Baud)
		if err != nil {
			return err
		}
		b.conn = conn
	}

	state := 0
	if closed {
		state = 1
	}
	cmd := fmt.Sprintf("R%d=%d\r\n", channel, state)
	ctxlog.FromContext(ctx).Debug("Relay command", "port", b.Port, "command", cmd[:len(cmd)-2])
	if _, err := b.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to write relay command: %w", err)
	}
	return nil
}

// Close releases the serial port.
func (b *SerialBoard) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

// SimulatedBoard records channel states without hardware.
type SimulatedBoard struct {
	mu     sync.Mutex
	states map[int]bool
}

// Set implements Board.
func (b *SimulatedBoard) Set(ctx context.Context, channel int, closed bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.states == nil {
		b.states = make(map[int]bool)
	}
	b.states[channel] = closed
	ctxlog.FromContext(ctx).Debug("Simulated relay", "channel", channel, "closed", closed)
	return nil
}

// Closed reports the last state set on channel.
func (b *SimulatedBoard) Closed(channel int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[channel]
}
