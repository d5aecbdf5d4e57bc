// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package trace_log

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
)

// Collector accumulates trace lines read from the device's trace interface.
// Lines arrive on a background goroutine while steps run; every method is
// safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	lines  []string
	cursor int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append adds one line.
func (c *Collector) Append(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Lines returns every line collected since the last Clear.
func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear drops every collected line.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.cursor = 0
}

// Reset is called by the runner when a run starts.
func (c *Collector) Reset() {
	c.Clear()
}

// Snapshot returns the lines collected since the previous Snapshot, joined by
// newlines. The runner attaches it to the log of the step that just ran.
func (c *Collector) Snapshot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor > len(c.lines) {
		c.cursor = len(c.lines)
	}
	out := strings.Join(c.lines[c.cursor:], "\n")
	c.cursor = len(c.lines)
	return out
}

// Follow reads lines from r until it is exhausted or ctx is done. Read errors
// caused by the reader being closed on cancellation are not reported.
func (c *Collector) Follow(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		c.Append(line)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	return nil
}

// Start follows rc in a background goroutine. rc is closed when ctx is done,
// which unblocks the pending read. The returned channel is closed once the
// goroutine has exited.
func (c *Collector) Start(ctx context.Context, rc io.ReadCloser) <-chan struct{} {
	logger := ctxlog.FromContext(ctx)
	done := make(chan struct{})
	stop := context.AfterFunc(ctx, func() { _ = rc.Close() })

	go func() {
		defer close(done)
		defer stop()
		if err := c.Follow(ctx, rc); err != nil {
			logger.Error("Trace capture stopped", "error", err)
			return
		}
		logger.Debug("Trace capture finished")
	}()
	return done
}
