// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Capture accumulates log records emitted through a captured context. It is
// the per-step log sink: one Capture lives for the duration of one action.
type Capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// String returns everything captured so far.
func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *Capture) write(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.WriteString(line)
}

// WithCapture returns a context whose logger writes both to the logger already
// in ctx and to the returned Capture. Records are captured at every level in
// the "time - LEVEL - message key=value" layout of the run console.
func WithCapture(ctx context.Context) (context.Context, *Capture) {
	c := &Capture{}
	parent := FromContext(ctx).Handler()
	logger := slog.New(&teeHandler{
		primary: parent,
		capture: &captureHandler{sink: c},
	})
	return WithLogger(ctx, logger), c
}

// teeHandler fans records out to the parent handler and the capture.
type teeHandler struct {
	primary slog.Handler
	capture slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.capture.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if h.primary.Enabled(ctx, r.Level) {
		errs = append(errs, h.primary.Handle(ctx, r.Clone()))
	}
	if h.capture.Enabled(ctx, r.Level) {
		errs = append(errs, h.capture.Handle(ctx, r))
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{primary: h.primary.WithAttrs(attrs), capture: h.capture.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{primary: h.primary.WithGroup(name), capture: h.capture.WithGroup(name)}
}

// captureHandler renders records into a Capture. Only attributes attached
// after the capture started are rendered.
type captureHandler struct {
	sink   *Capture
	attrs  []slog.Attr
	prefix string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	var line bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	fmt.Fprintf(&line, "%s - %s - %s", ts.Format("2006-01-02 15:04:05.000"), r.Level.String(), r.Message)
	for _, a := range h.attrs {
		writeAttr(&line, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&line, h.prefix, a)
		return true
	})
	line.WriteByte('\n')
	h.sink.write(line.String())
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(buf, prefix+a.Key+".", ga)
		}
		return
	}
	fmt.Fprintf(buf, " %s%s=%v", prefix, a.Key, a.Value.Any())
}
