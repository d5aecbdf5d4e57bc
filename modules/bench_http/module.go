// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package bench_http provides blocks that talk to HTTP endpoints of the bench
// or the device under test, such as a diagnostic web server.
package bench_http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// maxLoggedBody caps the response body copied into the step log.
const maxLoggedBody = 512

// Module implements the handlers.Module interface for this package.
type Module struct {
	Client *http.Client
}

func (m *Module) do(ctx context.Context, method, url, body string, expect int) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Making HTTP request", "method", method, "url", url)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("failed to read response body: %w", err)
	}
	logger.Info("Received HTTP response", "status", resp.Status, "size", humanize.Bytes(uint64(len(data))))
	if len(data) > 0 {
		logger.Debug("Response body", "body", string(truncate(data, maxLoggedBody)))
	}

	if resp.StatusCode != expect {
		return model.Fail("%s %s returned %s, expected %d", method, url, resp.Status, expect), nil
	}
	return model.Pass("%s %s returned %s", method, url, resp.Status), nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return append(bytes.Clone(b[:n]), "..."...)
}

func (m *Module) onRunCheck(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	url, err := in.String("url")
	if err != nil {
		return model.Outcome{}, err
	}
	expect, err := in.Int("expect_status")
	if err != nil {
		return model.Outcome{}, err
	}
	return m.do(ctx, http.MethodGet, url, "", expect)
}

func (m *Module) onRunPost(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	url, err := in.String("url")
	if err != nil {
		return model.Outcome{}, err
	}
	body, err := in.String("body")
	if err != nil {
		return model.Outcome{}, err
	}
	expect, err := in.Int("expect_status")
	if err != nil {
		return model.Outcome{}, err
	}
	return m.do(ctx, http.MethodPost, url, body, expect)
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Client == nil {
		m.Client = http.DefaultClient
	}
	h.RegisterHandler("HTTPCheckEndpoint", m.onRunCheck)
	h.RegisterHandler("HTTPPostJSON", m.onRunPost)
}
