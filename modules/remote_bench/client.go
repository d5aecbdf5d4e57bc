// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package remote_bench

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/specialistvlad/hilseq/internal/config"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrNotConfigured is returned when no bench URL is configured.
var ErrNotConfigured = errors.New("remote bench is not configured")

// Client sends one command to the bench controller and waits for its reply.
type Client interface {
	Exchange(ctx context.Context, emitEvent string, data any, replyEvent string) (any, error)
}

// SocketClient talks to the bench controller over socket.io. Each exchange
// opens its own connection so a dropped link never outlives one step.
type SocketClient struct {
	Config config.Bench
}

type opResult struct {
	value any
	err   error
}

// Exchange implements Client.
func (c *SocketClient) Exchange(ctx context.Context, emitEvent string, data any, replyEvent string) (any, error) {
	if c.Config.URL == "" {
		return nil, ErrNotConfigured
	}
	logger := ctxlog.FromContext(ctx).With("url", c.Config.URL, "emitEvent", emitEvent, "replyEvent", replyEvent)

	parsedURL, err := url.Parse(c.Config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, c.Config.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if c.Config.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.Config.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting bench client")
		io.Disconnect()
	}()

	io.Once(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		jsonData, _ := json.Marshal(data)
		logger.Info("Connected to bench, emitting command", "sid", io.Id(), "data", string(jsonData))
		io.Emit(emitEvent, data)
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection refused")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- opResult{err: fmt.Errorf("bench connection failed: %w", err)}:
		default:
		}
	})

	io.Once(types.EventName(replyEvent), func(reply ...any) {
		var value any
		if len(reply) > 0 {
			value = reply[0]
		}
		select {
		case done <- opResult{value: value}:
		default:
		}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after %s waiting for event '%s'", c.Config.Timeout, replyEvent)
		}
		return nil, fmt.Errorf("timed out after %s waiting for connection", c.Config.Timeout)
	case res := <-done:
		return res.value, res.err
	}
}
