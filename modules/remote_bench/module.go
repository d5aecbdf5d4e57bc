// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package remote_bench provides blocks that drive a remote bench controller
// (signal generators, CAN simulators) through socket.io commands.
package remote_bench

import (
	"context"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	Client Client
}

func (m *Module) exchange(ctx context.Context, event string, data any, replyEvent string) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Sending bench command", "event", event, "reply_event", replyEvent)

	reply, err := m.Client.Exchange(ctx, event, data, replyEvent)
	if err != nil {
		return model.Outcome{}, err
	}

	ok, rendered, err := judgeReply(reply)
	if err != nil {
		return model.Outcome{}, err
	}
	logger.Info("Bench replied", "event", replyEvent, "reply", rendered)
	return model.PassIf(ok,
		"bench acknowledged '"+event+"': "+rendered,
		"bench rejected '"+event+"': "+rendered), nil
}

func (m *Module) onRunSend(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	event, err := in.String("event")
	if err != nil {
		return model.Outcome{}, err
	}
	payload, err := in.String("payload")
	if err != nil {
		return model.Outcome{}, err
	}
	replyEvent, err := in.String("reply_event")
	if err != nil {
		return model.Outcome{}, err
	}
	if event == "" || replyEvent == "" {
		return model.Fail("event and reply_event must not be empty"), nil
	}

	data, err := decodePayload(payload)
	if err != nil {
		return model.Fail("%v", err), nil
	}
	return m.exchange(ctx, event, data, replyEvent)
}

func (m *Module) onRunPing(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	return m.exchange(ctx, "ping", nil, "pong")
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Client == nil {
		m.Client = &SocketClient{}
	}
	h.RegisterHandler("BenchSend", m.onRunSend)
	h.RegisterHandler("BenchPing", m.onRunPing)
}
