// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package relay_control provides the blocks that connect and disconnect the
// vehicle wiring of the device under test through a relay board.
package relay_control

import (
	"context"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Relay channels of the wiring harness.
const (
	ChannelACC    = 1
	ChannelBatGnd = 2
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Board switches the relays. A nil Board is replaced by a SimulatedBoard.
	Board Board
}

func (m *Module) switchAction(channel int, closed bool, msg string) model.Action {
	return func(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
		ctxlog.FromContext(ctx).Info(msg, "channel", channel)
		if err := m.Board.Set(ctx, channel, closed); err != nil {
			return model.Outcome{}, err
		}
		return model.Pass("%s", msg), nil
	}
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Board == nil {
		m.Board = &SimulatedBoard{}
	}
	h.RegisterHandler("RelayAccOff", m.switchAction(ChannelACC, false, "Disconnect ACC wire"))
	h.RegisterHandler("RelayAccOn", m.switchAction(ChannelACC, true, "Connect ACC wire"))
	h.RegisterHandler("RelayBatGndOff", m.switchAction(ChannelBatGnd, false, "Remove BAT+GND"))
	h.RegisterHandler("RelayBatGndOn", m.switchAction(ChannelBatGnd, true, "Connect BAT+GND"))
}
