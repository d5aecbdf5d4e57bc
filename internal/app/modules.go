// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"github.com/specialistvlad/hilseq/internal/adb"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/modules/android"
	"github.com/specialistvlad/hilseq/modules/bench_http"
	"github.com/specialistvlad/hilseq/modules/console"
	"github.com/specialistvlad/hilseq/modules/power_supply"
	"github.com/specialistvlad/hilseq/modules/relay_control"
	"github.com/specialistvlad/hilseq/modules/remote_bench"
	"github.com/specialistvlad/hilseq/modules/ssm"
	"github.com/specialistvlad/hilseq/modules/thermal_mgmt"
	"github.com/specialistvlad/hilseq/modules/timers"
	"github.com/specialistvlad/hilseq/modules/trace_log"
	"github.com/specialistvlad/hilseq/modules/voltage_mgmt"
	"github.com/specialistvlad/hilseq/modules/wakeup"
)

// coreModules is the definitive list of all modules that are compiled into
// the hilseq binary, wired to the configured hardware. Power supply and
// voltage management share one supply.
func (a *App) coreModules() []handlers.Module {
	hw := a.hardware
	supply := power_supply.NewSupply()

	var board relay_control.Board
	if hw.Relay.Enabled() {
		sb := relay_control.NewSerialBoard(hw.Relay.Port, hw.Relay.Baud)
		a.closers = append(a.closers, sb.Close)
		board = sb
	}

	return []handlers.Module{
		&console.Module{},
		&timers.Module{},
		&power_supply.Module{Supply: supply, Settle: hw.PowerSupply.Settle, OnVoltage: hw.PowerSupply.OnVoltage},
		&voltage_mgmt.Module{Supply: supply, Settle: hw.PowerSupply.Settle},
		&relay_control.Module{Board: board},
		&thermal_mgmt.Module{},
		&wakeup.Module{},
		&ssm.Module{},
		&android.Module{ADB: adb.New(hw.ADB.Path, hw.ADB.Serial, nil), RebootWait: hw.ADB.RebootWait},
		&trace_log.Module{Collector: a.trace},
		&remote_bench.Module{Client: &remote_bench.SocketClient{Config: hw.Bench}},
		&bench_http.Module{Client: a.httpClient},
	}
}
