// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package android provides the blocks that prepare and control the Android
// head unit through adb.
package android

import (
	"context"
	"time"

	"github.com/specialistvlad/hilseq/internal/adb"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/modules/timers"
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	ADB *adb.Client

	// RebootWait is waited after a reboot before the mode is checked.
	RebootWait time.Duration
}

func (m *Module) onRunEnableRoot(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	ctxlog.FromContext(ctx).Info("Enabling root privilege...")
	if err := m.ADB.Root(ctx); err != nil {
		return model.Outcome{}, err
	}
	root, err := m.ADB.IsRoot(ctx)
	if err != nil {
		return model.Outcome{}, err
	}
	return model.PassIf(root, "adbd is running as root", "adbd is not running as root"), nil
}

func (m *Module) onRunRemount(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	ctxlog.FromContext(ctx).Info("Remounting device...")
	root, err := m.ADB.IsRoot(ctx)
	if err != nil {
		return model.Outcome{}, err
	}
	if !root {
		return model.Fail("remount needs root privilege"), nil
	}
	if err := m.ADB.Remount(ctx); err != nil {
		return model.Outcome{}, err
	}
	return model.Pass("partitions remounted read-write"), nil
}

func (m *Module) onRunPush(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	src, err := in.String("source")
	if err != nil {
		return model.Outcome{}, err
	}
	dst, err := in.String("destination")
	if err != nil {
		return model.Outcome{}, err
	}
	ctxlog.FromContext(ctx).Info("Pushing file to device...", "source", src, "destination", dst)
	ok, err := m.ADB.Push(ctx, src, dst)
	if err != nil {
		return model.Outcome{}, err
	}
	return model.PassIf(ok, "pushed "+src+" to "+dst, "adb did not confirm the push of "+src), nil
}

func (m *Module) reboot(ctx context.Context, mode string, want func(adb.Mode) bool, label string) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Rebooting into " + label + " mode...")
	if err := m.ADB.Reboot(ctx, mode); err != nil {
		return model.Outcome{}, err
	}
	if err := timers.Wait(ctx, m.RebootWait); err != nil {
		return model.Outcome{}, err
	}

	logger.Info("Checking if device is in " + label + " mode...")
	got, err := m.ADB.Mode(ctx)
	if err != nil {
		return model.Fail("device did not come back: %v", err), nil
	}
	if !want(got) {
		return model.Fail("device is in %q mode, expected %s", got, label), nil
	}
	return model.Pass("device is in %s mode", label), nil
}

func (m *Module) onRunRebootRecovery(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	return m.reboot(ctx, "recovery", func(got adb.Mode) bool { return got == adb.ModeRecovery }, "recovery")
}

func (m *Module) onRunRebootNormal(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	return m.reboot(ctx, "", func(got adb.Mode) bool { return got == adb.ModeNormal }, "normal")
}

func (m *Module) onRunTriggerProperty(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	property, err := in.String("property")
	if err != nil {
		return model.Outcome{}, err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Info("Executing shell command", "property", property)
	out, err := m.ADB.Shell(ctx, property)
	if err != nil {
		return model.Outcome{}, err
	}
	if out != "" {
		logger.Info(out)
	}
	return model.Pass("executed %q", property), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.ADB == nil {
		m.ADB = adb.New("", "", nil)
	}
	h.RegisterHandler("AndroidEnableRoot", m.onRunEnableRoot)
	h.RegisterHandler("AndroidRemount", m.onRunRemount)
	h.RegisterHandler("AndroidPushFile", m.onRunPush)
	h.RegisterHandler("AndroidRebootRecovery", m.onRunRebootRecovery)
	h.RegisterHandler("AndroidRebootNormal", m.onRunRebootNormal)
	h.RegisterHandler("AndroidTriggerProperty", m.onRunTriggerProperty)
}
