// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
)

const (
	DefaultADBPath        = "adb"
	DefaultRebootWait     = 3 * time.Second
	DefaultSettle         = time.Second
	DefaultOnVoltage      = 12.0
	DefaultBaud           = 115200
	DefaultBenchNamespace = "/"
	DefaultBenchTimeout   = 10 * time.Second
	DefaultHTTPTimeout    = 30 * time.Second
)

// ADB locates the adb executable and the device under test.
type ADB struct {
	Path string
	// Serial selects a device when more than one is attached. Empty means the
	// only attached device.
	Serial     string
	RebootWait time.Duration
}

// PowerSupply tunes the bench power supply.
type PowerSupply struct {
	Settle    time.Duration
	OnVoltage float64
}

// SerialPort addresses a serial device. An empty Port disables the device.
type SerialPort struct {
	Port string
	Baud int
}

// Enabled reports whether a port is configured.
func (s SerialPort) Enabled() bool {
	return s.Port != ""
}

// Bench addresses the remote bench controller reached over socket.io.
type Bench struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// HTTP configures the shared HTTP client of the bench_http module.
type HTTP struct {
	Timeout time.Duration
}

// Hardware is the decoded hardware configuration.
type Hardware struct {
	ADB         ADB
	PowerSupply PowerSupply
	Relay       SerialPort
	Trace       SerialPort
	Bench       Bench
	HTTP        HTTP
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Hardware {
	return &Hardware{
		ADB:         ADB{Path: DefaultADBPath, RebootWait: DefaultRebootWait},
		PowerSupply: PowerSupply{Settle: DefaultSettle, OnVoltage: DefaultOnVoltage},
		Relay:       SerialPort{Baud: DefaultBaud},
		Trace:       SerialPort{Baud: DefaultBaud},
		Bench:       Bench{Namespace: DefaultBenchNamespace, Timeout: DefaultBenchTimeout},
		HTTP:        HTTP{Timeout: DefaultHTTPTimeout},
	}
}

// hclHardware mirrors the file layout for gohcl.
type hclHardware struct {
	ADB         *hclADB         `hcl:"adb,block"`
	PowerSupply *hclPowerSupply `hcl:"power_supply,block"`
	Relay       *hclSerial      `hcl:"relay,block"`
	Trace       *hclSerial      `hcl:"trace,block"`
	Bench       *hclBench       `hcl:"bench,block"`
	HTTP        *hclHTTP        `hcl:"http,block"`
}

type hclADB struct {
	Path       *string `hcl:"path,attr"`
	Serial     *string `hcl:"serial,attr"`
	RebootWait *string `hcl:"reboot_wait,attr"`
}

type hclPowerSupply struct {
	Settle    *string  `hcl:"settle,attr"`
	OnVoltage *float64 `hcl:"on_voltage,attr"`
}

type hclSerial struct {
	Port string `hcl:"port,attr"`
	Baud *int   `hcl:"baud,attr"`
}

type hclBench struct {
	URL                string  `hcl:"url,attr"`
	Namespace          *string `hcl:"namespace,attr"`
	Timeout            *string `hcl:"timeout,attr"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,attr"`
}

type hclHTTP struct {
	Timeout *string `hcl:"timeout,attr"`
}

// Load reads the hardware file at path. An empty path returns Defaults().
func Load(ctx context.Context, path string) (*Hardware, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No hardware file given, using defaults.")
		return Defaults(), nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hardware config: %w", err)
	}
	hw, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Hardware config loaded.", "path", path)
	return hw, nil
}

// Parse decodes hardware configuration source. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Hardware, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse hardware config: %w", diags)
	}

	var raw hclHardware
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode hardware config: %w", diags)
	}

	hw := Defaults()
	var errs []error

	if a := raw.ADB; a != nil {
		setString(&hw.ADB.Path, a.Path)
		setString(&hw.ADB.Serial, a.Serial)
		errs = append(errs, setDuration(&hw.ADB.RebootWait, a.RebootWait, "adb.reboot_wait"))
	}
	if p := raw.PowerSupply; p != nil {
		errs = append(errs, setDuration(&hw.PowerSupply.Settle, p.Settle, "power_supply.settle"))
		if p.OnVoltage != nil {
			hw.PowerSupply.OnVoltage = *p.OnVoltage
		}
	}
	if r := raw.Relay; r != nil {
		errs = append(errs, setSerial(&hw.Relay, r, "relay"))
	}
	if t := raw.Trace; t != nil {
		errs = append(errs, setSerial(&hw.Trace, t, "trace"))
	}
	if b := raw.Bench; b != nil {
		hw.Bench.URL = b.URL
		setString(&hw.Bench.Namespace, b.Namespace)
		errs = append(errs, setDuration(&hw.Bench.Timeout, b.Timeout, "bench.timeout"))
		if hw.Bench.Timeout == 0 {
			errs = append(errs, errors.New("invalid bench.timeout: must be positive"))
		}
		if b.InsecureSkipVerify != nil {
			hw.Bench.InsecureSkipVerify = *b.InsecureSkipVerify
		}
	}
	if h := raw.HTTP; h != nil {
		errs = append(errs, setDuration(&hw.HTTP.Timeout, h.Timeout, "http.timeout"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return hw, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, field string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s: must not be negative", field)
	}
	*dst = d
	return nil
}

func setSerial(dst *SerialPort, v *hclSerial, field string) error {
	dst.Port = v.Port
	if v.Baud != nil {
		if *v.Baud <= 0 {
			return fmt.Errorf("invalid %s.baud: must be positive", field)
		}
		dst.Baud = *v.Baud
	}
	return nil
}
