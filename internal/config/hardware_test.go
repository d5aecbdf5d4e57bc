package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullFile(t *testing.T) {
	src := `
adb {
  path        = "/opt/platform-tools/adb"
  serial      = "R58M123"
  reboot_wait = "5s"
}

power_supply {
  settle     = "250ms"
  on_voltage = 13.5
}

relay {
  port = "/dev/ttyUSB0"
  baud = 9600
}

trace {
  port = "/dev/ttyUSB1"
}

bench {
  url                  = "http://bench.local:3000"
  namespace            = "/bench"
  timeout              = "2s"
  insecure_skip_verify = true
}

http {
  timeout = "1m"
}
`
	hw, err := Parse([]byte(src), "hardware.hcl")
	require.NoError(t, err)

	assert.Equal(t, ADB{Path: "/opt/platform-tools/adb", Serial: "R58M123", RebootWait: 5 * time.Second}, hw.ADB)
	assert.Equal(t, PowerSupply{Settle: 250 * time.Millisecond, OnVoltage: 13.5}, hw.PowerSupply)
	assert.Equal(t, SerialPort{Port: "/dev/ttyUSB0", Baud: 9600}, hw.Relay)
	assert.Equal(t, SerialPort{Port: "/dev/ttyUSB1", Baud: DefaultBaud}, hw.Trace)
	assert.True(t, hw.Relay.Enabled())
	assert.Equal(t, Bench{URL: "http://bench.local:3000", Namespace: "/bench", Timeout: 2 * time.Second, InsecureSkipVerify: true}, hw.Bench)
	assert.Equal(t, time.Minute, hw.HTTP.Timeout)
}

func TestParse_EmptyFileYieldsDefaults(t *testing.T) {
	hw, err := Parse([]byte(""), "hardware.hcl")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), hw)
	assert.False(t, hw.Relay.Enabled())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"syntax":        `adb {`,
		"unknown block": `robot {}`,
		"unknown attr":  `adb { colour = "red" }`,
		"bad duration":  `adb { reboot_wait = "soon" }`,
		"negative":      `power_supply { settle = "-1s" }`,
		"bad baud":      "relay {\n  port = \"/dev/ttyS0\"\n  baud = 0\n}",
		"missing port":  `trace { baud = 9600 }`,
		"duplicate adb": "adb {}\nadb {}",
		"zero bench":    `bench { timeout = "0s" }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "hardware.hcl")
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	hw, err := Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), hw)

	path := filepath.Join(t.TempDir(), "hardware.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`adb { serial = "abc" }`), 0o600))
	hw, err = Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "abc", hw.ADB.Serial)
	assert.Equal(t, DefaultADBPath, hw.ADB.Path)

	_, err = Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}
