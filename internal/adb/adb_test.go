package adb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers commands by their joined arguments.
type fakeRunner struct {
	calls   []call
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	key := strings.Join(args, " ")
	return []byte(f.outputs[key]), f.errs[key]
}

func TestParseDevices(t *testing.T) {
	out := "List of devices attached\nR58M123\tdevice\nemulator-5554\trecovery\n\n* daemon started *\n"
	assert.Equal(t, []Device{
		{Serial: "R58M123", Mode: ModeNormal},
		{Serial: "emulator-5554", Mode: ModeRecovery},
	}, parseDevices(out))
	assert.Empty(t, parseDevices("List of devices attached\n"))
}

func TestClient_SerialAndPath(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"-s R58M123 shell id": "uid=0(root) gid=0(root)"}}
	c := New("/opt/adb", "R58M123", f)

	ok, err := c.IsRoot(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "/opt/adb", f.calls[0].name)
}

func TestClient_IsRootFalse(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"shell id": "uid=2000(shell) gid=2000(shell)"}}
	ok, err := New("", "", f).IsRoot(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "adb", f.calls[0].name)
}

func TestClient_Push(t *testing.T) {
	cases := map[string]bool{
		"lib.so: 1 file pushed, 0 skipped. 12.3 MB/s": true,
		"lib.so: 0 files pushed, 0 skipped.":          true,
		"adb: error: failed to copy":                  false,
	}
	for out, want := range cases {
		f := &fakeRunner{outputs: map[string]string{"push a /vendor/bin": out}}
		ok, err := New("", "", f).Push(context.Background(), "a", "/vendor/bin")
		require.NoError(t, err)
		assert.Equal(t, want, ok, out)
	}
}

func TestClient_ShellSplitsQuotedWords(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{}}
	_, err := New("", "", f).Shell(context.Background(), `setprop persist.sys.test "a b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"shell", "setprop", "persist.sys.test", "a b"}, f.calls[0].args)

	_, err = New("", "", f).Shell(context.Background(), "  ")
	require.Error(t, err)
}

func TestClient_CommandErrorCarriesOutput(t *testing.T) {
	f := &fakeRunner{
		outputs: map[string]string{"remount": "remount failed: not root"},
		errs:    map[string]error{"remount": errors.New("exit status 1")},
	}
	err := New("", "", f).Remount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not root")
}

func TestClient_ModeAndReboot(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"devices": "List of devices attached\nabc\trecovery\n"}}
	c := New("", "abc", f)

	mode, err := c.Mode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeRecovery, mode)

	_, err = New("", "other", f).Mode(context.Background())
	require.Error(t, err)

	require.NoError(t, c.Reboot(context.Background(), ""))
	require.NoError(t, c.Reboot(context.Background(), "recovery"))
	last := f.calls[len(f.calls)-2:]
	assert.Equal(t, []string{"-s", "abc", "reboot"}, last[0].args)
	assert.Equal(t, []string{"-s", "abc", "reboot", "recovery"}, last[1].args)
}
