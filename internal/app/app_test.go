package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hilseq/internal/app"
	"github.com/specialistvlad/hilseq/internal/codec"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/internal/runner"
	"github.com/specialistvlad/hilseq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchBlocks = `
module "Bench" {
  block "Good" {
    lifecycle {
      on_run = "Good"
    }
  }

  block "Bad" {
    lifecycle {
      on_run = "Bad"
    }
  }
}
`

const twoCases = `{
  "containers": [
    {"name": "First", "steps": [
      {"module": "Bench", "block": "Good"},
      {"module": "Bench", "block": "Bad"},
      {"module": "Bench", "block": "Good"}
    ]},
    {"name": "Second", "steps": [
      {"module": "Bench", "block": "Good"}
    ]}
  ]
}`

func benchModule() *testutil.SimpleModule {
	return &testutil.SimpleModule{Outcomes: map[string]model.Outcome{
		"Good": model.Pass("fine"),
		"Bad":  model.Fail("broken"),
	}}
}

func TestNewConfig_Validation(t *testing.T) {
	valid := app.Config{TestcasesDir: "testcases", ResultsDir: "results", LogFormat: "json", LogLevel: "warn"}
	_, err := app.NewConfig(valid)
	require.NoError(t, err)

	cases := map[string]func(c *app.Config){
		"no testcases dir": func(c *app.Config) { c.TestcasesDir = "" },
		"no results dir":   func(c *app.Config) { c.ResultsDir = "" },
		"log format":       func(c *app.Config) { c.LogFormat = "xml" },
		"log level":        func(c *app.Config) { c.LogLevel = "trace" },
		"port":             func(c *app.Config) { c.HealthcheckPort = 70000 },
		"timeout":          func(c *app.Config) { c.StepTimeout = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := app.NewConfig(cfg)
			require.Error(t, err)
		})
	}
}

func TestNewApp_BuiltinBlocksLoadCleanly(t *testing.T) {
	h := testutil.NewHarness(t, testutil.Options{})
	reg := h.App.Registry()

	require.NoError(t, reg.Warnings())
	for _, module := range []string{
		"Power_Supply", "Timers", "VoltageMgmt", "Relay_Control", "ThermalMgmt", "Wakeup",
		"SSM", "Android", "Trace_Log", "Console", "Remote_Bench", "Bench_HTTP",
	} {
		_, ok := reg.Module(module)
		assert.True(t, ok, "module %s is registered", module)
	}

	b, err := reg.Block("Power_Supply", "Turn ON")
	require.NoError(t, err)
	assert.Equal(t, "PowerSupplyOn", b.Handler)
}

func TestNewApp_Errors(t *testing.T) {
	cfg, err := app.NewConfig(app.Config{
		TestcasesDir: t.TempDir(),
		ResultsDir:   t.TempDir(),
		BlocksPath:   filepath.Join(t.TempDir(), "missing"),
	})
	require.NoError(t, err)
	_, err = app.NewApp(io.Discard, cfg)
	require.ErrorContains(t, err, "blocks path")

	cfg.BlocksPath = ""
	cfg.HardwarePath = filepath.Join(t.TempDir(), "missing.hcl")
	_, err = app.NewApp(io.Discard, cfg)
	require.ErrorContains(t, err, "hardware configuration")
}

func TestRun_ExecutesTestCaseAndWritesReport(t *testing.T) {
	mod := benchModule()
	h := testutil.NewHarness(t, testutil.Options{
		Files: map[string]string{
			"blocks/bench.hcl":         benchBlocks,
			"testcases/two_cases.json": twoCases,
		},
		Modules: []handlers.Module{mod},
	})

	out, err := h.App.Run(context.Background(), "Two Cases")
	require.NoError(t, err)

	res := out.Result
	assert.False(t, res.Passed())
	testutil.AssertStepPassed(t, res, "Test Case 1: First", "Step 1")
	testutil.AssertStepFailed(t, res, "Test Case 1: First", "Step 2")
	_, ran := res.Containers[0].Step("Step 3")
	assert.False(t, ran, "a container stops at its first failure")
	testutil.AssertStepPassed(t, res, "Test Case 2: Second", "Step 1")
	assert.Equal(t, []string{"Good", "Bad", "Good"}, mod.Calls())

	require.NotEmpty(t, out.ReportPath)
	assert.Equal(t, filepath.Join(h.Root, "results"), filepath.Dir(out.ReportPath))
	html, err := os.ReadFile(out.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Test Case 2: Second")
	assert.Contains(t, h.Logs.String(), "Run finished.")
}

func TestRun_HaltRunSkipsLaterCases(t *testing.T) {
	mod := benchModule()
	h := testutil.NewHarness(t, testutil.Options{
		Files: map[string]string{
			"blocks/bench.hcl":         benchBlocks,
			"testcases/two_cases.json": twoCases,
		},
		Modules:   []handlers.Module{mod},
		Configure: func(cfg *app.Config) { cfg.Halt = runner.HaltRun },
	})

	out, err := h.App.Run(context.Background(), "two_cases")
	require.NoError(t, err)
	assert.True(t, out.Result.Containers[1].Skipped)
	assert.Equal(t, []string{"Good", "Bad"}, mod.Calls())
}

func TestRun_MissingTestCase(t *testing.T) {
	h := testutil.NewHarness(t, testutil.Options{})
	_, err := h.App.Run(context.Background(), "nothing here")
	require.ErrorIs(t, err, codec.ErrNotFound)

	_, err = h.App.Run(context.Background())
	require.Error(t, err)
}

func TestRun_UploadsReport(t *testing.T) {
	uploaded := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		uploaded <- string(body)
	}))
	defer srv.Close()

	h := testutil.NewHarness(t, testutil.Options{
		Files: map[string]string{
			"blocks/bench.hcl":         benchBlocks,
			"testcases/two_cases.json": twoCases,
		},
		Modules:   []handlers.Module{benchModule()},
		Configure: func(cfg *app.Config) { cfg.UploadURL = srv.URL + "/report.html" },
	})

	_, err := h.App.Run(context.Background(), "two cases")
	require.NoError(t, err)
	assert.Contains(t, <-uploaded, "<h1>Test Results</h1>")
}

func TestCompose_BuildsAndAppendsCases(t *testing.T) {
	h := testutil.NewHarness(t, testutil.Options{})
	ctx := context.Background()

	var steps []app.StepSpec
	for _, s := range []string{"Console:Print (message);message=hello bench", "Timers:Sleep (time);sec=0.01"} {
		spec, err := app.ParseStepSpec(s)
		require.NoError(t, err)
		steps = append(steps, spec)
	}

	path, err := h.App.Compose(ctx, "Smoke Test", "Boot", steps, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.Root, "testcases", "smoke_test.json"), path)

	fail, err := app.ParseStepSpec("Console:Fail (message)")
	require.NoError(t, err)
	_, err = h.App.Compose(ctx, "Smoke Test", "Teardown", []app.StepSpec{fail}, true)
	require.NoError(t, err)

	s, err := h.App.Codec().Load(ctx, "Smoke Test")
	require.NoError(t, err)
	require.Len(t, s.Containers, 2)
	assert.Equal(t, "Boot", s.Containers[0].Name)
	assert.Equal(t, "Teardown", s.Containers[1].Name)

	out, err := h.App.Run(ctx, "Smoke Test")
	require.NoError(t, err)
	step := testutil.RequireStep(t, out.Result, "Test Case 1: Boot", "Step 1")
	assert.True(t, step.Success)
	assert.Contains(t, step.Log, "hello bench")
	testutil.AssertStepPassed(t, out.Result, "Test Case 1: Boot", "Step 2")
	testutil.AssertStepFailed(t, out.Result, "Test Case 2: Teardown", "Step 1")
}

func TestCompose_Errors(t *testing.T) {
	h := testutil.NewHarness(t, testutil.Options{})
	ctx := context.Background()

	_, err := app.ParseStepSpec("Console")
	require.Error(t, err)
	_, err = app.ParseStepSpec("Console:Print (message);novalue")
	require.Error(t, err)

	unknown, err := app.ParseStepSpec("Console:Shout")
	require.NoError(t, err)
	_, err = h.App.Compose(ctx, "x", "Case", []app.StepSpec{unknown}, false)
	require.ErrorContains(t, err, "unknown block")

	badInput, err := app.ParseStepSpec("Timers:Sleep (time);sec=soon")
	require.NoError(t, err)
	_, err = h.App.Compose(ctx, "x", "Case", []app.StepSpec{badInput}, false)
	require.Error(t, err)
}
