package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *model.RunResult {
	started := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return &model.RunResult{
		ID:       "run-1",
		Started:  started,
		Finished: started.Add(3 * time.Second),
		Containers: []model.ContainerResult{
			{Index: 1, Name: "Boot", Steps: []model.StepResult{
				{Index: 1, Label: "Step 1", Ref: model.BlockRef{Module: "Power_Supply", Block: "Turn ON"}, Success: true, Log: "Set Power Supply: 12V\n"},
				{Index: 2, Label: "Step 2", Ref: model.BlockRef{Module: "Console", Block: "Print"}, Log: "<script>alert(1)</script>\n"},
			}},
			{Index: 2, Name: "Idle"},
		},
	}
}

func TestHTML_RendersContainersAndEscapesLogs(t *testing.T) {
	out, err := HTML(sampleResult())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Overall: FAILED")
	assert.Contains(t, html, "Test Case 1: Boot")
	assert.Contains(t, html, "Test Case 2: Idle")
	assert.Contains(t, html, "No steps were executed.")
	assert.Contains(t, html, "Step 1: Turn ON")
	assert.Contains(t, html, "Set Power Supply: 12V")
	assert.Contains(t, html, `class="step pass"`)
	assert.Contains(t, html, `class="step fail"`)
	assert.Contains(t, html, "function toggle(button)")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestHTML_PassingRun(t *testing.T) {
	res := sampleResult()
	res.Containers[0].Steps = res.Containers[0].Steps[:1]
	out, err := HTML(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Overall: PASSED")
}

func TestHTML_InterruptedRunFails(t *testing.T) {
	res := sampleResult()
	res.Containers[0].Steps = res.Containers[0].Steps[:1]
	res.Containers[0].Interrupted = true
	out, err := HTML(res)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Overall: FAILED")
	assert.Contains(t, html, "Test Case 1: Boot (interrupted)")
}

func TestRender_NeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	g := New(dir)
	g.now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }

	first, err := g.Render(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_results_20250314_092653.html"), first)

	second, err := g.Render(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_results_20250314_092653_1.html"), second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpload(t *testing.T) {
	var gotBody, gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody, gotType, gotMethod = string(body), r.Header.Get("Content-Type"), r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	require.NoError(t, Upload(context.Background(), srv.Client(), path, srv.URL+"/bucket/report.html"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "<html></html>", gotBody)
	assert.Contains(t, gotType, "text/html")
}

func TestUpload_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := Upload(context.Background(), srv.Client(), path, srv.URL)
	require.ErrorContains(t, err, "403")

	err = Upload(context.Background(), nil, filepath.Join(t.TempDir(), "missing.html"), srv.URL)
	require.ErrorContains(t, err, "failed to open report")
}
