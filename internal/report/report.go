// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/fsutil"
	"github.com/specialistvlad/hilseq/internal/model"
)

const timestampLayout = "20060102_150405"

// Generator writes reports into a results directory.
type Generator struct {
	dir string
	now func() time.Time
}

// New returns a generator writing into dir.
func New(dir string) *Generator {
	return &Generator{dir: dir, now: time.Now}
}

type view struct {
	ID          string
	Started     string
	Duration    time.Duration
	Passed      bool
	StepsPassed int
	StepsFailed int
	Skipped     int
	Containers  []containerView
}

type containerView struct {
	model.ContainerResult
	Label  string
	Passed bool
}

func newView(res *model.RunResult) view {
	v := view{
		ID:       res.ID,
		Started:  res.Started.Format(time.DateTime),
		Duration: res.Finished.Sub(res.Started).Round(time.Millisecond),
		Passed:   res.Passed(),
	}
	v.StepsPassed, v.StepsFailed, v.Skipped = res.Counts()
	for _, c := range res.Containers {
		v.Containers = append(v.Containers, containerView{ContainerResult: c, Label: c.Label(), Passed: c.Passed()})
	}
	return v
}

// HTML renders res as a complete HTML document.
func HTML(res *model.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, newView(res)); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Render writes the report for res as test_results_YYYYMMDD_HHMMSS.html and
// returns its path. An existing report is never overwritten; a numeric suffix
// is added instead.
func (g *Generator) Render(ctx context.Context, res *model.RunResult) (string, error) {
	data, err := HTML(res)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path, err := g.freePath(g.now())
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	ctxlog.FromContext(ctx).Info("Report written.", "path", path, "passed", res.Passed())
	return path, nil
}

func (g *Generator) freePath(t time.Time) (string, error) {
	base := "test_results_" + t.Format(timestampLayout)
	for n := 0; n < 1000; n++ {
		name := base + ".html"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.html", base, n)
		}
		path := filepath.Join(g.dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check report path: %w", err)
		}
	}
	return "", fmt.Errorf("no free report name for %s", base)
}
