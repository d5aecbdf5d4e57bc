package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_CountsOutcomes(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := model.BlockRef{Module: "Timers", Block: "Sleep (time)"}

	s.StepStarted(ctx, ref)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.inFlight))
	s.StepFinished(ctx, model.StepResult{Ref: ref, Success: true, Duration: time.Second})
	s.StepStarted(ctx, ref)
	s.StepFinished(ctx, model.StepResult{Ref: ref, Duration: time.Second})

	assert.Equal(t, 0.0, testutil.ToFloat64(s.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.total.WithLabelValues("Timers", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.total.WithLabelValues("Timers", "fail")))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hilseq_steps_total{module="Timers",result="pass"} 1`)
	assert.Contains(t, string(body), "hilseq_step_duration_seconds_count")
}
