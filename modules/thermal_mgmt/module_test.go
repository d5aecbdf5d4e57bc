package thermal_mgmt

import (
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func tempInputs(v float64) model.Inputs {
	return model.NewInputs([]model.InputSpec{{Name: "temp", Type: cty.Number}}, []cty.Value{cty.NumberFloatVal(v)})
}

func TestOnRunCheck(t *testing.T) {
	cases := []struct {
		temp float64
		ok   bool
	}{
		{temp: 25, ok: true},
		{temp: 30, ok: true},
		{temp: 30.5, ok: false},
	}
	for _, tc := range cases {
		out, err := onRunCheck(context.Background(), tempInputs(tc.temp))
		require.NoError(t, err)
		assert.Equal(t, tc.ok, out.Success, tc.temp)
	}
}

func TestOnRunMonitor_DefaultReadings(t *testing.T) {
	ctx, capture := ctxlog.WithCapture(context.Background())
	m := &Module{}

	out, err := m.onRunMonitor(ctx, model.Inputs{})
	require.NoError(t, err)
	assert.True(t, out.Success, "simulated readings peak at 30°C")
	assert.Equal(t, 10, strings.Count(capture.String(), "Temperature reading"))
	assert.Contains(t, capture.String(), "n=10 celsius=30")
}

func TestOnRunMonitor_Overheat(t *testing.T) {
	m := &Module{Samples: 3, Read: func(i int) float64 { return 28 + float64(i) }}
	out, err := m.onRunMonitor(context.Background(), model.Inputs{})
	require.NoError(t, err)
	assert.False(t, out.Success)
}
