package timers

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func secInputs(sec float64) model.Inputs {
	return model.NewInputs(
		[]model.InputSpec{{Name: "sec", Type: cty.Number}},
		[]cty.Value{cty.NumberFloatVal(sec)},
	)
}

func TestOnRunSleep(t *testing.T) {
	start := time.Now()
	out, err := OnRunSleep(context.Background(), secInputs(0.05))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestOnRunSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	out, err := OnRunSleep(ctx, secInputs(5))
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOnRunSleep_NegativeIsAnError(t *testing.T) {
	_, err := OnRunSleep(context.Background(), secInputs(-1))
	require.Error(t, err)
}

func TestWait_ZeroReturnsImmediately(t *testing.T) {
	require.NoError(t, Wait(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Wait(ctx, 0), context.Canceled)
}

func TestRegister(t *testing.T) {
	h := handlers.NewFromModules(&Module{})
	_, ok := h.Get("TimersSleep")
	assert.True(t, ok)
}
