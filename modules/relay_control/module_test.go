package relay_control

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/internal/serialport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	bytes.Buffer
	closed bool
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func invoke(t *testing.T, h *handlers.Handlers, name string) (model.Outcome, error) {
	t.Helper()
	fn, ok := h.Get(name)
	require.True(t, ok, name)
	return fn(context.Background(), model.Inputs{})
}

func TestSimulatedBoard(t *testing.T) {
	m := &Module{}
	h := handlers.NewFromModules(m)
	board := m.Board.(*SimulatedBoard)

	_, err := invoke(t, h, "RelayAccOn")
	require.NoError(t, err)
	assert.True(t, board.Closed(ChannelACC))

	_, err = invoke(t, h, "RelayAccOff")
	require.NoError(t, err)
	assert.False(t, board.Closed(ChannelACC))

	out, err := invoke(t, h, "RelayBatGndOn")
	require.NoError(t, err)
	assert.Equal(t, "Connect BAT+GND", out.Message)
	assert.True(t, board.Closed(ChannelBatGnd))
}

func TestSerialBoard_WritesCommandsAndOpensOnce(t *testing.T) {
	port := &fakePort{}
	opens := 0
	board := &SerialBoard{Port: "/dev/ttyUSB0", Baud: 9600, Open: func(_ context.Context, name string, baud int) (serialport.Port, error) {
		opens++
		assert.Equal(t, "/dev/ttyUSB0", name)
		assert.Equal(t, 9600, baud)
		return port, nil
	}}
	h := handlers.NewFromModules(&Module{Board: board})

	_, err := invoke(t, h, "RelayBatGndOff")
	require.NoError(t, err)
	_, err = invoke(t, h, "RelayAccOn")
	require.NoError(t, err)

	assert.Equal(t, "R2=0\r\nR1=1\r\n", port.String())
	assert.Equal(t, 1, opens)

	require.NoError(t, board.Close())
	assert.True(t, port.closed)
}

func TestSerialBoard_OpenFailureFailsStep(t *testing.T) {
	board := &SerialBoard{Open: func(context.Context, string, int) (serialport.Port, error) {
		return nil, errors.New("no such port")
	}}
	h := handlers.NewFromModules(&Module{Board: board})

	_, err := invoke(t, h, "RelayAccOff")
	require.Error(t, err)
}
