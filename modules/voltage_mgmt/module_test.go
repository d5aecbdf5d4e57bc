package voltage_mgmt

import (
	"context"
	"testing"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/modules/power_supply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsDriveSharedSupply(t *testing.T) {
	supply := power_supply.NewSupply()
	h := handlers.NewFromModules(&Module{Supply: supply})

	want := map[string]float64{
		"VoltagePowerLoss":    3,
		"VoltageCriticalLow":  6.7,
		"VoltageLow":          7,
		"VoltageNormal":       13,
		"VoltageHigh":         18,
		"VoltageCriticalHigh": 25,
	}
	require.Equal(t, len(want), h.Len())

	for handler, volts := range want {
		fn, ok := h.Get(handler)
		require.True(t, ok, handler)
		out, err := fn(context.Background(), model.Inputs{})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, volts, supply.Voltage(), handler)
	}
}
