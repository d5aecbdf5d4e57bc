package ssm

import (
	"context"
	"testing"

	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestOnRunCheckHealth(t *testing.T) {
	spec := []model.InputSpec{{Name: "health_score", Type: cty.Number}}
	for score, ok := range map[int64]bool{90: true, 80: true, 79: false} {
		out, err := onRunCheckHealth(context.Background(), model.NewInputs(spec, []cty.Value{cty.NumberIntVal(score)}))
		require.NoError(t, err)
		assert.Equal(t, ok, out.Success, score)
	}

	_, err := onRunCheckHealth(context.Background(), model.NewInputs(spec, []cty.Value{cty.NumberFloatVal(85.5)}))
	require.Error(t, err, "a fractional score is rejected")
}
