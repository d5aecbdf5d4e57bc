package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestTypeFromExpr(t *testing.T) {
	cases := []struct {
		src     string
		want    cty.Type
		wantErr bool
	}{
		{src: "string", want: cty.String},
		{src: "number", want: cty.Number},
		{src: "bool", want: cty.Bool},
		{src: "list", wantErr: true},
		{src: "\"string\"", wantErr: true},
		{src: "a.b", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(tc.src), "test.hcl", hcl.InitialPos)
			require.False(t, diags.HasErrors())

			got, diags := TypeFromExpr(expr)
			if tc.wantErr {
				require.True(t, diags.HasErrors())
				return
			}
			require.False(t, diags.HasErrors())
			assert.True(t, tc.want.Equals(got))
		})
	}
}

func TestFindUniqueBlock(t *testing.T) {
	blocks := hcl.Blocks{{Type: "adb"}, {Type: "relay"}, {Type: "relay"}}

	b, diags := FindUniqueBlock(blocks, "adb")
	require.False(t, diags.HasErrors())
	require.NotNil(t, b)

	_, diags = FindUniqueBlock(blocks, "relay")
	require.True(t, diags.HasErrors())

	b, diags = FindUniqueBlock(blocks, "trace")
	require.False(t, diags.HasErrors())
	assert.Nil(t, b)
}
