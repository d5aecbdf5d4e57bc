// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
)

func newBlocksCmd(o *options) *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the registered blocks and their inputs",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()
			reg := a.Registry()

			var rows [][]string
			for _, m := range reg.Modules() {
				if module != "" && m.Name != module {
					continue
				}
				for _, b := range m.Blocks {
					rows = append(rows, []string{m.Name, b.Name, formatInputs(b.Inputs)})
				}
			}
			if module != "" && len(rows) == 0 {
				return fmt.Errorf("module '%s' is not registered", module)
			}
			table(o.outW, []string{"MODULE", "BLOCK", "INPUTS"}, rows)

			if merr, ok := reg.Warnings().(*multierror.Error); ok {
				fmt.Fprintf(o.errW, "\n%d manifest(s) skipped:\n", len(merr.Errors))
				for _, w := range merr.Errors {
					fmt.Fprintf(o.errW, "  %v\n", w)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "Only list the blocks of this module.")
	return cmd
}

func formatInputs(specs []model.InputSpec) string {
	if len(specs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		p := s.Name + ":" + s.Type.FriendlyName()
		if s.Default != nil {
			p += "=" + formatValue(*s.Default)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.Type() == cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case v.Type() == cty.Bool:
		return fmt.Sprintf("%t", v.True())
	default:
		return v.GoString()
	}
}
