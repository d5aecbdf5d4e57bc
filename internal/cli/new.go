// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/hilseq/internal/app"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/spf13/cobra"
)

func newNewCmd(o *options) *cobra.Command {
	var caseName string
	var steps []string
	var appendCase bool

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a test case from blocks",
		Long: `Create a test case from blocks. Each --step is "Module:Block" optionally
followed by ";input=value" pairs, for example:

  hilseq new "Power Cycle" --case Boot \
    --step "Power_Supply:Set Voltage (voltage);voltage=13.5" \
    --step "Timers:Sleep (time);sec=2"

With --append the case is added to an existing test case.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(steps) == 0 {
				return usageError(errors.New("at least one --step is required"))
			}
			specs := make([]app.StepSpec, 0, len(steps))
			for _, s := range steps {
				spec, err := app.ParseStepSpec(s)
				if err != nil {
					return usageError(err)
				}
				specs = append(specs, spec)
			}

			a, err := o.newApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.Compose(cmd.Context(), args[0], caseName, specs, appendCase)
			if err != nil {
				return err
			}
			fmt.Fprintf(o.outW, "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&caseName, "case", model.DefaultContainerName, "Name of the test case container.")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "A step as \"Module:Block[;input=value...]\". Repeatable.")
	cmd.Flags().BoolVar(&appendCase, "append", false, "Append the case to an existing test case.")
	return cmd
}
