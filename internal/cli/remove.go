// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"fmt"

	"github.com/specialistvlad/hilseq/internal/codec"
	"github.com/spf13/cobra"
)

func newRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a stored test case",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := o.config(nil); err != nil {
				return err
			}
			c := codec.New(o.testcasesDir, nil)
			path, err := c.Path(args[0])
			if err != nil {
				return usageError(err)
			}
			if err := c.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(o.outW, "Removed %s\n", path)
			return nil
		},
	}
}
