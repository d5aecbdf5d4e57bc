// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/specialistvlad/hilseq/internal/codec"
	"github.com/spf13/cobra"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored test cases",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := o.config(nil); err != nil {
				return err
			}
			entries, err := codec.New(o.testcasesDir, nil).List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(o.errW, "No test cases in %s\n", o.testcasesDir)
				return nil
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Name, filepath.Base(e.Path), humanize.Bytes(uint64(e.Size)), humanize.Time(e.Modified)}
			}
			table(o.outW, []string{"NAME", "FILE", "SIZE", "MODIFIED"}, rows)
			return nil
		},
	}
}
