package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRangesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ranges <file>",
		Short: "List the contiguous address ranges of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			for _, r := range f.AddressRanges() {
				fmt.Fprintf(cmd.OutOrStdout(), "0x%08X-0x%08X %d\n", r.Start, r.End-1, r.Len())
			}
			return nil
		},
	}
}
