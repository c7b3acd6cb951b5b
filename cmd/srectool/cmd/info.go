package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize an S-record file",
		Long: `Print the header, record counts, start address and memory bounds of
an S-record file.

Example:
  srectool info firmware.s19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if f.Header != nil {
				fmt.Fprintf(w, "Header:        %q\n", f.HeaderText())
			} else {
				fmt.Fprintf(w, "Header:        none\n")
			}
			fmt.Fprintf(w, "Data records:  %d\n", len(f.Data))
			if f.Count != nil {
				fmt.Fprintf(w, "Count record:  %s (%d)\n", f.Count.Type, f.Count.Address)
			} else {
				fmt.Fprintf(w, "Count record:  none\n")
			}
			if start, ok := f.StartAddress(); ok {
				fmt.Fprintf(w, "Start address: 0x%08X (%s)\n", start, f.Termination.Type)
			} else {
				fmt.Fprintf(w, "Start address: none\n")
			}
			fmt.Fprintf(w, "Data bytes:    %d\n", f.Space().Len())
			fmt.Fprintf(w, "Ranges:        %d\n", len(f.AddressRanges()))
			if bounds, ok := f.Space().Bounds(); ok {
				fmt.Fprintf(w, "Bounds:        %s\n", bounds)
			}
			return nil
		},
	}
}
