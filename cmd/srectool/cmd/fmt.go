package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moffa90/go-srec/srec"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		output string
		wf     writerFlags
	)
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite an S-record file in canonical form",
		Long: `Parse an S-record file and write it back with uppercase hex, recomputed
checksums and data records in ascending address order. Overlapping data is
resolved in favour of the record that appears last.

Flags override the output section of the config file.

Example:
  srectool fmt firmware.s19 -o clean.s19
  srectool fmt --family 32 --no-count firmware.s19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.writerOptions(cmd, &wf)
			if err != nil {
				return err
			}
			f, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			text, err := srec.Format(f, opts...)
			if err != nil {
				return err
			}
			return a.emit(cmd, output, []byte(text))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	addWriterFlags(cmd, &wf)
	return cmd
}
