package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moffa90/go-srec/srec"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		output string
		wf     writerFlags
	)
	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Combine several S-record files into one image",
		Long: `Merge S-record files in argument order. Where images overlap the later
file wins. The header and start address come from the last file that has
them.

Example:
  srectool merge bootloader.s19 app.s19 -o combined.s19`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.writerOptions(cmd, &wf)
			if err != nil {
				return err
			}

			files := make([]*srec.File, 0, len(args))
			for _, path := range args {
				f, err := a.load(cmd, path)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			merged := srec.Merge(files...)
			a.log.Debug("merged files", "inputs", len(files), "bytes", merged.Space().Len())

			text, err := srec.Format(merged, opts...)
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
