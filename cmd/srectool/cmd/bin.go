package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBinCmd(a *app) *cobra.Command {
	var (
		output string
		start  string
		length int
		fill   uint8
	)
	cmd := &cobra.Command{
		Use:   "bin <file>",
		Short: "Convert an image to a flat binary",
		Long: `Flatten the memory image of an S-record file into raw bytes. Gaps are
filled with --fill. By default the output covers the lowest through the
highest present address.

Example:
  srectool bin firmware.s19 -o firmware.bin
  srectool bin --start 0x8000 --length 0x4000 --fill 0 firmware.s19 -o page.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			space := f.Space()
			if !cmd.Flags().Changed("start") && !cmd.Flags().Changed("length") && space.Empty() {
				return fmt.Errorf("%s: image has no data", args[0])
			}

			bounds, _ := space.Bounds()
			var from uint32
			if cmd.Flags().Changed("start") {
				if from, err = parseAddress(start); err != nil {
					return err
				}
			} else {
				from = uint32(bounds.Start)
			}

			n := length
			if !cmd.Flags().Changed("length") {
				if bounds.End <= uint64(from) {
					return fmt.Errorf("no data at or above 0x%08X", from)
				}
				n = int(bounds.End - uint64(from))
			}
			if n < 1 || uint64(from)+uint64(n) > 1<<32 {
				return fmt.Errorf("invalid length %d at 0x%08X", n, from)
			}

			a.log.Debug("flattening image", "start", from, "length", n, "fill", fill)
			return a.emit(cmd, output, space.ToBinary(from, n, fill))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&start, "start", "", "First address (default lowest present address)")
	cmd.Flags().IntVar(&length, "length", 0, "Number of bytes (default up to the highest present address)")
	cmd.Flags().Uint8Var(&fill, "fill", 0xFF, "Byte used for absent addresses")
	return cmd
}
