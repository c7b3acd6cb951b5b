package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-srec/srec"
)

// bytesPerRow is the hex dump width.
const bytesPerRow = 16

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <address> [length]",
		Short: "Read bytes from an image",
		Long: `Read one byte, or dump a range of bytes, from the memory image described
by an S-record file. Addresses accept 0x, 0o and 0b prefixes. Absent
addresses are shown as "--" in a dump.

Example:
  srectool get firmware.s19 0x8000
  srectool get firmware.s19 0x8000 64`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			length := 1
			if len(args) == 3 {
				length, err = strconv.Atoi(args[2])
				if err != nil || length < 1 {
					return fmt.Errorf("invalid length %q", args[2])
				}
				if uint64(address)+uint64(length) > 1<<32 {
					return fmt.Errorf("range 0x%08X+%d exceeds the 32-bit address space", address, length)
				}
			}

			f, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				b, err := f.ByteAt(address)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "0x%02X\n", b)
				return nil
			}
			hexDump(cmd.OutOrStdout(), address, f.Slice(address, length))
			return nil
		},
	}
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

func hexDump(w io.Writer, start uint32, cells []srec.Cell) {
	var sb strings.Builder
	for row := 0; row < len(cells); row += bytesPerRow {
		sb.Reset()
		fmt.Fprintf(&sb, "%08X:", uint64(start)+uint64(row))
		for _, c := range cells[row:min(row+bytesPerRow, len(cells))] {
			if c.Present {
				fmt.Fprintf(&sb, " %02X", c.Value)
			} else {
				sb.WriteString(" --")
			}
		}
		sb.WriteByte('\n')
		io.WriteString(w, sb.String())
	}
}
