// Package cmd implements the srectool commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-srec/internal/config"
	"github.com/moffa90/go-srec/internal/logging"
	"github.com/moffa90/go-srec/srec"
)

// app carries the state shared by every subcommand. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	cfg *config.Config
	log logging.Logger
}

// NewRootCmd builds the srectool command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig(), log: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:   "srectool",
		Short: "Inspect and rewrite Motorola S-record files",
		Long: `srectool parses Motorola S-record (SREC, S19/S28/S37) files, reports
their contents and rewrites them in canonical form.

Example:
  srectool info firmware.s19
  srectool fmt --family 32 --max-payload 32 firmware.s19 -o firmware.s37`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.GetDefaultConfigPath()+" if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInfoCmd(a),
		newRangesCmd(a),
		newGetCmd(a),
		newFmtCmd(a),
		newMergeCmd(a),
		newBinCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if configPath == "" {
		if p := config.GetDefaultConfigPath(); config.ConfigExists(p) {
			configPath = p
		}
	}
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	level := a.cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug("configuration loaded", "path", configPath, "level", level)
	return nil
}

// load parses the S-record file at path; "-" reads standard input.
func (a *app) load(cmd *cobra.Command, path string) (*srec.File, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer fh.Close()
		r = fh
	}

	start := time.Now()
	f, err := srec.ParseReader(r)
	if err != nil {
		a.log.Error("parse failed", "path", path, "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("parsed file",
		"path", path,
		"data_records", len(f.Data),
		"bytes", f.Space().Len(),
		"ranges", len(f.AddressRanges()),
		"elapsed", time.Since(start),
	)
	return f, nil
}

// emit writes data to path, or to the command's output when path is empty or "-".
func (a *app) emit(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.log.Info("wrote output", "path", path, "bytes", len(data))
	return nil
}

// writerFlags are the serializer overrides shared by fmt and merge.
type writerFlags struct {
	maxPayload int
	family     string
	lineEnding string
	noCount    bool
}

func addWriterFlags(cmd *cobra.Command, wf *writerFlags) {
	cmd.Flags().IntVar(&wf.maxPayload, "max-payload", srec.DefaultMaxPayload, "Data bytes per record")
	cmd.Flags().StringVar(&wf.family, "family", "auto", "Address family: auto, 16, 24 or 32")
	cmd.Flags().StringVar(&wf.lineEnding, "line-ending", "platform", "Line ending: platform, lf, crlf or cr")
	cmd.Flags().BoolVar(&wf.noCount, "no-count", false, "Omit the S5/S6 count record")
}

// writerOptions merges the config file with any flags set on the command line.
func (a *app) writerOptions(cmd *cobra.Command, wf *writerFlags) ([]srec.WriterOption, error) {
	out := a.cfg.Output
	flags := cmd.Flags()
	if flags.Changed("max-payload") {
		if wf.maxPayload < 1 || wf.maxPayload > srec.MaxDataBytes {
			return nil, fmt.Errorf("--max-payload must be between 1 and %d", srec.MaxDataBytes)
		}
		out.MaxPayload = wf.maxPayload
	}
	if flags.Changed("family") {
		out.AddressFamily = wf.family
	}
	if flags.Changed("line-ending") {
		out.LineEnding = wf.lineEnding
	}
	if flags.Changed("no-count") {
		out.CountRecord = !wf.noCount
	}
	return out.WriterOptions()
}
