// Package cli provides the command-line interface for huepick.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/config"
	"github.com/jmylchreest/huepick/internal/logging"
	"github.com/jmylchreest/huepick/internal/version"
)

// app carries the state shared by every subcommand once the root command's
// pre-run has loaded configuration.
type app struct {
	verbose  bool
	quiet    bool
	logLevel string
	envFile  string

	cfg     config.Config
	logger  hclog.Logger
	palette *colour.Palette
}

// NewRootCmd builds the huepick command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "huepick",
		Short: "Dominant colour extraction and colour naming for product photos",
		Long: `huepick finds the dominant colours of product photos and names them from a
Vietnamese-first reference palette.

It samples an image into a few quantised swatches, resolves names, hex codes
and RGB triples to palette names, and can serve both over HTTP.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	flags.StringVar(&a.envFile, "env-file", "", "load settings from this .env file instead of ./.env")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newSampleCmd(a),
		newResolveCmd(a),
		newPaletteCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// init loads configuration and builds the logger. Flags win over the
// environment.
func (a *app) init(cmd *cobra.Command) error {
	var err error
	if a.envFile != "" {
		a.cfg, err = config.LoadFile(a.envFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger, err = logging.New(logging.Options{
		Level:   level,
		Verbose: a.verbose,
		Quiet:   a.quiet,
		JSON:    a.cfg.LogJSON,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	a.palette = colour.DefaultPalette()
	a.logger.Debug("configuration loaded",
		"palette_entries", a.palette.Len(),
		"max_distance", config.FormatMaxDistance(a.cfg.MaxDistance))
	return nil
}

// writeOutput writes s to path, or to cmd's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, s string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil { // #nosec G306 - output is meant to be shared
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		// The version command needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
