// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/logging"
	"github.com/jmylchreest/swatch/internal/version"
)

// rootOptions carries the global flags and the state derived from them
// into each subcommand.
type rootOptions struct {
	verbose bool
	quiet   bool
	logJSON bool

	getenv func(string) string
	logger hclog.Logger
}

// NewRootCmd builds the swatch command tree, reading SWATCH_* overrides
// from the process environment.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{
		getenv: getenv,
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract dominant colour palettes from images",
		Long: `Swatch extracts the dominant colours of an image and reports each one
as hex, RGB and CMYK together with the share of the image it covers.

Images are downsampled, bucketed on a coarse colour grid, and the most
populous buckets are merged into a short, stable palette. The same image
and options always produce the same palette.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logger = logging.New(logging.Options{
				Verbose: opts.verbose,
				Quiet:   opts.quiet,
				Output:  cmd.ErrOrStderr(),
				JSON:    opts.logJSON,
			})
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
