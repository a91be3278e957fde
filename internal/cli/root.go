// Package cli implements the locallibrary command line.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/logger"
)

var (
	cfg     *config.Config
	version = "dev"
	commit  = "unknown"

	flagEnvFile string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "locallibrary",
	Short: "A small library catalog of books, authors, genres and copies",
	Long: `locallibrary serves a web catalog of books, authors, genres and the
physical copies a library holds.

Run 'locallibrary' with no arguments to start the web server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// SetVersion records build information shown by the version command.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file loaded before reading configuration")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			color.NoColor = true
		}
		if err := config.LoadDotEnv(flagEnvFile); err != nil {
			return fmt.Errorf("loading %s: %w", flagEnvFile, err)
		}
		cfg = config.NewConfig()
		logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
		return nil
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newPopulateCmd(),
		newVersionCmd(),
	)
}

// ok prints a green success line.
func ok(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("!"), fmt.Sprintf(format, a...))
}
