// Package cmd implements the confembed command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wagiedev/conference-embed-go/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "confembed",
	Short: "Conference embedding control channel",
	Long: `confembed runs and drives the embedding control channel of a
video-conferencing application.

Commands:
  serve  - serve the control channel of a simulated conference over WebSocket
  call   - send a command or request to a served application as its host`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $"+config.EnvConfigPath+", ./confembed.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig loads the file given by --config or the default locations.
func loadConfig() (*config.File, error) {
	var (
		cfg *config.File
		err error
	)

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadDefault()
	}

	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
