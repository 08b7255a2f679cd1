package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nvramkit/internal/config"
	"github.com/joshuapare/nvramkit/internal/logger"
	"github.com/joshuapare/nvramkit/pkg/types"
)

var (
	// Global flags
	devicePath string
	verbose    bool
	jsonOut    bool
	logFile    string
	configFile string

	// cfg is resolved from flags, environment and config file before any
	// subcommand runs.
	cfg      = config.DefaultConfig()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "nvramctl",
	Short: "Read and edit Apple NVRAM variables",
	Long: `nvramctl reads, writes and deletes variables in the NVRAM flash of
Apple silicon machines. Variables are addressed as partition:name, where the
partition is "common" or "system"; values are printed and accepted with
non-printable bytes escaped as %xx.

Changes are applied in memory and written back to the device in a single
write only when the whole batch succeeds.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().
		StringVarP(&devicePath, "device", "d", config.DefaultDevice, "Path to the nvram device")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write a JSON log to this file")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/nvramctl/config.yaml)")
}

// loadConfig resolves settings and starts logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, used, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	cfg = loaded

	closeFn, err := logger.Init(logger.Options{Verbose: cfg.Verbose, LogFile: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}
	closeLog = closeFn
	if used != "" {
		logger.Debug("loaded config", "path", used)
	}
	return nil
}

func execute() {
	err := rootCmd.Execute()
	if closeErr := closeLog(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		printError("%s\n", describeError(err))
		os.Exit(1)
	}
}

// describeError prefixes err with its kind so scripts can tell failures apart.
func describeError(err error) string {
	if kind, ok := types.KindOf(err); ok {
		return fmt.Sprintf("%s: %v", kind, err)
	}
	return err.Error()
}

// Helper functions for output

// printInfo prints an info message
func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message to stderr if verbose mode is enabled.
// Stdout carries only command output.
func printVerbose(format string, args ...interface{}) {
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
