// Package cmd provides the mzentrap CLI commands.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mzentrap/mzentrap/internal/config"
)

const progName = "mzEntrap"

// Program version, overridden at build time.
var progVersion = "1.0.0"

var (
	configPath string
	logFile    string
	logLevel   string

	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "mzentrap",
	Short: "mzEntrap - entrapment-based empirical FDR estimation",
	Long: `mzEntrap estimates the empirical false discovery rate of ranked peptide
identifications using paired entrapment experiments. Each original library
peptide is paired with a deliberately injected entrapment peptide; comparing
every identification against its paired counterpart's score yields two
estimates alongside the classical target-decoy q-value:

- combined EFDR: count-based, from entrapment/original acceptance counts
- paired EFDR: additionally accounts for entrapments that beat their
  paired original

Pairing is resolved independently per acquisition file and per multiplexing
channel.`,
	Version:       progVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Default()
		if configPath != "" {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		}
		if logFile != "" {
			cfg.Log.File = logFile
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger, logCleanup = config.SetupLogger(cfg.Log.File, cfg.LogLevel())
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCleanup != nil {
			return logCleanup()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(summarizeCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON logs to this file in addition to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}
