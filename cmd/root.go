package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by every subcommand
	logLevel   string // Log verbosity level
	configPath string // Optional YAML file with default settings
	dbPath     string // SQLite database holding the stored process list
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "cpusched",
	Short:        "Discrete-time CPU scheduling simulator (FCFS, SJF, Round Robin)",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		if configPath == "" {
			return nil
		}
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		logrus.Debugf("Loaded config from %s", configPath)
		return applyConfig(cmd.Flags(), cfg)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with default algorithm, quantum, database path and listen address")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "cpusched.db", "SQLite database holding the stored process list")

	rootCmd.AddCommand(runCmd, addCmd, listCmd, clearCmd, generateCmd, serveCmd)
}
