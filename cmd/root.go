package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exposim/exposim/study"
)

var (
	settingsPath string // Harness settings file (exposim.yaml)
	logLevel     string // Log verbosity override; empty defers to settings
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "exposim",
	Short: "Configuration and caching harness for EM exposure simulation campaigns",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initRun loads the settings and applies the effective log level. Every
// subcommand Run starts here.
func initRun() Settings {
	s, err := LoadSettings(settingsPath)
	if err != nil {
		logrus.Fatalf("Invalid settings: %v", err)
	}
	effective := s.LogLevel
	if logLevel != "" {
		effective = logLevel
	}
	level, err := logrus.ParseLevel(effective)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", effective)
	}
	logrus.SetLevel(level)
	return s
}

// mustResolve loads one configuration document and resolves its inheritance
// chain, exiting on failure.
func mustResolve(s Settings, path string) *study.Tree {
	if path == "" {
		logrus.Fatalf("No configuration provided; use --config")
	}
	tree, err := study.NewResolver(s.ConfigsDir).Resolve(path)
	if err != nil {
		logrus.Fatalf("Resolve %s: %v", path, err)
	}
	return tree
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "exposim.yaml", "Harness settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "Log level (trace, debug, info, warn, error, fatal, panic); overrides settings")
}
