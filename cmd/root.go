package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Memily89/smart-sales-memily89/config"
	"github.com/Memily89/smart-sales-memily89/logger"
)

var (
	// Default values may be set at compile time.
	version   = "0.1.0"
	buildDate = "2026-01-02T03:04+0000"

	logLevel         string
	configFile       string
	stackDumpOnPanic bool
)

var rootCmd = &cobra.Command{
	Use:   "smart-sales",
	Short: "Load prepared sales CSVs into a SQLite warehouse and build an OLAP cube",
	Long: `Smart-sales is a batch ETL utility for the smart-sales teaching dataset.
It extracts prepared CSV files, cleans and types each record against the
built-in warehouse schemas, loads the result into a single-file SQLite
warehouse and aggregates a multidimensional OLAP cube ready for BI tools.

Each run replaces the previous warehouse contents, so re-running against the
same inputs always yields the same warehouse and the same cube.`,
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info",
		"Log level: \"error | warn | info | debug | trace\"")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "",
		"Config file (default: ~/.smart-sales/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false,
		"Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Execute() prints the error.
		os.Exit(1)
	}
}

func newLogger() logger.Logger {
	return logger.NewLogger("smart-sales", logLevel, stackDumpOnPanic)
}

// loadRunConfig resolves the run configuration: built-in defaults, then the
// config file, then SS_* environment variables. Flag overrides are applied by
// each command on top of this.
func loadRunConfig() (config.RunConfig, error) {
	return config.MustLoad(configFile)
}
