package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Memily89/smart-sales-memily89/actions"
	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/helper"
)

var loadOpts struct {
	inputDir  string
	warehouse string
	tables    string
	batchSize int
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Extract, transform and load the prepared CSVs into the warehouse",
	Long: `Load runs the full ETL pass: each prepared CSV is read, cleaned and typed
against its built-in schema, then written into the SQLite warehouse inside a
single transaction that replaces the table's previous contents. Tables are
independent; a bad source file fails that table only and the command reports
the first failure after all tables have run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("input-dir") {
			cfg.PreparedDir = loadOpts.inputDir
		}
		if f.Changed("warehouse") {
			cfg.WarehouseDsn = loadOpts.warehouse
		}
		if f.Changed("batch-size") {
			cfg.BatchSize = loadOpts.batchSize
		}
		tables := helper.CsvToStringSliceTrimSpaces(loadOpts.tables)
		for _, tbl := range tables {
			if !helper.StringInSlice(tbl, actions.KnownTables()) {
				return fmt.Errorf("unknown table %q: choose from %v", tbl, actions.KnownTables())
			}
		}
		_, err = actions.RunLoad(&actions.LoadConfig{Log: log, Cfg: cfg, Tables: tables})
		return err
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().SortFlags = false
	loadCmd.SilenceUsage = true
	switches.addFlag(loadCmd, &loadOpts.inputDir, "input-dir", constants.DefaultPreparedDir)
	switches.addFlag(loadCmd, &loadOpts.warehouse, "warehouse", constants.DefaultWarehousePath)
	switches.addFlag(loadCmd, &loadOpts.tables, "table", "")
	switches.addFlag(loadCmd, &loadOpts.batchSize, "batch-size", constants.LoadBatchNumRowsDefault)
}
