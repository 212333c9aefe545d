package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Memily89/smart-sales-memily89/actions"
	"github.com/Memily89/smart-sales-memily89/constants"
)

var seedOpts struct {
	dir       string
	seed      uint64
	customers int
	products  int
	sales     int
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo source CSVs ready for a load run",
	Long: `Seed writes customers.csv, products.csv and sales.csv into the input
directory. The data is deliberately imperfect in the ways the pipeline is
built to clean: a few duplicate transactions, blank units and out-of-range
discounts. Supply a seed for reproducible output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		dir := seedOpts.dir
		if !cmd.Flags().Changed("input-dir") {
			cfg, err := loadRunConfig()
			if err != nil {
				return err
			}
			dir = cfg.PreparedDir
		}
		_, err := actions.RunSeed(&actions.SeedConfig{
			Log:       log,
			Dir:       dir,
			Seed:      seedOpts.seed,
			Customers: seedOpts.customers,
			Products:  seedOpts.products,
			Sales:     seedOpts.sales,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().SortFlags = false
	seedCmd.SilenceUsage = true
	switches.addFlag(seedCmd, &seedOpts.dir, "input-dir", constants.DefaultPreparedDir)
	switches.addFlag(seedCmd, &seedOpts.seed, "seed", uint64(0))
	switches.addFlag(seedCmd, &seedOpts.customers, "customers", 50)
	switches.addFlag(seedCmd, &seedOpts.products, "products", 20)
	switches.addFlag(seedCmd, &seedOpts.sales, "sales", 500)
}
