package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Memily89/smart-sales-memily89/actions"
	"github.com/Memily89/smart-sales-memily89/constants"
)

var cubeOpts struct {
	warehouse string
	cubeFile  string
	useGzip   bool
	xlsxFile  string
}

var cubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Aggregate the warehouse into the multidimensional OLAP cube",
	Long: `Cube joins the sales, products and customers tables and aggregates them by
region, product category, product item and sale quarter. Measures cover units
sold, cost of goods, revenue, per-unit averages and quarter-on-quarter revenue
growth. The result is written as CSV (optionally gzipped) and, if requested,
as a spreadsheet. Output is reproducible byte for byte for a given warehouse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("warehouse") {
			cfg.WarehouseDsn = cubeOpts.warehouse
		}
		if f.Changed("cube-file") {
			cfg.CubePath = cubeOpts.cubeFile
		}
		_, err = actions.RunCube(&actions.CubeConfig{
			Log:      log,
			Cfg:      cfg,
			UseGzip:  cubeOpts.useGzip,
			XlsxPath: cubeOpts.xlsxFile,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(cubeCmd)
	cubeCmd.Flags().SortFlags = false
	cubeCmd.SilenceUsage = true
	switches.addFlag(cubeCmd, &cubeOpts.warehouse, "warehouse", constants.DefaultWarehousePath)
	switches.addFlag(cubeCmd, &cubeOpts.cubeFile, "cube-file", constants.DefaultCubePath)
	switches.addFlag(cubeCmd, &cubeOpts.useGzip, "gzip", false)
	switches.addFlag(cubeCmd, &cubeOpts.xlsxFile, "xlsx", "")
}
