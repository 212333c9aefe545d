package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type cliFlag struct {
	name      string // name of flag
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"input-dir": cliFlag{name: "input-dir", shortHand: "i",
		desc: "Directory holding the prepared source CSV files \n" +
			"(customers.csv, products.csv, sales.csv)"},
	"warehouse": cliFlag{name: "warehouse", shortHand: "w",
		desc: "Warehouse location: a sqlite file path or URL of the form sqlite:/path/to/file.db"},
	"table": cliFlag{name: "table", shortHand: "t",
		desc: "CSV of table names to load (customers, products, sales). \n" +
			"Leave blank to load all tables"},
	"batch-size": cliFlag{name: "batch-size", shortHand: "B",
		desc: "Number of rows combined into a single INSERT statement during the load"},
	"cube-file": cliFlag{name: "cube-file", shortHand: "c",
		desc: "Output file for the OLAP cube CSV"},
	"gzip": cliFlag{name: "gzip", shortHand: "z",
		desc: "Gzip the cube CSV output (the file name gains a '.gz' suffix)"},
	"xlsx": cliFlag{name: "xlsx", shortHand: "x",
		desc: "Also write the cube as a spreadsheet to the given file for direct \n" +
			"Excel / Power BI consumption"},
	"seed": cliFlag{name: "seed", shortHand: "s",
		desc: "Random seed for reproducible demo data (0 seeds from the clock)"},
	"customers": cliFlag{name: "customers", shortHand: "C",
		desc: "Number of demo customers to generate"},
	"products": cliFlag{name: "products", shortHand: "P",
		desc: "Number of demo products to generate"},
	"sales": cliFlag{name: "sales", shortHand: "S",
		desc: "Number of demo sales to generate"},
	"output": cliFlag{name: "output", shortHand: "o",
		desc: "Specify \"yaml\" or \"json\" to choose the print format"},
}

// addFlag adds a flag to cobra.Command c based on the type of targetVar
// (which must be a pointer). The flag's name, shorthand and description are
// looked up in map cliFlags.
func (f cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue interface{}) {
	sw, ok := f[name]
	if !ok {
		fmt.Println("error adding flag: unknown flag name ", name)
		os.Exit(1)
	}
	switch p := targetVar.(type) {
	case *string:
		c.Flags().StringVarP(p, sw.name, sw.shortHand, defaultValue.(string), sw.desc)
	case *bool:
		c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultValue.(bool), sw.desc)
	case *int:
		c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultValue.(int), sw.desc)
	case *uint64:
		c.Flags().Uint64VarP(p, sw.name, sw.shortHand, defaultValue.(uint64), sw.desc)
	default:
		fmt.Println("error adding flag: unsupported type for flag ", name)
		os.Exit(1)
	}
}
