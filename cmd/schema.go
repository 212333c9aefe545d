package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/Memily89/smart-sales-memily89/schema"
)

var schemaOpts struct {
	output string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the built-in warehouse table schemas",
	Long: `Schema prints the column names, types and coercion policies of the built-in
customers, products and sales tables, as YAML or JSON. Redirect the output to
a file to document the warehouse layout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderSchemas(schemaOpts.output)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// renderSchemas serialises every built-in schema in the requested format.
func renderSchemas(format string) (string, error) {
	defs := make([]schema.Definition, 0)
	for _, s := range schema.All() {
		defs = append(defs, s.Definition())
	}
	switch format {
	case "yaml":
		b, err := yaml.Marshal(defs)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case "json":
		b, err := json.MarshalIndent(defs, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use yaml or json", format)
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().SortFlags = false
	schemaCmd.SilenceUsage = true
	switches.addFlag(schemaCmd, &schemaOpts.output, "output", "yaml")
}
