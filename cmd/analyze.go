package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-cli/internal/record"
	"github.com/sells-group/parcel-cli/internal/report"
)

var (
	analyzeFormat string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Summarize a property table",
	Long: `Reports dataset totals, the missing-county count, the top counties,
cities and zip codes, property-type counts, and price statistics when a
price column is present.

Examples:
  parcel-cli analyze listings.csv
  parcel-cli analyze listings.xlsx --format json --output report.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := record.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "analyze: load input")
		}

		analysis := report.Analyze(store, columnsFromConfig(), cfg.Sentinel)
		out, err := analysis.Render(analyzeFormat)
		if err != nil {
			return err
		}

		if analyzeOutput != "" {
			if err := os.WriteFile(analyzeOutput, out, 0o600); err != nil {
				return eris.Wrap(err, "analyze: write report")
			}
			fmt.Printf("Report written to %s\n", analyzeOutput)
			return nil
		}

		fmt.Print(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "report format: text, json, or yaml")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "write the report to a file (default: stdout)")
	rootCmd.AddCommand(analyzeCmd)
}
