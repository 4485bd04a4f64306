package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-cli/internal/record"
	"github.com/sells-group/parcel-cli/internal/report"
)

var splitOutDir string

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Write one CSV per county",
	Long: `Groups rows by county name and writes each group to its own CSV in the
output directory. Rows with a missing county are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := record.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "split: load input")
		}

		created, err := report.SplitByCounty(store, cfg.Columns.County, cfg.Sentinel, splitOutDir)
		if err != nil {
			return err
		}

		for _, path := range created {
			fmt.Println(path)
		}
		fmt.Printf("%d counties written to %s\n", len(created), splitOutDir)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitOutDir, "out-dir", "by-county", "directory for the per-county CSVs")
	rootCmd.AddCommand(splitCmd)
}
