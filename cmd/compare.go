package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-cli/internal/record"
	"github.com/sells-group/parcel-cli/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <original> <updated>",
	Short: "Compare county coverage before and after an enrichment run",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		original, err := record.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "compare: load original")
		}
		updated, err := record.Load(args[1])
		if err != nil {
			return eris.Wrap(err, "compare: load updated")
		}

		c, err := report.Compare(original, updated, cfg.Columns.County, cfg.Sentinel)
		if err != nil {
			return err
		}

		fmt.Printf("Missing county before: %d\n", c.OriginalMissing)
		fmt.Printf("Missing county after:  %d\n", c.UpdatedMissing)
		fmt.Printf("Records updated:       %d\n", c.RecordsUpdated)
		fmt.Printf("Success rate:          %s\n", c.SuccessRate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
