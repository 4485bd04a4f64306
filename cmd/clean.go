package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-cli/internal/record"
	"github.com/sells-group/parcel-cli/internal/report"
)

var (
	cleanOutput     string
	cleanPhones     bool
	cleanAddresses  bool
	cleanFillCounty string
	cleanPhoneCol   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Normalize a property table in place",
	Long: `Applies the selected cleanups and writes the result as CSV: strip
phone numbers to digits, title-case street addresses, and fill missing
county values with a fixed default.

Examples:
  parcel-cli clean listings.csv --output cleaned.csv --phones --addresses
  parcel-cli clean listings.csv --output cleaned.csv --fill-county Unverified`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanPhones && !cleanAddresses && cleanFillCounty == "" {
			return eris.New("clean: nothing to do, pass --phones, --addresses, or --fill-county")
		}

		store, err := record.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "clean: load input")
		}

		if cleanPhones {
			n := report.NormalizePhones(store, cleanPhoneCol)
			fmt.Printf("Phones normalized:    %d\n", n)
		}
		if cleanAddresses {
			n := report.NormalizeAddresses(store, cfg.Columns.Street)
			fmt.Printf("Addresses normalized: %d\n", n)
		}
		if cleanFillCounty != "" {
			n := report.FillMissing(store, cfg.Columns.County, cfg.Sentinel, cleanFillCounty)
			fmt.Printf("Counties filled:      %d\n", n)
		}

		if err := store.WriteCSV(cleanOutput); err != nil {
			return eris.Wrap(err, "clean: write output")
		}
		fmt.Printf("Written to %s\n", cleanOutput)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanOutput, "output", "", "path to write the cleaned CSV (required)")
	cleanCmd.Flags().BoolVar(&cleanPhones, "phones", false, "strip phone numbers to digits")
	cleanCmd.Flags().BoolVar(&cleanAddresses, "addresses", false, "title-case street addresses")
	cleanCmd.Flags().StringVar(&cleanFillCounty, "fill-county", "", "fill missing county values with this default")
	cleanCmd.Flags().StringVar(&cleanPhoneCol, "phone-column", "BrokerPhoneNumber", "phone number column name")
	_ = cleanCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cleanCmd)
}
