package main

import (
	"fmt"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/enrich"
	"github.com/sells-group/parcel-cli/internal/record"
	"github.com/sells-group/parcel-cli/pkg/deeds"
	"github.com/sells-group/parcel-cli/pkg/geocode"
)

var (
	enrichInput          string
	enrichOutput         string
	enrichLimit          int
	enrichDryRun         bool
	enrichSkipOwners     bool
	enrichStrictProgress bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing county and owner fields in a property table",
	Long: `Reads a property table (CSV or XLSX), geocodes rows with a missing
county name against the US Census geocoder, looks up title owners on the
registered county deed-record sites, and writes the enriched table as CSV.

Rows that already carry a value are left untouched; unresolved rows keep
their original value and are reported in the run summary.

Examples:
  # Dry run - count missing fields only, no network calls
  parcel-cli enrich --input listings.csv --output enriched.csv --dry-run

  # County enrichment only
  parcel-cli enrich --input listings.csv --output enriched.csv --skip-owners

  # Full run, first 10 candidates per phase
  parcel-cli enrich --input listings.xlsx --output enriched.csv --limit 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		columns := columnsFromConfig()

		if enrichDryRun {
			return printDryRun(columns)
		}
		if enrichOutput == "" {
			return eris.New("enrich: --output is required")
		}

		censusDelay := time.Duration(cfg.Census.DelaySecs * float64(time.Second))
		scrapeDelay := time.Duration(cfg.Scrape.DelaySecs * float64(time.Second))

		geoOpts := []geocode.Option{geocode.WithBaseURL(cfg.Census.BaseURL)}
		if cfg.Census.CachePath != "" {
			geoOpts = append(geoOpts, geocode.WithCache(cfg.Census.CachePath))
		}
		client, err := geocode.NewClient(geoOpts...)
		if err != nil {
			return eris.Wrap(err, "enrich: init geocode client")
		}

		county := enrich.NewCountyEnricher(client, censusDelay,
			time.Duration(cfg.Census.TimeoutSecs)*time.Second)

		var owner *enrich.OwnerEnricher
		var session *deeds.Session
		if !enrichSkipOwners {
			session = deeds.NewSession(
				deeds.WithHeadless(cfg.Scrape.Headless),
				deeds.WithWaitTimeout(time.Duration(cfg.Scrape.WaitSecs)*time.Second),
			)

			registry := enrich.NewRegistry()
			for _, site := range []deeds.Site{
				deeds.FultonSite(cfg.Sites.FultonURL),
				deeds.DekalbSite(cfg.Sites.DekalbURL),
			} {
				if err := site.Validate(); err != nil {
					zap.L().Warn("skipping owner site", zap.String("county", site.County), zap.Error(err))
					continue
				}
				registry.Register(deeds.NewSiteLookup(session, site))
			}

			owner = enrich.NewOwnerEnricher(registry, scrapeDelay,
				time.Duration(cfg.Scrape.TimeoutSecs)*time.Second)
			zap.L().Info("owner lookups registered", zap.Strings("counties", registry.Counties()))
		}

		p := enrich.New(columns, cfg.Sentinel, county, owner)
		if session != nil {
			p.SetSession(session)
		}
		p.SetLimit(enrichLimit)
		p.SetProgress(func(index, total int, outcome enrich.Outcome) {
			status := "resolved"
			detail := outcome.Value
			if !outcome.Resolved {
				status = "unresolved"
				detail = outcome.Reason
			}
			fmt.Printf("  [%d/%d] %s: %s\n", index+1, total, status, detail)
		}, enrichStrictProgress)

		summary, err := p.Run(ctx, enrichInput, enrichOutput)
		if err != nil {
			return eris.Wrap(err, "enrich: run")
		}

		fmt.Printf("\nRun %s complete in %s\n", summary.RunID, summary.Elapsed.Round(time.Millisecond))
		fmt.Printf("  Rows:   %d\n", summary.Rows)
		fmt.Printf("  County: %s (%d already complete)\n", summary.County, summary.County.AlreadyComplete)
		if !enrichSkipOwners {
			fmt.Printf("  Owner:  %s (%d already complete)\n", summary.Owner, summary.Owner.AlreadyComplete)
		}
		fmt.Printf("  Output: %s\n", enrichOutput)
		return nil
	},
}

// printDryRun loads the table and reports what a run would attempt, without
// touching the geocoder or any county site.
func printDryRun(columns record.Columns) error {
	store, err := record.Load(enrichInput)
	if err != nil {
		return eris.Wrap(err, "enrich: load input")
	}
	if err := store.RequireColumns(columns.Street, columns.City, columns.State, columns.Zip); err != nil {
		return err
	}

	missingCounty := slices.Collect(store.MissingRows(columns.County, cfg.Sentinel))
	missingOwner := slices.Collect(store.MissingRows(columns.Owner, cfg.Sentinel))

	fmt.Printf("Dry run: %s\n", enrichInput)
	fmt.Printf("  Rows:            %d\n", store.Len())
	fmt.Printf("  Missing county:  %d\n", len(missingCounty))
	fmt.Printf("  Missing owner:   %d\n", len(missingOwner))
	if enrichLimit > 0 {
		fmt.Printf("  Limit per phase: %d\n", enrichLimit)
	}
	return nil
}

func columnsFromConfig() record.Columns {
	return record.Columns{
		Street: cfg.Columns.Street,
		City:   cfg.Columns.City,
		State:  cfg.Columns.State,
		Zip:    cfg.Columns.Zip,
		County: cfg.Columns.County,
		Owner:  cfg.Columns.Owner,
	}
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "path to input table, .csv or .xlsx (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "path to write the enriched CSV (required unless --dry-run)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max candidate rows per phase (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "detect and count missing fields, skip all lookups")
	enrichCmd.Flags().BoolVar(&enrichSkipOwners, "skip-owners", false, "run the county phase only")
	enrichCmd.Flags().BoolVar(&enrichStrictProgress, "strict-progress", false, "abort the run if the progress printer panics")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}
