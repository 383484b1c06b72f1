package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sniftern/internguard/internal/analytics"
)

var (
	statsView string
	statsTop  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregated fraud statistics",
	Long: `Prints analytics over the aggregated company statistics as JSON.

Views:
  dashboard   full analytics payload (default)
  totals      global real/fake counters
  pie         legit-vs-fake pie chart series
  top-fraud   companies ranked by fraud percentage (see --top)
  locations   remote vs onsite entry counts`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := analytics.New(s)

		switch statsView {
		case "dashboard", "":
			dash, err := svc.Dashboard(ctx)
			if err != nil {
				return err
			}
			return printJSON(dash)
		case "totals":
			totals, err := svc.Totals(ctx)
			if err != nil {
				return err
			}
			return printJSON(totals)
		case "pie":
			pie, err := svc.PieChart(ctx)
			if err != nil {
				return err
			}
			return printJSON(pie)
		case "top-fraud":
			top, err := svc.TopFraudCompanies(ctx, statsTop)
			if err != nil {
				return err
			}
			return printJSON(top)
		case "locations":
			locs, err := svc.RemoteVsOnsite(ctx)
			if err != nil {
				return err
			}
			return printJSON(locs)
		default:
			return eris.Errorf("unknown view: %s", statsView)
		}
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsView, "view", "dashboard", "which view to print")
	statsCmd.Flags().IntVar(&statsTop, "top", analytics.DefaultTopN, "rows in the top-fraud ranking")
	rootCmd.AddCommand(statsCmd)
}
