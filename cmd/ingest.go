package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/company"
	"github.com/sniftern/internguard/internal/model"
)

var (
	ingestName       string
	ingestWebsite    string
	ingestLocation   string
	ingestVerdict    string
	ingestConfidence float64
	ingestPatterns   []string
	ingestFile       string
	ingestTextFile   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Record one classified posting into the company stats",
	Long: `Merges a single REAL/FAKE verdict into the aggregated company statistics.

The observation comes from flags, a JSON file (--file), or raw posting
text (--text-file) run through the configured extractor.

Examples:
  internguard ingest --name "Acme Pvt Ltd" --verdict REAL --website acme.com
  internguard ingest --file observation.json
  internguard ingest --text-file posting.txt --verdict FAKE`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		obs, err := buildObservation(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := company.NewMerger(s).Merge(ctx, obs)
		if err != nil {
			return eris.Wrap(err, "ingest: merge observation")
		}
		if rec == nil {
			zap.L().Warn("observation skipped: company name unresolvable",
				zap.String("raw_name", obs.CompanyName))
			fmt.Println(`{"status": "skipped"}`)
			return nil
		}

		return printJSON(rec)
	},
}

// buildObservation assembles the observation from whichever input the
// caller provided. Flags override file-sourced fields.
func buildObservation(cmd *cobra.Command) (model.Observation, error) {
	var obs model.Observation

	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return obs, eris.Wrapf(err, "ingest: read %s", ingestFile)
		}
		if err := json.Unmarshal(data, &obs); err != nil {
			return obs, eris.Wrapf(err, "ingest: parse %s", ingestFile)
		}
	}

	if ingestTextFile != "" {
		data, err := os.ReadFile(ingestTextFile)
		if err != nil {
			return obs, eris.Wrapf(err, "ingest: read %s", ingestTextFile)
		}
		extractor, err := newExtractor(cfg)
		if err != nil {
			return obs, err
		}
		info, err := extractor.Extract(cmd.Context(), string(data))
		if err != nil {
			return obs, eris.Wrap(err, "ingest: extract fields")
		}
		obs.CompanyName = info.CompanyName
		obs.Website = info.Website
		obs.Location = info.Location
	}

	if ingestName != "" {
		obs.CompanyName = ingestName
	}
	if ingestWebsite != "" {
		obs.Website = ingestWebsite
	}
	if ingestLocation != "" {
		obs.Location = ingestLocation
	}
	if ingestVerdict != "" {
		obs.Verdict = ingestVerdict
	}
	if cmd.Flags().Changed("confidence") {
		obs.Confidence = ingestConfidence
	}
	if len(ingestPatterns) > 0 {
		obs.Patterns = ingestPatterns
	}

	if strings.TrimSpace(obs.Verdict) == "" {
		return obs, eris.New("ingest: a verdict is required (--verdict or file)")
	}
	return obs, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "company name as reported")
	ingestCmd.Flags().StringVar(&ingestWebsite, "website", "", "company website")
	ingestCmd.Flags().StringVar(&ingestLocation, "location", "", "posting location")
	ingestCmd.Flags().StringVar(&ingestVerdict, "verdict", "", "classification verdict (REAL/FAKE)")
	ingestCmd.Flags().Float64Var(&ingestConfidence, "confidence", 0, "classifier confidence score")
	ingestCmd.Flags().StringSliceVar(&ingestPatterns, "patterns", nil, "matched fraud/legitimacy patterns")
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "JSON file holding the observation")
	ingestCmd.Flags().StringVar(&ingestTextFile, "text-file", "", "raw posting text to run through the extractor")
	rootCmd.AddCommand(ingestCmd)
}
