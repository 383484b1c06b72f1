package main

import (
	"bufio"
	"encoding/json"
	"os"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sniftern/internguard/internal/company"
	"github.com/sniftern/internguard/internal/model"
)

var (
	batchFile        string
	batchConcurrency int
	batchLimit       int
	batchDryRun      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Merge a JSONL file of classified postings",
	Long: `Reads observations from a JSON Lines file (one observation per line)
and merges them concurrently. Malformed lines and individual merge
failures are logged and skipped; the batch keeps going.

Example:
  internguard batch --file verdicts.jsonl --concurrency 8`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		observations, err := readObservations(batchFile)
		if err != nil {
			return err
		}
		zap.L().Info("parsed batch file",
			zap.String("file", batchFile),
			zap.Int("observations", len(observations)),
		)

		if batchLimit > 0 && batchLimit < len(observations) {
			observations = observations[:batchLimit]
		}

		if batchDryRun {
			return printJSON(observations)
		}

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		merger := company.NewMerger(s)

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Ingest.Concurrency
		}
		if concurrency <= 0 {
			concurrency = 1
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		var merged, skipped, failed atomic.Int64

		for _, obs := range observations {
			obs := obs
			g.Go(func() error {
				rec, mergeErr := merger.Merge(gCtx, obs)
				if mergeErr != nil {
					failed.Add(1)
					zap.L().Error("batch: merge failed",
						zap.String("company", obs.CompanyName),
						zap.Error(mergeErr),
					)
					return nil // don't abort batch on individual failure
				}
				if rec == nil {
					skipped.Add(1)
					return nil
				}
				merged.Add(1)
				return nil
			})
		}

		_ = g.Wait()

		zap.L().Info("batch complete",
			zap.Int("total", len(observations)),
			zap.Int64("merged", merged.Load()),
			zap.Int64("skipped", skipped.Load()),
			zap.Int64("failed", failed.Load()),
		)

		n, err := s.Count(ctx)
		if err != nil {
			return eris.Wrap(err, "batch: count companies")
		}
		zap.L().Info("companies tracked", zap.Int("count", n))
		return nil
	},
}

// readObservations parses a JSONL file, skipping blank and malformed
// lines.
func readObservations(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close()

	var observations []model.Observation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var obs model.Observation
		if err := json.Unmarshal(line, &obs); err != nil {
			zap.L().Warn("batch: skipping malformed line",
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			continue
		}
		observations = append(observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "batch: read %s", path)
	}
	return observations, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "JSONL file of observations (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent merges (default from config)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "process at most N observations")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "parse and print observations without merging")
	batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
