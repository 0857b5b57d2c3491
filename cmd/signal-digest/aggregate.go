// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-digest/internal/aggregate"
	"github.com/pdiddy/signal-digest/internal/store"
	"github.com/pdiddy/signal-digest/pkg/types"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Merge, dedupe, score, and rank the day's source batches",
	Long: `Aggregate merges the per-source JSON snapshots for a date, deduplicates
them with first-seen-wins identity keys, scores every record, drops those
below the relevance threshold, and ranks the survivors. The result is saved
to the signal database and exported as data/aggregated/<date>.json.`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().String("data-dir", "", "base data directory (default: data)")
	aggregateCmd.Flags().Float64("threshold", 0, "relevance threshold (default 0.4)")
	aggregateCmd.Flags().String("date", "", "run date YYYY-MM-DD (default: today)")
	aggregateCmd.Flags().Bool("json", false, "print the full aggregate as JSON")

	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfg.Store.DataDir
	}
	if v, _ := cmd.Flags().GetFloat64("threshold"); v > 0 {
		cfg.Aggregate.Threshold = v
	}
	date, err := runDate(cmd)
	if err != nil {
		return err
	}
	day := date.Format("2006-01-02")

	batches := make(map[string][]types.SourceRecord, len(cfg.Aggregate.Sources))
	for _, src := range cfg.Aggregate.Sources {
		batch, err := readBatch(dataDir, src, day)
		if err != nil {
			return err
		}
		batches[src] = batch
	}

	opts := aggregate.Options{Threshold: cfg.Aggregate.Threshold}
	result := aggregate.Run(date, batches, cfg.Aggregate.Sources, opts, os.Stderr)

	s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.SaveRun(ctx, result); err != nil {
		return err
	}
	exportPath, err := s.ExportJSON(ctx, date, filepath.Join(dataDir, "aggregated"))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Kept %d of %d records (threshold %.2f, quality %.2f)\n",
		result.Yield.HighRelevanceItems, result.Yield.TotalItems,
		result.Yield.FilterThreshold, result.Yield.QualityRatio)
	fmt.Println("Exported to", exportPath)
	return nil
}

// readBatch loads one source's snapshot. A source that never ran for the
// date contributes an empty batch, not an error.
func readBatch(dataDir, source, day string) ([]types.SourceRecord, error) {
	path := filepath.Join(dataDir, source, day+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []types.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// runDate parses the --date flag, defaulting to today.
func runDate(cmd *cobra.Command) (time.Time, error) {
	day, _ := cmd.Flags().GetString("date")
	if day == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", day)
	}
	return date, nil
}
