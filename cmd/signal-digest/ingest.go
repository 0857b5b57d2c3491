// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-digest/internal/ingest"
	"github.com/pdiddy/signal-digest/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and normalize records from research sources",
	Long: `Ingest fetches the day's records from the configured sources, normalizes
them into the canonical record shape, scores arXiv papers with the
ingestion-time relevance policy, and writes one JSON snapshot per source
under the data directory. A failing source is skipped with a warning.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("source", "all", "source to fetch: arxiv, huggingface, or all")
	ingestCmd.Flags().String("data-dir", "", "base data directory (default: data)")
	ingestCmd.Flags().Int("max-results", 0, "maximum records per source")
	ingestCmd.Flags().Int("lookback-days", 0, "days back the arXiv query window extends")
	ingestCmd.Flags().Duration("timeout", 0, "HTTP request timeout")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Ingest.MaxResults = v
	}
	if v, _ := cmd.Flags().GetInt("lookback-days"); v > 0 {
		cfg.Ingest.LookbackDays = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Ingest.Timeout = v
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfg.Store.DataDir
	}

	sources, err := selectSources(cmd, cfg.Ingest)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources enabled")
	}

	now := time.Now()
	out := ingest.Run(context.Background(), sources, cfg.Ingest, now, os.Stderr)

	day := now.Format("2006-01-02")
	for _, src := range sources {
		if err := writeBatch(dataDir, src.Name(), day, out.Batches[src.Name()]); err != nil {
			return err
		}
	}

	if len(out.SourceErrors) == len(sources) {
		return fmt.Errorf("all sources failed: %v", out.SourceErrors)
	}
	fmt.Printf("Ingested %d source(s) into %s\n", len(sources)-len(out.SourceErrors), dataDir)
	return nil
}

func selectSources(cmd *cobra.Command, cfg types.IngestConfig) ([]ingest.Source, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	which, _ := cmd.Flags().GetString("source")
	var sources []ingest.Source
	switch which {
	case "arxiv":
		sources = append(sources, &ingest.ArxivSource{Client: client})
	case "huggingface":
		sources = append(sources, &ingest.HuggingFaceSource{Client: client})
	case "all", "":
		if cfg.EnableArxiv {
			sources = append(sources, &ingest.ArxivSource{Client: client})
		}
		if cfg.EnableHuggingFace {
			sources = append(sources, &ingest.HuggingFaceSource{Client: client})
		}
	default:
		return nil, fmt.Errorf("unknown source %q: use arxiv, huggingface, or all", which)
	}
	return sources, nil
}

// writeBatch saves one source's records to dataDir/<source>/<day>.json.
// An empty batch still produces a file, recording that the source ran.
func writeBatch(dataDir, source, day string, records []types.SourceRecord) error {
	dir := filepath.Join(dataDir, source)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	if records == nil {
		records = []types.SourceRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s batch: %w", source, err)
	}

	path := filepath.Join(dir, day+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
