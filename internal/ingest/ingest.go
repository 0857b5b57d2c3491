// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest fetches raw records from upstream sources and normalizes
// them into the canonical SourceRecord shape, scoring arXiv papers with the
// ingestion-time relevance policy.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// Source fetches records from one upstream. Each source (arXiv, Hugging
// Face) implements this interface; the pipeline treats them uniformly.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cfg types.IngestConfig) ([]types.SourceRecord, error)
}

// Output holds the per-source record batches from one ingestion run.
type Output struct {
	// Batches maps source name to its normalized, scored records.
	Batches map[string][]types.SourceRecord

	// SourceErrors lists sources that failed, as "name: error" strings.
	SourceErrors []string
}

// Run fetches every source in order. A failing source produces a warning
// on w and an empty batch; it never aborts the remaining sources.
//
// arXiv batches are scored and filtered with the ingestion-time policy so
// their records reach aggregation carrying a trusted raw score. Hosted
// model batches are left unscored; the aggregation scorer handles them.
func Run(ctx context.Context, sources []Source, cfg types.IngestConfig, now time.Time, w io.Writer) Output {
	out := Output{Batches: make(map[string][]types.SourceRecord, len(sources))}

	for _, src := range sources {
		records, err := src.Fetch(ctx, cfg)
		if err != nil {
			out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("%s: %v", src.Name(), err))
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.Name(), err)
			out.Batches[src.Name()] = nil
			continue
		}

		if src.Name() == "arxiv" {
			scored := FilterAndScore(records, cfg, now)
			fmt.Fprintf(w, "  %s: kept %d of %d records (score >= 0.4)\n", src.Name(), len(scored), len(records))
			records = scored
		} else {
			fmt.Fprintf(w, "  %s: %d records\n", src.Name(), len(records))
		}
		out.Batches[src.Name()] = records
	}
	return out
}
