// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges records from all sources into one deduplicated,
// scored, threshold-filtered, deterministically ordered daily view.
//
// Every function here is a pure function of its input plus static
// configuration; independent batches may be aggregated concurrently.
package aggregate

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// Options control threshold filtering and ordering. Both are configuration
// rather than constants so tests can inject them.
type Options struct {
	// Threshold drops records scoring below it. Zero means the default 0.4.
	Threshold float64

	// Less orders two scored records; nil means the default ordering of
	// relevance score descending, then published date descending. The sort
	// is stable: equal-key records keep their pre-sort relative order.
	Less func(a, b types.ScoredRecord) bool
}

const defaultThreshold = 0.4

// Deduplicate collapses records sharing an identity key, keeping the first
// occurrence and preserving input order. Records whose identity key is the
// empty-string sentinel (no ID, no URL, no title) always pass through; they
// are never duplicates of each other.
func Deduplicate(records []types.SourceRecord) []types.SourceRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]types.SourceRecord, 0, len(records))

	for _, r := range records {
		key := r.IdentityKey()
		if key == "" {
			unique = append(unique, r)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// FilterSort scores each record, drops those below the threshold, and
// orders the survivors. Scores are rounded to 2 decimals when assigned and
// never recomputed afterwards.
func FilterSort(records []types.SourceRecord, opts Options) []types.ScoredRecord {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}

	scored := make([]types.ScoredRecord, 0, len(records))
	for _, r := range records {
		s := Score(r)
		if s < threshold {
			continue
		}
		scored = append(scored, types.ScoredRecord{
			SourceRecord:   r,
			RelevanceScore: types.RoundScore(s),
		})
	}

	less := opts.Less
	if less == nil {
		less = defaultLess
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return less(scored[i], scored[j])
	})
	return scored
}

// defaultLess orders by relevance score descending, then published date
// descending. Records equal on both keys compare false both ways, so the
// stable sort leaves them in insertion order.
func defaultLess(a, b types.ScoredRecord) bool {
	if a.RelevanceScore != b.RelevanceScore {
		return a.RelevanceScore > b.RelevanceScore
	}
	return a.Published.After(b.Published)
}

// Run merges the per-source batches in source order, deduplicates, scores,
// filters, and sorts, producing the day's aggregate and its yield metrics.
// Per-source counts are reported on w.
func Run(date time.Time, batches map[string][]types.SourceRecord, sourceOrder []string, opts Options, w io.Writer) types.AggregateResult {
	var all []types.SourceRecord
	for _, src := range sourceOrder {
		batch := batches[src]
		fmt.Fprintf(w, "  %s: %d entries\n", src, len(batch))
		all = append(all, batch...)
	}

	unique := Deduplicate(all)
	records := FilterSort(unique, opts)

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}

	return types.AggregateResult{
		Date:    date,
		Records: records,
		Yield:   types.NewYieldMetrics(len(unique), len(records), threshold),
	}
}
