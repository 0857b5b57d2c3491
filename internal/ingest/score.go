// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// knownLabs lists institution name fragments that earn the author
// reputation bonus when found in an author string. Process-wide static
// configuration; read-only after init.
var knownLabs = []string{
	"deepmind", "google", "openai", "meta", "facebook", "microsoft",
	"anthropic", "apple", "nvidia", "stanford", "mit", "berkeley",
	"cmu", "oxford", "cambridge", "eth", "toronto", "montreal",
	"huggingface", "cohere", "inflection", "adept",
}

// Novelty term buckets. Unlike the aggregation scorer, each occurrence
// contributes: the ingestion policy rewards a record for matching several
// terms in a bucket, then caps the total.
var (
	noveltyBreakthroughTerms = []string{
		"novel", "new", "first", "breakthrough", "state-of-the-art", "sota",
		"outperforms", "improves", "achieves", "surpasses", "efficient",
		"scalable", "surprising", "unexpected",
	}
	noveltyMethodTerms = []string{
		"architecture", "mechanism", "framework", "approach", "method",
		"algorithm", "technique", "strategy", "model",
	}
	noveltyApplicationTerms = []string{
		"vision", "language", "multimodal", "reasoning", "generation",
		"understanding", "translation", "classification", "detection",
	}
)

const (
	baseScore        = 0.3
	reputationWeight = 0.3
	noveltyWeight    = 0.3
	priorityBonus    = 0.2
	monitoredBonus   = 0.1
	recencyBonus     = 0.1
)

// authorReputation returns 0.8 when any author string contains a known
// institution fragment, 0 otherwise.
func authorReputation(authors []string) float64 {
	for _, author := range authors {
		lower := strings.ToLower(author)
		for _, lab := range knownLabs {
			if strings.Contains(lower, lab) {
				return 0.8
			}
		}
	}
	return 0.0
}

// noveltyScore estimates novelty from keyword occurrences in title+summary,
// capped at 1.0.
func noveltyScore(title, summary string) float64 {
	text := strings.ToLower(title + " " + summary)

	score := 0.0
	for _, term := range noveltyBreakthroughTerms {
		if strings.Contains(text, term) {
			score += 0.15
		}
	}
	for _, term := range noveltyMethodTerms {
		if strings.Contains(text, term) {
			score += 0.05
		}
	}
	for _, term := range noveltyApplicationTerms {
		if strings.Contains(text, term) {
			score += 0.03
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// categoryBonus returns the full bonus when the record carries a priority
// category, the reduced bonus for any other monitored category, and 0
// otherwise.
func categoryBonus(categories, priority, monitored []string) float64 {
	for _, c := range categories {
		for _, p := range priority {
			if c == p {
				return priorityBonus
			}
		}
	}
	for _, c := range categories {
		for _, m := range monitored {
			if c == m {
				return monitoredBonus
			}
		}
	}
	return 0.0
}

// Score computes the ingestion-time relevance score: a 0.3 base plus
// weighted author reputation, capped novelty, category priority, and a
// same-day recency bonus, clamped to [0,1].
//
// This is a distinct policy from the aggregation scorer: weight schedules
// differ and the two are never unified. Records it scores carry the result
// as a trusted raw score downstream.
func Score(r types.SourceRecord, cfg types.IngestConfig, now time.Time) float64 {
	score := baseScore

	score += authorReputation(r.Authors) * reputationWeight
	score += noveltyScore(r.Title, r.Summary) * noveltyWeight
	score += categoryBonus(r.Categories, cfg.PriorityCategories, cfg.Categories)

	if !r.Published.IsZero() && sameDay(r.Published, now) {
		score += recencyBonus
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// FilterAndScore scores each record, keeps those at or above the keep
// threshold with the rounded score attached as a trusted raw score, and
// sorts by score descending (stable, so input order breaks ties).
func FilterAndScore(records []types.SourceRecord, cfg types.IngestConfig, now time.Time) []types.SourceRecord {
	const keepThreshold = 0.4

	kept := make([]types.SourceRecord, 0, len(records))
	for _, r := range records {
		s := types.RoundScore(Score(r, cfg, now))
		if s < keepThreshold {
			continue
		}
		r.RawScore = &s
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return *kept[i].RawScore > *kept[j].RawScore
	})
	return kept
}
