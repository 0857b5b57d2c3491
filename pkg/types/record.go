// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the signal-digest pipeline.
package types

import (
	"math"
	"time"
)

// SourceRecord is the canonical shape every upstream source is normalized
// into before aggregation. Records are immutable once created; one bad or
// partially filled record degrades to zero values rather than failing a batch.
type SourceRecord struct {
	// ExternalID is the canonical identifier assigned by the source
	// (arXiv ID, model ID). May be empty for sources without stable IDs.
	ExternalID string `json:"external_id,omitempty" yaml:"external_id,omitempty"`

	// Title is the record title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Summary is the short body text (feed summary or model card excerpt).
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Abstract is the long-form body text, when the source provides one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// URL is the canonical landing page for the record.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// CodeURL links to an implementation when the source exposes one.
	CodeURL string `json:"code_url,omitempty" yaml:"code_url,omitempty"`

	// Authors lists authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Categories lists source taxonomy terms (e.g. arXiv category codes).
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Published is the publication date reported by the source.
	Published time.Time `json:"published" yaml:"published"`

	// Source tags which upstream produced the record
	// (e.g. "arxiv", "huggingface_model").
	Source string `json:"source" yaml:"source"`

	// Downloads and Likes carry community-interest counters for hosted
	// model entries. Zero for sources that do not report them.
	Downloads int `json:"downloads,omitempty" yaml:"downloads,omitempty"`
	Likes     int `json:"likes,omitempty" yaml:"likes,omitempty"`

	// RawScore is a relevance score assigned at ingestion time. When set
	// it is trusted downstream: the aggregation scorer passes it through
	// unchanged instead of recomputing.
	RawScore *float64 `json:"research_score,omitempty" yaml:"research_score,omitempty"`
}

// IdentityKey returns the deduplication key: the first present of
// external ID, URL, and title. Records with none of the three share the
// empty-string sentinel and are never considered duplicates of each other.
func (r SourceRecord) IdentityKey() string {
	if r.ExternalID != "" {
		return r.ExternalID
	}
	if r.URL != "" {
		return r.URL
	}
	return r.Title
}

// Excerpt returns the record's body text: the summary when present,
// otherwise the abstract.
func (r SourceRecord) Excerpt() string {
	if r.Summary != "" {
		return r.Summary
	}
	return r.Abstract
}

// Tier buckets a relevance score for report assembly.
type Tier string

const (
	TierBreakthrough Tier = "breakthrough" // score >= 0.8
	TierNotable      Tier = "notable"      // 0.6 <= score < 0.8
	TierBaseline     Tier = "baseline"     // 0.4 <= score < 0.6
	TierDiscarded    Tier = "discarded"    // score < 0.4, not persisted
)

// TierForScore maps a relevance score to its tier.
func TierForScore(score float64) Tier {
	switch {
	case score >= 0.8:
		return TierBreakthrough
	case score >= 0.6:
		return TierNotable
	case score >= 0.4:
		return TierBaseline
	default:
		return TierDiscarded
	}
}

// ScoredRecord is a SourceRecord with its relevance score fixed. It is
// immutable once scored.
type ScoredRecord struct {
	SourceRecord `yaml:",inline"`

	// RelevanceScore is in [0,1], rounded to 2 decimals.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Tier returns the tier the record's score falls in.
func (r ScoredRecord) Tier() Tier {
	return TierForScore(r.RelevanceScore)
}

// RoundScore rounds a relevance score to 2 decimals, the precision every
// persisted score carries.
func RoundScore(s float64) float64 {
	return math.Round(s*100) / 100
}

// AggregateResult is the ordered, above-threshold record set produced by
// one aggregation run, sorted by (relevance score desc, published desc)
// with insertion order preserved on ties.
type AggregateResult struct {
	// Date is the run date (day resolution).
	Date time.Time `json:"date" yaml:"date"`

	// Records is the ranked record set.
	Records []ScoredRecord `json:"records" yaml:"records"`

	// Yield summarizes filter effectiveness for the run.
	Yield YieldMetrics `json:"yield" yaml:"yield"`
}

// YieldMetrics records how much of the merged input survived filtering.
// Persisted for monitoring alongside the aggregate itself.
type YieldMetrics struct {
	TotalItems         int     `json:"total_items" yaml:"total_items"`
	HighRelevanceItems int     `json:"high_relevance_items" yaml:"high_relevance_items"`
	FilterThreshold    float64 `json:"filter_threshold" yaml:"filter_threshold"`

	// QualityRatio is high-relevance over total, rounded to 2 decimals.
	// Total counts of zero yield a ratio of zero, not a division error.
	QualityRatio float64 `json:"quality_ratio" yaml:"quality_ratio"`
}

// NewYieldMetrics computes yield metrics from pre- and post-filter counts.
func NewYieldMetrics(total, kept int, threshold float64) YieldMetrics {
	ratio := 0.0
	if total > 0 {
		ratio = RoundScore(float64(kept) / float64(total))
	}
	return YieldMetrics{
		TotalItems:         total,
		HighRelevanceItems: kept,
		FilterThreshold:    threshold,
		QualityRatio:       ratio,
	}
}
