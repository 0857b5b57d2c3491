// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/signal-digest/pkg/types"
)

func scorePtr(s float64) *float64 { return &s }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Deduplicate ---

func TestDeduplicateFirstSeenWins(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "2301.07041", Title: "Paper A", Source: "arxiv"},
		{ExternalID: "2301.07041", Title: "Paper A (mirror)", Source: "paperswithcode"},
		{URL: "https://example.com/b", Title: "Paper B"},
		{URL: "https://example.com/b", Title: "Paper B again"},
		{Title: "Paper C"},
	}

	unique := Deduplicate(records)
	if len(unique) != 3 {
		t.Fatalf("len = %d, want 3", len(unique))
	}
	if unique[0].Title != "Paper A" {
		t.Errorf("first survivor = %q, want first-seen %q", unique[0].Title, "Paper A")
	}
	if unique[1].Title != "Paper B" {
		t.Errorf("second survivor = %q, want %q", unique[1].Title, "Paper B")
	}
}

func TestDeduplicateIdentityKeyPrecedence(t *testing.T) {
	// External ID takes precedence over URL, URL over title. Two records
	// with the same title but distinct IDs are not duplicates.
	records := []types.SourceRecord{
		{ExternalID: "id-1", URL: "https://example.com/x", Title: "Same Title"},
		{ExternalID: "id-2", URL: "https://example.com/x", Title: "Same Title"},
	}
	if got := Deduplicate(records); len(got) != 2 {
		t.Errorf("len = %d, want 2 (distinct external IDs)", len(got))
	}
}

func TestDeduplicateEmptyKeySentinel(t *testing.T) {
	// Records with no identity fields at all are never duplicates of each
	// other; both pass through.
	records := []types.SourceRecord{
		{Summary: "orphan one"},
		{Summary: "orphan two"},
	}
	if got := Deduplicate(records); len(got) != 2 {
		t.Errorf("len = %d, want 2 (empty-key records both pass)", len(got))
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "a", Title: "A"},
		{ExternalID: "b", Title: "B"},
		{Title: "C"},
	}
	once := Deduplicate(records)
	twice := Deduplicate(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Deduplicate not idempotent:\nonce  = %v\ntwice = %v", once, twice)
	}
}

func TestDeduplicateEmptyInput(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

// --- Score ---

func TestScoreBuckets(t *testing.T) {
	tests := []struct {
		name   string
		record types.SourceRecord
		want   float64
	}{
		{"no signals", types.SourceRecord{Title: "untitled musings"}, 0.0},
		{"breakthrough only", types.SourceRecord{Title: "A novel approach"}, 0.20},
		{"method only", types.SourceRecord{Title: "Transformer architecture study"}, 0.15},
		{"domain only", types.SourceRecord{Summary: "applications to vision"}, 0.10},
		{"eval only", types.SourceRecord{Abstract: "evaluated on a standard benchmark"}, 0.15},
		{"code link", types.SourceRecord{Title: "untitled musings", CodeURL: "https://github.com/x/y"}, 0.10},
		{"hosted model", types.SourceRecord{Title: "untitled musings", Source: "huggingface_model"}, 0.10},
		{
			"all buckets cap at 0.70",
			types.SourceRecord{
				Title:   "A novel architecture for vision",
				Summary: "outperforms every benchmark",
				CodeURL: "https://github.com/x/y",
			},
			0.70,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.record); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorePassThrough(t *testing.T) {
	r := types.SourceRecord{
		Title:    "A novel state-of-the-art architecture",
		RawScore: scorePtr(0.55),
	}
	if got := Score(r); got != 0.55 {
		t.Errorf("Score() = %v, want trusted raw score 0.55", got)
	}
}

func TestScoreBounded(t *testing.T) {
	records := []types.SourceRecord{
		{},
		{Title: "novel new first breakthrough sota architecture vision benchmark", CodeURL: "x", Source: "huggingface_model"},
		{RawScore: scorePtr(1.0)},
	}
	for _, r := range records {
		s := Score(r)
		if s < 0.0 || s > 1.0 {
			t.Errorf("Score(%+v) = %v, out of [0,1]", r, s)
		}
	}
}

// --- FilterSort ---

func TestFilterSortThreshold(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "hi", RawScore: scorePtr(0.9)},
		{ExternalID: "lo", RawScore: scorePtr(0.39)},
		{ExternalID: "edge", RawScore: scorePtr(0.4)},
	}

	got := FilterSort(records, Options{Threshold: 0.4})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ExternalID != "hi" || got[1].ExternalID != "edge" {
		t.Errorf("order = [%s %s], want [hi edge]", got[0].ExternalID, got[1].ExternalID)
	}
}

func TestFilterMonotonicity(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "a", RawScore: scorePtr(0.45)},
		{ExternalID: "b", RawScore: scorePtr(0.65)},
		{ExternalID: "c", RawScore: scorePtr(0.85)},
		{ExternalID: "d", RawScore: scorePtr(0.25)},
	}

	prev := len(records) + 1
	for _, threshold := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		n := len(FilterSort(records, Options{Threshold: threshold}))
		if n > prev {
			t.Errorf("threshold %v kept %d records, more than %d at a lower threshold", threshold, n, prev)
		}
		prev = n
	}
}

func TestFilterSortStable(t *testing.T) {
	// Identical (score, date) pairs must keep their pre-sort relative order.
	d := day("2026-08-29")
	records := []types.SourceRecord{
		{ExternalID: "first", Published: d, RawScore: scorePtr(0.5)},
		{ExternalID: "second", Published: d, RawScore: scorePtr(0.5)},
		{ExternalID: "third", Published: d, RawScore: scorePtr(0.5)},
	}

	got := FilterSort(records, Options{Threshold: 0.4})
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if got[i].ExternalID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ExternalID, id)
		}
	}
}

func TestFilterSortDateBreaksTies(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "older", Published: day("2026-08-27"), RawScore: scorePtr(0.5)},
		{ExternalID: "newer", Published: day("2026-08-29"), RawScore: scorePtr(0.5)},
	}
	got := FilterSort(records, Options{Threshold: 0.4})
	if got[0].ExternalID != "newer" {
		t.Errorf("got[0] = %s, want newer (date desc on score ties)", got[0].ExternalID)
	}
}

func TestFilterSortCustomLess(t *testing.T) {
	records := []types.SourceRecord{
		{ExternalID: "b", RawScore: scorePtr(0.9)},
		{ExternalID: "a", RawScore: scorePtr(0.5)},
	}
	got := FilterSort(records, Options{
		Threshold: 0.4,
		Less: func(x, y types.ScoredRecord) bool {
			return x.ExternalID < y.ExternalID
		},
	})
	if got[0].ExternalID != "a" {
		t.Errorf("got[0] = %s, want a (injected ordering)", got[0].ExternalID)
	}
}

func TestFilterSortEmptyInput(t *testing.T) {
	if got := FilterSort(nil, Options{}); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

// --- Run ---

// TestRunScenario covers the full merge→dedupe→filter→sort path: a duplicate
// ID keeps its first-seen (high) score, and survivors come out ranked.
func TestRunScenario(t *testing.T) {
	batches := map[string][]types.SourceRecord{
		"arxiv": {
			{ExternalID: "p1", RawScore: scorePtr(0.85)},
			{ExternalID: "p2", RawScore: scorePtr(0.55)},
		},
		"paperswithcode": {
			{ExternalID: "p1", RawScore: scorePtr(0.2)},
		},
	}

	result := Run(day("2026-08-30"), batches, []string{"arxiv", "paperswithcode"}, Options{}, io.Discard)

	if len(result.Records) != 2 {
		t.Fatalf("len = %d, want 2", len(result.Records))
	}
	if result.Records[0].ExternalID != "p1" || result.Records[0].RelevanceScore != 0.85 {
		t.Errorf("got[0] = %s(%v), want p1(0.85)", result.Records[0].ExternalID, result.Records[0].RelevanceScore)
	}
	if result.Records[1].ExternalID != "p2" || result.Records[1].RelevanceScore != 0.55 {
		t.Errorf("got[1] = %s(%v), want p2(0.55)", result.Records[1].ExternalID, result.Records[1].RelevanceScore)
	}

	if result.Yield.TotalItems != 2 || result.Yield.HighRelevanceItems != 2 {
		t.Errorf("yield = %+v, want total 2 kept 2", result.Yield)
	}
	if result.Yield.QualityRatio != 1.0 {
		t.Errorf("quality ratio = %v, want 1.0", result.Yield.QualityRatio)
	}
}

func TestRunEmptyBatches(t *testing.T) {
	result := Run(day("2026-08-30"), nil, []string{"arxiv"}, Options{}, io.Discard)
	if len(result.Records) != 0 {
		t.Errorf("len = %d, want 0", len(result.Records))
	}
	if result.Yield.QualityRatio != 0 {
		t.Errorf("quality ratio = %v, want 0 on empty input", result.Yield.QualityRatio)
	}
}

// --- Tier ---

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.Tier
	}{
		{0.95, types.TierBreakthrough},
		{0.8, types.TierBreakthrough},
		{0.79, types.TierNotable},
		{0.6, types.TierNotable},
		{0.59, types.TierBaseline},
		{0.4, types.TierBaseline},
		{0.39, types.TierDiscarded},
		{0.0, types.TierDiscarded},
	}
	for _, tt := range tests {
		if got := types.TierForScore(tt.score); got != tt.want {
			t.Errorf("TierForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
