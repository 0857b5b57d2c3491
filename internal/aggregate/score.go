// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"strings"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// Signal term buckets. Each bucket contributes a fixed increment when any
// of its terms appears in the lowercased title+summary+abstract. Loaded
// once and read-only, so safe to share across concurrent scoring calls.
var (
	breakthroughTerms = []string{"novel", "new", "first", "breakthrough", "sota", "state-of-the-art"}
	methodTerms       = []string{"architecture", "mechanism", "framework", "algorithm", "method"}
	domainTerms       = []string{"vision", "language", "multimodal", "reasoning", "generation"}
	evalTerms         = []string{"benchmark", "evaluation", "performance", "outperform", "achieves"}
)

const (
	breakthroughBonus = 0.20
	methodBonus       = 0.15
	domainBonus       = 0.10
	evalBonus         = 0.15
	implBonus         = 0.10
)

// hostedModelSource tags records that are hosted-model entries; these carry
// the implementation-availability signal even without a code link.
const hostedModelSource = "huggingface_model"

// Score computes the aggregation-time relevance score for a record.
//
// A record that already carries a trusted ingestion-time score is passed
// through unchanged; scoring is idempotent once a score exists. Otherwise
// the score is the sum of the five bucket bonuses, clamped to [0,1]. The
// buckets alone reach at most 0.70.
func Score(r types.SourceRecord) float64 {
	if r.RawScore != nil {
		return *r.RawScore
	}

	text := strings.ToLower(r.Title + " " + r.Summary + " " + r.Abstract)

	score := 0.0
	if containsAny(text, breakthroughTerms) {
		score += breakthroughBonus
	}
	if containsAny(text, methodTerms) {
		score += methodBonus
	}
	if containsAny(text, domainTerms) {
		score += domainBonus
	}
	if containsAny(text, evalTerms) {
		score += evalBonus
	}
	if r.CodeURL != "" || r.Source == hostedModelSource {
		score += implBonus
	}

	return clamp01(score)
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func clamp01(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
