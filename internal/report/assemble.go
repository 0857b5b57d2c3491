// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the daily narrative digest from an aggregated
// signal batch. Output is level-2-heading markdown, the exact shape the
// compile package parses back into sections.
//
// Assembly is rule-based templating over the scored records. A report is
// a pure function of its AggregateResult: same input, same document.
package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/signal-digest/pkg/types"
)

const (
	maxBreakthroughPapers = 3
	maxSupportingPapers   = 3
	maxHostedArtifacts    = 5
	maxWatchItems         = 3

	summaryExcerptLen = 300
	supportExcerptLen = 200
	watchTitleLen     = 60
)

// focusKind classifies the day's batch for the opening paragraph.
type focusKind string

const (
	focusBreakthrough focusKind = "breakthrough"
	focusSlow         focusKind = "slow"
	focusStandard     focusKind = "standard"
)

// Assembler renders AggregateResults into narrative markdown.
type Assembler struct {
	// Author is the byline persona; empty means the configured default.
	Author string
}

// Assemble produces the full digest document for one day's batch.
func (a Assembler) Assemble(result types.AggregateResult) string {
	author := a.Author
	if author == "" {
		author = "The Scholar"
	}

	var b strings.Builder
	a.writeOpening(&b, author, result)
	writeOverview(&b, result)
	writeBreakthroughs(&b, result.Records)
	writeSupporting(&b, result.Records)
	writeHostedWatch(&b, result.Records)
	writeWatchList(&b, result.Records)
	writeAbout(&b, author, result.Yield)
	return b.String()
}

// classify picks the opening tone: a breakthrough day has at least three
// records in the top tier, a slow day fewer than five records overall.
func classify(records []types.ScoredRecord) (focusKind, string) {
	high := 0
	for _, r := range records {
		if r.Tier() == types.TierBreakthrough {
			high++
		}
	}
	switch {
	case high >= 3:
		return focusBreakthrough, "Multiple significant advances appeared today"
	case len(records) < 5:
		return focusSlow, "Steady progress across established areas"
	default:
		return focusStandard, "Notable developments in AI research"
	}
}

func (a Assembler) writeOpening(b *strings.Builder, author string, result types.AggregateResult) {
	kind, desc := classify(result.Records)

	fmt.Fprintf(b, "# 📚 The Lab – %s\n\n", result.Date.Format("2006-01-02"))
	fmt.Fprintf(b, "*%s here, translating today's research signal into actionable intelligence.*\n\n", author)

	switch kind {
	case focusBreakthrough:
		fmt.Fprintf(b, "📚 Today's feed brought something genuinely significant: %s. Let's unpack what makes these developments noteworthy.\n", desc)
	case focusSlow:
		fmt.Fprintf(b, "📚 Not every day brings paradigm shifts. %s, building on established foundations in ways that matter.\n", desc)
	default:
		fmt.Fprintf(b, "📚 %s. Today's papers span multiple domains, each contributing in distinct ways.\n", desc)
	}
	b.WriteString("\n---\n\n")
}

func writeOverview(b *strings.Builder, result types.AggregateResult) {
	var arxiv, hosted, benchmarks, high, notable int
	for _, r := range result.Records {
		switch r.Source {
		case "arxiv":
			arxiv++
		case "huggingface_model", "huggingface_dataset":
			hosted++
		case "paperswithcode":
			benchmarks++
		}
		switch r.Tier() {
		case types.TierBreakthrough:
			high++
		case types.TierNotable:
			notable++
		}
	}

	b.WriteString("## 🔬 Research Overview\n\n")
	b.WriteString("**Today's intelligence at a glance:**\n\n")
	fmt.Fprintf(b, "- **Papers analyzed**: %d from arXiv across AI/ML categories\n", arxiv)
	fmt.Fprintf(b, "- **Noteworthy research**: %d papers scored ≥0.8\n", high)
	fmt.Fprintf(b, "- **Notable contributions**: %d papers scored ≥0.6\n", notable)
	fmt.Fprintf(b, "- **Implementation watch**: %d new hosted models and datasets\n", hosted)
	fmt.Fprintf(b, "- **Benchmark updates**: %d papers with verified performance claims\n", benchmarks)
	fmt.Fprintf(b, "- **Analysis date**: %s\n", result.Date.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
}

func writeBreakthroughs(b *strings.Builder, records []types.ScoredRecord) {
	top := selectTier(records, types.TierBreakthrough, maxBreakthroughPapers)
	if len(top) == 0 {
		return
	}

	b.WriteString("## 📚 The Breakthrough Papers\n\n")
	b.WriteString("*The research that matters most today:*\n\n")
	for i, r := range top {
		fmt.Fprintf(b, "### %d. %s\n\n", i+1, r.Title)
		fmt.Fprintf(b, "**Authors**: %s  \n", authorLine(r.Authors))
		fmt.Fprintf(b, "**Research score**: %.2f (highly significant)  \n", r.RelevanceScore)
		fmt.Fprintf(b, "**Source**: %s\n\n", r.Source)
		fmt.Fprintf(b, "**Core contribution**: %s\n\n", excerpt(r.Excerpt(), summaryExcerptLen))
		fmt.Fprintf(b, "[📄 Read Paper](%s)\n\n", recordURL(r.SourceRecord))
	}
	b.WriteString("---\n\n")
}

func writeSupporting(b *strings.Builder, records []types.ScoredRecord) {
	notable := selectTier(records, types.TierNotable, maxSupportingPapers)
	if len(notable) == 0 {
		return
	}

	b.WriteString("## 🔗 Supporting Research\n\n")
	b.WriteString("*Papers that complement today's main story:*\n\n")
	for _, r := range notable {
		fmt.Fprintf(b, "**%s** (score: %.2f)\n\n", r.Title, r.RelevanceScore)
		fmt.Fprintf(b, "%s\n\n", excerpt(r.Excerpt(), supportExcerptLen))
		fmt.Fprintf(b, "[📄 Read Paper](%s)\n\n", recordURL(r.SourceRecord))
	}
	b.WriteString("---\n\n")
}

func writeHostedWatch(b *strings.Builder, records []types.ScoredRecord) {
	var hosted []types.ScoredRecord
	for _, r := range records {
		if r.Source == "huggingface_model" || r.Source == "huggingface_dataset" {
			hosted = append(hosted, r)
			if len(hosted) == maxHostedArtifacts {
				break
			}
		}
	}
	if len(hosted) == 0 {
		return
	}

	b.WriteString("## 🤗 Implementation Watch\n\n")
	b.WriteString("*Research moving from paper to practice:*\n\n")
	for _, r := range hosted {
		fmt.Fprintf(b, "**%s**\n\n", r.Title)
		fmt.Fprintf(b, "- Research score: %.2f\n", r.RelevanceScore)
		fmt.Fprintf(b, "- Community interest: %d downloads, %d likes\n", r.Downloads, r.Likes)
		fmt.Fprintf(b, "- [🤗 View artifact](%s)\n\n", recordURL(r.SourceRecord))
	}
	b.WriteString("**The implementation layer**: these releases show how recent research translates into usable tools. Watch for community adoption patterns and performance reports.\n")
	b.WriteString("\n---\n\n")
}

func writeWatchList(b *strings.Builder, records []types.ScoredRecord) {
	b.WriteString("## 👀 What to Watch\n\n")
	b.WriteString("*Follow-up items for next week:*\n\n")

	b.WriteString("**Papers to track for impact**:\n")
	for i, r := range records {
		if i == maxWatchItems {
			break
		}
		fmt.Fprintf(b, "- %s... (watch for citations and replications)\n", excerpt(r.Title, watchTitleLen))
	}
	if len(records) == 0 {
		b.WriteString("- No tracked papers today\n")
	}

	b.WriteString("\n**Upcoming signals**:\n")
	b.WriteString("- Monitor arXiv for follow-up work on today's papers\n")
	b.WriteString("- Watch hosted-model feeds for implementations\n")
	b.WriteString("\n---\n\n")
}

func writeAbout(b *strings.Builder, author string, yield types.YieldMetrics) {
	b.WriteString("## 📖 About The Lab\n\n")
	fmt.Fprintf(b, "**%s** is your research intelligence agent, translating the daily firehose of papers into accessible, actionable insights.\n\n", author)
	b.WriteString("### Today's Research Yield\n\n")
	fmt.Fprintf(b, "- **Total items scanned**: %d\n", yield.TotalItems)
	fmt.Fprintf(b, "- **High-relevance items**: %d\n", yield.HighRelevanceItems)
	fmt.Fprintf(b, "- **Curation quality**: %.2f\n", yield.QualityRatio)
	fmt.Fprintf(b, "- **Filter threshold**: %.2f\n", yield.FilterThreshold)
	b.WriteString("\n*Powered by arXiv, Hugging Face, and Papers with Code.*\n")
}

// selectTier returns up to max records in the given tier, preserving the
// batch's score-descending order.
func selectTier(records []types.ScoredRecord, tier types.Tier, max int) []types.ScoredRecord {
	var out []types.ScoredRecord
	for _, r := range records {
		if r.Tier() != tier {
			continue
		}
		out = append(out, r)
		if len(out) == max {
			break
		}
	}
	return out
}

// authorLine renders the first author with an et-al suffix when more follow.
func authorLine(authors []string) string {
	switch len(authors) {
	case 0:
		return "Unknown authors"
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

// excerpt truncates to at most n runes, appending an ellipsis when cut.
func excerpt(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// recordURL falls back to a placeholder anchor for records without links.
func recordURL(r types.SourceRecord) string {
	if r.URL == "" {
		return "#"
	}
	return r.URL
}
