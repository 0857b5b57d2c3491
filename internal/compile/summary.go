// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	textrank "github.com/DavidBelicza/TextRank/v2"
	"github.com/neurosnap/sentences/english"
)

// minSentenceLen is the minimum trimmed sentence length a summary keeps.
const minSentenceLen = 20

// SummaryStrategy is one tier of the summarization fallback chain.
type SummaryStrategy interface {
	Name() string

	// Summarize returns a synopsis of at most maxSentences sentences. An
	// empty result with a nil error is a valid outcome (no qualifying
	// sentence in the input); an error hands off to the next tier.
	Summarize(text string, maxSentences int) (string, error)
}

// Summarizer tries an ordered list of strategies and returns the first
// successful result. Tier failure is an expected, recoverable condition:
// it is logged as a warning, never surfaced to the caller.
type Summarizer struct {
	strategies []SummaryStrategy
	warnings   io.Writer
}

// NewSummarizer builds the default chain: graph-centrality extractive
// ranking, then sentence-tokenizer selection, then regex splitting. The
// final tier cannot fail, so the chain always yields a result.
func NewSummarizer(warnings io.Writer) *Summarizer {
	if warnings == nil {
		warnings = io.Discard
	}
	return &Summarizer{
		strategies: []SummaryStrategy{
			textRankStrategy{},
			tokenizerStrategy{},
			regexStrategy{},
		},
		warnings: warnings,
	}
}

// Summarize returns a synopsis of at most maxSentences sentences, or the
// empty string when no tier finds a qualifying sentence. Zero or negative
// maxSentences means the default of 3.
func (s *Summarizer) Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	for _, strategy := range s.strategies {
		out, err := strategy.Summarize(text, maxSentences)
		if err != nil {
			fmt.Fprintf(s.warnings, "warning: summarizer tier %s failed: %v\n", strategy.Name(), err)
			continue
		}
		return out
	}
	return ""
}

// --- tier 1: graph-centrality extractive ranking ---

type textRankStrategy struct{}

func (textRankStrategy) Name() string { return "textrank" }

// Summarize ranks sentences by relation weight and returns the top ones in
// ranked order; original document order is not restored. The ranking
// library signals failure by panicking, so that is the specific condition
// converted into the tier's error.
func (textRankStrategy) Summarize(text string, maxSentences int) (_ string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ranking panicked: %v", r)
		}
	}()

	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	// Rank everything, then apply the length floor and the sentence cap.
	ranked := textrank.FindSentencesByRelationWeight(tr, 1000)

	var kept []string
	for _, s := range ranked {
		sentence := strings.TrimSpace(s.Value)
		if len(sentence) < minSentenceLen {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == maxSentences {
			break
		}
	}
	return strings.Join(kept, " "), nil
}

// --- tier 2: sentence-tokenizer selection ---

type tokenizerStrategy struct{}

func (tokenizerStrategy) Name() string { return "sentence-tokenizer" }

// Summarize splits the text with the trained English sentence tokenizer
// and joins the first qualifying sentences in document order.
func (tokenizerStrategy) Summarize(text string, maxSentences int) (string, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return "", fmt.Errorf("loading sentence tokenizer: %w", err)
	}

	var kept []string
	for _, s := range tokenizer.Tokenize(text) {
		sentence := strings.TrimSpace(s.Text)
		if len(sentence) < minSentenceLen {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == maxSentences {
			break
		}
	}
	return strings.Join(kept, " "), nil
}

// --- tier 3: regex splitting ---

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

type regexStrategy struct{}

func (regexStrategy) Name() string { return "regex-split" }

// Summarize is the last resort: split on terminal punctuation runs and
// join the first qualifying fragments with ". ". It never fails.
func (regexStrategy) Summarize(text string, maxSentences int) (string, error) {
	var kept []string
	for _, part := range sentenceBoundary.Split(text, -1) {
		sentence := strings.TrimSpace(part)
		if len(sentence) < minSentenceLen {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == maxSentences {
			break
		}
	}
	if len(kept) == 0 {
		return "", nil
	}
	return strings.Join(kept, ". ") + ".", nil
}
