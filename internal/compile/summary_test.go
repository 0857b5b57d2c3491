// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"errors"
	"strings"
	"testing"
)

const longText = "Transformers changed the trajectory of machine learning research. " +
	"Attention mechanisms let models weigh distant context directly. " +
	"Benchmark results improved across translation and summarization tasks. " +
	"Later work scaled the same architecture to billions of parameters."

// shortText has no sentence of 20 or more characters, so every tier must
// return an empty summary.
const shortText = "Short. Tiny. No way! Nope?"

func TestSummarizeReturnsContent(t *testing.T) {
	got := NewSummarizer(nil).Summarize(longText, 3)
	if got == "" {
		t.Fatal("summary empty for well-formed prose")
	}
	if !strings.Contains(longText, "Transformers") {
		t.Fatal("fixture drifted")
	}
}

func TestSummarizeShortSentencesEmpty(t *testing.T) {
	if got := NewSummarizer(nil).Summarize(shortText, 3); got != "" {
		t.Errorf("summary = %q, want empty when no sentence qualifies", got)
	}
}

func TestEveryTierFiltersShortSentences(t *testing.T) {
	strategies := []SummaryStrategy{textRankStrategy{}, tokenizerStrategy{}, regexStrategy{}}
	for _, strategy := range strategies {
		t.Run(strategy.Name(), func(t *testing.T) {
			got, err := strategy.Summarize(shortText, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "" {
				t.Errorf("summary = %q, want empty", got)
			}
		})
	}
}

func TestTokenizerStrategyDocumentOrder(t *testing.T) {
	got, err := tokenizerStrategy{}.Summarize(longText, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := strings.Index(got, "Transformers")
	second := strings.Index(got, "Attention")
	if first < 0 || second < 0 || first > second {
		t.Errorf("summary = %q, want first two sentences in document order", got)
	}
	if strings.Contains(got, "Benchmark") {
		t.Errorf("summary = %q, want at most 2 sentences", got)
	}
}

func TestRegexStrategyJoinsWithPeriods(t *testing.T) {
	text := "This is a sufficiently long sentence! And here is another long enough fragment?"
	got, err := regexStrategy{}.Summarize(text, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "This is a sufficiently long sentence. And here is another long enough fragment."
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestRegexStrategyCap(t *testing.T) {
	text := strings.Repeat("A sentence with more than twenty characters. ", 6)
	got, err := regexStrategy{}.Summarize(text, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(got, "A sentence"); n != 2 {
		t.Errorf("kept %d sentences, want 2", n)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("summary = %q, want trailing period", got)
	}
}

// failingStrategy always errors, to exercise tier fallback.
type failingStrategy struct{}

func (failingStrategy) Name() string { return "always-fails" }

func (failingStrategy) Summarize(string, int) (string, error) {
	return "", errors.New("deliberate failure")
}

func TestSummarizeFallsThroughFailedTiers(t *testing.T) {
	var warnings strings.Builder
	s := &Summarizer{
		strategies: []SummaryStrategy{failingStrategy{}, regexStrategy{}},
		warnings:   &warnings,
	}

	got := s.Summarize(longText, 1)
	if got == "" {
		t.Fatal("fallback tier produced nothing")
	}
	if !strings.Contains(warnings.String(), "warning: summarizer tier always-fails failed") {
		t.Errorf("warnings = %q, want failure notice for the skipped tier", warnings.String())
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if got := NewSummarizer(nil).Summarize("", 3); got != "" {
		t.Errorf("summary = %q, want empty", got)
	}
}

func TestSummarizeDefaultSentenceCount(t *testing.T) {
	// Zero maxSentences falls back to three; the regex tier makes the
	// count directly observable.
	text := strings.Repeat("Another sentence with plenty of characters. ", 5)
	got, err := regexStrategy{}.Summarize(text, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(got, "Another sentence"); n != 3 {
		t.Errorf("kept %d sentences, want 3", n)
	}

	if whole := NewSummarizer(nil).Summarize(text, 0); whole == "" {
		t.Error("default-count summary empty")
	}
}
