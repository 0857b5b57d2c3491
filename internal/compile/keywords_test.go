// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractFrequencyOrder(t *testing.T) {
	text := "transformer transformer transformer attention attention neural"
	got := ExtractKeywords(text, 10)
	want := []string{"transformer", "attention", "neural"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

func TestExtractTieKeepsFirstSeen(t *testing.T) {
	// zebra appears before apple, both twice; first-seen order wins.
	text := "zebra apple zebra apple"
	got := ExtractKeywords(text, 10)
	want := []string{"zebra", "apple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

func TestExtractFiltersShortTokens(t *testing.T) {
	got := ExtractKeywords("ai ml gpu the big neural network", 10)
	for _, kw := range got {
		if len(kw) < 4 {
			t.Errorf("keyword %q shorter than 4 characters", kw)
		}
	}
}

func TestExtractFiltersStopwords(t *testing.T) {
	text := "models that with from models have been models"
	got := ExtractKeywords(text, 10)
	if len(got) == 0 || got[0] != "models" {
		t.Fatalf("keywords = %v, want [models]", got)
	}
	for _, kw := range got {
		switch kw {
		case "that", "with", "from", "have", "been":
			t.Errorf("stopword %q survived extraction", kw)
		}
	}
}

func TestExtractBuiltinStopwords(t *testing.T) {
	e := Extractor{Stopwords: BuiltinStopwords()}
	got := e.Extract("these models and those benchmarks while training", 10)
	want := []string{"models", "benchmarks", "training"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

func TestExtractRespectsMax(t *testing.T) {
	var b strings.Builder
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilos", "limas",
	}
	// Descending repeat counts so frequency order is unambiguous.
	for i, w := range words {
		b.WriteString(strings.Repeat(w+" ", len(words)-i))
	}

	got := ExtractKeywords(b.String(), 0)
	if len(got) != 10 {
		t.Fatalf("len = %d, want default max of 10", len(got))
	}
	if got[0] != "alpha" || got[9] != "juliet" {
		t.Errorf("keywords = %v, want alpha first and juliet last", got)
	}

	if got := ExtractKeywords(b.String(), 3); len(got) != 3 {
		t.Errorf("len = %d, want explicit max of 3", len(got))
	}
}

func TestExtractLowercasesInput(t *testing.T) {
	got := ExtractKeywords("Transformer TRANSFORMER transformer", 10)
	want := []string{"transformer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if got := ExtractKeywords("", 10); len(got) != 0 {
		t.Errorf("keywords = %v, want none", got)
	}
}
