// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"sort"
	"strings"

	stopwordlist "github.com/bbalet/stopwords"
)

// tokenPattern matches keyword candidates: runs of at least 4 lowercase
// letters. Shorter tokens are never candidates.
var tokenPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)

// StopwordFilter reports whether a token is an English stopword. Both
// implementations are deterministic for a given build.
type StopwordFilter interface {
	IsStopword(token string) bool
}

// libraryStopwords uses the full English stopword list carried by the
// stopwords package. A token is a stopword when cleaning it leaves nothing.
type libraryStopwords struct{}

func (libraryStopwords) IsStopword(token string) bool {
	return strings.TrimSpace(stopwordlist.CleanString(token, "en", false)) == ""
}

// builtinStopwords is the small fixed fallback list, for callers that want
// keyword extraction independent of the library's list.
type builtinStopwords struct{}

var builtinStopwordSet = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {}, "been": {},
	"were": {}, "will": {}, "their": {}, "there": {}, "these": {}, "those": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "about": {},
	"after": {}, "before": {}, "being": {},
}

func (builtinStopwords) IsStopword(token string) bool {
	_, ok := builtinStopwordSet[token]
	return ok
}

// Extractor performs frequency-based keyword extraction.
type Extractor struct {
	// Stopwords filters candidate tokens; nil means the library list.
	Stopwords StopwordFilter
}

// BuiltinStopwords returns the fixed fallback stopword filter.
func BuiltinStopwords() StopwordFilter { return builtinStopwords{} }

// Extract returns up to max keywords ordered by descending frequency.
// Equal frequencies keep first-seen order (stable count). Zero or negative
// max means the default of 10.
func (e Extractor) Extract(text string, max int) []string {
	if max <= 0 {
		max = 10
	}
	filter := e.Stopwords
	if filter == nil {
		filter = libraryStopwords{}
	}

	counts := make(map[string]int)
	var order []string
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if filter.IsStopword(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

// ExtractKeywords extracts keywords with the default stopword list.
func ExtractKeywords(text string, max int) []string {
	return Extractor{}.Extract(text, max)
}
