// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"strings"
)

var (
	// nonWordPattern matches everything except word characters, whitespace,
	// and hyphens.
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

	// separatorRuns matches runs of hyphens, underscores, and whitespace.
	separatorRuns = regexp.MustCompile(`[-_\s]+`)
)

// Slugify converts a title to a URL-safe slug: lowercase, non-word
// characters stripped, separator runs collapsed to single hyphens, no
// leading or trailing hyphen. Idempotent: Slugify(Slugify(x)) == Slugify(x).
//
// Distinct titles can normalize to the same slug; collisions are kept
// as-is rather than deduplicated.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonWordPattern.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
