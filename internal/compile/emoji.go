// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"strings"

	"github.com/forPelevin/gomoji"
)

// defaultEmoji is the generic glyph used when a section title carries no
// emoji and no mapping matches.
const defaultEmoji = "📄"

// emojiMapping pairs a title fragment with its glyph. Ordered: the first
// matching fragment wins, so lookup stays deterministic.
type emojiMapping struct {
	fragment string
	glyph    string
}

// emojiMap is the keyword fallback for sections whose titles carry no
// emoji of their own. Static configuration, read-only after init.
var emojiMap = []emojiMapping{
	{"research overview", "🔬"},
	{"breakthrough papers", "📚"},
	{"the breakthrough papers", "📚"},
	{"supporting research", "🔗"},
	{"implementation watch", "🤗"},
	{"pattern analysis", "📈"},
	{"emerging directions", "📈"},
	{"research implications", "🔮"},
	{"what to watch", "👀"},
	{"for builders", "🔧"},
	{"buildable solutions", "🚀"},
	{"support", "💰"},
	{"about", "📖"},
	{"tldr", "🔍"},
	{"summary", "📊"},
}

// extractEmoji returns the glyph for a raw section title: the first emoji
// present in the title, else the first mapped fragment found in the
// emoji-stripped lowercased title, else the generic default.
func extractEmoji(rawTitle string) string {
	if found := gomoji.FindAll(rawTitle); len(found) > 0 {
		return found[0].Character
	}

	clean := strings.ToLower(stripEmoji(rawTitle))
	for _, m := range emojiMap {
		if strings.Contains(clean, m.fragment) {
			return m.glyph
		}
	}
	return defaultEmoji
}

// stripEmoji removes emoji code points from a title and trims the result.
func stripEmoji(s string) string {
	return strings.TrimSpace(gomoji.RemoveEmojis(s))
}
