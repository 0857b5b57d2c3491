// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compile parses a narrative markdown document into addressable
// sections and derives its navigation metadata, keywords, and summary.
//
// Every exported function is a pure function of its input plus static
// lookup tables; independent documents may be compiled concurrently.
package compile

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// Back-to-top navigation markers are boilerplate with no semantic content;
// they are stripped unconditionally before splitting.
var (
	backToTopHTML = regexp.MustCompile(`<p class="back-to-home"><a href="#top">⬆️ Back to Top</a></p>\s*`)
	backToTopLink = regexp.MustCompile(`\[⬆️ Back to Top\]\(#top\)\s*`)

	// h2Pattern splits the document on level-2 heading markers.
	h2Pattern = regexp.MustCompile(`\n##\s+`)
)

// markdown renders section bodies: tables, fenced code, and hard line
// breaks preserved; raw inline HTML passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
)

// ParseSections splits a narrative document on level-2 headings into
// sections with stable slug identifiers. Content before the first heading
// is a preamble, never a section. A heading with no body line after it
// produces no section.
func ParseSections(text string) []types.Section {
	text = backToTopHTML.ReplaceAllString(text, "")
	text = backToTopLink.ReplaceAllString(text, "")

	// A heading at offset zero still opens a section.
	parts := h2Pattern.Split("\n"+text, -1)
	if len(parts) < 2 {
		return nil
	}

	var sections []types.Section
	for _, part := range parts[1:] {
		idx := strings.Index(part, "\n")
		if idx < 0 {
			continue
		}
		rawTitle := strings.TrimSpace(part[:idx])
		body := part[idx+1:]

		emoji := extractEmoji(rawTitle)
		title := stripEmoji(rawTitle)

		rendered := renderMarkdown(body)

		section := types.Section{
			ID:    Slugify(title),
			Title: title,
			Emoji: emoji,
			Body:  rendered,
		}
		if rows := countTableRows(rendered); rows > 0 {
			section.Table = &types.TableSummary{RowCount: rows, Caption: title}
		}
		sections = append(sections, section)
	}
	return sections
}

// BuildTOC derives the table of contents, mirroring section order 1:1.
func BuildTOC(sections []types.Section) []types.TOCEntry {
	toc := make([]types.TOCEntry, 0, len(sections))
	for _, s := range sections {
		toc = append(toc, types.TOCEntry{ID: s.ID, Title: s.Title, Emoji: s.Emoji})
	}
	return toc
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		// Conversion of plain text never fails in practice; degrade to the
		// raw source rather than dropping content.
		return src
	}
	return buf.String()
}

// countTableRows counts <tr> elements in a rendered body. The count is
// attached so the presentation layer can decide whether to collapse large
// tables; nothing is collapsed here.
func countTableRows(rendered string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return 0
	}
	return doc.Find("tr").Length()
}
