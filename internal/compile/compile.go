// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/signal-digest/pkg/types"
)

const (
	defaultDescription = "Daily research digest: breakthrough papers, implementation watch, and emerging directions."
	defaultAuthor      = "The Scholar"
	wordsPerMinute     = 200
)

var (
	// filenameDatePattern pulls a date out of a report filename like
	// "lab-2026-08-30.md" when the front matter carries none.
	filenameDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	// Summarization runs over markup-cleaned text: formatting characters
	// and URLs carry no sentence content.
	markupChars = regexp.MustCompile("[#*_`\\[\\]()]")
	urlPattern  = regexp.MustCompile(`http\S+`)
)

// frontMatter is the optional leading metadata block. All fields pass
// through opaquely; missing fields are derived from the document.
type frontMatter struct {
	Title       string      `yaml:"title"`
	Date        string      `yaml:"date"`
	Description string      `yaml:"description"`
	Author      string      `yaml:"author"`
	Keywords    keywordList `yaml:"keywords"`
}

// keywordList accepts either a YAML sequence or a single scalar.
type keywordList []string

func (k *keywordList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*k = list
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*k = keywordList{single}
	default:
		return fmt.Errorf("keywords: unsupported YAML node kind %v", node.Kind)
	}
	return nil
}

// Compile parses a narrative document into the navigable report bundle:
// metadata, sections, table of contents, keywords, and summary. name is
// the document's filename, used for date fallback. A malformed front
// matter block degrades to treating the whole input as content, with a
// warning on w.
func Compile(name, text string, cfg types.CompileConfig, w io.Writer) types.CompiledReport {
	if w == nil {
		w = io.Discard
	}

	meta, content := splitFrontMatter(text, w)

	date := meta.Date
	if date == "" {
		date = filenameDatePattern.FindString(name)
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	title := meta.Title
	if title == "" {
		title = "Research Signal Digest – " + date
	}
	description := meta.Description
	if description == "" {
		description = defaultDescription
	}
	author := meta.Author
	if author == "" {
		author = defaultAuthor
	}

	keywords := []string(meta.Keywords)
	if len(keywords) == 0 {
		keywords = ExtractKeywords(content, cfg.MaxKeywords)
	}

	words := len(wordPattern.FindAllString(content, -1))

	sections := ParseSections(content)
	toc := BuildTOC(sections)

	clean := markupChars.ReplaceAllString(content, "")
	clean = urlPattern.ReplaceAllString(clean, "")
	summary := NewSummarizer(w).Summarize(clean, cfg.MaxSentences)

	return types.CompiledReport{
		Meta: types.ReportMeta{
			Title:       title,
			Date:        date,
			Description: description,
			Author:      author,
			Slug:        Slugify(title),
			Keywords:    keywords,
			WordCount:   words,
			ReadTime:    readTime(words),
		},
		TOC:      toc,
		Sections: sections,
		Summary:  summary,
		Keywords: keywords,
	}
}

// splitFrontMatter separates a leading "---" YAML block from the content.
// Documents without one, or with one that fails to parse, yield zero
// metadata and the full text as content.
func splitFrontMatter(text string, w io.Writer) (frontMatter, string) {
	var meta frontMatter

	if !strings.HasPrefix(text, "---\n") {
		return meta, text
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, text
	}
	block := rest[:end]
	content := rest[end+len("\n---"):]
	content = strings.TrimPrefix(content, "\n")

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		fmt.Fprintf(w, "warning: malformed front matter, using plain content: %v\n", err)
		return frontMatter{}, text
	}
	return meta, content
}

// readTime estimates reading minutes at 200 wpm, never below 1.
func readTime(words int) int {
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
