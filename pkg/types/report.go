// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Section is one titled, navigable unit of a compiled narrative document.
// Sections are rendering artifacts: recomputed on every compile, never
// persisted as domain objects.
type Section struct {
	// ID is a URL-safe slug derived deterministically from the title.
	// Colliding slugs between distinct titles are kept as-is.
	ID string `json:"id" yaml:"id"`

	// Title is the section heading with any emoji stripped.
	Title string `json:"title" yaml:"title"`

	// Emoji is the glyph associated with the section: the first emoji in
	// the raw heading, a keyword-mapped glyph, or the generic default.
	Emoji string `json:"emoji" yaml:"emoji"`

	// Body is the section body rendered to HTML.
	Body string `json:"body" yaml:"body"`

	// Table carries row metadata when the rendered body contains a table,
	// so the presentation layer can decide whether to collapse it. The
	// compiler itself never collapses anything.
	Table *TableSummary `json:"table,omitempty" yaml:"table,omitempty"`
}

// TableSummary describes a table found in a rendered section body.
type TableSummary struct {
	RowCount int    `json:"row_count" yaml:"row_count"`
	Caption  string `json:"caption" yaml:"caption"`
}

// TOCEntry is one table-of-contents item. The TOC mirrors section order 1:1.
type TOCEntry struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

// ReportMeta holds document-level metadata for a compiled report. Front
// matter fields pass through opaquely; missing fields are derived.
type ReportMeta struct {
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Description string   `json:"description" yaml:"description"`
	Author      string   `json:"author" yaml:"author"`
	Slug        string   `json:"slug" yaml:"slug"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	WordCount   int      `json:"word_count" yaml:"word_count"`

	// ReadTime is the estimated reading time in minutes at 200 wpm,
	// never below 1.
	ReadTime int `json:"read_time" yaml:"read_time"`
}

// CompiledReport is the navigable bundle handed to the presentation layer.
type CompiledReport struct {
	Meta     ReportMeta `json:"meta" yaml:"meta"`
	TOC      []TOCEntry `json:"toc" yaml:"toc"`
	Sections []Section  `json:"sections" yaml:"sections"`
	Summary  string     `json:"summary" yaml:"summary"`
	Keywords []string   `json:"keywords" yaml:"keywords"`
}
