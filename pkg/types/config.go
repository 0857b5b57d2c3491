// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "signal-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// IngestConfig holds settings for the ingestion stage.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of records fetched per source (default 200).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// LookbackDays is how many days back the arXiv query window extends (default 2).
	LookbackDays int `json:"lookback_days" yaml:"lookback_days"`

	// Categories lists the monitored arXiv categories.
	Categories []string `json:"categories" yaml:"categories"`

	// PriorityCategories is the subset of categories that earns the full
	// category bonus at scoring time.
	PriorityCategories []string `json:"priority_categories" yaml:"priority_categories"`

	// EnableArxiv controls whether the arXiv source is fetched.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// EnableHuggingFace controls whether the Hugging Face source is fetched.
	EnableHuggingFace bool `json:"enable_huggingface" yaml:"enable_huggingface"`

	// HuggingFaceToken is an optional API token for higher rate limits.
	HuggingFaceToken string `json:"huggingface_token,omitempty" yaml:"huggingface_token,omitempty"`
}

// AggregateConfig holds settings for the aggregation stage. Threshold and
// sort keys are configuration rather than constants so tests can inject them.
type AggregateConfig struct {
	// Threshold drops records scoring below it (default 0.4).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Sources lists the source tags merged per run, in significance order.
	Sources []string `json:"sources" yaml:"sources"`
}

// CompileConfig holds settings for the document compiler.
type CompileConfig struct {
	// MaxSentences bounds the generated summary length (default 3).
	MaxSentences int `json:"max_sentences" yaml:"max_sentences"`

	// MaxKeywords bounds extracted keyword count (default 10).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords"`

	// TableCollapseThreshold is passed through to the presentation layer;
	// the compiler itself never collapses tables (default 10).
	TableCollapseThreshold int `json:"table_collapse_threshold" yaml:"table_collapse_threshold"`
}

// ReportConfig holds settings for narrative report assembly.
type ReportConfig struct {
	// OutputDir is the directory for assembled markdown reports.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Author is the byline written into report front matter.
	Author string `json:"author" yaml:"author"`
}

// StoreConfig holds settings for the persistence layer.
type StoreConfig struct {
	// DataDir is the base data directory (contains the index database and
	// per-source JSON snapshots).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Aggregate AggregateConfig `json:"aggregate" yaml:"aggregate"`
	Compile   CompileConfig   `json:"compile" yaml:"compile"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}

// DefaultPipelineConfig returns the pipeline defaults applied before any
// config file or flag overrides.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Ingest: IngestConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "signal-digest/0.1",
			},
			MaxResults:         200,
			LookbackDays:       2,
			Categories:         []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV", "cs.NE", "stat.ML"},
			PriorityCategories: []string{"cs.AI", "cs.LG", "cs.CL"},
			EnableArxiv:        true,
			EnableHuggingFace:  true,
		},
		Aggregate: AggregateConfig{
			Threshold: 0.4,
			Sources:   []string{"arxiv", "huggingface", "paperswithcode", "official", "cloud", "community", "tools"},
		},
		Compile: CompileConfig{
			MaxSentences:           3,
			MaxKeywords:            10,
			TableCollapseThreshold: 10,
		},
		Report: ReportConfig{
			OutputDir: "docs/reports",
			Author:    "The Scholar",
		},
		Store: StoreConfig{
			DataDir: "data",
		},
	}
}
