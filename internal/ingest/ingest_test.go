// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// --- mock source ---

type mockSource struct {
	name    string
	records []types.SourceRecord
	err     error
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Fetch(_ context.Context, _ types.IngestConfig) ([]types.SourceRecord, error) {
	return m.records, m.err
}

func TestRunFailingSourceDoesNotAbort(t *testing.T) {
	sources := []Source{
		&mockSource{name: "arxiv", err: fmt.Errorf("connection refused")},
		&mockSource{name: "huggingface", records: []types.SourceRecord{
			{ExternalID: "org/model", Source: "huggingface_model"},
		}},
	}

	var warnings bytes.Buffer
	out := Run(context.Background(), sources, testIngestCfg(), testNow, &warnings)

	if len(out.SourceErrors) != 1 || !strings.HasPrefix(out.SourceErrors[0], "arxiv:") {
		t.Errorf("source errors = %v, want one arxiv error", out.SourceErrors)
	}
	if len(out.Batches["huggingface"]) != 1 {
		t.Errorf("huggingface batch = %d records, want 1", len(out.Batches["huggingface"]))
	}
	if !strings.Contains(warnings.String(), "warning: source arxiv failed") {
		t.Errorf("warning output = %q, want arxiv failure warning", warnings.String())
	}
}

func TestRunScoresOnlyArxiv(t *testing.T) {
	sources := []Source{
		&mockSource{name: "arxiv", records: []types.SourceRecord{
			{ExternalID: "2608.00001", Title: "untitled", Categories: []string{"cs.AI"}, Published: testNow, Source: "arxiv"},
		}},
		&mockSource{name: "huggingface", records: []types.SourceRecord{
			{ExternalID: "org/model", Source: "huggingface_model"},
		}},
	}

	out := Run(context.Background(), sources, testIngestCfg(), testNow, &bytes.Buffer{})

	arxiv := out.Batches["arxiv"]
	if len(arxiv) != 1 || arxiv[0].RawScore == nil {
		t.Fatalf("arxiv batch = %+v, want one record with a raw score", arxiv)
	}
	hf := out.Batches["huggingface"]
	if len(hf) != 1 || hf[0].RawScore != nil {
		t.Errorf("huggingface batch = %+v, want one unscored record", hf)
	}
}

// --- arXiv source ---

const arxivFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2608.01234v1</id>
    <title>A Novel   Attention
 Mechanism</title>
    <summary>We propose a novel attention mechanism
 that outperforms baselines.</summary>
    <published>2026-08-30T04:00:00Z</published>
    <author><name>Jane Doe</name></author>
    <author><name>John Roe</name></author>
    <category term="cs.LG"/>
    <category term="stat.ML"/>
  </entry>
  <entry>
    <id>http://example.com/not-an-arxiv-entry</id>
    <title>Malformed</title>
  </entry>
</feed>`

func TestArxivSourceFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sortBy"); got != "submittedDate" {
			t.Errorf("sortBy = %q, want submittedDate", got)
		}
		q := r.URL.Query().Get("search_query")
		if !strings.Contains(q, "cat:cs.AI") || !strings.Contains(q, "submittedDate:") {
			t.Errorf("search_query = %q, want category and date window", q)
		}
		fmt.Fprint(w, arxivFixture)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	src := &ArxivSource{Client: ts.Client()}

	records, err := src.Fetch(context.Background(), testIngestCfg())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1 (malformed entry skipped)", len(records))
	}

	r := records[0]
	if r.ExternalID != "2608.01234v1" {
		t.Errorf("external id = %q, want 2608.01234v1", r.ExternalID)
	}
	if r.Title != "A Novel Attention Mechanism" {
		t.Errorf("title = %q, want collapsed whitespace", r.Title)
	}
	if r.URL != "https://arxiv.org/abs/2608.01234v1" {
		t.Errorf("url = %q", r.URL)
	}
	if len(r.Authors) != 2 || r.Authors[0] != "Jane Doe" {
		t.Errorf("authors = %v", r.Authors)
	}
	if len(r.Categories) != 2 || r.Categories[0] != "cs.LG" {
		t.Errorf("categories = %v", r.Categories)
	}
	if r.Published.IsZero() {
		t.Error("published date not parsed")
	}
	if r.Source != "arxiv" {
		t.Errorf("source = %q, want arxiv", r.Source)
	}
}

func TestArxivSourceHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	src := &ArxivSource{Client: ts.Client()}
	if _, err := src.Fetch(context.Background(), testIngestCfg()); err == nil {
		t.Error("Fetch() error = nil, want HTTP status error")
	}
}

// --- Hugging Face source ---

const hfFixture = `[
  {"modelId": "acme/vision-tower", "tags": ["vision", "multimodal"], "downloads": 1200, "likes": 34, "lastModified": "2026-08-30T01:00:00Z"},
  {"modelId": "", "tags": []},
  {"modelId": "acme/tiny-lm", "downloads": 7, "likes": 1, "lastModified": "2026-08-29T23:00:00Z"}
]`

func TestHuggingFaceSourceFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		fmt.Fprint(w, hfFixture)
	}))
	defer ts.Close()

	old := hfAPIBase
	hfAPIBase = ts.URL
	defer func() { hfAPIBase = old }()

	cfg := testIngestCfg()
	cfg.HuggingFaceToken = "tok-123"

	src := &HuggingFaceSource{Client: ts.Client()}
	records, err := src.Fetch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2 (empty model ID skipped)", len(records))
	}

	r := records[0]
	if r.ExternalID != "acme/vision-tower" || r.Source != "huggingface_model" {
		t.Errorf("record = %+v", r)
	}
	if r.URL != "https://huggingface.co/acme/vision-tower" {
		t.Errorf("url = %q", r.URL)
	}
	if r.Downloads != 1200 || r.Likes != 34 {
		t.Errorf("counters = %d/%d, want 1200/34", r.Downloads, r.Likes)
	}
	if r.Summary != "vision multimodal" {
		t.Errorf("summary = %q, want joined tags", r.Summary)
	}
	if r.RawScore != nil {
		t.Error("raw score set; hosted models must reach aggregation unscored")
	}
}
