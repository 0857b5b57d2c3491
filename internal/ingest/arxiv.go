// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/signal-digest/internal/httputil"
	"github.com/pdiddy/signal-digest/pkg/types"
)

// arxivAPIBase is the arXiv Atom endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource fetches recent papers from the arXiv API.
type ArxivSource struct {
	Client *http.Client

	// Now supplies the current time for the query window; nil means time.Now.
	Now func() time.Time
}

// Name returns the source tag.
func (s *ArxivSource) Name() string { return "arxiv" }

// Fetch queries arXiv for papers submitted within the lookback window
// across the monitored categories and normalizes each Atom entry. Entries
// that cannot be normalized are skipped, never fatal.
func (s *ArxivSource) Fetch(ctx context.Context, cfg types.IngestConfig) ([]types.SourceRecord, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 200
	}

	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, buildArxivQuery(cfg, now()), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.SourceRecord
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		r := types.SourceRecord{
			ExternalID: arxivID,
			Title:      flattenWhitespace(entry.Title),
			Summary:    flattenWhitespace(entry.Summary),
			URL:        "https://arxiv.org/abs/" + arxivID,
			Source:     "arxiv",
		}
		for _, a := range entry.Authors {
			r.Authors = append(r.Authors, strings.TrimSpace(a.Name))
		}
		for _, c := range entry.Categories {
			if c.Term != "" {
				r.Categories = append(r.Categories, c.Term)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			r.Published = t
		}

		records = append(records, r)
	}
	return records, nil
}

// buildArxivQuery constructs the search_query parameter: OR across the
// monitored categories, restricted to the lookback submission window.
func buildArxivQuery(cfg types.IngestConfig, now time.Time) string {
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 2
	}

	cats := make([]string, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		cats = append(cats, "cat:"+c)
	}

	start := now.AddDate(0, 0, -lookback).Format("20060102")
	end := now.Format("20060102")
	return fmt.Sprintf("(%s)+AND+submittedDate:[%s0000+TO+%s2359]",
		strings.Join(cats, "+OR+"), start, end)
}

// extractArxivID pulls the bare ID out of an Atom entry ID URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041v1").
func extractArxivID(entryID string) string {
	idx := strings.LastIndex(entryID, "/abs/")
	if idx < 0 {
		return ""
	}
	return entryID[idx+len("/abs/"):]
}

// flattenWhitespace trims an Atom text field and collapses the hard line
// breaks arXiv inserts into single spaces.
func flattenWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arxivFeed models the subset of the Atom response the source consumes.
type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}
