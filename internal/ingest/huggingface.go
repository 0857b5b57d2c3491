// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/signal-digest/internal/httputil"
	"github.com/pdiddy/signal-digest/pkg/types"
)

// hfAPIBase is the Hugging Face Hub models endpoint. Var for test override.
var hfAPIBase = "https://huggingface.co/api/models"

// HuggingFaceSource fetches recently updated hosted models from the Hub.
// Its records are left unscored: hosted-model entries earn their
// implementation-availability signal from the aggregation scorer instead.
type HuggingFaceSource struct {
	Client *http.Client
}

// Name returns the source tag.
func (s *HuggingFaceSource) Name() string { return "huggingface" }

// Fetch lists the most recently modified models and normalizes each into a
// SourceRecord tagged "huggingface_model".
func (s *HuggingFaceSource) Fetch(ctx context.Context, cfg types.IngestConfig) ([]types.SourceRecord, error) {
	limit := cfg.MaxResults
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	url := fmt.Sprintf("%s?sort=lastModified&direction=-1&limit=%d", hfAPIBase, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.HuggingFaceToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.HuggingFaceToken)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Hugging Face API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hugging Face API returned HTTP %d", resp.StatusCode)
	}

	var models []hfModel
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("parsing Hugging Face response: %w", err)
	}

	var records []types.SourceRecord
	for _, m := range models {
		if m.ModelID == "" {
			continue
		}

		r := types.SourceRecord{
			ExternalID: m.ModelID,
			Title:      m.ModelID,
			Summary:    strings.Join(m.Tags, " "),
			URL:        "https://huggingface.co/" + m.ModelID,
			Source:     "huggingface_model",
			Downloads:  m.Downloads,
			Likes:      m.Likes,
		}
		if t, parseErr := time.Parse(time.RFC3339, m.LastModified); parseErr == nil {
			r.Published = t
		}

		records = append(records, r)
	}
	return records, nil
}

// hfModel models the subset of the Hub response the source consumes.
type hfModel struct {
	ModelID      string   `json:"modelId"`
	Tags         []string `json:"tags"`
	Downloads    int      `json:"downloads"`
	Likes        int      `json:"likes"`
	LastModified string   `json:"lastModified"`
}
