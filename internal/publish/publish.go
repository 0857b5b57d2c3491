// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish defines the delivery boundary for finished digests.
// The pipeline hands every publisher the same bundle; where it goes
// (site directory, relay, anything else) is the implementation's concern.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/signal-digest/pkg/types"
)

// Bundle is one day's finished digest: the narrative markdown and its
// compiled, navigable form.
type Bundle struct {
	Date     time.Time
	Markdown string
	Compiled types.CompiledReport
}

// Publisher delivers a finished digest bundle.
type Publisher interface {
	Publish(ctx context.Context, b Bundle) error
}

// DirPublisher writes bundles into a site directory: the markdown
// narrative with front matter, plus the compiled report as JSON.
type DirPublisher struct {
	// Dir is the output directory, created on first publish.
	Dir string
}

// Publish writes lab-YYYY-MM-DD.md and lab-YYYY-MM-DD.json into the
// publisher's directory, overwriting any previous files for the date.
func (p DirPublisher) Publish(ctx context.Context, b Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	day := b.Date.Format("2006-01-02")
	base := "lab-" + day

	front := fmt.Sprintf("---\nlayout: default\ntitle: The Lab %s\n---\n\n", day)
	mdPath := filepath.Join(p.Dir, base+".md")
	if err := os.WriteFile(mdPath, []byte(front+b.Markdown), 0o644); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}

	data, err := json.MarshalIndent(b.Compiled, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling compiled report: %w", err)
	}
	jsonPath := filepath.Join(p.Dir, base+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("writing compiled report: %w", err)
	}
	return nil
}
