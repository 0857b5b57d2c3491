// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-digest/internal/compile"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.md>",
	Short: "Compile a digest document into its structured form",
	Long: `Compile parses a narrative markdown document into metadata, sections,
table of contents, keywords, and a summary. Front matter is honored when
present; the date falls back to one found in the filename, then today.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().Bool("json", false, "output the compiled report as JSON")
	compileCmd.Flags().Int("max-sentences", 0, "summary sentence cap (default 3)")
	compileCmd.Flags().Int("max-keywords", 0, "extracted keyword cap (default 10)")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if v, _ := cmd.Flags().GetInt("max-sentences"); v > 0 {
		cfg.Compile.MaxSentences = v
	}
	if v, _ := cmd.Flags().GetInt("max-keywords"); v > 0 {
		cfg.Compile.MaxKeywords = v
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	compiled := compile.Compile(filepath.Base(path), string(data), cfg.Compile, os.Stderr)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(compiled)
	}

	meta := compiled.Meta
	fmt.Printf("Title:     %s\n", meta.Title)
	fmt.Printf("Date:      %s\n", meta.Date)
	fmt.Printf("Slug:      %s\n", meta.Slug)
	fmt.Printf("Words:     %d (%d min read)\n", meta.WordCount, meta.ReadTime)
	fmt.Printf("Keywords:  %s\n", strings.Join(compiled.Keywords, ", "))
	fmt.Printf("Sections:  %d\n", len(compiled.Sections))
	for _, entry := range compiled.TOC {
		fmt.Printf("  %s %s (#%s)\n", entry.Emoji, entry.Title, entry.ID)
	}
	if compiled.Summary != "" {
		fmt.Printf("Summary:   %s\n", compiled.Summary)
	}
	return nil
}
