// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-digest/internal/compile"
	"github.com/pdiddy/signal-digest/internal/publish"
	"github.com/pdiddy/signal-digest/internal/report"
	"github.com/pdiddy/signal-digest/internal/store"
	"github.com/pdiddy/signal-digest/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble and publish the daily digest document",
	Long: `Report loads a date's aggregation run from the signal database, assembles
the narrative digest, compiles it into its structured form, and publishes
both (markdown with front matter, compiled JSON) to the output directory.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("data-dir", "", "base data directory (default: data)")
	reportCmd.Flags().String("out", "", "output directory (default: docs/reports)")
	reportCmd.Flags().String("date", "", "run date YYYY-MM-DD (default: today)")
	reportCmd.Flags().String("author", "", "byline persona (default: The Scholar)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfg.Store.DataDir
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Report.OutputDir
	}
	if author, _ := cmd.Flags().GetString("author"); author != "" {
		cfg.Report.Author = author
	}
	date, err := runDate(cmd)
	if err != nil {
		return err
	}
	day := date.Format("2006-01-02")

	s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	result, err := s.LoadRun(ctx, date)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		fmt.Fprintf(os.Stderr, "warning: no aggregated records for %s; run aggregate first\n", day)
	}

	doc := report.Assembler{Author: cfg.Report.Author}.Assemble(result)
	compiled := compile.Compile("lab-"+day+".md", doc, cfg.Compile, os.Stderr)

	bundle := publish.Bundle{Date: date, Markdown: doc, Compiled: compiled}
	if err := (publish.DirPublisher{Dir: outDir}).Publish(ctx, bundle); err != nil {
		return err
	}

	fmt.Printf("Published lab-%s.md and lab-%s.json to %s\n", day, day, outDir)
	return nil
}
