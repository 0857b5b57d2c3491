//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runCLI builds the binary if missing and runs one pipeline stage.
func runCLI(args ...string) error {
	bin := filepath.Join(binDir, binName)
	if _, err := os.Stat(bin); err != nil {
		if err := Build(); err != nil {
			return err
		}
	}
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}

// Ingest fetches and normalizes the day's records from all sources.
func Ingest() error {
	mg.Deps(Init)
	return runCLI("ingest")
}

// Aggregate merges, dedupes, scores, and ranks the day's batches.
func Aggregate() error {
	return runCLI("aggregate")
}

// Report assembles and publishes the daily digest document.
func Report() error {
	return runCLI("report")
}

// Daily runs the full pipeline for today.
func Daily() error {
	mg.SerialDeps(Ingest, Aggregate)
	return Report()
}
