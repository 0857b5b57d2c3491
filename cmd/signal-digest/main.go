// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the signal-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/signal-digest/internal/secrets"
	"github.com/pdiddy/signal-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the loaded secret for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the signal-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "signal-digest",
	Short: "Daily research-signal aggregation and digest pipeline",
	Long: `signal-digest monitors research sources (arXiv, Hugging Face), scores and
filters the day's records into a ranked aggregate, and turns the result into
a navigable digest document.

Each pipeline stage is a subcommand: ingest fetches and normalizes source
records, aggregate merges and ranks them, report assembles and publishes the
narrative digest, and compile parses any digest document back into its
structured form.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./signal-digest.yaml or ~/.config/signal-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("signal-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "signal-digest"))
		}
	}

	viper.SetEnvPrefix("SIGNAL_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig layers config-file values over the built-in defaults.
// Flags are applied per-command on top of the result.
func pipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if viper.IsSet("ingest.max_results") {
		cfg.Ingest.MaxResults = viper.GetInt("ingest.max_results")
	}
	if viper.IsSet("ingest.lookback_days") {
		cfg.Ingest.LookbackDays = viper.GetInt("ingest.lookback_days")
	}
	if viper.IsSet("ingest.categories") {
		cfg.Ingest.Categories = viper.GetStringSlice("ingest.categories")
	}
	if viper.IsSet("ingest.priority_categories") {
		cfg.Ingest.PriorityCategories = viper.GetStringSlice("ingest.priority_categories")
	}
	if viper.IsSet("ingest.enable_arxiv") {
		cfg.Ingest.EnableArxiv = viper.GetBool("ingest.enable_arxiv")
	}
	if viper.IsSet("ingest.enable_huggingface") {
		cfg.Ingest.EnableHuggingFace = viper.GetBool("ingest.enable_huggingface")
	}
	if viper.IsSet("aggregate.threshold") {
		cfg.Aggregate.Threshold = viper.GetFloat64("aggregate.threshold")
	}
	if viper.IsSet("aggregate.sources") {
		cfg.Aggregate.Sources = viper.GetStringSlice("aggregate.sources")
	}
	if viper.IsSet("compile.max_sentences") {
		cfg.Compile.MaxSentences = viper.GetInt("compile.max_sentences")
	}
	if viper.IsSet("compile.max_keywords") {
		cfg.Compile.MaxKeywords = viper.GetInt("compile.max_keywords")
	}
	if viper.IsSet("report.author") {
		cfg.Report.Author = viper.GetString("report.author")
	}
	if viper.IsSet("report.output_dir") {
		cfg.Report.OutputDir = viper.GetString("report.output_dir")
	}
	if viper.IsSet("store.data_dir") {
		cfg.Store.DataDir = viper.GetString("store.data_dir")
	}

	cfg.Ingest.HuggingFaceToken = secretDefault("huggingface-api-token", cfg.Ingest.HuggingFaceToken)
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
