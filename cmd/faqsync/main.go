// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the faqsync CLI.
//
// faqsync keeps the course FAQ dataset in step with the FAQ documents it is
// built from: it extracts question/answer pairs from Markdown or PDF,
// reports which are missing from the dataset, categorizes them, and
// regenerates the dataset file. A SQLite index over the dataset backs the
// search, list, and export commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/faqsync/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the faqsync CLI.
var rootCmd = &cobra.Command{
	Use:   "faqsync",
	Short: "Sync FAQ documents with the structured Q&A dataset",
	Long: `faqsync extracts question/answer pairs from the FAQ Markdown (or PDF)
document, compares them with the generated dataset file, categorizes what is
missing, and regenerates the dataset.

Each maintenance task is a subcommand: compare, categorize, and import work
on the source documents; index, search, list, and export work on a SQLite
copy of the dataset; links checks the URLs the dataset points to.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./faqsync.yaml or $XDG_CONFIG_HOME/faqsync/faqsync.yaml)")
	pf.String("markdown-file", defaults.Source.Markdown, "FAQ Markdown document")
	pf.String("pdf-file", defaults.Source.PDF, "FAQ PDF document")
	pf.String("pdf-backend", string(defaults.Source.PDFBackend), "PDF text backend: auto, pdftotext, or markitdown")
	pf.String("dataset", defaults.Dataset, "generated dataset file")
	pf.String("report-dir", defaults.ReportDir, "directory for text reports")
	pf.String("index-dir", defaults.IndexDir, "directory for the search index and exports")
	pf.String("log-level", defaults.Log.Level, "log level: trace, debug, info, warn, error")
	pf.String("log-format", defaults.Log.Format, "log format: console, json, or pretty")

	for key, flag := range map[string]string{
		"markdown":    "markdown-file",
		"pdf":         "pdf-file",
		"pdf_backend": "pdf-backend",
		"dataset":     "dataset",
		"report_dir":  "report-dir",
		"index_dir":   "index-dir",
		"log.level":   "log-level",
		"log.format":  "log-format",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("faqsync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "faqsync"))
	}

	viper.SetEnvPrefix("FAQSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
