// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/categorize"
	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/internal/reconcile"
	"github.com/pdiddy/faqsync/internal/report"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Group missing FAQ questions by category",
	Long: `Categorize finds the FAQ questions that are not yet in the dataset and
sorts them into categories with keyword rules. Questions no rule matches are
listed under General/Other. The full listing is written to
categorized-missing-questions.txt in the report directory.`,
	RunE: runCategorize,
}

func runCategorize(cmd *cobra.Command, args []string) error {
	pdf, _ := cmd.Flags().GetBool("pdf")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	runID := report.NewRunID()
	log := logging.WithRun(env.logs.Get("categorize"), runID)

	fmt.Fprintln(env.out, strings.Repeat("=", 70))
	fmt.Fprintf(env.out, "Categorizing Missing Questions from %s\n", sourceLabel(pdf))
	fmt.Fprintln(env.out, strings.Repeat("=", 70))

	extracted, err := env.extractSource(cmd.Context(), pdf)
	if err != nil {
		return skipOK(err)
	}
	existing, err := env.loadDataset()
	if err != nil {
		return err
	}

	missing := reconcile.Compare(extracted, existing).SourceOnly
	fmt.Fprintf(env.out, "   Found %d missing questions\n", len(missing))

	groups := categorize.GroupByCategory(categorize.Report.Apply(missing))
	for _, g := range groups {
		log.Debug("category", "category", g.Category, "count", len(g.Items))
	}

	c := report.Categorized{RunID: runID, Total: len(missing), Groups: groups}
	var full strings.Builder
	report.WriteCategorized(&full, c)

	path, err := report.Save(env.cfg.ReportDir, report.CategorizedFile, full.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "\nFull report saved to: %s\n", path)
	fmt.Fprintln(env.out, "\n"+strings.Repeat("=", 70))

	report.CategorySummary(env.out, c)
	log.Info("categorized", "missing", len(missing), "categories", len(groups))
	return nil
}

func init() {
	categorizeCmd.Flags().Bool("pdf", false, "read the PDF export instead of the Markdown document")
	rootCmd.AddCommand(categorizeCmd)
}
