// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/internal/reconcile"
	"github.com/pdiddy/faqsync/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Report which FAQ questions are missing from the dataset",
	Long: `Compare extracts every question from the FAQ document, matches them
against the dataset file, and prints a coverage report. The full report,
including every extracted question, is written to the report directory.

With --pdf the PDF export is used instead of the Markdown document. When no
PDF text backend is installed the command warns and exits successfully.`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	pdf, _ := cmd.Flags().GetBool("pdf")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	src := sourceLabel(pdf)
	runID := report.NewRunID()
	log := logging.WithRun(env.logs.Get("compare"), runID)

	fmt.Fprintln(env.out, strings.Repeat("=", 70))
	fmt.Fprintf(env.out, "%s to Database Comparison Tool\n", src)
	fmt.Fprintln(env.out, strings.Repeat("=", 70))

	extracted, err := env.extractSource(ctx, pdf)
	if err != nil {
		return skipOK(err)
	}
	existing, err := env.loadDataset()
	if err != nil {
		return err
	}

	res := reconcile.Compare(extracted, existing)
	log.Info("compared", "matched", len(res.Matches), "missing", len(res.SourceOnly), "dataset_only", len(res.DatasetOnly))

	c := report.Comparison{RunID: runID, Source: src, Extracted: extracted, Result: res}
	fmt.Fprintln(env.out)
	report.WriteComparison(env.out, c)

	path, err := report.Save(env.cfg.ReportDir, c.FileName(), report.RenderComparison(c))
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "\n\nDetailed report saved to: %s\n", path)
	fmt.Fprintln(env.out, "\n"+strings.Repeat("=", 70))

	report.Coverage(env.out, src, res)
	return nil
}

func init() {
	compareCmd.Flags().Bool("pdf", false, "compare the PDF export instead of the Markdown document")
	rootCmd.AddCommand(compareCmd)
}
