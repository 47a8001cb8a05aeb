// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/categorize"
	"github.com/pdiddy/faqsync/internal/dataset"
	"github.com/pdiddy/faqsync/internal/extract"
	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/internal/reconcile"
	"github.com/pdiddy/faqsync/internal/report"
	"github.com/pdiddy/faqsync/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Add missing FAQ questions to the dataset file",
	Long: `Import extracts the FAQ questions, categorizes the ones missing from the
dataset, and rewrites the dataset file with them appended. Existing records
keep their category, links, date, and keywords; ids are renumbered.

With --replace the dataset is rebuilt from the document alone, every
question categorized afresh. The previous file is kept as <dataset>.backup.`,
	RunE: runImport,
}

// mergeItems returns existing followed by the extracted items the dataset
// lacks, categorized with the import rules. With replace, only the
// extracted items are returned, all recategorized.
func mergeItems(extracted, existing []types.QAItem, replace, keywords bool) (items []types.QAItem, added int) {
	fresh := extracted
	if !replace {
		fresh = reconcile.Compare(extracted, existing).SourceOnly
	}
	fresh = categorize.Import.Apply(fresh)
	if keywords {
		for i := range fresh {
			if len(fresh[i].Keywords) == 0 {
				fresh[i].Keywords = extract.Keywords(fresh[i].Question + " " + fresh[i].Answer)
			}
		}
	}
	if replace {
		return fresh, len(fresh)
	}
	items = make([]types.QAItem, 0, len(existing)+len(fresh))
	items = append(items, existing...)
	return append(items, fresh...), len(fresh)
}

func runImport(cmd *cobra.Command, args []string) error {
	pdf, _ := cmd.Flags().GetBool("pdf")
	replace, _ := cmd.Flags().GetBool("replace")
	keywords, _ := cmd.Flags().GetBool("keywords")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	runID := report.NewRunID()
	log := logging.WithRun(env.logs.Get("import"), runID)

	fmt.Fprintln(env.out, strings.Repeat("=", 70))
	fmt.Fprintf(env.out, "Importing Questions from %s to Database\n", sourceLabel(pdf))
	fmt.Fprintln(env.out, strings.Repeat("=", 70))

	extracted, err := env.extractSource(cmd.Context(), pdf)
	if err != nil {
		return skipOK(err)
	}
	var existing []types.QAItem
	if !replace {
		if existing, err = env.loadDataset(); err != nil {
			return err
		}
	}

	items, added := mergeItems(extracted, existing, replace, keywords)

	fmt.Fprintln(env.out, "\nCategory distribution of imported questions:")
	for _, g := range categorize.GroupByCategory(items[len(items)-added:]) {
		fmt.Fprintf(env.out, "     %s: %d questions\n", g.Category, len(g.Items))
	}

	if dryRun {
		fmt.Fprintf(env.out, "\nDry run: %d questions would be written to %s (%d new)\n", len(items), env.cfg.Dataset, added)
		return nil
	}

	res, err := dataset.Write(env.cfg.Dataset, items)
	if err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	if res.BackupPath != "" {
		fmt.Fprintf(env.out, "   Backed up existing file to %s\n", res.BackupPath)
	}
	fmt.Fprintf(env.out, "   Saved %d questions to %s\n", res.Count, res.Path)
	log.Info("dataset written", "path", res.Path, "total", res.Count, "added", added, "replace", replace)

	fmt.Fprintln(env.out, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(env.out, "Import completed successfully!")
	fmt.Fprintf(env.out, "Questions added: %d, total in dataset: %d\n", added, res.Count)
	fmt.Fprintln(env.out, strings.Repeat("=", 70))
	return nil
}

func init() {
	importCmd.Flags().Bool("pdf", false, "read the PDF export instead of the Markdown document")
	importCmd.Flags().Bool("replace", false, "rebuild the dataset from the document instead of appending")
	importCmd.Flags().Bool("keywords", true, "derive keywords for imported questions that have none")
	importCmd.Flags().Bool("dry-run", false, "show what would be written without touching the dataset")
	rootCmd.AddCommand(importCmd)
}
