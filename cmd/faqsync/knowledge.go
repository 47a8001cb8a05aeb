// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/knowledge"
	"github.com/pdiddy/faqsync/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index from the dataset file",
	Long: `Index loads the dataset file into a SQLite database in the index
directory and writes export.yaml next to it. The index is skipped when the
dataset has not changed since the last run; --force rebuilds it anyway.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	env, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Sync(cmd.Context(), env.cfg.Dataset, force, env.out)
	return err
}

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find dataset questions relevant to a query",
	Long: `Search ranks indexed questions by keyword overlap with the query. Each
query word longer than two characters scores 3 when found in the question,
2 when found in a keyword, and 1 when found in the answer. The index is
refreshed from the dataset file first when it is out of date.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	topK, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Sync(cmd.Context(), env.cfg.Dataset, false, io.Discard); err != nil {
		return err
	}

	results, err := store.Search(cmd.Context(), strings.Join(args, " "), topK)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(env.out, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(env.out, "No results found.")
		return nil
	}
	fmt.Fprintf(env.out, "%-5s  %-4s  %-11s  %s\n", "Score", "ID", "Category", "Question")
	fmt.Fprintln(env.out, strings.Repeat("-", 90))
	for _, r := range results {
		fmt.Fprintf(env.out, "%-5d  %-4d  %-11s  %s\n", r.Score, r.ID, r.Category, truncate(r.Question, 65))
	}
	fmt.Fprintf(env.out, "\n%d results\n", len(results))
	return nil
}

// --- list subcommand ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dataset questions by category",
	Long: `List prints indexed questions in dataset order, optionally limited to
one category or to the first question of each category, followed by the
question count of every category.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	env, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Sync(cmd.Context(), env.cfg.Dataset, false, io.Discard); err != nil {
		return err
	}

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	res, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(env.out, res)
	}

	for _, item := range res.Items {
		fmt.Fprintf(env.out, "%4d  %-11s  %s\n", item.ID, item.Category, truncate(item.Question, 80))
	}
	fmt.Fprintf(env.out, "\n%d of %d questions\n\n", res.Filtered, res.Total)
	for _, c := range res.Categories {
		fmt.Fprintf(env.out, "   %s %-25s %3d\n", c.Icon, c.Name, c.Count)
	}
	return nil
}

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset to YAML or JSON",
	Long: `Export writes the indexed dataset (or a filtered subset) to export.yaml
or export.json in the index directory. Supports the same filter flags as
list.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	env, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Sync(cmd.Context(), env.cfg.Dataset, false, io.Discard); err != nil {
		return err
	}

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*runEnv, *knowledge.Store, error) {
	env, err := newRunEnv(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := knowledge.NewStore(env.cfg.IndexDir, env.logs.Get("knowledge"))
	if err != nil {
		return nil, nil, err
	}
	return env, store, nil
}

func listOptsFromFlags(cmd *cobra.Command) (knowledge.ListOptions, error) {
	category, _ := cmd.Flags().GetString("category")
	onePer, _ := cmd.Flags().GetBool("one-per-category")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := knowledge.ListOptions{
		Category:       types.CategoryID(category),
		OnePerCategory: onePer,
		Limit:          limit,
	}
	if category != "" && !types.IsDatasetCategory(opts.Category) {
		return opts, fmt.Errorf("unknown category %q", category)
	}
	return opts, nil
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "", "only questions in this category")
	cmd.Flags().Bool("one-per-category", false, "only the first question of each category")
	cmd.Flags().Int("limit", 0, "maximum number of questions (0 for all)")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to n code points, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	indexCmd.Flags().Bool("force", false, "rebuild even when the dataset is unchanged")

	searchCmd.Flags().Int("top", knowledge.DefaultTopK, "number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	addListFlags(listCmd)
	listCmd.Flags().Bool("json", false, "output the listing as JSON")

	addListFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(indexCmd, searchCmd, listCmd, exportCmd)
}
