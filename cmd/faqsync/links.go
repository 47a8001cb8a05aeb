// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faqsync/internal/linkcheck"
	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/internal/report"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Check that every link in the dataset still resolves",
	Long: `Links requests every distinct URL attached to a dataset record, once,
with HEAD (falling back to GET when the server refuses HEAD). Rate-limited
and temporarily unavailable responses are retried with backoff. Each URL is
printed as ok or broken along with the ids of the records that carry it.

The command fails when any link is broken.`,
	RunE: runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	retries, _ := cmd.Flags().GetInt("retries")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	log := logging.WithRun(env.logs.Get("links"), report.NewRunID())

	items, err := env.loadDataset()
	if err != nil {
		return err
	}

	checker := linkcheck.New(log)
	checker.MaxRetries = retries

	_, summary, err := checker.CheckItems(cmd.Context(), items, env.out)
	if err != nil {
		return err
	}
	log.Info("links checked", "total", summary.Total(), "broken", summary.Broken)
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d link(s) broken", summary.Broken, summary.Total())
	}
	return nil
}

func init() {
	linksCmd.Flags().Int("retries", 3, "retries for rate-limited or unavailable responses")
	rootCmd.AddCommand(linksCmd)
}
