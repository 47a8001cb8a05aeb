// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linkcheck verifies that the links attached to dataset records
// still resolve.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/faqsync/internal/logging"
	"github.com/pdiddy/faqsync/pkg/types"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
	defaultTimeout    = 15 * time.Second
	userAgent         = "faqsync-linkcheck/1.0"
)

// Status is the outcome of checking one URL.
type Status struct {
	URL  string
	Code int
	Err  error

	// ItemIDs lists the dataset records that carry the URL.
	ItemIDs []int
}

// OK reports whether the URL answered with a non-error status.
func (s Status) OK() bool {
	return s.Err == nil && s.Code > 0 && s.Code < 400
}

// Summary counts a checking run.
type Summary struct {
	OK     int
	Broken int
}

// Total returns the number of distinct URLs checked.
func (s Summary) Total() int { return s.OK + s.Broken }

// HasFailures reports whether any URL is broken.
func (s Summary) HasFailures() bool { return s.Broken > 0 }

// Checker probes URLs over HTTP.
type Checker struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	Log        logging.Logger
}

// New returns a Checker with default timeout and retry settings.
func New(log logging.Logger) *Checker {
	return &Checker{
		Client:     &http.Client{Timeout: defaultTimeout},
		MaxRetries: defaultMaxRetries,
		BaseDelay:  defaultBaseDelay,
		Log:        logging.OrNop(log),
	}
}

// Check probes url with HEAD, falling back to GET for servers that do not
// allow HEAD.
func (c *Checker) Check(ctx context.Context, url string) Status {
	st := Status{URL: url}

	code, err := c.probe(ctx, http.MethodHead, url)
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		code, err = c.probe(ctx, http.MethodGet, url)
	}
	st.Code, st.Err = code, err
	return st
}

func (c *Checker) probe(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := doWithRetry(ctx, c.Client, req, c.MaxRetries, c.BaseDelay)
	if err != nil {
		return 0, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}

// CheckItems checks every distinct link of items once, in first-seen
// order, printing one line per URL to w.
func (c *Checker) CheckItems(ctx context.Context, items []types.QAItem, w io.Writer) ([]Status, Summary, error) {
	var (
		order []string
		owner = make(map[string][]int)
	)
	for _, item := range items {
		for _, link := range item.Links {
			if _, seen := owner[link]; !seen {
				order = append(order, link)
			}
			owner[link] = append(owner[link], item.ID)
		}
	}

	var (
		statuses []Status
		summary  Summary
	)
	for _, url := range order {
		if err := ctx.Err(); err != nil {
			return statuses, summary, err
		}
		st := c.Check(ctx, url)
		st.ItemIDs = owner[url]
		statuses = append(statuses, st)

		switch {
		case st.OK():
			summary.OK++
			fmt.Fprintf(w, "ok      %d  %s\n", st.Code, url)
		case st.Err != nil:
			summary.Broken++
			fmt.Fprintf(w, "broken  ---  %s (%v) items %v\n", url, st.Err, st.ItemIDs)
			c.Log.Warn("link unreachable", "url", url, "error", st.Err)
		default:
			summary.Broken++
			fmt.Fprintf(w, "broken  %d  %s items %v\n", st.Code, url, st.ItemIDs)
			c.Log.Warn("link broken", "url", url, "status", st.Code)
		}
	}

	fmt.Fprintf(w, "\nchecked: %d, ok: %d, broken: %d\n", summary.Total(), summary.OK, summary.Broken)
	return statuses, summary, nil
}
