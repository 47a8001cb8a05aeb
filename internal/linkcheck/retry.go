// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linkcheck

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// retryable reports whether a status is worth another attempt: rate
// limiting and temporary unavailability.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// backoff returns the wait before attempt+1. A Retry-After header given in
// seconds wins over the exponential schedule base, 2*base, 4*base, ...
func backoff(resp *http.Response, attempt int, base time.Duration) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return base << attempt
}

// doWithRetry sends req and retries retryable responses up to maxRetries
// times. Each discarded response body is drained and closed. After the
// last attempt the final response is returned as is so the caller can
// report its status. Cancelling ctx during a wait returns ctx.Err().
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, base time.Duration) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(resp, attempt, base)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}
