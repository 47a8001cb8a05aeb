// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linkcheck

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faqsync/pkg/types"
)

func testChecker(ts *httptest.Server) *Checker {
	c := New(nil)
	c.Client = ts.Client()
	c.BaseDelay = time.Millisecond
	return c
}

func TestDoWithRetry_RetriesThenOK(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := doWithRetry(context.Background(), ts.Client(), req, 5, time.Millisecond)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := doWithRetry(context.Background(), ts.Client(), req, 2, time.Millisecond)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = doWithRetry(ctx, ts.Client(), req, 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Equal(t, 4*time.Second, backoff(resp, 2, time.Second))

	resp.Header.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, backoff(resp, 2, time.Second))

	resp.Header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	assert.Equal(t, time.Second, backoff(resp, 0, time.Second))
}

func TestCheck_HeadFallsBackToGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	st := testChecker(ts).Check(context.Background(), ts.URL)
	assert.True(t, st.OK())
	assert.Equal(t, http.StatusOK, st.Code)
}

func TestCheckItems(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	items := []types.QAItem{
		{ID: 1, Links: []string{ts.URL + "/ok"}},
		{ID: 2, Links: []string{ts.URL + "/gone", ts.URL + "/ok"}},
		{ID: 3},
	}

	var w bytes.Buffer
	statuses, summary, err := testChecker(ts).CheckItems(context.Background(), items, &w)
	require.NoError(t, err)

	require.Len(t, statuses, 2)
	assert.Equal(t, []int{1, 2}, statuses[0].ItemIDs)
	assert.Equal(t, []int{2}, statuses[1].ItemIDs)
	assert.Equal(t, http.StatusNotFound, statuses[1].Code)
	assert.Equal(t, Summary{OK: 1, Broken: 1}, summary)
	assert.True(t, summary.HasFailures())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "each URL is checked once")
	assert.Contains(t, w.String(), "checked: 2, ok: 1, broken: 1")
}

func TestCheck_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	st := testChecker(ts).Check(context.Background(), url)
	assert.False(t, st.OK())
	assert.Error(t, st.Err)
}
