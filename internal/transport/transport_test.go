package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-story-downloader/pkg/config"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"github.com/orgball2608/insta-story-downloader/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, upstreamURL string) *Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.Instagram.APIDomain = upstreamURL
	cfg.Instagram.WebDomain = upstreamURL
	// Jitter stays off so tests run fast.

	c := New(Opts{
		Config: cfg,
		Logger: logger.New(logger.Opts{Writer: io.Discard}),
	})
	c.retry = retry.Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      1.5,
	}
	return c
}

func TestGetJSONRetriesTransientStatuses(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var out struct {
		Status string `json:"status"`
	}
	err := c.GetJSON(context.Background(), c.APIURL("feed/user/1/story/"), c.MobileHeaders(), nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetJSONExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.GetJSON(context.Background(), c.APIURL("feed/user/1/story/"), nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamUnavailable(err))
	// 1 initial attempt + 2 retries.
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetJSONRateLimitedAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.GetJSON(context.Background(), c.APIURL("feed/user/1/story/"), nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimited(err))
}

func TestGetJSONDoesNotRetryNonTransient(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "bad request", status: http.StatusBadRequest, check: apperrors.IsInvalidInput},
		{name: "auth expired", status: http.StatusUnauthorized, check: apperrors.IsAuthExpired},
		{name: "not found", status: http.StatusNotFound, check: apperrors.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)

			err := c.GetJSON(context.Background(), c.APIURL("users/1/info/"), nil, nil, nil)
			require.Error(t, err)
			assert.True(t, tt.check(err))
			assert.Equal(t, int32(1), calls.Load(), "non-transient statuses must not be retried")
		})
	}
}

func TestUpstreamMessageSurfacedOn400(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "challenge_required"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.GetJSON(context.Background(), c.APIURL("users/1/info/"), nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "challenge_required", apperrors.GetMessage(err))
}

func TestResetSwapsSession(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0")

	before := c.session()
	c.Reset()
	after := c.session()

	assert.NotSame(t, before, after)
	assert.NotEqual(t, before.uuid, after.uuid)
}

func TestIDUnmarshal(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12345678901234, "b": "9876"}`), &payload))
	assert.Equal(t, ID("12345678901234"), payload.A)
	assert.Equal(t, ID("9876"), payload.B)
}
