package igclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImpl(t *testing.T, upstream http.Handler) (*IgImpl, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Instagram.APIDomain = srv.URL
	cfg.Instagram.WebDomain = srv.URL

	log := logger.New(logger.Opts{Writer: io.Discard})
	tr := transport.New(transport.Opts{Config: cfg, Logger: log})

	return New(Opts{Transport: tr, Logger: log}), srv
}

func TestGetUserStoriesEmptyReel(t *testing.T) {
	ig, _ := newTestImpl(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/feed/user/42/story/", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("supported_capabilities_new"))
		_, _ = w.Write([]byte(`{"reel": null, "status": "ok"}`))
	}))

	stories, err := ig.GetUserStories(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, stories)
	assert.NotNil(t, stories)
}

func TestGetUserStoriesDropsMalformedItems(t *testing.T) {
	payload := map[string]any{
		"reel": map[string]any{
			"items": []any{
				map[string]any{"pk": "1", "media_type": 1, "image_versions2": map[string]any{
					"candidates": []any{map[string]any{"width": 10, "height": 10, "url": "https://cdn.example/a.jpg"}},
				}},
				"garbage entry",
				map[string]any{"pk": "2", "media_type": 1},
			},
		},
	}

	ig, _ := newTestImpl(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(payload)
	}))

	stories, err := ig.GetUserStories(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "1", stories[0].PK)
	assert.Equal(t, "https://cdn.example/a.jpg", stories[0].ThumbnailURL)
	assert.Equal(t, "2", stories[1].PK)
}

func TestGetHighlightStories(t *testing.T) {
	payload := map[string]any{
		"reels": map[string]any{
			"highlight:123456": map[string]any{
				"title": "Trips",
				"user": map[string]any{
					"pk": 42, "username": "someuser", "full_name": "Some User",
					"profile_pic_url": "https://cdn.example/pic.jpg",
				},
				"cover_media": map[string]any{
					"cropped_image_version": map[string]any{"url": "https://cdn.example/cover.jpg"},
				},
				"items": []any{
					map[string]any{"pk": "9", "media_type": 1},
				},
			},
		},
	}

	ig, _ := newTestImpl(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/feed/reels_media/", r.URL.Path)
		assert.Equal(t, "highlight:123456", r.URL.Query().Get("user_ids"))
		_ = json.NewEncoder(w).Encode(payload)
	}))

	highlight, stories, err := ig.GetHighlightStories(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", highlight.ID)
	assert.Equal(t, "Trips", highlight.Title)
	assert.Equal(t, "https://cdn.example/cover.jpg", highlight.CoverURL)
	assert.Equal(t, "someuser", highlight.User.Username)
	require.Len(t, stories, 1)
	assert.Equal(t, "9", stories[0].PK)
}

func TestGetHighlightStoriesMissingKey(t *testing.T) {
	ig, _ := newTestImpl(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reels": {}, "status": "ok"}`))
	}))

	_, _, err := ig.GetHighlightStories(context.Background(), "123456")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Highlight not found", apperrors.GetMessage(err))
}

func TestGetUserInfo(t *testing.T) {
	ig, _ := newTestImpl(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/42/info/", r.URL.Path)
		_, _ = w.Write([]byte(`{"user": {"pk": 42, "username": "someuser", "full_name": "Some User", "is_private": true}}`))
	}))

	profile, err := ig.GetUserInfo(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", profile.PK)
	assert.Equal(t, "someuser", profile.Username)
	assert.True(t, profile.IsPrivate)
}
