package igclient

import (
	"encoding/json"
	"testing"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStoryPicksLargestImageCandidate(t *testing.T) {
	raw := json.RawMessage(`{
		"pk": 3100000000000000001,
		"id": "3100000000000000001_42",
		"code": "Cxyz",
		"taken_at": 1700000000,
		"media_type": 1,
		"user": {"pk": 42, "username": "someuser", "full_name": "Some User", "profile_pic_url": "https://cdn.example/pic.jpg"},
		"image_versions2": {"candidates": [
			{"width": 100, "height": 100, "url": "https://cdn.example/small.jpg"},
			{"width": 300, "height": 300, "url": "https://cdn.example/large.jpg"},
			{"width": 200, "height": 200, "url": "https://cdn.example/medium.jpg"}
		]}
	}`)

	story, err := extractStory(raw)
	require.NoError(t, err)

	assert.Equal(t, "3100000000000000001", story.PK)
	assert.Equal(t, "3100000000000000001_42", story.ID)
	assert.Equal(t, "Cxyz", story.Code)
	assert.Equal(t, int64(1700000000), story.TakenAt)
	assert.Equal(t, domain.MediaTypeImage, story.MediaType)
	assert.Equal(t, "https://cdn.example/large.jpg", story.ThumbnailURL)
	assert.Empty(t, story.VideoURL)
	assert.Equal(t, "42", story.User.PK)
	assert.Equal(t, "someuser", story.User.Username)
}

func TestExtractStoryVideoSelection(t *testing.T) {
	raw := json.RawMessage(`{
		"pk": "1",
		"media_type": 2,
		"video_duration": 12.5,
		"image_versions2": {"candidates": [{"width": 640, "height": 1136, "url": "https://cdn.example/poster.jpg"}]},
		"video_versions": [
			{"width": 480, "height": 852, "url": "https://cdn.example/low.mp4"},
			{"width": 720, "height": 1280, "url": "https://cdn.example/high.mp4"}
		]
	}`)

	story, err := extractStory(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.MediaTypeVideo, story.MediaType)
	assert.Equal(t, "https://cdn.example/high.mp4", story.VideoURL)
	// The poster still comes from the image candidates.
	assert.Equal(t, "https://cdn.example/poster.jpg", story.ThumbnailURL)
	assert.Equal(t, 12.5, story.VideoDuration)
}

func TestExtractStoryImageIgnoresVideoVersions(t *testing.T) {
	raw := json.RawMessage(`{
		"pk": "1",
		"media_type": 1,
		"video_versions": [{"width": 720, "height": 1280, "url": "https://cdn.example/high.mp4"}]
	}`)

	story, err := extractStory(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.MediaTypeImage, story.MediaType)
	assert.Empty(t, story.VideoURL, "image items must not get a video URL even when video candidates exist")
}

func TestExtractStoryDefaultsMediaTypeToImage(t *testing.T) {
	story, err := extractStory(json.RawMessage(`{"pk": "1"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeImage, story.MediaType)
}

func TestExtractStoryMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not an object", raw: `"oops"`},
		{name: "missing identifiers", raw: `{"media_type": 1}`},
		{name: "wrong nested shape", raw: `{"pk": "1", "image_versions2": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractStory(json.RawMessage(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestBestCandidateTieKeepsFirst(t *testing.T) {
	best, ok := bestCandidate([]candidate{
		{Width: 200, Height: 50, URL: "first"},
		{Width: 100, Height: 100, URL: "second"},
	})
	require.True(t, ok)
	assert.Equal(t, "first", best.URL)
}
