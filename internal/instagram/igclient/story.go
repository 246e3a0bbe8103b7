package igclient

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
)

// supportedCapabilities mirrors the capability set the official clients
// declare on feed requests.
const supportedCapabilities = `[{"name":"SUPPORTED_SDK_VERSIONS","value":"119.0,120.0,121.0,122.0,123.0,124.0,125.0,126.0,127.0,128.0,129.0,130.0,131.0,132.0,133.0,134.0,135.0,136.0,137.0,138.0,139.0,140.0,141.0,142.0"},{"name":"FACE_TRACKER_VERSION","value":"14"},{"name":"COMPRESSION","value":"ETC2_COMPRESSION"},{"name":"gyroscope","value":"gyroscope_enabled"}]`

func (ig *IgImpl) GetUserStories(ctx context.Context, userID string) ([]domain.StoryItem, error) {
	ig.Logger.Info("Fetching user stories", "user_id", userID)

	query := url.Values{
		"supported_capabilities_new": {supportedCapabilities},
	}

	var resp userStoriesResponse
	if err := ig.Transport.GetJSON(ctx, ig.Transport.APIURL("feed/user/"+userID+"/story/"), ig.Transport.MobileHeaders(), query, &resp); err != nil {
		return nil, err
	}

	// No reel means the account has no active story right now.
	if resp.Reel == nil {
		return []domain.StoryItem{}, nil
	}

	return ig.extractAll(resp.Reel.Items), nil
}

func (ig *IgImpl) GetHighlightStories(ctx context.Context, highlightID string) (domain.Highlight, []domain.StoryItem, error) {
	ig.Logger.Info("Fetching highlight stories", "highlight_id", highlightID)

	key := "highlight:" + highlightID
	query := url.Values{
		"user_ids": {key},
	}

	var resp reelsMediaResponse
	if err := ig.Transport.GetJSON(ctx, ig.Transport.APIURL("feed/reels_media/"), ig.Transport.MobileHeaders(), query, &resp); err != nil {
		return domain.Highlight{}, nil, err
	}

	reel, ok := resp.Reels[key]
	if !ok {
		return domain.Highlight{}, nil, apperrors.NewKind(apperrors.ErrNotFound, "Highlight not found")
	}

	highlight := domain.Highlight{
		ID:    highlightID,
		Title: reel.Title,
	}
	if highlight.Title == "" {
		highlight.Title = "Highlight"
	}
	if reel.CoverMedia != nil && reel.CoverMedia.CroppedImageVersion != nil {
		highlight.CoverURL = reel.CoverMedia.CroppedImageVersion.URL
	}
	if reel.User != nil {
		highlight.User = reel.User.summary()
	}

	return highlight, ig.extractAll(reel.Items), nil
}

// extractAll runs every raw item through the extractor, dropping items that
// fail rather than aborting the batch.
func (ig *IgImpl) extractAll(items []json.RawMessage) []domain.StoryItem {
	stories := make([]domain.StoryItem, 0, len(items))
	for _, raw := range items {
		story, err := extractStory(raw)
		if err != nil {
			ig.Logger.Warn("Dropping malformed story item", "error", err)
			continue
		}
		stories = append(stories, story)
	}
	return stories
}
