package igclient

import (
	"encoding/json"
	"errors"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	"github.com/samber/lo"
)

var errNoIdentifiers = errors.New("story item missing identifiers")

// extractStory normalizes one raw upstream media item into a canonical
// StoryItem. Structural errors are returned so the caller can drop the item
// without failing the batch.
func extractStory(raw json.RawMessage) (domain.StoryItem, error) {
	var item mediaItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.StoryItem{}, err
	}

	if item.PK == "" && item.ID == "" {
		return domain.StoryItem{}, errNoIdentifiers
	}

	mediaType := domain.MediaType(item.MediaType)
	if item.MediaType == 0 {
		mediaType = domain.MediaTypeImage
	}

	story := domain.StoryItem{
		PK:            string(item.PK),
		ID:            item.ID,
		Code:          item.Code,
		TakenAt:       item.TakenAt,
		MediaType:     mediaType,
		VideoDuration: item.VideoDuration,
	}

	if item.User != nil {
		story.User = item.User.summary()
	}

	// Image candidates cover both stills and video posters.
	if item.ImageVersions2 != nil {
		if best, ok := bestCandidate(item.ImageVersions2.Candidates); ok {
			story.ThumbnailURL = best.URL
		}
	}

	if mediaType == domain.MediaTypeVideo {
		if best, ok := bestCandidate(item.VideoVersions); ok {
			story.VideoURL = best.URL
		}
	}

	return story, nil
}

// bestCandidate picks the rendition maximizing width*height. Upstream
// candidate ordering is not guaranteed, so "first" or "highest listed" would
// be wrong. Ties keep the first-encountered candidate.
func bestCandidate(candidates []candidate) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}
	best := lo.MaxBy(candidates, func(a, b candidate) bool {
		return a.Width*a.Height > b.Width*b.Height
	})
	return best, true
}
