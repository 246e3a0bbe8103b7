package igclient

import (
	"encoding/json"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
	"github.com/orgball2608/insta-story-downloader/internal/transport"
)

// Wire schemas for the feed endpoints. Items stay raw so one malformed item
// cannot fail the whole payload.

type candidate struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

type userBrief struct {
	PK            transport.ID `json:"pk"`
	Username      string       `json:"username"`
	FullName      string       `json:"full_name"`
	ProfilePicURL string       `json:"profile_pic_url"`
}

func (u userBrief) summary() domain.UserSummary {
	return domain.UserSummary{
		PK:            string(u.PK),
		Username:      u.Username,
		FullName:      u.FullName,
		ProfilePicURL: u.ProfilePicURL,
	}
}

type mediaItem struct {
	PK             transport.ID `json:"pk"`
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	TakenAt        int64        `json:"taken_at"`
	MediaType      int          `json:"media_type"`
	User           *userBrief   `json:"user"`
	ImageVersions2 *struct {
		Candidates []candidate `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []candidate `json:"video_versions"`
	VideoDuration float64     `json:"video_duration"`
}

type reelPayload struct {
	Title      string     `json:"title"`
	User       *userBrief `json:"user"`
	CoverMedia *struct {
		CroppedImageVersion *struct {
			URL string `json:"url"`
		} `json:"cropped_image_version"`
	} `json:"cover_media"`
	Items []json.RawMessage `json:"items"`
}

type userStoriesResponse struct {
	Reel *reelPayload `json:"reel"`
}

type reelsMediaResponse struct {
	Reels map[string]reelPayload `json:"reels"`
}

type userInfoResponse struct {
	User *struct {
		userBrief
		IsPrivate bool `json:"is_private"`
	} `json:"user"`
}
