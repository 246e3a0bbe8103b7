package domain

// MediaType follows Instagram's numeric media type codes.
type MediaType int

const (
	MediaTypeImage MediaType = 1
	MediaTypeVideo MediaType = 2
)

// UserSummary is the owner snippet attached to stories and highlights.
type UserSummary struct {
	PK            string `json:"pk"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// UserProfile extends UserSummary with profile-level flags.
type UserProfile struct {
	UserSummary
	IsPrivate bool `json:"is_private"`
}

// StoryItem is the canonical story record served to clients. Built per
// request and never cached.
type StoryItem struct {
	PK            string      `json:"pk"`
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	TakenAt       int64       `json:"taken_at"`
	MediaType     MediaType   `json:"media_type"`
	User          UserSummary `json:"user"`
	ThumbnailURL  string      `json:"thumbnail_url,omitempty"`
	VideoURL      string      `json:"video_url,omitempty"`
	VideoDuration float64     `json:"video_duration,omitempty"`
}
