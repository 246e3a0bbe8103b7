package instagram

import (
	"context"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go -package=mocks

// Client retrieves and normalizes story media for resolved accounts.
type Client interface {
	// GetUserStories returns the account's active stories; an account with
	// no active story yields an empty list, not an error.
	GetUserStories(ctx context.Context, userID string) ([]domain.StoryItem, error)

	// GetHighlightStories returns a highlight reel's metadata and stories.
	GetHighlightStories(ctx context.Context, highlightID string) (domain.Highlight, []domain.StoryItem, error)

	// GetUserInfo fetches the profile summary for an account id.
	GetUserInfo(ctx context.Context, userID string) (domain.UserProfile, error)
}
