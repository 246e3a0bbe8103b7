package resolverimpl

import (
	"context"
	"net/url"
	"strings"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

// topSearchStrategy hits the legacy topsearch endpoint and scans the results
// for an exact username match.
type topSearchStrategy struct {
	tr     *transport.Client
	logger logger.Logger
}

func (s *topSearchStrategy) Name() string { return "top-search" }

type topSearchResponse struct {
	Users []struct {
		User struct {
			PK       transport.ID `json:"pk"`
			Username string       `json:"username"`
		} `json:"user"`
	} `json:"users"`
}

func (s *topSearchStrategy) Lookup(ctx context.Context, username string) (string, error) {
	query := url.Values{
		"query":      {username},
		"context":    {searchContext},
		"rank_token": {"0.3953592318270893"},
		"count":      {"1"},
	}

	var resp topSearchResponse
	if err := s.tr.GetJSON(ctx, s.tr.WebURL("/web/search/topsearch/"), s.tr.MobileHeaders(), query, &resp); err != nil {
		return "", err
	}

	for _, entry := range resp.Users {
		if strings.EqualFold(entry.User.Username, username) {
			return string(entry.User.PK), nil
		}
	}

	return "", nil
}
