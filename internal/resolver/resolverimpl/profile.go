package resolverimpl

import (
	"context"
	"net/url"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

// profileInfoStrategy reads the id straight out of the structured
// web_profile_info payload.
type profileInfoStrategy struct {
	tr     *transport.Client
	logger logger.Logger
}

func (s *profileInfoStrategy) Name() string { return "web-profile-info" }

type webProfileResponse struct {
	Data struct {
		User *struct {
			ID transport.ID `json:"id"`
		} `json:"user"`
	} `json:"data"`
}

func (s *profileInfoStrategy) Lookup(ctx context.Context, username string) (string, error) {
	headers := s.tr.MobileHeaders()
	headers["Referer"] = s.tr.WebURL("/" + username + "/")

	query := url.Values{"username": {username}}

	var resp webProfileResponse
	if err := s.tr.GetJSON(ctx, s.tr.WebURL("/api/v1/users/web_profile_info/"), headers, query, &resp); err != nil {
		return "", err
	}

	if resp.Data.User == nil {
		return "", nil
	}
	return string(resp.Data.User.ID), nil
}
