package resolverimpl

import (
	"context"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

// usernameInfoStrategy hits the cookie-authenticated usernameinfo endpoint.
// It runs last because it is the most likely to be blocked or rate-limited
// and the only strategy that requires valid session credentials.
type usernameInfoStrategy struct {
	tr     *transport.Client
	logger logger.Logger
}

func (s *usernameInfoStrategy) Name() string { return "username-info" }

type usernameInfoResponse struct {
	User *struct {
		PK transport.ID `json:"pk"`
	} `json:"user"`
}

func (s *usernameInfoStrategy) Lookup(ctx context.Context, username string) (string, error) {
	var resp usernameInfoResponse
	if err := s.tr.GetJSON(ctx, s.tr.APIURL("users/"+username+"/usernameinfo/"), s.tr.MobileHeaders(), nil, &resp); err != nil {
		return "", err
	}

	if resp.User == nil {
		return "", nil
	}
	return string(resp.User.PK), nil
}
