package igclient

import (
	"context"

	"github.com/orgball2608/insta-story-downloader/internal/domain"
)

func (ig *IgImpl) GetUserInfo(ctx context.Context, userID string) (domain.UserProfile, error) {
	var resp userInfoResponse
	if err := ig.Transport.GetJSON(ctx, ig.Transport.APIURL("users/"+userID+"/info/"), ig.Transport.MobileHeaders(), nil, &resp); err != nil {
		return domain.UserProfile{}, err
	}

	if resp.User == nil {
		return domain.UserProfile{}, nil
	}

	return domain.UserProfile{
		UserSummary: resp.User.summary(),
		IsPrivate:   resp.User.IsPrivate,
	}, nil
}
