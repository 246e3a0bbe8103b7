package resolverimpl

import (
	"context"
	"regexp"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

// Ordered patterns for finding an account id embedded in profile page HTML.
// The order matters: earlier patterns are more specific. The third slot is
// built per lookup because it anchors on the username.
var (
	reProfilePage = regexp.MustCompile(`"profilePage_(\d+)"`)
	reUserIDField = regexp.MustCompile(`"user_id"\s*:\s*"(\d+)"`)
	reDataIDAttr  = regexp.MustCompile(`data-(?:user-)?id="(\d+)"`)
)

// pageStrategy scrapes the public profile HTML page for an embedded id.
type pageStrategy struct {
	tr     *transport.Client
	logger logger.Logger
}

func (s *pageStrategy) Name() string { return "page-scrape" }

func (s *pageStrategy) Lookup(ctx context.Context, username string) (string, error) {
	html, err := s.tr.GetText(ctx, s.tr.WebURL("/"+username+"/"), s.tr.WebHeaders())
	if err != nil {
		return "", err
	}

	reIDWithUsername := regexp.MustCompile(`\{"id"\s*:\s*"(\d+)"[^}]*"username"\s*:\s*"` + regexp.QuoteMeta(username) + `"`)

	for _, re := range []*regexp.Regexp{reProfilePage, reUserIDField, reIDWithUsername, reDataIDAttr} {
		if m := re.FindStringSubmatch(html); m != nil {
			return m[1], nil
		}
	}

	return "", nil
}
