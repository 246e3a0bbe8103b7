package resolverimpl

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

const (
	searchDocID     = "9153895011291216"
	searchActorID   = "17841461911219001"
	searchSurface   = "web_top_search"
	searchContext   = "blended"
	graphqlEndpoint = "/graphql/query"
)

// graphQLStrategy posts a structured search query to the GraphQL search
// surface and scans the returned users for an exact match.
type graphQLStrategy struct {
	tr     *transport.Client
	logger logger.Logger
}

func (s *graphQLStrategy) Name() string { return "graphql-search" }

type graphQLSearchResponse struct {
	Data struct {
		TopSearch struct {
			Users []struct {
				User struct {
					ID       transport.ID `json:"id"`
					Username string       `json:"username"`
				} `json:"user"`
			} `json:"users"`
		} `json:"xdt_api__v1__fbsearch__topsearch_connection"`
	} `json:"data"`
}

func (s *graphQLStrategy) Lookup(ctx context.Context, username string) (string, error) {
	variables, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"context":        searchContext,
			"include_reel":   "true",
			"query":          username,
			"rank_token":     "",
			"search_surface": searchSurface,
		},
		"hasQuery": true,
	})
	if err != nil {
		return "", err
	}

	form := url.Values{
		"av":        {searchActorID},
		"__d":       {"www"},
		"variables": {string(variables)},
		"doc_id":    {searchDocID},
	}

	var resp graphQLSearchResponse
	if err := s.tr.PostForm(ctx, s.tr.WebURL(graphqlEndpoint), s.tr.GraphQLHeaders(), form, &resp); err != nil {
		return "", err
	}

	for _, entry := range resp.Data.TopSearch.Users {
		if strings.EqualFold(entry.User.Username, username) {
			return string(entry.User.ID), nil
		}
	}

	return "", nil
}
