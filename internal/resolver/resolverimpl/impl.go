package resolverimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-story-downloader/internal/resolver"
	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Transport *transport.Client
	Config    *config.Config
	Logger    logger.Logger
}

type ResolverImpl struct {
	strategies []resolver.Strategy
	logger     logger.Logger
}

// New builds the resolution chain. Strategies are ordered from least to most
// likely to be blocked, and from least to most dependent on the caller's own
// authenticated session.
func New(opts Opts) *ResolverImpl {
	return &ResolverImpl{
		strategies: []resolver.Strategy{
			&pageStrategy{tr: opts.Transport, logger: opts.Logger},
			&graphQLStrategy{tr: opts.Transport, logger: opts.Logger},
			&profileInfoStrategy{tr: opts.Transport, logger: opts.Logger},
			&topSearchStrategy{tr: opts.Transport, logger: opts.Logger},
			&usernameInfoStrategy{tr: opts.Transport, logger: opts.Logger},
		},
		logger: opts.Logger,
	}
}

var _ resolver.Client = (*ResolverImpl)(nil)

// Resolve tries each strategy in order and stops at the first non-empty
// result. Individual strategy failures are logged and swallowed; only
// exhaustion of the whole chain surfaces as not-found.
func (r *ResolverImpl) Resolve(ctx context.Context, username string) (string, error) {
	username = normalize(username)

	for _, s := range r.strategies {
		id, err := s.Lookup(ctx, username)
		if err != nil {
			r.logger.Warn("Username lookup strategy failed",
				"strategy", s.Name(),
				"username", username,
				"error", err)
			continue
		}
		if id != "" {
			r.logger.Info("Resolved username",
				"strategy", s.Name(),
				"username", username,
				"user_id", id)
			return id, nil
		}
	}

	return "", apperrors.NewKind(apperrors.ErrNotFound,
		fmt.Sprintf("User '%s' not found. Please check the username.", username))
}

func normalize(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(strings.ToLower(username)), "@")
}
