package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/orgball2608/insta-story-downloader/internal/downloader"
	"github.com/orgball2608/insta-story-downloader/internal/downloader/downloaderimpl"
	"github.com/orgball2608/insta-story-downloader/internal/instagram"
	"github.com/orgball2608/insta-story-downloader/internal/instagram/igclient"
	"github.com/orgball2608/insta-story-downloader/internal/monitor"
	"github.com/orgball2608/insta-story-downloader/internal/monitor/monitorimpl"
	"github.com/orgball2608/insta-story-downloader/internal/ratelimit"
	"github.com/orgball2608/insta-story-downloader/internal/resolver"
	"github.com/orgball2608/insta-story-downloader/internal/resolver/resolverimpl"
	"github.com/orgball2608/insta-story-downloader/internal/server"
	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		transport.New,
		fx.Annotate(
			func(cfg *config.Config) *ratelimit.InMemoryLimiter {
				return ratelimit.NewInMemoryLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
			},
			fx.As(new(ratelimit.Limiter)),
		),
	),
	fx.Provide(
		fx.Annotate(
			resolverimpl.New,
			fx.As(new(resolver.Client)),
		), fx.Annotate(
			igclient.New,
			fx.As(new(instagram.Client)),
		), fx.Annotate(
			downloaderimpl.New,
			fx.As(new(downloader.Client)),
		),
		fx.Annotate(
			monitorimpl.New,
			fx.As(new(monitor.Client)),
		),
		server.New,
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, srv *server.Server, mon monitor.Client) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if !cfg.CredentialsConfigured() {
				log.Warn("Instagram session credentials not configured, most lookups will fail")
			}

			if err := mon.Schedule(ctx); err != nil {
				return err
			}

			addr := fmt.Sprintf(":%d", cfg.App.Port)
			go func() {
				log.Info("Starting server", "addr", addr)
				if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return srv.Shutdown(stopCtx)
		},
	})
}
