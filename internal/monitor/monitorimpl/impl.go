package monitorimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"go.uber.org/fx"

	"github.com/orgball2608/insta-story-downloader/internal/instagram"
	"github.com/orgball2608/insta-story-downloader/internal/monitor"
	"github.com/orgball2608/insta-story-downloader/internal/ratelimit"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
)

const (
	sessionCheckInterval = time.Hour
	prunerInterval       = 10 * time.Minute
	limiterMaxIdle       = 30 * time.Minute
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Instagram instagram.Client
	Limiter   ratelimit.Limiter
}

type MonitorImpl struct {
	Config    *config.Config
	Logger    logger.Logger
	Instagram instagram.Client
	Limiter   ratelimit.Limiter
}

func New(opts Opts) *MonitorImpl {
	return &MonitorImpl{
		Config:    opts.Config,
		Logger:    opts.Logger,
		Instagram: opts.Instagram,
		Limiter:   opts.Limiter,
	}
}

var _ monitor.Client = (*MonitorImpl)(nil)

// Schedule starts the periodic session check and limiter pruning. Jobs stop
// when ctx is cancelled.
func (m *MonitorImpl) Schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(sessionCheckInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			m.checkSession(taskCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule session check: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(prunerInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			if removed := m.Limiter.Prune(limiterMaxIdle); removed > 0 {
				m.Logger.Debug("Pruned idle rate limiter buckets", "removed", removed)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule limiter pruning: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		m.Logger.Info("Stopping maintenance scheduler")
		if err := scheduler.Shutdown(); err != nil {
			m.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}

// checkSession verifies the configured session is still accepted upstream by
// fetching our own account's profile.
func (m *MonitorImpl) checkSession(ctx context.Context) {
	if !m.Config.CredentialsConfigured() {
		m.Logger.Debug("Skipping session check, credentials not configured")
		return
	}

	_, err := m.Instagram.GetUserInfo(ctx, m.Config.Instagram.DSUserID)
	if err == nil {
		m.Logger.Debug("Session check passed")
		return
	}

	if apperrors.IsAuthExpired(err) {
		m.Logger.Error("Instagram session rejected, credentials need refresh", "error", err)
		return
	}
	m.Logger.Warn("Session check failed", "error", err)
}
