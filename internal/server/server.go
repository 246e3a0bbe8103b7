package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/orgball2608/insta-story-downloader/internal/downloader"
	"github.com/orgball2608/insta-story-downloader/internal/instagram"
	"github.com/orgball2608/insta-story-downloader/internal/ratelimit"
	"github.com/orgball2608/insta-story-downloader/internal/resolver"
	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config     *config.Config
	Logger     logger.Logger
	Resolver   resolver.Client
	Instagram  instagram.Client
	Downloader downloader.Client
	Transport  *transport.Client
	Limiter    ratelimit.Limiter
}

type Server struct {
	echo       *echo.Echo
	cfg        *config.Config
	logger     logger.Logger
	resolver   resolver.Client
	instagram  instagram.Client
	downloader downloader.Client
	transport  *transport.Client
	limiter    ratelimit.Limiter
}

func New(opts Opts) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		cfg:        opts.Config,
		logger:     opts.Logger,
		resolver:   opts.Resolver,
		instagram:  opts.Instagram,
		downloader: opts.Downloader,
		transport:  opts.Transport,
		limiter:    opts.Limiter,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api", s.rateLimitMiddleware)
	api.GET("/stories", s.handleStories)
	api.POST("/stories", s.handleStories)
	api.GET("/download", s.handleDownload)
	api.GET("/health", s.handleHealth)
	api.GET("/debug", s.handleDebug)
	api.POST("/reset", s.handleReset)

	e.Static("/", "static")

	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
