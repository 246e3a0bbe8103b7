package igclient

import (
	"github.com/orgball2608/insta-story-downloader/internal/instagram"
	"github.com/orgball2608/insta-story-downloader/internal/transport"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Transport *transport.Client
	Logger    logger.Logger
}

type IgImpl struct {
	Transport *transport.Client
	Logger    logger.Logger
}

func New(opts Opts) *IgImpl {
	return &IgImpl{
		Transport: opts.Transport,
		Logger:    opts.Logger,
	}
}

var _ instagram.Client = (*IgImpl)(nil)
