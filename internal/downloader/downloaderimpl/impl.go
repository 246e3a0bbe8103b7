package downloaderimpl

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/insta-story-downloader/internal/downloader"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"go.uber.org/fx"
)

const downloadUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type DownloaderImpl struct {
	http   *http.Client
	cfg    *config.Config
	logger logger.Logger
}

func New(opts Opts) *DownloaderImpl {
	return &DownloaderImpl{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:    opts.Config,
		logger: opts.Logger,
	}
}

var _ downloader.Client = (*DownloaderImpl)(nil)

func (d *DownloaderImpl) IsAllowedURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}
	for _, allowed := range d.cfg.Downloader.AllowedDomains {
		if strings.Contains(host, allowed) {
			return true
		}
	}
	return false
}

func (d *DownloaderImpl) Download(ctx context.Context, rawURL string) (io.ReadCloser, int64, error) {
	if !d.IsAllowedURL(rawURL) {
		d.logger.Warn("Rejected download for disallowed URL", "url", rawURL)
		return nil, 0, apperrors.NewKind(apperrors.ErrInvalidInput, "Invalid download URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, apperrors.WrapKind(apperrors.ErrInvalidInput, "Invalid download URL", err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, 0, apperrors.WrapKind(apperrors.ErrUpstreamUnavailable, "Failed to download media", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, apperrors.NewKind(apperrors.ErrUpstreamUnavailable, "Failed to download media")
	}

	return resp.Body, resp.ContentLength, nil
}
