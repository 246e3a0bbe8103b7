package downloader

import (
	"context"
	"io"
)

// Client proxies media bytes from the upstream CDN. It is the security
// boundary that keeps the service from acting as an open proxy.
type Client interface {
	// IsAllowedURL validates the URL's host against the allowed-domain list.
	IsAllowedURL(rawURL string) bool

	// Download fetches the media and returns its body stream and declared
	// content length (-1 when unknown). Fails with an invalid-input error
	// for URLs outside the allowed domains.
	Download(ctx context.Context, rawURL string) (io.ReadCloser, int64, error)
}
