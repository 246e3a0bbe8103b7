// Package transport owns the single shared HTTP session presented to
// Instagram: identity cookies, device ids, header sets, bounded retries on
// transient statuses and typed error mapping. It is constructed once by the
// process bootstrap and safe for concurrent use across inbound requests.
package transport

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-story-downloader/pkg/config"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
	"github.com/orgball2608/insta-story-downloader/pkg/logger"
	"github.com/orgball2608/insta-story-downloader/pkg/retry"
	"go.uber.org/fx"
)

const (
	requestTimeout = 30 * time.Second

	mobileUserAgent  = "Mozilla/5.0 (Linux; Android 9; GM1903 Build/PKQ1.190110.001; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/75.0.3770.143 Mobile Safari/537.36 Instagram 103.1.0.15.119 Android (28/9; 420dpi; 1080x2260; OnePlus; GM1903; OnePlus7; qcom; sv_SE; 164094539)"
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	graphqlUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"

	igAppID  = "936619743392459"
	asbdID   = "129477"
	igOrigin = "https://www.instagram.com"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// session bundles the state that gets swapped wholesale on Reset.
type session struct {
	http        *http.Client
	uuid        string
	phoneID     string
	androidID   string
	cookieNames []string
}

type Client struct {
	cfg    *config.Config
	logger logger.Logger
	retry  retry.Config

	mu   sync.RWMutex
	sess *session
}

func New(opts Opts) *Client {
	c := &Client{
		cfg:    opts.Config,
		logger: opts.Logger,
		retry: retry.Config{
			// Up to 3 attempts total on transient statuses.
			MaxRetries:      2,
			InitialInterval: time.Second,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
		},
	}
	c.sess = newSession(opts.Config, opts.Logger)
	return c
}

func newSession(cfg *config.Config, log logger.Logger) *session {
	jar, _ := cookiejar.New(nil)

	var cookies []*http.Cookie
	add := func(name, value string) {
		if value == "" {
			return
		}
		cookies = append(cookies, &http.Cookie{
			Name:   name,
			Value:  value,
			Domain: ".instagram.com",
			Path:   "/",
		})
	}
	add("sessionid", cfg.Instagram.SessionID)
	add("ds_user_id", cfg.Instagram.DSUserID)
	add("csrftoken", cfg.Instagram.CSRFToken)
	add("mid", cfg.Instagram.MID)
	add("datr", cfg.Instagram.Datr)
	add("ig_did", cfg.Instagram.DeviceID)
	add("rur", cfg.Instagram.Rur)

	jar.SetCookies(&url.URL{Scheme: "https", Host: "www.instagram.com"}, cookies)

	names := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		names = append(names, ck.Name)
	}

	log.Info("Instagram session configured",
		"session_id_set", cfg.Instagram.SessionID != "",
		"ds_user_id_set", cfg.Instagram.DSUserID != "",
		"csrf_token_set", cfg.Instagram.CSRFToken != "",
		"cookies", names,
	)

	seed := strconv.FormatInt(time.Now().UnixNano(), 10)
	androidID := fmt.Sprintf("android-%x", md5.Sum([]byte(seed)))[:len("android-")+16]

	return &session{
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		uuid:        uuid.NewString(),
		phoneID:     uuid.NewString(),
		androidID:   androidID,
		cookieNames: names,
	}
}

// Reset swaps in a fresh session (http client, cookies, device ids). Used
// when credentials change at runtime.
func (c *Client) Reset() {
	c.mu.Lock()
	c.sess = newSession(c.cfg, c.logger)
	c.mu.Unlock()
	c.logger.Info("Transport session reset")
}

func (c *Client) session() *session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess
}

// CookieNames lists the names of the identity cookies in the current session.
func (c *Client) CookieNames() []string {
	return c.session().cookieNames
}

// DeviceIDs returns the generated device identifiers of the current session.
func (c *Client) DeviceIDs() (uuid, phoneID, androidID string) {
	s := c.session()
	return s.uuid, s.phoneID, s.androidID
}

func baseFor(domain string) string {
	if strings.Contains(domain, "://") {
		return strings.TrimSuffix(domain, "/")
	}
	return "https://" + domain
}

// APIURL builds a mobile API endpoint URL: https://<api-domain>/api/v1/<endpoint>.
func (c *Client) APIURL(endpoint string) string {
	return baseFor(c.cfg.Instagram.APIDomain) + "/api/v1/" + endpoint
}

// WebURL builds a URL on the web domain.
func (c *Client) WebURL(path string) string {
	return baseFor(c.cfg.Instagram.WebDomain) + path
}

// MobileHeaders is the header set presented on mobile API endpoints.
func (c *Client) MobileHeaders() map[string]string {
	return map[string]string{
		"User-Agent":       mobileUserAgent,
		"Accept":           "*/*",
		"Accept-Language":  "en-US,en;q=0.9",
		"X-CSRFToken":      c.cfg.Instagram.CSRFToken,
		"X-IG-App-ID":      igAppID,
		"X-IG-WWW-Claim":   "0",
		"X-Requested-With": "XMLHttpRequest",
		"X-ASBD-ID":        asbdID,
		"Origin":           igOrigin,
		"Referer":          igOrigin + "/",
	}
}

// WebHeaders is the browser-like header set used for HTML page fetches.
func (c *Client) WebHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      desktopUserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// GraphQLHeaders is the header set for the GraphQL search surface.
func (c *Client) GraphQLHeaders() map[string]string {
	return map[string]string{
		"User-Agent":         graphqlUserAgent,
		"Accept":             "*/*",
		"Accept-Language":    "en-US,en;q=0.9",
		"Content-Type":       "application/x-www-form-urlencoded",
		"X-IG-App-ID":        igAppID,
		"X-CSRFToken":        c.cfg.Instagram.CSRFToken,
		"X-FB-Friendly-Name": "PolarisSearchBoxRefetchableQuery",
		"X-Requested-With":   "XMLHttpRequest",
		"Origin":             igOrigin,
		"Referer":            igOrigin + "/",
	}
}

// GetJSON issues a GET and decodes a 200 response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, rawURL, headers, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.WrapKind(apperrors.ErrUpstreamUnavailable, "Unexpected upstream response", err)
	}
	return nil
}

// PostForm issues a form-encoded POST and decodes a 200 response into out.
func (c *Client) PostForm(ctx context.Context, rawURL string, headers map[string]string, form url.Values, out any) error {
	body, err := c.do(ctx, http.MethodPost, rawURL, headers, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.WrapKind(apperrors.ErrUpstreamUnavailable, "Unexpected upstream response", err)
	}
	return nil
}

// GetText issues a GET and returns the raw body, for HTML page scraping.
func (c *Client) GetText(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, rawURL, headers, nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, headers map[string]string, query url.Values, body io.Reader) ([]byte, error) {
	c.jitter()

	var (
		respBody []byte
		status   int
	)

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = io.ReadAll(body)
		if err != nil {
			return nil, apperrors.Wrap(err, "Failed to read request body")
		}
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, method, rawURL, bytesReader(bodyBytes))
		if err != nil {
			return retry.Permanent(apperrors.WrapKind(apperrors.ErrInvalidInput, "Invalid request", err))
		}
		if query != nil {
			req.URL.RawQuery = query.Encode()
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.session().http.Do(req)
		if err != nil {
			// Timeouts and connection failures are retried like 5xx.
			return err
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		status = resp.StatusCode
		if retryableStatus(status) {
			return fmt.Errorf("upstream status %d", status)
		}
		return nil
	}

	err := retry.Do(ctx, c.logger, method+" "+rawURL, op, c.retry)
	if err != nil {
		return nil, c.classifyFailure(status, err)
	}

	return c.classifyStatus(status, respBody)
}

func bytesReader(b []byte) io.Reader {
	if b == nil {
		return nil
	}
	return strings.NewReader(string(b))
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classifyFailure maps a retry-exhausted or permanent failure to a typed error.
func (c *Client) classifyFailure(lastStatus int, err error) error {
	var typed *apperrors.Error
	if apperrors.As(err, &typed) {
		return err
	}
	if lastStatus == http.StatusTooManyRequests {
		return apperrors.WrapKind(apperrors.ErrRateLimited, "Rate limited - please wait before trying again", err)
	}
	return apperrors.WrapKind(apperrors.ErrUpstreamUnavailable, "Upstream request failed", err)
}

// classifyStatus maps a terminal (non-retryable) response to a result or a
// typed error.
func (c *Client) classifyStatus(status int, body []byte) ([]byte, error) {
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case status == http.StatusBadRequest:
		return nil, apperrors.NewKind(apperrors.ErrInvalidInput, upstreamMessage(body, "Bad request"))
	case status == http.StatusUnauthorized:
		return nil, apperrors.NewKind(apperrors.ErrAuthExpired, "Session expired - please update session credentials")
	case status == http.StatusNotFound:
		return nil, apperrors.NewKind(apperrors.ErrNotFound, "Not found")
	default:
		return nil, apperrors.NewKind(apperrors.ErrUpstreamUnavailable, fmt.Sprintf("Request failed with status %d", status))
	}
}

// upstreamMessage pulls the "message" field out of an error payload when
// there is one.
func upstreamMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

// jitter blocks for a random sub-two-second interval before dispatch to
// avoid burst patterns.
func (c *Client) jitter() {
	if !c.cfg.Instagram.RequestJitter {
		return
	}
	delay := 500*time.Millisecond + time.Duration(rand.Int63n(int64(time.Second)))
	time.Sleep(delay)
}
