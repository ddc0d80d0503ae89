package picsum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/slide/internal/domain"
)

const (
	userAgent   = "Slide/1.0"
	maxBodySize = 16 << 20
)

// Client implements domain.ImageRepository for picsum-style listing endpoints:
// GET {base}?page=N&limit=M returning a JSON array of images.
type Client struct {
	baseURL     string
	legacyLimit bool
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new listing client. A zero timeout disables the client timeout.
func NewClient(baseURL string, legacyLimit bool, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     baseURL,
		legacyLimit: legacyLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BuildRequestURL forms the listing URL.
//
// In legacy mode the query is concatenated literally as
// "{base}?page={page}&limit=1{limit}", so a limit of "10" is sent as "110".
// Servers already relying on that value see the same request. Otherwise the
// values are query-escaped and the limit is sent as given.
func BuildRequestURL(base, page, limit string, legacy bool) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base URL is required")
	}
	if legacy {
		return base + "?page=" + page + "&limit=1" + limit, nil
	}
	return base + "?page=" + url.QueryEscape(page) + "&limit=" + url.QueryEscape(limit), nil
}

// EffectiveLimit returns the limit value the server will receive
func EffectiveLimit(limit string, legacy bool) string {
	if legacy {
		return "1" + limit
	}
	return limit
}

// RequestURL returns the exact URL ListImages requests for q
func (c *Client) RequestURL(q domain.Query) (string, error) {
	return BuildRequestURL(c.baseURL, q.Page, q.Limit, c.legacyLimit)
}

// ListImages issues one GET for q and decodes the listing
func (c *Client) ListImages(ctx context.Context, q domain.Query) ([]domain.Image, error) {
	reqURL, err := c.RequestURL(q)
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	images, err := DecodeImages(body)
	if err != nil {
		c.logger.Error("listing decode error", "error", err, "bodyLen", len(body))
		return nil, err
	}

	c.logger.Debug("listing decoded", "url", reqURL, "count", len(images))
	return images, nil
}

// doRequest performs the GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("listing request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		c.logger.Error("listing request failed", "error", err)
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrFetchFailed, domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("listing request error", "status", resp.StatusCode, "body", string(body))
		return nil, &domain.StatusError{Code: resp.StatusCode}
	}

	return body, nil
}
