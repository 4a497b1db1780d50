// internal/app/system/fetch/fetch.go

// Package fetch retrieves remote HTML documents on behalf of the viewer.
// Requests carry browser-like headers because many sites refuse obvious
// bot traffic, bodies are size-capped and decoded to UTF-8 from the
// response's declared or detected charset, and transient failures are
// retried. The sanitizer requires complete document text, so responses are
// read fully rather than streamed.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Browser-like request headers. Sites (Google in particular) serve reduced
// or refusal pages to unknown user agents.
const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/131.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;" +
		"q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"
	refererHeader        = "https://www.google.com/"
)

// Config controls fetch behavior. Zero values fall back to the defaults
// noted per field.
type Config struct {
	Timeout      time.Duration // per-request timeout (default 10s)
	UserAgent    string        // User-Agent header (default: browser-like)
	MaxBodyBytes int64         // response body cap (default 5 MiB)
	Attempts     uint          // total attempts including the first (default 3)
}

// Result is a fully retrieved, charset-decoded HTML document.
type Result struct {
	Body       string // document text, decoded to UTF-8
	StatusCode int
	FinalURL   string // URL after redirects
}

// StatusError reports a non-success HTTP status from the remote server.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Client fetches URLs with retry. It is safe for concurrent use.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a fetch Client, applying defaults for zero Config
// fields.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 5 << 20
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch GETs rawURL and returns the decoded document text. Server errors
// (5xx) and transport failures are retried; client errors (4xx) are not,
// since repeating the request cannot change the outcome.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Result, error) {
	var result Result

	err := retry.Do(
		func() error {
			res, err := c.fetchOnce(ctx, rawURL)
			if err != nil {
				return err
			}
			result = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.Attempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code >= 500
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("fetch retrying",
				zap.String("url", rawURL),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)
	req.Header.Set("Referer", refererHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return Result{}, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	// Decode to UTF-8 from the declared or sniffed charset. The sanitizer
	// operates on text and has no notion of byte encodings.
	limited := io.LimitReader(resp.Body, c.cfg.MaxBodyBytes)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return Result{}, fmt.Errorf("decode charset for %s: %w", rawURL, err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return Result{}, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	return Result{
		Body:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// IsGoogleHost reports whether host looks like a Google search property,
// which gets the fallback-search treatment on fetch failure.
func IsGoogleHost(host string) bool {
	return strings.Contains(strings.ToLower(host), "google.")
}

// FallbackSearchURL builds a minimal Google search URL from a failed
// search-page URL: the q query parameter if present, otherwise the path,
// otherwise the fragment, searched with num=1.
func FallbackSearchURL(originalURL string) (string, error) {
	parsed, err := url.Parse(originalURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", originalURL, err)
	}

	query := parsed.Query().Get("q")
	if query == "" {
		query = strings.Trim(parsed.Path, "/ ")
	}
	if query == "" {
		query = strings.TrimSpace(parsed.Fragment)
	}

	if query == "" {
		return "https://www.google.com/search?num=1", nil
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(query) + "&num=1", nil
}
