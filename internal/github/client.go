// Package github reads RFD documents and their images from a GitHub
// repository through the REST contents and blobs APIs.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/httputil"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

const defaultHTTPTimeout = 30 * time.Second

// ErrNotFound matches API errors with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (%d): %s", e.StatusCode, e.Body)
}

// Is reports 404 responses as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is a GitHub REST client limited to repository content.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	attempts   int
	delay      time.Duration
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as GitHub
// Enterprise or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRetry sets the attempt count and initial backoff for transient failures.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client. An empty token makes anonymous requests,
// which only work for public repositories.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:    DefaultBaseURL,
		attempts:   httputil.DefaultAttempts,
		delay:      httputil.DefaultDelay,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Entry is an item of a directory listing.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}

type blobResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// ListContents lists a repository directory at ref. An empty ref reads the
// default branch.
func (c *Client) ListContents(ctx context.Context, owner, repo, path, ref string) ([]Entry, error) {
	var entries []Entry
	if err := c.getJSON(ctx, c.contentsURL(owner, repo, path, ref), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Blob returns the base64 content of a git blob.
func (c *Client) Blob(ctx context.Context, owner, repo, sha string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/blobs/%s", c.baseURL,
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(sha))

	var blob blobResponse
	if err := c.getJSON(ctx, u, &blob); err != nil {
		return "", err
	}
	if blob.Encoding != "base64" {
		return "", fmt.Errorf("blob %s: unexpected encoding %q", sha, blob.Encoding)
	}
	return blob.Content, nil
}

// FileRaw returns the raw bytes of a file at ref.
func (c *Client) FileRaw(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	var body []byte
	err := c.do(ctx, c.contentsURL(owner, repo, path, ref), "application/vnd.github.raw", func(r io.Reader) error {
		var err error
		body, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) contentsURL(owner, repo, path, ref string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL,
		url.PathEscape(owner), url.PathEscape(repo), strings.Join(segments, "/"))
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	return c.do(ctx, u, "application/vnd.github.v3+json", func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// do performs a GET with retries on network errors, 5xx and rate limiting.
func (c *Client) do(ctx context.Context, u, accept string, read func(io.Reader) error) error {
	attempt := 0
	return httputil.Retry(ctx, c.attempts, c.delay, func() error {
		attempt++
		if attempt > 1 {
			c.logger.Debug("Retrying GitHub request", "url", u, "attempt", attempt)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		c.setHeaders(req, accept)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: fmt.Errorf("send request: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if isTransient(resp) {
				return &httputil.RetryableError{Err: apiErr}
			}
			return apiErr
		}

		return read(resp.Body)
	})
}

// isTransient reports server errors and rate limiting.
func isTransient(resp *http.Response) bool {
	switch {
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return true
	case resp.StatusCode == http.StatusForbidden:
		return resp.Header.Get("X-RateLimit-Remaining") == "0"
	default:
		return false
	}
}

// setHeaders sets common headers for GitHub API requests.
func (c *Client) setHeaders(req *http.Request, accept string) {
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
