package repodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Repository fetches channel metadata.
type Repository interface {
	Fetch(ctx context.Context, channel, subdir string) (*Repodata, error)
}

// Filename is the metadata document name inside a channel subdir.
const Filename = "repodata.json"

var (
	// ErrBadStatus is returned for any non-200 response.
	ErrBadStatus = errors.New("unexpected http status")
	// errBaseURLRequired is returned when no channel host is configured.
	errBaseURLRequired = errors.New("base URL must be provided")
)

// HTTPRepository reads repodata.json over HTTP with bearer authentication.
type HTTPRepository struct {
	baseURL   *url.URL
	token     string
	userAgent string
	client    *http.Client
}

// Option configures an HTTPRepository.
type Option func(*HTTPRepository)

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(r *HTTPRepository) {
		r.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(r *HTTPRepository) {
		r.userAgent = userAgent
	}
}

// WithTimeout bounds the whole request, redirects included.
func WithTimeout(timeout time.Duration) Option {
	return func(r *HTTPRepository) {
		if timeout > 0 {
			r.client.Timeout = timeout
		}
	}
}

// WithTransport replaces the client transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(r *HTTPRepository) {
		r.client.Transport = transport
	}
}

// NewHTTPRepository returns a repository rooted at baseURL.
// The client always carries a RedirectPolicy.
func NewHTTPRepository(baseURL string, opts ...Option) (*HTTPRepository, error) {
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	policy := new(RedirectPolicy)

	repo := &HTTPRepository{
		baseURL: parsed,
		client: &http.Client{
			CheckRedirect: policy.CheckRedirect,
		},
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo, nil
}

// URL returns the repodata location for channel and subdir.
func (r *HTTPRepository) URL(channel, subdir string) string {
	return r.baseURL.JoinPath(channel, subdir, Filename).String()
}

// Fetch downloads and decodes <base>/<channel>/<subdir>/repodata.json.
// It makes a single attempt.
func (r *HTTPRepository) Fetch(ctx context.Context, channel, subdir string) (*Repodata, error) {
	target := r.URL(channel, subdir)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	req.Header.Set("Accept", "application/json")

	response, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, response.Body)

		return nil, fmt.Errorf("%s, %s: %w", target, response.Status, ErrBadStatus)
	}

	var data Repodata
	if err = json.NewDecoder(response.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}

	return &data, nil
}
