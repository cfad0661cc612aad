package repodata

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultMaxRedirects matches net/http's own limit.
const DefaultMaxRedirects = 10

// errTooManyRedirects stops a redirect loop.
var errTooManyRedirects = errors.New("too many redirects")

// RedirectPolicy strips credentials from redirects that leave the origin host.
// The host comparison includes the port, so a move to another port on the
// same machine is treated as a different host. Once any hop has left the
// origin, every later hop is stripped too, even if it comes back.
type RedirectPolicy struct {
	// MaxRedirects caps the redirect chain; zero means DefaultMaxRedirects.
	MaxRedirects int
	// SensitiveHeaders are removed on cross-host hops; nil means Authorization only.
	SensitiveHeaders []string
}

// CheckRedirect implements http.Client.CheckRedirect.
// via holds the requests already made, oldest first.
func (p *RedirectPolicy) CheckRedirect(req *http.Request, via []*http.Request) error {
	limit := p.MaxRedirects
	if limit <= 0 {
		limit = DefaultMaxRedirects
	}

	if len(via) >= limit {
		return fmt.Errorf("stopped after %d redirects: %w", len(via), errTooManyRedirects)
	}

	if len(via) == 0 {
		return nil
	}

	if !leftOrigin(req, via) {
		return nil
	}

	headers := p.SensitiveHeaders
	if headers == nil {
		headers = []string{"Authorization"}
	}

	for _, header := range headers {
		req.Header.Del(header)
	}

	return nil
}

// leftOrigin reports whether req or any earlier hop points away from the
// host of the first request. net/http copies headers from the first request
// on every hop, so comparing with the previous hop alone is not enough.
func leftOrigin(req *http.Request, via []*http.Request) bool {
	origin := via[0].URL.Host
	if req.URL.Host != origin {
		return true
	}

	for _, hop := range via[1:] {
		if hop.URL.Host != origin {
			return true
		}
	}

	return false
}
