package strava

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/okian/pacetrend/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.oauth.Endpoint.TokenURL = u
		}
	}
}

// WithPerPage sets the page size requested from the API.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithMaxPages stops paging after n pages; n <= 0 pages until an empty page.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		c.maxPages = n
	}
}

// WithHTTPClient sets the transport used for API and token calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTokenSaver replaces how refreshed tokens are persisted.
func WithTokenSaver(save func(path string, tok *oauth2.Token) error) Option {
	return func(c *Client) {
		if save != nil {
			c.saveToken = save
		}
	}
}
