package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darmiel/voxauth/internal/buildinfo"
)

const (
	TokenRoute        = "/v1/token"
	ResolveTokenRoute = "/v1/token/resolve"
	AboutRoute        = "/v1/about"
	HealthRoute       = "/healthz"

	ListActiveTokensRoute = "/v1/admin/tokens"
	ListAuditsRoute       = "/v1/admin/audits"
)

// DefaultEndpoint is the issuing endpoint used when none is configured.
const DefaultEndpoint = "http://127.0.0.1:8000" + TokenRoute

const DefaultTimeout = 10 * time.Second

// Client talks to a token issuing endpoint, and to the voxauth broker API when the endpoint is one.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
	authToken  string
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// The client is never modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of each request, regardless of the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAuthToken sets the bearer token sent to the admin routes.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// New creates a client for endpoint.
//
// endpoint is either the full URL of the issuing endpoint (e.g. "http://127.0.0.1:8000/v1/token")
// or the base URL of a voxauth server, in which case tokens are requested from TokenRoute.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http(s) URL", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}

	c := &Client{
		endpoint:   u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "voxauth-client/" + buildinfo.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// tokenURL is the endpoint as given, or TokenRoute on its host if no path was given.
func (c *Client) tokenURL() string {
	if strings.Trim(c.endpoint.Path, "/") != "" {
		return c.endpoint.String()
	}
	return c.url().setPath(TokenRoute).build()
}

func (c *Client) url() *urlBuilder {
	return &urlBuilder{
		base: url.URL{
			Scheme: c.endpoint.Scheme,
			Host:   c.endpoint.Host,
			User:   c.endpoint.User,
		},
		query: url.Values{},
	}
}

type urlBuilder struct {
	base  url.URL
	query url.Values
}

func (b *urlBuilder) setPath(path string) *urlBuilder {
	b.base.Path = path
	return b
}

func (b *urlBuilder) addQueryParam(key string, value any) *urlBuilder {
	b.query.Add(key, fmt.Sprint(value))
	return b
}

func (b *urlBuilder) build() string {
	u := b.base
	u.RawQuery = b.query.Encode()
	return u.String()
}

// Authenticated returns a copy of the client that sends token to the admin routes.
func (c *Client) Authenticated(token string) *Client {
	cpy := *c
	cpy.authToken = token
	return &cpy
}
