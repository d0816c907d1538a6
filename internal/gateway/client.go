package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/machinebox/graphql"
)

// SessionReader defines the query surface the viewer needs from the uplog
// tools server. It is implemented by *Client and can be stubbed in tests.
type SessionReader interface {
	Sessions(ctx context.Context) ([]SessionViewInfo, error)
	ReadAt(ctx context.Context, name string, start, length int) ([]LogRecord, error)
}

// Ensure Client implements SessionReader at compile time.
var _ SessionReader = (*Client)(nil)

// Options configure a Client. Endpoint is the GraphQL endpoint URL; a bare
// host:port is accepted and normalized to http. Headers are attached to
// every request, opaquely — the viewer has no authentication logic of its
// own.
type Options struct {
	Endpoint string
	Headers  map[string]string
	Timeout  time.Duration
}

// Client talks to the uplog tools server's GraphQL query endpoint.
type Client struct {
	gql     *graphql.Client
	headers map[string]string
}

const (
	defaultEndpoint = "http://127.0.0.1:8000/"
	defaultTimeout  = 5 * time.Second
	userAgent       = "uplogview/0.1"
)

const storagesQuery = `
query {
	storages {
		name
		createdAt
		updatedAt
	}
}`

const readAtQuery = `
query ($name: String!, $start: Int, $length: Int) {
	storageReadAt(name: $name, start: $start, length: $length) {
		id
		record {
			level
			elapsed
			category
			message
			modulePath
			file
			line
			kv {
				json
			}
		}
	}
}`

// NewClient builds a Client from the provided options.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return &Client{
		gql:     graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		headers: headers,
	}, nil
}

// Sessions retrieves every known recording session via the storages() query.
func (c *Client) Sessions(ctx context.Context) ([]SessionViewInfo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req := c.newRequest(storagesQuery)
	var resp struct {
		Storages []SessionViewInfo `json:"storages"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("query storages: %w", err)
	}
	return resp.Storages, nil
}

// ReadAt retrieves up to length records of the named session starting at
// the pagination cursor start. An empty result is not an error; it simply
// means no records exist at or beyond the cursor yet.
func (c *Client) ReadAt(ctx context.Context, name string, start, length int) ([]LogRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("session name required")
	}
	req := c.newRequest(readAtQuery)
	req.Var("name", name)
	req.Var("start", start)
	req.Var("length", length)
	var resp struct {
		Records []LogRecord `json:"storageReadAt"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("query storageReadAt %q: %w", name, err)
	}
	return resp.Records, nil
}

func (c *Client) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	req.Header.Set("User-Agent", userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req
}

func parseEndpoint(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint %q has no host", endpoint)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Fragment = ""
	return u.String(), nil
}
