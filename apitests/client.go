package apitests

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"
)

const clientTimeout = time.Second * 30

// Client makes requests to the site under test. Every request carries the site's User-Agent.
// There are no retries: a transport error is returned to the caller as is.
type Client struct {
	site   target.Site
	http   *http.Client
	logger framework.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Latency is the time from sending the request until the whole body was read.
	Latency time.Duration
}

func NewClient(site target.Site, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		site:   site,
		http:   &http.Client{Timeout: clientTimeout},
		logger: logger,
	}
}

// Get requests a path relative to the site's base URL.
func (c *Client) Get(path string) (*Response, error) {
	url := c.site.URL(path)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.site.UserAgent)

	c.logger.Printf("GET %s", url)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s: %w", url, err)
	}
	r := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Latency:    time.Since(start),
	}
	c.logger.Printf("Status %d, %d bytes in %s, headers: %v", r.StatusCode, len(body), r.Latency, r.headerNames())
	return r, nil
}

// Close releases any idle connections held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Content returns the body as a string.
func (r *Response) Content() string {
	return string(r.Body)
}

// HasHeader returns true if the response has the header, regardless of case or value.
func (r *Response) HasHeader(name string) bool {
	return len(r.Header.Values(name)) > 0
}

func (r *Response) headerNames() []string {
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
