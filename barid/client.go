package barid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the address of the public barid.site API
	DefaultBaseURL = "https://api.barid.site"

	defaultUserAgent = "tmail-barid"
)

// Client represents a barid.site API client bound to one inbox address.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	email      string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new client for the given inbox address.
// The address is checked for syntax only; whether its domain is accepted
// is decided by the service (see Domains).
func NewClient(email string, opts ...Option) (*Client, error) {
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		email:      email,
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     o.logger,
	}, nil
}

// ValidEmail reports whether s is a bare RFC 5322 address such as
// "someone@example.com". Display names and angle brackets are rejected.
func ValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// Email returns the inbox address the client was created with
func (c *Client) Email() string {
	return c.email
}

// BaseURL returns the service address requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a single HTTP request and returns the status code and body
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values) (int, []byte, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: requestURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("barid API request")

	return resp.StatusCode, body, nil
}

// inboxPath returns the path for the client's own address under prefix
func (c *Client) inboxPath(prefix, suffix string) string {
	return prefix + url.PathEscape(c.email) + suffix
}

func pageParams(limit, offset int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return params
}
