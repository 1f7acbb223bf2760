package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultAuthorizationURL is where request tokens are approved
	DefaultAuthorizationURL = "https://www.themoviedb.org/authenticate"
	// DefaultTimeout is the HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	authURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	session *Session
	authMu  sync.Mutex

	configMu sync.RWMutex
	config   *ServiceConfig
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: TMDB URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: TMDB API key is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid TMDB URL: %w", ErrInvalidConfig, err)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authURL:    strings.TrimRight(options.authURL, "/"),
		apiKey:     apiKey,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
		session:    &Session{},
	}, nil
}

// Session returns the session context held by the client
func (c *Client) Session() *Session {
	return c.session
}

// AuthorizationURL returns the page where the user approves a request token
func (c *Client) AuthorizationURL(requestToken string) string {
	return c.authURL + "/" + url.PathEscape(requestToken)
}

// doRequest performs an HTTP request with the API key attached
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("api_key", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, endpoint, stripURL(err))
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, stripURL(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: failed to read response body: %w", ErrTransport, method, endpoint, stripURL(err))
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("TMDB API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// stripURL drops the request URL from a *url.Error. The URL carries the
// api_key and session_id query values, which must not reach logs.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// getJSON issues a GET and decodes the response into out
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	return decode(endpoint, body, out)
}

// sendJSON issues a request with a JSON body and decodes the response into out
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, params url.Values, payload, out any) error {
	body, err := c.doRequest(ctx, method, endpoint, params, payload)
	if err != nil {
		return err
	}
	return decode(endpoint, body, out)
}

func decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, endpoint, err)
	}
	return nil
}

// TestConnection tests the connection and API key by fetching the service
// configuration from the network, refreshing the cached copy
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.RefreshConfig(ctx)
	return err
}
