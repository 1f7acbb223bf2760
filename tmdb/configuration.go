package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// FetchConfig returns the cached image configuration, fetching it on first use
func (c *Client) FetchConfig(ctx context.Context) (ServiceConfig, error) {
	if cfg, ok := c.Config(); ok {
		return cfg, nil
	}
	return c.RefreshConfig(ctx)
}

// RefreshConfig retrieves the image configuration and replaces the cached copy
func (c *Client) RefreshConfig(ctx context.Context) (ServiceConfig, error) {
	var resp configurationResponse
	if err := c.getJSON(ctx, "/configuration", nil, &resp); err != nil {
		return ServiceConfig{}, fmt.Errorf("failed to get configuration: %w", err)
	}

	if resp.Images == nil {
		return ServiceConfig{}, fmt.Errorf("%w: missing key 'images'", ErrDecode)
	}

	baseURL := resp.Images.SecureBaseURL
	if baseURL == "" {
		baseURL = resp.Images.BaseURL
	}
	if baseURL == "" {
		return ServiceConfig{}, fmt.Errorf("%w: missing key 'secure_base_url'", ErrDecode)
	}
	if resp.Images.PosterSizes == nil {
		return ServiceConfig{}, fmt.Errorf("%w: missing key 'poster_sizes'", ErrDecode)
	}

	cfg := ServiceConfig{
		ImageBaseURL: baseURL,
		PosterSizes:  slices.Clone(resp.Images.PosterSizes),
	}

	cached := cfg
	cached.PosterSizes = slices.Clone(cfg.PosterSizes)

	c.configMu.Lock()
	c.config = &cached
	c.configMu.Unlock()

	c.logger.Debug().
		Str("image_base_url", cfg.ImageBaseURL).
		Strs("poster_sizes", cfg.PosterSizes).
		Msg("Loaded TMDB configuration")
	return cfg, nil
}

// Config returns the cached service configuration, if any
func (c *Client) Config() (ServiceConfig, bool) {
	c.configMu.RLock()
	defer c.configMu.RUnlock()
	if c.config == nil {
		return ServiceConfig{}, false
	}
	cfg := *c.config
	cfg.PosterSizes = slices.Clone(cfg.PosterSizes)
	return cfg, true
}

// PosterURL builds the image URL for a poster path at the given size
func (c *Client) PosterURL(size, posterPath string) (string, error) {
	cfg, ok := c.Config()
	if !ok {
		return "", ErrNoConfig
	}
	if posterPath == "" {
		return "", ErrNoPoster
	}
	if !cfg.HasPosterSize(size) {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrInvalidPosterSize, size, strings.Join(cfg.PosterSizes, ", "))
	}

	return strings.TrimRight(cfg.ImageBaseURL, "/") + "/" + size + "/" + strings.TrimLeft(posterPath, "/"), nil
}

// FetchPoster downloads a poster image
func (c *Client) FetchPoster(ctx context.Context, size, posterPath string) ([]byte, error) {
	imageURL, err := c.PosterURL(size, posterPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create poster request: %w", stripURL(err))
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: poster %s: %w", ErrTransport, posterPath, stripURL(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read poster: %w", ErrTransport, stripURL(err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}
