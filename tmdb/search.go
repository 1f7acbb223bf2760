package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchMovies searches movies by title. Only the first page of results is returned.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	movies, err := c.getMovieResults(ctx, "/search/movie", url.Values{"query": {query}})
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(movies)).
		Msg("Searched movies on TMDB")
	return movies, nil
}
