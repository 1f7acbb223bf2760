package tmdb

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultPosterConcurrency limits concurrent poster downloads
const DefaultPosterConcurrency = 4

// Poster is a downloaded poster image
type Poster struct {
	Movie MovieSummary
	Size  string
	Data  []byte
}

// PosterError contains information about a failed poster download
type PosterError struct {
	Movie MovieSummary
	Err   error
}

// Error implements the error interface
func (e PosterError) Error() string {
	return fmt.Sprintf("failed to fetch poster for %s (ID: %d): %v", e.Movie.Title, e.Movie.ID, e.Err)
}

// PosterBatchResult contains the results of a batch poster download, in input order
type PosterBatchResult struct {
	Requested int
	Fetched   []Poster
	Skipped   []MovieSummary
	Failed    []PosterError
}

// FetchPosters downloads posters for several movies with bounded concurrency.
// Movies without a poster are skipped; individual failures do not stop the batch.
func (c *Client) FetchPosters(ctx context.Context, movies []MovieSummary, size string, limit int) (PosterBatchResult, error) {
	result := PosterBatchResult{Requested: len(movies)}
	if len(movies) == 0 {
		return result, nil
	}

	// Fail early instead of reporting the same error once per movie
	if _, ok := c.Config(); !ok {
		return result, ErrNoConfig
	}

	if limit <= 0 {
		limit = DefaultPosterConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	// Each goroutine owns one slot
	posters := make([]*Poster, len(movies))
	failures := make([]error, len(movies))

	for i, movie := range movies {
		if !movie.HasPoster() {
			continue
		}

		g.Go(func() error {
			data, err := c.FetchPoster(ctx, size, movie.PosterPath)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Int("movie_id", movie.ID).
					Str("movie", movie.Title).
					Msg("Failed to fetch poster")
				failures[i] = err
				return nil
			}
			posters[i] = &Poster{Movie: movie, Size: size, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	for i, movie := range movies {
		switch {
		case !movie.HasPoster():
			result.Skipped = append(result.Skipped, movie)
		case failures[i] != nil:
			result.Failed = append(result.Failed, PosterError{Movie: movie, Err: failures[i]})
		case posters[i] != nil:
			result.Fetched = append(result.Fetched, *posters[i])
		}
	}

	c.logger.Debug().
		Int("requested", result.Requested).
		Int("fetched", len(result.Fetched)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Msg("Fetched posters")
	return result, nil
}
