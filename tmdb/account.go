package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FavoriteMovies retrieves the favorite movies of the authenticated account
func (c *Client) FavoriteMovies(ctx context.Context) ([]MovieSummary, error) {
	movies, err := c.accountMovies(ctx, "favorite")
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite movies: %w", err)
	}
	return movies, nil
}

// WatchlistMovies retrieves the watchlist of the authenticated account
func (c *Client) WatchlistMovies(ctx context.Context) ([]MovieSummary, error) {
	movies, err := c.accountMovies(ctx, "watchlist")
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist movies: %w", err)
	}
	return movies, nil
}

// SetFavorite marks or unmarks a movie as favorite and returns the TMDB status code
func (c *Client) SetFavorite(ctx context.Context, movieID int, favorite bool) (int, error) {
	body := favoriteRequest{
		MediaType: MediaTypeMovie,
		MediaID:   movieID,
		Favorite:  favorite,
	}

	code, err := c.postAccountList(ctx, "favorite", body)
	if err != nil {
		return 0, fmt.Errorf("failed to update favorite for movie %d: %w", movieID, err)
	}

	c.logger.Info().
		Int("movie_id", movieID).
		Bool("favorite", favorite).
		Int("status_code", code).
		Msg("Updated favorites")
	return code, nil
}

// SetWatchlist adds or removes a movie from the watchlist and returns the TMDB status code
func (c *Client) SetWatchlist(ctx context.Context, movieID int, watchlist bool) (int, error) {
	body := watchlistRequest{
		MediaType: MediaTypeMovie,
		MediaID:   movieID,
		Watchlist: watchlist,
	}

	code, err := c.postAccountList(ctx, "watchlist", body)
	if err != nil {
		return 0, fmt.Errorf("failed to update watchlist for movie %d: %w", movieID, err)
	}

	c.logger.Info().
		Int("movie_id", movieID).
		Bool("watchlist", watchlist).
		Int("status_code", code).
		Msg("Updated watchlist")
	return code, nil
}

func (c *Client) accountMovies(ctx context.Context, list string) ([]MovieSummary, error) {
	sessionID, userID, err := c.session.account()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/account/%d/%s/movies", userID, list)
	movies, err := c.getMovieResults(ctx, endpoint, url.Values{"session_id": {sessionID}})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("list", list).
		Int("count", len(movies)).
		Msg("Retrieved account movies from TMDB")
	return movies, nil
}

func (c *Client) postAccountList(ctx context.Context, list string, body any) (int, error) {
	sessionID, userID, err := c.session.account()
	if err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("/account/%d/%s", userID, list)

	var resp statusResponse
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, url.Values{"session_id": {sessionID}}, body, &resp); err != nil {
		return 0, err
	}
	if resp.StatusCode == nil {
		return 0, fmt.Errorf("%w: missing key 'status_code'", ErrDecode)
	}
	return *resp.StatusCode, nil
}

// getMovieResults fetches an endpoint returning a "results" array of movies
func (c *Client) getMovieResults(ctx context.Context, endpoint string, params url.Values) ([]MovieSummary, error) {
	var resp movieResultsResponse
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: missing key 'results'", ErrDecode)
	}
	return *resp.Results, nil
}
