package tmdb

import (
	"context"
)

// API defines the interface for TMDB operations
type API interface {
	AccountAPI

	// TestConnection verifies the client can reach TMDB with its API key
	TestConnection(ctx context.Context) error

	// SearchMovies searches movies by title
	SearchMovies(ctx context.Context, query string) ([]MovieSummary, error)

	// FetchConfig returns the image configuration, fetching it once
	FetchConfig(ctx context.Context) (ServiceConfig, error)
}

// AccountAPI defines the operations that require an authenticated session
type AccountAPI interface {
	FavoriteMovies(ctx context.Context) ([]MovieSummary, error)
	WatchlistMovies(ctx context.Context) ([]MovieSummary, error)
	SetFavorite(ctx context.Context, movieID int, favorite bool) (int, error)
	SetWatchlist(ctx context.Context, movieID int, watchlist bool) (int, error)
}

var _ API = (*Client)(nil)
