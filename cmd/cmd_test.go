package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tmdbctl/config"
	"github.com/s0up4200/tmdbctl/tmdb"
)

type fakeAccountAPI struct {
	favorites    []tmdb.MovieSummary
	watchlist    []tmdb.MovieSummary
	favoritesErr error
	watchlistErr error
}

func (f *fakeAccountAPI) FavoriteMovies(ctx context.Context) ([]tmdb.MovieSummary, error) {
	return f.favorites, f.favoritesErr
}

func (f *fakeAccountAPI) WatchlistMovies(ctx context.Context) ([]tmdb.MovieSummary, error) {
	return f.watchlist, f.watchlistErr
}

func (f *fakeAccountAPI) SetFavorite(ctx context.Context, movieID int, favorite bool) (int, error) {
	return tmdb.StatusCodeSuccess, nil
}

func (f *fakeAccountAPI) SetWatchlist(ctx context.Context, movieID int, watchlist bool) (int, error) {
	return tmdb.StatusCodeSuccess, nil
}

func TestFetchLists(t *testing.T) {
	api := &fakeAccountAPI{
		favorites: []tmdb.MovieSummary{{ID: 1, Title: "Alien"}},
		watchlist: []tmdb.MovieSummary{{ID: 2, Title: "Arrival"}, {ID: 3, Title: "Dune"}},
	}

	favorites, watchlist, err := fetchLists(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, api.favorites, favorites)
	assert.Equal(t, api.watchlist, watchlist)
}

func TestFetchListsError(t *testing.T) {
	api := &fakeAccountAPI{watchlistErr: tmdb.ErrNotAuthenticated}

	favorites, watchlist, err := fetchLists(context.Background(), api)
	require.Error(t, err)
	assert.ErrorIs(t, err, tmdb.ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "watchlist")
	assert.Nil(t, favorites)
	assert.Nil(t, watchlist)
}

func TestParseMovieID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "550", want: 550},
		{arg: " 11 ", want: 11},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseMovieID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPosterFileName(t *testing.T) {
	assert.Equal(t, "11-w780.jpg", posterFileName(tmdb.Poster{
		Movie: tmdb.MovieSummary{ID: 11, PosterPath: "/abc.jpg"},
		Size:  "w780",
	}))
	assert.Equal(t, "12-w92.png", posterFileName(tmdb.Poster{
		Movie: tmdb.MovieSummary{ID: 12, PosterPath: "/abc.png"},
		Size:  "w92",
	}))
	assert.Equal(t, "13-w92.jpg", posterFileName(tmdb.Poster{
		Movie: tmdb.MovieSummary{ID: 13, PosterPath: "/noext"},
		Size:  "w92",
	}))
}

func TestGetFilterExpression(t *testing.T) {
	origCfg, origFilter, origPreset := cfg, filterExpr, preset
	t.Cleanup(func() { cfg, filterExpr, preset = origCfg, origFilter, origPreset })

	cfg = &config.Config{
		Filter: config.FilterConfig{
			DefaultExpression: "hasPoster()",
			Presets: map[string]config.PresetFilter{
				"classics": {Expression: "Year < 1980"},
			},
		},
	}

	tests := []struct {
		name    string
		flag    string
		preset  string
		want    string
		wantErr bool
	}{
		{name: "flag wins", flag: "ID == 1", preset: "classics", want: "ID == 1"},
		{name: "preset", preset: "classics", want: "Year < 1980"},
		{name: "unknown preset", preset: "missing", wantErr: true},
		{name: "default", want: "hasPoster()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filterExpr, preset = tt.flag, tt.preset
			got, err := getFilterExpression()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthFailure(t *testing.T) {
	assert.NoError(t, authFailure(nil))

	err := authFailure(&tmdb.AuthError{Step: tmdb.StepSession, Err: errors.New("boom")})
	assert.EqualError(t, err, "Login Failed (Session ID)")

	plain := errors.New("plain")
	assert.Equal(t, plain, authFailure(plain))
}
