package tmdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMovies(t *testing.T) {
	lists := []struct {
		name  string
		path  string
		fetch func(*Client, context.Context) ([]MovieSummary, error)
	}{
		{
			name:  "favorites",
			path:  "/account/42/favorite/movies",
			fetch: (*Client).FavoriteMovies,
		},
		{
			name:  "watchlist",
			path:  "/account/42/watchlist/movies",
			fetch: (*Client).WatchlistMovies,
		},
	}

	for _, list := range lists {
		t.Run(list.name, func(t *testing.T) {
			fake, server := newFakeTMDB(t)
			fake.handle(http.MethodGet, list.path, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "session-abc", r.URL.Query().Get("session_id"))
				respond(w, http.StatusOK, map[string]any{
					"page": 1,
					"results": []map[string]any{
						movieJSON(155, "The Dark Knight", "/qJ2tW6WMUDux911r6m7haRef0WH.jpg"),
						movieJSON(272, "Batman Begins", ""),
					},
				})
			})

			client := authenticatedClient(t, server.URL)
			movies, err := list.fetch(client, context.Background())
			require.NoError(t, err)

			assert.Equal(t, []MovieSummary{
				{ID: 155, Title: "The Dark Knight", PosterPath: "/qJ2tW6WMUDux911r6m7haRef0WH.jpg"},
				{ID: 272, Title: "Batman Begins"},
			}, movies)
		})

		t.Run(list.name+" missing results", func(t *testing.T) {
			fake, server := newFakeTMDB(t)
			fake.reply(http.MethodGet, list.path, http.StatusOK, `{"page":1}`)

			client := authenticatedClient(t, server.URL)
			_, err := list.fetch(client, context.Background())
			assert.ErrorIs(t, err, ErrDecode)
		})

		t.Run(list.name+" requires session", func(t *testing.T) {
			fake, server := newFakeTMDB(t)
			client := newTestClient(t, server.URL)

			_, err := list.fetch(client, context.Background())
			assert.ErrorIs(t, err, ErrNotAuthenticated)
			assert.Equal(t, 0, fake.count(http.MethodGet, list.path))
		})
	}
}

func TestSetFavorite(t *testing.T) {
	tests := []struct {
		name     string
		favorite bool
		status   int
		body     string
		wantCode int
		wantErr  error
	}{
		{
			name:     "add",
			favorite: true,
			status:   http.StatusCreated,
			body:     `{"status_code":1,"status_message":"Success."}`,
			wantCode: StatusCodeSuccess,
		},
		{
			name:     "remove",
			favorite: false,
			status:   http.StatusOK,
			body:     `{"status_code":13,"status_message":"The item/record was deleted successfully."}`,
			wantCode: StatusCodeDeleted,
		},
		{
			name:     "missing status code",
			favorite: true,
			status:   http.StatusOK,
			body:     `{"status_message":"Success."}`,
			wantErr:  ErrDecode,
		},
		{
			name:     "status code has wrong type",
			favorite: true,
			status:   http.StatusOK,
			body:     `{"status_code":"1"}`,
			wantErr:  ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, server := newFakeTMDB(t)
			fake.handle(http.MethodPost, "/account/42/favorite", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "session-abc", r.URL.Query().Get("session_id"))
				assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

				var body favoriteRequest
				require.NoError(t, decodeBody(r, &body))
				assert.Equal(t, favoriteRequest{MediaType: MediaTypeMovie, MediaID: 550, Favorite: tt.favorite}, body)

				respond(w, tt.status, tt.body)
			})

			client := authenticatedClient(t, server.URL)
			code, err := client.SetFavorite(context.Background(), 550, tt.favorite)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestSetWatchlist(t *testing.T) {
	fake, server := newFakeTMDB(t)
	fake.handle(http.MethodPost, "/account/42/watchlist", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, decodeBody(r, &body))
		assert.Equal(t, map[string]any{
			"media_type": "movie",
			"media_id":   float64(550),
			"watchlist":  true,
		}, body)
		respond(w, http.StatusCreated, `{"status_code":1,"status_message":"Success."}`)
	})

	client := authenticatedClient(t, server.URL)
	code, err := client.SetWatchlist(context.Background(), 550, true)
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	t.Run("requires session", func(t *testing.T) {
		unauthenticated := newTestClient(t, server.URL)
		_, err := unauthenticated.SetWatchlist(context.Background(), 550, true)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, 1, fake.count(http.MethodPost, "/account/42/watchlist"))
	})

	t.Run("already listed", func(t *testing.T) {
		fake.reply(http.MethodPost, "/account/42/watchlist", http.StatusCreated,
			`{"status_code":12,"status_message":"The item/record was updated successfully."}`)

		code, err := client.SetWatchlist(context.Background(), 550, true)
		require.NoError(t, err)
		assert.Equal(t, StatusCodeUpdated, code)
	})

	t.Run("api error", func(t *testing.T) {
		fake.reply(http.MethodPost, "/account/42/watchlist", http.StatusUnauthorized,
			`{"success":false,"status_code":3,"status_message":"Authentication failed: You do not have permissions to access the service."}`)

		_, err := client.SetWatchlist(context.Background(), 550, false)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 3, apiErr.TMDBCode)
		assert.True(t, apiErr.IsUnauthorized())
	})
}
