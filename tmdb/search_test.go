package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMovies(t *testing.T) {
	t.Run("decodes every result", func(t *testing.T) {
		const n = 7

		results := make([]map[string]any, 0, n)
		for i := 1; i <= n; i++ {
			poster := ""
			if i%2 == 0 {
				poster = fmt.Sprintf("/poster-%d.jpg", i)
			}
			results = append(results, movieJSON(i*100, fmt.Sprintf("Batman %d", i), poster))
		}

		fake, server := newFakeTMDB(t)
		fake.handle(http.MethodGet, "/search/movie", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "batman", r.URL.Query().Get("query"))
			assert.Empty(t, r.URL.Query().Get("session_id"))
			respond(w, http.StatusOK, map[string]any{"page": 1, "total_pages": 1, "results": results})
		})

		client := newTestClient(t, server.URL)
		movies, err := client.SearchMovies(context.Background(), "batman")
		require.NoError(t, err)
		require.Len(t, movies, n)

		for i, movie := range movies {
			assert.Equal(t, results[i]["id"], movie.ID)
			assert.Equal(t, results[i]["title"], movie.Title)
			if poster, ok := results[i]["poster_path"].(string); ok {
				assert.Equal(t, poster, movie.PosterPath)
				assert.True(t, movie.HasPoster())
			} else {
				assert.Empty(t, movie.PosterPath)
				assert.False(t, movie.HasPoster())
			}
		}
	})

	t.Run("empty results", func(t *testing.T) {
		fake, server := newFakeTMDB(t)
		fake.reply(http.MethodGet, "/search/movie", http.StatusOK, `{"page":1,"results":[]}`)

		client := newTestClient(t, server.URL)
		movies, err := client.SearchMovies(context.Background(), "zzzz")
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("missing results", func(t *testing.T) {
		fake, server := newFakeTMDB(t)
		fake.reply(http.MethodGet, "/search/movie", http.StatusOK, `{"page":1}`)

		client := newTestClient(t, server.URL)
		_, err := client.SearchMovies(context.Background(), "batman")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("results with wrong shape", func(t *testing.T) {
		fake, server := newFakeTMDB(t)
		fake.reply(http.MethodGet, "/search/movie", http.StatusOK, `{"results":{"id":1}}`)

		client := newTestClient(t, server.URL)
		_, err := client.SearchMovies(context.Background(), "batman")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("empty query", func(t *testing.T) {
		fake, server := newFakeTMDB(t)
		client := newTestClient(t, server.URL)

		_, err := client.SearchMovies(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, 0, fake.count(http.MethodGet, "/search/movie"))
	})
}

func TestMovieSummaryYear(t *testing.T) {
	tests := []struct {
		releaseDate string
		expected    int
	}{
		{"2008-07-16", 2008},
		{"1999", 1999},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.releaseDate, func(t *testing.T) {
			assert.Equal(t, tt.expected, MovieSummary{ReleaseDate: tt.releaseDate}.Year())
		})
	}
}
