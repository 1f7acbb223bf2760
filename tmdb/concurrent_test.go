package tmdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPosters(t *testing.T) {
	fake, server := newFakeTMDB(t)
	fake.reply(http.MethodGet, "/configuration", http.StatusOK, configurationBody(server.URL+"/t/p/"))
	for _, name := range []string{"a", "b", "c"} {
		fake.handle(http.MethodGet, "/t/p/w185/"+name+".jpg", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("poster-" + name))
		})
	}

	client := newTestClient(t, server.URL)
	_, err := client.FetchConfig(context.Background())
	require.NoError(t, err)

	movies := []MovieSummary{
		{ID: 1, Title: "A", PosterPath: "/a.jpg"},
		{ID: 2, Title: "No Poster"},
		{ID: 3, Title: "B", PosterPath: "/b.jpg"},
		{ID: 4, Title: "Broken", PosterPath: "/broken.jpg"},
		{ID: 5, Title: "C", PosterPath: "/c.jpg"},
	}

	result, err := client.FetchPosters(context.Background(), movies, "w185", 2)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)

	require.Len(t, result.Fetched, 3)
	assert.Equal(t, 1, result.Fetched[0].Movie.ID)
	assert.Equal(t, []byte("poster-a"), result.Fetched[0].Data)
	assert.Equal(t, 3, result.Fetched[1].Movie.ID)
	assert.Equal(t, []byte("poster-b"), result.Fetched[1].Data)
	assert.Equal(t, 5, result.Fetched[2].Movie.ID)
	assert.Equal(t, "w185", result.Fetched[2].Size)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 2, result.Skipped[0].ID)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, 4, result.Failed[0].Movie.ID)
	assert.Contains(t, result.Failed[0].Error(), "Broken (ID: 4)")
}

func TestFetchPostersWithoutConfig(t *testing.T) {
	client := newTestClient(t, "http://localhost")

	result, err := client.FetchPosters(context.Background(), []MovieSummary{{ID: 1, PosterPath: "/a.jpg"}}, "w185", 0)
	assert.ErrorIs(t, err, ErrNoConfig)
	assert.Equal(t, 1, result.Requested)

	result, err = client.FetchPosters(context.Background(), nil, "w185", 0)
	require.NoError(t, err)
	assert.Zero(t, result.Requested)
}
