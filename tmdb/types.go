package tmdb

import (
	"slices"
	"strconv"
)

// MediaType is the media_type value sent with account list updates
type MediaType string

const (
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
)

// Poster sizes used by the CLI. The full list comes from ServiceConfig.
const (
	PosterSizeRow    = "w92"
	PosterSizeDetail = "w780"
)

// Account list status codes returned by TMDB for favorite/watchlist updates
const (
	StatusCodeSuccess = 1
	StatusCodeUpdated = 12
	StatusCodeDeleted = 13
)

// MovieSummary is the minimal representation of a TMDB movie
type MovieSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// HasPoster reports whether the movie has a poster image
func (m MovieSummary) HasPoster() bool {
	return m.PosterPath != ""
}

// Year returns the release year, or 0 when the release date is unknown
func (m MovieSummary) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// ServiceConfig holds the image configuration used to build poster URLs
type ServiceConfig struct {
	ImageBaseURL string
	PosterSizes  []string
}

// HasPosterSize checks if the service offers the given poster size
func (sc ServiceConfig) HasPosterSize(size string) bool {
	return slices.Contains(sc.PosterSizes, size)
}

// Credentials is a snapshot of the session state
type Credentials struct {
	RequestToken string
	SessionID    string
	UserID       int
}

// tokenResponse is returned by /authentication/token/new
type tokenResponse struct {
	Success      *bool   `json:"success"`
	RequestToken *string `json:"request_token"`
	ExpiresAt    string  `json:"expires_at"`
}

// sessionResponse is returned by /authentication/session/new
type sessionResponse struct {
	Success   *bool   `json:"success"`
	SessionID *string `json:"session_id"`
}

// accountResponse is returned by /account
type accountResponse struct {
	ID       *int   `json:"id"`
	Username string `json:"username"`
}

// movieResultsResponse is the envelope of search and account list endpoints
type movieResultsResponse struct {
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Results      *[]MovieSummary `json:"results"`
}

// configurationResponse is returned by /configuration
type configurationResponse struct {
	Images *struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// favoriteRequest is the body of POST /account/{id}/favorite
type favoriteRequest struct {
	MediaType MediaType `json:"media_type"`
	MediaID   int       `json:"media_id"`
	Favorite  bool      `json:"favorite"`
}

// watchlistRequest is the body of POST /account/{id}/watchlist
type watchlistRequest struct {
	MediaType MediaType `json:"media_type"`
	MediaID   int       `json:"media_id"`
	Watchlist bool      `json:"watchlist"`
}

// statusResponse is returned by account list updates
type statusResponse struct {
	StatusCode    *int   `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// deleteSessionRequest is the body of DELETE /authentication/session
type deleteSessionRequest struct {
	SessionID string `json:"session_id"`
}

// deleteSessionResponse is returned by DELETE /authentication/session
type deleteSessionResponse struct {
	Success *bool `json:"success"`
}
