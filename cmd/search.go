package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/filter"
	"github.com/s0up4200/tmdbctl/tmdb"
)

var (
	posterDir  string
	posterSize string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search TMDB for movies",
	Long: `Search TMDB for movies by title. Results can be narrowed with a filter
expression, for example: tmdbctl search alien -f 'hasPoster() and Year < 1990'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// postersCmd represents the posters command
var postersCmd = &cobra.Command{
	Use:   "posters <query>",
	Short: "Download posters for movies matching a search",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPosters,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, postersCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	}
	postersCmd.Flags().StringVar(&posterDir, "dir", "", "directory to save posters in (default from config)")
	postersCmd.Flags().StringVar(&posterSize, "size", "", "poster size, e.g. w92 or w780 (default from config)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(postersCmd)
}

// searchFiltered runs a search and applies the selected filter expression
func searchFiltered(ctx context.Context, query string) ([]tmdb.MovieSummary, error) {
	expr, err := getFilterExpression()
	if err != nil {
		return nil, err
	}

	movies, err := tmdbClient.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	if expr == "" {
		return movies, nil
	}

	logger.Debug().Str("filter", expr).Int("results", len(movies)).Msg("Applying filter")

	f, err := filter.ParseAndCreateFilter(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return filter.Apply(f, movies), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	logger.Info().Str("query", query).Msg("Searching movies")

	movies, err := searchFiltered(cmd.Context(), query)
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatMovieList(fmt.Sprintf("Results for %q", query), movies, formatOptions()))
	return nil
}

func runPosters(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	dir := cfg.Posters.Dir
	if posterDir != "" {
		dir = posterDir
	}
	size := cfg.Posters.Size
	if posterSize != "" {
		size = posterSize
	}

	movies, err := searchFiltered(ctx, query)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Println("No movies found matching the query.")
		return nil
	}

	serviceCfg, err := tmdbClient.FetchConfig(ctx)
	if err != nil {
		return err
	}
	if !serviceCfg.HasPosterSize(size) {
		return fmt.Errorf("%w: %q (available: %s)", tmdb.ErrInvalidPosterSize, size, strings.Join(serviceCfg.PosterSizes, ", "))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create poster directory: %w", err)
	}

	result, err := tmdbClient.FetchPosters(ctx, movies, size, cfg.Posters.Concurrency)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(result.Fetched))
	for _, poster := range result.Fetched {
		file := filepath.Join(dir, posterFileName(poster))
		if err := os.WriteFile(file, poster.Data, 0o644); err != nil {
			return fmt.Errorf("failed to save poster for %s: %w", poster.Movie.Title, err)
		}
		paths = append(paths, file)
	}

	fmt.Print(formatter.FormatPosterResults(result, paths, formatOptions().Color))
	return nil
}

// posterFileName names a poster file after the movie id and size, keeping
// the image extension from the poster path
func posterFileName(poster tmdb.Poster) string {
	ext := path.Ext(poster.Movie.PosterPath)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d-%s%s", poster.Movie.ID, poster.Size, ext)
}
