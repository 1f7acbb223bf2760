package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/tmdbctl/tmdb"
)

// accountList describes one of the account movie lists
type accountList struct {
	name    string
	heading string
	fetch   func(tmdb.AccountAPI, context.Context) ([]tmdb.MovieSummary, error)
	set     func(tmdb.AccountAPI, context.Context, int, bool) (int, error)
}

var (
	favoritesList = accountList{
		name:    "favorites",
		heading: "Favorites",
		fetch:   tmdb.AccountAPI.FavoriteMovies,
		set:     tmdb.AccountAPI.SetFavorite,
	}
	watchlistList = accountList{
		name:    "watchlist",
		heading: "Watchlist",
		fetch:   tmdb.AccountAPI.WatchlistMovies,
		set:     tmdb.AccountAPI.SetWatchlist,
	}
)

// listsCmd represents the lists command
var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show favorites and watchlist",
	RunE:  runLists,
}

func init() {
	rootCmd.AddCommand(newAccountListCmd(favoritesList, "Manage your favorite movies"))
	rootCmd.AddCommand(newAccountListCmd(watchlistList, "Manage your movie watchlist"))
	rootCmd.AddCommand(listsCmd)
}

// newAccountListCmd builds the list/add/remove command tree for an account list
func newAccountListCmd(list accountList, short string) *cobra.Command {
	listRun := func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}
		movies, err := list.fetch(tmdbClient, ctx)
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatMovieList(list.heading, movies, formatOptions()))
		return nil
	}

	parent := &cobra.Command{
		Use:   list.name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  listRun,
	}

	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List movies in your %s", list.name),
		Args:  cobra.NoArgs,
		RunE:  listRun,
	})
	parent.AddCommand(&cobra.Command{
		Use:   "add <movie-id>",
		Short: fmt.Sprintf("Add a movie to your %s", list.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetAccountList(cmd.Context(), list, args[0], true)
		},
	})
	parent.AddCommand(&cobra.Command{
		Use:   "remove <movie-id>",
		Short: fmt.Sprintf("Remove a movie from your %s", list.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetAccountList(cmd.Context(), list, args[0], false)
		},
	})

	return parent
}

func runSetAccountList(ctx context.Context, list accountList, arg string, add bool) error {
	movieID, err := parseMovieID(arg)
	if err != nil {
		return err
	}
	if err := ensureSession(ctx); err != nil {
		return err
	}

	statusCode, err := list.set(tmdbClient, ctx, movieID, add)
	if err != nil {
		return err
	}

	action := "Added to"
	if !add {
		action = "Removed from"
	}
	fmt.Printf("✓ %s %s: movie %d (status %d)\n", action, list.name, movieID, statusCode)
	return nil
}

func runLists(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureSession(ctx); err != nil {
		return err
	}

	favorites, watchlist, err := fetchLists(ctx, tmdbClient)
	if err != nil {
		return err
	}

	opts := formatOptions()
	fmt.Print(formatter.FormatMovieList(favoritesList.heading, favorites, opts))
	fmt.Print(formatter.FormatMovieList(watchlistList.heading, watchlist, opts))
	return nil
}

// fetchLists loads favorites and watchlist concurrently
func fetchLists(ctx context.Context, api tmdb.AccountAPI) (favorites, watchlist []tmdb.MovieSummary, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := api.FavoriteMovies(ctx)
		if err != nil {
			return fmt.Errorf("favorites: %w", err)
		}
		favorites = movies
		return nil
	})
	g.Go(func() error {
		movies, err := api.WatchlistMovies(ctx)
		if err != nil {
			return fmt.Errorf("watchlist: %w", err)
		}
		watchlist = movies
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return favorites, watchlist, nil
}
