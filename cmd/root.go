package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/config"
	"github.com/s0up4200/tmdbctl/display"
	"github.com/s0up4200/tmdbctl/prompt"
	"github.com/s0up4200/tmdbctl/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	formatter  = display.NewConsoleFormatter()

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	sessionID  string
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tmdbctl",
	Short: "A command line client for The Movie Database",
	Long: `tmdbctl signs in to your TMDB account and lets you search movies,
manage your favorites and watchlist, and download posters.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version reported by the version command
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "TMDB session id to resume instead of logging in")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override session from command line if specified
	if cmd.Flags().Changed("session") {
		cfg.TMDB.SessionID = sessionID
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.URL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithAuthorizationURL(cfg.TMDB.AuthURL),
		tmdb.WithUserAgent("tmdbctl/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// ensureSession resumes the configured session or runs the interactive login
func ensureSession(ctx context.Context) error {
	if tmdbClient.Session().IsAuthenticated() {
		return nil
	}

	var err error
	if cfg.TMDB.SessionID != "" {
		err = tmdbClient.ResumeSession(ctx, cfg.TMDB.SessionID)
	} else {
		err = tmdbClient.Authenticate(ctx, prompt.NewStdPrompt())
	}
	return authFailure(err)
}

// authFailure turns a handshake error into the message shown to the user
func authFailure(err error) error {
	if err == nil {
		return nil
	}
	var authErr *tmdb.AuthError
	if errors.As(err, &authErr) {
		logger.Debug().Err(err).Str("step", authErr.Step.String()).Msg("Authentication failed")
		return errors.New(authErr.Message())
	}
	return err
}

// parseMovieID parses a TMDB movie id argument
func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %q", arg)
	}
	return id, nil
}

// formatOptions builds list output options from config and the terminal
func formatOptions() display.FormatOptions {
	return display.FormatOptions{
		ShowDetails: cfg.Display.ShowDetails,
		Color:       cfg.Logging.Color && display.ShouldColorize(os.Stdout),
	}
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the connection and API key against TMDB and display the image configuration.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.URL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	if serviceCfg, ok := tmdbClient.Config(); ok {
		fmt.Print(formatter.FormatServiceConfig(serviceCfg))
	}

	if cfg.TMDB.SessionID != "" {
		fmt.Println("\nSession: configured")
	} else {
		fmt.Println("\nSession: not configured, run 'tmdbctl login'")
	}

	return nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tmdbctl %s (built %s)\n", appVersion, appBuildTime)
	},
}

// getFilterExpression determines the filter expression to use. An empty
// result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}
