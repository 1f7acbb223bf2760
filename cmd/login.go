package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdbctl/prompt"
	"github.com/s0up4200/tmdbctl/tmdb"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to TMDB",
	Long: `Run the TMDB sign-in flow: request a token, approve it in your browser,
and create a session. The printed session id can be stored as tmdb.session_id.`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current TMDB session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p := prompt.NewStdPrompt()
	if !p.Interactive() {
		logger.Warn().Msg("Standard input is not a terminal, reading approval from piped input")
	}

	auth := tmdb.NewAuthenticator(tmdbClient)
	err := auth.Authenticate(ctx, p)

	// A session can exist even when the account lookup failed
	if id, ok := tmdbClient.Session().SessionID(); ok {
		fmt.Printf("\nSession ID: %s\n", id)
	}
	if err != nil {
		return authFailure(err)
	}

	creds := tmdbClient.Session().Credentials()
	fmt.Printf("Account ID: %d\n", creds.UserID)
	fmt.Println("✓ Login successful! Set tmdb.session_id or pass --session to reuse this session.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if cfg.TMDB.SessionID == "" {
		return fmt.Errorf("no session configured, pass --session or set tmdb.session_id")
	}

	ctx := cmd.Context()
	if err := tmdbClient.ResumeSession(ctx, cfg.TMDB.SessionID); err != nil {
		// An expired session cannot be resolved but may still be deleted
		logger.Warn().Err(err).Msg("Could not resolve account for session")
	}

	if err := tmdbClient.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Println("✓ Session revoked")
	return nil
}
