// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client covers user authentication, movie search, the image
// configuration and the account favorite and watchlist lists.
//
// # Authentication
//
// TMDB sessions are created with a four-step handshake:
//
//  1. Create a request token (GET /authentication/token/new)
//  2. Let the user approve the token on the TMDB website
//  3. Exchange the approved token for a session id (GET /authentication/session/new)
//  4. Look up the account id (GET /account)
//
// Step 2 is delegated to an AuthorizationPrompt supplied by the caller:
//
//	client, err := tmdb.NewClient(tmdb.DefaultBaseURL, apiKey, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.Authenticate(ctx, tmdb.PromptFunc(func(ctx context.Context, authURL string) (bool, error) {
//		fmt.Println("Approve access at", authURL)
//		return waitForUser(ctx)
//	}))
//
// The credentials live in the client's Session. If the account lookup fails
// the session id is kept and Authenticate still returns an *AuthError for
// step 4; ResolveAccount can be called later.
//
// # Error Handling
//
// Errors can be classified with errors.Is against ErrTransport, ErrDecode,
// ErrAuthDenied and ErrNotAuthenticated, and with errors.As against
// *AuthError (handshake step failures) and *APIError (non-2xx responses):
//
//	var authErr *tmdb.AuthError
//	if errors.As(err, &authErr) {
//		fmt.Println(authErr.Message()) // "Login Failed (Session ID)"
//	}
//
// No request is retried.
package tmdb
