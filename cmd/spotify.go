package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/desertthunder/psx/internal/server"
	"github.com/desertthunder/psx/internal/services"
	"github.com/desertthunder/psx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifyAuth performs the OAuth2 authorization flow for Spotify.
//
// By default a local HTTP server captures the redirect; --manual falls
// back to pasting the redirect URL into the terminal.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrServiceUnavailable)
	}

	if err := r.configureConsent(cmd.Bool("manual")); err != nil {
		return err
	}

	if err := r.spotify.Authorize(ctx); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: psx migrate run\n")

	return nil
}

// SpotifyWhoami prints the authorized Spotify user's profile.
func (r *Runner) SpotifyWhoami(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrServiceUnavailable)
	}

	svc, ok := r.spotify.(*services.SpotifyService)
	if !ok {
		return fmt.Errorf("%w: spotify service does not expose a user profile", shared.ErrServiceUnavailable)
	}

	if err := r.configureConsent(false); err != nil {
		return err
	}

	if err := svc.Authorize(ctx); err != nil {
		return err
	}

	userID, err := svc.CurrentUser(ctx)
	if err != nil {
		return err
	}

	r.writePlain("Authorized as: %s\n", userID)
	return nil
}

// configureConsent installs the consent collaborator the authorization
// fallback path uses when no cached refresh token works.
func (r *Runner) configureConsent(manual bool) error {
	svc, ok := r.spotify.(*services.SpotifyService)
	if !ok {
		return nil
	}

	if manual {
		svc.SetConsent(services.PromptConsent(os.Stdin, r.output))
		return nil
	}

	svc.SetConsent(r.serverConsent())
	return nil
}

// serverConsent executes the consent step with a local HTTP server capturing the redirect.
func (r *Runner) serverConsent() services.ConsentFunc {
	return func(ctx context.Context, authURL string) (string, error) {
		parsed, err := url.Parse(authURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse authorization URL: %w", err)
		}
		state := parsed.Query().Get("state")

		callbackHandler := server.NewCallbackHandler(state)
		router := server.NewBasicRouter()
		router.Use(server.LoggingMiddleware(r.logger))
		router.Handler(callbackHandler)

		serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
		httpServer := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		serverErrors := make(chan error, 1)
		go func() {
			r.logger.Infof("starting OAuth callback server at %v", serverAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrors <- err
			}
		}()

		time.Sleep(100 * time.Millisecond)

		r.writePlain("→ Opening browser for Spotify authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}

		r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

		timeout := time.NewTimer(2 * time.Minute)
		defer timeout.Stop()

		var result server.CallbackResult

		select {
		case result = <-callbackHandler.Result():
			// Got result from callback
		case err := <-serverErrors:
			return "", fmt.Errorf("server error: %w", err)
		case <-timeout.C:
			return "", fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}

		if result.Error() != nil {
			return "", result.Error()
		}

		return result.RedirectURL, nil
	}
}
