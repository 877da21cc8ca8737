package main

import (
	"context"
	"fmt"

	"github.com/smorcillor/spotify-profile-dump-cli/internal/server"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// Auth runs the local OAuth2 authorization-code flow and prints the access token.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	creds := r.config.Credentials
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: set client_id and client_secret in your config file", shared.ErrMissingCredentials)
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	redirectURL := fmt.Sprintf("http://%s/callback", addr)
	oauthConfig := server.NewOAuthConfig(creds.ClientID, creds.ClientSecret, redirectURL)

	r.logger.Info("starting authorization flow", "addr", addr)

	token, err := server.Authorize(ctx, oauthConfig, addr, r.logger)
	if err != nil {
		return err
	}

	r.logger.Info("authorization complete", "expires", token.Expiry)

	if err := r.writePlain("Access token:\n%s\n", token.AccessToken); err != nil {
		return err
	}
	return r.writePlain("\nReuse it with:\n  export SPOTIFY_ACCESS_TOKEN=%q\n  spotify-dump dump\n", token.AccessToken)
}
