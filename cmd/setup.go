package main

import (
	"context"

	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the embedded example config to the --config path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Created %s — fill in your Spotify credentials\n", path)
}
