package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Dump exports the full library to a JSON snapshot file.
//
// The access token comes from the --token flag, falling back to the
// SPOTIFY_ACCESS_TOKEN environment variable.
func (r *Runner) Dump(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	token := cmd.String("token")
	if token == "" {
		token = os.Getenv("SPOTIFY_ACCESS_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("%w: pass --token or set SPOTIFY_ACCESS_TOKEN (run `spotify-dump auth` to get one)", shared.ErrMissingCredentials)
	}

	spotify, err := r.newService(token)
	if err != nil {
		return err
	}

	engine := tasks.NewExportEngine(spotify)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	library, err := engine.Dump(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		switch {
		case errors.Is(err, shared.ErrUnauthorized):
			r.logger.Error("access token rejected, re-run `spotify-dump auth` to get a fresh one")
		case errors.Is(err, shared.ErrForbidden):
			r.logger.Error("access denied, add your Spotify account under Users in the Developer Dashboard")
		}
		return err
	}

	output, err := shared.MarshalJSON(library, cmd.Bool("pretty"))
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	path := cmd.String("output")
	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	r.logger.Info("export complete", "path", path,
		"tracks", len(library.SavedTracks), "playlists", len(library.Playlists),
		"albums", len(library.Albums), "artists", len(library.Artists))

	return r.writePlain("✓ Library exported to %s\n", path)
}
