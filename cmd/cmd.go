// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand creates a starter config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter config.toml",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

// authCommand runs the local OAuth flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2 and print the access token",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Auth,
	}
}

// dumpCommand exports the full library snapshot
func dumpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Export saved tracks, playlists, albums, and followed artists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Access token (defaults to SPOTIFY_ACCESS_TOKEN)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
				Value:   "spotify_library.json",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print the snapshot JSON",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: r.Dump,
	}
}
