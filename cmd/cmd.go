// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles configuration file creation
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml from the bundled template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// pandoraCommand handles Pandora operations
func pandoraCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "pandora",
		Aliases: []string{"pan"},
		Usage:   "Pandora station operations",
		Commands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "List Pandora stations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of stations to return",
						Value: 250,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PandoraStations,
			},
			{
				Name:  "liked",
				Usage: "List liked songs for a station",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "station",
						Aliases:  []string{"s"},
						Usage:    "Station ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PandoraLiked,
			},
			{
				Name:  "export",
				Usage: "Export a station's liked songs to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "station",
						Aliases:  []string{"s"},
						Usage:    "Station ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, md, txt)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.PandoraExport,
			},
		},
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify authorization operations",
		Commands: []*cli.Command{
			{
				Name:  "auth",
				Usage: "Authorize with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "manual",
						Usage: "Paste the redirect URL instead of running a local callback server",
					},
				},
				Action: r.SpotifyAuth,
			},
			{
				Name:   "whoami",
				Usage:  "Show the authorized Spotify user",
				Action: r.SpotifyWhoami,
			},
		},
	}
}

// migrateCommand handles migration operations
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Migrate liked songs from Pandora to Spotify",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the full Pandora → Spotify migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "station",
						Aliases: []string{"s"},
						Usage:   "Restrict the run to a single station ID",
					},
					&cli.BoolFlag{
						Name:  "manual",
						Usage: "Paste the redirect URL instead of running a local callback server",
					},
				},
				Action: r.MigrateRun,
			},
			{
				Name:   "ui",
				Usage:  "Interactive TUI for station migration",
				Action: r.MigrateUI,
			},
		},
	}
}
