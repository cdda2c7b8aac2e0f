package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/psx/internal/services"
	"github.com/desertthunder/psx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load config.toml: %v", err)
		}
	}

	if config.App.Debug {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	var pandoraService services.SourceService
	var spotifyService services.TargetService

	if config.Credentials.Pandora.Username != "" && config.Credentials.Pandora.Password != "" {
		if svc, err := services.NewPandoraService(config.Credentials.Pandora.Map(), nil); err == nil {
			pandoraService = svc
		} else {
			logger.Warnf("pandora service unavailable: %v", err)
		}
	}

	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		} else {
			logger.Warnf("spotify service unavailable: %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Pandora: pandoraService,
		Spotify: spotifyService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "psx",
		Usage:    "Migrate liked songs from Pandora stations to Spotify playlists",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
