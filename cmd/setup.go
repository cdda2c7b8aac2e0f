package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/psx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a config.toml from the bundled template.
//
// An existing file is left untouched so credentials are never clobbered.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writePlain("Config file already exists at %s\n", configPath)
		return nil
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config file created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Fill in your Pandora username and password under [credentials.pandora]\n")
	r.writePlain("2. Fill in your Spotify client_id and client_secret under [credentials.spotify]\n")
	r.writePlain("3. Run 'psx spotify auth' to authorize with Spotify\n")

	return nil
}
