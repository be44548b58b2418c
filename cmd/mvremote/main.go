package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"mvremote/internal/api"
	"mvremote/internal/auth"
	"mvremote/internal/httpserver"
	"mvremote/internal/media"
	"mvremote/internal/player"
	"mvremote/internal/preset"
	"mvremote/pkg/logger"
)

// devJWTSecret is the fallback used when JWT_SECRET is unset. It exists so a
// local development setup works out of the box; running with it in any other
// setting is a security hole and is warned about loudly at startup.
const devJWTSecret = "mvremote-dev-secret-do-not-use-in-production"

func main() {
	addr := "127.0.0.1:3001"
	dataDir := ""
	jwtSecret := ""
	videoExts := ""
	debug := false

	app := &cli.App{
		Name:  "mvremote",
		Usage: "Local media playback server with a remote-control API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "Address to bind the HTTP API",
				Value:       addr,
				EnvVars:     []string{"MVREMOTE_ADDR"},
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "Directory for salt, credential and preset files",
				EnvVars:     []string{"MVREMOTE_DATA_DIR"},
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "jwt-secret",
				Usage:       "Signing secret for bearer tokens",
				EnvVars:     []string{"JWT_SECRET"},
				Destination: &jwtSecret,
			},
			&cli.StringFlag{
				Name:        "video-exts",
				Usage:       "Comma-separated video extensions to scan for",
				EnvVars:     []string{"MVREMOTE_VIDEO_EXTS"},
				Destination: &videoExts,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Enable debug logging",
				EnvVars:     []string{"MVREMOTE_DEBUG"},
				Destination: &debug,
			},
		},
		Action: func(c *cli.Context) error {
			log := logger.New(debug)

			if dataDir == "" {
				base, err := os.UserConfigDir()
				if err != nil {
					return fmt.Errorf("resolve data dir: %w", err)
				}
				dataDir = filepath.Join(base, "mvremote")
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			if jwtSecret == "" {
				jwtSecret = devJWTSecret
				log.Warn().Msg("JWT_SECRET not set, using insecure development fallback")
			}

			salts := auth.NewSaltStore(dataDir)
			creds := auth.NewCredentialStore(dataDir, log)
			tokens := auth.NewTokenService(jwtSecret, auth.DefaultTokenTTL)
			authSvc := auth.NewService(salts, creds, tokens, log)
			if err := authSvc.Bootstrap(); err != nil {
				return fmt.Errorf("bootstrap credentials: %w", err)
			}

			presets := preset.NewStore(dataDir)
			scanner := media.NewScanner(media.ParseExtensions(videoExts))
			hub := player.NewHub(log)

			srv := api.New(authSvc, tokens, presets, scanner, hub, log)
			return httpserver.Serve(c.Context, log, addr, srv.Router())
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log := logger.New(false)
		log.Error().Err(err).Msg("mvremote failed")
		os.Exit(1)
	}
}
