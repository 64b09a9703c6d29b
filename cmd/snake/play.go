package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/platform/spectate"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/hjkl - Steer
  Mouse drag       - Swipe to steer
  P/Space          - Pause
  R                - Play again (after game over)
  ?                - More keys
  Q/Ctrl+C         - Quit

The game pauses when the terminal loses focus and continues when it
gets focus back.

Speed starts at 150ms per move and drops by 3ms per apple down to 50ms.
Tune it in the gameplay section of snake.yaml (see "snake config").

Examples:
  snake play
  snake play --seed 42
  snake play --spectate :8080     # watch at ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a read-only WebSocket feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("snake play needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Bubble Tea owns the terminal, so logs only go to the file
	logger, closer, err := logging.New(cfg.Log, nil, "snake")
	if err != nil {
		return err
	}
	defer closer.Close()

	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		cols, rows := cfg.Runtime(w, h, flagSeed).GridSize()
		logger.Info("starting game", "terminal", fmt.Sprintf("%dx%d", w, h), "grid", fmt.Sprintf("%dx%d", cols, rows))
	}

	addr := flagSpectate
	if addr == "" {
		addr = cfg.Spectate.Addr
	}

	var sinks []tui.FrameSink
	if addr != "" {
		hub := spectate.NewHub(spectate.Options{
			SendBuffer:   cfg.Spectate.SendBuffer,
			WriteTimeout: cfg.SpectateWriteTimeout(),
			MaxClients:   cfg.Spectate.MaxClients,
			Logger:       logger.WithPrefix("spectate"),
		})
		srv := &http.Server{
			Addr:              addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "error", serveErr)
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		logger.Info("spectator feed listening", "addr", addr)
		sinks = append(sinks, hub)
	}

	if err := tui.Run(cfg, flagSeed, logger, sinks...); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
