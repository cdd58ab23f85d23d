package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/towerrun/internal/audio"
	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
	"github.com/vovakirdan/towerrun/internal/platform/tui"
	"github.com/vovakirdan/towerrun/internal/spectate"
	"github.com/vovakirdan/towerrun/internal/storage"
)

var (
	flagSpectate string
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Tower Run",
	Long: `Start a Tower Run session in this terminal.

Controls:
  WASD/Arrows  - Move
  1/2/3        - Choose a floor on the tower map
  Enter        - Confirm / continue
  P/Esc        - Pause (1/2/3 toggle settings while paused)
  R            - Restart the run (paused or at the end)
  B            - Back to the menu
  Tab          - Run history (main menu)
  Q/Ctrl+C     - Quit

Examples:
  towerrun play
  towerrun play --seed 42
  towerrun play --spectate :8080   # stream the run to ws://host:8080/ws
  towerrun play --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator websocket on this address")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound regardless of settings")
}

func runPlay(_ *cobra.Command, _ []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	tower := loadConfig()

	// The terminal belongs to the game; logs only go to --log-file.
	logger, closeLog, err := newLogger("towerrun", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := engine.SessionOptions{
		Config: tower,
		Seed:   cfg.Seed,
		Logger: logger,
	}
	if store != nil {
		opts.Progress = engine.NewProgress(store, logger)
		opts.Recorder = store
	} else {
		opts.Progress = engine.NewProgress(nil, logger)
	}
	progress := opts.Progress

	var sinks engine.MultiSink
	if !flagMute {
		sinks = append(sinks, audio.NewPlayer(func() bool { return progress.Settings().Sound }, logger))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagSpectate != "" {
		hub := spectate.NewHub(logger)
		go func() {
			if serveErr := hub.ListenAndServe(ctx, flagSpectate); serveErr != nil {
				logger.Error("spectator server stopped", "err", serveErr)
			}
		}()
		sinks = append(sinks, hub.Sink(playerName()))
	}
	opts.Sink = sinks

	game := towerrun.New(opts)
	if store != nil {
		game.OnClearData = func() {
			if clearErr := store.ClearRuns(); clearErr != nil {
				logger.Warn("could not clear run history", "err", clearErr)
			}
		}
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
