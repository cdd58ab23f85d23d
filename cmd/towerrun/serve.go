package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
	"github.com/vovakirdan/towerrun/internal/platform/tui"
	"github.com/vovakirdan/towerrun/internal/spectate"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Tower Run SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session. Best score, fastest clear and
settings are kept per SSH user; the run history is shared.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.towerrun/host_key

Examples:
  towerrun serve                           # Listen on :23234 with auto-generated key
  towerrun serve --ssh :2222               # Listen on port 2222
  towerrun serve --host-key ./my_host_key  # Use specific host key
  towerrun serve --spectate :8080          # Stream every session to ws://host:8080/ws

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve a spectator websocket on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("towerrun-ssh", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Tower:       loadConfig(),
		Logger:      logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagServeSpectate != "" {
		hub := spectate.NewHub(logger)
		go func() {
			if serveErr := hub.ListenAndServe(ctx, flagServeSpectate); serveErr != nil {
				logger.Error("spectator server stopped", "err", serveErr)
			}
		}()
		cfg.SinkFor = func(user string) engine.Sink { return hub.Sink(user) }
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Tower Run SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
