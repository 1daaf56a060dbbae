package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/api"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH game server and the HTTP leaderboard",
	Long: `Start an SSH server that lets users connect and play, plus an HTTP
API exposing the shared run history.

Each SSH connection gets its own game; runs are recorded under the SSH
user name and all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.runner/host_key

HTTP endpoints:
  GET /scores            - Best runs (?limit=N)
  GET /scores/recent     - Latest runs
  GET /scores/{outcome}  - Best victories or defeats
  GET /runs/{id}         - One run by its ID
  GET /stats             - Totals
  GET /health            - Liveness probe

Examples:
  runner serve                          # SSH on :23234, HTTP on :8080
  runner serve --ssh :2222 --http ""    # SSH only
  runner serve --ssh "" --http :9000    # Leaderboard only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP leaderboard address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, set --ssh or --http")
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "runner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	running := 0

	if flagSSHAddr != "" {
		server, sshErr := tui.NewSSHServer(sshServerConfig(cfg, store, logger))
		if sshErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", sshErr)
			os.Exit(1)
		}
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagHTTPAddr != "" {
		httpServer := api.NewServer(store, logger.WithPrefix("http"))
		running++
		go func() { errCh <- httpServer.ListenAndServe(ctx, flagHTTPAddr) }()
		fmt.Printf("Leaderboard at http://localhost:%s/scores\n", portOf(flagHTTPAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops the other server too.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	if firstErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", firstErr)
		store.Close()
		os.Exit(1)
	}
}

// sshServerConfig applies the command line on top of the server defaults.
func sshServerConfig(cfg config.RunnerConfig, store *storage.Store, logger *log.Logger) tui.SSHServerConfig {
	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	sshCfg.Runner = cfg
	sshCfg.Runtime.TickRate = flagFPS
	sshCfg.Provider = assetProvider()
	sshCfg.Logger = logger
	if store != nil {
		sshCfg.Recorder = store
	}
	return sshCfg
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
