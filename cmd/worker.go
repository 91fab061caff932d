package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers that run outside the HTTP server process.`,
}

var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Start the expired-session pruner",
	Long:  `Periodically delete expired sessions from the configured session store`,
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

var (
	pruneInterval time.Duration
	pruneOnce     bool
)

func startSessionWorker() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if pruneInterval > 0 {
		cfg.Session.PruneInterval = pruneInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if pruneOnce {
		app.Pruner.PruneOnce(ctx)
		return
	}

	app.Pruner.Start(ctx)
	app.Logger.Info("session worker is running. Press Ctrl+C to stop.", "store", cfg.Session.Store)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	app.Logger.Info("received signal, shutting down session worker", "signal", sig)
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&pruneInterval, "interval", 0, "Prune interval (overrides config)")
	sessionWorkerCmd.Flags().BoolVar(&pruneOnce, "once", false, "Prune once and exit")

	workerCmd.AddCommand(sessionWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
