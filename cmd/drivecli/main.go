package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/math-u-t/Drive-CLI/internal/logger"
	"github.com/math-u-t/Drive-CLI/internal/server"
	"github.com/math-u-t/Drive-CLI/pkg/config"
	"github.com/math-u-t/Drive-CLI/pkg/metrics"
	promMetrics "github.com/math-u-t/Drive-CLI/pkg/metrics/prometheus"
	"github.com/math-u-t/Drive-CLI/pkg/shell"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: "+config.GetDefaultConfigPath()+")")
	logLevel := flag.String("log-level", "", "Log level override (DEBUG, INFO, WARN, ERROR)")
	seedFile := flag.String("seed", "", "YAML seed tree applied at startup (overrides shell.seed_file)")
	interactive := flag.Bool("i", false, "Run an interactive shell on stdin/stdout instead of the HTTP server")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driveStore, err := config.CreateDriveStore(ctx, &cfg.Drive)
	if err != nil {
		log.Fatalf("Failed to create drive store: %v", err)
	}
	defer driveStore.Close()

	contentStore, err := config.CreateContentStore(ctx, &cfg.Content)
	if err != nil {
		log.Fatalf("Failed to create content store: %v", err)
	}
	defer contentStore.Close()

	sessionStore, err := config.CreateSessionStore(ctx, &cfg.Session)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	defer sessionStore.Close()

	seedPath := cfg.Shell.SeedFile
	if *seedFile != "" {
		seedPath = *seedFile
	}
	if seedPath != "" {
		tree, err := drive.LoadSeedTree(seedPath)
		if err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
		if err := drive.ApplySeed(ctx, driveStore, contentStore, tree); err != nil {
			log.Fatalf("Failed to apply seed: %v", err)
		}
		logger.Info("Seed applied from %s", seedPath)
	}

	var commandMetrics metrics.CommandMetrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics = promMetrics.NewCommandMetrics()
	}

	sh := shell.New(driveStore, contentStore, sessionStore, commandMetrics, shell.Options{
		BaseURL:       cfg.Shell.BaseURL,
		TreeFileLimit: cfg.Shell.TreeFileLimit,
		CatMaxBytes:   cfg.Shell.CatMaxBytes,
		Locale:        cfg.Shell.Locale,
	})

	if *interactive {
		runREPL(ctx, sh)
		return
	}

	srv := server.New(sh, driveStore, contentStore, server.Options{
		ListenAddr:      cfg.Server.ListenAddr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MetricsEnabled:  cfg.Metrics.Enabled,
	})
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runREPL runs the shell against stdin/stdout under a single session.
func runREPL(ctx context.Context, sh *shell.Shell) {
	fmt.Println("Drive terminal. Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		result := sh.Execute(ctx, "local", scanner.Text())
		if result.Output != "" {
			fmt.Println(result.Output)
		}
		if result.Action == shell.ActionExit {
			break
		}
	}
}
