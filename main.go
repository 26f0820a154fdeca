package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-elect/audit"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/persist"
	"github.com/danielhkuo/quickly-elect/platform"
	"github.com/danielhkuo/quickly-elect/router"
	"github.com/danielhkuo/quickly-elect/store"
)

func main() {
	var err error

	// Load .env if present; real env still wins
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load persisted elections
	pm := persist.NewManager(cfg.DataPath, cfg.BackupDir)
	data := store.NewGlobalData()
	found, err := pm.Load(data)
	if err != nil {
		slog.Error("data file load failed", "path", cfg.DataPath+".json", "error", err)
		os.Exit(1)
	}
	if found {
		data.Migrate()
		slog.Info("Loaded election data", "guilds", len(data.Guilds))
		// Write the migrated shape back out before serving; best effort.
		if err := pm.Persist(data); err != nil {
			slog.Warn("initial persist failed", "error", err)
		}
	} else {
		slog.Info("No data file yet, starting empty")
	}
	state := store.NewGlobalState(data)

	// Open the audit log
	auditLog, err := audit.Open(cfg.AuditDB)
	if err != nil {
		slog.Error("audit log open failed", "error", err)
		os.Exit(1)
	}
	defer auditLog.Close()

	// Create router
	renderer := platform.NewWebhookClient(cfg.PlatformURL)
	mux := router.NewRouter(state, pm, renderer, auditLog)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
