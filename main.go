package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mancalaweb/internal/backend"
	"mancalaweb/internal/config"
	"mancalaweb/internal/game"
	"mancalaweb/internal/handlers"
	"mancalaweb/internal/logging"
	"mancalaweb/internal/storage"
	"mancalaweb/internal/templates"
	"mancalaweb/internal/ui"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	logging.Debug = *debug

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.Production())
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates.SetCommit(commit)
	pages, err := templates.Load()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	// Optional journal of games played through this frontend
	var store *storage.Store
	if cfg.DatabaseURL != "" {
		db, err := storage.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		store = storage.NewStore(db)
		log.Info("storage enabled")
	}

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	logging.Debugf("backend timeout %s, session idle ttl %s", cfg.BackendTimeout, cfg.SessionIdleTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize session hub
	hub := game.NewHub(client, cfg.SessionIdleTTL, log)
	go hub.Run(ctx)

	// Initialize HTTP handlers
	h := handlers.NewHandler(hub, ui.NewHomeView(client, log), store, log)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handlers.NewRouter(h, pages, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddr,
		"backend": cfg.BackendURL,
		"commit":  commit,
		"built":   buildDate,
	}).Info("Mancala listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
