package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"line-scanner/internal/alerts"
	"line-scanner/internal/config"
	"line-scanner/internal/engine"
	"line-scanner/internal/feeds"
	"line-scanner/internal/store"
)

func main() {
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.APIKey == "" {
		log.Fatal("LINES_API_KEY is required")
	}

	// Initialize components
	providers := []feeds.Provider{feeds.NewLinesClient(cfg.APIKey)}
	notifier := alerts.NewNotifier(cfg.AlertCooldown)

	// Initialize database
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		log.Printf("DB disabled: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	notifier.LogStartup(config.Describe(cfg))

	// Start health check server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	go startHealthServer(port)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	engine.New(providers, notifier, db, cfg).Run(ctx)
}

func startHealthServer(port string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Line Scanner - Running"))
	})

	addr := ":" + port
	log.Printf("Health server listening on %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Health server error: %v", err)
	}
}
