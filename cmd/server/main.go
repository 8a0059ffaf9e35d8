package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulsemobile/pulse-insights/internal/api"
	"github.com/pulsemobile/pulse-insights/internal/brand"
	"github.com/pulsemobile/pulse-insights/internal/config"
	"github.com/pulsemobile/pulse-insights/internal/storage"
	"github.com/pulsemobile/pulse-insights/internal/synth"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := storage.New(cfg.Data.Dir)
	if err := store.Load(); err != nil {
		log.Printf("No dataset at %s (%v) — generating with seed %d", cfg.Data.Dir, err, cfg.Data.Seed)
		if err := generateDataset(cfg, store); err != nil {
			log.Fatalf("Dataset generation failed: %v", err)
		}
	}
	m := store.Manifest()
	log.Printf("Dataset ready: %d customers, %d usage rows, %d tickets, %d interventions (run %s)",
		m.CustomerCount, m.UsageRows, m.TicketRows, m.InterventionRows, m.RunID)

	handlers := api.NewHandlers(store, cfg.Data, cfg.Pricing)

	b, err := brand.Load(cfg.Brand.Path)
	if err != nil {
		log.Fatalf("Failed to load brand config: %v", err)
	}
	handlers.SetBrand(b)

	server := api.NewServer(cfg.Server, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func generateDataset(cfg *config.Config, store *storage.Store) error {
	ref, err := cfg.Data.Reference()
	if err != nil {
		return fmt.Errorf("invalid reference date %q: %w", cfg.Data.ReferenceDate, err)
	}

	gen := synth.New(synth.Config{
		CustomerCount: cfg.Data.CustomerCount,
		UsageMonths:   cfg.Data.UsageMonths,
		ReferenceDate: ref,
	}, cfg.Data.Seed)

	ds := gen.GenerateAll()
	if err := synth.WriteAll(cfg.Data.Dir, ds); err != nil {
		return err
	}
	store.SetDataset(ds)
	return nil
}
