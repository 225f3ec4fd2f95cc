package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/repotrial/omim-extractor/config"
	"github.com/repotrial/omim-extractor/data"
	"github.com/repotrial/omim-extractor/logging"
	"github.com/repotrial/omim-extractor/omimparser"
	"github.com/repotrial/omim-extractor/scheduler"
	"github.com/repotrial/omim-extractor/server"
	"github.com/repotrial/omim-extractor/validation"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0750); err != nil {
		logging.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	validator := validation.NewDataValidator()
	parser := omimparser.NewOmimParser(omimparser.Options{
		DataDir:      cfg.DataDir,
		OutputFile:   cfg.OutputFile,
		Mim2GeneURL:  cfg.Mim2GeneURL,
		Genemap2URL:  cfg.Genemap2URL,
		MorbidmapURL: cfg.MorbidmapURL,
	})

	sched := scheduler.NewScheduler(dataContainer, parser, validator)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer, validator)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
