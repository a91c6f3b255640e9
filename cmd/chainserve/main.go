package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/api/upstox"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/config"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting Option Chain API")

	client := upstox.NewClient(upstox.ClientOptions{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
		DebugDumpFile:  cfg.DebugDumpFile,
	})

	srv := server.NewServer(client, cfg)
	handler := server.ZstdMiddleware(srv.Router())

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Option Chain API listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
