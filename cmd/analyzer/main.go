package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/analyze"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/api/upstox"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/chain"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/config"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/render"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting Option Chain Analyzer")

	// 3. Print configuration
	printConfig(cfg)

	// 4. Setup API client
	client := upstox.NewClient(upstox.ClientOptions{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
		DebugDumpFile:  cfg.DebugDumpFile,
	})

	// 5. Fetch and assemble the chain
	fmt.Printf("\nFetching %s option chain for %s...\n", cfg.AssetKey, cfg.ExpiryDate)
	raw, err := client.GetStrategyChain(ctx, cfg.AssetKey, cfg.ExpiryDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch option chain")
	}

	table, err := chain.NewAssembler().Assemble(raw, cfg.ExpiryDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to assemble option chain")
	}

	fmt.Printf("\nATM Strike (Approx Spot): %v\n", table.ATMStrike)
	fmt.Printf("Available strikes: %v\n", table.Strikes())

	// 6. Leaderboards
	render.PrintLeaderboard(os.Stdout, analyze.BuildLeaderboard(table, cfg.TopN))

	// 7. Interactive strike analysis loop
	runAnalysisLoop(table, cfg)
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		os.Exit(0)
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("AssetKey", cfg.AssetKey).
		Str("ExpiryDate", cfg.ExpiryDate).
		Int("RequestTimeout", cfg.RequestTimeout).
		Int("MaxRetries", cfg.MaxRetries).
		Int("TopN", cfg.TopN).
		Str("ChartFile", cfg.ChartFile).
		Msg("Configuration loaded")
}

// runAnalysisLoop prompts for strikes until the user enters 0, printing
// the analysis and rewriting the chart file after each query.
func runAnalysisLoop(table *model.OptionChainTable, cfg *config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter strike price to analyze (0 to exit): ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		strike, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Println("Please enter a valid number")
			continue
		}
		if strike == 0 {
			return
		}

		analysis, err := analyze.AnalyzeStrike(table, strike)
		if err != nil {
			var notFound *chain.StrikeNotFoundError
			if errors.As(err, &notFound) {
				fmt.Println(notFound.Error())
				continue
			}
			log.Error().Err(err).Msg("Strike analysis failed")
			continue
		}

		render.PrintStrikeAnalysis(os.Stdout, analysis)

		if cfg.ChartFile != "" {
			if err := render.WriteCharts(table, cfg.ChartFile); err != nil {
				log.Error().Err(err).Str("file", cfg.ChartFile).Msg("Failed to write charts")
			} else {
				fmt.Printf("\nCharts written to %s\n", cfg.ChartFile)
			}
		}
	}
}
