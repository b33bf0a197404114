package main

import (
	"flag"
	"log"

	"github.com/d-maltsev/bayescope/internal/config"
	"github.com/d-maltsev/bayescope/internal/dataset"
	"github.com/d-maltsev/bayescope/internal/forecast"
	"github.com/d-maltsev/bayescope/internal/logger"
	"github.com/d-maltsev/bayescope/internal/storage"
	"github.com/d-maltsev/bayescope/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)
	logger.Info("Estimation constants: success_threshold=%.3f laplace_alpha=%.3f prior_prob=%.3f",
		cfg.Forecast.SuccessThreshold, cfg.Forecast.LaplaceAlpha, cfg.Forecast.PriorProb)

	// Load the three input tables
	indicators, err := dataset.LoadIndicators(cfg.Data.IndicatorsPath)
	if err != nil {
		logger.Fatal("Failed to load indicator catalog: %v", err)
	}
	events, err := dataset.LoadEvents(cfg.Data.EventsPath)
	if err != nil {
		logger.Fatal("Failed to load historical events: %v", err)
	}
	observations, err := dataset.LoadObservations(cfg.Data.ObservationsPath)
	if err != nil {
		logger.Fatal("Failed to load observations: %v", err)
	}
	logger.Info("Loaded %d indicators, %d events, %d observations",
		len(indicators), len(events), len(observations))
	logger.Debug("Cross product will hold %d cells", len(indicators)*len(events))

	// Run the pipeline
	forecaster := forecast.New(forecast.Options{
		SuccessThreshold: cfg.Forecast.SuccessThreshold,
		LaplaceAlpha:     cfg.Forecast.LaplaceAlpha,
		PriorProb:        cfg.Forecast.PriorProb,
	})
	results, err := forecaster.FitLikelihoods(indicators, events, observations)
	if err != nil {
		logger.Fatal("Estimation failed: %v", err)
	}

	// Write the result table
	if err := dataset.WriteRatios(cfg.Data.RatiosPath, results); err != nil {
		logger.Fatal("Failed to write ratios: %v", err)
	}
	logger.Info("Wrote %d likelihood ratios to %s", len(results), cfg.Data.RatiosPath)

	// Record the run
	store := storage.New(cfg.Storage.MaxRuns, cfg.Storage.FilePath)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load run history: %v", err)
	}
	run := storage.NewRun(cfg.Forecast.SuccessThreshold, cfg.Forecast.LaplaceAlpha, results)
	if err := store.RecordRun(run); err != nil {
		logger.Warn("Failed to record run: %v", err)
	} else if err := store.Save(); err != nil {
		logger.Warn("Failed to persist run history: %v", err)
	}

	// Notify
	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		if err := client.SendTopIndicators(results, cfg.Forecast.TopK); err != nil {
			logger.Error("Failed to send notification: %v", err)
		} else {
			logger.Info("Sent top %d indicators to Telegram", cfg.Forecast.TopK)
		}
	}
}
