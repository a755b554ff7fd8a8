package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	cli "github.com/spf13/pflag"

	"voice-assistant/config"
	"voice-assistant/internal/application"
	"voice-assistant/internal/infra/audio"
	"voice-assistant/internal/infra/elevenlabs"
	"voice-assistant/internal/infra/espeak"
	"voice-assistant/internal/infra/google"
	"voice-assistant/internal/infra/ipfs"
	"voice-assistant/internal/infra/player"
)

func main() {
	configPath := cli.StringP("config", "c", "config.yaml", "path to config file")
	envPath := cli.StringP("env", "e", ".env", "path to env file")
	logLevel := cli.StringP("log", "l", "", "log level override (debug, info, warn, error)")
	cli.Parse()

	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		slog.Error("loading env file", "path", *envPath, "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	voiceClient := elevenlabs.NewClient(
		cfg.ElevenLabs.APIKey,
		cfg.ElevenLabs.ModelID,
		cfg.ElevenLabs.Stability,
		cfg.ElevenLabs.SimilarityBoost,
	)

	source := audio.NewMicrophoneSource(
		cfg.Recognizer.SampleRate,
		time.Duration(cfg.Recognizer.CalibrationMs)*time.Millisecond,
		time.Duration(cfg.Recognizer.SilenceHoldMs)*time.Millisecond,
		time.Duration(cfg.Recognizer.MaxUtteranceSec)*time.Second,
		logger,
	)

	assistant := application.NewAssistant(application.AssistantConfig{
		Samples:     ipfs.NewFetcher(cfg.Voice.SampleURL),
		Voices:      voiceClient,
		Synthesizer: voiceClient,
		Recognizer:  google.NewClient(cfg.Recognizer.APIKey, cfg.Recognizer.Language, cfg.Recognizer.SampleRate),
		Source:      source,
		Encoder:     audio.NewFLACEncoder(cfg.Recognizer.SampleRate),
		Player:      player.New(espeak.NewEngine(""), logger),
		Dispatcher:  application.NewDispatcher(nil, logger),
		Logger:      logger,
		VoiceName:   cfg.Voice.Name,
	})

	logger.Info("starting voice assistant",
		"voice_name", cfg.Voice.Name,
		"language", cfg.Recognizer.Language,
	)

	if err := assistant.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case "pretty":
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
