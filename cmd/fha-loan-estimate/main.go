package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lenderkit/fha-loan-estimate/internal/config"
	"github.com/lenderkit/fha-loan-estimate/internal/quote"
	"github.com/lenderkit/fha-loan-estimate/internal/server"
	"github.com/lenderkit/fha-loan-estimate/pkg/pricing"
	"github.com/lenderkit/fha-loan-estimate/pkg/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", "", "path to configuration file")
	inputLocation := flag.String("input", "", "path to a JSON quote request; \"-\" reads stdin")
	serve := flag.Bool("serve", false, "run the HTTP quote API instead of a one-shot quote")
	addr := flag.String("addr", "", "listen address override for -serve")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Best-effort local development environment; production uses real env
	// injection.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	evaluator := quote.NewEvaluator(logger, conf.QuotePolicy(), pricing.DefaultRateTable())

	if *serve {
		address := conf.Server.Address
		if *addr != "" {
			address = *addr
		}

		handler := server.NewHandler(logger, evaluator, conf.Server.MaxRequestBytes, version)
		logger.Info("starting quote API",
			zap.String("op", "main"),
			zap.String("address", address),
			zap.String("version", version),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server exited",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	payload, err := readRequest(*inputLocation)
	if err != nil {
		logger.Fatal("failed to read quote request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result := evaluator.Evaluate(payload)
	fmt.Print(report.Render(result))
	if result.Declined() {
		os.Exit(2)
	}
}

// readRequest decodes a JSON quote request from a file or stdin. Field
// values stay loosely typed; the evaluator's parser handles coercion.
func readRequest(location string) (quote.Request, error) {
	var reader io.Reader
	switch location {
	case "", "-":
		reader = os.Stdin
	default:
		file, err := os.Open(location)
		if err != nil {
			return quote.Request{}, fmt.Errorf("failed to open %s: %w", location, err)
		}
		defer func() {
			_ = file.Close()
		}()
		reader = file
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(reader).Decode(&payload); err != nil {
		return quote.Request{}, fmt.Errorf("failed to decode request JSON: %w", err)
	}

	return server.RequestFromPayload(payload), nil
}
