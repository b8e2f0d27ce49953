// Package main is the entry point for hexboard.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/hexboard/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		slog.Debug(".env file not loaded", "error", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			slog.Warn("telemetry setup failed, continuing without it", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					slog.Warn("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_HEXBOARD_API_KEY")
	if apiKey == "" {
		return
	}

	dataset := os.Getenv("HONEYCOMB_HEXBOARD_DATASET")
	if dataset == "" {
		dataset = "hexboard"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	// The .env file may hold an unexpanded reference, so build the header here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
