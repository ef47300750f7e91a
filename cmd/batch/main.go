// Command batch values every vehicle in a JSON array file through the
// valuation API and prints one JSON result per line, in input order.
//
//	batch vehicles.json
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"carvalue/internal/adapters/observability"
	"carvalue/internal/adapters/valuer"
	"carvalue/internal/app"
	"carvalue/internal/domain"
	"carvalue/internal/shared"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// logs go to stderr so stdout stays machine-readable
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).Output(os.Stderr)

	if len(os.Args) != 2 {
		log.Fatal().Msg("usage: batch <vehicles.json>")
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("read input failed")
	}
	var inputs []domain.ValuationInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Fatal().Err(err).Msg("input must be a JSON array of vehicles")
	}

	client, err := valuer.New(cfg.ValuerBase, cfg.BatchRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize valuer client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("base", cfg.ValuerBase).
		Int("workers", cfg.BatchWorkers).
		Int("rps", cfg.BatchRPS).
		Int("vehicles", len(inputs)).
		Msg("batch starting")

	results := app.RunBatch(ctx, client, inputs, cfg.BatchWorkers)

	enc := json.NewEncoder(os.Stdout)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			log.Fatal().Err(err).Msg("write result failed")
		}
	}
	log.Info().Int("ok", len(results)-failed).Int("failed", failed).Msg("batch completed")
	if failed > 0 {
		os.Exit(1)
	}
}
