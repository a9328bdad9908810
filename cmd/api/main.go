package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foliogen/internal/analysis"
	"foliogen/internal/assets"
	"foliogen/internal/config"
	"foliogen/internal/generation"
	"foliogen/internal/llmclient"
	"foliogen/internal/pipeline"
	"foliogen/internal/quality"
	"foliogen/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	genClient, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}
	generator := llmclient.Wrap(genClient,
		llmclient.WithLogging(nil),
		llmclient.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	)

	visionClient, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.VisionModel)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}
	vision := llmclient.Wrap(visionClient,
		llmclient.WithLogging(nil),
		llmclient.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	)

	var store *assets.Store
	if cfg.Assets.Enabled {
		store, err = assets.NewStore(cfg.Assets)
		if err != nil {
			// Callers can still pass explicit image URLs.
			log.Printf("assets: store disabled: %v", err)
			store = nil
		}
	}

	p := &pipeline.Pipeline{
		Fusion: analysis.NewEngine(
			analysis.NewPixelAnalyzer(),
			&analysis.VisionAnalyzer{LLM: vision},
			cfg.Fusion,
		),
		Invoker: &generation.Invoker{
			LLM:             generator,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
			Temperature:     cfg.LLM.Temperature,
			Timeout:         cfg.LLM.Timeout,
		},
		Store:   store,
		Quality: quality.NewRunner(),
		Cfg:     cfg,
	}

	srv := server.New(cfg.Port, server.NewMux(p))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = generator.Close()
		_ = vision.Close()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
