package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fintrack-server/src/ai"
	"fintrack-server/src/analysis"
	"fintrack-server/src/api"
	"fintrack-server/src/config"
	"fintrack-server/src/db"
	sqldb "fintrack-server/src/db/sql"
	"fintrack-server/src/handlers"
)

func main() {
	cfg := config.Load()
	handlers.Development = !cfg.IsProduction()

	// Connect to database (retries until reachable)
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	db.InitCache()

	// Analysis pipeline
	store := &sqldb.Store{Pool: pool}
	summarizer := ai.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	analysisService := analysis.NewService(store, store, summarizer)

	router := api.NewRouter(pool, cfg, analysisService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Println("API server running on port", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
