package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/analysis"
	"fintrack-server/src/config"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config, analysisService *analysis.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route not found"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck(cfg.Environment))
		r.Post("/auth/register", handlers.Register(pool, cfg.JWTSecret))
		r.Post("/auth/login", handlers.Login(pool, cfg.JWTSecret))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(cfg.JWTSecret)).Group(func(r chi.Router) {
			r.Get("/auth/me", handlers.Me(pool))

			// Transactions
			r.Get("/transactions", handlers.ListTransactions(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Post("/transactions/upload", handlers.UploadTransactions(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransaction(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Budgets
			r.Get("/budgets/{month}", handlers.GetBudget(pool))
			r.Post("/budgets/{month}", handlers.SaveBudget(pool))
			r.Delete("/budgets/{month}", handlers.DeleteBudget(pool))

			// Analysis
			r.Get("/analysis/summary/period", handlers.PeriodSummary(pool))
			r.Get("/analysis/{month}", handlers.GetAnalysis(analysisService))
			r.Post("/analysis/generate/{month}", handlers.GenerateAnalysis(analysisService))
		})
	})

	return r
}
