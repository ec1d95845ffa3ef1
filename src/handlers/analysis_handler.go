package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/analysis"
	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/util"
)

// GetAnalysis returns the month's analysis, generating and storing one when
// none exists yet.
func GetAnalysis(svc *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		month, ok := monthParam(w, r)
		if !ok {
			return
		}

		cacheKey := cache.AnalysisKey(userID, month)
		if cached, found := cache.Cache.Get(cacheKey); found {
			respondJSON(w, http.StatusOK, cached)
			return
		}

		result, err := svc.GetOrCreate(r.Context(), userID, month)
		if err != nil {
			log.Printf("ERROR: Failed to fetch analysis for user %d, month %s: %v", userID, month, err)
			respondError(w, http.StatusInternalServerError, "Server error fetching analysis", err)
			return
		}

		cache.SetAnalysisCache(cacheKey, result)
		respondJSON(w, http.StatusOK, result)
	}
}

// GenerateAnalysis recomputes the month's analysis unconditionally.
func GenerateAnalysis(svc *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		month, ok := monthParam(w, r)
		if !ok {
			return
		}

		result, err := svc.Generate(r.Context(), userID, month)
		if err != nil {
			log.Printf("ERROR: Failed to generate analysis for user %d, month %s: %v", userID, month, err)
			respondError(w, http.StatusInternalServerError, "Error generating analysis", err)
			return
		}

		cache.SetAnalysisCache(cache.AnalysisKey(userID, month), result)
		respondJSON(w, http.StatusCreated, result)
	}
}

// PeriodSummary aggregates spending over an arbitrary date range without
// persisting anything.
func PeriodSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		startParam := r.URL.Query().Get("startDate")
		endParam := r.URL.Query().Get("endDate")
		if startParam == "" || endParam == "" {
			respondError(w, http.StatusBadRequest, "startDate and endDate are required", nil)
			return
		}
		start, err := util.ParseDate(startParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid startDate", err)
			return
		}
		end, err := util.ParseDate(endParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid endDate", err)
			return
		}

		transactions, err := db.GetTransactionsInRange(r.Context(), pool, userID, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to fetch period summary for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Server error fetching summary", err)
			return
		}

		total, totals := analysis.Aggregate(transactions)
		categoryTotals := make(map[string]float64, len(totals))
		for category, amount := range totals {
			categoryTotals[string(category)] = amount
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"total_spending":    total,
			"category_totals":   categoryTotals,
			"transaction_count": len(transactions),
			"period": map[string]string{
				"start_date": startParam,
				"end_date":   endParam,
			},
		})
	}
}

// HealthCheck is the unauthenticated liveness probe.
func HealthCheck(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":      "Backend is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": environment,
		})
	}
}
