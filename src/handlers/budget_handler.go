package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func monthParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := chi.URLParam(r, "month")
	if !util.ValidateMonth(month) {
		respondError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM", nil)
		return "", false
	}
	return month, true
}

func GetBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		month, ok := monthParam(w, r)
		if !ok {
			return
		}

		budget, err := db.GetBudget(r.Context(), pool, userID, month)
		if err != nil {
			if errors.Is(err, db.ErrBudgetNotFound) {
				respondError(w, http.StatusNotFound, "Budget not found for this month", nil)
				return
			}
			log.Printf("ERROR: Failed to get budget for user %d, month %s: %v", userID, month, err)
			respondError(w, http.StatusInternalServerError, "Server error fetching budget", err)
			return
		}

		respondJSON(w, http.StatusOK, budget)
	}
}

// SaveBudget creates or replaces the month's budget.
func SaveBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		month, ok := monthParam(w, r)
		if !ok {
			return
		}

		var req struct {
			TotalBudget     float64            `json:"total_budget"`
			CategoryBudgets map[string]float64 `json:"category_budgets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode save budget request body for user %d: %v", userID, err)
			respondError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		if req.TotalBudget <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid total budget", nil)
			return
		}
		if req.CategoryBudgets == nil {
			req.CategoryBudgets = map[string]float64{}
		}
		for category := range req.CategoryBudgets {
			if !models.Category(category).Valid() {
				respondError(w, http.StatusBadRequest, "invalid category in category_budgets", nil)
				return
			}
		}

		budget := &models.Budget{
			UserID:          userID,
			Month:           month,
			TotalBudget:     req.TotalBudget,
			CategoryBudgets: req.CategoryBudgets,
		}
		saved, err := db.UpsertBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to save budget for user %d, month %s: %v", userID, month, err)
			respondError(w, http.StatusInternalServerError, "Server error saving budget", err)
			return
		}

		log.Printf("INFO: Saved budget id %d for user %d, month %s", saved.ID, userID, month)
		respondJSON(w, http.StatusCreated, saved)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		month, ok := monthParam(w, r)
		if !ok {
			return
		}

		if err := db.DeleteBudget(r.Context(), pool, userID, month); err != nil {
			if errors.Is(err, db.ErrBudgetNotFound) {
				respondError(w, http.StatusNotFound, "Budget not found", nil)
				return
			}
			log.Printf("ERROR: Failed to delete budget for user %d, month %s: %v", userID, month, err)
			respondError(w, http.StatusInternalServerError, "Server error deleting budget", err)
			return
		}

		log.Printf("INFO: Deleted budget for user %d, month %s", userID, month)
		respondJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted successfully"})
	}
}
