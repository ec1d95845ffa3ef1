package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/categorizer"
	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/importer"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

const uploadDir = "uploads"

func ListTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		startParam := r.URL.Query().Get("startDate")
		endParam := r.URL.Query().Get("endDate")
		category := r.URL.Query().Get("category")

		var startDate, endDate *time.Time
		if startParam != "" {
			parsed, err := util.ParseDate(startParam)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid startDate", err)
				return
			}
			startDate = &parsed
		}
		if endParam != "" {
			parsed, err := util.ParseDate(endParam)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid endDate", err)
				return
			}
			endDate = &parsed
		}

		cacheKey := cache.TransactionListKey(userID, startParam, endParam, category)
		if cached, found := cache.Cache.Get(cacheKey); found {
			respondJSON(w, http.StatusOK, cached)
			return
		}

		transactions, err := db.ListTransactions(r.Context(), pool, userID, startDate, endDate, category)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Server error fetching transactions", err)
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		cache.SetTransactionCache(cacheKey, transactions)
		respondJSON(w, http.StatusOK, transactions)
	}
}

func GetTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid transaction id", err)
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found", nil)
				return
			}
			log.Printf("ERROR: Failed to get transaction %d for user %d: %v", transactionID, userID, err)
			respondError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		respondJSON(w, http.StatusOK, transaction)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req struct {
			Date        string   `json:"date"`
			Description string   `json:"description"`
			Amount      *float64 `json:"amount"`
			Category    string   `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			respondError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		if req.Date == "" || req.Description == "" || req.Amount == nil {
			respondError(w, http.StatusBadRequest, "Missing required fields", nil)
			return
		}
		date, err := util.ParseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date", err)
			return
		}

		category := models.Category(req.Category)
		if req.Category == "" || req.Category == "auto" {
			category = categorizer.Categorize(req.Description)
		} else if !category.Valid() {
			respondError(w, http.StatusBadRequest, "invalid category", nil)
			return
		}

		transaction := &models.Transaction{
			UserID:      userID,
			Date:        date,
			Description: req.Description,
			Amount:      *req.Amount,
			Category:    category,
			Source:      models.SourceManual,
		}
		created, err := db.CreateTransaction(r.Context(), pool, transaction)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Server error creating transaction", err)
			return
		}

		cache.InvalidateUserTransactions(userID)
		log.Printf("INFO: Created transaction id %d for user %d, category %s", created.ID, userID, created.Category)
		respondJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid transaction id", err)
			return
		}

		var req struct {
			Date        string   `json:"date"`
			Description string   `json:"description"`
			Amount      *float64 `json:"amount"`
			Category    string   `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			respondError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found", nil)
				return
			}
			log.Printf("ERROR: Failed to get transaction %d for user %d: %v", transactionID, userID, err)
			respondError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		// Only provided fields change; source stays immutable after creation.
		if req.Date != "" {
			date, err := util.ParseDate(req.Date)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid date", err)
				return
			}
			transaction.Date = date
		}
		if req.Description != "" {
			transaction.Description = req.Description
		}
		if req.Amount != nil {
			transaction.Amount = *req.Amount
		}
		if req.Category != "" {
			category := models.Category(req.Category)
			if !category.Valid() {
				respondError(w, http.StatusBadRequest, "invalid category", nil)
				return
			}
			transaction.Category = category
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, transaction)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction %d for user %d: %v", transactionID, userID, err)
			respondError(w, http.StatusInternalServerError, "Server error updating transaction", err)
			return
		}

		cache.InvalidateUserTransactions(userID)
		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		respondJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid transaction id", err)
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found", nil)
				return
			}
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", transactionID, userID, err)
			respondError(w, http.StatusInternalServerError, "Server error deleting transaction", err)
			return
		}

		cache.InvalidateUserTransactions(userID)
		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
	}
}

// UploadTransactions accepts a multipart CSV (header: date, description,
// amount), categorizes every row and bulk-inserts the result with
// source=csv_upload. The uploaded file is written to a temp path and removed
// whether or not processing succeeds.
func UploadTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "No file provided", err)
			return
		}
		defer file.Close()

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Printf("ERROR: Failed to create upload dir: %v", err)
			respondError(w, http.StatusInternalServerError, "Error processing CSV file", err)
			return
		}
		tmpPath := filepath.Join(uploadDir, uuid.NewString()+".csv")

		dst, err := os.Create(tmpPath)
		if err != nil {
			log.Printf("ERROR: Failed to create temp upload file: %v", err)
			respondError(w, http.StatusInternalServerError, "Error processing CSV file", err)
			return
		}
		defer os.Remove(tmpPath)

		if _, err := io.Copy(dst, file); err != nil {
			dst.Close()
			log.Printf("ERROR: Failed to write temp upload file: %v", err)
			respondError(w, http.StatusInternalServerError, "Error processing CSV file", err)
			return
		}
		dst.Close()

		src, err := os.Open(tmpPath)
		if err != nil {
			log.Printf("ERROR: Failed to reopen temp upload file: %v", err)
			respondError(w, http.StatusInternalServerError, "Error processing CSV file", err)
			return
		}
		transactions, err := importer.ParseCSV(src, userID)
		src.Close()
		if err != nil {
			log.Printf("ERROR: Failed to parse uploaded CSV for user %d: %v", userID, err)
			respondError(w, http.StatusBadRequest, "Error processing CSV file", err)
			return
		}

		count, err := db.BulkInsertTransactions(r.Context(), pool, transactions)
		if err != nil {
			log.Printf("ERROR: Failed to bulk insert transactions for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Error processing CSV file", err)
			return
		}

		cache.InvalidateUserTransactions(userID)
		log.Printf("INFO: Uploaded %d transactions for user %d", count, userID)
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": strconv.FormatInt(count, 10) + " transactions uploaded successfully",
			"count":   count,
		})
	}
}
