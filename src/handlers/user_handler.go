package handlers

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
)

// Me returns the authenticated user's profile.
func Me(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user - user_id: %d: %v", userID, err)
			respondError(w, http.StatusNotFound, "user not found", err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
