package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

const tokenLifetime = 168 * time.Hour

func issueToken(user *models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func Register(pool *pgxpool.Pool, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			respondError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			respondError(w, http.StatusBadRequest, "invalid email format", nil)
			return
		}
		if !util.ValidateUsername(req.Username) {
			log.Printf("ERROR: Username validation failed during registration - Username: %s", req.Username)
			respondError(w, http.StatusBadRequest, "username must be between 3 and 30 characters", nil)
			return
		}
		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Username: %s", req.Username)
			respondError(w, http.StatusBadRequest, "password must be at least 8 characters", nil)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", req.Username, err)
			respondError(w, http.StatusInternalServerError, "internal error", err)
			return
		}

		created, err := db.CreateUser(r.Context(), pool, req, string(hashedPassword))
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - email or username already exists - Email: %s, Username: %s", req.Email, req.Username)
				respondError(w, http.StatusBadRequest, "email or username already exists", nil)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Username, err)
			respondError(w, http.StatusInternalServerError, "internal error", err)
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", created.Username, created.ID)

		tokenString, err := issueToken(&models.User{ID: created.ID, Username: created.Username}, jwtSecret)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", created.Username, err)
			respondError(w, http.StatusInternalServerError, "Error generating token", err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"token": tokenString,
			"user":  created,
		})
	}
}

func Login(pool *pgxpool.Pool, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			respondError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		identifier := strings.TrimSpace(credentials.Email)
		if identifier == "" {
			identifier = strings.TrimSpace(credentials.Username)
		}

		user, err := db.GetUserByEmail(r.Context(), pool, identifier)
		if err != nil {
			user, err = db.GetUserByUsername(r.Context(), pool, identifier)
			if err != nil {
				log.Printf("ERROR: Failed to find user during login - %s: %v", identifier, err)
				respondError(w, http.StatusUnauthorized, "Invalid credentials", nil)
				return
			}
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for user %s", user.Username)
			respondError(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}

		tokenString, err := issueToken(user, jwtSecret)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.Username, err)
			respondError(w, http.StatusInternalServerError, "Error generating token", err)
			return
		}

		log.Printf("INFO: Successful login - User: %s", user.Username)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"token": tokenString,
			"user":  user,
		})
	}
}
