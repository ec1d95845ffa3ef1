package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

var ErrUserNotFound = errors.New("user not found")

func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, passwordHash string) (*models.RegisterResponse, error) {
	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, first_name, last_name
	`
	var resp models.RegisterResponse
	err := pool.QueryRow(ctx, query, req.Username, req.Email, req.FirstName, req.LastName, passwordHash).
		Scan(&resp.ID, &resp.Username, &resp.Email, &resp.FirstName, &resp.LastName)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.User, error) {
	return scanUser(pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	return scanUser(pool.QueryRow(ctx, userSelect+` WHERE LOWER(username) = LOWER($1)`, username))
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	return scanUser(pool.QueryRow(ctx, userSelect+` WHERE LOWER(email) = LOWER($1)`, email))
}

const userSelect = `
	SELECT id, username, email, first_name, last_name, password_hash, created_at
	FROM users`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}
