package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const transactionColumns = "id, user_id, date, description, amount, category, source, created_at"

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, date, description, amount, category, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns
	row := pool.QueryRow(ctx, query,
		tx.UserID, tx.Date, tx.Description, tx.Amount, tx.Category, tx.Source)
	return scanTransaction(row)
}

// BulkInsertTransactions inserts imported transactions via COPY and returns
// the number of rows written.
func BulkInsertTransactions(ctx context.Context, pool *pgxpool.Pool, transactions []models.Transaction) (int64, error) {
	rows := make([][]interface{}, len(transactions))
	for i, tx := range transactions {
		rows[i] = []interface{}{tx.UserID, tx.Date, tx.Description, tx.Amount, string(tx.Category), tx.Source}
	}

	count, err := pool.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"user_id", "date", "description", "amount", "category", "source"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk insert: %w", err)
	}
	return count, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
}

// ListTransactions returns the user's transactions sorted by date descending,
// optionally narrowed to a date range and a category.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, startDate, endDate *time.Time, category string) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if startDate != nil {
		args = append(args, *startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if category != "" && category != "all" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func GetTransactionsInRange(ctx context.Context, pool *pgxpool.Pool, userID int64, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`
	rows, err := pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET date = $1, description = $2, amount = $3, category = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + transactionColumns
	row := pool.QueryRow(ctx, query,
		tx.Date, tx.Description, tx.Amount, tx.Category, tx.ID, tx.UserID)
	return scanTransaction(row)
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Date, &tx.Description, &tx.Amount, &tx.Category, &tx.Source, &tx.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Date, &tx.Description, &tx.Amount, &tx.Category, &tx.Source, &tx.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
