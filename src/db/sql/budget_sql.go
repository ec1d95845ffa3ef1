package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

var ErrBudgetNotFound = errors.New("budget not found")

const budgetColumns = "id, user_id, month, total_budget, category_budgets, created_at, updated_at"

func GetBudget(ctx context.Context, pool *pgxpool.Pool, userID int64, month string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2`
	return scanBudget(pool.QueryRow(ctx, query, userID, month))
}

// UpsertBudget creates or replaces the budget for (user_id, month). The unique
// index on that pair keeps one record per month even under concurrent saves.
func UpsertBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, month, total_budget, category_budgets)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, month) DO UPDATE
		SET total_budget = EXCLUDED.total_budget,
		    category_budgets = EXCLUDED.category_budgets,
		    updated_at = NOW()
		RETURNING ` + budgetColumns
	row := pool.QueryRow(ctx, query,
		budget.UserID, budget.Month, budget.TotalBudget, budget.CategoryBudgets)
	return scanBudget(row)
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID int64, month string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND month = $2`, userID, month)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Month, &b.TotalBudget, &b.CategoryBudgets, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}
