package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

const analysisColumns = "id, user_id, month, spending_summary, top_categories, saving_areas, monthly_saving_goal, total_spending, created_at"

// GetAnalysis returns the stored analysis for (user_id, month), or nil when
// none exists.
func GetAnalysis(ctx context.Context, pool *pgxpool.Pool, userID int64, month string) (*models.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE user_id = $1 AND month = $2`

	var a models.Analysis
	err := pool.QueryRow(ctx, query, userID, month).Scan(
		&a.ID, &a.UserID, &a.Month, &a.SpendingSummary, &a.TopCategories,
		&a.SavingAreas, &a.MonthlySavingGoal, &a.TotalSpending, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// UpsertAnalysis stores a freshly generated analysis, replacing any cached one
// for the same month.
func UpsertAnalysis(ctx context.Context, pool *pgxpool.Pool, a *models.Analysis) (*models.Analysis, error) {
	query := `
		INSERT INTO analyses (user_id, month, spending_summary, top_categories, saving_areas, monthly_saving_goal, total_spending)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, month) DO UPDATE
		SET spending_summary = EXCLUDED.spending_summary,
		    top_categories = EXCLUDED.top_categories,
		    saving_areas = EXCLUDED.saving_areas,
		    monthly_saving_goal = EXCLUDED.monthly_saving_goal,
		    total_spending = EXCLUDED.total_spending,
		    created_at = NOW()
		RETURNING ` + analysisColumns

	var stored models.Analysis
	err := pool.QueryRow(ctx, query,
		a.UserID, a.Month, a.SpendingSummary, a.TopCategories, a.SavingAreas,
		a.MonthlySavingGoal, a.TotalSpending).Scan(
		&stored.ID, &stored.UserID, &stored.Month, &stored.SpendingSummary,
		&stored.TopCategories, &stored.SavingAreas, &stored.MonthlySavingGoal,
		&stored.TotalSpending, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Store adapts the pool-backed functions above to the interfaces the analysis
// service consumes.
type Store struct {
	Pool *pgxpool.Pool
}

func (s *Store) TransactionsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Transaction, error) {
	return GetTransactionsInRange(ctx, s.Pool, userID, start, end)
}

func (s *Store) GetAnalysis(ctx context.Context, userID int64, month string) (*models.Analysis, error) {
	return GetAnalysis(ctx, s.Pool, userID, month)
}

func (s *Store) UpsertAnalysis(ctx context.Context, a *models.Analysis) (*models.Analysis, error) {
	return UpsertAnalysis(ctx, s.Pool, a)
}
