package models

import "time"

// Budget holds one month's spending plan. There is exactly one budget per
// (user_id, month) pair, enforced by a unique index.
type Budget struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	Month           string             `json:"month"` // "YYYY-MM"
	TotalBudget     float64            `json:"total_budget"`
	CategoryBudgets map[string]float64 `json:"category_budgets"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
