package models

import "time"

// CategoryAmount is one entry of a top-categories ranking. A slice keeps the
// descending-by-amount order that a plain map would lose.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// Analysis is the persisted result of the monthly analysis pipeline. It acts
// as a cache: once stored for a (user_id, month) pair it is returned as-is
// unless regeneration is explicitly requested.
type Analysis struct {
	ID                int64            `json:"id"`
	UserID            int64            `json:"user_id"`
	Month             string           `json:"month"` // "YYYY-MM"
	SpendingSummary   string           `json:"spending_summary"`
	TopCategories     []CategoryAmount `json:"top_categories"`
	SavingAreas       []string         `json:"saving_areas"`
	MonthlySavingGoal float64          `json:"monthly_saving_goal"`
	TotalSpending     float64          `json:"total_spending"`
	CreatedAt         time.Time        `json:"created_at"`
}
