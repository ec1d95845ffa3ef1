package analysis

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"fintrack-server/src/models"
)

// SummaryResult is what a Summarizer produces for one month of spending.
type SummaryResult struct {
	SpendingSummary   string
	SavingAreas       []string
	MonthlySavingGoal float64
}

// Summarizer turns aggregated spending figures into a natural-language
// summary. Implementations live in the ai package.
type Summarizer interface {
	Summarize(ctx context.Context, txCount int, totals map[models.Category]float64, total float64) (SummaryResult, error)
}

// TransactionSource provides the transactions of one user inside a date range.
type TransactionSource interface {
	TransactionsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Transaction, error)
}

// Store persists generated analyses. GetAnalysis returns (nil, nil) when no
// analysis exists for the month.
type Store interface {
	GetAnalysis(ctx context.Context, userID int64, month string) (*models.Analysis, error)
	UpsertAnalysis(ctx context.Context, a *models.Analysis) (*models.Analysis, error)
}

// Service runs the monthly analysis pipeline: fetch transactions, aggregate,
// summarize, persist.
type Service struct {
	transactions TransactionSource
	store        Store
	summarizer   Summarizer
}

func NewService(transactions TransactionSource, store Store, summarizer Summarizer) *Service {
	return &Service{
		transactions: transactions,
		store:        store,
		summarizer:   summarizer,
	}
}

// GetOrCreate returns the stored analysis for the month if one exists, without
// recomputation. Otherwise it generates, persists and returns a fresh one.
func (s *Service) GetOrCreate(ctx context.Context, userID int64, month string) (*models.Analysis, error) {
	existing, err := s.store.GetAnalysis(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("looking up analysis for %s: %w", month, err)
	}
	if existing != nil {
		return existing, nil
	}
	return s.Generate(ctx, userID, month)
}

// Generate always recomputes the month's analysis and upserts it, overwriting
// any cached record. The unique (user_id, month) index makes concurrent
// generations collapse onto a single stored row.
func (s *Service) Generate(ctx context.Context, userID int64, month string) (*models.Analysis, error) {
	start, end, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.TransactionsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for %s: %w", month, err)
	}

	total, totals := Aggregate(transactions)

	summary, err := s.summarizer.Summarize(ctx, len(transactions), totals, total)
	if err != nil {
		// The summarizer contract is to fall back internally, so reaching
		// this branch is unexpected. Substitute a stub rather than failing
		// the request.
		log.Printf("ERROR: Summarizer failed for user %d, month %s: %v", userID, month, err)
		summary = SummaryResult{
			SpendingSummary:   "Unable to generate AI analysis at this time",
			SavingAreas:       []string{},
			MonthlySavingGoal: math.Round(total * 0.10),
		}
	}

	result := &models.Analysis{
		UserID:            userID,
		Month:             month,
		SpendingSummary:   summary.SpendingSummary,
		TopCategories:     TopCategories(totals, 5),
		SavingAreas:       summary.SavingAreas,
		MonthlySavingGoal: summary.MonthlySavingGoal,
		TotalSpending:     total,
	}

	stored, err := s.store.UpsertAnalysis(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("storing analysis for %s: %w", month, err)
	}

	log.Printf("INFO: Generated analysis for user %d, month %s: %d transactions, total %.2f",
		userID, month, len(transactions), total)
	return stored, nil
}
