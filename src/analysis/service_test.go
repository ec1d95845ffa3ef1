package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

type fakeTransactionSource struct {
	transactions []models.Transaction
	fetchCalls   int
}

func (f *fakeTransactionSource) TransactionsInRange(_ context.Context, _ int64, start, end time.Time) ([]models.Transaction, error) {
	f.fetchCalls++
	var inRange []models.Transaction
	for _, tx := range f.transactions {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			inRange = append(inRange, tx)
		}
	}
	return inRange, nil
}

type fakeStore struct {
	stored      map[string]*models.Analysis
	upsertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{stored: make(map[string]*models.Analysis)}
}

func (f *fakeStore) GetAnalysis(_ context.Context, _ int64, month string) (*models.Analysis, error) {
	return f.stored[month], nil
}

func (f *fakeStore) UpsertAnalysis(_ context.Context, a *models.Analysis) (*models.Analysis, error) {
	f.upsertCalls++
	copied := *a
	copied.ID = int64(f.upsertCalls)
	f.stored[a.Month] = &copied
	return &copied, nil
}

type stubSummarizer struct {
	calls int
	err   error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ int, totals map[models.Category]float64, total float64) (SummaryResult, error) {
	s.calls++
	if s.err != nil {
		return SummaryResult{}, s.err
	}
	return SummaryResult{
		SpendingSummary:   "stub summary",
		SavingAreas:       []string{"stub area"},
		MonthlySavingGoal: total / 10,
	}, nil
}

func mayTx(day int, amount float64, category models.Category) models.Transaction {
	return models.Transaction{
		Date:     time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		Amount:   amount,
		Category: category,
	}
}

func TestGetOrCreateGeneratesOnce(t *testing.T) {
	source := &fakeTransactionSource{transactions: []models.Transaction{
		mayTx(3, 100, models.CategoryFood),
		mayTx(10, 200, models.CategoryRent),
	}}
	store := newFakeStore()
	summarizer := &stubSummarizer{}
	svc := NewService(source, store, summarizer)

	first, err := svc.GetOrCreate(context.Background(), 1, "2024-05")
	require.NoError(t, err)
	assert.InDelta(t, 300, first.TotalSpending, 1e-9)
	require.Len(t, first.TopCategories, 2)
	assert.Equal(t, models.CategoryRent, first.TopCategories[0].Category)
	assert.InDelta(t, 200, first.TopCategories[0].Amount, 1e-9)
	assert.Equal(t, models.CategoryFood, first.TopCategories[1].Category)

	// Second call is a cache hit: no fetch, no summarization, same record.
	second, err := svc.GetOrCreate(context.Background(), 1, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, source.fetchCalls)
	assert.Equal(t, 1, summarizer.calls)
	assert.Equal(t, 1, store.upsertCalls)
}

func TestGenerateForcesRecompute(t *testing.T) {
	source := &fakeTransactionSource{transactions: []models.Transaction{
		mayTx(3, 100, models.CategoryFood),
		mayTx(10, 200, models.CategoryRent),
	}}
	store := newFakeStore()
	summarizer := &stubSummarizer{}
	svc := NewService(source, store, summarizer)

	_, err := svc.Generate(context.Background(), 1, "2024-05")
	require.NoError(t, err)

	source.transactions = append(source.transactions, mayTx(20, 50, models.CategoryFood))
	regenerated, err := svc.Generate(context.Background(), 1, "2024-05")
	require.NoError(t, err)

	assert.InDelta(t, 350, regenerated.TotalSpending, 1e-9)
	assert.Equal(t, 2, store.upsertCalls)
	require.Len(t, store.stored, 1)
}

func TestGenerateEmptyMonth(t *testing.T) {
	svc := NewService(&fakeTransactionSource{}, newFakeStore(), &stubSummarizer{})

	result, err := svc.Generate(context.Background(), 1, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, float64(0), result.TotalSpending)
	assert.Empty(t, result.TopCategories)
}

func TestGenerateSummarizerErrorSubstitutesStub(t *testing.T) {
	source := &fakeTransactionSource{transactions: []models.Transaction{
		mayTx(1, 1000, models.CategoryFood),
	}}
	svc := NewService(source, newFakeStore(), &stubSummarizer{err: errors.New("model exploded")})

	result, err := svc.Generate(context.Background(), 1, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "Unable to generate AI analysis at this time", result.SpendingSummary)
	assert.Equal(t, float64(100), result.MonthlySavingGoal)
	assert.InDelta(t, 1000, result.TotalSpending, 1e-9)
}

func TestGenerateInvalidMonth(t *testing.T) {
	svc := NewService(&fakeTransactionSource{}, newFakeStore(), &stubSummarizer{})
	_, err := svc.Generate(context.Background(), 1, "05-2024")
	assert.Error(t, err)
}
