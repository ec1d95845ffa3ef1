package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func tx(amount float64, category models.Category) models.Transaction {
	return models.Transaction{Amount: amount, Category: category}
}

func TestAggregateEmpty(t *testing.T) {
	total, totals := Aggregate(nil)
	assert.Equal(t, float64(0), total)
	assert.Empty(t, totals)
}

func TestAggregate(t *testing.T) {
	total, totals := Aggregate([]models.Transaction{
		tx(100, models.CategoryFood),
		tx(50.5, models.CategoryFood),
		tx(200, models.CategoryRent),
		tx(-20, models.CategoryShopping),
	})

	assert.InDelta(t, 330.5, total, 1e-9)
	assert.InDelta(t, 150.5, totals[models.CategoryFood], 1e-9)
	assert.InDelta(t, 200, totals[models.CategoryRent], 1e-9)
	assert.InDelta(t, -20, totals[models.CategoryShopping], 1e-9)

	// Per-category totals always sum back to the overall total.
	var sum float64
	for _, v := range totals {
		sum += v
	}
	assert.InDelta(t, total, sum, 1e-9)
}

func TestTopCategories(t *testing.T) {
	totals := map[models.Category]float64{
		models.CategoryFood:          600,
		models.CategoryRent:          900,
		models.CategoryTransport:     100,
		models.CategoryShopping:      250,
		models.CategorySubscriptions: 40,
		models.CategoryUtilities:     80,
	}

	top := TopCategories(totals, 5)
	require.Len(t, top, 5)
	assert.Equal(t, models.CategoryRent, top[0].Category)
	assert.Equal(t, models.CategoryFood, top[1].Category)
	assert.Equal(t, models.CategoryShopping, top[2].Category)
	assert.Equal(t, models.CategoryTransport, top[3].Category)
	assert.Equal(t, models.CategoryUtilities, top[4].Category)
}

func TestTopCategoriesTieBreak(t *testing.T) {
	totals := map[models.Category]float64{
		models.CategoryRent: 100,
		models.CategoryFood: 100,
	}

	top := TopCategories(totals, 5)
	require.Len(t, top, 2)
	// Equal amounts fall back to category name order.
	assert.Equal(t, models.CategoryFood, top[0].Category)
	assert.Equal(t, models.CategoryRent, top[1].Category)
}

func TestTopCategoriesEmpty(t *testing.T) {
	assert.Empty(t, TopCategories(map[models.Category]float64{}, 5))
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)

	start, end, err = MonthRange("2023-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRangeInvalid(t *testing.T) {
	_, _, err := MonthRange("2024-13")
	assert.Error(t, err)
	_, _, err = MonthRange("notamonth")
	assert.Error(t, err)
}
