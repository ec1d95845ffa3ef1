package analysis

import (
	"fmt"
	"sort"
	"time"

	"fintrack-server/src/models"
)

// Aggregate sums transaction amounts overall and per category. Signs are
// preserved; refunds recorded as negative amounts reduce the totals. An empty
// input yields 0 and an empty map.
func Aggregate(transactions []models.Transaction) (float64, map[models.Category]float64) {
	totals := make(map[models.Category]float64)
	var total float64

	for _, tx := range transactions {
		total += tx.Amount
		totals[tx.Category] += tx.Amount
	}

	return total, totals
}

// TopCategories ranks category totals descending by amount and returns at most
// n entries. Equal amounts are ordered by category name so the ranking is
// deterministic regardless of map iteration order.
func TopCategories(totals map[models.Category]float64, n int) []models.CategoryAmount {
	ranked := make([]models.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		ranked = append(ranked, models.CategoryAmount{Category: category, Amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthRange resolves a "YYYY-MM" month key into the inclusive first and last
// calendar day of that month.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}
