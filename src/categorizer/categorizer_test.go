package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fintrack-server/src/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		description string
		want        models.Category
	}{
		{"Starbucks coffee", models.CategoryFood},
		{"WHOLE FOODS GROCERY", models.CategoryFood},
		{"Monthly rent payment", models.CategoryRent},
		{"Mortgage installment", models.CategoryRent},
		{"Uber trip downtown", models.CategoryTransport},
		{"Shell fuel station", models.CategoryTransport},
		{"Amazon order #1234", models.CategoryShopping},
		{"Netflix", models.CategorySubscriptions},
		{"Spotify premium", models.CategorySubscriptions},
		{"Electric company", models.CategoryUtilities},
		{"Internet provider invoice", models.CategoryUtilities},
		{"Cinema tickets", models.CategoryEntertainment},
		{"Dental cleaning", models.CategoryHealthcare},
		{"Pharmacy refill", models.CategoryHealthcare},
		{"Wire transfer 99812", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.description))
		})
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Categorize("NETFLIX SUBSCRIPTION"), Categorize("netflix subscription"))
	assert.Equal(t, models.CategoryFood, Categorize("PIZZA PLACE"))
}

// "gas" is a keyword of both transport and utilities; transport is declared
// first so it must win.
func TestCategorizePriorityOrder(t *testing.T) {
	assert.Equal(t, models.CategoryTransport, Categorize("gas"))
	assert.Equal(t, models.CategoryTransport, Categorize("city gas works"))
}

// "rent" is a substring of "restaurant"-free descriptions like "rental";
// substring semantics are intentional.
func TestCategorizeSubstringMatch(t *testing.T) {
	assert.Equal(t, models.CategoryRent, Categorize("car rental agency"))
	assert.Equal(t, models.CategoryFood, Categorize("il ristorante food house"))
}
