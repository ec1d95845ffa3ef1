package categorizer

import (
	"strings"

	"fintrack-server/src/models"
)

// Keyword table for each category. Matching is case-insensitive substring
// matching over the transaction description; categories are tried in
// models.Categories order and the first hit wins, so a keyword listed under
// two categories (e.g. "gas" under transport and utilities) resolves to the
// earlier one.
var categoryKeywords = map[models.Category][]string{
	models.CategoryFood: {
		"restaurant", "food", "grocery", "pizza", "burger", "coffee", "cafe",
		"meal", "lunch", "dinner", "breakfast", "drink", "bakery",
	},
	models.CategoryRent: {
		"rent", "landlord", "lease", "mortgage", "property", "housing",
	},
	models.CategoryTransport: {
		"uber", "taxi", "gas", "fuel", "transit", "metro", "train", "bus",
		"parking", "car", "vehicle", "transport",
	},
	models.CategoryShopping: {
		"amazon", "mall", "store", "shop", "retail", "clothes", "apparel",
		"market", "purchase", "buy",
	},
	models.CategorySubscriptions: {
		"subscription", "netflix", "spotify", "gym", "membership", "monthly",
		"adobe", "disney", "hulu",
	},
	models.CategoryUtilities: {
		"electric", "water", "gas", "internet", "phone", "utility", "bill",
	},
	models.CategoryEntertainment: {
		"movie", "cinema", "concert", "ticket", "game", "gaming",
		"entertainment", "leisure",
	},
	models.CategoryHealthcare: {
		"hospital", "doctor", "pharmacy", "medicine", "medical", "health",
		"clinic", "dental",
	},
}

// Categorize maps a free-text transaction description to a category.
// Descriptions that match no keyword fall through to CategoryOther.
func Categorize(description string) models.Category {
	lower := strings.ToLower(description)

	for _, category := range models.Categories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}

	return models.CategoryOther
}
