package models

// Category is the closed set of spending categories. Declaration order matters:
// the categorizer tries categories in this order and the first match wins.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryRent          Category = "rent"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategorySubscriptions Category = "subscriptions"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryOther         Category = "other"
)

// Categories lists every category in priority order.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryTransport,
	CategoryShopping,
	CategorySubscriptions,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
