package catalog

import (
	"strings"

	"github.com/UnknownOlympus/bazaar/internal/models"
)

// Filter keeps the products whose title or description contains text, ignoring case.
// Order is preserved and an empty text keeps everything.
func Filter(products []models.ProductWithDistance, text string) []models.ProductWithDistance {
	if text == "" {
		return products
	}

	needle := strings.ToLower(text)
	filtered := make([]models.ProductWithDistance, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), needle) ||
			strings.Contains(strings.ToLower(product.Description), needle) {
			filtered = append(filtered, product)
		}
	}

	return filtered
}
