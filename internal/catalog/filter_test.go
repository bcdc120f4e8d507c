package catalog_test

import (
	"strings"
	"testing"

	"github.com/UnknownOlympus/bazaar/internal/catalog"
	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, title, description string) models.ProductWithDistance {
	return models.ProductWithDistance{Product: models.Product{
		ID:          id,
		Title:       title,
		Description: description,
		Price:       decimal.RequireFromString("10"),
		Condition:   models.ConditionUsed,
	}}
}

func ids(products []models.ProductWithDistance) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	products := []models.ProductWithDistance{
		product("a", "Chair", "Wooden chair"),
		product("b", "Oak TABLE", "Seats six"),
		product("c", "Lamp", "Goes well with a table"),
		product("d", "Bicicleta", "Aro 29"),
	}

	t.Run("empty text keeps everything", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, products, catalog.Filter(products, ""))
	})

	t.Run("chair scenario", func(t *testing.T) {
		t.Parallel()
		single := []models.ProductWithDistance{product("a", "Chair", "Wooden chair")}

		assert.Equal(t, []string{"a"}, ids(catalog.Filter(single, "chair")))
		assert.Empty(t, catalog.Filter(single, "table"))
	})

	t.Run("matches title or description ignoring case and keeps order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"b", "c"}, ids(catalog.Filter(products, "TaBlE")))
	})

	t.Run("does not match other fields", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, catalog.Filter(products, "used"))
		assert.Empty(t, catalog.Filter(products, "10"))
	})

	t.Run("result is exactly the matching subset", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"a", "CH", "oak", "29", "with", "zzz", " "} {
			got := catalog.Filter(products, text)
			kept := map[string]bool{}
			for _, p := range got {
				kept[p.ID] = true
			}

			needle := strings.ToLower(text)
			for _, p := range products {
				matches := strings.Contains(strings.ToLower(p.Title), needle) ||
					strings.Contains(strings.ToLower(p.Description), needle)
				require.Equal(t, matches, kept[p.ID], "text %q product %s", text, p.ID)
			}
		}
	})
}
