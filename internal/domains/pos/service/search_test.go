package service_test

import (
	"hotelops/internal/domains/pos/service"
	productModel "hotelops/internal/domains/product/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

var catalog = []productModel.Product{
	{ID: "p1", Name: "Coffee", Category: "drinks", Price: 150},
	{ID: "p2", Name: "Crème Brûlée", Category: "desserts", Price: 300},
	{ID: "p3", Name: "Soda", Category: "drinks", Price: 100},
	{ID: "p4", Name: "Chicken Sandwich", Category: "food", Price: 450},
}

func ids(products []productModel.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}

	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		query      string
		want       []string
		suggestion string
	}{
		{name: "everything", category: productModel.CategoryAll, want: []string{"p1", "p2", "p3", "p4"}},
		{name: "empty category is all", want: []string{"p1", "p2", "p3", "p4"}},
		{name: "category only", category: "drinks", want: []string{"p1", "p3"}},
		{name: "substring", category: productModel.CategoryAll, query: "sand", want: []string{"p4"}},
		{name: "case and accents ignored", category: productModel.CategoryAll, query: "CREME brulee", want: []string{"p2"}},
		{name: "category and query", category: "drinks", query: "o", want: []string{"p1", "p3"}},
		{name: "misspelt query", category: productModel.CategoryAll, query: "cofee", want: []string{"p1"}},
		{name: "misspelt word of a longer name", category: productModel.CategoryAll, query: "chiken", want: []string{"p4"}},
		{name: "unknown category", category: "spa", query: "coffee", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := service.Search(catalog, tt.category, tt.query)

			assert.Equal(t, tt.want, ids(res.Products))
			assert.Equal(t, tt.suggestion, res.Suggestion)
		})
	}
}

func TestSearchSuggestsClosestName(t *testing.T) {
	res := service.Search(catalog, productModel.CategoryAll, "coffee latte xl")

	assert.Empty(t, res.Products)
	assert.Equal(t, "Coffee", res.Suggestion)
}
