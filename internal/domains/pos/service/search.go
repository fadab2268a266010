package service

import (
	productModel "hotelops/internal/domains/product/model"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MinSimilarity is the levenshtein similarity a misspelt query needs to match a product.
const MinSimilarity = 0.6

var matcherSubsets = []int{2, 3}

// SearchResult lists the matching products. Suggestion names the closest product
// when the query matched nothing.
type SearchResult struct {
	Products   []productModel.Product
	Suggestion string
}

// Search filters by category ("all" or empty for every category) and then by name.
// Names match by substring after transliteration and lower-casing; when nothing
// matches, names with a close spelling are returned instead.
func Search(products []productModel.Product, category, query string) SearchResult {
	inCategory := make([]productModel.Product, 0, len(products))

	for _, product := range products {
		if category == "" || category == productModel.CategoryAll || product.Category == category {
			inCategory = append(inCategory, product)
		}
	}

	needle := normalize(query)
	if needle == "" {
		return SearchResult{Products: inCategory}
	}

	matched := []productModel.Product{}

	for _, product := range inCategory {
		if strings.Contains(normalize(product.Name), needle) {
			matched = append(matched, product)
		}
	}

	if len(matched) > 0 {
		return SearchResult{Products: matched}
	}

	for _, product := range inCategory {
		if bestSimilarity(needle, normalize(product.Name)) >= MinSimilarity {
			matched = append(matched, product)
		}
	}

	result := SearchResult{Products: matched}
	if len(matched) == 0 {
		result.Suggestion = closest(inCategory, needle)
	}

	return result
}

func normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(input)))
}

// bestSimilarity compares the query with the whole name and each of its words.
func bestSimilarity(query, name string) float64 {
	best := similarity(query, name)

	for _, word := range strings.Fields(name) {
		if s := similarity(query, word); s > best {
			best = s
		}
	}

	return best
}

func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1
	}

	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)

	return 1 - float64(distance)/float64(maxLen)
}

func closest(products []productModel.Product, query string) string {
	if len(products) == 0 {
		return ""
	}

	names := make([]string, 0, len(products))
	byName := make(map[string]string, len(products))

	for _, product := range products {
		key := normalize(product.Name)
		if _, ok := byName[key]; ok {
			continue
		}

		byName[key] = product.Name
		names = append(names, key)
	}

	return byName[closestmatch.New(names, matcherSubsets).Closest(query)]
}
