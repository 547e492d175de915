package catalog

import (
	"strings"

	"foodwala-storefront/shop-svc/internal/domain"
)

const AllCategories = "all"

// Filter keeps items in category whose name or description contains term.
// Both checks are case-insensitive; an empty or "all" category matches
// everything.
func Filter(items []domain.CatalogItem, category, term string) []domain.CatalogItem {
	category = strings.TrimSpace(category)
	term = strings.ToLower(strings.TrimSpace(term))

	filtered := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if category != "" && !strings.EqualFold(category, AllCategories) && !strings.EqualFold(item.Category, category) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Name), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Categories lists the distinct categories in first-seen order.
func Categories(items []domain.CatalogItem) []string {
	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range items {
		key := strings.ToLower(item.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, item.Category)
	}
	return categories
}

func FindItem(items []domain.CatalogItem, itemID string) (domain.CatalogItem, bool) {
	for _, item := range items {
		if item.ID == itemID {
			return item, true
		}
	}
	return domain.CatalogItem{}, false
}
