package inventory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"foodflow/domain"
)

// QueryItems applies the location filter, the sort order and the name filter
// to items, in that order. The input slice is left untouched.
func QueryItems(items []domain.InventoryItem, location domain.Location, order domain.SortOrder, nameQuery string, now time.Time) []domain.InventoryItem {
	return FilterByName(SortItems(FilterByLocation(items, location), order, now), nameQuery)
}

// FilterByLocation keeps items stored at location. LocationAll keeps all.
func FilterByLocation(items []domain.InventoryItem, location domain.Location) []domain.InventoryItem {
	if location == domain.LocationAll {
		return slices.Clone(items)
	}

	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.Location == location {
			out = append(out, item)
		}
	}
	return out
}

// SortItems returns a stably sorted copy of items. Unknown orders keep the
// input order.
func SortItems(items []domain.InventoryItem, order domain.SortOrder, now time.Time) []domain.InventoryItem {
	out := slices.Clone(items)

	switch order {
	case domain.SortByName, domain.SortAlphabetical:
		slices.SortStableFunc(out, func(a, b domain.InventoryItem) int {
			return strings.Compare(a.Name, b.Name)
		})
	case domain.SortByExpiration:
		slices.SortStableFunc(out, func(a, b domain.InventoryItem) int {
			return strings.Compare(a.ExpirationDate, b.ExpirationDate)
		})
	case domain.SortByQuantity:
		slices.SortStableFunc(out, func(a, b domain.InventoryItem) int {
			return cmp.Compare(a.Quantity, b.Quantity)
		})
	case domain.SortDaysLeft:
		type keyed struct {
			item domain.InventoryItem
			days int64
		}
		ks := make([]keyed, len(out))
		for i, item := range out {
			ks[i] = keyed{item: item, days: DaysRemaining(item.ExpirationDate, now)}
		}
		slices.SortStableFunc(ks, func(a, b keyed) int {
			return cmp.Compare(a.days, b.days)
		})
		for i := range ks {
			out[i] = ks[i].item
		}
	}

	return out
}

// FilterByName keeps items whose name contains query, ignoring case. A blank
// query keeps everything.
func FilterByName(items []domain.InventoryItem, query string) []domain.InventoryItem {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(items)
	}

	q := strings.ToLower(query)
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

// FindDuplicate returns the first item whose name equals name, ignoring case.
func FindDuplicate(items []domain.InventoryItem, name string) (domain.InventoryItem, bool) {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return domain.InventoryItem{}, false
}
