package grouping

import (
	"slices"
	"sort"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// Group buckets items by group key and returns the groups in key order,
// each with its items in display-name order.
//
// Keys are recomputed from DisplayName, so items built elsewhere are
// grouped consistently. The input slice is not modified.
func Group(items []domain.Item) []domain.Group {
	if len(items) == 0 {
		return nil
	}

	buckets := make(map[string][]domain.Item)
	for _, item := range items {
		item.GroupKey = Key(item.DisplayName)
		buckets[item.GroupKey] = append(buckets[item.GroupKey], item)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Start from byte order so the mixed numeric/lexical comparison always
	// sees the same input sequence for the same key set.
	sort.Strings(keys)
	slices.SortStableFunc(keys, CompareKeys)

	groups := make([]domain.Group, 0, len(keys))
	for _, key := range keys {
		members := buckets[key]
		slices.SortFunc(members, compareItems)
		groups = append(groups, domain.Group{Key: key, Items: members})
	}
	return groups
}

// Keys returns the group keys in order.
func Keys(groups []domain.Group) []string {
	keys := make([]string, len(groups))
	for i := range groups {
		keys[i] = groups[i].Key
	}
	return keys
}
