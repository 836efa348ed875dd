package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Cache keys are built in one place so the invalidation sweeps in the entity
// caches always agree with the readers.
//
// Shapes:
//
//	{entity}:{id}
//	{entity}:list:page:{p}:pageSize:{s}:{sorted-filter-string}
//	{entity}:count:{sorted-filter-string}
//	{entity}:name:{normalized-name}
//	{entity}:{relation}:{relatedID}:list:...   (secondary indices)

func ItemKey(entity, id string) string {
	return entity + ":" + id
}

func ListKey(entity string, page, pageSize int, filters map[string]string) string {
	return fmt.Sprintf("%s:list:page:%d:pageSize:%d:%s", entity, page, pageSize, FilterString(filters))
}

func CountKey(entity string, filters map[string]string) string {
	return entity + ":count:" + FilterString(filters)
}

func NameKey(entity, name string) string {
	return entity + ":name:" + NormalizeName(name)
}

// RelationListKey keys a list scoped to a related entity, e.g. the projects
// containing a given tech: project:tech:{techID}:list:...
func RelationListKey(entity, relation, relatedID string, page, pageSize int, filters map[string]string) string {
	return fmt.Sprintf("%s:%s:%s:list:page:%d:pageSize:%d:%s",
		entity, relation, relatedID, page, pageSize, FilterString(filters))
}

// RelationPattern matches every key under a secondary index.
func RelationPattern(entity, relation, relatedID string) string {
	return fmt.Sprintf("%s:%s:%s:*", entity, relation, relatedID)
}

// EntityPattern matches every key of an entity class, lists, counts and
// secondary indices included.
func EntityPattern(entity string) string {
	return entity + ":*"
}

// FilterString renders a filter set deterministically: keys sorted
// lexicographically, joined as key:value pairs. Two logically identical
// filter sets produce the same string regardless of call-site ordering.
func FilterString(filters map[string]string) string {
	if len(filters) == 0 {
		return "all"
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+filters[k])
	}
	return strings.Join(pairs, ":")
}

// NormalizeName is the canonical form used for duplicate-name lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
