package query

import (
	"sort"

	"cqv/internal/domain"
)

// AllGroupName is the synthetic bucket name used when no grouping is applied
const AllGroupName = "all"

// Bucket is one named partition of a result sequence
type Bucket struct {
	Name    string
	Results []domain.TestResult
}

// Group partitions an already filtered and sorted sequence into named
// buckets. The incoming order is preserved within each bucket, buckets are
// ordered alphabetically by name, and every input record lands in exactly
// one bucket. GroupByNone yields a single synthetic bucket holding all
// records.
func Group(results []domain.TestResult, key GroupKey) []Bucket {
	if key == GroupByNone {
		all := make([]domain.TestResult, len(results))
		copy(all, results)
		return []Bucket{{Name: AllGroupName, Results: all}}
	}

	field := groupField(key)
	byName := make(map[string]int)
	var buckets []Bucket

	for _, r := range results {
		name := field(r)
		idx, ok := byName[name]
		if !ok {
			idx = len(buckets)
			byName[name] = idx
			buckets = append(buckets, Bucket{Name: name})
		}
		buckets[idx].Results = append(buckets[idx].Results, r)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return compareFold(buckets[i].Name, buckets[j].Name) < 0
	})

	return buckets
}

// groupField maps a grouping key to its field accessor
func groupField(key GroupKey) func(domain.TestResult) string {
	switch key {
	case GroupByStatus:
		return func(r domain.TestResult) string { return string(r.TestStatus) }
	case GroupByTestsName:
		return func(r domain.TestResult) string { return r.TestsName }
	default:
		return func(r domain.TestResult) string { return r.GroupName }
	}
}

// Apply runs the full pipeline for one document's results: filter, sort,
// then group, per the validated params.
func Apply(results []domain.TestResult, p Params) []Bucket {
	filtered := Filter(results, p.Status, p.Search)
	sorted := Sort(filtered, p.SortBy, p.Order)
	return Group(sorted, p.GroupBy)
}
