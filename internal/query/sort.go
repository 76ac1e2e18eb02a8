package query

import (
	"sort"
	"strings"

	"cqv/internal/domain"
)

// Sort returns a copy of results ordered by the chosen key. The sort is
// stable, so records comparing equal keep their relative input order. String
// comparison is case-insensitive; an unrecognized key sorts by test name
// ascending. The input slice is never modified.
func Sort(results []domain.TestResult, key SortKey, order SortOrder) []domain.TestResult {
	sorted := make([]domain.TestResult, len(results))
	copy(sorted, results)

	field := sortField(key)
	desc := order == SortDesc

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := field(sorted[i]), field(sorted[j])
		if desc {
			a, b = b, a
		}
		return compareFold(a, b) < 0
	})

	return sorted
}

// sortField maps a sort key to its field accessor, defaulting to test name
func sortField(key SortKey) func(domain.TestResult) string {
	switch key {
	case SortByGroup:
		return func(r domain.TestResult) string { return r.GroupName }
	case SortByStatus:
		return func(r domain.TestResult) string { return string(r.TestStatus) }
	case SortByExpression:
		return func(r domain.TestResult) string { return r.Expression }
	case SortByTestsName:
		return func(r domain.TestResult) string { return r.TestsName }
	default:
		return func(r domain.TestResult) string { return r.TestName }
	}
}

// compareFold compares two strings case-insensitively, falling back to a
// case-sensitive compare for strings equal under folding so the order stays
// total and idempotent.
func compareFold(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}
