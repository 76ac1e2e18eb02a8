package query

import (
	"strings"

	"cqv/internal/domain"
)

// Filter returns the subset of results matching the status filter and the
// free-text search term. A status of StatusAll matches every record; an
// empty search term is a no-op. The search matches case-insensitively
// against test name, group name, tests name and expression. Input order is
// preserved and the input slice is never modified.
func Filter(results []domain.TestResult, status, search string) []domain.TestResult {
	filtered := make([]domain.TestResult, 0, len(results))
	term := strings.ToLower(strings.TrimSpace(search))

	for _, r := range results {
		if status != StatusAll && string(r.TestStatus) != status {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// matchesSearch reports whether any searchable field contains term.
// term must already be lowercased.
func matchesSearch(r domain.TestResult, term string) bool {
	for _, field := range []string{r.TestName, r.GroupName, r.TestsName, r.Expression} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
