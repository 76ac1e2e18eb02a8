package compare

import (
	"sort"
	"strings"

	"cqv/internal/domain"
)

// MatrixSortKey selects how comparison rows are ordered
type MatrixSortKey string

const (
	MatrixSortByGroup       MatrixSortKey = "group"
	MatrixSortByName        MatrixSortKey = "name"
	MatrixSortByConsistency MatrixSortKey = "consistency"
	MatrixSortByFileCount   MatrixSortKey = "files"
)

// MatrixFilter narrows the joined rows after the join is built. Zero values
// mean "no constraint".
type MatrixFilter struct {
	Search      string             // free text on test name and group name
	Group       string             // exact group match
	AnyStatus   domain.Status      // keep rows where any file reports this status
	Consistency domain.Consistency // keep rows of this consistency class
}

// FilterTests returns the joined rows matching every set constraint,
// preserving the matrix's row order.
func FilterTests(tests []domain.ComparisonTest, f MatrixFilter) []domain.ComparisonTest {
	out := make([]domain.ComparisonTest, 0, len(tests))
	term := strings.ToLower(strings.TrimSpace(f.Search))

	for _, row := range tests {
		if term != "" &&
			!strings.Contains(strings.ToLower(row.TestName), term) &&
			!strings.Contains(strings.ToLower(row.GroupName), term) {
			continue
		}
		if f.Group != "" && row.GroupName != f.Group {
			continue
		}
		if f.AnyStatus != "" && !anyFileHasStatus(row, f.AnyStatus) {
			continue
		}
		if f.Consistency != "" && row.Consistency != f.Consistency {
			continue
		}
		out = append(out, row)
	}

	return out
}

func anyFileHasStatus(row domain.ComparisonTest, status domain.Status) bool {
	for _, fr := range row.Results {
		if fr.Status == status {
			return true
		}
	}
	return false
}

// SortTests returns a copy of the rows ordered by the chosen key. The sort
// is stable; an unknown key leaves the incoming order untouched. Descending
// order reverses the comparison.
func SortTests(tests []domain.ComparisonTest, key MatrixSortKey, desc bool) []domain.ComparisonTest {
	sorted := make([]domain.ComparisonTest, len(tests))
	copy(sorted, tests)

	var less func(a, b domain.ComparisonTest) bool
	switch key {
	case MatrixSortByGroup:
		less = func(a, b domain.ComparisonTest) bool {
			return strings.ToLower(a.GroupName) < strings.ToLower(b.GroupName)
		}
	case MatrixSortByName:
		less = func(a, b domain.ComparisonTest) bool {
			return strings.ToLower(a.TestName) < strings.ToLower(b.TestName)
		}
	case MatrixSortByConsistency:
		less = func(a, b domain.ComparisonTest) bool {
			return consistencyRank(a.Consistency) < consistencyRank(b.Consistency)
		}
	case MatrixSortByFileCount:
		less = func(a, b domain.ComparisonTest) bool {
			return a.FileCount() < b.FileCount()
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// consistencyRank orders inconsistent first so disagreements surface at the
// top of an ascending consistency sort.
func consistencyRank(c domain.Consistency) int {
	switch c {
	case domain.ConsistencyInconsistent:
		return 0
	case domain.ConsistencyConsistent:
		return 1
	default:
		return 2
	}
}
