package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cqv/internal/domain"
)

func sampleRows() []domain.ComparisonTest {
	return []domain.ComparisonTest{
		{
			GroupName: "Arithmetic", TestName: "Add",
			Consistency: domain.ConsistencyConsistent,
			Results: []domain.FileResult{
				{Filename: "a.json", Status: domain.StatusPass},
				{Filename: "b.json", Status: domain.StatusPass},
			},
		},
		{
			GroupName: "Interval", TestName: "Overlaps",
			Consistency: domain.ConsistencyInconsistent,
			Results: []domain.FileResult{
				{Filename: "a.json", Status: domain.StatusPass},
				{Filename: "b.json", Status: domain.StatusFail},
			},
		},
		{
			GroupName: "Logic", TestName: "And",
			Consistency: domain.ConsistencyConsistent,
			Results: []domain.FileResult{
				{Filename: "b.json", Status: domain.StatusError},
			},
		},
	}
}

func TestFilterTests(t *testing.T) {
	tests := []struct {
		name     string
		filter   MatrixFilter
		expected []string
	}{
		{name: "no constraints keeps all", filter: MatrixFilter{}, expected: []string{"Add", "Overlaps", "And"}},
		{name: "search on test name", filter: MatrixFilter{Search: "overlaps"}, expected: []string{"Overlaps"}},
		{name: "search on group name", filter: MatrixFilter{Search: "logic"}, expected: []string{"And"}},
		{name: "exact group", filter: MatrixFilter{Group: "Arithmetic"}, expected: []string{"Add"}},
		{name: "any file has status", filter: MatrixFilter{AnyStatus: domain.StatusFail}, expected: []string{"Overlaps"}},
		{name: "consistency class", filter: MatrixFilter{Consistency: domain.ConsistencyInconsistent}, expected: []string{"Overlaps"}},
		{name: "combined constraints", filter: MatrixFilter{Group: "Interval", AnyStatus: domain.StatusPass}, expected: []string{"Overlaps"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTests(sampleRows(), tt.filter)
			var names []string
			for _, row := range got {
				names = append(names, row.TestName)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSortTests(t *testing.T) {
	rows := sampleRows()

	byName := SortTests(rows, MatrixSortByName, false)
	assert.Equal(t, "Add", byName[0].TestName)
	assert.Equal(t, "And", byName[1].TestName)

	byConsistency := SortTests(rows, MatrixSortByConsistency, false)
	assert.Equal(t, domain.ConsistencyInconsistent, byConsistency[0].Consistency,
		"inconsistent rows sort first")

	byFiles := SortTests(rows, MatrixSortByFileCount, true)
	require.Len(t, byFiles, 3)
	assert.Equal(t, 2, byFiles[0].FileCount())
	assert.Equal(t, 1, byFiles[2].FileCount())
}

func TestSortTests_UnknownKeyKeepsOrder(t *testing.T) {
	rows := sampleRows()
	got := SortTests(rows, MatrixSortKey("bogus"), false)
	for i := range rows {
		assert.Equal(t, rows[i].TestName, got[i].TestName)
	}
}

func TestSortTests_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	first := rows[0].TestName
	SortTests(rows, MatrixSortByName, true)
	assert.Equal(t, first, rows[0].TestName)
}
