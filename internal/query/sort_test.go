package query

import (
	"reflect"
	"testing"

	"cqv/internal/domain"
)

func names(results []domain.TestResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.TestName
	}
	return out
}

func TestSort_ByKey(t *testing.T) {
	input := []domain.TestResult{
		{TestName: "Charlie", GroupName: "B", TestStatus: domain.StatusPass, Expression: "z"},
		{TestName: "alpha", GroupName: "C", TestStatus: domain.StatusError, Expression: "y"},
		{TestName: "Bravo", GroupName: "A", TestStatus: domain.StatusFail, Expression: "x"},
	}

	tests := []struct {
		name     string
		key      SortKey
		order    SortOrder
		expected []string
	}{
		{name: "name ascending is case-insensitive", key: SortByName, order: SortAsc, expected: []string{"alpha", "Bravo", "Charlie"}},
		{name: "name descending", key: SortByName, order: SortDesc, expected: []string{"Charlie", "Bravo", "alpha"}},
		{name: "group ascending", key: SortByGroup, order: SortAsc, expected: []string{"Bravo", "Charlie", "alpha"}},
		{name: "status ascending", key: SortByStatus, order: SortAsc, expected: []string{"alpha", "Bravo", "Charlie"}},
		{name: "expression descending", key: SortByExpression, order: SortDesc, expected: []string{"Charlie", "alpha", "Bravo"}},
		{name: "unknown key falls back to name ascending", key: SortKey("bogus"), order: SortAsc, expected: []string{"alpha", "Bravo", "Charlie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Sort(input, tt.key, tt.order))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected order %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSort_Idempotent(t *testing.T) {
	input := sampleResults()
	once := Sort(input, SortByGroup, SortDesc)
	twice := Sort(once, SortByGroup, SortDesc)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("sorting twice changed the order:\nonce:  %v\ntwice: %v", names(once), names(twice))
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	input := sampleResults()
	before := names(input)
	Sort(input, SortByName, SortDesc)
	if !reflect.DeepEqual(before, names(input)) {
		t.Error("Sort modified its input slice")
	}
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	input := []domain.TestResult{
		{TestName: "first", TestStatus: domain.StatusPass},
		{TestName: "second", TestStatus: domain.StatusPass},
		{TestName: "third", TestStatus: domain.StatusPass},
	}
	got := names(Sort(input, SortByStatus, SortAsc))
	expected := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("equal keys reordered: %v", got)
	}
}
