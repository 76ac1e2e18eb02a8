package charts

import (
	"testing"

	"cqv/internal/domain"
)

func TestStatusSeries(t *testing.T) {
	summary := domain.Summary{PassCount: 7, FailCount: 2, SkipCount: 1, ErrorCount: 0}
	points := StatusSeries(summary)

	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	expected := map[domain.Status]int{
		domain.StatusPass:  7,
		domain.StatusFail:  2,
		domain.StatusSkip:  1,
		domain.StatusError: 0,
	}
	for _, p := range points {
		if p.Count != expected[p.Status] {
			t.Errorf("status %q: expected %d, got %d", p.Status, expected[p.Status], p.Count)
		}
		if p.Label != string(p.Status) {
			t.Errorf("status %q: label %q", p.Status, p.Label)
		}
	}
}

func TestGroupSeries_CountsAndOrder(t *testing.T) {
	results := []domain.TestResult{
		{GroupName: "Small", TestStatus: domain.StatusPass},
		{GroupName: "Big", TestStatus: domain.StatusPass},
		{GroupName: "Big", TestStatus: domain.StatusFail},
		{GroupName: "Big", TestStatus: domain.StatusPass},
	}
	rows := GroupSeries(results)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Group != "Big" {
		t.Errorf("expected biggest group first, got %q", rows[0].Group)
	}
	if rows[0].Total != 3 || rows[0].Counts[domain.StatusPass] != 2 || rows[0].Counts[domain.StatusFail] != 1 {
		t.Errorf("unexpected Big counts: %+v", rows[0])
	}
}

func TestGroupSeries_TopTenByVolume(t *testing.T) {
	var results []domain.TestResult
	// 12 groups, group i has i+1 results
	for i := 0; i < 12; i++ {
		name := string(rune('A' + i))
		for j := 0; j <= i; j++ {
			results = append(results, domain.TestResult{GroupName: name, TestStatus: domain.StatusPass})
		}
	}
	rows := GroupSeries(results)

	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	if rows[0].Group != "L" || rows[0].Total != 12 {
		t.Errorf("expected busiest group L(12) first, got %s(%d)", rows[0].Group, rows[0].Total)
	}
	for _, row := range rows {
		if row.Group == "A" || row.Group == "B" {
			t.Errorf("smallest groups should have been cut, found %q", row.Group)
		}
	}
}

func TestGroupSeries_DoesNotMutateInput(t *testing.T) {
	results := []domain.TestResult{
		{GroupName: "G", TestStatus: domain.StatusPass},
		{GroupName: "H", TestStatus: domain.StatusFail},
	}
	before := results[0].GroupName
	GroupSeries(results)
	if results[0].GroupName != before {
		t.Error("GroupSeries modified its input")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		expected float64
	}{
		{name: "half", count: 1, total: 2, expected: 50.0},
		{name: "one decimal rounding", count: 1, total: 3, expected: 33.3},
		{name: "rounds up", count: 2, total: 3, expected: 66.7},
		{name: "zero total", count: 5, total: 0, expected: 0},
		{name: "full", count: 4, total: 4, expected: 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.count, tt.total); got != tt.expected {
				t.Errorf("Percent(%d,%d) = %v, want %v", tt.count, tt.total, got, tt.expected)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1, 8); got != "12.5%" {
		t.Errorf("expected 12.5%%, got %q", got)
	}
}
