package query

import (
	"testing"

	"cqv/internal/domain"
)

func TestGroup_NoneYieldsSingleBucket(t *testing.T) {
	buckets := Group(sampleResults(), GroupByNone)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Name != AllGroupName {
		t.Errorf("expected bucket name %q, got %q", AllGroupName, buckets[0].Name)
	}
	if len(buckets[0].Results) != 4 {
		t.Errorf("expected 4 results in the synthetic bucket, got %d", len(buckets[0].Results))
	}
}

func TestGroup_ByGroupName(t *testing.T) {
	buckets := Group(sampleResults(), GroupByGroup)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	expected := []string{"Arithmetic", "Interval", "Logic"}
	for i, name := range expected {
		if buckets[i].Name != name {
			t.Errorf("bucket %d: expected %q, got %q", i, name, buckets[i].Name)
		}
	}
	if len(buckets[0].Results) != 2 {
		t.Errorf("expected 2 Arithmetic results, got %d", len(buckets[0].Results))
	}
}

func TestGroup_BucketsAreAlphabetical(t *testing.T) {
	input := []domain.TestResult{
		{GroupName: "zebra", TestName: "a"},
		{GroupName: "Apple", TestName: "b"},
		{GroupName: "mango", TestName: "c"},
	}
	buckets := Group(input, GroupByGroup)
	expected := []string{"Apple", "mango", "zebra"}
	for i, name := range expected {
		if buckets[i].Name != name {
			t.Errorf("bucket %d: expected %q, got %q", i, name, buckets[i].Name)
		}
	}
}

func TestGroup_IsAPartition(t *testing.T) {
	input := sampleResults()
	for _, key := range []GroupKey{GroupByNone, GroupByGroup, GroupByStatus, GroupByTestsName} {
		buckets := Group(input, key)

		seen := make(map[string]int)
		total := 0
		for _, b := range buckets {
			total += len(b.Results)
			for _, r := range b.Results {
				seen[r.Key()]++
			}
		}
		if total != len(input) {
			t.Errorf("groupBy %q: %d results across buckets, want %d", key, total, len(input))
		}
		for k, n := range seen {
			if n != 1 {
				t.Errorf("groupBy %q: key %q appears in %d buckets", key, k, n)
			}
		}
	}
}

func TestGroup_PreservesOrderWithinBuckets(t *testing.T) {
	sorted := Sort(sampleResults(), SortByName, SortDesc)
	buckets := Group(sorted, GroupByGroup)
	for _, b := range buckets {
		for i := 1; i < len(b.Results); i++ {
			if compareFold(b.Results[i-1].TestName, b.Results[i].TestName) < 0 {
				t.Errorf("bucket %q lost the descending name order", b.Name)
			}
		}
	}
}

func TestApply_FullPipeline(t *testing.T) {
	buckets := Apply(sampleResults(), Params{
		Status:  "pass",
		GroupBy: GroupByGroup,
		SortBy:  SortByName,
		Order:   SortAsc,
	})
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets (Arithmetic, Logic), got %d", len(buckets))
	}
	if buckets[0].Name != "Arithmetic" || buckets[1].Name != "Logic" {
		t.Errorf("unexpected bucket names: %q, %q", buckets[0].Name, buckets[1].Name)
	}
}
