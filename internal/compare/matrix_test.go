package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cqv/internal/domain"
)

func docWith(desc string, results ...domain.TestResult) *domain.Document {
	return &domain.Document{
		Engine:  domain.Engine{Description: desc},
		Results: results,
	}
}

func testResult(group, name string, status domain.Status) domain.TestResult {
	return domain.TestResult{GroupName: group, TestName: name, TestStatus: status}
}

func twoFileSet() *domain.DocumentSet {
	docs := domain.NewDocumentSet()
	docs.Add("run-a.json", docWith("engine-a",
		testResult("GroupX", "TestY", domain.StatusPass),
		testResult("GroupX", "OnlyInA", domain.StatusPass),
	))
	docs.Add("run-b.json", docWith("engine-b",
		testResult("GroupX", "TestY", domain.StatusFail),
		testResult("GroupZ", "OnlyInB", domain.StatusError),
	))
	return docs
}

func findRow(t *testing.T, m *Matrix, key string) domain.ComparisonTest {
	t.Helper()
	for _, row := range m.Tests {
		if row.Key() == key {
			return row
		}
	}
	t.Fatalf("row %q not found in matrix", key)
	return domain.ComparisonTest{}
}

func TestBuild_FullOuterJoin(t *testing.T) {
	docs := twoFileSet()
	m := Build(docs, []string{"run-a.json", "run-b.json"})

	require.Len(t, m.Tests, 3)
	require.Equal(t, []string{"run-a.json", "run-b.json"}, m.Files)

	shared := findRow(t, m, "GroupX::TestY")
	assert.Len(t, shared.Results, 2)
	assert.Equal(t, domain.ConsistencyInconsistent, shared.Consistency)

	onlyA := findRow(t, m, "GroupX::OnlyInA")
	require.Len(t, onlyA.Results, 1)
	assert.Equal(t, "run-a.json", onlyA.Results[0].Filename)
	assert.Nil(t, onlyA.ResultFor("run-b.json"), "file without the key must have no entry")
	assert.Equal(t, domain.ConsistencyConsistent, onlyA.Consistency)
}

func TestBuild_AtMostOneEntryPerFile(t *testing.T) {
	docs := domain.NewDocumentSet()
	docs.Add("dup.json", docWith("engine",
		testResult("G", "T", domain.StatusPass),
		testResult("G", "T", domain.StatusFail), // duplicate key, first wins
	))
	m := Build(docs, []string{"dup.json"})

	require.Len(t, m.Tests, 1)
	require.Len(t, m.Tests[0].Results, 1)
	assert.Equal(t, domain.StatusPass, m.Tests[0].Results[0].Status)
}

func TestBuild_ConsistencyClassification(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.Status
		expected domain.Consistency
	}{
		{name: "all agree", statuses: []domain.Status{domain.StatusPass, domain.StatusPass, domain.StatusPass}, expected: domain.ConsistencyConsistent},
		{name: "disagreement", statuses: []domain.Status{domain.StatusPass, domain.StatusFail}, expected: domain.ConsistencyInconsistent},
		{name: "single file", statuses: []domain.Status{domain.StatusSkip}, expected: domain.ConsistencyConsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := domain.NewDocumentSet()
			var included []string
			for i, status := range tt.statuses {
				filename := string(rune('a'+i)) + ".json"
				docs.Add(filename, docWith("e", testResult("G", "T", status)))
				included = append(included, filename)
			}
			m := Build(docs, included)
			require.Len(t, m.Tests, 1)
			assert.Equal(t, tt.expected, m.Tests[0].Consistency)
		})
	}
}

func TestBuild_SkipsMissingDocuments(t *testing.T) {
	docs := twoFileSet()
	m := Build(docs, []string{"run-a.json", "missing.json"})
	assert.Equal(t, []string{"run-a.json"}, m.Files)

	// run-b.json is loaded but not included: its keys still form rows,
	// they just carry no entries from it
	require.Len(t, m.Tests, 3)
	onlyB := findRow(t, m, "GroupZ::OnlyInB")
	assert.Empty(t, onlyB.Results)
	assert.Equal(t, domain.ConsistencyNoData, onlyB.Consistency)
}

func TestBuild_ExcludedFileKeyClassifiesNoData(t *testing.T) {
	docs := domain.NewDocumentSet()
	docs.Add("included.json", docWith("engine-a",
		testResult("G", "Shared", domain.StatusPass),
	))
	docs.Add("excluded.json", docWith("engine-b",
		testResult("G", "Shared", domain.StatusFail),
		testResult("G", "OnlyInExcluded", domain.StatusPass),
	))

	m := Build(docs, []string{"included.json"})
	require.Equal(t, []string{"included.json"}, m.Files)
	require.Len(t, m.Tests, 2)

	// the key carried only by the excluded file appears with no entries
	orphan := findRow(t, m, "G::OnlyInExcluded")
	assert.Empty(t, orphan.Results)
	assert.Equal(t, domain.ConsistencyNoData, orphan.Consistency)

	// the shared key classifies over the included file alone
	shared := findRow(t, m, "G::Shared")
	require.Len(t, shared.Results, 1)
	assert.Equal(t, "included.json", shared.Results[0].Filename)
	assert.Equal(t, domain.ConsistencyConsistent, shared.Consistency)
	assert.Nil(t, shared.ResultFor("excluded.json"))
}

func TestBuild_RowsOrderedByGroupThenName(t *testing.T) {
	docs := domain.NewDocumentSet()
	docs.Add("f.json", docWith("e",
		testResult("B", "x", domain.StatusPass),
		testResult("A", "z", domain.StatusPass),
		testResult("A", "a", domain.StatusPass),
	))
	m := Build(docs, []string{"f.json"})

	require.Len(t, m.Tests, 3)
	assert.Equal(t, "A::a", m.Tests[0].Key())
	assert.Equal(t, "A::z", m.Tests[1].Key())
	assert.Equal(t, "B::x", m.Tests[2].Key())
}

func TestBuild_CrossFileScenario(t *testing.T) {
	// Two files both containing GroupX::TestY, pass vs fail: the joined row
	// must be inconsistent and carry both entries.
	docs := twoFileSet()
	m := Build(docs, []string{"run-a.json", "run-b.json"})

	row := findRow(t, m, "GroupX::TestY")
	require.Len(t, row.Results, 2)
	assert.Equal(t, domain.ConsistencyInconsistent, row.Consistency)
	assert.Equal(t, domain.StatusPass, row.ResultFor("run-a.json").Status)
	assert.Equal(t, domain.StatusFail, row.ResultFor("run-b.json").Status)
}
