package compare

import (
	"sort"

	"cqv/internal/domain"
)

// Matrix is the full outer join of every test across the files included in
// a comparison. Rows are ordered by group then test name; Files keeps the
// included filenames in their selection order.
type Matrix struct {
	Files []string
	Tests []domain.ComparisonTest
}

// Build joins every loaded document on the groupName::testName composite
// key. The row set spans all loaded documents, so a key carried only by a
// file excluded from the comparison still appears; per-file entries and
// the consistency classification cover only the included files, which is
// what makes such a row classify as no-data. Every included file
// containing a key contributes exactly one entry to that row's Results;
// files lacking the key contribute nothing, so consumers must treat
// per-file lookups as may-be-missing. Filenames in included that have no
// loaded document are skipped.
func Build(docs *domain.DocumentSet, included []string) *Matrix {
	m := &Matrix{}
	inc := make(map[string]bool, len(included))
	for _, filename := range included {
		if docs.Get(filename) == nil {
			continue
		}
		inc[filename] = true
		m.Files = append(m.Files, filename)
	}

	rows := make(map[string]*domain.ComparisonTest)
	var keys []string

	for _, filename := range docs.Filenames {
		doc := docs.Get(filename)
		label := doc.Engine.Label(filename)

		for _, r := range doc.Results {
			key := r.Key()
			row, ok := rows[key]
			if !ok {
				row = &domain.ComparisonTest{
					TestName:  r.TestName,
					GroupName: r.GroupName,
				}
				rows[key] = row
				keys = append(keys, key)
			}
			if !inc[filename] {
				continue
			}
			if row.ResultFor(filename) != nil {
				// A document with duplicate keys keeps its first occurrence,
				// matching the join's at-most-one-entry-per-file contract.
				continue
			}
			row.Results = append(row.Results, domain.FileResult{
				Filename:    filename,
				EngineLabel: label,
				Status:      r.TestStatus,
				Actual:      r.Actual,
				Expected:    r.Expected,
				Error:       r.Error,
			})
		}
	}

	m.Tests = make([]domain.ComparisonTest, 0, len(keys))
	for _, key := range keys {
		row := rows[key]
		row.Consistency = classify(*row)
		m.Tests = append(m.Tests, *row)
	}

	sort.SliceStable(m.Tests, func(i, j int) bool {
		if m.Tests[i].GroupName != m.Tests[j].GroupName {
			return m.Tests[i].GroupName < m.Tests[j].GroupName
		}
		return m.Tests[i].TestName < m.Tests[j].TestName
	})

	return m
}

// classify derives the consistency class from the distinct statuses among
// the included files that reported the test: zero files is no-data, one
// distinct status is consistent, more than one is inconsistent.
func classify(row domain.ComparisonTest) domain.Consistency {
	distinct := make(map[domain.Status]struct{})
	for _, fr := range row.Results {
		distinct[fr.Status] = struct{}{}
	}
	switch len(distinct) {
	case 0:
		return domain.ConsistencyNoData
	case 1:
		return domain.ConsistencyConsistent
	default:
		return domain.ConsistencyInconsistent
	}
}
