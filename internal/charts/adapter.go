package charts

import (
	"fmt"
	"math"
	"sort"

	"cqv/internal/domain"
)

// StatusPoint is one label/value pair of the summary series
type StatusPoint struct {
	Status domain.Status
	Label  string
	Count  int
}

// StatusSeries maps a run summary to its single-series chart data: one
// point per status, in display order. The summary is read as-is, never
// recomputed from the detail records.
func StatusSeries(summary domain.Summary) []StatusPoint {
	points := make([]StatusPoint, 0, len(domain.KnownStatuses))
	for _, status := range domain.KnownStatuses {
		points = append(points, StatusPoint{
			Status: status,
			Label:  string(status),
			Count:  summary.Count(status),
		})
	}
	return points
}

// GroupRow is one stacked row of the per-group series: a test group with
// its per-status counts.
type GroupRow struct {
	Group  string
	Counts map[domain.Status]int
	Total  int
}

// topGroupLimit caps the per-group chart to the busiest groups
const topGroupLimit = 10

// GroupSeries maps filtered results to a multi-series stacked table: one
// row per test group, limited to the ten groups with the most results,
// ordered by volume descending (ties by group name). The input slice is
// never modified.
func GroupSeries(results []domain.TestResult) []GroupRow {
	byGroup := make(map[string]*GroupRow)
	var order []string

	for _, r := range results {
		row, ok := byGroup[r.GroupName]
		if !ok {
			row = &GroupRow{Group: r.GroupName, Counts: make(map[domain.Status]int)}
			byGroup[r.GroupName] = row
			order = append(order, r.GroupName)
		}
		row.Counts[r.TestStatus]++
		row.Total++
	}

	rows := make([]GroupRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *byGroup[name])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Group < rows[j].Group
	})

	if len(rows) > topGroupLimit {
		rows = rows[:topGroupLimit]
	}
	return rows
}

// Percent returns count as a share of total, rounded to one decimal place.
// A zero total yields 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// FormatPercent renders a one-decimal percentage label
func FormatPercent(count, total int) string {
	return fmt.Sprintf("%.1f%%", Percent(count, total))
}
