package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cqv/internal/charts"
	"cqv/internal/compare"
	"cqv/internal/domain"
	"cqv/internal/loader"
	"cqv/internal/query"
)

// Formatter renders non-interactive output: summary headers, plain result
// tables, comparison matrices and validation reports.
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintSummary prints the run header: filename, engine label, run time and
// the per-status counts with percentages.
func (f *Formatter) PrintSummary(filename string, doc *domain.Document) {
	total := doc.Summary.Total()

	fmt.Fprintln(f.out)
	color.New(color.FgCyan, color.Bold).Fprintln(f.out, doc.Engine.Label(filename))
	if doc.TestsRunDateTime != "" {
		fmt.Fprintf(f.out, "run at %s\n", doc.TestsRunDateTime)
	}

	fmt.Fprintf(f.out, "%s  %s  %s  %s  (%d total)\n",
		color.GreenString("pass: %d (%s)", doc.Summary.PassCount, charts.FormatPercent(doc.Summary.PassCount, total)),
		color.RedString("fail: %d (%s)", doc.Summary.FailCount, charts.FormatPercent(doc.Summary.FailCount, total)),
		color.YellowString("skip: %d (%s)", doc.Summary.SkipCount, charts.FormatPercent(doc.Summary.SkipCount, total)),
		color.MagentaString("error: %d (%s)", doc.Summary.ErrorCount, charts.FormatPercent(doc.Summary.ErrorCount, total)),
		total)
	fmt.Fprintln(f.out)
}

// PrintBuckets renders the filtered/grouped result buckets as tables, one
// section per bucket.
func (f *Formatter) PrintBuckets(buckets []query.Bucket) {
	for _, b := range buckets {
		if b.Name != query.AllGroupName {
			color.New(color.Bold).Fprintf(f.out, "%s (%d)\n", b.Name, len(b.Results))
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(f.out)
		tw.AppendHeader(table.Row{"Status", "Group", "Test", "Expression"})
		for _, r := range b.Results {
			tw.AppendRow(table.Row{statusCell(r.TestStatus), r.GroupName, r.TestName, truncate(r.Expression, 60)})
		}
		tw.SetStyle(table.StyleLight)
		tw.Render()
		fmt.Fprintln(f.out)
	}
}

// PrintMatrix renders the comparison matrix as a table with one status
// column per compared file. Missing entries render as a dash.
func (f *Formatter) PrintMatrix(m *compare.Matrix, tests []domain.ComparisonTest, docs *domain.DocumentSet) {
	tw := table.NewWriter()
	tw.SetOutputMirror(f.out)

	header := table.Row{"Group", "Test", "Consistency"}
	for _, file := range m.Files {
		header = append(header, docs.EngineLabel(file))
	}
	tw.AppendHeader(header)

	for _, row := range tests {
		r := table.Row{row.GroupName, row.TestName, consistencyCell(row.Consistency)}
		for _, file := range m.Files {
			if fr := row.ResultFor(file); fr != nil {
				r = append(r, statusCell(fr.Status))
			} else {
				r = append(r, "-")
			}
		}
		tw.AppendRow(r)
	}

	tw.SetStyle(table.StyleLight)
	tw.Render()
}

// PrintValidation reports a validation outcome: a green OK line, or every
// violation with its document path.
func (f *Formatter) PrintValidation(ref string, res *loader.ValidationResult) {
	if res.IsValid {
		color.New(color.FgGreen).Fprintf(f.out, "✓ %s is valid\n", ref)
		return
	}
	color.New(color.FgRed).Fprintf(f.out, "✗ %s failed schema validation (%d violations)\n", ref, len(res.Errors))
	for _, v := range res.Errors {
		fmt.Fprintf(f.out, "  %s\n", v.String())
	}
}

// PrintError prints one dismissible-style error line without aborting
func (f *Formatter) PrintError(err error) {
	color.New(color.FgRed).Fprintf(f.out, "✗ %v\n", err)
}

func statusCell(status domain.Status) string {
	switch status {
	case domain.StatusPass:
		return text.FgGreen.Sprint("pass")
	case domain.StatusFail:
		return text.FgRed.Sprint("fail")
	case domain.StatusSkip:
		return text.FgYellow.Sprint("skip")
	case domain.StatusError:
		return text.FgMagenta.Sprint("error")
	default:
		return string(status)
	}
}

func consistencyCell(c domain.Consistency) string {
	switch c {
	case domain.ConsistencyConsistent:
		return text.FgGreen.Sprint(string(c))
	case domain.ConsistencyInconsistent:
		return text.FgRed.Sprint(string(c))
	default:
		return string(c)
	}
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
