package compare

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"cqv/internal/domain"
)

// ExportMeta describes one export of the comparison matrix
type ExportMeta struct {
	ExportID   string        `json:"exportId"`
	ExportedAt string        `json:"exportedAt"`
	TestCount  int           `json:"testCount"`
	FileCount  int           `json:"fileCount"`
	Filter     MatrixFilter  `json:"filter"`
	SortBy     MatrixSortKey `json:"sortBy,omitempty"`
	SortDesc   bool          `json:"sortDesc,omitempty"`
}

// ExportFile is one compared file in the export envelope
type ExportFile struct {
	Filename    string `json:"filename"`
	EngineLabel string `json:"engineLabel"`
}

// ExportEntry is one file's result within an exported row. Files lacking
// the test have no entry.
type ExportEntry struct {
	Filename    string            `json:"filename"`
	EngineLabel string            `json:"engineLabel"`
	Status      domain.Status     `json:"status"`
	Actual      string            `json:"actual,omitempty"`
	Expected    string            `json:"expected,omitempty"`
	Error       *domain.TestError `json:"error,omitempty"`
}

// ExportTest is one joined row in the export envelope
type ExportTest struct {
	GroupName   string             `json:"groupName"`
	TestName    string             `json:"testName"`
	Consistency domain.Consistency `json:"consistency"`
	Results     []ExportEntry      `json:"results"`
}

// Envelope is the structured comparison export document
type Envelope struct {
	Meta  ExportMeta   `json:"meta"`
	Files []ExportFile `json:"files"`
	Tests []ExportTest `json:"tests"`
}

// Exporter turns an already-computed matrix into its export formats. Both
// formats are derived purely from the matrix rows and the compared-file
// set; nothing is re-queried from the source documents.
type Exporter struct {
	matrix *Matrix
	labels map[string]string
}

// NewExporter creates an Exporter over a built matrix. Engine labels for
// the column headers come from the document set the matrix was built from.
func NewExporter(m *Matrix, docs *domain.DocumentSet) *Exporter {
	labels := make(map[string]string, len(m.Files))
	for _, f := range m.Files {
		labels[f] = docs.EngineLabel(f)
	}
	return &Exporter{matrix: m, labels: labels}
}

// CSV renders the rows as a delimited table with quoted fields: a header
// row of Group, Test Name, Consistency, then one column per compared file
// labelled "engine (filename)". A file lacking a test leaves its cell
// empty.
func (e *Exporter) CSV(tests []domain.ComparisonTest) string {
	tw := table.NewWriter()

	header := table.Row{"Group", "Test Name", "Consistency"}
	for _, f := range e.matrix.Files {
		header = append(header, e.labels[f])
	}
	tw.AppendHeader(header)

	for _, row := range tests {
		r := table.Row{row.GroupName, row.TestName, string(row.Consistency)}
		for _, f := range e.matrix.Files {
			if fr := row.ResultFor(f); fr != nil {
				r = append(r, string(fr.Status))
			} else {
				r = append(r, "")
			}
		}
		tw.AppendRow(r)
	}

	return tw.RenderCSV()
}

// JSON renders the structured export envelope: metadata, the compared file
// list, then every joined row with its per-file entries.
func (e *Exporter) JSON(tests []domain.ComparisonTest, f MatrixFilter, sortBy MatrixSortKey, sortDesc bool) ([]byte, error) {
	env := Envelope{
		Meta: ExportMeta{
			ExportID:   uuid.NewString(),
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			TestCount:  len(tests),
			FileCount:  len(e.matrix.Files),
			Filter:     f,
			SortBy:     sortBy,
			SortDesc:   sortDesc,
		},
	}

	for _, file := range e.matrix.Files {
		env.Files = append(env.Files, ExportFile{
			Filename:    file,
			EngineLabel: e.labels[file],
		})
	}

	for _, row := range tests {
		out := ExportTest{
			GroupName:   row.GroupName,
			TestName:    row.TestName,
			Consistency: row.Consistency,
		}
		for _, fr := range row.Results {
			out.Results = append(out.Results, ExportEntry{
				Filename:    fr.Filename,
				EngineLabel: fr.EngineLabel,
				Status:      fr.Status,
				Actual:      fr.Actual,
				Expected:    fr.Expected,
				Error:       fr.Error,
			})
		}
		env.Tests = append(env.Tests, out)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal comparison export: %w", err)
	}
	return data, nil
}
