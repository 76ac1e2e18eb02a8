package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"cqv/internal/charts"
	"cqv/internal/domain"
	"cqv/internal/loader"
	"cqv/internal/query"
	"cqv/internal/session"
)

// Viewer is the interactive results view: a filterable, sortable, grouped
// table over one document, with a detail pane for the selected test. While
// open it watches the session store and recomputes when the persisted
// document changes underneath it.
type Viewer struct {
	app      *tview.Application
	doc      *domain.Document
	filename string
	params   query.Params
	log      *zap.Logger

	store   *session.Store
	watcher *session.Watcher

	violations []loader.Violation

	pages  *tview.Pages
	header *tview.TextView
	table  *tview.Table
	footer *tview.TextView
	search *tview.InputField

	// rowResults maps visible table rows to their records (nil for
	// bucket section rows)
	rowResults []*domain.TestResult
}

// NewViewer creates a Viewer over one loaded document. store and watcher
// may be nil to disable external-update detection.
func NewViewer(doc *domain.Document, filename string, params query.Params, violations []loader.Violation, store *session.Store, watcher *session.Watcher, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		app:        tview.NewApplication(),
		doc:        doc,
		filename:   filename,
		params:     params,
		violations: violations,
		store:      store,
		watcher:    watcher,
		log:        log,
	}
}

var statusCycle = []string{query.StatusAll, "pass", "fail", "skip", "error"}
var groupCycle = []query.GroupKey{query.GroupByNone, query.GroupByGroup, query.GroupByStatus, query.GroupByTestsName}
var sortCycle = []query.SortKey{query.SortByName, query.SortByGroup, query.SortByStatus, query.SortByExpression, query.SortByTestsName}

// Run builds the layout and blocks until the user quits
func (v *Viewer) Run() error {
	v.header = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	v.table.SetSelectedFunc(func(row, column int) {
		v.showDetail(row)
	})

	v.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	v.search = tview.NewInputField().
		SetLabel("search: ").
		SetFieldWidth(40)
	v.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			v.params.Search = v.search.GetText()
			v.recompute()
		}
		v.app.SetFocus(v.table)
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.header, 4, 0, false).
		AddItem(v.table, 0, 1, true).
		AddItem(v.search, 1, 0, false).
		AddItem(v.footer, 1, 0, false)

	v.pages = tview.NewPages().
		AddPage("results", layout, true, true)

	v.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if v.app.GetFocus() == v.search {
			return event
		}
		switch event.Rune() {
		case 'q':
			v.app.Stop()
			return nil
		case 's':
			v.params.Status = cycle(statusCycle, v.params.Status)
			v.recompute()
			return nil
		case 'g':
			v.params.GroupBy = cycle(groupCycle, v.params.GroupBy)
			v.recompute()
			return nil
		case 'o':
			v.params.SortBy = cycle(sortCycle, v.params.SortBy)
			v.recompute()
			return nil
		case 'r':
			if v.params.Order == query.SortAsc {
				v.params.Order = query.SortDesc
			} else {
				v.params.Order = query.SortAsc
			}
			v.recompute()
			return nil
		case '/':
			v.app.SetFocus(v.search)
			return nil
		}
		return event
	})

	v.recompute()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if v.watcher != nil && v.store != nil {
		go v.watcher.Watch(ctx, func() {
			v.app.QueueUpdateDraw(v.reloadFromStore)
		})
	}

	return v.app.SetRoot(v.pages, true).EnableMouse(true).Run()
}

// reloadFromStore replaces the document with the persisted one after the
// watcher saw its fingerprint change.
func (v *Viewer) reloadFromStore() {
	var doc domain.Document
	ok, err := v.store.Get(session.KeyDocument, &doc)
	if err != nil {
		v.log.Warn("reload after external update failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	v.doc = &doc
	var filename string
	if ok, _ := v.store.Get(session.KeyFilename, &filename); ok {
		v.filename = filename
	}
	v.recompute()
}

// recompute re-runs the filter/sort/group pipeline and repaints everything
func (v *Viewer) recompute() {
	buckets := query.Apply(v.doc.Results, v.params)

	v.header.Clear()
	total := v.doc.Summary.Total()
	fmt.Fprintf(v.header, "[::b]%s[-:-:-]\n", tview.Escape(v.doc.Engine.Label(v.filename)))
	fmt.Fprintf(v.header, "[green]pass %d (%s)[-]  [red]fail %d (%s)[-]  [yellow]skip %d (%s)[-]  [fuchsia]error %d (%s)[-]\n",
		v.doc.Summary.PassCount, charts.FormatPercent(v.doc.Summary.PassCount, total),
		v.doc.Summary.FailCount, charts.FormatPercent(v.doc.Summary.FailCount, total),
		v.doc.Summary.SkipCount, charts.FormatPercent(v.doc.Summary.SkipCount, total),
		v.doc.Summary.ErrorCount, charts.FormatPercent(v.doc.Summary.ErrorCount, total))
	if len(v.violations) > 0 {
		fmt.Fprintf(v.header, "[red]%d schema violations (see validate command)[-]\n", len(v.violations))
	}

	v.table.Clear()
	v.rowResults = v.rowResults[:0]

	headers := []string{"Status", "Group", "Test", "Expression"}
	for col, h := range headers {
		v.table.SetCell(0, col, tview.NewTableCell("[::b]"+h).
			SetSelectable(false))
	}
	v.rowResults = append(v.rowResults, nil)

	row := 1
	shown := 0
	for i := range buckets {
		b := &buckets[i]
		if b.Name != query.AllGroupName {
			v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[::b][yellow]%s (%d)", tview.Escape(b.Name), len(b.Results))).
				SetSelectable(false))
			for col := 1; col < len(headers); col++ {
				v.table.SetCell(row, col, tview.NewTableCell("").SetSelectable(false))
			}
			v.rowResults = append(v.rowResults, nil)
			row++
		}
		for j := range b.Results {
			r := &b.Results[j]
			v.table.SetCell(row, 0, tview.NewTableCell(statusTag(r.TestStatus)))
			v.table.SetCell(row, 1, tview.NewTableCell(tview.Escape(r.GroupName)))
			v.table.SetCell(row, 2, tview.NewTableCell(tview.Escape(r.TestName)))
			v.table.SetCell(row, 3, tview.NewTableCell(tview.Escape(truncate(r.Expression, 60))))
			v.rowResults = append(v.rowResults, r)
			row++
			shown++
		}
	}

	v.footer.Clear()
	fmt.Fprintf(v.footer, "%d shown  status=%s group=%s sort=%s/%s  [s]tatus [g]roup s[o]rt [r]everse [/]search [q]uit",
		shown, v.params.Status, v.params.GroupBy, v.params.SortBy, v.params.Order)
}

// showDetail opens a modal with the full record for one table row
func (v *Viewer) showDetail(row int) {
	if row < 0 || row >= len(v.rowResults) || v.rowResults[row] == nil {
		return
	}
	r := v.rowResults[row]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s :: %s [%s]\n\n", r.GroupName, r.TestName, r.TestStatus)
	fmt.Fprintf(&sb, "expression:\n%s\n", r.Expression)
	if r.Expected != "" || r.Actual != "" {
		fmt.Fprintf(&sb, "\nexpected: %s\nactual:   %s\n", r.Expected, r.Actual)
	}
	if r.Error != nil {
		fmt.Fprintf(&sb, "\nerror: %s %s\n%s\n", r.Error.Name, r.Error.Message, r.Error.Stack)
	}

	detail := tview.NewModal().
		SetText(sb.String()).
		AddButtons([]string{"close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			v.pages.RemovePage("detail")
			v.app.SetFocus(v.table)
		})
	v.pages.AddPage("detail", detail, true, true)
}

func statusTag(status domain.Status) string {
	switch status {
	case domain.StatusPass:
		return "[green]pass"
	case domain.StatusFail:
		return "[red]fail"
	case domain.StatusSkip:
		return "[yellow]skip"
	case domain.StatusError:
		return "[fuchsia]error"
	default:
		return string(status)
	}
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
