package ui

import (
	"encoding/json"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"cqv/internal/charts"
	"cqv/internal/compare"
	"cqv/internal/dnd"
	"cqv/internal/domain"
	"cqv/internal/query"
)

// comparisonTab is the fixed tab holding the cross-file matrix
const comparisonTab = "comparison"

// tabPayloadType is the only drag payload type the tab bar accepts
const tabPayloadType = "tab"

// Dashboard is the multi-file view: one tab per loaded document plus a
// comparison tab. Tabs are reordered by dragging them along the tab bar;
// the drop position is resolved against the tab midpoints.
type Dashboard struct {
	app  *tview.Application
	docs *domain.DocumentSet
	log  *zap.Logger

	tabs     []string // tab ids: filenames + comparisonTab
	active   int
	included map[string]bool // files included in the comparison

	tabBar  *tview.TextView
	content *tview.Pages

	dragSource *dnd.Source
	dropTarget *dnd.Target
	tabSpans   []dnd.Span
	pressedTab int // tab index under the last mouse-down, -1 when none
}

// NewDashboard creates a Dashboard over the loaded documents. Every file
// starts included in the comparison.
func NewDashboard(docs *domain.DocumentSet, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dashboard{
		app:        tview.NewApplication(),
		docs:       docs,
		log:        log,
		included:   make(map[string]bool),
		pressedTab: -1,
	}
	for _, f := range docs.Filenames {
		d.tabs = append(d.tabs, f)
		d.included[f] = true
	}
	d.tabs = append(d.tabs, comparisonTab)

	d.dragSource = dnd.NewSource(true)
	d.dropTarget = dnd.NewTarget(true, []string{tabPayloadType}, dnd.Rect{}, log)
	d.dropTarget.OnDrop = d.applyReorder
	return d
}

// Run builds the layout and blocks until the user quits
func (d *Dashboard) Run() error {
	d.tabBar = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	d.content = tview.NewPages()
	for _, f := range d.docs.Filenames {
		d.content.AddPage(f, d.buildFilePage(f), true, false)
	}
	d.content.AddPage(comparisonTab, d.buildComparisonPage(), true, false)

	footer := tview.NewTextView().SetDynamicColors(true)
	fmt.Fprint(footer, "drag tabs to reorder  [space] toggle file in comparison  [tab] next  [q]uit")

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(d.tabBar, 1, 0, false).
		AddItem(d.content, 0, 1, true).
		AddItem(footer, 1, 0, false)

	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Rune() == 'q':
			d.app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			d.activate((d.active + 1) % len(d.tabs))
			return nil
		case event.Rune() == ' ':
			d.toggleComparisonInclusion()
			return nil
		}
		return event
	})
	d.app.SetMouseCapture(d.handleMouse)

	d.redrawTabs()
	d.activate(0)

	return d.app.SetRoot(layout, true).EnableMouse(true).Run()
}

// handleMouse feeds pointer events into the drag state machine. A press
// on a tab arms a potential drag; movement off the pressed tab starts it;
// release either drops (when dragging) or activates the pressed tab.
func (d *Dashboard) handleMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	x, y := event.Position()
	barX, barY, barW, _ := d.tabBar.GetRect()
	d.dropTarget.SetBounds(dnd.Rect{X: barX, Y: barY, Width: barW, Height: 1})
	onBar := y == barY

	switch action {
	case tview.MouseLeftDown:
		if onBar {
			d.pressedTab = d.tabAt(x)
		} else {
			d.pressedTab = -1
		}

	case tview.MouseMove:
		if d.pressedTab >= 0 && d.dragSource.State() != dnd.StateDragging {
			d.dragSource.Start(dnd.Payload{
				Type:  tabPayloadType,
				ID:    d.tabs[d.pressedTab],
				Index: d.pressedTab,
			})
			d.redrawTabs()
		}
		if d.dragSource.State() == dnd.StateDragging {
			if onBar {
				d.dropTarget.Enter(tabPayloadType)
			} else {
				d.dropTarget.Leave(x, y)
			}
		}

	case tview.MouseLeftUp:
		if d.dragSource.State() == dnd.StateDragging {
			text, err := json.Marshal(d.dragSource.Payload())
			if err == nil && onBar {
				d.dropTarget.HandleDrop(string(text), x, d.tabSpans)
			}
			d.dragSource.End()
			d.redrawTabs()
		} else if d.pressedTab >= 0 && onBar && d.tabAt(x) == d.pressedTab {
			d.activate(d.pressedTab)
		}
		d.pressedTab = -1
	}

	return event, action
}

// applyReorder moves the dragged tab to the resolved insertion index
func (d *Dashboard) applyReorder(drop dnd.Drop) {
	from := drop.Payload.Index
	if from < 0 || from >= len(d.tabs) || d.tabs[from] != drop.Payload.ID {
		d.log.Warn("stale drag payload, ignoring reorder",
			zap.String("id", drop.Payload.ID),
			zap.Int("index", from))
		return
	}
	activeID := d.tabs[d.active]
	d.tabs = dnd.Move(d.tabs, from, drop.Index)
	for i, id := range d.tabs {
		if id == activeID {
			d.active = i
		}
	}
	d.redrawTabs()
}

// tabAt returns the tab index under pointer column x, or -1
func (d *Dashboard) tabAt(x int) int {
	for i, span := range d.tabSpans {
		if x >= span.Start && x < span.End {
			return i
		}
	}
	return -1
}

// redrawTabs repaints the tab bar and recomputes each tab's span for the
// drop-position math.
func (d *Dashboard) redrawTabs() {
	d.tabBar.Clear()
	d.tabSpans = d.tabSpans[:0]

	barX, _, _, _ := d.tabBar.GetRect()
	pos := barX
	for i, id := range d.tabs {
		label := id
		if id != comparisonTab && !d.included[id] {
			label += " ○"
		}
		cell := fmt.Sprintf(" %s ", label)
		if i == d.active {
			fmt.Fprintf(d.tabBar, "[black:aqua]%s[-:-]", tview.Escape(cell))
		} else if d.dragSource.State() == dnd.StateDragging && d.dragSource.Payload().Index == i {
			fmt.Fprintf(d.tabBar, "[::d]%s[::-]", tview.Escape(cell))
		} else {
			fmt.Fprintf(d.tabBar, "%s", tview.Escape(cell))
		}
		fmt.Fprint(d.tabBar, "│")

		width := len([]rune(cell))
		d.tabSpans = append(d.tabSpans, dnd.Span{Start: pos, End: pos + width})
		pos += width + 1
	}
}

// activate switches the visible page
func (d *Dashboard) activate(i int) {
	if i < 0 || i >= len(d.tabs) {
		return
	}
	d.active = i
	d.content.SwitchToPage(d.tabs[i])
	d.redrawTabs()
}

// toggleComparisonInclusion flips whether the active tab's file is part of
// the comparison and rebuilds the comparison page.
func (d *Dashboard) toggleComparisonInclusion() {
	id := d.tabs[d.active]
	if id == comparisonTab {
		return
	}
	d.included[id] = !d.included[id]
	d.content.RemovePage(comparisonTab)
	d.content.AddPage(comparisonTab, d.buildComparisonPage(), true, false)
	d.redrawTabs()
}

// buildFilePage renders one document: summary header plus its results
func (d *Dashboard) buildFilePage(filename string) tview.Primitive {
	doc := d.docs.Get(filename)

	header := tview.NewTextView().SetDynamicColors(true)
	total := doc.Summary.Total()
	fmt.Fprintf(header, "[::b]%s[-:-:-]\n", tview.Escape(doc.Engine.Label(filename)))
	fmt.Fprintf(header, "[green]pass %d (%s)[-]  [red]fail %d (%s)[-]  [yellow]skip %d[-]  [fuchsia]error %d[-]",
		doc.Summary.PassCount, charts.FormatPercent(doc.Summary.PassCount, total),
		doc.Summary.FailCount, charts.FormatPercent(doc.Summary.FailCount, total),
		doc.Summary.SkipCount, doc.Summary.ErrorCount)

	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	for col, h := range []string{"Status", "Group", "Test", "Expression"} {
		table.SetCell(0, col, tview.NewTableCell("[::b]"+h).SetSelectable(false))
	}
	sorted := query.Sort(doc.Results, query.SortByGroup, query.SortAsc)
	for i, r := range sorted {
		table.SetCell(i+1, 0, tview.NewTableCell(statusTag(r.TestStatus)))
		table.SetCell(i+1, 1, tview.NewTableCell(tview.Escape(r.GroupName)))
		table.SetCell(i+1, 2, tview.NewTableCell(tview.Escape(r.TestName)))
		table.SetCell(i+1, 3, tview.NewTableCell(tview.Escape(truncate(r.Expression, 60))))
	}

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 3, 0, false).
		AddItem(table, 0, 1, true)
}

// buildComparisonPage renders the matrix over the currently included files
func (d *Dashboard) buildComparisonPage() tview.Primitive {
	var included []string
	for _, f := range d.docs.Filenames {
		if d.included[f] {
			included = append(included, f)
		}
	}
	matrix := compare.Build(d.docs, included)

	header := tview.NewTextView().SetDynamicColors(true)
	inconsistent := 0
	for _, row := range matrix.Tests {
		if row.Consistency == domain.ConsistencyInconsistent {
			inconsistent++
		}
	}
	fmt.Fprintf(header, "[::b]comparison[-:-:-]  %d files, %d tests, [red]%d inconsistent[-]",
		len(matrix.Files), len(matrix.Tests), inconsistent)

	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	col := 0
	for _, h := range []string{"Group", "Test", "Consistency"} {
		table.SetCell(0, col, tview.NewTableCell("[::b]"+h).SetSelectable(false))
		col++
	}
	for _, f := range matrix.Files {
		table.SetCell(0, col, tview.NewTableCell("[::b]"+tview.Escape(d.docs.EngineLabel(f))).SetSelectable(false))
		col++
	}

	rows := compare.SortTests(matrix.Tests, compare.MatrixSortByConsistency, false)
	for i, row := range rows {
		table.SetCell(i+1, 0, tview.NewTableCell(tview.Escape(row.GroupName)))
		table.SetCell(i+1, 1, tview.NewTableCell(tview.Escape(row.TestName)))
		table.SetCell(i+1, 2, tview.NewTableCell(consistencyTag(row.Consistency)))
		for j, f := range matrix.Files {
			if fr := row.ResultFor(f); fr != nil {
				table.SetCell(i+1, 3+j, tview.NewTableCell(statusTag(fr.Status)))
			} else {
				table.SetCell(i+1, 3+j, tview.NewTableCell("-"))
			}
		}
	}

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(table, 0, 1, true)
}

func consistencyTag(c domain.Consistency) string {
	switch c {
	case domain.ConsistencyConsistent:
		return "[green]consistent"
	case domain.ConsistencyInconsistent:
		return "[red]inconsistent"
	default:
		return string(c)
	}
}
