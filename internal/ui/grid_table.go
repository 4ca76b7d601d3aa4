// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

const (
	sortAscMarker  = " ▲"
	sortDescMarker = " ▼"
	loadingMarker  = " ⟳"
	noDataText     = "No data"

	columnMenuID  = "column-menu"
	toggleListID  = "column-toggles"
	filterFormID  = "filter-form"
	pickerWidth   = 40
	filterWidth   = 60
	pickerMaxRows = 14
)

// PageSizes lists the page sizes offered by the size control.
var PageSizes = []int{10, 20, 30, 40, 50, 100}

// GridTable renders a grid view and drives the grid from the keyboard.
type GridTable struct {
	*tview.Flex

	grid    grid.Table
	table   *tview.Table
	filters *tview.TextView
	banner  *tview.TextView
	pager   *tview.TextView
	actions *KeyActions
	pages   *Pages

	view    grid.View
	queueFn func(func())
	errFn   func(error)
	focusFn func(tview.Primitive)
	ctx     context.Context
	mx      sync.RWMutex
}

var _ grid.Listener = (*GridTable)(nil)

// NewGridTable returns a table bound to a grid.
func NewGridTable(g grid.Table, pages *Pages) *GridTable {
	t := GridTable{
		Flex:    tview.NewFlex().SetDirection(tview.FlexRow),
		grid:    g,
		table:   tview.NewTable(),
		filters: tview.NewTextView(),
		banner:  tview.NewTextView(),
		pager:   tview.NewTextView(),
		actions: NewKeyActions(),
		pages:   pages,
		ctx:     context.Background(),
	}

	return &t
}

// Init builds the layout and binds keys.
func (t *GridTable) Init(ctx context.Context) error {
	t.ctx = ctx

	t.table.SetBorder(true)
	t.table.SetBorderAttributes(tcell.AttrBold)
	t.table.SetBorderPadding(0, 0, 1, 1)
	t.table.SetBackgroundColor(tcell.ColorDefault)
	t.table.SetFixed(1, 0)
	t.table.SetSelectable(true, false)
	t.table.SetInputCapture(t.keyboard)

	for _, tv := range []*tview.TextView{t.filters, t.banner, t.pager} {
		tv.SetDynamicColors(true)
		tv.SetBackgroundColor(tcell.ColorDefault)
		tv.SetBorderPadding(0, 0, 1, 1)
	}
	t.pager.SetTextAlign(tview.AlignRight)

	t.AddItem(t.filters, 0, 0, false).
		AddItem(t.banner, 0, 0, false).
		AddItem(t.table, 0, 1, true).
		AddItem(t.pager, 1, 0, false)

	t.bindKeys()
	t.render(t.grid.View())

	return nil
}

// Start mounts the grid and listens for its changes.
func (t *GridTable) Start() {
	t.grid.AddListener(t)
	t.grid.Mount(t.ctx)
}

// Stop unmounts the grid.
func (t *GridTable) Stop() {
	t.grid.RemoveListener(t)
	t.grid.Unmount()
}

// Grid returns the driven grid.
func (t *GridTable) Grid() grid.Table {
	return t.grid
}

// Table returns the inner table.
func (t *GridTable) Table() *tview.Table {
	return t.table
}

// Actions returns the bound key actions.
func (t *GridTable) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings and toolbar controls.
func (t *GridTable) Hints() MenuHints {
	hh := t.actions.Hints()
	for _, c := range t.View().Toolbar {
		if c.Key == 0 {
			continue
		}
		hh = append(hh, MenuHint{Mnemonic: string(c.Key), Description: c.Name, Visible: true})
	}

	return hh
}

// SetQueueFn sets how renders are scheduled onto the UI thread.
func (t *GridTable) SetQueueFn(fn func(func())) {
	t.queueFn = fn
}

// SetErrorFn sets the callback reporting control failures.
func (t *GridTable) SetErrorFn(fn func(error)) {
	t.errFn = fn
}

// SetFocusFn sets how overlays grab the focus.
func (t *GridTable) SetFocusFn(fn func(tview.Primitive)) {
	t.focusFn = fn
}

// SetFilter searches the current page.
func (t *GridTable) SetFilter(q string) {
	t.grid.SetGlobalFilter(q)
}

// View returns the last rendered snapshot.
func (t *GridTable) View() grid.View {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.view
}

// GridChanged re-renders on grid changes.
func (t *GridTable) GridChanged() {
	v := t.grid.View()
	if t.queueFn == nil {
		t.render(v)
		return
	}
	t.queueFn(func() { t.render(v) })
}

// SelectedRow returns the highlighted row.
func (t *GridTable) SelectedRow() (grid.ViewRow, bool) {
	row, _ := t.table.GetSelection()
	cell := t.table.GetCell(row, 0)
	if row == 0 || cell == nil {
		return grid.ViewRow{}, false
	}
	id, ok := cell.GetReference().(string)
	if !ok {
		return grid.ViewRow{}, false
	}

	return t.View().FindRow(id)
}

func (t *GridTable) render(v grid.View) {
	t.mx.Lock()
	t.view = v
	t.mx.Unlock()

	t.renderTitle(v)
	t.renderFilters(v)
	t.renderBanner(v)
	t.renderTable(v)
	t.renderPager(v)
}

func (t *GridTable) renderTitle(v grid.View) {
	title := fmt.Sprintf(" [aqua::b]%s[white::-][[fuchsia::b]%d[white::-]]", tview.Escape(v.Title), v.Total)
	if v.GlobalFilter != "" {
		title += fmt.Sprintf(" [gray::]</%s>[-::]", tview.Escape(v.GlobalFilter))
	}
	if v.Loading {
		title += "[darkcyan::]" + loadingMarker + "[-::]"
	}
	t.table.SetTitle(title + " ")
}

func (t *GridTable) renderFilters(v grid.View) {
	ff := make([]string, 0, len(v.Filters))
	for _, f := range v.Filters {
		if f.Value == "" {
			continue
		}
		ff = append(ff, fmt.Sprintf("[aqua::]%s[-::]=%s", f.Key, tview.Escape(filterLabel(f))))
	}
	t.filters.Clear()
	if len(ff) == 0 {
		t.ResizeItem(t.filters, 0, 0)
		return
	}
	_, _ = fmt.Fprintf(t.filters, "[gray::]filters:[-::] %s", strings.Join(ff, "  "))
	t.ResizeItem(t.filters, 1, 0)
}

func (t *GridTable) renderBanner(v grid.View) {
	t.banner.Clear()
	if v.Batch == nil {
		t.ResizeItem(t.banner, 0, 0)
		return
	}
	hh := make([]string, 0, len(v.Batch.Controls)+1)
	for _, c := range v.Batch.Controls {
		hh = append(hh, controlHint(c))
	}
	hh = append(hh, "<esc> dismiss")
	_, _ = fmt.Fprintf(t.banner, "[black:yellow:b] %d selected [-:-:-] %s", v.Batch.Count, strings.Join(hh, "  "))
	t.ResizeItem(t.banner, 1, 0)
}

func (t *GridTable) renderTable(v grid.View) {
	row, _ := t.table.GetSelection()
	t.table.Clear()

	for col, c := range v.Columns {
		cell := tview.NewTableCell(tview.Escape(c.Header + sortMarker(c.Sort)))
		cell.SetTextColor(model1.HeaderColor)
		cell.SetAttributes(tcell.AttrBold)
		cell.SetAlign(c.Attrs.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		t.table.SetCell(0, col, cell)
	}

	if v.Empty {
		cell := tview.NewTableCell(noDataText)
		cell.SetTextColor(model1.DisabledColor)
		cell.SetAlign(tview.AlignCenter)
		cell.SetSelectable(false)
		cell.SetExpansion(1)
		t.table.SetCell(1, 0, cell)
		return
	}

	for r, vr := range v.Rows {
		color := model1.Colorer(vr.Selected, false)
		for col, field := range vr.Fields {
			cell := tview.NewTableCell(tview.Escape(field))
			cell.SetTextColor(color)
			cell.SetExpansion(1)
			if col < len(v.Columns) {
				cell.SetAlign(v.Columns[col].Attrs.Align)
				if v.Columns[col].Kind == grid.ColumnActions {
					cell.SetTextColor(model1.DisabledColor)
				}
			}
			cell.SetReference(vr.ID)
			t.table.SetCell(r+1, col, cell)
		}
	}

	switch {
	case row < 1:
		row = 1
	case row > len(v.Rows):
		row = len(v.Rows)
	}
	t.table.Select(row, 0)
}

func (t *GridTable) renderPager(v grid.View) {
	t.pager.Clear()
	if v.Pagination == nil {
		return
	}
	p := v.Pagination
	_, _ = fmt.Fprintf(t.pager, "[gray::]page[-::] %d/%d  [gray::]size[-::] %d  [gray::]total[-::] %d",
		p.PageIndex+1, p.PageCount, p.PageSize, p.Total)
}

func (t *GridTable) bindKeys() {
	t.actions.Bulk(KeyMap{
		KeySpace:           NewKeyAction("Mark", t.toggleMarkCmd, true),
		tcell.KeyCtrlSpace: NewKeyAction("Mark Page", t.toggleAllCmd, true),
		KeyLeftBracket:     NewKeyAction("Prev Page", t.pageCmd(t.grid.PreviousPage), true),
		KeyRightBracket:    NewKeyAction("Next Page", t.pageCmd(t.grid.NextPage), true),
		KeyLeftBrace:       NewKeyAction("First Page", t.pageCmd(t.grid.FirstPage), false),
		KeyRightBrace:      NewKeyAction("Last Page", t.pageCmd(t.grid.LastPage), false),
		KeyPlus:            NewKeyAction("Page Size+", t.pageSizeCmd(1), false),
		KeyMinus:           NewKeyAction("Page Size-", t.pageSizeCmd(-1), false),
		KeyS:               NewKeyAction("Sort", t.columnMenuCmd, true),
		KeyV:               NewKeyAction("Columns", t.toggleListCmd, true),
		KeyF:               NewKeyAction("Filter", t.filterFormCmd, true),
		KeyShiftZ:          NewKeyAction("Reset", t.resetCmd, true),
		tcell.KeyCtrlR:     NewKeyAction("Refresh", t.refreshCmd, true),
		tcell.KeyEsc:       NewKeyAction("Dismiss", t.dismissCmd, false),
	})
}

func (t *GridTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		case 'g':
			return tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone)
		case 'G':
			return tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone)
		}
		if ctl, ok := t.controlFor(evt.Rune()); ok {
			t.Run(ctl)
			return nil
		}
	}
	if a, ok := t.actions.Get(key); ok {
		return a.Action(evt)
	}

	return evt
}

// controlFor looks a rune up in the batch controls while the banner shows,
// then in the toolbar and last in the controls of the highlighted row.
func (t *GridTable) controlFor(r rune) (grid.Control, bool) {
	v := t.View()
	if v.Batch != nil {
		if c, ok := findControl(v.Batch.Controls, r); ok {
			return c, true
		}
	}
	if c, ok := findControl(v.Toolbar, r); ok {
		return c, true
	}
	row, ok := t.SelectedRow()
	if !ok {
		return grid.Control{}, false
	}

	return findControl(row.Controls, r)
}

// Run executes a control off the UI thread, confirming dangerous ones first.
func (t *GridTable) Run(ctl grid.Control) {
	if ctl.Run == nil {
		return
	}
	exec := func() {
		go func() {
			if err := ctl.Run(t.ctx); err != nil {
				t.report(fmt.Errorf("%s failed: %w", strings.ToLower(ctl.Name), err))
			}
		}()
	}
	if !ctl.Dangerous || t.pages == nil {
		exec()
		return
	}
	ShowConfirm(t.pages, ConfirmOpts{
		Message:   fmt.Sprintf("%s?", ctl.Name),
		Action:    ctl.Name,
		Dangerous: true,
		OnConfirm: exec,
		OnCancel:  func() { t.focus(t.table) },
	})
}

func (t *GridTable) report(err error) {
	if t.errFn == nil {
		return
	}
	if t.queueFn == nil {
		t.errFn(err)
		return
	}
	t.queueFn(func() { t.errFn(err) })
}

func (t *GridTable) focus(p tview.Primitive) {
	if t.focusFn != nil {
		t.focusFn(p)
	}
}

func (t *GridTable) toggleMarkCmd(evt *tcell.EventKey) *tcell.EventKey {
	row, ok := t.SelectedRow()
	if !ok {
		return evt
	}
	if err := t.grid.ToggleRowSelected(row.ID); err != nil {
		return evt
	}
	r, c := t.table.GetSelection()
	if r < t.table.GetRowCount()-1 {
		t.table.Select(r+1, c)
	}

	return nil
}

func (t *GridTable) toggleAllCmd(evt *tcell.EventKey) *tcell.EventKey {
	if err := t.grid.ToggleAllPageRowsSelected(!t.View().AllSelected); err != nil {
		return evt
	}
	return nil
}

func (t *GridTable) pageCmd(f func()) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		f()
		return nil
	}
}

func (t *GridTable) pageSizeCmd(step int) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		size := grid.DefaultInitialPageSize
		if p := t.View().Pagination; p != nil {
			size = p.PageSize
		}
		t.grid.SetPageSize(NextPageSize(size, step))
		return nil
	}
}

// NextPageSize steps through PageSizes from the current size.
func NextPageSize(current, step int) int {
	idx := slices.Index(PageSizes, current)
	if idx < 0 {
		idx, _ = slices.BinarySearch(PageSizes, current)
		if step > 0 {
			idx--
		}
	}
	idx = min(max(idx+step, 0), len(PageSizes)-1)

	return PageSizes[idx]
}

func (t *GridTable) resetCmd(*tcell.EventKey) *tcell.EventKey {
	t.grid.Reset()
	return nil
}

func (t *GridTable) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	t.grid.Refresh()
	return nil
}

func (t *GridTable) dismissCmd(evt *tcell.EventKey) *tcell.EventKey {
	if b := t.View().Batch; b != nil && b.Dismiss != nil {
		b.Dismiss()
		return nil
	}
	return evt
}

func (t *GridTable) columnMenuCmd(evt *tcell.EventKey) *tcell.EventKey {
	if t.pages == nil {
		return evt
	}
	v := t.View()
	items := make([]PickerItem, 0, len(v.Columns))
	for _, c := range v.Columns {
		if c.Kind != grid.ColumnData {
			continue
		}
		col := c
		items = append(items, PickerItem{
			Label:    col.Header + sortMarker(col.Sort),
			Disabled: !col.Sortable && !col.CanToggle,
			Selected: func() { t.showColumnActions(col) },
		})
	}
	t.showPicker(columnMenuID, "Columns", items)

	return nil
}

func (t *GridTable) showColumnActions(col grid.ViewColumn) {
	apply := func(f func() error) func() {
		return func() {
			if err := f(); err != nil {
				t.report(err)
			}
			t.focus(t.table)
		}
	}
	items := []PickerItem{
		{Label: "Sort ascending", Disabled: !col.Sortable, Selected: apply(col.SortAsc)},
		{Label: "Sort descending", Disabled: !col.Sortable, Selected: apply(col.SortDesc)},
		{Label: "Clear sort", Disabled: col.Sort == grid.SortNone, Selected: apply(col.ClearSort)},
		{Label: "Hide", Disabled: !col.CanToggle, Selected: apply(func() error { return col.SetVisible(false) })},
	}
	t.showPicker(columnMenuID, col.Header, items)
}

func (t *GridTable) toggleListCmd(evt *tcell.EventKey) *tcell.EventKey {
	if t.pages == nil {
		return evt
	}
	t.showToggles(0)

	return nil
}

func (t *GridTable) showToggles(current int) {
	v := t.View()
	items := make([]PickerItem, 0, len(v.Toggles))
	for i, c := range v.Toggles {
		col, idx := c, i
		items = append(items, PickerItem{
			Label:    checkbox(col.Visible) + " " + col.Header,
			Disabled: !col.CanToggle,
			Selected: func() {
				if err := col.SetVisible(!col.Visible); err != nil {
					t.report(err)
				}
				t.showToggles(idx)
			},
		})
	}
	p := t.showPicker(toggleListID, "Visible Columns", items)
	p.SetCurrentItem(current)
}

func (t *GridTable) filterFormCmd(evt *tcell.EventKey) *tcell.EventKey {
	v := t.View()
	if t.pages == nil || len(v.Filters) == 0 {
		return evt
	}
	done := func() {
		t.pages.DismissModal(filterFormID)
		t.focus(t.table)
	}
	f := NewFilterForm(v.Filters, done)
	t.pages.ShowModal(filterFormID, f, filterWidth, f.Height())
	t.focus(f)

	return nil
}

func (t *GridTable) showPicker(id, title string, items []PickerItem) *Picker {
	p := NewPicker(title, items, func() {
		t.pages.DismissModal(id)
		t.focus(t.table)
	})
	t.pages.ShowModal(id, p, pickerWidth, min(len(items), pickerMaxRows)+2)
	t.focus(p)

	return p
}

func findControl(cc []grid.Control, r rune) (grid.Control, bool) {
	for _, c := range cc {
		if c.Key == r {
			return c, true
		}
	}
	return grid.Control{}, false
}

func controlHint(c grid.Control) string {
	if c.Key == 0 {
		return c.Name
	}
	return fmt.Sprintf("<%c> %s", c.Key, c.Name)
}

func filterLabel(f grid.FilterControl) string {
	for _, o := range f.Options {
		if o.Value == f.Value {
			return o.Label
		}
	}
	return f.Value
}

func sortMarker(d grid.SortDirection) string {
	switch d {
	case grid.SortAsc:
		return sortAscMarker
	case grid.SortDesc:
		return sortDescMarker
	default:
		return ""
	}
}

func checkbox(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}
