// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

import (
	"strings"

	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/model1"
)

// ColumnKind tells data columns apart from the synthetic ones.
type ColumnKind int

const (
	ColumnData ColumnKind = iota
	ColumnSelect
	ColumnActions
)

const (
	// SelectColumnID identifies the selection column.
	SelectColumnID = "_select"

	// ActionsColumnID identifies the row actions column.
	ActionsColumnID = "_actions"
)

// ViewColumn is a rendered column along with its commands.
type ViewColumn struct {
	ID        string
	Header    string
	Kind      ColumnKind
	Attrs     model1.Attrs
	Sortable  bool
	Hideable  bool
	Visible   bool
	CanToggle bool
	Sort      SortDirection

	SortAsc    func() error
	SortDesc   func() error
	ClearSort  func() error
	SetVisible func(bool) error
}

// ViewRow is a rendered row. Fields line up with View.Columns.
type ViewRow struct {
	model1.Row

	Selected bool
	Controls []Control
}

// PageInfo describes the pagination control.
type PageInfo struct {
	PageIndex   int
	PageSize    int
	PageCount   int
	Total       int
	CanPrevious bool
	CanNext     bool
}

// BatchBanner is shown while rows are selected on a grid with batch actions.
type BatchBanner struct {
	Count    int
	Controls []Control
	Dismiss  func()
}

// FilterControl describes a filter input.
type FilterControl struct {
	Key         string
	Placeholder string
	Options     []Option
	Value       string
	Set         func(string)
}

// IsSelector checks if the filter picks among discrete options.
func (f FilterControl) IsSelector() bool {
	return len(f.Options) > 0
}

// View is a render ready snapshot of a grid.
type View struct {
	Title        string
	Toolbar      []Control
	Filters      []FilterControl
	GlobalFilter string
	Columns      []ViewColumn
	Toggles      []ViewColumn
	Rows         []ViewRow
	Empty        bool
	Loading      bool
	Total        int
	Pagination   *PageInfo
	Batch        *BatchBanner
	AllSelected  bool
	SomeSelected bool
}

// DataColumns returns the indexes of the data columns.
func (v View) DataColumns() []int {
	cols := make([]int, 0, len(v.Columns))
	for i, c := range v.Columns {
		if c.Kind == ColumnData {
			cols = append(cols, i)
		}
	}
	return cols
}

// FindRow returns the row with the given id.
func (v View) FindRow(id string) (ViewRow, bool) {
	for _, r := range v.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return ViewRow{}, false
}

// View builds a render snapshot of the grid.
func (c *Controller[R, K]) View() View {
	c.mx.RLock()
	rows, ids := c.rowsLocked()
	state := c.state.Clone()
	total, loading := c.total, c.loading
	pageCount := c.pageCountLocked()
	selected := c.selectedRowsLocked()
	all, some := c.pageSelectionLocked()
	toggles := make(map[K]bool, len(c.columns))
	for _, col := range c.columns {
		toggles[col.Key] = c.canHideLocked(col.Key)
	}
	c.mx.RUnlock()

	v := View{
		Title:        c.header.Title,
		Toolbar:      c.header.Toolbar,
		GlobalFilter: state.GlobalFilter,
		Loading:      loading,
		Total:        total,
		Empty:        len(rows) == 0,
		AllSelected:  all,
		SomeSelected: some,
	}
	v.Filters = c.viewFilters(state)

	if c.SelectionEnabled() {
		v.Columns = append(v.Columns, ViewColumn{
			ID:      SelectColumnID,
			Header:  "[ ]",
			Kind:    ColumnSelect,
			Attrs:   model1.Attrs{Align: tview.AlignCenter},
			Visible: true,
		})
		if all {
			v.Columns[0].Header = "[x]"
		} else if some {
			v.Columns[0].Header = "[-]"
		}
	}
	data := make([]Column[R, K], 0, len(c.columns))
	for _, col := range c.columns {
		vc := c.viewColumn(col, state, toggles[col.Key])
		if !col.DisableHiding {
			v.Toggles = append(v.Toggles, vc)
		}
		if !vc.Visible {
			continue
		}
		data = append(data, col)
		v.Columns = append(v.Columns, vc)
	}
	if c.actions.Render != nil {
		v.Columns = append(v.Columns, ViewColumn{
			ID:      ActionsColumnID,
			Header:  "ACTIONS",
			Kind:    ColumnActions,
			Visible: true,
		})
	}

	v.Rows = make([]ViewRow, 0, len(rows))
	for i, r := range rows {
		vr := ViewRow{Row: model1.Row{ID: ids[i], Fields: make(model1.Fields, 0, len(v.Columns))}}
		vr.Selected = state.RowSelection[ids[i]]
		if c.SelectionEnabled() {
			vr.Fields = append(vr.Fields, checkbox(vr.Selected))
		}
		for _, col := range data {
			cell := col.render(r)
			if col.Attrs.Decorator != nil {
				cell = col.Attrs.Decorator(cell)
			}
			vr.Fields = append(vr.Fields, model1.Truncate(cell, col.Attrs.MaxWidth))
		}
		if c.actions.Render != nil {
			vr.Controls = c.actions.Render(r)
			vr.Fields = append(vr.Fields, controlHints(vr.Controls))
		}
		v.Rows = append(v.Rows, vr)
	}

	if total > 0 {
		v.Pagination = &PageInfo{
			PageIndex:   state.Pagination.PageIndex,
			PageSize:    state.Pagination.PageSize,
			PageCount:   pageCount,
			Total:       total,
			CanPrevious: state.Pagination.PageIndex > 0,
			CanNext:     state.Pagination.PageIndex+1 < pageCount,
		}
	}
	if c.actions.BatchRender != nil && len(selected) > 0 {
		v.Batch = &BatchBanner{
			Count:    len(selected),
			Controls: c.actions.BatchRender(selected),
			Dismiss:  c.ClearSelection,
		}
	}

	return v
}

func (c *Controller[R, K]) viewColumn(col Column[R, K], state State[K], canToggle bool) ViewColumn {
	key := col.Key
	vis, ok := state.ColumnVisibility[key]
	vc := ViewColumn{
		ID:        string(key),
		Header:    col.Header,
		Kind:      ColumnData,
		Attrs:     col.Attrs,
		Sortable:  !col.DisableSorting,
		Hideable:  !col.DisableHiding,
		Visible:   !ok || vis,
		CanToggle: canToggle,
		Sort:      SortNone,
		SortAsc:   func() error { return c.ToggleSorting(key, false) },
		SortDesc:  func() error { return c.ToggleSorting(key, true) },
		ClearSort: func() error { return c.ClearSorting(key) },
		SetVisible: func(b bool) error {
			return c.SetColumnVisibility(key, b)
		},
	}
	for _, s := range state.Sorting {
		if s.Key != key {
			continue
		}
		vc.Sort = SortAsc
		if s.Desc {
			vc.Sort = SortDesc
		}
	}

	return vc
}

func (c *Controller[R, K]) viewFilters(state State[K]) []FilterControl {
	ff := make([]FilterControl, 0, len(c.params))
	for _, p := range c.params {
		key := p.Key
		ff = append(ff, FilterControl{
			Key:         string(key),
			Placeholder: p.Placeholder,
			Options:     p.Options,
			Value:       state.ColumnFilters[key],
			Set:         func(v string) { c.SetFilter(key, v) },
		})
	}
	return ff
}

func checkbox(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}

func controlHints(cc []Control) string {
	hh := make([]string, 0, len(cc))
	for _, ctl := range cc {
		if ctl.Key == 0 {
			hh = append(hh, ctl.Name)
			continue
		}
		hh = append(hh, string(ctl.Key)+":"+ctl.Name)
	}
	return strings.Join(hh, " ")
}
