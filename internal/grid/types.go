// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

import (
	"context"
	"errors"

	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/model1"
)

var (
	// ErrNotHideable is returned when hiding a column that opted out of hiding.
	ErrNotHideable = errors.New("column is not hideable")

	// ErrLastVisibleColumn is returned when hiding the only visible data column.
	ErrLastVisibleColumn = errors.New("cannot hide the last visible column")

	// ErrNotSortable is returned when sorting a column that opted out of sorting.
	ErrNotSortable = errors.New("column is not sortable")

	// ErrUnknownColumn is returned for keys that match no column.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownRow is returned when selecting a row that is not in the current page.
	ErrUnknownRow = errors.New("row is not in the current page")

	// ErrSelectionDisabled is returned when the grid carries no batch actions.
	ErrSelectionDisabled = errors.New("row selection is disabled")
)

const (
	// DefaultInitialPageSize is the page size a grid mounts with.
	DefaultInitialPageSize = 50

	// DefaultResetPageSize is the page size restored by Reset.
	DefaultResetPageSize = 10
)

// Request is the wire level page request. Page is 1-based.
type Request struct {
	Page int
	Size int
}

// Response is one page of rows plus the total row count on the server.
type Response[R any] struct {
	List  []R
	Total int
}

// Filters maps a column key to its raw filter value.
type Filters[K ~string] map[K]string

// Clone returns a copy of the filters. The copy is never nil.
func (f Filters[K]) Clone() Filters[K] {
	cp := make(Filters[K], len(f))
	for k, v := range f {
		cp[k] = v
	}
	return cp
}

// Equal checks if both filter sets carry the same values.
func (f Filters[K]) Equal(o Filters[K]) bool {
	if len(f) != len(o) {
		return false
	}
	for k, v := range f {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// FetchFunc loads one page of rows for the given pagination and filters.
type FetchFunc[R any, K ~string] func(ctx context.Context, req Request, filters Filters[K]) (Response[R], error)

// Option is one choice of a discrete filter selector.
type Option struct {
	Label string
	Value string
}

// Param describes a filter control. Params with options render as a selector,
// the others as free text.
type Param[K ~string] struct {
	Key         K
	Placeholder string
	Options     []Option
}

// Control is an action a grid offers on a row, on a selection or in its toolbar.
type Control struct {
	Name      string
	Key       rune
	Dangerous bool
	Run       func(ctx context.Context) error
}

// Header carries the grid title and its toolbar controls.
type Header struct {
	Title   string
	Toolbar []Control
}

// Actions renders per row and batch controls.
type Actions[R any] struct {
	Render      func(row R) []Control
	BatchRender func(rows []R) []Control
}

// Column describes a static grid column.
type Column[R any, K ~string] struct {
	Key    K
	Header string

	// Value extracts the raw value used for sorting and in-page search.
	Value func(R) string

	// Cell optionally overrides how the value is displayed.
	Cell func(R) string

	DisableSorting bool
	DisableHiding  bool
	Attrs          model1.Attrs
}

func (c Column[R, K]) render(r R) string {
	if c.Cell != nil {
		return c.Cell(r)
	}
	if c.Value != nil {
		return c.Value(r)
	}
	return ""
}

func (c Column[R, K]) value(r R) string {
	if c.Value != nil {
		return c.Value(r)
	}
	return c.render(r)
}

// SortSpec sorts one column.
type SortSpec[K ~string] struct {
	Key  K
	Desc bool
}

// Pagination tracks the 0-based page index and the page size.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// State is the full table state of a grid.
type State[K ~string] struct {
	Sorting          []SortSpec[K]
	ColumnFilters    Filters[K]
	ColumnVisibility map[K]bool
	RowSelection     map[string]bool
	Pagination       Pagination
	GlobalFilter     string
}

// Clone returns a deep copy of the state.
func (s State[K]) Clone() State[K] {
	cp := State[K]{
		ColumnFilters:    s.ColumnFilters.Clone(),
		ColumnVisibility: make(map[K]bool, len(s.ColumnVisibility)),
		RowSelection:     make(map[string]bool, len(s.RowSelection)),
		Pagination:       s.Pagination,
		GlobalFilter:     s.GlobalFilter,
	}
	if len(s.Sorting) > 0 {
		cp.Sorting = append([]SortSpec[K](nil), s.Sorting...)
	}
	for k, v := range s.ColumnVisibility {
		cp.ColumnVisibility[k] = v
	}
	for k, v := range s.RowSelection {
		cp.RowSelection[k] = v
	}

	return cp
}

func newState[K ~string](pageSize int) State[K] {
	return State[K]{
		ColumnFilters:    make(Filters[K]),
		ColumnVisibility: make(map[K]bool),
		RowSelection:     make(map[string]bool),
		Pagination:       Pagination{PageSize: pageSize},
	}
}

// Options tunes grid behaviors that are product decisions.
type Options struct {
	// InitialPageSize is the page size at mount.
	InitialPageSize int

	// ResetPageSize is the page size restored by Reset.
	ResetPageSize int

	// ResetPageOnFilterChange jumps back to the first page when a filter changes.
	ResetPageOnFilterChange bool

	// DiscardStaleResponses drops responses of all but the latest issued fetch.
	DiscardStaleResponses bool
}

// DefaultOptions returns the stock grid options.
func DefaultOptions() Options {
	return Options{
		InitialPageSize: DefaultInitialPageSize,
		ResetPageSize:   DefaultResetPageSize,
	}
}

func (o Options) normalize() Options {
	if o.InitialPageSize <= 0 {
		o.InitialPageSize = DefaultInitialPageSize
	}
	if o.ResetPageSize <= 0 {
		o.ResetPageSize = DefaultResetPageSize
	}
	return o
}

// Config wires a grid.
type Config[R any, K ~string] struct {
	Columns []Column[R, K]
	Request FetchFunc[R, K]

	// ID returns the row identity. Rows are identified by page position when unset.
	ID func(R) string

	Params  []Param[K]
	Header  Header
	Actions Actions[R]
	Options Options
	Logger  logger.Logger
}

// Handle lets a host page drive a grid.
type Handle interface {
	Refresh()
	Reset()
}

// Listener is notified whenever the grid state or its data changed.
type Listener interface {
	GridChanged()
}

// Table is the non generic surface the UI drives a grid through.
type Table interface {
	Handle

	Mount(ctx context.Context)
	Unmount()
	Wait()
	View() View
	AddListener(Listener)
	RemoveListener(Listener)

	SetPageIndex(int)
	SetPageSize(int)
	NextPage()
	PreviousPage()
	FirstPage()
	LastPage()

	SetGlobalFilter(string)

	ToggleRowSelected(id string) error
	ToggleAllPageRowsSelected(bool) error
	ClearSelection()
}

type commands struct {
	refresh, reset func()
}

func (c commands) Refresh() { c.refresh() }
func (c commands) Reset()   { c.reset() }
