// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/model1"
)

var _ Table = (*Controller[struct{}, string])(nil)

// Controller drives a remote, paginated and filterable table.
type Controller[R any, K ~string] struct {
	columns []Column[R, K]
	request FetchFunc[R, K]
	idFn    func(R) string
	params  []Param[K]
	header  Header
	actions Actions[R]
	opts    Options
	log     logger.Logger
	handle  Handle

	state   State[K]
	data    []R
	total   int
	loading bool
	seq     uint64
	mounted bool
	ctx     context.Context
	cancel  context.CancelFunc

	listeners []Listener
	inflight  sync.WaitGroup
	mx        sync.RWMutex
}

// New returns a grid. It does not fetch until mounted.
func New[R any, K ~string](cfg Config[R, K]) *Controller[R, K] {
	opts := cfg.Options.normalize()
	log := cfg.Logger
	if log == nil {
		log = logger.GetDefault()
	}
	c := Controller[R, K]{
		columns: cfg.Columns,
		request: cfg.Request,
		idFn:    cfg.ID,
		params:  cfg.Params,
		header:  cfg.Header,
		actions: cfg.Actions,
		opts:    opts,
		log:     log,
		state:   newState[K](opts.InitialPageSize),
		ctx:     context.Background(),
	}
	c.handle = commands{refresh: c.Refresh, reset: c.Reset}

	return &c
}

// Handle returns the command object a host uses to refresh or reset the grid.
func (c *Controller[R, K]) Handle() Handle {
	return c.handle
}

// Mount starts the grid lifetime and issues the initial fetch.
func (c *Controller[R, K]) Mount(ctx context.Context) {
	c.mx.Lock()
	if c.mounted {
		c.mx.Unlock()
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mounted = true
	c.fetchLocked()
	c.mx.Unlock()

	c.fireChanged()
}

// Unmount ends the grid lifetime. Responses landing afterwards are dropped.
func (c *Controller[R, K]) Unmount() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if !c.mounted {
		return
	}
	c.mounted, c.loading = false, false
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until every issued fetch has completed.
func (c *Controller[R, K]) Wait() {
	c.inflight.Wait()
}

// Refresh re-fetches the current page with the current filters.
func (c *Controller[R, K]) Refresh() {
	c.mx.Lock()
	c.fetchLocked()
	c.mx.Unlock()

	c.fireChanged()
}

// Reset restores every piece of table state to its defaults. A fetch is only
// issued when pagination or filters differ from the defaults.
func (c *Controller[R, K]) Reset() {
	c.mx.Lock()
	prev := c.state
	c.state = newState[K](c.opts.ResetPageSize)
	if prev.Pagination != c.state.Pagination || !prev.ColumnFilters.Equal(c.state.ColumnFilters) {
		c.fetchLocked()
	}
	c.mx.Unlock()

	c.fireChanged()
}

// State returns a copy of the table state.
func (c *Controller[R, K]) State() State[K] {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.state.Clone()
}

// Loading checks if a fetch is pending.
func (c *Controller[R, K]) Loading() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.loading
}

// Total returns the server side row count of the last applied response.
func (c *Controller[R, K]) Total() int {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.total
}

// Data returns the rows of the last applied response, unsorted and unfiltered.
func (c *Controller[R, K]) Data() []R {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return slices.Clone(c.data)
}

// Rows returns the page rows as displayed: searched then sorted.
func (c *Controller[R, K]) Rows() []R {
	c.mx.RLock()
	defer c.mx.RUnlock()

	rows, _ := c.rowsLocked()
	return rows
}

// SetFilter sets a column filter. An empty value removes it.
func (c *Controller[R, K]) SetFilter(key K, value string) {
	c.mx.Lock()
	if cur, ok := c.state.ColumnFilters[key]; (ok && cur == value) || (!ok && value == "") {
		c.mx.Unlock()
		return
	}
	if value == "" {
		delete(c.state.ColumnFilters, key)
	} else {
		c.state.ColumnFilters[key] = value
	}
	if c.opts.ResetPageOnFilterChange {
		c.state.Pagination.PageIndex = 0
	}
	c.fetchLocked()
	c.mx.Unlock()

	c.fireChanged()
}

// ClearFilters drops every column filter.
func (c *Controller[R, K]) ClearFilters() {
	c.mx.Lock()
	if len(c.state.ColumnFilters) == 0 {
		c.mx.Unlock()
		return
	}
	c.state.ColumnFilters = make(Filters[K])
	if c.opts.ResetPageOnFilterChange {
		c.state.Pagination.PageIndex = 0
	}
	c.fetchLocked()
	c.mx.Unlock()

	c.fireChanged()
}

// SetGlobalFilter searches the current page. It never fetches.
func (c *Controller[R, K]) SetGlobalFilter(q string) {
	c.mx.Lock()
	c.state.GlobalFilter = q
	c.mx.Unlock()

	c.fireChanged()
}

// AddListener registers a change listener.
func (c *Controller[R, K]) AddListener(l Listener) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters a change listener.
func (c *Controller[R, K]) RemoveListener(l Listener) {
	c.mx.Lock()
	defer c.mx.Unlock()

	victim := -1
	for i, lis := range c.listeners {
		if lis == l {
			victim = i
			break
		}
	}
	if victim >= 0 {
		c.listeners = append(c.listeners[:victim], c.listeners[victim+1:]...)
	}
}

func (c *Controller[R, K]) fireChanged() {
	c.mx.RLock()
	ll := slices.Clone(c.listeners)
	c.mx.RUnlock()

	for _, l := range ll {
		l.GridChanged()
	}
}

// fetchLocked snapshots the request and runs it in the background.
// Callers must hold the write lock.
func (c *Controller[R, K]) fetchLocked() {
	if !c.mounted || c.request == nil {
		return
	}
	c.seq++
	token, ctx := c.seq, c.ctx
	req := Request{
		Page: c.state.Pagination.PageIndex + 1,
		Size: c.state.Pagination.PageSize,
	}
	filters := c.state.ColumnFilters.Clone()
	c.loading = true

	c.inflight.Add(1)
	go c.run(ctx, token, req, filters)
}

func (c *Controller[R, K]) run(ctx context.Context, token uint64, req Request, filters Filters[K]) {
	defer c.inflight.Done()

	resp, err := c.request(ctx, req, filters)

	c.mx.Lock()
	if !c.mounted || c.ctx != ctx {
		c.mx.Unlock()
		return
	}
	if c.opts.DiscardStaleResponses && token != c.seq {
		c.mx.Unlock()
		c.log.Debug("stale page discarded", "page", req.Page, "size", req.Size)
		return
	}
	c.loading = false
	if err != nil {
		c.mx.Unlock()
		c.log.Error("fetch data error", "err", err, "page", req.Page, "size", req.Size)
		c.fireChanged()
		return
	}
	c.data, c.total = resp.List, resp.Total
	c.pruneSelectionLocked()
	c.mx.Unlock()

	c.fireChanged()
}

func (c *Controller[R, K]) rowID(r R, idx int) string {
	if c.idFn == nil {
		return strconv.Itoa(idx)
	}
	return c.idFn(r)
}

// rowsLocked filters then sorts the page. It returns the rows along with
// their ids.
func (c *Controller[R, K]) rowsLocked() ([]R, []string) {
	rows, ids := make([]R, 0, len(c.data)), make([]string, 0, len(c.data))
	for i, r := range c.data {
		if c.state.GlobalFilter != "" && !c.matchesLocked(r) {
			continue
		}
		rows, ids = append(rows, r), append(ids, c.rowID(r, i))
	}
	if len(c.state.Sorting) == 0 {
		return rows, ids
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	specs := c.state.Sorting
	sort.SliceStable(idx, func(a, b int) bool {
		for _, s := range specs {
			col, ok := c.column(s.Key)
			if !ok {
				continue
			}
			va, vb := col.value(rows[idx[a]]), col.value(rows[idx[b]])
			if va == vb {
				continue
			}
			x, y := idx[a], idx[b]
			if s.Desc {
				x, y, va, vb = y, x, vb, va
			}
			switch {
			case model1.Less(col.Attrs.Kind, ids[x], ids[y], va, vb):
				return true
			case model1.Less(col.Attrs.Kind, ids[y], ids[x], vb, va):
				return false
			}
		}
		return false
	})

	sorted, sortedIDs := make([]R, len(rows)), make([]string, len(rows))
	for i, j := range idx {
		sorted[i], sortedIDs[i] = rows[j], ids[j]
	}

	return sorted, sortedIDs
}

func (c *Controller[R, K]) matchesLocked(r R) bool {
	ff := make(model1.Fields, 0, len(c.columns))
	for _, col := range c.columns {
		if !c.isVisibleLocked(col.Key) {
			continue
		}
		ff = append(ff, col.render(r))
	}
	return ff.Contains(c.state.GlobalFilter)
}

func (c *Controller[R, K]) column(key K) (Column[R, K], bool) {
	for _, col := range c.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[R, K]{}, false
}
