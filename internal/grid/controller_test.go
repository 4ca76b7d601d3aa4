package grid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int
	Name string
}

type itemKey string

const (
	keyID   itemKey = "id"
	keyName itemKey = "name"
	keyNote itemKey = "note"
)

type call struct {
	req     Request
	filters Filters[itemKey]
}

// source is a canned backend that records every request it serves.
type source struct {
	mx    sync.Mutex
	calls []call
	pages map[int][]item
	total int
	err   error
}

func newSource(total int, pages map[int][]item) *source {
	return &source{pages: pages, total: total}
}

func (s *source) fetch(_ context.Context, req Request, ff Filters[itemKey]) (Response[item], error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.calls = append(s.calls, call{req: req, filters: ff})
	if s.err != nil {
		return Response[item]{}, s.err
	}
	return Response[item]{List: s.pages[req.Page], Total: s.total}, nil
}

func (s *source) setErr(err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.err = err
}

func (s *source) count() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.calls)
}

func (s *source) last() call {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.calls[len(s.calls)-1]
}

func itemColumns() []Column[item, itemKey] {
	return []Column[item, itemKey]{
		{
			Key:    keyID,
			Header: "ID",
			Value:  func(i item) string { return strconv.Itoa(i.ID) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber},
		},
		{
			Key:    keyName,
			Header: "NAME",
			Value:  func(i item) string { return i.Name },
		},
	}
}

func itemID(i item) string { return strconv.Itoa(i.ID) }

func newGrid(t *testing.T, src *source, opts Options, acts Actions[item]) *Controller[item, itemKey] {
	t.Helper()

	c := New(Config[item, itemKey]{
		Columns: itemColumns(),
		Request: src.fetch,
		ID:      itemID,
		Params: []Param[itemKey]{
			{Key: keyName, Placeholder: "Search"},
		},
		Actions: acts,
		Options: opts,
		Logger:  logger.NewForTests(),
	})
	t.Cleanup(c.Unmount)

	return c
}

func mount(t *testing.T, c *Controller[item, itemKey]) {
	t.Helper()
	c.Mount(context.Background())
	c.Wait()
}

func batchActions() Actions[item] {
	return Actions[item]{
		BatchRender: func(rr []item) []Control {
			return []Control{{Name: fmt.Sprintf("Delete %d", len(rr)), Key: 'd', Dangerous: true}}
		},
	}
}

func TestControllerMount(t *testing.T) {
	t.Run("Should fetch the first page once on mount", func(t *testing.T) {
		src := newSource(2, map[int][]item{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}})
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})

		assert.Equal(t, 0, src.count())
		mount(t, c)

		require.Equal(t, 1, src.count())
		assert.Equal(t, Request{Page: 1, Size: 50}, src.last().req)
		assert.Equal(t, []item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, c.Data())
		assert.Equal(t, 2, c.Total())
		assert.False(t, c.Loading())

		v := c.View()
		require.NotNil(t, v.Pagination)
		assert.Equal(t, 1, v.Pagination.PageCount)
		assert.False(t, v.Pagination.CanNext)
		assert.False(t, v.Pagination.CanPrevious)
	})

	t.Run("Should not fetch on triggers before mount", func(t *testing.T) {
		src := newSource(0, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})

		c.SetPageIndex(2)
		c.SetFilter(keyName, "x")
		c.Refresh()
		c.Wait()

		assert.Equal(t, 0, src.count())
	})
}

func TestControllerPageArithmetic(t *testing.T) {
	for _, idx := range []int{0, 1, 2, 7, 41} {
		t.Run(fmt.Sprintf("Should send page %d for index %d", idx+1, idx), func(t *testing.T) {
			src := newSource(10_000, nil)
			c := newGrid(t, src, DefaultOptions(), Actions[item]{})
			mount(t, c)

			c.SetPageIndex(idx)
			c.Refresh()
			c.Wait()

			assert.Equal(t, idx+1, src.last().req.Page)
			assert.Equal(t, idx, c.State().Pagination.PageIndex)
		})
	}
}

func TestControllerTriggers(t *testing.T) {
	t.Run("Should not fetch on presentation changes", func(t *testing.T) {
		src := newSource(2, map[int][]item{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}})
		c := newGrid(t, src, DefaultOptions(), batchActions())
		mount(t, c)

		require.NoError(t, c.ToggleSorting(keyName, true))
		require.NoError(t, c.ClearSorting(keyName))
		require.NoError(t, c.SetColumnVisibility(keyID, false))
		require.NoError(t, c.SetColumnVisibility(keyID, true))
		require.NoError(t, c.SetRowSelected("1", true))
		c.SetGlobalFilter("a")
		c.Wait()

		assert.Equal(t, 1, src.count())
	})

	t.Run("Should fetch once per filter change keeping the page", func(t *testing.T) {
		src := newSource(500, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		c.SetPageIndex(2)
		c.Wait()
		n := src.count()

		c.SetFilter(keyName, "alpha")
		c.Wait()

		require.Equal(t, n+1, src.count())
		assert.Equal(t, Request{Page: 3, Size: 50}, src.last().req)
		assert.Equal(t, Filters[itemKey]{keyName: "alpha"}, src.last().filters)
	})

	t.Run("Should skip fetch when the filter value is unchanged", func(t *testing.T) {
		src := newSource(0, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		c.SetFilter(keyName, "alpha")
		c.Wait()
		n := src.count()

		c.SetFilter(keyName, "alpha")
		c.SetFilter(keyNote, "")
		c.Wait()

		assert.Equal(t, n, src.count())
	})

	t.Run("Should drop a filter set to empty", func(t *testing.T) {
		src := newSource(0, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		c.SetFilter(keyName, "alpha")
		c.Wait()
		c.SetFilter(keyName, "")
		c.Wait()

		assert.Empty(t, src.last().filters)
		assert.Equal(t, 3, src.count())
	})

	t.Run("Should jump to the first page when configured", func(t *testing.T) {
		src := newSource(500, nil)
		opts := DefaultOptions()
		opts.ResetPageOnFilterChange = true
		c := newGrid(t, src, opts, Actions[item]{})
		mount(t, c)
		c.SetPageIndex(4)
		c.Wait()

		c.SetFilter(keyName, "alpha")
		c.Wait()

		assert.Equal(t, 1, src.last().req.Page)
		assert.Equal(t, 0, c.State().Pagination.PageIndex)
	})

	t.Run("Should keep the top row when the page size changes", func(t *testing.T) {
		src := newSource(500, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		c.SetPageIndex(2)
		c.Wait()
		c.SetPageSize(20)
		c.Wait()

		assert.Equal(t, Pagination{PageIndex: 5, PageSize: 20}, c.State().Pagination)
		assert.Equal(t, Request{Page: 6, Size: 20}, src.last().req)
	})

	t.Run("Should honor page bounds", func(t *testing.T) {
		src := newSource(120, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		n := src.count()

		c.PreviousPage()
		c.Wait()
		assert.Equal(t, n, src.count())

		c.LastPage()
		c.Wait()
		assert.Equal(t, 2, c.State().Pagination.PageIndex)
		assert.Equal(t, 3, c.PageCount())
		assert.False(t, c.CanNextPage())

		c.NextPage()
		c.Wait()
		assert.Equal(t, n+1, src.count())

		c.FirstPage()
		c.Wait()
		assert.Equal(t, 1, src.last().req.Page)
		assert.False(t, c.CanPreviousPage())
	})
}

func TestControllerReset(t *testing.T) {
	t.Run("Should restore defaults and be idempotent", func(t *testing.T) {
		src := newSource(3, map[int][]item{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}})
		c := newGrid(t, src, DefaultOptions(), batchActions())
		mount(t, c)

		c.SetFilter(keyName, "x")
		c.Wait()
		require.NoError(t, c.ToggleSorting(keyID, true))
		require.NoError(t, c.SetColumnVisibility(keyName, false))
		require.NoError(t, c.SetRowSelected("2", true))
		c.SetGlobalFilter("b")

		expected := State[itemKey]{
			ColumnFilters:    Filters[itemKey]{},
			ColumnVisibility: map[itemKey]bool{},
			RowSelection:     map[string]bool{},
			Pagination:       Pagination{PageIndex: 0, PageSize: DefaultResetPageSize},
		}

		c.Reset()
		c.Wait()
		once := c.State()
		n := src.count()

		c.Reset()
		c.Wait()

		assert.Equal(t, expected, once)
		assert.Equal(t, once, c.State())
		assert.Equal(t, n, src.count())
		assert.Equal(t, Request{Page: 1, Size: DefaultResetPageSize}, src.last().req)
		assert.Empty(t, src.last().filters)
	})

	t.Run("Should not fetch when pagination and filters are already defaults", func(t *testing.T) {
		src := newSource(0, nil)
		opts := DefaultOptions()
		opts.InitialPageSize = DefaultResetPageSize
		c := newGrid(t, src, opts, Actions[item]{})
		mount(t, c)

		require.NoError(t, c.ToggleSorting(keyID, false))
		c.Reset()
		c.Wait()

		assert.Equal(t, 1, src.count())
		assert.Empty(t, c.State().Sorting)
	})

	t.Run("Should drive refresh and reset through the handle", func(t *testing.T) {
		src := newSource(0, nil)
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)

		h := c.Handle()
		h.Refresh()
		c.Wait()
		assert.Equal(t, 2, src.count())
		assert.Equal(t, Request{Page: 1, Size: 50}, src.last().req)

		h.Reset()
		c.Wait()
		assert.Equal(t, 3, src.count())
		assert.Equal(t, 10, src.last().req.Size)
	})
}

func TestControllerFetchErrors(t *testing.T) {
	t.Run("Should keep stale data when a fetch fails", func(t *testing.T) {
		src := newSource(2, map[int][]item{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}})
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)
		before, total := c.Data(), c.Total()

		src.setErr(errors.New("boom"))
		c.Refresh()
		c.Wait()

		assert.Equal(t, before, c.Data())
		assert.Equal(t, total, c.Total())
		assert.False(t, c.Loading())
	})
}

func TestControllerEmpty(t *testing.T) {
	t.Run("Should show the empty state without pagination", func(t *testing.T) {
		src := newSource(0, map[int][]item{1: {}})
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)

		v := c.View()

		assert.True(t, v.Empty)
		assert.Empty(t, v.Rows)
		assert.Nil(t, v.Pagination)
		assert.Nil(t, v.Batch)
	})
}

func TestControllerSelection(t *testing.T) {
	pages := map[int][]item{
		1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		2: {{ID: 3, Name: "C"}, {ID: 4, Name: "D"}},
	}

	t.Run("Should not carry selection across pages", func(t *testing.T) {
		var got []item
		acts := Actions[item]{
			BatchRender: func(rr []item) []Control {
				got = rr
				return []Control{{Name: "Delete"}}
			},
		}
		opts := DefaultOptions()
		opts.InitialPageSize = 2
		c := newGrid(t, newSource(4, pages), opts, acts)
		mount(t, c)

		require.NoError(t, c.ToggleAllPageRowsSelected(true))
		assert.True(t, c.IsAllPageRowsSelected())
		require.NotNil(t, c.View().Batch)
		assert.Len(t, got, 2)

		c.NextPage()
		c.Wait()

		assert.Empty(t, c.SelectedRows())
		assert.Empty(t, c.State().RowSelection)
		assert.Nil(t, c.View().Batch)
		assert.ErrorIs(t, c.SetRowSelected("1", true), ErrUnknownRow)
	})

	t.Run("Should keep marks on rows still present", func(t *testing.T) {
		src := newSource(2, map[int][]item{1: pages[1]})
		c := newGrid(t, src, DefaultOptions(), batchActions())
		mount(t, c)

		require.NoError(t, c.SetRowSelected("2", true))
		c.Refresh()
		c.Wait()

		assert.Equal(t, []item{{ID: 2, Name: "B"}}, c.SelectedRows())
		assert.True(t, c.IsSomePageRowsSelected())
		assert.False(t, c.IsAllPageRowsSelected())
	})

	t.Run("Should refuse selection without batch actions", func(t *testing.T) {
		c := newGrid(t, newSource(2, map[int][]item{1: pages[1]}), DefaultOptions(), Actions[item]{})
		mount(t, c)

		assert.ErrorIs(t, c.SetRowSelected("1", true), ErrSelectionDisabled)
		assert.ErrorIs(t, c.ToggleAllPageRowsSelected(true), ErrSelectionDisabled)
	})

	t.Run("Should select only searched rows", func(t *testing.T) {
		c := newGrid(t, newSource(2, map[int][]item{1: pages[1]}), DefaultOptions(), batchActions())
		mount(t, c)

		c.SetGlobalFilter("b")
		require.NoError(t, c.ToggleAllPageRowsSelected(true))

		assert.Equal(t, []item{{ID: 2, Name: "B"}}, c.SelectedRows())
		assert.True(t, c.IsAllPageRowsSelected())
	})

	t.Run("Should clear selection on banner dismiss", func(t *testing.T) {
		c := newGrid(t, newSource(2, map[int][]item{1: pages[1]}), DefaultOptions(), batchActions())
		mount(t, c)
		require.NoError(t, c.ToggleRowSelected("1"))

		v := c.View()
		require.NotNil(t, v.Batch)
		assert.Equal(t, 1, v.Batch.Count)
		assert.Equal(t, "Delete 1", v.Batch.Controls[0].Name)
		v.Batch.Dismiss()

		assert.Nil(t, c.View().Batch)
	})
}

func TestControllerSorting(t *testing.T) {
	page := map[int][]item{1: {{ID: 2, Name: "b"}, {ID: 10, Name: "c"}, {ID: 1, Name: "a"}}}

	ids := func(rr []item) []int {
		out := make([]int, 0, len(rr))
		for _, r := range rr {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("Should sort within the page only", func(t *testing.T) {
		c := newGrid(t, newSource(3, page), DefaultOptions(), Actions[item]{})
		mount(t, c)

		require.NoError(t, c.ToggleSorting(keyID, false))
		assert.Equal(t, []int{1, 2, 10}, ids(c.Rows()))

		require.NoError(t, c.ToggleSorting(keyID, true))
		assert.Equal(t, []int{10, 2, 1}, ids(c.Rows()))
		assert.Equal(t, SortDesc, c.SortDirection(keyID))

		require.NoError(t, c.ClearSorting(keyID))
		assert.Equal(t, []int{2, 10, 1}, ids(c.Rows()))
	})

	t.Run("Should keep equal numbers in page order both ways", func(t *testing.T) {
		cols := itemColumns()
		cols[1].Attrs = model1.Attrs{Kind: model1.KindNumber}
		src := newSource(4, map[int][]item{1: {{ID: 1, Name: "1.0"}, {ID: 2, Name: "2"}, {ID: 3, Name: "1"}, {ID: 4, Name: "0.5"}}})
		c := New(Config[item, itemKey]{Columns: cols, Request: src.fetch, ID: itemID, Logger: logger.NewForTests()})
		t.Cleanup(c.Unmount)
		mount(t, c)

		require.NoError(t, c.ToggleSorting(keyName, true))
		assert.Equal(t, []int{2, 1, 3, 4}, ids(c.Rows()))

		require.NoError(t, c.ToggleSorting(keyName, false))
		assert.Equal(t, []int{4, 1, 3, 2}, ids(c.Rows()))
	})

	t.Run("Should cycle through the three sort states", func(t *testing.T) {
		c := newGrid(t, newSource(3, page), DefaultOptions(), Actions[item]{})
		mount(t, c)

		for _, e := range []SortDirection{SortAsc, SortDesc, SortNone, SortAsc} {
			require.NoError(t, c.CycleSorting(keyName))
			assert.Equal(t, e, c.SortDirection(keyName))
		}
	})

	t.Run("Should reject unsortable and unknown columns", func(t *testing.T) {
		cols := itemColumns()
		cols[1].DisableSorting = true
		c := New(Config[item, itemKey]{Columns: cols, Request: newSource(0, nil).fetch, Logger: logger.NewForTests()})

		assert.ErrorIs(t, c.ToggleSorting(keyName, false), ErrNotSortable)
		assert.ErrorIs(t, c.ToggleSorting(keyNote, false), ErrUnknownColumn)
	})
}

func TestControllerVisibility(t *testing.T) {
	t.Run("Should guard the last visible column", func(t *testing.T) {
		c := newGrid(t, newSource(0, nil), DefaultOptions(), Actions[item]{})

		require.NoError(t, c.SetColumnVisibility(keyID, false))
		assert.False(t, c.CanHide(keyName))
		assert.ErrorIs(t, c.SetColumnVisibility(keyName, false), ErrLastVisibleColumn)
		assert.True(t, c.CanHide(keyID))

		v := c.View()
		require.Len(t, v.Toggles, 2)
		assert.True(t, v.Toggles[0].CanToggle)
		assert.False(t, v.Toggles[0].Visible)
		assert.False(t, v.Toggles[1].CanToggle)
	})

	t.Run("Should refuse hiding non hideable columns", func(t *testing.T) {
		cols := itemColumns()
		cols[0].DisableHiding = true
		c := New(Config[item, itemKey]{Columns: cols, Request: newSource(0, nil).fetch, Logger: logger.NewForTests()})

		assert.ErrorIs(t, c.SetColumnVisibility(keyID, false), ErrNotHideable)
		assert.False(t, c.CanHide(keyID))
		assert.Len(t, c.View().Toggles, 1)
	})

	t.Run("Should toggle visibility", func(t *testing.T) {
		c := newGrid(t, newSource(0, nil), DefaultOptions(), Actions[item]{})

		require.NoError(t, c.ToggleColumnVisibility(keyName))
		assert.False(t, c.IsVisible(keyName))
		require.NoError(t, c.ToggleColumnVisibility(keyName))
		assert.True(t, c.IsVisible(keyName))
	})

	t.Run("Should list toggles with the last visible disabled", func(t *testing.T) {
		c := newGrid(t, newSource(0, nil), DefaultOptions(), Actions[item]{})
		require.NoError(t, c.SetColumnVisibility(keyName, false))

		assert.Equal(t, []ColumnToggle[itemKey]{
			{Key: keyID, Header: "ID", Visible: true, Disabled: true},
			{Key: keyName, Header: "NAME"},
		}, c.ToggleColumns())
	})
}

// gate blocks each fetch until its release channel closes.
type gate struct {
	mx       sync.Mutex
	releases []chan struct{}
}

func (g *gate) fetch(ctx context.Context, req Request, _ Filters[itemKey]) (Response[item], error) {
	g.mx.Lock()
	n := len(g.releases)
	ch := make(chan struct{})
	g.releases = append(g.releases, ch)
	g.mx.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
		return Response[item]{}, ctx.Err()
	}

	return Response[item]{List: []item{{ID: n, Name: fmt.Sprintf("call-%d", n)}}, Total: 1}, nil
}

func (g *gate) count() int {
	g.mx.Lock()
	defer g.mx.Unlock()
	return len(g.releases)
}

func (g *gate) release(n int) {
	g.mx.Lock()
	defer g.mx.Unlock()
	close(g.releases[n])
}

func newGatedGrid(t *testing.T, g *gate, opts Options) *Controller[item, itemKey] {
	c := New(Config[item, itemKey]{
		Columns: itemColumns(),
		Request: g.fetch,
		ID:      itemID,
		Options: opts,
		Logger:  logger.NewForTests(),
	})
	t.Cleanup(c.Unmount)

	c.Mount(context.Background())
	require.Eventually(t, func() bool { return g.count() == 1 }, time.Second, time.Millisecond)
	g.release(0)
	c.Wait()

	c.Refresh()
	require.Eventually(t, func() bool { return g.count() == 2 }, time.Second, time.Millisecond)
	c.Refresh()
	require.Eventually(t, func() bool { return g.count() == 3 }, time.Second, time.Millisecond)
	assert.True(t, c.Loading())

	return c
}

func name(c *Controller[item, itemKey]) string {
	dd := c.Data()
	if len(dd) == 0 {
		return ""
	}
	return dd[0].Name
}

func TestControllerOverlappingFetches(t *testing.T) {
	t.Run("Should keep the last resolved response", func(t *testing.T) {
		g := new(gate)
		c := newGatedGrid(t, g, DefaultOptions())

		g.release(2)
		require.Eventually(t, func() bool { return name(c) == "call-2" }, time.Second, time.Millisecond)
		g.release(1)
		c.Wait()

		assert.Equal(t, "call-1", name(c))
		assert.False(t, c.Loading())
	})

	t.Run("Should discard stale responses when configured", func(t *testing.T) {
		g := new(gate)
		opts := DefaultOptions()
		opts.DiscardStaleResponses = true
		c := newGatedGrid(t, g, opts)

		g.release(2)
		require.Eventually(t, func() bool { return name(c) == "call-2" }, time.Second, time.Millisecond)
		g.release(1)
		c.Wait()

		assert.Equal(t, "call-2", name(c))
		assert.False(t, c.Loading())
	})

	t.Run("Should hold loading until the latest response lands", func(t *testing.T) {
		g := new(gate)
		opts := DefaultOptions()
		opts.DiscardStaleResponses = true
		c := newGatedGrid(t, g, opts)

		g.release(1)
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, "call-0", name(c))
		assert.True(t, c.Loading())

		g.release(2)
		c.Wait()
		assert.Equal(t, "call-2", name(c))
		assert.False(t, c.Loading())
	})
}

func TestControllerUnmount(t *testing.T) {
	t.Run("Should ignore responses after unmount", func(t *testing.T) {
		g := new(gate)
		c := New(Config[item, itemKey]{
			Columns: itemColumns(),
			Request: g.fetch,
			ID:      itemID,
			Logger:  logger.NewForTests(),
		})

		c.Mount(context.Background())
		require.Eventually(t, func() bool { return g.count() == 1 }, time.Second, time.Millisecond)
		c.Unmount()
		c.Wait()

		assert.Empty(t, c.Data())
		assert.False(t, c.Loading())

		c.Refresh()
		c.Wait()
		assert.Equal(t, 1, g.count())
	})
}

type counter struct {
	mx sync.Mutex
	n  int
}

func (c *counter) GridChanged() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.n++
}

func (c *counter) count() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.n
}

func TestControllerListeners(t *testing.T) {
	t.Run("Should notify on changes until removed", func(t *testing.T) {
		c := newGrid(t, newSource(0, nil), DefaultOptions(), Actions[item]{})
		l := new(counter)
		c.AddListener(l)

		mount(t, c)
		require.NoError(t, c.ToggleSorting(keyID, false))
		n := l.count()
		assert.GreaterOrEqual(t, n, 3)

		c.RemoveListener(l)
		c.SetGlobalFilter("x")
		assert.Equal(t, n, l.count())
	})
}
