package grid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewColumns(t *testing.T) {
	page := map[int][]item{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}

	t.Run("Should render data columns only without actions", func(t *testing.T) {
		c := newGrid(t, newSource(2, page), DefaultOptions(), Actions[item]{})
		mount(t, c)

		v := c.View()

		require.Len(t, v.Columns, 2)
		assert.Equal(t, []string{"ID", "NAME"}, v.Header().ColumnNames())
		assert.Equal(t, []int{0, 1}, v.DataColumns())
		assert.Equal(t, []string{"1", "A"}, []string(v.Rows[0].Fields))
	})

	t.Run("Should prepend a select column with batch actions", func(t *testing.T) {
		c := newGrid(t, newSource(2, page), DefaultOptions(), batchActions())
		mount(t, c)
		require.NoError(t, c.SetRowSelected("2", true))

		v := c.View()

		require.Len(t, v.Columns, 3)
		assert.Equal(t, ColumnSelect, v.Columns[0].Kind)
		assert.Equal(t, "[-]", v.Columns[0].Header)
		assert.Equal(t, "[ ]", v.Rows[0].Fields[0])
		assert.Equal(t, "[x]", v.Rows[1].Fields[0])
		assert.True(t, v.Rows[1].Selected)
		assert.True(t, v.SomeSelected)
	})

	t.Run("Should append an actions column with row actions", func(t *testing.T) {
		acts := Actions[item]{
			Render: func(i item) []Control {
				return []Control{{Name: "Edit", Key: 'e'}, {Name: "Delete", Key: 'D', Dangerous: true}}
			},
		}
		c := newGrid(t, newSource(2, page), DefaultOptions(), acts)
		mount(t, c)

		v := c.View()

		require.Len(t, v.Columns, 3)
		last := v.Columns[2]
		assert.Equal(t, ColumnActions, last.Kind)
		assert.False(t, last.Sortable)
		assert.False(t, last.Hideable)
		assert.Len(t, v.Rows[0].Controls, 2)
		assert.Equal(t, "e:Edit D:Delete", v.Rows[0].Fields[2])
		assert.Len(t, v.Toggles, 2)
	})

	t.Run("Should drop hidden columns and mark sorts", func(t *testing.T) {
		c := newGrid(t, newSource(2, page), DefaultOptions(), Actions[item]{})
		mount(t, c)

		v := c.View()
		require.NoError(t, v.Columns[1].SortDesc())
		require.NoError(t, v.Columns[0].SetVisible(false))

		v = c.View()
		require.Len(t, v.Columns, 1)
		assert.Equal(t, SortDesc, v.Columns[0].Sort)
		assert.Equal(t, "B", v.Rows[0].Fields[0])

		require.NoError(t, v.Columns[0].ClearSort())
		assert.Equal(t, SortNone, c.View().Columns[0].Sort)
	})
}

func TestViewFilters(t *testing.T) {
	t.Run("Should describe params and set filters", func(t *testing.T) {
		src := newSource(0, nil)
		c := New(Config[item, itemKey]{
			Columns: itemColumns(),
			Request: src.fetch,
			ID:      itemID,
			Params: []Param[itemKey]{
				{Key: keyName, Placeholder: "Search"},
				{Key: keyNote, Placeholder: "Status", Options: []Option{{Label: "Show", Value: "false"}, {Label: "Hide", Value: "true"}}},
			},
		})
		t.Cleanup(c.Unmount)
		c.Mount(context.Background())
		c.Wait()

		ff := c.View().Filters
		require.Len(t, ff, 2)
		assert.False(t, ff[0].IsSelector())
		assert.True(t, ff[1].IsSelector())

		ff[1].Set("true")
		c.Wait()

		assert.Equal(t, "true", c.View().Filters[1].Value)
		assert.Equal(t, Filters[itemKey]{keyNote: "true"}, src.last().filters)
	})
}

func TestViewPagination(t *testing.T) {
	t.Run("Should expose page info when rows exist", func(t *testing.T) {
		src := newSource(120, map[int][]item{1: {{ID: 1}}})
		c := newGrid(t, src, DefaultOptions(), Actions[item]{})
		mount(t, c)

		p := c.View().Pagination

		require.NotNil(t, p)
		assert.Equal(t, PageInfo{PageIndex: 0, PageSize: 50, PageCount: 3, Total: 120, CanNext: true}, *p)
	})

	t.Run("Should title and toolbar from the header", func(t *testing.T) {
		c := New(Config[item, itemKey]{
			Columns: itemColumns(),
			Header:  Header{Title: "Items", Toolbar: []Control{{Name: "Create", Key: 'c'}}},
		})

		v := c.View()

		assert.Equal(t, "Items", v.Title)
		assert.Len(t, v.Toolbar, 1)
		assert.True(t, v.Empty)
	})
}

func TestPageCount(t *testing.T) {
	uu := map[string]struct {
		total, size, e int
	}{
		"empty":   {0, 10, 0},
		"partial": {5, 10, 1},
		"exact":   {20, 10, 2},
		"over":    {21, 10, 3},
		"nosize":  {21, 0, 0},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, PageCount(u.total, u.size))
		})
	}
}
