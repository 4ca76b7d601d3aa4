// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

// SetPageIndex moves to the given 0-based page.
func (c *Controller[R, K]) SetPageIndex(idx int) {
	c.setPagination(func(p Pagination, _ int) Pagination {
		p.PageIndex = max(idx, 0)
		return p
	})
}

// SetPageSize changes the page size, keeping the first row of the current
// page in view.
func (c *Controller[R, K]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	c.setPagination(func(p Pagination, _ int) Pagination {
		top := p.PageIndex * p.PageSize
		return Pagination{PageIndex: top / size, PageSize: size}
	})
}

// NextPage moves forward when a next page exists.
func (c *Controller[R, K]) NextPage() {
	c.setPagination(func(p Pagination, count int) Pagination {
		if p.PageIndex+1 < count {
			p.PageIndex++
		}
		return p
	})
}

// PreviousPage moves back when a previous page exists.
func (c *Controller[R, K]) PreviousPage() {
	c.setPagination(func(p Pagination, _ int) Pagination {
		if p.PageIndex > 0 {
			p.PageIndex--
		}
		return p
	})
}

// FirstPage jumps to page one.
func (c *Controller[R, K]) FirstPage() {
	c.SetPageIndex(0)
}

// LastPage jumps to the last known page.
func (c *Controller[R, K]) LastPage() {
	c.setPagination(func(p Pagination, count int) Pagination {
		if count > 0 {
			p.PageIndex = count - 1
		}
		return p
	})
}

// PageCount returns the number of pages given the last known total.
func (c *Controller[R, K]) PageCount() int {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.pageCountLocked()
}

// CanNextPage checks if a page follows the current one.
func (c *Controller[R, K]) CanNextPage() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.state.Pagination.PageIndex+1 < c.pageCountLocked()
}

// CanPreviousPage checks if a page precedes the current one.
func (c *Controller[R, K]) CanPreviousPage() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.state.Pagination.PageIndex > 0
}

func (c *Controller[R, K]) pageCountLocked() int {
	return PageCount(c.total, c.state.Pagination.PageSize)
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func (c *Controller[R, K]) setPagination(update func(Pagination, int) Pagination) {
	c.mx.Lock()
	next := update(c.state.Pagination, c.pageCountLocked())
	if next == c.state.Pagination {
		c.mx.Unlock()
		return
	}
	c.state.Pagination = next
	c.fetchLocked()
	c.mx.Unlock()

	c.fireChanged()
}
