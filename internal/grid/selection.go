// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

import "fmt"

// SelectionEnabled checks if the grid carries batch actions.
func (c *Controller[R, K]) SelectionEnabled() bool {
	return c.actions.BatchRender != nil
}

// SetRowSelected marks or unmarks a row of the current page.
func (c *Controller[R, K]) SetRowSelected(id string, selected bool) error {
	if !c.SelectionEnabled() {
		return ErrSelectionDisabled
	}

	c.mx.Lock()
	if !c.hasRowLocked(id) {
		c.mx.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRow, id)
	}
	if selected {
		c.state.RowSelection[id] = true
	} else {
		delete(c.state.RowSelection, id)
	}
	c.mx.Unlock()

	c.fireChanged()
	return nil
}

// ToggleRowSelected flips the selection of a row.
func (c *Controller[R, K]) ToggleRowSelected(id string) error {
	return c.SetRowSelected(id, !c.IsRowSelected(id))
}

// IsRowSelected checks if a row is marked.
func (c *Controller[R, K]) IsRowSelected(id string) bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.state.RowSelection[id]
}

// ToggleAllPageRowsSelected marks or unmarks every displayed row.
func (c *Controller[R, K]) ToggleAllPageRowsSelected(selected bool) error {
	if !c.SelectionEnabled() {
		return ErrSelectionDisabled
	}

	c.mx.Lock()
	_, ids := c.rowsLocked()
	for _, id := range ids {
		if selected {
			c.state.RowSelection[id] = true
		} else {
			delete(c.state.RowSelection, id)
		}
	}
	c.mx.Unlock()

	c.fireChanged()
	return nil
}

// ClearSelection unmarks every row.
func (c *Controller[R, K]) ClearSelection() {
	c.mx.Lock()
	if len(c.state.RowSelection) == 0 {
		c.mx.Unlock()
		return
	}
	c.state.RowSelection = make(map[string]bool)
	c.mx.Unlock()

	c.fireChanged()
}

// IsAllPageRowsSelected checks if every displayed row is marked.
func (c *Controller[R, K]) IsAllPageRowsSelected() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	all, _ := c.pageSelectionLocked()
	return all
}

// IsSomePageRowsSelected checks if some but not all displayed rows are marked.
func (c *Controller[R, K]) IsSomePageRowsSelected() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	_, some := c.pageSelectionLocked()
	return some
}

// SelectedRows returns the marked rows in page order.
func (c *Controller[R, K]) SelectedRows() []R {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.selectedRowsLocked()
}

func (c *Controller[R, K]) selectedRowsLocked() []R {
	rr := make([]R, 0, len(c.state.RowSelection))
	for i, r := range c.data {
		if c.state.RowSelection[c.rowID(r, i)] {
			rr = append(rr, r)
		}
	}
	return rr
}

func (c *Controller[R, K]) pageSelectionLocked() (all, some bool) {
	_, ids := c.rowsLocked()
	var n int
	for _, id := range ids {
		if c.state.RowSelection[id] {
			n++
		}
	}
	all = len(ids) > 0 && n == len(ids)
	some = n > 0 && n < len(ids)

	return
}

func (c *Controller[R, K]) hasRowLocked(id string) bool {
	for i, r := range c.data {
		if c.rowID(r, i) == id {
			return true
		}
	}
	return false
}

// pruneSelectionLocked drops marks on rows missing from the current data.
// Positional ids never survive a new page.
func (c *Controller[R, K]) pruneSelectionLocked() {
	if len(c.state.RowSelection) == 0 {
		return
	}
	if c.idFn == nil {
		c.state.RowSelection = make(map[string]bool)
		return
	}
	keep := make(map[string]bool, len(c.state.RowSelection))
	for i, r := range c.data {
		if id := c.rowID(r, i); c.state.RowSelection[id] {
			keep[id] = true
		}
	}
	c.state.RowSelection = keep
}
