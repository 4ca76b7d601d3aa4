// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package grid

import "fmt"

// SortDirection represents a column sort state.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

func (s SortDirection) String() string {
	switch s {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// ToggleSorting sorts the page by key only, in the given direction.
func (c *Controller[R, K]) ToggleSorting(key K, desc bool) error {
	c.mx.Lock()
	if err := c.sortableLocked(key); err != nil {
		c.mx.Unlock()
		return err
	}
	c.state.Sorting = []SortSpec[K]{{Key: key, Desc: desc}}
	c.mx.Unlock()

	c.fireChanged()
	return nil
}

// ClearSorting removes key from the sort.
func (c *Controller[R, K]) ClearSorting(key K) error {
	c.mx.Lock()
	if _, ok := c.column(key); !ok {
		c.mx.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	ss := make([]SortSpec[K], 0, len(c.state.Sorting))
	for _, s := range c.state.Sorting {
		if s.Key != key {
			ss = append(ss, s)
		}
	}
	if len(ss) == 0 {
		ss = nil
	}
	c.state.Sorting = ss
	c.mx.Unlock()

	c.fireChanged()
	return nil
}

// CycleSorting steps a column through unsorted, ascending and descending.
func (c *Controller[R, K]) CycleSorting(key K) error {
	switch c.SortDirection(key) {
	case SortNone:
		return c.ToggleSorting(key, false)
	case SortAsc:
		return c.ToggleSorting(key, true)
	default:
		return c.ClearSorting(key)
	}
}

// SortDirection returns the current sort of key.
func (c *Controller[R, K]) SortDirection(key K) SortDirection {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.sortDirectionLocked(key)
}

func (c *Controller[R, K]) sortDirectionLocked(key K) SortDirection {
	for _, s := range c.state.Sorting {
		if s.Key != key {
			continue
		}
		if s.Desc {
			return SortDesc
		}
		return SortAsc
	}
	return SortNone
}

func (c *Controller[R, K]) sortableLocked(key K) error {
	col, ok := c.column(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if col.DisableSorting {
		return fmt.Errorf("%w: %s", ErrNotSortable, key)
	}
	return nil
}

// SetColumnVisibility shows or hides a column.
func (c *Controller[R, K]) SetColumnVisibility(key K, visible bool) error {
	c.mx.Lock()
	col, ok := c.column(key)
	if !ok {
		c.mx.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if !visible {
		if col.DisableHiding {
			c.mx.Unlock()
			return fmt.Errorf("%w: %s", ErrNotHideable, key)
		}
		if c.isVisibleLocked(key) && c.visibleCountLocked() <= 1 {
			c.mx.Unlock()
			return ErrLastVisibleColumn
		}
	}
	c.state.ColumnVisibility[key] = visible
	c.mx.Unlock()

	c.fireChanged()
	return nil
}

// ToggleColumnVisibility flips the visibility of key.
func (c *Controller[R, K]) ToggleColumnVisibility(key K) error {
	return c.SetColumnVisibility(key, !c.IsVisible(key))
}

// IsVisible checks if a column is shown.
func (c *Controller[R, K]) IsVisible(key K) bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.isVisibleLocked(key)
}

// CanHide checks if key may be hidden right now.
func (c *Controller[R, K]) CanHide(key K) bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.canHideLocked(key)
}

func (c *Controller[R, K]) canHideLocked(key K) bool {
	col, ok := c.column(key)
	if !ok || col.DisableHiding {
		return false
	}
	return !c.isVisibleLocked(key) || c.visibleCountLocked() > 1
}

func (c *Controller[R, K]) isVisibleLocked(key K) bool {
	v, ok := c.state.ColumnVisibility[key]
	return !ok || v
}

func (c *Controller[R, K]) visibleCountLocked() int {
	var n int
	for _, col := range c.columns {
		if c.isVisibleLocked(col.Key) {
			n++
		}
	}
	return n
}

// ColumnToggle is one entry of the column visibility list.
type ColumnToggle[K ~string] struct {
	Key     K
	Header  string
	Visible bool

	// Disabled is set when the column is the last one shown.
	Disabled bool
}

// ToggleColumns lists the hideable columns in display order.
func (c *Controller[R, K]) ToggleColumns() []ColumnToggle[K] {
	c.mx.RLock()
	defer c.mx.RUnlock()

	tt := make([]ColumnToggle[K], 0, len(c.columns))
	for _, col := range c.columns {
		if col.DisableHiding {
			continue
		}
		tt = append(tt, ColumnToggle[K]{
			Key:      col.Key,
			Header:   col.Header,
			Visible:  c.isVisibleLocked(col.Key),
			Disabled: !c.canHideLocked(col.Key),
		})
	}
	return tt
}
