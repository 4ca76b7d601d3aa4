package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	crumbFmt       = "[gray::-] %s [-:-:-]"
	activeCrumbFmt = "[black:orange:b] %s [-:-:-]"
	crumbSep       = "[gray::-]›[-:-:-]"
)

// Crumbs renders the navigation path, e.g. users › describe.
type Crumbs struct {
	*tview.TextView

	path []Component
}

// NewCrumbs returns a new breadcrumb bar.
func NewCrumbs() *Crumbs {
	c := Crumbs{TextView: tview.NewTextView()}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

// Path returns the crumb labels, root first.
func (c *Crumbs) Path() []string {
	ss := make([]string, 0, len(c.path))
	for _, comp := range c.path {
		ss = append(ss, crumbLabel(comp.Name()))
	}
	return ss
}

// StackPushed appends the new view.
func (c *Crumbs) StackPushed(comp Component) {
	c.path = append(c.path, comp)
	c.draw()
}

// StackPopped drops the removed view wherever it sits.
func (c *Crumbs) StackPopped(old, _ Component) {
	for i := len(c.path) - 1; i >= 0; i-- {
		if c.path[i] == old {
			c.path = append(c.path[:i], c.path[i+1:]...)
			break
		}
	}
	c.draw()
}

func (*Crumbs) StackTop(Component) {}

func (c *Crumbs) draw() {
	c.Clear()
	ll := c.Path()
	parts := make([]string, 0, len(ll))
	for i, l := range ll {
		f := crumbFmt
		if i == len(ll)-1 {
			f = activeCrumbFmt
		}
		parts = append(parts, fmt.Sprintf(f, l))
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, crumbSep))
}

func crumbLabel(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
