package ui

import (
	"fmt"

	"github.com/derailed/tview"
)

// Pages tracks the component stack and the modal overlays on top of it.
type Pages struct {
	*tview.Pages
	*Stack

	modals []string
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	p := Pages{
		Pages: tview.NewPages(),
		Stack: NewStack(),
	}
	p.Stack.AddListener(&p)

	return &p
}

// IsTopModal checks if a modal is showing.
func (p *Pages) IsTopModal() bool {
	return len(p.modals) > 0
}

// ShowModal centers a primitive over the current page.
func (p *Pages) ShowModal(id string, m tview.Primitive, width, height int) {
	p.AddModal(id, centered(m, width, height))
}

// AddModal overlays a primitive that lays itself out, like a tview.Modal.
func (p *Pages) AddModal(id string, m tview.Primitive) {
	p.DismissModal(id)
	p.modals = append(p.modals, id)
	p.AddPage(id, m, true, true)
}

// DismissModal removes a modal overlay.
func (p *Pages) DismissModal(id string) {
	for i, m := range p.modals {
		if m == id {
			p.modals = append(p.modals[:i], p.modals[i+1:]...)
			break
		}
	}
	p.RemovePage(id)
}

// Show switches to the given component.
func (p *Pages) Show(c Component) {
	p.SwitchToPage(componentID(c))
}

// Current returns the component on top of the stack.
func (p *Pages) Current() Component {
	return p.Top()
}

// StackPushed notifies a new component was pushed.
func (p *Pages) StackPushed(c Component) {
	p.AddPage(componentID(c), c, true, true)
}

// StackPopped notifies a component was removed.
func (p *Pages) StackPopped(o, top Component) {
	p.RemovePage(componentID(o))
	if top != nil {
		p.Show(top)
	}
}

// StackTop notifies the top component.
func (p *Pages) StackTop(top Component) {
	if top == nil {
		return
	}
	p.Show(top)
}

func componentID(c Component) string {
	return fmt.Sprintf("%s-%p", c.Name(), c)
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
