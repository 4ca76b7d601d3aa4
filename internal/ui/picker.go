package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// PickerItem is one choice of a picker.
type PickerItem struct {
	Label    string
	Disabled bool
	Selected func()
}

// Picker is a modal single choice list. Disabled items render greyed and
// ignore selection.
type Picker struct {
	*tview.List

	items  []PickerItem
	doneFn func()
}

// NewPicker returns a picker. done runs when the picker closes.
func NewPicker(title string, items []PickerItem, done func()) *Picker {
	p := Picker{
		List:   tview.NewList(),
		items:  items,
		doneFn: done,
	}
	p.ShowSecondaryText(false)
	p.SetBorder(true)
	p.SetTitle(" " + tview.Escape(title) + " ")
	p.SetBorderColor(tcell.ColorDarkCyan)
	p.SetHighlightFullLine(true)
	p.SetSelectedBackgroundColor(tcell.ColorAqua)
	p.SetSelectedTextColor(tcell.ColorBlack)

	for _, it := range items {
		label := tview.Escape(it.Label)
		if it.Disabled {
			label = "[gray::d]" + label + "[-::-]"
		}
		p.AddItem(label, "", 0, nil)
	}
	p.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		p.Select(i)
	})
	p.SetDoneFunc(p.close)
	p.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch evt.Rune() {
		case 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		case 'q':
			p.close()
			return nil
		}
		return evt
	})

	return &p
}

// Select picks item i. It reports false for disabled or unknown items.
func (p *Picker) Select(i int) bool {
	if i < 0 || i >= len(p.items) || p.items[i].Disabled {
		return false
	}
	p.close()
	if fn := p.items[i].Selected; fn != nil {
		fn()
	}

	return true
}

// Items returns the picker choices.
func (p *Picker) Items() []PickerItem {
	return p.items
}

func (p *Picker) close() {
	if p.doneFn != nil {
		p.doneFn()
	}
}
