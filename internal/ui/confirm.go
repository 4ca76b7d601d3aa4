package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	confirmID    = "confirm"
	cancelLabel  = "Cancel"
	defaultLabel = "Yes"
)

// ConfirmOpts describes a yes/no prompt.
type ConfirmOpts struct {
	Message string

	// Action labels the confirm button.
	Action string

	// Dangerous prompts are red and start on Cancel.
	Dangerous bool

	OnConfirm func()
	OnCancel  func()
}

// ShowConfirm overlays a prompt on pages. y confirms, n and esc cancel.
func ShowConfirm(pages *Pages, o ConfirmOpts) *tview.Modal {
	if o.Action == "" {
		o.Action = defaultLabel
	}
	m := tview.NewModal().
		SetText(o.Message).
		AddButtons([]string{o.Action, cancelLabel})
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetTextColor(tcell.ColorWhite)
	m.SetButtonBackgroundColor(tcell.ColorBlue)
	m.SetButtonTextColor(tcell.ColorWhite)
	if o.Dangerous {
		m.SetTextColor(tcell.ColorRed)
		m.SetButtonBackgroundColor(tcell.ColorRed)
		m.SetFocus(1)
	}

	done := func(ok bool) {
		if pages != nil {
			pages.DismissModal(confirmID)
		}
		switch {
		case ok && o.OnConfirm != nil:
			o.OnConfirm()
		case !ok && o.OnCancel != nil:
			o.OnCancel()
		}
	}
	m.SetDoneFunc(func(_ int, label string) {
		done(label == o.Action)
	})
	m.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch {
		case evt.Key() == tcell.KeyRune && (evt.Rune() == 'y' || evt.Rune() == 'Y'):
			done(true)
		case evt.Key() == tcell.KeyRune && (evt.Rune() == 'n' || evt.Rune() == 'N'):
			done(false)
		case evt.Key() == tcell.KeyEsc:
			done(false)
		default:
			return evt
		}
		return nil
	})
	if pages != nil {
		pages.AddModal(confirmID, m)
	}

	return m
}
