package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const errorID = "error"

// ShowError overlays an acknowledge only error box on pages.
func ShowError(pages *Pages, msg string, onDone func()) *tview.Modal {
	m := tview.NewModal().
		SetText(msg).
		AddButtons([]string{"OK"})
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetTextColor(tcell.ColorRed)
	m.SetButtonBackgroundColor(tcell.ColorRed)
	m.SetButtonTextColor(tcell.ColorWhite)
	m.SetDoneFunc(func(int, string) {
		if pages != nil {
			pages.DismissModal(errorID)
		}
		if onDone != nil {
			onDone()
		}
	})
	if pages != nil {
		pages.AddModal(errorID, m)
	}

	return m
}
