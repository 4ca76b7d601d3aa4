// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"sort"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/config"
	"github.com/ppanel/ppadmin/internal/ui"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is one column of the help screen.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// Help displays a full-screen help view with keybindings (k9s style).
type Help struct {
	*tview.Table

	sections []HelpSection
	closeFn  func()
}

// NewHelp creates a new help view for the hints of the current view.
func NewHelp(hints ui.MenuHints, aliases *config.Aliases, hotkeys *config.HotKeys) *Help {
	h := Help{
		Table:    tview.NewTable(),
		sections: HelpSections(hints, aliases, hotkeys),
	}
	h.build()

	return &h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

// Sections returns the help columns.
func (h *Help) Sections() []HelpSection {
	return h.sections
}

// HelpSections lays out the resources, general keys, view keys and hotkeys.
func HelpSections(hints ui.MenuHints, aliases *config.Aliases, hotkeys *config.HotKeys) []HelpSection {
	res := HelpSection{Title: "RESOURCES"}
	for _, v := range ResourceViews() {
		r, _ := LookupResource(v)
		cmd := v
		if aliases != nil {
			if aa := aliases.For(v); len(aa) > 0 {
				sort.Slice(aa, func(i, j int) bool { return len(aa[i]) < len(aa[j]) || len(aa[i]) == len(aa[j]) && aa[i] < aa[j] })
				cmd = aa[0]
			}
		}
		res.Binds = append(res.Binds, HelpBind{Key: ":" + cmd, Desc: r.Title})
	}
	res.Binds = append(res.Binds,
		HelpBind{Key: ":config", Desc: "System Config"},
		HelpBind{Key: ":config email_smtp test", Desc: "Send Test Email"},
		HelpBind{Key: ":profile", Desc: "Profiles"},
	)

	general := HelpSection{
		Title: "GENERAL",
		Binds: []HelpBind{
			{"<:>", "Command"},
			{"</>", "Filter"},
			{"<?>", "Help"},
			{"<esc>", "Back"},
			{"<q>", "Quit"},
			{"<j>/<k>", "Down/Up"},
			{"<g>/<G>", "Top/Bottom"},
		},
	}

	view := HelpSection{Title: "VIEW"}
	for _, hint := range hints {
		if hint.IsBlank() {
			continue
		}
		view.Binds = append(view.Binds, HelpBind{Key: "<" + hint.Mnemonic + ">", Desc: hint.Description})
	}

	ss := []HelpSection{res, general, view}
	if hotkeys == nil {
		return ss
	}
	hk := HelpSection{Title: "HOTKEYS"}
	for _, name := range hotkeys.Names() {
		k := hotkeys.Get(name)
		if k == nil {
			continue
		}
		hk.Binds = append(hk.Binds, HelpBind{Key: "<" + k.ShortCut + ">", Desc: k.Description})
	}
	if len(hk.Binds) > 0 {
		ss = append(ss, hk)
	}

	return ss
}

func (h *Help) build() {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)
	h.populate()

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch {
		case evt.Key() == tcell.KeyEsc, evt.Key() == tcell.KeyEnter, evt.Rune() == '?', evt.Rune() == 'q':
			if h.closeFn != nil {
				h.closeFn()
			}
			return nil
		}
		return evt
	})
}

// populate lays every section out as key, description and spacer columns.
func (h *Help) populate() {
	maxRows := 0
	for _, s := range h.sections {
		maxRows = max(maxRows, len(s.Binds))
	}

	const colWidth = 3
	for colIdx, s := range h.sections {
		base := colIdx * colWidth
		h.SetCell(0, base, tview.NewTableCell(s.Title).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for i, bind := range s.Binds {
			h.SetCell(i+1, base, tview.NewTableCell(tview.Escape(bind.Key)).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(i+1, base+1, tview.NewTableCell(tview.Escape(bind.Desc)).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}
		if colIdx == len(h.sections)-1 {
			continue
		}
		for row := 0; row <= maxRows; row++ {
			h.SetCell(row, base+2, tview.NewTableCell("").
				SetSelectable(false).
				SetExpansion(1))
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
