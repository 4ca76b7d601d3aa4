// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/ui"
)

// ProfileRow describes one switchable profile.
type ProfileRow struct {
	Name     string
	Endpoint string
	Email    string
	Active   bool
}

// ProfileSwitcher lists the PPanel profiles and switches between them.
type ProfileSwitcher struct {
	*tview.Table

	app     *App
	rows    []ProfileRow
	filter  string
	actions *ui.KeyActions
}

// NewProfileSwitcher creates a new profile switcher view.
func NewProfileSwitcher(app *App) *ProfileSwitcher {
	p := ProfileSwitcher{
		Table:   tview.NewTable(),
		app:     app,
		actions: ui.NewKeyActions(),
	}
	p.SetBorder(true)
	p.SetTitle(" Profiles ")
	p.SetTitleAlign(tview.AlignCenter)
	p.SetBorderColor(tcell.ColorAqua)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetSelectable(true, false)
	p.SetFixed(1, 0)

	return &p
}

// Init initializes the profile switcher.
func (p *ProfileSwitcher) Init(context.Context) error {
	p.actions.Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewKeyAction("Switch", p.switchCmd, true),
		tcell.KeyEsc:   ui.NewKeyAction("Back", p.backCmd, true),
	})
	p.SetInputCapture(p.keyboard)

	return nil
}

// Start loads the profiles.
func (p *ProfileSwitcher) Start() {
	p.rows = p.profiles()
	p.render()
}

// Stop is a no-op.
func (*ProfileSwitcher) Stop() {}

// Name returns the view name.
func (*ProfileSwitcher) Name() string {
	return profileCmd
}

// Hints returns menu hints.
func (p *ProfileSwitcher) Hints() ui.MenuHints {
	return p.actions.Hints()
}

// SetFilter narrows the profiles by name.
func (p *ProfileSwitcher) SetFilter(q string) {
	p.filter = strings.ToLower(q)
	p.render()
}

// Rows returns the listed profiles after filtering.
func (p *ProfileSwitcher) Rows() []ProfileRow {
	rr := make([]ProfileRow, 0, len(p.rows))
	for _, r := range p.rows {
		if p.filter == "" || strings.Contains(strings.ToLower(r.Name), p.filter) {
			rr = append(rr, r)
		}
	}
	return rr
}

func (p *ProfileSwitcher) profiles() []ProfileRow {
	f := p.app.Factory()
	if f == nil || f.Client() == nil {
		return nil
	}
	current := f.Profile()

	var rr []ProfileRow
	for _, name := range f.Client().ProfileNames() {
		r := ProfileRow{Name: name, Active: name == current}
		if cfg := p.app.Config(); cfg != nil && cfg.Profiles() != nil {
			if pr, err := cfg.Profiles().Get(name); err == nil {
				r.Endpoint, r.Email = pr.Endpoint, pr.Email
			}
		}
		rr = append(rr, r)
	}

	return rr
}

func (p *ProfileSwitcher) render() {
	p.Clear()
	for col, h := range []string{"", "PROFILE", "ENDPOINT", "EMAIL"} {
		p.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	rows := p.Rows()
	if len(rows) == 0 {
		p.SetCell(1, 0, tview.NewTableCell("No profiles found").
			SetTextColor(tcell.ColorGray).
			SetSelectable(false))
		return
	}
	for i, r := range rows {
		indicator, color := "", tcell.ColorWhite
		if r.Active {
			indicator, color = "●", tcell.ColorGreen
		}
		p.SetCell(i+1, 0, tview.NewTableCell(indicator).SetTextColor(tcell.ColorGreen))
		p.SetCell(i+1, 1, tview.NewTableCell(tview.Escape(r.Name)).
			SetTextColor(color).
			SetExpansion(1).
			SetReference(r.Name))
		p.SetCell(i+1, 2, tview.NewTableCell(tview.Escape(orNA(r.Endpoint))).SetExpansion(1))
		p.SetCell(i+1, 3, tview.NewTableCell(tview.Escape(orNA(r.Email))).SetExpansion(1))
	}
	p.SetTitle(fmt.Sprintf(" Profiles[%d] ", len(rows)))
	p.Select(1, 0)
}

func (p *ProfileSwitcher) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		}
	}
	if a, ok := p.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (p *ProfileSwitcher) selected() (string, bool) {
	row, _ := p.GetSelection()
	cell := p.GetCell(row, 1)
	if row == 0 || cell == nil {
		return "", false
	}
	name, ok := cell.GetReference().(string)
	return name, ok
}

func (p *ProfileSwitcher) switchCmd(evt *tcell.EventKey) *tcell.EventKey {
	name, ok := p.selected()
	if !ok {
		return evt
	}
	p.app.Flash().Infof("Switching to profile %s...", name)
	go func() {
		if err := p.app.SwitchProfile(name); err != nil {
			p.app.Flash().Err(err)
			return
		}
		p.app.QueueUpdateDraw(func() {
			p.app.Flash().Infof("Switched to profile %s", name)
			if err := p.app.command.Run(p.app.defaultView()); err != nil {
				p.app.Flash().Err(err)
			}
		})
	}()

	return nil
}

func (p *ProfileSwitcher) backCmd(*tcell.EventKey) *tcell.EventKey {
	if p.app.ClearFilter() {
		return nil
	}
	p.app.PopView()
	return nil
}
