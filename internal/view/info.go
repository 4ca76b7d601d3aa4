// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const logoWidth = 40

var logo = []string{
	` ___ ___  __ _  __| |_ __ ___ (_)_ __  `,
	`| _ \ _ \/ _' |/ _' | '_ ' _ \| | '_ \ `,
	`|  _/  _/ (_| | (_| | | | | | | | | | |`,
	`|_| |_|  \__,_|\__,_|_| |_| |_|_|_| |_|`,
}

// ProfileInfo shows the active profile and endpoint.
type ProfileInfo struct {
	*tview.Table

	profile  string
	endpoint string
	version  string
	readOnly bool
}

// NewProfileInfo returns a new profile info panel.
func NewProfileInfo(version string) *ProfileInfo {
	p := ProfileInfo{
		Table:   tview.NewTable(),
		version: version,
	}
	p.SetBorderPadding(0, 0, 1, 1)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetSelectable(false, false)
	p.refresh()

	return &p
}

// SetInfo updates the displayed profile.
func (p *ProfileInfo) SetInfo(profile, endpoint string, readOnly bool) {
	p.profile, p.endpoint, p.readOnly = profile, endpoint, readOnly
	p.refresh()
}

func (p *ProfileInfo) refresh() {
	p.Clear()

	mode := "[green::]rw[-::]"
	if p.readOnly {
		mode = "[orange::b]ro[-::-]"
	}
	rows := [][2]string{
		{"Profile:", orNA(p.profile)},
		{"Endpoint:", orNA(p.endpoint)},
		{"Mode:", mode},
		{"Version:", orNA(p.version)},
	}
	for r, kv := range rows {
		p.SetCell(r, 0, tview.NewTableCell(kv[0]).
			SetTextColor(tcell.ColorOrange).
			SetAttributes(tcell.AttrBold))
		value := kv[1]
		if r != 2 {
			value = tview.Escape(value)
		}
		p.SetCell(r, 1, tview.NewTableCell(value).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
	}
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

// NewLogo returns the logo panel.
func NewLogo() *tview.TextView {
	l := tview.NewTextView()
	l.SetDynamicColors(true)
	l.SetBackgroundColor(tcell.ColorDefault)
	l.SetTextColor(tcell.ColorOrange)
	l.SetWrap(false)
	l.SetText(tview.Escape(strings.Join(logo, "\n")))

	return l
}
