// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package ui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"
)

// InputMode tells command entry apart from in-page search.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFilter
)

const (
	iconCommand = "🐶"
	iconFilter  = "🔍"
)

// CmdBar is the command and filter prompt with ghost text completion.
type CmdBar struct {
	*tview.TextView

	mode       InputMode
	active     bool
	text       []rune
	filterText string
	commands   []string
	matches    []string
	matchIdx   int

	cmdFn    func(string)
	filterFn func(string)
	cancelFn func()
	activeFn func(bool)

	mx sync.RWMutex
}

// NewCmdBar creates a new command bar.
func NewCmdBar() *CmdBar {
	c := CmdBar{
		TextView: tview.NewTextView(),
		matchIdx: -1,
	}
	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDarkCyan)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return &c
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.mx.Lock()
		if len(c.text) > 0 {
			c.text = c.text[:len(c.text)-1]
		}
		c.mx.Unlock()
		c.changed()
	case tcell.KeyCtrlU, tcell.KeyCtrlW:
		c.mx.Lock()
		c.text = c.text[:0]
		c.mx.Unlock()
		c.changed()
	case tcell.KeyEnter:
		c.execute()
	case tcell.KeyEsc:
		c.cancel()
	case tcell.KeyTab, tcell.KeyRight:
		c.mx.Lock()
		if s := c.suggestionLocked(); s != "" {
			c.text = []rune(s)
			c.matches, c.matchIdx = nil, -1
		}
		c.mx.Unlock()
		c.render()
	case tcell.KeyUp, tcell.KeyDown:
		c.cycle(evt.Key() == tcell.KeyDown)
	case tcell.KeyRune:
		c.mx.Lock()
		c.text = append(c.text, evt.Rune())
		c.mx.Unlock()
		c.changed()
	default:
		return evt
	}

	return nil
}

func (c *CmdBar) changed() {
	c.suggest()
	c.render()
	if c.Mode() == ModeFilter && c.filterFn != nil {
		c.filterFn(c.GetText())
	}
}

func (c *CmdBar) cycle(next bool) {
	c.mx.Lock()
	if n := len(c.matches); n > 0 {
		if next {
			c.matchIdx = (c.matchIdx + 1) % n
		} else {
			c.matchIdx = (c.matchIdx - 1 + n) % n
		}
	}
	c.mx.Unlock()
	c.render()
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text, ghost, mode := string(c.text), c.suggestionLocked(), c.mode
	c.mx.RUnlock()

	c.Clear()
	var prefix string
	switch mode {
	case ModeCommand:
		prefix = iconCommand + ":"
	case ModeFilter:
		prefix = iconFilter + "/"
	default:
		prefix = iconCommand + ">"
	}
	if strings.HasPrefix(ghost, text) && len(ghost) > len(text) {
		_, _ = fmt.Fprintf(c.TextView, "%s [::b]%s[gray::]%s[-::]", prefix, tview.Escape(text), ghost[len(text):])
		return
	}
	_, _ = fmt.Fprintf(c.TextView, "%s [::b]%s", prefix, tview.Escape(text))
}

// Suggest returns the known commands starting with text.
func (c *CmdBar) Suggest(text string) []string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.suggestLocked(text)
}

func (c *CmdBar) suggestLocked(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	var mm []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, text) {
			mm = append(mm, cmd)
		}
	}

	return mm
}

func (c *CmdBar) suggest() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.matches, c.matchIdx = nil, -1
	if c.mode != ModeCommand {
		return
	}
	c.matches = c.suggestLocked(string(c.text))
	if len(c.matches) > 0 {
		c.matchIdx = 0
	}
}

func (c *CmdBar) suggestionLocked() string {
	if c.matchIdx < 0 || c.matchIdx >= len(c.matches) {
		return ""
	}
	return c.matches[c.matchIdx]
}

// SetCommands sets the commands offered as completions.
func (c *CmdBar) SetCommands(cmds []string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.commands = slices.Clone(cmds)
	slices.SortFunc(c.commands, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case sortorder.NaturalLess(a, b):
			return -1
		default:
			return 1
		}
	})
	c.commands = slices.Compact(c.commands)
}

// GetText returns the current input text.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return string(c.text)
}

// Activate enters command or filter mode.
func (c *CmdBar) Activate(mode InputMode) {
	c.mx.Lock()
	c.mode, c.active = mode, true
	c.text = c.text[:0]
	c.matches, c.matchIdx = nil, -1
	c.mx.Unlock()
	c.render()

	if c.activeFn != nil {
		c.activeFn(true)
	}
}

// Deactivate exits input mode.
func (c *CmdBar) Deactivate() {
	c.mx.Lock()
	c.mode, c.active = ModeNormal, false
	c.text = c.text[:0]
	c.matches, c.matchIdx = nil, -1
	c.mx.Unlock()
	c.render()

	if c.activeFn != nil {
		c.activeFn(false)
	}
}

func (c *CmdBar) execute() {
	text, mode := c.GetText(), c.Mode()
	switch mode {
	case ModeCommand:
		c.Deactivate()
		if c.cmdFn != nil && strings.TrimSpace(text) != "" {
			c.cmdFn(text)
		}
	case ModeFilter:
		c.mx.Lock()
		c.filterText = text
		c.mx.Unlock()
		c.Deactivate()
	}
}

func (c *CmdBar) cancel() {
	if c.Mode() == ModeFilter {
		c.mx.Lock()
		c.filterText = ""
		c.mx.Unlock()
		if c.cancelFn != nil {
			c.cancelFn()
		}
	}
	c.Deactivate()
}

// IsActive checks if the bar is accepting input.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.active
}

// Mode returns the current mode.
func (c *CmdBar) Mode() InputMode {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.mode
}

// SetCommandFn sets the callback for command execution.
func (c *CmdBar) SetCommandFn(fn func(string)) { c.cmdFn = fn }

// SetFilterFn sets the callback for filter text changes.
func (c *CmdBar) SetFilterFn(fn func(string)) { c.filterFn = fn }

// SetCancelFn sets the callback for an aborted filter.
func (c *CmdBar) SetCancelFn(fn func()) { c.cancelFn = fn }

// SetActiveFn sets the callback for when active state changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) { c.activeFn = fn }

// FilterText returns the last confirmed filter.
func (c *CmdBar) FilterText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.filterText
}

// ClearFilter drops the confirmed filter.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filterText = ""
	c.mx.Unlock()
	if c.filterFn != nil {
		c.filterFn("")
	}
}
