// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/ui"
	"gopkg.in/yaml.v3"
)

// Describe formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"

	describeName = "describe"
)

// Describe displays the full record behind a grid row.
type Describe struct {
	*tview.TextView

	app     *App
	acc     dao.Accessor
	id      int64
	format  string
	raw     map[string]any
	actions *ui.KeyActions
	wrapOn  bool
	ctx     context.Context
	cancel  context.CancelFunc
	mx      sync.RWMutex
}

// NewDescribe creates a new record detail view.
func NewDescribe(app *App, acc dao.Accessor, id int64) *Describe {
	d := Describe{
		TextView: tview.NewTextView(),
		app:      app,
		acc:      acc,
		id:       id,
		format:   FormatYAML,
		actions:  ui.NewKeyActions(),
		ctx:      context.Background(),
	}
	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetWordWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)

	return &d
}

// Init initializes the describe view.
func (d *Describe) Init(ctx context.Context) error {
	d.ctx = ctx
	d.bindKeys()
	d.SetInputCapture(d.keyboard)
	d.updateTitle()

	return nil
}

// Start loads the record.
func (d *Describe) Start() {
	d.Refresh()
}

// Stop cancels an in-flight load.
func (d *Describe) Stop() {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Name returns the view name.
func (*Describe) Name() string {
	return describeName
}

// Hints returns the menu hints for this view.
func (d *Describe) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// Refresh reloads the record off the UI thread.
func (d *Describe) Refresh() {
	d.Stop()
	ctx, cancel := context.WithTimeout(d.ctx, d.app.apiTimeout())
	d.mx.Lock()
	d.cancel = cancel
	d.mx.Unlock()

	go func() {
		defer cancel()
		raw, err := d.acc.Raw(ctx, d.id)
		if ctx.Err() == context.Canceled {
			return
		}
		d.app.QueueUpdateDraw(func() {
			if err != nil {
				d.SetText(fmt.Sprintf("[red::]Error fetching %s %d: %s[-::]", d.acc.ResourceID(), d.id, tview.Escape(err.Error())))
				return
			}
			d.mx.Lock()
			d.raw = raw
			d.mx.Unlock()
			d.render()
		})
	}()
}

func (d *Describe) bindKeys() {
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:      ui.NewKeyAction("YAML", d.formatCmd(FormatYAML), true),
		ui.KeyShiftJ: ui.NewKeyAction("JSON", d.formatCmd(FormatJSON), true),
		ui.KeyW:      ui.NewKeyAction("Wrap", d.toggleWrap, true),
		ui.KeyC:      ui.NewKeyAction("Copy", d.copyCmd, true),
		tcell.KeyEsc: ui.NewKeyAction("Back", d.backCmd, true),
	})
	if !d.app.IsReadOnly() {
		d.actions.Add(ui.KeyE, ui.NewKeyAction("Edit", d.editCmd, true))
	}
}

func (d *Describe) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyRune {
		row, _ := d.GetScrollOffset()
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			d.ScrollTo(max(row-1, 0), 0)
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}
	if a, ok := d.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (d *Describe) formatCmd(format string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		d.mx.Lock()
		d.format = format
		d.mx.Unlock()
		d.render()
		return nil
	}
}

func (d *Describe) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)
	return nil
}

func (d *Describe) copyCmd(*tcell.EventKey) *tcell.EventKey {
	d.mx.RLock()
	raw, format := d.raw, d.format
	d.mx.RUnlock()
	if raw == nil {
		return nil
	}
	out, err := encodeRecord(raw, format)
	if err != nil {
		d.app.Flash().Err(err)
		return nil
	}
	if err := clipboard.WriteAll(out); err != nil {
		d.app.Flash().Err(fmt.Errorf("copy failed: %w", err))
		return nil
	}
	d.app.Flash().Infof("Copied %s %d as %s", d.acc.ResourceID(), d.id, strings.ToUpper(format))

	return nil
}

func (d *Describe) editCmd(*tcell.EventKey) *tcell.EventKey {
	go func() {
		if err := d.app.EditRecord(d.ctx, d.acc, d.id); err != nil {
			d.app.Flash().Err(err)
			return
		}
		d.Refresh()
	}()

	return nil
}

func (d *Describe) backCmd(*tcell.EventKey) *tcell.EventKey {
	d.app.PopView()
	return nil
}

func (d *Describe) updateTitle() {
	d.mx.RLock()
	format := d.format
	d.mx.RUnlock()
	d.SetTitle(fmt.Sprintf(" [aqua::b]%s[white::-]([fuchsia::b]%d[white::-]) [gray::]%s[-::] ", d.acc.ResourceID(), d.id, strings.ToUpper(format)))
}

func (d *Describe) render() {
	d.mx.RLock()
	raw, format := d.raw, d.format
	d.mx.RUnlock()

	d.Clear()
	d.SetText(RenderRecord(raw, format))
	d.updateTitle()
	d.ScrollToBeginning()
}

// RenderRecord colors a record for display.
func RenderRecord(raw map[string]any, format string) string {
	if raw == nil {
		return "[red::]No data available[-::]"
	}
	out, err := encodeRecord(raw, format)
	if err != nil {
		return "[red::]" + tview.Escape(err.Error()) + "[-::]"
	}
	if format == FormatJSON {
		return tview.Escape(out)
	}

	return highlightYAML(out)
}

func encodeRecord(raw map[string]any, format string) (string, error) {
	if format == FormatJSON {
		out, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return "", fmt.Errorf("json encoding failed: %w", err)
		}
		return string(out), nil
	}
	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("yaml encoding failed: %w", err)
	}

	return string(out), nil
}

// highlightYAML colors the keys and scalar values of a YAML document.
func highlightYAML(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		key, value, ok := strings.Cut(line, ":")
		trimmed := strings.TrimLeft(key, " -")
		if !ok || trimmed == "" || strings.ContainsAny(trimmed, "\"'") {
			b.WriteString(tview.Escape(line) + "\n")
			continue
		}
		indent := key[:len(key)-len(trimmed)]
		value = strings.TrimSpace(value)
		if value == "" {
			fmt.Fprintf(&b, "%s[aqua::]%s:[-::]\n", indent, tview.Escape(trimmed))
			continue
		}
		fmt.Fprintf(&b, "%s[aqua::]%s:[-::] %s\n", indent, tview.Escape(trimmed), colorizeValue(value))
	}

	return b.String()
}

// colorizeValue colors a scalar by its type.
func colorizeValue(value string) string {
	esc := tview.Escape(value)
	trimmed := strings.Trim(value, "\"'")
	switch strings.ToLower(trimmed) {
	case "true", "enabled":
		return "[green::]" + esc + "[-::]"
	case "false", "disabled":
		return "[red::]" + esc + "[-::]"
	case "null", "~":
		return "[gray::]" + esc + "[-::]"
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return "[fuchsia::]" + esc + "[-::]"
	}

	return esc
}
