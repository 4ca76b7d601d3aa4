// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/export"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/ui"
)

// Browser browses one PPanel resource through its grid.
type Browser struct {
	*ui.GridTable

	app    *App
	name   string
	res    *ResourceGrid
	hidden []string
	log    logger.Logger
	mx     sync.Mutex
}

var _ grid.Listener = (*Browser)(nil)

// NewBrowser returns a browser for a resource view.
func NewBrowser(app *App, name string) *Browser {
	return &Browser{
		app:  app,
		name: name,
		log:  logger.GetDefault(),
	}
}

// Name returns the view name.
func (b *Browser) Name() string {
	return b.name
}

// Init builds the grid and its table.
func (b *Browser) Init(ctx context.Context) error {
	b.log = logger.FromContext(ctx).With("view", b.name)

	opts := grid.DefaultOptions()
	if p := b.app.ppadmin(); p != nil {
		opts = p.GridOptions()
	}
	res, err := BuildGrid(ctx, b.name, GridDeps{
		Factory:  b.app.Factory(),
		Options:  opts,
		Logger:   b.log,
		ReadOnly: b.app.IsReadOnly(),
		Editor:   b.app,
		Notify:   b.app.Flash().Info,
	})
	if err != nil {
		return err
	}
	b.res = res

	b.GridTable = ui.NewGridTable(res.Table, b.app.Content)
	b.SetQueueFn(b.app.QueueUpdateDraw)
	b.SetErrorFn(b.app.Flash().Err)
	b.SetFocusFn(func(p tview.Primitive) { b.app.SetFocus(p) })
	if err := b.GridTable.Init(ctx); err != nil {
		return err
	}
	b.bindKeys()
	b.restoreColumns()

	return nil
}

// Start mounts the grid.
func (b *Browser) Start() {
	b.GridTable.Start()
	b.res.Table.AddListener(b)
}

// Stop unmounts the grid.
func (b *Browser) Stop() {
	b.res.Table.RemoveListener(b)
	b.GridTable.Stop()
}

// Hints returns the key hints of the browser.
func (b *Browser) Hints() ui.MenuHints {
	return b.GridTable.Hints()
}

// Resource returns the browsed resource grid.
func (b *Browser) Resource() *ResourceGrid {
	return b.res
}

// GridChanged persists column visibility changes.
func (b *Browser) GridChanged() {
	hidden := HiddenColumns(b.res.Table.View())

	b.mx.Lock()
	changed := !slices.Equal(hidden, b.hidden)
	b.hidden = hidden
	b.mx.Unlock()

	if changed {
		b.saveColumns(hidden)
	}
}

// HiddenColumns returns the ids of the hidden data columns.
func HiddenColumns(v grid.View) []string {
	var hh []string
	for _, c := range v.Toggles {
		if !c.Visible {
			hh = append(hh, c.ID)
		}
	}

	return hh
}

func (b *Browser) restoreColumns() {
	p := b.app.ppadmin()
	if p == nil || p.ActiveState() == nil {
		return
	}
	saved := p.ActiveState().HiddenColumns(b.name)
	for _, c := range b.res.Table.View().Toggles {
		if !slices.Contains(saved, c.ID) || !c.Visible {
			continue
		}
		if err := c.SetVisible(false); err != nil {
			b.log.Debug("restore column failed", "column", c.ID, "err", err)
		}
	}
	b.mx.Lock()
	b.hidden = HiddenColumns(b.res.Table.View())
	b.mx.Unlock()
}

func (b *Browser) saveColumns(hidden []string) {
	p := b.app.ppadmin()
	if p == nil || p.ActiveState() == nil {
		return
	}
	p.ActiveState().SetHiddenColumns(b.name, hidden)
	if err := p.SaveActive(); err != nil {
		b.log.Warn("save hidden columns failed", "err", err)
	}
}

func (b *Browser) bindKeys() {
	b.Actions().Bulk(ui.KeyMap{
		ui.KeyD:      ui.NewKeyAction("Describe", b.describeCmd, true),
		ui.KeyC:      ui.NewKeyAction("Copy", b.copyCmd, true),
		ui.KeyX:      ui.NewKeyAction("Export", b.exportCmd, true),
		tcell.KeyEsc: ui.NewKeyAction("Back", b.backCmd, false),
	})
}

func (b *Browser) describeCmd(evt *tcell.EventKey) *tcell.EventKey {
	row, ok := b.SelectedRow()
	if !ok {
		return evt
	}
	id, err := RowRecordID(row.ID)
	if err != nil {
		b.app.Flash().Err(err)
		return nil
	}
	if err := b.app.Inject(NewDescribe(b.app, b.res.Accessor, id)); err != nil {
		b.app.Flash().Err(err)
	}

	return nil
}

func (b *Browser) copyCmd(evt *tcell.EventKey) *tcell.EventKey {
	row, ok := b.SelectedRow()
	if !ok {
		return evt
	}
	t, ok := RowTable(b.View(), row.ID)
	if !ok {
		return nil
	}
	raw, err := export.Encode(t, export.FormatYAML)
	if err != nil {
		b.app.Flash().Err(err)
		return nil
	}
	if err := clipboard.WriteAll(string(raw)); err != nil {
		b.app.Flash().Err(fmt.Errorf("copy failed: %w", err))
		return nil
	}
	b.app.Flash().Infof("Copied row %s", row.ID)

	return nil
}

func (b *Browser) exportCmd(*tcell.EventKey) *tcell.EventKey {
	b.app.showExport(b.name, b.View(), func() { b.app.SetFocus(b) })
	return nil
}

// backCmd dismisses the batch banner, then the in-page filter, then the view.
func (b *Browser) backCmd(*tcell.EventKey) *tcell.EventKey {
	if bb := b.View().Batch; bb != nil && bb.Dismiss != nil {
		bb.Dismiss()
		return nil
	}
	if b.app.ClearFilter() {
		return nil
	}
	b.app.PopView()

	return nil
}

// RowTable narrows the export of a view to one row.
func RowTable(v grid.View, id string) (export.Table, bool) {
	t := export.FromView(v)
	for i, r := range v.Rows {
		if r.ID == id && i < len(t.Rows) {
			t.Rows = [][]string{t.Rows[i]}
			return t, true
		}
	}

	return export.Table{}, false
}
