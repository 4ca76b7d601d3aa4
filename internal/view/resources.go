// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/logger"
	"github.com/ppanel/ppadmin/internal/render"
)

// Resource view names.
const (
	AnnouncementView   = "announcement"
	NodeView           = "node"
	NodeGroupView      = "nodegroup"
	SubscribeView      = "subscribe"
	SubscribeGroupView = "subscribegroup"
	UserView           = "user"
)

const groupWarmTimeout = 5 * time.Second

// RecordEditor edits and creates records in an external editor.
type RecordEditor interface {
	EditRecord(ctx context.Context, acc dao.Accessor, id int64) error
	CreateRecord(ctx context.Context, acc dao.Accessor) error
}

// GridDeps wires a resource grid. A nil Editor drops the edit and create
// controls, a read only grid carries no mutating control at all.
type GridDeps struct {
	Factory  dao.Factory
	Options  grid.Options
	Logger   logger.Logger
	ReadOnly bool
	Editor   RecordEditor
	Notify   func(msg string)

	// Fetched, when set, sees the outcome of every page load.
	Fetched func(error)
}

// ResourceGrid is a mounted-ready resource grid and its record accessor.
type ResourceGrid struct {
	Table    grid.Table
	Accessor dao.Accessor
	Resource ResourceView
}

// ResourceView describes a browsable resource.
type ResourceView struct {
	Name  string
	Title string
	RID   *dao.ResourceID

	build func(context.Context, GridDeps) (grid.Table, dao.Accessor, error)
}

var resourceViews = map[string]ResourceView{
	AnnouncementView: {
		Name:  AnnouncementView,
		Title: "Announcements",
		RID:   &dao.AnnouncementRID,
		build: announcementGrid,
	},
	NodeView: {
		Name:  NodeView,
		Title: "Nodes",
		RID:   &dao.NodeRID,
		build: nodeGrid,
	},
	NodeGroupView: {
		Name:  NodeGroupView,
		Title: "Node Groups",
		RID:   &dao.NodeGroupRID,
		build: nodeGroupGrid,
	},
	SubscribeView: {
		Name:  SubscribeView,
		Title: "Subscriptions",
		RID:   &dao.SubscribeRID,
		build: subscribeGrid,
	},
	SubscribeGroupView: {
		Name:  SubscribeGroupView,
		Title: "Subscription Groups",
		RID:   &dao.SubscribeGroupRID,
		build: subscribeGroupGrid,
	},
	UserView: {
		Name:  UserView,
		Title: "Users",
		RID:   &dao.UserRID,
		build: userGrid,
	},
}

// ResourceViews returns the resource view names, sorted.
func ResourceViews() []string {
	vv := make([]string, 0, len(resourceViews))
	for k := range resourceViews {
		vv = append(vv, k)
	}
	sort.Strings(vv)

	return vv
}

// LookupResource returns the resource view of a given name.
func LookupResource(name string) (ResourceView, bool) {
	r, ok := resourceViews[name]
	return r, ok
}

// BuildGrid builds the grid of a resource view. It is usable without a
// terminal.
func BuildGrid(ctx context.Context, name string, d GridDeps) (*ResourceGrid, error) {
	r, ok := LookupResource(name)
	if !ok {
		return nil, fmt.Errorf("unknown resource view %q", name)
	}
	if d.Factory == nil {
		return nil, fmt.Errorf("no factory for %s", name)
	}
	if d.Logger == nil {
		d.Logger = logger.FromContext(ctx)
	}
	d.Logger = d.Logger.With("view", name)

	t, acc, err := r.build(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("build %s grid: %w", name, err)
	}

	return &ResourceGrid{Table: t, Accessor: acc, Resource: r}, nil
}

func fetcher[R any, K ~string](d GridDeps, list dao.ListFunc[R]) grid.FetchFunc[R, K] {
	f := dao.Fetcher[R, K](list)
	if d.Fetched == nil {
		return f
	}
	return func(ctx context.Context, req grid.Request, ff grid.Filters[K]) (grid.Response[R], error) {
		resp, err := f(ctx, req, ff)
		d.Fetched(err)
		return resp, err
	}
}

func (d GridDeps) mutable() bool {
	return !d.ReadOnly
}

func (d GridDeps) notify(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.Logger.Info(msg)
	if d.Notify != nil {
		d.Notify(msg)
	}
}

func (d GridDeps) header(title, kind string, acc dao.Accessor, refresh func()) grid.Header {
	h := grid.Header{Title: title}
	if !d.mutable() || d.Editor == nil {
		return h
	}
	h.Toolbar = append(h.Toolbar, grid.Control{
		Name: "Create",
		Key:  'n',
		Run: func(ctx context.Context) error {
			if err := d.Editor.CreateRecord(ctx, acc); err != nil {
				return err
			}
			d.Logger.Debug("record created", "kind", kind)
			refresh()
			return nil
		},
	})

	return h
}

// rowControls returns edit, the extra controls and delete, in that order.
func (d GridDeps) rowControls(kind string, acc dao.Accessor, id int64, refresh func(), extra ...grid.Control) []grid.Control {
	cc := make([]grid.Control, 0, len(extra)+2)
	if d.Editor != nil {
		cc = append(cc, grid.Control{
			Name: "Edit",
			Key:  'e',
			Run: func(ctx context.Context) error {
				if err := d.Editor.EditRecord(ctx, acc, id); err != nil {
					return err
				}
				refresh()
				return nil
			},
		})
	}
	cc = append(cc, extra...)
	cc = append(cc, grid.Control{
		Name:      "Delete",
		Key:       'D',
		Dangerous: true,
		Run: func(ctx context.Context) error {
			if err := acc.Delete(ctx, id); err != nil {
				return err
			}
			d.notify("Deleted %s %d", kind, id)
			refresh()
			return nil
		},
	})

	return cc
}

// toggle flips a boolean flag of a record. The control is named after what
// it will do.
func (d GridDeps) toggle(key rune, on bool, enable, disable string, set func(context.Context, bool) error, refresh func()) grid.Control {
	name := enable
	if on {
		name = disable
	}

	return grid.Control{
		Name: name,
		Key:  key,
		Run: func(ctx context.Context) error {
			if err := set(ctx, !on); err != nil {
				return err
			}
			refresh()
			return nil
		},
	}
}

func batchDelete[R any](d GridDeps, kind string, acc dao.Accessor, id func(R) int64, refresh func()) func([]R) []grid.Control {
	return func(rows []R) []grid.Control {
		ids := make([]int64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, id(r))
		}
		return []grid.Control{{
			Name:      "Delete",
			Key:       'D',
			Dangerous: true,
			Run: func(ctx context.Context) error {
				if err := acc.BatchDelete(ctx, ids); err != nil {
					return err
				}
				d.notify("Deleted %d %s(s)", len(ids), kind)
				refresh()
				return nil
			},
		}}
	}
}

func warmGroups(ctx context.Context, d GridDeps, names *dao.GroupNames) {
	if names == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, groupWarmTimeout)
	defer cancel()
	if err := names.Warm(ctx); err != nil {
		d.Logger.Warn("group names unavailable", "err", err)
	}
}

func announcementGrid(_ context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.AnnouncementDAO](d.Factory, &dao.AnnouncementRID)
	if err != nil {
		return nil, nil, err
	}

	var g *grid.Controller[dao.Announcement, render.AnnouncementKey]
	refresh := func() { g.Refresh() }
	var acts grid.Actions[dao.Announcement]
	if d.mutable() {
		acts.Render = func(a dao.Announcement) []grid.Control {
			return d.rowControls("announcement", acc, a.ID, refresh,
				d.toggle('t', a.Enable, "Enable", "Disable", func(ctx context.Context, on bool) error {
					return acc.SetEnable(ctx, a.ID, on)
				}, refresh),
			)
		}
		acts.BatchRender = batchDelete(d, "announcement", acc, func(a dao.Announcement) int64 { return a.ID }, refresh)
	}
	g = grid.New(grid.Config[dao.Announcement, render.AnnouncementKey]{
		Columns: render.AnnouncementColumns(),
		Request: fetcher[dao.Announcement, render.AnnouncementKey](d, acc.List),
		ID:      render.AnnouncementID,
		Params:  render.AnnouncementParams(),
		Header:  d.header("Announcements", "announcement", acc, refresh),
		Actions: acts,
		Options: d.Options,
		Logger:  d.Logger,
	})

	return g, acc, nil
}

func nodeGrid(ctx context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.NodeDAO](d.Factory, &dao.NodeRID)
	if err != nil {
		return nil, nil, err
	}

	var (
		lookup  render.GroupLookup
		options []grid.Option
	)
	if cc := d.Factory.Caches(); cc != nil {
		warmGroups(ctx, d, cc.NodeGroups)
		lookup, options = cc.NodeGroups.Lookup, cc.NodeGroups.Options()
	}

	var g *grid.Controller[dao.Node, render.NodeKey]
	refresh := func() { g.Refresh() }
	var acts grid.Actions[dao.Node]
	if d.mutable() {
		acts.Render = func(n dao.Node) []grid.Control {
			return d.rowControls("node", acc, n.ID, refresh,
				d.toggle('t', n.Enable, "Enable", "Disable", func(ctx context.Context, on bool) error {
					return acc.SetEnable(ctx, n.ID, on)
				}, refresh),
			)
		}
		acts.BatchRender = batchDelete(d, "node", acc, func(n dao.Node) int64 { return n.ID }, refresh)
	}
	g = grid.New(grid.Config[dao.Node, render.NodeKey]{
		Columns: render.NodeColumns(lookup),
		Request: fetcher[dao.Node, render.NodeKey](d, acc.List),
		ID:      render.NodeRowID,
		Params:  render.NodeParams(options),
		Header:  d.header("Nodes", "node", acc, refresh),
		Actions: acts,
		Options: d.Options,
		Logger:  d.Logger,
	})

	return g, acc, nil
}

func nodeGroupGrid(_ context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.NodeGroupDAO](d.Factory, &dao.NodeGroupRID)
	if err != nil {
		return nil, nil, err
	}
	return groupGrid(d, "Node Groups", "node group", acc, acc.List), acc, nil
}

func subscribeGroupGrid(_ context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.SubscribeGroupDAO](d.Factory, &dao.SubscribeGroupRID)
	if err != nil {
		return nil, nil, err
	}
	return groupGrid(d, "Subscription Groups", "subscription group", acc, acc.List), acc, nil
}

func groupGrid(d GridDeps, title, kind string, acc dao.Accessor, list dao.ListFunc[dao.Group]) grid.Table {
	var g *grid.Controller[dao.Group, render.GroupKey]
	refresh := func() { g.Refresh() }
	var acts grid.Actions[dao.Group]
	if d.mutable() {
		acts.Render = func(grp dao.Group) []grid.Control {
			return d.rowControls(kind, acc, grp.ID, refresh)
		}
		acts.BatchRender = batchDelete(d, kind, acc, func(grp dao.Group) int64 { return grp.ID }, refresh)
	}
	g = grid.New(grid.Config[dao.Group, render.GroupKey]{
		Columns: render.GroupColumns(),
		Request: fetcher[dao.Group, render.GroupKey](d, list),
		ID:      render.GroupRowID,
		Params:  render.GroupParams(),
		Header:  d.header(title, kind, acc, refresh),
		Actions: acts,
		Options: d.Options,
		Logger:  d.Logger,
	})

	return g
}

func subscribeGrid(ctx context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.SubscribeDAO](d.Factory, &dao.SubscribeRID)
	if err != nil {
		return nil, nil, err
	}

	var (
		lookup  render.GroupLookup
		options []grid.Option
	)
	if cc := d.Factory.Caches(); cc != nil {
		warmGroups(ctx, d, cc.SubscribeGroups)
		lookup, options = cc.SubscribeGroups.Lookup, cc.SubscribeGroups.Options()
	}

	var g *grid.Controller[dao.Subscribe, render.SubscribeKey]
	refresh := func() { g.Refresh() }
	var acts grid.Actions[dao.Subscribe]
	if d.mutable() {
		acts.Render = func(s dao.Subscribe) []grid.Control {
			return d.rowControls("subscription", acc, s.ID, refresh,
				d.toggle('w', s.Show, "Show", "Hide", func(ctx context.Context, on bool) error {
					return acc.SetShow(ctx, s.ID, on)
				}, refresh),
				d.toggle('o', s.Sell, "Sell", "Stop Sale", func(ctx context.Context, on bool) error {
					return acc.SetSell(ctx, s.ID, on)
				}, refresh),
			)
		}
		acts.BatchRender = batchDelete(d, "subscription", acc, func(s dao.Subscribe) int64 { return s.ID }, refresh)
	}
	g = grid.New(grid.Config[dao.Subscribe, render.SubscribeKey]{
		Columns: render.SubscribeColumns(lookup),
		Request: fetcher[dao.Subscribe, render.SubscribeKey](d, acc.List),
		ID:      render.SubscribeRowID,
		Params:  render.SubscribeParams(options),
		Header:  d.header("Subscriptions", "subscription", acc, refresh),
		Actions: acts,
		Options: d.Options,
		Logger:  d.Logger,
	})

	return g, acc, nil
}

func userGrid(_ context.Context, d GridDeps) (grid.Table, dao.Accessor, error) {
	acc, err := dao.AccessorAs[*dao.UserDAO](d.Factory, &dao.UserRID)
	if err != nil {
		return nil, nil, err
	}

	var g *grid.Controller[dao.User, render.UserKey]
	refresh := func() { g.Refresh() }
	var acts grid.Actions[dao.User]
	if d.mutable() {
		acts.Render = func(u dao.User) []grid.Control {
			return d.rowControls("user", acc, u.ID, refresh,
				d.toggle('t', u.Enable, "Enable", "Disable", func(ctx context.Context, on bool) error {
					return acc.SetEnable(ctx, u.ID, on)
				}, refresh),
			)
		}
		acts.BatchRender = batchDelete(d, "user", acc, func(u dao.User) int64 { return u.ID }, refresh)
	}
	g = grid.New(grid.Config[dao.User, render.UserKey]{
		Columns: render.UserColumns(acc.Referrer),
		Request: fetcher[dao.User, render.UserKey](d, acc.List),
		ID:      render.UserRowID,
		Params:  render.UserParams(),
		Header:  d.header("Users", "user", acc, refresh),
		Actions: acts,
		Options: d.Options,
		Logger:  d.Logger,
	})

	return g, acc, nil
}

// RowRecordID parses the record id out of a grid row id.
func RowRecordID(rowID string) (int64, error) {
	id, err := strconv.ParseInt(rowID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", rowID)
	}
	return id, nil
}

// ApplyFilter sets a grid filter by key. Selector filters accept an option
// value or its label.
func ApplyFilter(v grid.View, key, value string) error {
	for _, f := range v.Filters {
		if f.Key != key {
			continue
		}
		if !f.IsSelector() || value == "" {
			f.Set(value)
			return nil
		}
		for _, o := range f.Options {
			if o.Value == value || strings.EqualFold(o.Label, value) {
				f.Set(o.Value)
				return nil
			}
		}
		return fmt.Errorf("invalid value %q for filter %s", value, key)
	}

	return fmt.Errorf("unknown filter %q", key)
}
