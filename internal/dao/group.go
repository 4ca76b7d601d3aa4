package dao

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ppanel/ppadmin/internal/grid"
)

func init() {
	RegisterAccessor(&NodeGroupRID, func() Accessor { return new(NodeGroupDAO) })
	RegisterAccessor(&SubscribeGroupRID, func() Accessor { return new(SubscribeGroupDAO) })
}

// Group is a named bucket of nodes or plans.
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

var groupTemplate = map[string]any{
	"name":        "",
	"description": "",
}

// groupResource serves groups, which have no detail endpoint.
type groupResource struct {
	Resource
	names func() *GroupNames
}

// List returns a page of groups.
func (g *groupResource) List(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[Group], error) {
	return listPage[Group](ctx, &g.Resource, req, filters)
}

// Raw looks the group up in its list.
func (g *groupResource) Raw(ctx context.Context, id int64) (map[string]any, error) {
	c, pp, err := g.conn()
	if err != nil {
		return nil, err
	}
	var out struct {
		List []map[string]any `json:"list"`
	}
	q := map[string]string{"page": "1", "size": strconv.Itoa(groupPageSize)}
	if err := c.Get(ctx, pp.List, q, &out); err != nil {
		return nil, err
	}
	for _, m := range out.List {
		if v, ok := m["id"].(float64); ok && int64(v) == id {
			return m, nil
		}
	}

	return nil, fmt.Errorf("%s %d: %w", g.ResourceID(), id, ErrNotFound)
}

// Create stores a group and drops the cached names.
func (g *groupResource) Create(ctx context.Context, obj map[string]any) error {
	defer g.purge()
	return g.Resource.Create(ctx, obj)
}

// Update stores a group and drops the cached names.
func (g *groupResource) Update(ctx context.Context, obj map[string]any) error {
	defer g.purge()
	return g.Resource.Update(ctx, obj)
}

// Delete removes a group and drops the cached names.
func (g *groupResource) Delete(ctx context.Context, id int64) error {
	defer g.purge()
	return g.Resource.Delete(ctx, id)
}

// BatchDelete removes groups and drops the cached names.
func (g *groupResource) BatchDelete(ctx context.Context, ids []int64) error {
	defer g.purge()
	return g.Resource.BatchDelete(ctx, ids)
}

func (g *groupResource) purge() {
	if g.names == nil {
		return
	}
	if n := g.names(); n != nil {
		n.Purge()
	}
}

// NodeGroupDAO is the DAO for server groups.
type NodeGroupDAO struct {
	groupResource
}

// Init initializes the DAO endpoints.
func (n *NodeGroupDAO) Init(f Factory, rid *ResourceID) {
	n.Resource.Init(f, rid)
	n.setup(Paths{
		List:  "/v1/admin/server/group/list",
		Item:  "/v1/admin/server/group",
		Batch: "/v1/admin/server/group/batch",
	}, groupTemplate)
	n.names = func() *GroupNames {
		if cc := n.caches(); cc != nil {
			return cc.NodeGroups
		}
		return nil
	}
}

// SubscribeGroupDAO is the DAO for subscription groups.
type SubscribeGroupDAO struct {
	groupResource
}

// Init initializes the DAO endpoints.
func (s *SubscribeGroupDAO) Init(f Factory, rid *ResourceID) {
	s.Resource.Init(f, rid)
	s.setup(Paths{
		List:  "/v1/admin/subscribe/group/list",
		Item:  "/v1/admin/subscribe/group",
		Batch: "/v1/admin/subscribe/group/batch",
	}, groupTemplate)
	s.names = func() *GroupNames {
		if cc := s.caches(); cc != nil {
			return cc.SubscribeGroups
		}
		return nil
	}
}
