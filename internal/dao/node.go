package dao

import (
	"context"

	"github.com/ppanel/ppadmin/internal/grid"
)

func init() {
	RegisterAccessor(&NodeRID, func() Accessor { return new(NodeDAO) })
}

// Node is a proxy server entry.
type Node struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ServerAddr   string  `json:"server_addr"`
	Protocol     string  `json:"protocol"`
	GroupID      int64   `json:"group_id"`
	Enable       bool    `json:"enable"`
	SpeedLimit   int64   `json:"speed_limit"`
	TrafficRatio float64 `json:"traffic_ratio"`
	Online       int64   `json:"online"`
	UpdatedAt    int64   `json:"updated_at"`
}

// NodeDAO is the DAO for server nodes.
type NodeDAO struct {
	Resource
}

// Init initializes the DAO endpoints.
func (n *NodeDAO) Init(f Factory, rid *ResourceID) {
	n.Resource.Init(f, rid)
	n.setup(Paths{
		List:   "/v1/admin/server/list",
		Detail: "/v1/admin/server/detail",
		Item:   "/v1/admin/server/",
		Batch:  "/v1/admin/server/batch",
	}, map[string]any{
		"name":          "",
		"server_addr":   "",
		"protocol":      "vless",
		"group_id":      0,
		"enable":        false,
		"speed_limit":   0,
		"traffic_ratio": 1,
	})
}

// List returns a page of nodes.
func (n *NodeDAO) List(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[Node], error) {
	return listPage[Node](ctx, &n.Resource, req, filters)
}

// SetEnable enables or disables a node.
func (n *NodeDAO) SetEnable(ctx context.Context, id int64, enable bool) error {
	return n.patch(ctx, id, func(m map[string]any) {
		m["enable"] = enable
	})
}
