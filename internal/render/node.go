package render

import (
	"strconv"

	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// NodeKey names node columns and filters.
type NodeKey string

const (
	NodeID       NodeKey = "id"
	NodeEnable   NodeKey = "enable"
	NodeName     NodeKey = "name"
	NodeAddr     NodeKey = "server_addr"
	NodeProtocol NodeKey = "protocol"
	NodeGroup    NodeKey = "group_id"
	NodeTraffic  NodeKey = "traffic_ratio"
	NodeSpeed    NodeKey = "speed_limit"
	NodeOnline   NodeKey = "online"
	NodeAge      NodeKey = "age"
	NodeSearch   NodeKey = "search"
)

// GroupLookup resolves a group id to its name.
type GroupLookup func(id int64) string

// NodeRowID identifies a node row.
func NodeRowID(n dao.Node) string {
	return ID(n.ID)
}

// NodeColumns returns the node grid columns.
func NodeColumns(groups GroupLookup) []grid.Column[dao.Node, NodeKey] {
	return []grid.Column[dao.Node, NodeKey]{
		{
			Key:    NodeID,
			Header: "ID",
			Value:  func(n dao.Node) string { return ID(n.ID) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber},
		},
		{
			Key:    NodeEnable,
			Header: "ENABLE",
			Value:  func(n dao.Node) string { return OnOff(n.Enable) },
		},
		{
			Key:           NodeName,
			Header:        "NAME",
			Value:         func(n dao.Node) string { return n.Name },
			DisableHiding: true,
		},
		{
			Key:    NodeAddr,
			Header: "ADDRESS",
			Value:  func(n dao.Node) string { return Missing(n.ServerAddr) },
		},
		{
			Key:    NodeProtocol,
			Header: "PROTOCOL",
			Value:  func(n dao.Node) string { return Missing(n.Protocol) },
		},
		{
			Key:    NodeGroup,
			Header: "GROUP",
			Value:  func(n dao.Node) string { return Missing(groupName(groups, n.GroupID)) },
		},
		{
			Key:    NodeTraffic,
			Header: "RATIO",
			Value:  func(n dao.Node) string { return strconv.FormatFloat(n.TrafficRatio, 'f', -1, 64) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:    NodeSpeed,
			Header: "SPEED",
			Value:  func(n dao.Node) string { return Megabits(n.SpeedLimit) },
			Attrs:  model1.Attrs{Align: tview.AlignRight},
		},
		{
			Key:    NodeOnline,
			Header: "ONLINE",
			Value:  func(n dao.Node) string { return Count(n.Online) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:    NodeAge,
			Header: "AGE",
			Value:  func(n dao.Node) string { return Age(n.UpdatedAt) },
			Attrs:  model1.Attrs{Kind: model1.KindDuration},
		},
	}
}

// NodeParams returns the node filters. Groups feed the group selector.
func NodeParams(groups []grid.Option) []grid.Param[NodeKey] {
	return []grid.Param[NodeKey]{
		{Key: NodeGroup, Placeholder: "Group", Options: groups},
		{Key: NodeSearch, Placeholder: "Search"},
	}
}

func groupName(groups GroupLookup, id int64) string {
	if groups == nil || id == 0 {
		return ""
	}
	return groups(id)
}
