package render

import (
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// GroupKey names group columns and filters.
type GroupKey string

const (
	GroupID          GroupKey = "id"
	GroupName        GroupKey = "name"
	GroupDescription GroupKey = "description"
	GroupUpdated     GroupKey = "updated_at"
	GroupSearch      GroupKey = "search"
)

// GroupRowID identifies a group row.
func GroupRowID(g dao.Group) string {
	return ID(g.ID)
}

// GroupColumns returns the group grid columns.
func GroupColumns() []grid.Column[dao.Group, GroupKey] {
	return []grid.Column[dao.Group, GroupKey]{
		{
			Key:    GroupID,
			Header: "ID",
			Value:  func(g dao.Group) string { return ID(g.ID) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber},
		},
		{
			Key:           GroupName,
			Header:        "NAME",
			Value:         func(g dao.Group) string { return g.Name },
			DisableHiding: true,
		},
		{
			Key:    GroupDescription,
			Header: "DESCRIPTION",
			Value:  func(g dao.Group) string { return Missing(OneLine(g.Description)) },
			Attrs:  model1.Attrs{MaxWidth: descriptionWidth},
		},
		{
			Key:    GroupUpdated,
			Header: "UPDATED",
			Value:  func(g dao.Group) string { return Date(g.UpdatedAt) },
		},
	}
}

// GroupParams returns the group filters.
func GroupParams() []grid.Param[GroupKey] {
	return []grid.Param[GroupKey]{
		{Key: GroupSearch, Placeholder: "Search"},
	}
}
