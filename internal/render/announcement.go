package render

import (
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// AnnouncementKey names announcement columns and filters.
type AnnouncementKey string

const (
	AnnouncementEnable  AnnouncementKey = "enable"
	AnnouncementTitle   AnnouncementKey = "title"
	AnnouncementContent AnnouncementKey = "content"
	AnnouncementUpdated AnnouncementKey = "updated_at"
	AnnouncementSearch  AnnouncementKey = "search"
)

// AnnouncementID identifies an announcement row.
func AnnouncementID(a dao.Announcement) string {
	return ID(a.ID)
}

// AnnouncementColumns returns the announcement grid columns.
func AnnouncementColumns() []grid.Column[dao.Announcement, AnnouncementKey] {
	return []grid.Column[dao.Announcement, AnnouncementKey]{
		{
			Key:    AnnouncementEnable,
			Header: "ENABLE",
			Value:  func(a dao.Announcement) string { return OnOff(a.Enable) },
		},
		{
			Key:           AnnouncementTitle,
			Header:        "TITLE",
			Value:         func(a dao.Announcement) string { return a.Title },
			DisableHiding: true,
		},
		{
			Key:    AnnouncementContent,
			Header: "CONTENT",
			Value:  func(a dao.Announcement) string { return OneLine(a.Content) },
			Attrs:  model1.Attrs{MaxWidth: contentWidth},
		},
		{
			Key:    AnnouncementUpdated,
			Header: "UPDATED",
			Value:  func(a dao.Announcement) string { return Date(a.UpdatedAt) },
		},
	}
}

// AnnouncementParams returns the announcement filters. The enable selector
// keeps the server's inverted values: show filters on false.
func AnnouncementParams() []grid.Param[AnnouncementKey] {
	return []grid.Param[AnnouncementKey]{
		{
			Key:         AnnouncementEnable,
			Placeholder: "Enable",
			Options: []grid.Option{
				{Label: "Show", Value: "false"},
				{Label: "Hide", Value: "true"},
			},
		},
		{Key: AnnouncementSearch, Placeholder: "Search"},
	}
}
