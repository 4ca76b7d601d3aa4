package dao

import (
	"context"
	"fmt"

	"github.com/ppanel/ppadmin/internal/grid"
)

const announcementEnablePath = "/v1/admin/announcement/enable"

func init() {
	RegisterAccessor(&AnnouncementRID, func() Accessor { return new(AnnouncementDAO) })
}

// Announcement is a notice shown to end users.
type Announcement struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Enable    bool   `json:"enable"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// AnnouncementDAO is the DAO for announcements.
type AnnouncementDAO struct {
	Resource
}

// Init initializes the DAO endpoints.
func (a *AnnouncementDAO) Init(f Factory, rid *ResourceID) {
	a.Resource.Init(f, rid)
	a.setup(Paths{
		List:   "/v1/admin/announcement/list",
		Detail: "/v1/admin/announcement/detail",
		Item:   "/v1/admin/announcement/",
	}, map[string]any{
		"title":   "",
		"content": "",
	})
}

// List returns a page of announcements.
func (a *AnnouncementDAO) List(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[Announcement], error) {
	return listPage[Announcement](ctx, &a.Resource, req, filters)
}

// SetEnable shows or hides an announcement.
func (a *AnnouncementDAO) SetEnable(ctx context.Context, id int64, enable bool) error {
	c, _, err := a.conn()
	if err != nil {
		return err
	}
	body := struct {
		ID     int64 `json:"id"`
		Enable bool  `json:"enable"`
	}{id, enable}
	if err := c.Put(ctx, announcementEnablePath, body, nil); err != nil {
		return fmt.Errorf("toggle announcement %d: %w", id, err)
	}

	return nil
}
