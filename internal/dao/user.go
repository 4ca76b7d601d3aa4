package dao

import (
	"context"

	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/logger"
)

const userDetailPath = "/v1/admin/user/detail"

func init() {
	RegisterAccessor(&UserRID, func() Accessor { return new(UserDAO) })
}

// User is an end user account. Balance is in minor units.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Balance   int64  `json:"balance"`
	IsAdmin   bool   `json:"is_admin"`
	Enable    bool   `json:"enable"`
	RefererID int64  `json:"referer_id"`
	ReferCode string `json:"refer_code"`
	CreatedAt int64  `json:"created_at"`
}

// UserDAO is the DAO for users.
type UserDAO struct {
	Resource
}

// Init initializes the DAO endpoints.
func (u *UserDAO) Init(f Factory, rid *ResourceID) {
	u.Resource.Init(f, rid)
	u.setup(Paths{
		List:   "/v1/admin/user/list",
		Detail: userDetailPath,
		Item:   "/v1/admin/user/",
		Batch:  "/v1/admin/user/batch",
	}, map[string]any{
		"email":      "",
		"password":   "",
		"balance":    0,
		"is_admin":   false,
		"referer_id": 0,
		"refer_code": "",
	})
}

// List returns a page of users and warms the referrer cache.
func (u *UserDAO) List(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[User], error) {
	resp, err := listPage[User](ctx, &u.Resource, req, filters)
	if err != nil {
		return resp, err
	}
	if cc := u.caches(); cc != nil {
		ids := make([]int64, 0, len(resp.List))
		for _, usr := range resp.List {
			ids = append(ids, usr.RefererID)
		}
		if err := cc.Users.Warm(ctx, ids); err != nil {
			logger.FromContext(ctx).Warn("referrer lookup failed", "err", err)
		}
	}

	return resp, nil
}

// Update stores a user and drops its cached detail.
func (u *UserDAO) Update(ctx context.Context, obj map[string]any) error {
	if err := u.Resource.Update(ctx, obj); err != nil {
		return err
	}
	if id, ok := IDOf(obj); ok {
		u.invalidate(id)
	}

	return nil
}

// SetEnable enables or disables a user.
func (u *UserDAO) SetEnable(ctx context.Context, id int64, enable bool) error {
	defer u.invalidate(id)
	return u.patch(ctx, id, func(m map[string]any) {
		m["enable"] = enable
	})
}

// Referrer returns the cached referrer of a user.
func (u *UserDAO) Referrer(id int64) (User, bool) {
	cc := u.caches()
	if cc == nil || id == 0 {
		return User{}, false
	}
	return cc.Users.Lookup(id)
}

func (u *UserDAO) invalidate(id int64) {
	if cc := u.caches(); cc != nil {
		cc.Users.Invalidate(id)
	}
}
