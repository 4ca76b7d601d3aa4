package render

import (
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// UserKey names user columns and filters.
type UserKey string

const (
	UserID      UserKey = "id"
	UserEmail   UserKey = "email"
	UserBalance UserKey = "balance"
	UserAdmin   UserKey = "is_admin"
	UserEnable  UserKey = "enable"
	UserReferer UserKey = "referer_id"
	UserCreated UserKey = "created_at"
	UserSearch  UserKey = "search"
	UserFilter  UserKey = "user_id"
)

// UserLookup resolves a user id from cache.
type UserLookup func(id int64) (dao.User, bool)

// UserRowID identifies a user row.
func UserRowID(u dao.User) string {
	return ID(u.ID)
}

// UserColumns returns the user grid columns.
func UserColumns(users UserLookup) []grid.Column[dao.User, UserKey] {
	return []grid.Column[dao.User, UserKey]{
		{
			Key:    UserID,
			Header: "ID",
			Value:  func(u dao.User) string { return ID(u.ID) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber},
		},
		{
			Key:           UserEmail,
			Header:        "EMAIL",
			Value:         func(u dao.User) string { return u.Email },
			DisableHiding: true,
		},
		{
			Key:    UserBalance,
			Header: "BALANCE",
			Value:  func(u dao.User) string { return MajorUnit(u.Balance) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:    UserAdmin,
			Header: "ADMIN",
			Value:  func(u dao.User) string { return BoolToYesNo(u.IsAdmin) },
		},
		{
			Key:    UserEnable,
			Header: "ENABLE",
			Value:  func(u dao.User) string { return OnOff(u.Enable) },
		},
		{
			Key:    UserReferer,
			Header: "REFERER",
			Value:  func(u dao.User) string { return Referer(users, u.RefererID) },
		},
		{
			Key:    UserCreated,
			Header: "CREATED",
			Value:  func(u dao.User) string { return Date(u.CreatedAt) },
		},
	}
}

// UserParams returns the user filters.
func UserParams() []grid.Param[UserKey] {
	return []grid.Param[UserKey]{
		{Key: UserSearch, Placeholder: "Search"},
		{Key: UserFilter, Placeholder: "User ID"},
	}
}

// Referer renders a referrer by its email handle, falling back to its id.
func Referer(users UserLookup, id int64) string {
	if id == 0 {
		return MissingValue
	}
	if users != nil {
		if u, ok := users(id); ok {
			return EmailHandle(u.Email)
		}
	}
	return "#" + ID(id)
}
