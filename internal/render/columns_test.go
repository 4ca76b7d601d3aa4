package render

import (
	"testing"

	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementColumns(t *testing.T) {
	cols := AnnouncementColumns()
	a := dao.Announcement{ID: 2, Title: "Hi", Content: "line one\nline two", Enable: true}

	require.Len(t, cols, 4)
	assert.Equal(t, "ON", cols[0].Value(a))
	assert.Equal(t, "line one line two", cols[2].Value(a))
	assert.True(t, cols[1].DisableHiding)
	assert.Equal(t, "2", AnnouncementID(a))

	pp := AnnouncementParams()
	require.Len(t, pp, 2)
	assert.Equal(t, []grid.Option{{Label: "Show", Value: "false"}, {Label: "Hide", Value: "true"}}, pp[0].Options)
}

func TestNodeColumns(t *testing.T) {
	groups := func(id int64) string {
		if id == 1 {
			return "Asia"
		}
		return ""
	}
	cols := NodeColumns(groups)
	n := dao.Node{ID: 4, Name: "tokyo", GroupID: 1, TrafficRatio: 1.5, SpeedLimit: 0}

	byKey := make(map[NodeKey]string, len(cols))
	for _, c := range cols {
		byKey[c.Key] = c.Value(n)
	}

	assert.Equal(t, "Asia", byKey[NodeGroup])
	assert.Equal(t, "1.5", byKey[NodeTraffic])
	assert.Equal(t, Unlimited, byKey[NodeSpeed])
	assert.Equal(t, "OFF", byKey[NodeEnable])
	assert.Equal(t, MissingValue, byKey[NodeAddr])

	assert.Equal(t, MissingValue, NodeColumns(nil)[5].Value(n))
}

func TestSubscribeColumns(t *testing.T) {
	cols := SubscribeColumns(nil)
	s := dao.Subscribe{ID: 1, Name: "pro", UnitPrice: 999, Traffic: 100_000_000_000, Inventory: -1, Show: true}

	byKey := make(map[SubscribeKey]string, len(cols))
	for _, c := range cols {
		byKey[c.Key] = c.Value(s)
	}

	assert.Equal(t, "9.99", byKey[SubscribeUnitPrice])
	assert.Equal(t, "100 GB", byKey[SubscribeTraffic])
	assert.Equal(t, Unlimited, byKey[SubscribeInventory])
	assert.Equal(t, "ON", byKey[SubscribeShow])
	assert.Equal(t, "OFF", byKey[SubscribeSell])
}

func TestUserColumns(t *testing.T) {
	users := func(id int64) (dao.User, bool) {
		return dao.User{ID: id, Email: "boss@ppanel.dev"}, id == 9
	}

	assert.Equal(t, "@boss", Referer(users, 9))
	assert.Equal(t, "#8", Referer(users, 8))
	assert.Equal(t, MissingValue, Referer(users, 0))

	cols := UserColumns(users)
	u := dao.User{ID: 1, Email: "a@b.c", Balance: 1050, RefererID: 9}
	require.Len(t, cols, 7)
	assert.Equal(t, "10.50", cols[2].Value(u))
	assert.Equal(t, "@boss", cols[5].Value(u))
	assert.Len(t, UserParams(), 2)
}
