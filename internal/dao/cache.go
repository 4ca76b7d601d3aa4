package dao

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/fvbommel/sortorder"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/grid"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultGroupTTL bounds how long group names are trusted.
	DefaultGroupTTL = time.Minute

	// DefaultUserTTL bounds how long user details are trusted.
	DefaultUserTTL = 5 * time.Minute

	userCacheSize   = 256
	warmParallelism = 8
	groupCacheSize  = 1024
	groupPageSize   = 1000
)

// Caches bundles the lookups shared by every view of a profile.
type Caches struct {
	NodeGroups      *GroupNames
	SubscribeGroups *GroupNames
	Users           *UserCache
}

// NewCaches returns caches backed by conn.
func NewCaches(conn api.Connection) *Caches {
	return &Caches{
		NodeGroups:      NewGroupNames(conn, "/v1/admin/server/group/list", DefaultGroupTTL),
		SubscribeGroups: NewGroupNames(conn, "/v1/admin/subscribe/group/list", DefaultGroupTTL),
		Users:           NewUserCache(conn, DefaultUserTTL),
	}
}

// Purge drops every cached entry.
func (c *Caches) Purge() {
	c.NodeGroups.Purge()
	c.SubscribeGroups.Purge()
	c.Users.Purge()
}

// GroupNames resolves group ids to names.
type GroupNames struct {
	conn api.Connection
	path string
	lru  *expirable.LRU[int64, string]
	mx   sync.Mutex
}

// NewGroupNames returns a group name cache loading from path.
func NewGroupNames(conn api.Connection, path string, ttl time.Duration) *GroupNames {
	return &GroupNames{
		conn: conn,
		path: path,
		lru:  expirable.NewLRU[int64, string](groupCacheSize, nil, ttl),
	}
}

// Warm loads every group unless the cache is populated.
func (g *GroupNames) Warm(ctx context.Context) error {
	g.mx.Lock()
	defer g.mx.Unlock()

	if g.lru.Len() > 0 {
		return nil
	}
	var out struct {
		List []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"list"`
	}
	q := map[string]string{"page": "1", "size": strconv.Itoa(groupPageSize)}
	if err := g.conn.Get(ctx, g.path, q, &out); err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	for _, grp := range out.List {
		g.lru.Add(grp.ID, grp.Name)
	}

	return nil
}

// Lookup returns the cached group name. It never loads.
func (g *GroupNames) Lookup(id int64) string {
	if id == 0 {
		return ""
	}
	if n, ok := g.lru.Peek(id); ok {
		return n
	}
	return "#" + strconv.FormatInt(id, 10)
}

// Options returns the cached groups as filter options ordered by name.
func (g *GroupNames) Options() []grid.Option {
	keys := g.lru.Keys()
	oo := make([]grid.Option, 0, len(keys))
	for _, id := range keys {
		n, ok := g.lru.Peek(id)
		if !ok {
			continue
		}
		oo = append(oo, grid.Option{Label: n, Value: strconv.FormatInt(id, 10)})
	}
	sort.Slice(oo, func(i, j int) bool {
		return sortorder.NaturalLess(oo[i].Label, oo[j].Label)
	})

	return oo
}

// Purge drops the cached names.
func (g *GroupNames) Purge() {
	g.lru.Purge()
}

// UserCache keeps recently looked up users. Failed lookups are remembered
// for the same TTL so a broken referrer is not asked for on every page.
type UserCache struct {
	conn   api.Connection
	lru    *expirable.LRU[int64, User]
	misses *expirable.LRU[int64, error]
}

// NewUserCache returns a user detail cache.
func NewUserCache(conn api.Connection, ttl time.Duration) *UserCache {
	return &UserCache{
		conn:   conn,
		lru:    expirable.NewLRU[int64, User](userCacheSize, nil, ttl),
		misses: expirable.NewLRU[int64, error](userCacheSize, nil, ttl),
	}
}

// Get returns a user, loading its detail on a miss.
func (u *UserCache) Get(ctx context.Context, id int64) (User, error) {
	if usr, ok := u.lru.Get(id); ok {
		return usr, nil
	}
	if err, ok := u.misses.Get(id); ok {
		return User{}, err
	}
	var usr User
	err := u.conn.Get(ctx, userDetailPath, map[string]string{"id": strconv.FormatInt(id, 10)}, &usr)
	if err == nil && usr.ID == 0 {
		err = fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		if ctx.Err() == nil {
			u.misses.Add(id, err)
		}
		return User{}, err
	}
	u.lru.Add(id, usr)

	return usr, nil
}

// Warm loads the given users, at most warmParallelism at a time, skipping
// cached ids and known misses. Every id is tried; the failures are joined.
func (u *UserCache) Warm(ctx context.Context, ids []int64) error {
	var (
		g    errgroup.Group
		mx   sync.Mutex
		errs []error
		seen = make(map[int64]struct{}, len(ids))
	)
	g.SetLimit(warmParallelism)
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == 0 || u.lru.Contains(id) || u.misses.Contains(id) {
			continue
		}
		seen[id] = struct{}{}
		g.Go(func() error {
			if _, err := u.Get(ctx, id); err != nil {
				mx.Lock()
				errs = append(errs, err)
				mx.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Lookup returns a cached user. It never loads.
func (u *UserCache) Lookup(id int64) (User, bool) {
	return u.lru.Peek(id)
}

// Invalidate drops one user.
func (u *UserCache) Invalidate(id int64) {
	u.lru.Remove(id)
	u.misses.Remove(id)
}

// Purge drops every cached user.
func (u *UserCache) Purge() {
	u.lru.Purge()
	u.misses.Purge()
}
