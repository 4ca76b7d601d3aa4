package dao

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"sync"

	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/grid"
)

// Paths names the endpoints of a resource.
type Paths struct {
	List   string
	Detail string
	Item   string
	Batch  string
}

// Resource is the base struct that all specific DAOs embed.
// It provides factory access, resource identification and the common calls.
type Resource struct {
	Factory
	rid   *ResourceID
	paths Paths
	tmpl  map[string]any
	mx    sync.RWMutex
}

// Init initializes the Resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
}

func (r *Resource) setup(pp Paths, tmpl map[string]any) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.paths, r.tmpl = pp, tmpl
}

// ResourceID returns the resource identifier.
func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

func (r *Resource) conn() (api.Connection, Paths, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.Factory == nil || r.Factory.Client() == nil {
		return nil, r.paths, api.ErrNoConnection
	}
	return r.Factory.Client(), r.paths, nil
}

// Template returns the skeleton of a new record.
func (r *Resource) Template() map[string]any {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return maps.Clone(r.tmpl)
}

// Raw fetches a record detail as a JSON map.
func (r *Resource) Raw(ctx context.Context, id int64) (map[string]any, error) {
	c, pp, err := r.conn()
	if err != nil {
		return nil, err
	}
	if pp.Detail == "" {
		return nil, fmt.Errorf("%s detail: %w", r.ResourceID(), ErrNotSupported)
	}
	var out map[string]any
	if err := c.Get(ctx, pp.Detail, map[string]string{"id": strconv.FormatInt(id, 10)}, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %d: %w", r.ResourceID(), id, ErrNotFound)
	}

	return out, nil
}

// Create stores a new record.
func (r *Resource) Create(ctx context.Context, obj map[string]any) error {
	c, pp, err := r.conn()
	if err != nil {
		return err
	}
	return c.Post(ctx, pp.Item, obj, nil)
}

// Update stores a full record. The record must carry its id.
func (r *Resource) Update(ctx context.Context, obj map[string]any) error {
	c, pp, err := r.conn()
	if err != nil {
		return err
	}
	if _, ok := obj["id"]; !ok {
		return fmt.Errorf("%s update: missing id", r.ResourceID())
	}
	return c.Put(ctx, pp.Item, obj, nil)
}

// Delete removes a record.
func (r *Resource) Delete(ctx context.Context, id int64) error {
	c, pp, err := r.conn()
	if err != nil {
		return err
	}
	return c.Delete(ctx, pp.Item, map[string]int64{"id": id}, nil)
}

// BatchDelete removes records. Resources without a batch endpoint delete
// one record at a time and stop at the first failure.
func (r *Resource) BatchDelete(ctx context.Context, ids []int64) error {
	c, pp, err := r.conn()
	if err != nil {
		return err
	}
	if pp.Batch != "" {
		return c.Delete(ctx, pp.Batch, map[string][]int64{"ids": ids}, nil)
	}
	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %d: %w", id, err)
		}
	}
	return nil
}

// patch loads a record, applies fn and stores it back.
func (r *Resource) patch(ctx context.Context, id int64, fn func(map[string]any)) error {
	obj, err := r.Raw(ctx, id)
	if err != nil {
		return err
	}
	fn(obj)
	obj["id"] = id

	return r.Update(ctx, obj)
}

func listPage[R any](ctx context.Context, r *Resource, req grid.Request, filters map[string]string) (grid.Response[R], error) {
	c, pp, err := r.conn()
	if err != nil {
		return grid.Response[R]{}, err
	}
	q := make(map[string]string, len(filters)+2)
	for k, v := range filters {
		q[k] = v
	}
	q["page"], q["size"] = strconv.Itoa(req.Page), strconv.Itoa(req.Size)

	var out struct {
		List  []R `json:"list"`
		Total int `json:"total"`
	}
	if err := c.Get(ctx, pp.List, q, &out); err != nil {
		return grid.Response[R]{}, err
	}

	return grid.Response[R]{List: out.List, Total: out.Total}, nil
}

func (r *Resource) caches() *Caches {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.Factory == nil {
		return nil
	}
	return r.Factory.Caches()
}

// IDOf extracts the numeric id of a JSON record.
func IDOf(obj map[string]any) (int64, bool) {
	switch v := obj["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
