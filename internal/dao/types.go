package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/grid"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotSupported is returned when a resource lacks an operation.
	ErrNotSupported = errors.New("operation not supported")
)

// ResourceID identifies a PPanel resource type.
type ResourceID struct {
	Service  string // e.g., "server", "subscribe", "system"
	Resource string // e.g., "node", "group", "announcement"
}

// String returns a string representation in the form "service/resource".
func (r ResourceID) String() string {
	return r.Service + "/" + r.Resource
}

// Parse parses a string in the form "service/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	service, resource, ok := strings.Cut(s, "/")
	if !ok || service == "" || resource == "" {
		return fmt.Errorf("invalid resource ID format: %s (expected service/resource)", s)
	}
	r.Service, r.Resource = service, resource
	return nil
}

// Predefined ResourceID variables for PPanel resources.
var (
	AnnouncementRID   = ResourceID{Service: "system", Resource: "announcement"}
	NodeRID           = ResourceID{Service: "server", Resource: "node"}
	NodeGroupRID      = ResourceID{Service: "server", Resource: "group"}
	SubscribeRID      = ResourceID{Service: "subscribe", Resource: "plan"}
	SubscribeGroupRID = ResourceID{Service: "subscribe", Resource: "group"}
	UserRID           = ResourceID{Service: "user", Resource: "user"}
)

// Factory provides the API connection and shared caches.
type Factory interface {
	Client() api.Connection
	Profile() string
	SetProfile(ctx context.Context, profile string) error
	Caches() *Caches
}

// Getter retrieves a single record as a generic JSON map.
type Getter interface {
	Raw(ctx context.Context, id int64) (map[string]any, error)
}

// Updater stores an edited JSON record.
type Updater interface {
	Update(ctx context.Context, obj map[string]any) error
}

// Creator stores a new record.
type Creator interface {
	Create(ctx context.Context, obj map[string]any) error
	Template() map[string]any
}

// Nuker provides deletion capabilities.
type Nuker interface {
	Delete(ctx context.Context, id int64) error
	BatchDelete(ctx context.Context, ids []int64) error
}

// Accessor combines record access with initialization.
type Accessor interface {
	Getter
	Updater
	Creator
	Nuker
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// ListFunc loads a page of typed records.
type ListFunc[R any] func(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[R], error)

// Fetcher adapts a ListFunc to a typed grid fetch function.
func Fetcher[R any, K ~string](list ListFunc[R]) grid.FetchFunc[R, K] {
	return func(ctx context.Context, req grid.Request, ff grid.Filters[K]) (grid.Response[R], error) {
		filters := make(map[string]string, len(ff))
		for k, v := range ff {
			filters[string(k)] = v
		}
		return list(ctx, req, filters)
	}
}
