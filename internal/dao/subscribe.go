package dao

import (
	"context"

	"github.com/ppanel/ppadmin/internal/grid"
)

func init() {
	RegisterAccessor(&SubscribeRID, func() Accessor { return new(SubscribeDAO) })
}

// Subscribe is a subscription plan. Prices are in minor units, traffic in
// bytes and speed in bits per second.
type Subscribe struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GroupID     int64      `json:"group_id"`
	UnitPrice   int64      `json:"unit_price"`
	Replacement int64      `json:"replacement"`
	Discount    []Discount `json:"discount"`
	Traffic     int64      `json:"traffic"`
	SpeedLimit  int64      `json:"speed_limit"`
	DeviceLimit int64      `json:"device_limit"`
	Inventory   int64      `json:"inventory"`
	Quota       int64      `json:"quota"`
	Show        bool       `json:"show"`
	Sell        bool       `json:"sell"`
	UpdatedAt   int64      `json:"updated_at"`
}

// Discount is a price tier for buying several months at once.
type Discount struct {
	Quantity int64 `json:"quantity"`
	Discount int64 `json:"discount"`
}

// SubscribeDAO is the DAO for subscription plans.
type SubscribeDAO struct {
	Resource
}

// Init initializes the DAO endpoints.
func (s *SubscribeDAO) Init(f Factory, rid *ResourceID) {
	s.Resource.Init(f, rid)
	s.setup(Paths{
		List:   "/v1/admin/subscribe/list",
		Detail: "/v1/admin/subscribe/detail",
		Item:   "/v1/admin/subscribe/",
		Batch:  "/v1/admin/subscribe/batch",
	}, map[string]any{
		"name":         "",
		"description":  "",
		"group_id":     0,
		"unit_price":   0,
		"discount":     []any{},
		"traffic":      0,
		"speed_limit":  0,
		"device_limit": 0,
		"inventory":    -1,
		"quota":        0,
		"show":         false,
		"sell":         false,
	})
}

// List returns a page of plans.
func (s *SubscribeDAO) List(ctx context.Context, req grid.Request, filters map[string]string) (grid.Response[Subscribe], error) {
	return listPage[Subscribe](ctx, &s.Resource, req, filters)
}

// SetShow lists or unlists a plan in the storefront.
func (s *SubscribeDAO) SetShow(ctx context.Context, id int64, show bool) error {
	return s.patch(ctx, id, func(m map[string]any) {
		m["show"] = show
	})
}

// SetSell opens or closes a plan for purchase.
func (s *SubscribeDAO) SetSell(ctx context.Context, id int64, sell bool) error {
	return s.patch(ctx, id, func(m map[string]any) {
		m["sell"] = sell
	})
}
