package render

import (
	"strconv"
	"strings"

	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/model1"
)

// SubscribeKey names plan columns and filters.
type SubscribeKey string

const (
	SubscribeID          SubscribeKey = "id"
	SubscribeName        SubscribeKey = "name"
	SubscribeGroup       SubscribeKey = "group_id"
	SubscribeUnitPrice   SubscribeKey = "unit_price"
	SubscribeDiscount    SubscribeKey = "discount"
	SubscribeTraffic     SubscribeKey = "traffic"
	SubscribeSpeedLimit  SubscribeKey = "speed_limit"
	SubscribeDeviceLimit SubscribeKey = "device_limit"
	SubscribeInventory   SubscribeKey = "inventory"
	SubscribeShow        SubscribeKey = "show"
	SubscribeSell        SubscribeKey = "sell"
	SubscribeSearch      SubscribeKey = "search"
)

// SubscribeRowID identifies a plan row.
func SubscribeRowID(s dao.Subscribe) string {
	return ID(s.ID)
}

// SubscribeColumns returns the plan grid columns.
func SubscribeColumns(groups GroupLookup) []grid.Column[dao.Subscribe, SubscribeKey] {
	right := model1.Attrs{Align: tview.AlignRight}
	return []grid.Column[dao.Subscribe, SubscribeKey]{
		{
			Key:    SubscribeID,
			Header: "ID",
			Value:  func(s dao.Subscribe) string { return ID(s.ID) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber},
		},
		{
			Key:           SubscribeName,
			Header:        "NAME",
			Value:         func(s dao.Subscribe) string { return s.Name },
			DisableHiding: true,
		},
		{
			Key:    SubscribeGroup,
			Header: "GROUP",
			Value:  func(s dao.Subscribe) string { return Missing(groupName(groups, s.GroupID)) },
		},
		{
			Key:    SubscribeUnitPrice,
			Header: "PRICE",
			Value:  func(s dao.Subscribe) string { return MajorUnit(s.UnitPrice) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:            SubscribeDiscount,
			Header:         "DISCOUNT",
			Value:          func(s dao.Subscribe) string { return Discounts(s.Discount) },
			DisableSorting: true,
		},
		{
			Key:    SubscribeTraffic,
			Header: "TRAFFIC",
			Value:  func(s dao.Subscribe) string { return Bytes(s.Traffic) },
			Attrs:  model1.Attrs{Kind: model1.KindCapacity, Align: tview.AlignRight},
		},
		{
			Key:    SubscribeSpeedLimit,
			Header: "SPEED",
			Value:  func(s dao.Subscribe) string { return Megabits(s.SpeedLimit) },
			Attrs:  right,
		},
		{
			Key:    SubscribeDeviceLimit,
			Header: "DEVICES",
			Value:  func(s dao.Subscribe) string { return Limit(s.DeviceLimit) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:    SubscribeInventory,
			Header: "INVENTORY",
			Value:  func(s dao.Subscribe) string { return Count(s.Inventory) },
			Attrs:  model1.Attrs{Kind: model1.KindNumber, Align: tview.AlignRight},
		},
		{
			Key:    SubscribeShow,
			Header: "SHOW",
			Value:  func(s dao.Subscribe) string { return OnOff(s.Show) },
		},
		{
			Key:    SubscribeSell,
			Header: "SELL",
			Value:  func(s dao.Subscribe) string { return OnOff(s.Sell) },
		},
	}
}

// SubscribeParams returns the plan filters.
func SubscribeParams(groups []grid.Option) []grid.Param[SubscribeKey] {
	return []grid.Param[SubscribeKey]{
		{Key: SubscribeGroup, Placeholder: "Group", Options: groups},
		{Key: SubscribeSearch, Placeholder: "Search"},
	}
}

// Discounts renders price tiers as quantity:percent pairs.
func Discounts(dd []dao.Discount) string {
	if len(dd) == 0 {
		return MissingValue
	}
	ss := make([]string, 0, len(dd))
	for _, d := range dd {
		ss = append(ss, strconv.FormatInt(d.Quantity, 10)+"x:"+strconv.FormatInt(d.Discount, 10)+"%")
	}
	return strings.Join(ss, " ")
}
