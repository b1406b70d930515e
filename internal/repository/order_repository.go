package repository

import (
	"context"

	"foodie/internal/domain/model"
)

// 注文一覧・集計の絞り込み。nil/空は条件なし
type OrderFilter struct {
	UserID           *int64
	RestaurantID     *int64
	DeliveryPersonID *int64
	Statuses         []model.OrderStatus
	// 配達員未割り当てのみ
	Unassigned bool
	Page       int
	Limit      int
}

type OrderRepository interface {
	// Itemsも一緒に保存する
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderFilter) ([]model.Order, error)
	Count(ctx context.Context, f OrderFilter) (int64, error)
	SumTotalAmount(ctx context.Context, f OrderFilter) (int64, error)

	// 以下は条件付き更新。条件に合わず更新できなければ false
	TransitionStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error)
	ClaimForDelivery(ctx context.Context, orderID int64, courierID int64) (bool, error)
	MarkDelivered(ctx context.Context, orderID int64, courierID int64) (bool, error)
}
