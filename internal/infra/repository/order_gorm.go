package repository

import (
	"context"
	"errors"
	"time"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func preloadOrderItems(tx *gorm.DB) *gorm.DB {
	return tx.Order("order_items.id asc")
}

// 明細もまとめてINSERTされる
func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", preloadOrderItems).
		Where("id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func applyOrderFilter(q *gorm.DB, f repo.OrderFilter) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.RestaurantID != nil {
		q = q.Where("restaurant_id = ?", *f.RestaurantID)
	}
	if f.DeliveryPersonID != nil {
		q = q.Where("delivery_person_id = ?", *f.DeliveryPersonID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.Unassigned {
		q = q.Where("delivery_person_id IS NULL")
	}
	return q
}

// 新しい順。Limitが0なら全件
func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, error) {
	q := applyOrderFilter(r.db.WithContext(ctx).Model(&model.Order{}), f).
		Preload("Items", preloadOrderItems).
		Order("created_at desc").Order("id desc")

	if f.Limit > 0 {
		page, limit := normalizePage(f.Page, f.Limit, f.Limit)
		q = q.Offset((page - 1) * limit).Limit(limit)
	}

	var orders []model.Order
	if err := q.Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Count(ctx context.Context, f repo.OrderFilter) (int64, error) {
	var n int64
	err := applyOrderFilter(r.db.WithContext(ctx).Model(&model.Order{}), f).Count(&n).Error
	return n, err
}

func (r *OrderGormRepository) SumTotalAmount(ctx context.Context, f repo.OrderFilter) (int64, error) {
	var sum int64
	err := applyOrderFilter(r.db.WithContext(ctx).Model(&model.Order{}), f).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// status = from のときだけ to に更新
func (r *OrderGormRepository) TransitionStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ready かつ未割り当てのときだけ自分に割り当てて out_for_delivery にする
func (r *OrderGormRepository) ClaimForDelivery(ctx context.Context, orderID int64, courierID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ? AND delivery_person_id IS NULL", orderID, model.OrderStatusReady).
		Updates(map[string]interface{}{
			"status":             model.OrderStatusOutForDelivery,
			"delivery_person_id": courierID,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// 自分が配達中の注文だけ delivered にする
func (r *OrderGormRepository) MarkDelivered(ctx context.Context, orderID int64, courierID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ? AND delivery_person_id = ?", orderID, model.OrderStatusOutForDelivery, courierID).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusDelivered,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
