package repository

import (
	"context"
	"errors"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

// DI
func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).First(&rest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

// 名前順
func (r *RestaurantGormRepository) List(ctx context.Context, activeOnly bool) ([]model.Restaurant, error) {
	q := r.db.WithContext(ctx).Model(&model.Restaurant{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []model.Restaurant
	if err := q.Order("name asc").Order("id asc").Find(&out).Error; err != nil {
		return []model.Restaurant{}, err
	}
	return out, nil
}

// false/0も反映させるため列を明示する
func (r *RestaurantGormRepository) Update(ctx context.Context, rest *model.Restaurant) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", rest.ID).
		Select("name", "description", "image", "address", "phone", "rating", "delivery_time", "is_active").
		Updates(rest)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RestaurantGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Restaurant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RestaurantGormRepository) SetAdmin(ctx context.Context, restaurantID int64, adminID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("admin_id", adminID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RestaurantGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Count(&n).Error
	return n, err
}

// 公開中レストランの平均配達時間（0件なら0）
func (r *RestaurantGormRepository) AverageDeliveryTime(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("is_active = ?", true).
		Select("COALESCE(AVG(delivery_time), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}
