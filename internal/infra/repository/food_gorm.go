package repository

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	repo "foodie/internal/repository"

	"gorm.io/gorm"
)

type FoodGormRepository struct {
	db *gorm.DB
}

// DI
func NewFoodGormRepository(db *gorm.DB) *FoodGormRepository {
	return &FoodGormRepository{db: db}
}

func (r *FoodGormRepository) Create(ctx context.Context, f *model.Food) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// IDで料理を取得（削除済みは除く）
func (r *FoodGormRepository) FindByID(ctx context.Context, id int64) (model.Food, error) {
	var f model.Food
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Restaurant").
		First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Food{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Food{}, err
	}
	return f, nil
}

// カテゴリ/レストラン/検索語/ページング付きで返す
func (r *FoodGormRepository) List(ctx context.Context, f repo.FoodListFilter) ([]model.Food, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Food{})

	if f.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.RestaurantID != nil {
		q = q.Where("restaurant_id = ?", *f.RestaurantID)
	}
	// name/descriptionの部分一致（大文字小文字は無視）
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Food{}, 0, err
	}

	page, limit := normalizePage(f.Page, f.Limit, 10)
	var foods []model.Food
	err := q.Preload("Category").
		Preload("Restaurant").
		Order("created_at desc").Order("id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return []model.Food{}, 0, err
	}
	return foods, total, nil
}

// false/0も反映させるため列を明示する
func (r *FoodGormRepository) Update(ctx context.Context, f *model.Food) error {
	res := r.db.WithContext(ctx).Model(&model.Food{}).
		Where("id = ?", f.ID).
		Select("name", "description", "price", "image", "category_id", "restaurant_id",
			"is_available", "rating", "preparation_time").
		Updates(f)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除
func (r *FoodGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Food{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *FoodGormRepository) Count(ctx context.Context, restaurantID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Food{})
	if restaurantID != nil {
		q = q.Where("restaurant_id = ?", *restaurantID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// 評価の高い順
func (r *FoodGormRepository) TopRated(ctx context.Context, limit int) ([]model.Food, error) {
	var foods []model.Food
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("is_available = ?", true).
		Order("rating desc").Order("created_at desc").
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return []model.Food{}, err
	}
	return foods, nil
}

func (r *FoodGormRepository) AvailablePriceRange(ctx context.Context) (repo.PriceRange, bool, error) {
	var row struct {
		Cnt  int64
		MinP float64
		MaxP float64
		AvgP float64
	}
	err := r.db.WithContext(ctx).Model(&model.Food{}).
		Where("is_available = ?", true).
		Select("COUNT(*) AS cnt, COALESCE(MIN(price), 0) AS min_p, COALESCE(MAX(price), 0) AS max_p, COALESCE(AVG(price), 0) AS avg_p").
		Scan(&row).Error
	if err != nil {
		return repo.PriceRange{}, false, err
	}
	if row.Cnt == 0 {
		return repo.PriceRange{}, false, nil
	}
	return repo.PriceRange{Min: row.MinP, Max: row.MaxP, Avg: row.AvgP}, true, nil
}
