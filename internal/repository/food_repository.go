package repository

import (
	"context"

	"foodie/internal/domain/model"
)

// 料理一覧の絞り込み
type FoodListFilter struct {
	CategoryID    *int64
	RestaurantID  *int64
	Search        string
	AvailableOnly bool
	Page          int
	Limit         int
}

type PriceRange struct {
	Min float64
	Max float64
	Avg float64
}

type FoodRepository interface {
	Create(ctx context.Context, f *model.Food) error
	FindByID(ctx context.Context, id int64) (model.Food, error)
	List(ctx context.Context, f FoodListFilter) ([]model.Food, int64, error)
	Update(ctx context.Context, f *model.Food) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, restaurantID *int64) (int64, error)

	// チャット用
	TopRated(ctx context.Context, limit int) ([]model.Food, error)
	AvailablePriceRange(ctx context.Context) (PriceRange, bool, error)
}
