package repository

import (
	"context"

	"foodie/internal/domain/model"
)

type RestaurantRepository interface {
	Create(ctx context.Context, r *model.Restaurant) error
	FindByID(ctx context.Context, id int64) (model.Restaurant, error)
	// activeOnly=trueなら公開中のみ
	List(ctx context.Context, activeOnly bool) ([]model.Restaurant, error)
	Update(ctx context.Context, r *model.Restaurant) error
	Delete(ctx context.Context, id int64) error
	SetAdmin(ctx context.Context, restaurantID int64, adminID int64) error
	Count(ctx context.Context) (int64, error)
	AverageDeliveryTime(ctx context.Context) (float64, error)
}
