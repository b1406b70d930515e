package usecase

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/rs/zerolog/log"
)

type RestaurantUsecase struct {
	restaurants repository.RestaurantRepository
	cache       Cache
}

func NewRestaurantUsecase(restaurants repository.RestaurantRepository, cache Cache) *RestaurantUsecase {
	return &RestaurantUsecase{restaurants: restaurants, cache: cache}
}

type RestaurantInput struct {
	Name         *string
	Description  *string
	Image        *string
	Address      *string
	Phone        *string
	Rating       *float64
	DeliveryTime *int
	IsActive     *bool
}

// 公開中のレストラン（キャッシュ優先）
func (u *RestaurantUsecase) ListActive(ctx context.Context) ([]model.Restaurant, error) {
	var cached []model.Restaurant
	hit, err := u.cache.GetJSON(ctx, cacheKeyActiveRestaurants, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKeyActiveRestaurants).Msg("cache read failed")
	}
	if hit {
		return cached, nil
	}

	list, err := u.restaurants.List(ctx, true)
	if err != nil {
		return nil, internal(err)
	}
	if err := u.cache.SetJSON(ctx, cacheKeyActiveRestaurants, list); err != nil {
		log.Warn().Err(err).Str("key", cacheKeyActiveRestaurants).Msg("cache write failed")
	}
	return list, nil
}

func (u *RestaurantUsecase) Get(ctx context.Context, id int64) (model.Restaurant, error) {
	r, err := u.restaurants.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Restaurant{}, notFound("restaurant not found")
	}
	if err != nil {
		return model.Restaurant{}, internal(err)
	}
	return r, nil
}

func (u *RestaurantUsecase) Create(ctx context.Context, in RestaurantInput) (model.Restaurant, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.Restaurant{}, badRequest("name is required")
	}
	if in.Address == nil || strings.TrimSpace(*in.Address) == "" {
		return model.Restaurant{}, badRequest("address is required")
	}
	if in.Phone == nil || strings.TrimSpace(*in.Phone) == "" {
		return model.Restaurant{}, badRequest("phone is required")
	}

	r := model.Restaurant{DeliveryTime: 30, IsActive: true}
	if err := applyRestaurant(&r, in); err != nil {
		return model.Restaurant{}, err
	}
	if err := u.restaurants.Create(ctx, &r); err != nil {
		return model.Restaurant{}, internal(err)
	}
	u.invalidate(ctx)
	return r, nil
}

func (u *RestaurantUsecase) Update(ctx context.Context, id int64, in RestaurantInput) (model.Restaurant, error) {
	r, err := u.Get(ctx, id)
	if err != nil {
		return model.Restaurant{}, err
	}
	if err := applyRestaurant(&r, in); err != nil {
		return model.Restaurant{}, err
	}
	if err := u.restaurants.Update(ctx, &r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Restaurant{}, notFound("restaurant not found")
		}
		return model.Restaurant{}, internal(err)
	}
	u.invalidate(ctx)
	return r, nil
}

func (u *RestaurantUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.restaurants.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("restaurant not found")
		}
		return internal(err)
	}
	u.invalidate(ctx)
	return nil
}

func (u *RestaurantUsecase) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, cacheKeyActiveRestaurants); err != nil {
		log.Warn().Err(err).Str("key", cacheKeyActiveRestaurants).Msg("cache invalidate failed")
	}
}

func applyRestaurant(r *model.Restaurant, in RestaurantInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return badRequest("name must not be empty")
		}
		r.Name = name
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Image != nil {
		r.Image = *in.Image
	}
	if in.Address != nil {
		r.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		r.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return badRequest("rating must be between 0 and 5")
		}
		r.Rating = *in.Rating
	}
	if in.DeliveryTime != nil {
		if *in.DeliveryTime < 0 {
			return badRequest("deliveryTime must not be negative")
		}
		r.DeliveryTime = *in.DeliveryTime
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return nil
}
