package usecase

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"
)

type FoodUsecase struct {
	foods       repository.FoodRepository
	categories  repository.CategoryRepository
	restaurants repository.RestaurantRepository
}

func NewFoodUsecase(
	foods repository.FoodRepository,
	categories repository.CategoryRepository,
	restaurants repository.RestaurantRepository,
) *FoodUsecase {
	return &FoodUsecase{foods: foods, categories: categories, restaurants: restaurants}
}

// 作成・更新の入力。nilは「指定なし」
type FoodInput struct {
	Name            *string
	Description     *string
	Price           *int64
	Image           *string
	CategoryID      *int64
	RestaurantID    *int64
	IsAvailable     *bool
	Rating          *float64
	PreparationTime *int
}

type ListFoodsInput struct {
	CategoryID   *int64
	RestaurantID *int64
	Search       string
	Page         int
	Limit        int
	// 管理画面では販売停止中も出す
	IncludeUnavailable bool
}

type FoodListOutput struct {
	Foods []model.Food `json:"foods"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}

func (u *FoodUsecase) List(ctx context.Context, in ListFoodsInput) (FoodListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 10
	}
	if in.Limit > 100 {
		return FoodListOutput{}, badRequest("invalid limit")
	}

	foods, total, err := u.foods.List(ctx, repository.FoodListFilter{
		CategoryID:    in.CategoryID,
		RestaurantID:  in.RestaurantID,
		Search:        in.Search,
		AvailableOnly: !in.IncludeUnavailable,
		Page:          in.Page,
		Limit:         in.Limit,
	})
	if err != nil {
		return FoodListOutput{}, internal(err)
	}

	pages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	return FoodListOutput{Foods: foods, Total: total, Page: in.Page, Pages: pages}, nil
}

func (u *FoodUsecase) Get(ctx context.Context, id int64) (model.Food, error) {
	f, err := u.foods.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Food{}, notFound("food not found")
	}
	if err != nil {
		return model.Food{}, internal(err)
	}
	return f, nil
}

func (u *FoodUsecase) Create(ctx context.Context, in FoodInput) (model.Food, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.Food{}, badRequest("name is required")
	}
	if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
		return model.Food{}, badRequest("description is required")
	}
	if in.Price == nil {
		return model.Food{}, badRequest("price is required")
	}
	if in.CategoryID == nil || in.RestaurantID == nil {
		return model.Food{}, badRequest("category and restaurant are required")
	}

	f := model.Food{IsAvailable: true, PreparationTime: 20}
	if err := u.apply(ctx, &f, in); err != nil {
		return model.Food{}, err
	}
	if err := u.foods.Create(ctx, &f); err != nil {
		return model.Food{}, internal(err)
	}
	return u.Get(ctx, f.ID)
}

func (u *FoodUsecase) Update(ctx context.Context, id int64, in FoodInput) (model.Food, error) {
	f, err := u.Get(ctx, id)
	if err != nil {
		return model.Food{}, err
	}
	if err := u.apply(ctx, &f, in); err != nil {
		return model.Food{}, err
	}
	if err := u.foods.Update(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Food{}, notFound("food not found")
		}
		return model.Food{}, internal(err)
	}
	return u.Get(ctx, id)
}

func (u *FoodUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.foods.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("food not found")
		}
		return internal(err)
	}
	return nil
}

// 入力を検証しながらfへ反映する
func (u *FoodUsecase) apply(ctx context.Context, f *model.Food, in FoodInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return badRequest("name must not be empty")
		}
		f.Name = name
	}
	if in.Description != nil {
		f.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return badRequest("price must not be negative")
		}
		f.Price = *in.Price
	}
	if in.Image != nil {
		f.Image = *in.Image
	}
	if in.IsAvailable != nil {
		f.IsAvailable = *in.IsAvailable
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return badRequest("rating must be between 0 and 5")
		}
		f.Rating = *in.Rating
	}
	if in.PreparationTime != nil {
		if *in.PreparationTime < 0 {
			return badRequest("preparationTime must not be negative")
		}
		f.PreparationTime = *in.PreparationTime
	}
	if in.CategoryID != nil {
		if _, err := u.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("category not found")
			}
			return internal(err)
		}
		f.CategoryID = *in.CategoryID
		f.Category = nil
	}
	if in.RestaurantID != nil {
		if _, err := u.restaurants.FindByID(ctx, *in.RestaurantID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("restaurant not found")
			}
			return internal(err)
		}
		f.RestaurantID = *in.RestaurantID
		f.Restaurant = nil
	}
	return nil
}
