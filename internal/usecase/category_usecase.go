package usecase

import (
	"context"
	"errors"
	"strings"

	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/rs/zerolog/log"
)

type CategoryUsecase struct {
	categories repository.CategoryRepository
	cache      Cache
}

func NewCategoryUsecase(categories repository.CategoryRepository, cache Cache) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, cache: cache}
}

type CategoryInput struct {
	Name        *string
	Description *string
	Image       *string
}

// キャッシュ優先。キャッシュの失敗はDBへフォールバック
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	hit, err := u.cache.GetJSON(ctx, cacheKeyCategories, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKeyCategories).Msg("cache read failed")
	}
	if hit {
		return cached, nil
	}

	list, err := u.categories.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	if err := u.cache.SetJSON(ctx, cacheKeyCategories, list); err != nil {
		log.Warn().Err(err).Str("key", cacheKeyCategories).Msg("cache write failed")
	}
	return list, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Category{}, notFound("category not found")
	}
	if err != nil {
		return model.Category{}, internal(err)
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.Category{}, badRequest("name is required")
	}
	c := model.Category{}
	applyCategory(&c, in)
	if err := u.categories.Create(ctx, &c); err != nil {
		return model.Category{}, internal(err)
	}
	u.invalidate(ctx)
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Category{}, badRequest("name must not be empty")
	}
	c, err := u.Get(ctx, id)
	if err != nil {
		return model.Category{}, err
	}
	applyCategory(&c, in)
	if err := u.categories.Update(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, notFound("category not found")
		}
		return model.Category{}, internal(err)
	}
	u.invalidate(ctx)
	return c, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("category not found")
		}
		return internal(err)
	}
	u.invalidate(ctx)
	return nil
}

func (u *CategoryUsecase) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, cacheKeyCategories); err != nil {
		log.Warn().Err(err).Str("key", cacheKeyCategories).Msg("cache invalidate failed")
	}
}

func applyCategory(c *model.Category, in CategoryInput) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
}
