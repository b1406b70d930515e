package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FoodHandler struct {
	uc *usecase.FoodUsecase
}

func NewFoodHandler(uc *usecase.FoodUsecase) *FoodHandler {
	return &FoodHandler{uc: uc}
}

// 作成・更新で共通。省略した項目は変更しない
type FoodRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=255"`
	Description     *string  `json:"description"`
	Price           *int64   `json:"price" validate:"omitempty,gte=0"`
	Image           *string  `json:"image"`
	CategoryID      *int64   `json:"categoryId" validate:"omitempty,gt=0"`
	RestaurantID    *int64   `json:"restaurantId" validate:"omitempty,gt=0"`
	IsAvailable     *bool    `json:"isAvailable"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	PreparationTime *int     `json:"preparationTime" validate:"omitempty,gte=0"`
}

func (r FoodRequest) input() usecase.FoodInput {
	return usecase.FoodInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Image:           r.Image,
		CategoryID:      r.CategoryID,
		RestaurantID:    r.RestaurantID,
		IsAvailable:     r.IsAvailable,
		Rating:          r.Rating,
		PreparationTime: r.PreparationTime,
	}
}

// 参照は公開、更新系は管理者
func (h *FoodHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	admin := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireRoles(model.RolePlatformAdmin))

	g := api.Group("/foods")
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create, admin...)
	g.PUT("/:id", h.update, admin...)
	g.DELETE("/:id", h.delete, admin...)
}

func (h *FoodHandler) list(c echo.Context) error {
	categoryID, err := queryID(c, "category")
	if err != nil {
		return writeError(c, err)
	}
	restaurantID, err := queryID(c, "restaurant")
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListFoodsInput{
		CategoryID:   categoryID,
		RestaurantID: restaurantID,
		Search:       c.QueryParam("search"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{
		"count": len(out.Foods),
		"total": out.Total,
		"page":  out.Page,
		"pages": out.Pages,
		"foods": out.Foods,
	})
}

func (h *FoodHandler) detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"food": f})
}

func (h *FoodHandler) create(c echo.Context) error {
	var req FoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, echo.Map{"food": f})
}

func (h *FoodHandler) update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req FoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"food": f})
}

func (h *FoodHandler) delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"message": "food removed"})
}
