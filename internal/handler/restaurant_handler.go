package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type RestaurantRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Address      *string  `json:"address"`
	Phone        *string  `json:"phone" validate:"omitempty,max=50"`
	Rating       *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	DeliveryTime *int     `json:"deliveryTime" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"isActive"`
}

func (r RestaurantRequest) input() usecase.RestaurantInput {
	return usecase.RestaurantInput{
		Name:         r.Name,
		Description:  r.Description,
		Image:        r.Image,
		Address:      r.Address,
		Phone:        r.Phone,
		Rating:       r.Rating,
		DeliveryTime: r.DeliveryTime,
		IsActive:     r.IsActive,
	}
}

func (h *RestaurantHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	admin := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireRoles(model.RolePlatformAdmin))

	g := api.Group("/restaurants")
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create, admin...)
	g.PUT("/:id", h.update, admin...)
	g.DELETE("/:id", h.delete, admin...)
}

func (h *RestaurantHandler) list(c echo.Context) error {
	list, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(list), "restaurants": list})
}

func (h *RestaurantHandler) detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"restaurant": r})
}

func (h *RestaurantHandler) create(c echo.Context) error {
	var req RestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	r, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, echo.Map{"restaurant": r})
}

func (h *RestaurantHandler) update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req RestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	r, err := h.uc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"restaurant": r})
}

func (h *RestaurantHandler) delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"message": "restaurant removed"})
}
