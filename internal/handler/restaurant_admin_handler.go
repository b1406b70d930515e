package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /restaurant-admin（担当レストランの範囲だけ）
type RestaurantAdminHandler struct {
	uc *usecase.RestaurantAdminUsecase
}

func NewRestaurantAdminHandler(uc *usecase.RestaurantAdminUsecase) *RestaurantAdminHandler {
	return &RestaurantAdminHandler{uc: uc}
}

func (h *RestaurantAdminHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	mws := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireRoles(model.RoleRestaurantAdmin))

	g := api.Group("/restaurant-admin", mws...)
	g.GET("/restaurant", h.restaurant)
	g.GET("/foods", h.listFoods)
	g.POST("/foods", h.createFood)
	g.PUT("/foods/:id", h.updateFood)
	g.DELETE("/foods/:id", h.deleteFood)
	g.GET("/orders", h.listOrders)
	g.PUT("/orders/:id/status", h.updateOrderStatus)
	g.GET("/stats", h.stats)
}

func (h *RestaurantAdminHandler) restaurant(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.uc.Restaurant(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"restaurant": r})
}

func (h *RestaurantAdminHandler) listFoods(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListFoods(c.Request().Context(), actor, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out.Foods), "total": out.Total, "foods": out.Foods})
}

func (h *RestaurantAdminHandler) createFood(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req FoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.CreateFood(c.Request().Context(), actor, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, echo.Map{"food": f})
}

func (h *RestaurantAdminHandler) updateFood(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req FoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.UpdateFood(c.Request().Context(), actor, id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"food": f})
}

func (h *RestaurantAdminHandler) deleteFood(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteFood(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"message": "food removed"})
}

func (h *RestaurantAdminHandler) listOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListOrders(c.Request().Context(), actor, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out), "orders": out})
}

func (h *RestaurantAdminHandler) updateOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req OrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"order": out})
}

func (h *RestaurantAdminHandler) stats(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.Stats(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"stats": s})
}
