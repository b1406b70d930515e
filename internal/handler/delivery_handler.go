package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /delivery（配達員）
type DeliveryHandler struct {
	uc *usecase.DeliveryUsecase
}

func NewDeliveryHandler(uc *usecase.DeliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

func (h *DeliveryHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	mws := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireRoles(model.RoleCourier))

	g := api.Group("/delivery", mws...)
	g.GET("/orders/available", h.available)
	g.GET("/orders", h.mine)
	g.POST("/orders/:id/accept", h.accept)
	g.PUT("/orders/:id/deliver", h.deliver)
	g.PUT("/availability", h.availability)
	g.GET("/stats", h.stats)
}

func (h *DeliveryHandler) available(c echo.Context) error {
	out, err := h.uc.Available(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out), "orders": out})
}

func (h *DeliveryHandler) mine(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Mine(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out), "orders": out})
}

func (h *DeliveryHandler) accept(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Accept(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"order": out})
}

func (h *DeliveryHandler) deliver(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Deliver(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"order": out})
}

func (h *DeliveryHandler) availability(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req AvailabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	u, err := h.uc.SetAvailability(c.Request().Context(), actor, *req.IsAvailable)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"user": u})
}

func (h *DeliveryHandler) stats(c echo.Context) error {
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
