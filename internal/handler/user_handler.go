package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Address     *string `json:"address"`
	IsAvailable *bool   `json:"isAvailable"`
}

// /users/profile は本人、/users は管理者のみ
func (h *UserHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	g := api.Group("/users", authn...)
	g.GET("/profile", h.profile)
	g.PUT("/profile", h.updateProfile)
	g.GET("", h.list, middleware.RequireRoles(model.RolePlatformAdmin))
}

func (h *UserHandler) profile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Profile(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"user": out})
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), actor, usecase.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"user": out})
}

func (h *UserHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), c.QueryParam("role"), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out.Users), "total": out.Total, "users": out.Users})
}
