package handler

import (
	"net/http"
	"time"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin（プラットフォーム管理者）
type AdminHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

type AssignRoleRequest struct {
	Role         string `json:"role" validate:"required,oneof=user admin restaurant_admin delivery"`
	RestaurantID *int64 `json:"restaurantId" validate:"omitempty,gt=0"`
}

func (h *AdminHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	admin := append(append([]echo.MiddlewareFunc{}, authn...), middleware.RequireRoles(model.RolePlatformAdmin))

	g := api.Group("/admin", admin...)
	g.GET("/stats", h.stats)
	g.GET("/audit-logs", h.auditLogs)
	g.GET("/orders/:id/audit-logs", h.orderTrail)
	g.PUT("/users/:id/role", h.assignRole)
	g.POST("/users/:id/force-logout", h.forceLogout)
}

func (h *AdminHandler) stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"stats": s})
}

func (h *AdminHandler) assignRole(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req AssignRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.AssignRole(c.Request().Context(), actor, id, usecase.AssignRoleInput{
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"user": u})
}

func (h *AdminHandler) forceLogout(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ForceLogout(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"message": "user logged out"})
}

// 絞り込み: actorUserId, actorRole, action, orderId, userId, from, to (RFC3339), page, limit
func (h *AdminHandler) auditLogs(c echo.Context) error {
	actorID, err := queryID(c, "actorUserId")
	if err != nil {
		return writeError(c, err)
	}
	orderID, err := queryID(c, "orderId")
	if err != nil {
		return writeError(c, err)
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		return writeError(c, err)
	}
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.AuditLogs(c.Request().Context(), usecase.AuditLogQuery{
		ActorUserID: actorID,
		ActorRole:   c.QueryParam("actorRole"),
		Action:      c.QueryParam("action"),
		OrderID:     orderID,
		UserID:      userID,
		From:        from,
		To:          to,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{
		"count": len(out.Logs),
		"total": out.Total,
		"page":  out.Page,
		"logs":  out.Logs,
	})
}

func (h *AdminHandler) orderTrail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	logs, err := h.uc.OrderTrail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(logs), "logs": logs})
}

func queryTime(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, usecase.BadRequest("invalid " + name)
	}
	return &t, nil
}
