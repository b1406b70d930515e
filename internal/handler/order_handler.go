package handler

import (
	"net/http"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type DeliveryAddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type OrderCreateRequest struct {
	DeliveryAddress DeliveryAddressRequest `json:"deliveryAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"max=32"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, authn []echo.MiddlewareFunc) {
	adminOnly := middleware.RequireRoles(model.RolePlatformAdmin)

	g := api.Group("/orders", authn...)
	g.POST("", h.create)
	g.GET("", h.listMine)
	g.GET("/all", h.listAll, adminOnly)
	g.GET("/:id", h.detail)
	g.GET("/:id/qrcode", h.qrcode)
	g.PUT("/:id/status", h.updateStatus, adminOnly)
}

func (h *OrderHandler) create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), actor, usecase.PlaceOrderInput{
		DeliveryAddress: model.DeliveryAddress{
			Street:  req.DeliveryAddress.Street,
			City:    req.DeliveryAddress.City,
			State:   req.DeliveryAddress.State,
			ZipCode: req.DeliveryAddress.ZipCode,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, echo.Map{"order": out})
}

func (h *OrderHandler) listMine(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out), "orders": out})
}

func (h *OrderHandler) listAll(c echo.Context) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListAll(c.Request().Context(), c.QueryParam("status"), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"count": len(out), "orders": out})
}

func (h *OrderHandler) detail(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"order": out})
}

// PNGをそのまま返す
func (h *OrderHandler) qrcode(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	png, err := h.uc.QRCode(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
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
	st, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		return writeError(c, usecase.BadRequest("invalid status"))
	}

	out, err := h.uc.ChangeStatus(c.Request().Context(), actor, id, st)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"order": out})
}
