package server

import (
	"foodie/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	Food            *handler.FoodHandler
	Category        *handler.CategoryHandler
	Restaurant      *handler.RestaurantHandler
	Cart            *handler.CartHandler
	Order           *handler.OrderHandler
	Admin           *handler.AdminHandler
	RestaurantAdmin *handler.RestaurantAdminHandler
	Delivery        *handler.DeliveryHandler
	Chat            *handler.ChatHandler
	Health          *handler.HealthHandler
}

// すべて /api 配下。authn は認証済みAPIの共通チェーン
func RegisterRoutes(e *echo.Echo, h Handlers, authn []echo.MiddlewareFunc) {
	api := e.Group("/api")

	h.Health.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api)
	h.Chat.RegisterRoutes(api)

	h.User.RegisterRoutes(api, authn)
	h.Food.RegisterRoutes(api, authn)
	h.Category.RegisterRoutes(api, authn)
	h.Restaurant.RegisterRoutes(api, authn)
	h.Cart.RegisterRoutes(api, authn)
	h.Order.RegisterRoutes(api, authn)
	h.Admin.RegisterRoutes(api, authn)
	h.RestaurantAdmin.RegisterRoutes(api, authn)
	h.Delivery.RegisterRoutes(api, authn)
}
