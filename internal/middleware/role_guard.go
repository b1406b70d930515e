package middleware

import (
	"net/http"

	"foodie/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextのActorのロールが許可リストにあるか確認する。
// TokenVersionGuardの後に置く
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if _, ok := allowed[actor.Role]; !ok {
				return c.JSON(http.StatusForbidden, errorJSON("access denied"))
			}
			return next(c)
		}
	}
}
