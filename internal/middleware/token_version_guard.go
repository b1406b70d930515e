package middleware

import (
	"errors"
	"net/http"

	"foodie/internal/config"
	"foodie/internal/domain/model"
	"foodie/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// JWTのtvとDBのtoken_versionが一致するか確認し、
// DBの最新の行から Actor を作って context に入れる。
// ロールはトークンではなくDBの値を使う
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//AuthJWTが入れたtoken_version(tv)を取得する
			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) || (err == nil && user == nil) {
				return c.JSON(http.StatusUnauthorized, errorJSON("user not found"))
			}
			if err != nil {
				log.Error().Err(err).Int64("user_id", userID).Msg("failed to load user")
				return c.JSON(http.StatusInternalServerError, errorJSON("server error"))
			}

			//token_version が一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("token revoked"))
			}

			if _, ok := model.ParseRole(string(user.Role)); !ok {
				return c.JSON(http.StatusForbidden, errorJSON("unknown role"))
			}

			c.Set(CtxActorKey, user.Actor())
			return next(c)
		}
	}
}

// TokenVersionGuardの後で使う
func ActorFrom(c echo.Context) (model.Actor, bool) {
	a, ok := c.Get(CtxActorKey).(model.Actor)
	return a, ok
}

// 認証済みAPIの共通チェーン
func Authenticated(cfg config.Config, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{AuthJWT(cfg), TokenVersionGuard(userRepo)}
}
