package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"foodie/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxTokenVersionKey = "token_version" // int
	CtxActorKey        = "actor"         // model.Actor
)

var errNoToken = errors.New("no bearer token")

// usecaseが発行するclaimsと同じ形。roleは見ない（DBの値を使う）
type accessClaims struct {
	Sub       int64            `json:"sub"`
	TV        *int             `json:"tv"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

func (c accessClaims) Valid() error {
	if c.ExpiresAt == nil || !time.Now().Before(c.ExpiresAt.Time) {
		return errors.New("token expired")
	}
	if c.Sub <= 0 {
		return errors.New("invalid sub")
	}
	if c.TV == nil || *c.TV < 0 {
		return errors.New("invalid tv")
	}
	return nil
}

// Bearerトークンを検証し、user_idとtoken_versionをcontextに入れる
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("not authorized, no token"))
			}

			var claims accessClaims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("not authorized, token failed"))
			}

			c.Set(CtxUserIDKey, claims.Sub)
			c.Set(CtxTokenVersionKey, *claims.TV)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errNoToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}
