package handler

import (
	"net/http"
	"strconv"

	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// usecaseのエラーをレスポンスにする。500の原因はログだけに出す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			log.Error().Err(he.Cause).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("path", c.Path()).
				Msg(he.Message)
		}
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	log.Error().Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("path", c.Path()).
		Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "server error"})
}

// 成功レスポンスは {"success": true, ...}
func writeOK(c echo.Context, status int, body echo.Map) error {
	if body == nil {
		body = echo.Map{}
	}
	body["success"] = true
	return c.JSON(status, body)
}

func actorFrom(c echo.Context) (model.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return model.Actor{}, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return a, nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.BadRequest("invalid " + name)
	}
	return id, nil
}

// 空なら既定値
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.BadRequest("invalid " + name)
	}
	return n, nil
}

func queryID(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, usecase.BadRequest("invalid " + name)
	}
	return &id, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.BadRequest("invalid body")
	}
	return c.Validate(req)
}
