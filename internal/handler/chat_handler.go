package handler

import (
	"net/http"

	"foodie/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	uc *usecase.ChatUsecase
}

func NewChatHandler(uc *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type ChatRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

func (h *ChatHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/chat", h.reply)
}

func (h *ChatHandler) reply(c echo.Context) error {
	var req ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Reply(c.Request().Context(), req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, echo.Map{"reply": out.Reply, "intent": out.Intent})
}
