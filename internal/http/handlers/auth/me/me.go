// Package me реализует HTTP-обработчик получения данных текущего пользователя.
//
// Пользователь определяется middleware по токену доступа и берётся
// из контекста запроса. Маршрут дополнительно ограничен по частоте запросов.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
)

// Handler управляет HTTP-запросами на получение текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Получить текущего пользователя
// @Description Возвращает данные пользователя, определённого по токену доступа.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	log.Info("success to read current user", slog.Int("id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user.Public(),
	}))
}
