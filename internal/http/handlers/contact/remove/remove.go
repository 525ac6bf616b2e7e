// Package remove реализует HTTP-обработчик удаления контакта по ID.
//
// Handler извлекает ID из URL-параметров, удаляет контакт текущего
// пользователя и возвращает удалённую запись в JSON-формате.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// Handler обрабатывает запросы на удаление контакта.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для удаления контакта
}

// Service описывает интерфейс бизнес-логики удаления контакта.
type Service interface {
	Remove(ctx context.Context, id, userID int) (*models.Contact, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить контакт
// @Description Удаляет контакт текущего пользователя и возвращает удалённую запись.
// @Tags Contacts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контакта"
// @Success 200 {object} response.Response "Удалённый контакт"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Контакт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	contact, err := h.service.Remove(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("contact not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("contact not found"))
			return
		}
		log.Error("failed to remove contact", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove contact"))
		return
	}

	log.Info("success to remove contact", slog.Int("id", contact.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact": contact,
	}))
}
