// Package read реализует HTTP-обработчик получения контакта по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику для чтения
// контакта текущего пользователя и возвращает данные контакта в JSON-формате.
//
// В случае ошибок формирует соответствующие HTTP-ответы с описанием проблемы.
package read

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

// Handler обрабатывает запросы на получение контакта по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения контакта по ID
}

// Service описывает интерфейс бизнес-логики чтения контакта.
type Service interface {
	Read(ctx context.Context, id, userID int) (*models.Contact, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить контакт по ID
// @Description Возвращает контакт текущего пользователя по идентификатору.
// @Tags Contacts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID контакта"
// @Success 200 {object} response.Response "Данные контакта"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Контакт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.read"

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

	res, err := h.service.Read(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("contact not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("contact not found"))
			return
		}
		log.Error("failed to read contact", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read contact"))
		return
	}

	log.Info("success to read contact", slog.Int("id", res.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact": res,
	}))
}
