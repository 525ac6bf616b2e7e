// Package search реализует HTTP-обработчик поиска контактов по подстрокам.
//
// Handler принимает JSON-объект с парами поле-значение, передаёт их сервису
// и возвращает найденные контакты. Нераспознанные поля фильтра игнорируются,
// поиск выполняется без учёта регистра, условия объединяются по И.
package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// Handler управляет HTTP-запросами на поиск контактов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики поиска контактов
}

// Service описывает интерфейс бизнес-логики поиска контактов.
type Service interface {
	Search(ctx context.Context, userID int, filters map[string]string) ([]*models.Contact, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти контакты по подстрокам
// @Description Ищет контакты текущего пользователя по парам поле-значение без учёта регистра. Нераспознанные поля игнорируются.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Фильтры поиска"
// @Success 200 {object} response.Response "Найденные контакты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts/search [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var filters map[string]string
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("filters", filters))

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Search(r.Context(), user.ID, filters)
	if err != nil {
		log.Error("failed to search contacts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to search contacts"))
		return
	}

	log.Info("search contacts", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"contacts":   res,
	}))
}
