// Package birthdays реализует HTTP-обработчик списка ближайших дней рождения.
//
// Handler читает размер окна в днях из параметра days (по умолчанию 7)
// и возвращает контакты текущего пользователя, чьи дни рождения попадают
// в это окно, включая переход через конец месяца и года.
package birthdays

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// Handler управляет HTTP-запросами на получение ближайших дней рождения.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики дней рождения
}

// Service описывает интерфейс бизнес-логики ближайших дней рождения.
type Service interface {
	UpcomingBirthdays(ctx context.Context, userID, days int) ([]*models.Contact, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить ближайшие дни рождения
// @Description Возвращает контакты текущего пользователя с днями рождения в ближайшие days дней.
// @Tags Contacts
// @Produce  json
// @Security BearerAuth
// @Param days query int false "Размер окна в днях (по умолчанию 7)"
// @Success 200 {object} response.Response "Контакты с ближайшими днями рождения"
// @Failure 400 {object} response.ErrorResponse "Некорректный параметр days"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts/upcoming_birthdays [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.birthdays"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			log.Error("invalid days parameter", slog.String("days", daysStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be a positive number"))
			return
		}
		days = parsed
	}

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.UpcomingBirthdays(r.Context(), user.ID, days)
	if err != nil {
		log.Error("failed to list upcoming birthdays", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list upcoming birthdays"))
		return
	}

	log.Info("upcoming birthdays", "count", len(res), "days", days)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"contacts":   res,
	}))
}
