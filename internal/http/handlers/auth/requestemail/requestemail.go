// Package requestemail реализует HTTP-обработчик повторной отправки
// письма подтверждения.
//
// Handler всегда отвечает одинаковым сообщением, не раскрывая,
// зарегистрирован ли указанный адрес. Письмо отправляется в фоне
// только для существующего неподтверждённого пользователя.
package requestemail

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// Handler управляет HTTP-запросами на повторную отправку письма подтверждения.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Поиск пользователя по email
	mailer   Mailer              // Отправка письма подтверждения
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает поиск пользователя по email.
type Service interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Mailer описывает отправку письма подтверждения почты.
type Mailer interface {
	SendVerificationEmail(email, username, host string) error
}

// New создает новый Handler с переданными логгером, сервисом и отправителем писем.
func New(log *slog.Logger, service Service, mailer Mailer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		mailer:   mailer,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запросить повторное письмо подтверждения
// @Description Отправляет новое письмо подтверждения, если адрес зарегистрирован и ещё не подтверждён.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyRequestEmail true "Адрес электронной почты"
// @Success 200 {object} response.Response "Письмо отправлено, если адрес зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/request_email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.requestemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRequestEmail
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.UserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error("failed to find user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to request email"))
		return
	}

	if user != nil && user.Confirmed {
		log.Info("email is already confirmed", slog.String("email", req.Email))
		render.JSON(w, r, response.OKWithMessage("Your email is already confirmed"))
		return
	}

	if user != nil {
		host := requestHost(r)
		go func() {
			if err := h.mailer.SendVerificationEmail(user.Email, user.Username, host); err != nil {
				log.Error("failed to send verification email", sl.Err(err))
			}
		}()
	}

	// Одинаковый ответ для известного и неизвестного адреса.
	render.JSON(w, r, response.OKWithMessage("Check your email for confirmation."))
}

func requestHost(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
