// Package signup реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON-запрос с данными учётной записи, валидирует их,
// создаёт неподтверждённого пользователя через сервис аутентификации
// и в фоне отправляет письмо подтверждения. Ошибка отправки письма
// логируется и не влияет на ответ клиенту.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
	services "github.com/andrusoleg/contacts-api/internal/services/auth"
)

// Handler управляет HTTP-запросами на регистрацию пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	mailer   Mailer              // Отправка письма подтверждения
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyUser) (*models.User, error)
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
// @Summary Зарегистрировать нового пользователя
// @Description Создает неподтверждённого пользователя и отправляет письмо подтверждения на указанный email.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные новой учётной записи"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Учётная запись уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании пользователя"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Error("account already exists", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("account already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	host := requestHost(r)
	go func() {
		if err := h.mailer.SendVerificationEmail(user.Email, user.Username, host); err != nil {
			log.Error("failed to send verification email", sl.Err(err))
		}
	}()

	log.Info("success to register user", slog.Int("id", user.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":    user.Public(),
		"message": "User successfully created. Check your email for confirmation.",
	}))
}

func requestHost(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
