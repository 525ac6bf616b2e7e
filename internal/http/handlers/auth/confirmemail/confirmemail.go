// Package confirmemail реализует HTTP-обработчик подтверждения почты
// по токену из письма.
//
// Handler извлекает токен из URL, проверяет его через сервис аутентификации
// и выставляет флаг подтверждения. Повторный переход по ссылке отвечает
// сообщением о том, что почта уже подтверждена.
package confirmemail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	services "github.com/andrusoleg/contacts-api/internal/services/auth"
)

// Handler управляет HTTP-запросами на подтверждение почты.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подтверждения почты
}

// Service описывает интерфейс бизнес-логики подтверждения почты.
type Service interface {
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтвердить адрес электронной почты
// @Description Проверяет токен подтверждения из письма и выставляет флаг подтверждения почты.
// @Tags Auth
// @Produce  json
// @Param token path string true "Токен подтверждения"
// @Success 200 {object} response.Response "Почта подтверждена"
// @Failure 400 {object} response.ErrorResponse "Ошибка подтверждения"
// @Failure 422 {object} response.ErrorResponse "Недействительный токен"
// @Router /auth/confirmed_email/{token} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, "token")
	if token == "" {
		log.Error("missing token in url")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid token for email verification"))
		return
	}

	alreadyConfirmed, err := h.service.ConfirmEmail(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			log.Error("invalid verification token", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid token for email verification"))
			return
		}
		if errors.Is(err, services.ErrVerification) {
			log.Error("verification error", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("verification error"))
			return
		}
		log.Error("failed to confirm email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to confirm email"))
		return
	}

	if alreadyConfirmed {
		log.Info("email is already confirmed")
		render.JSON(w, r, response.OKWithMessage("Your email is already confirmed"))
		return
	}

	log.Info("success to confirm email")
	render.JSON(w, r, response.OKWithMessage("Email confirmed"))
}
