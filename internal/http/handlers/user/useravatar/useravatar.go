// Package useravatar реализует HTTP-обработчик обновления аватара
// текущего пользователя.
//
// Handler принимает multipart-форму с полем file, загружает файл
// во внешнее хранилище через сервис и возвращает пользователя
// с новым URL аватара.
package useravatar

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
)

// Ограничение на размер multipart-формы с аватаром.
const maxAvatarSize = 10 << 20

// Handler управляет HTTP-запросами на обновление аватара.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики обновления аватара
}

// Service описывает интерфейс бизнес-логики обновления аватара.
type Service interface {
	UpdateAvatar(ctx context.Context, user *models.User, file io.Reader) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить аватар текущего пользователя
// @Description Принимает multipart-форму с полем file, загружает файл во внешнее хранилище и сохраняет URL доставки.
// @Tags Users
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param file formData file true "Файл аватара"
// @Success 200 {object} response.Response "Пользователь с новым аватаром"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма или отсутствует файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке аватара"
// @Router /users/avatar [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.avatar"

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

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing file in form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()
	log.Info("avatar file received", slog.String("filename", header.Filename))

	updated, err := h.service.UpdateAvatar(r.Context(), user, file)
	if err != nil {
		log.Error("failed to update avatar", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update avatar"))
		return
	}

	log.Info("success to update avatar", slog.Int("id", updated.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": updated.Public(),
	}))
}
