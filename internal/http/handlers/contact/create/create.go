// Package create реализует HTTP-обработчик для создания новых контактов пользователя.
//
// Handler принимает JSON-запрос с данными контакта, валидирует их, извлекает
// владельца из контекста, вызывает бизнес-логику создания контакта через сервис
// и возвращает созданную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	"github.com/andrusoleg/contacts-api/internal/http/response"
	"github.com/andrusoleg/contacts-api/internal/lib/sl"
	"github.com/andrusoleg/contacts-api/internal/models"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// Handler управляет HTTP-запросами на создание новых контактов.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания контакта,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания контактов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания контакта.
type Service interface {
	Create(ctx context.Context, userID int, req models.DummyContact) (*models.Contact, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новый контакт
// @Description Создает новый контакт для текущего пользователя. Возвращает созданную запись.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyContact true "Данные нового контакта"
// @Success 201 {object} response.Response "Контакт создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Контакт с таким email или телефоном уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании контакта"
// @Router /contacts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyContact
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	contact, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			log.Error("contact already exists", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("contact already exists"))
			return
		}
		log.Error("failed to create contact", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create contact"))
		return
	}

	log.Info("success to create contact", slog.Int("id", contact.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact": contact,
	}))
}
