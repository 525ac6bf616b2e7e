// Package contactsapi предоставляет маршруты для основного приложения.
package contactsapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/andrusoleg/contacts-api/internal/http/handlers/auth/confirmemail"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/auth/login"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/auth/me"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/auth/requestemail"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/auth/signup"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/birthdays"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/create"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/list"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/read"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/remove"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/search"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/contact/update"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/health"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/user/useravatar"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/user/userlist"
	"github.com/andrusoleg/contacts-api/internal/http/handlers/user/userread"
	"github.com/andrusoleg/contacts-api/internal/http/middlewarectx"
	authservice "github.com/andrusoleg/contacts-api/internal/services/auth"
	contactservice "github.com/andrusoleg/contacts-api/internal/services/contact"
	mailerservice "github.com/andrusoleg/contacts-api/internal/services/mailer"
	userservice "github.com/andrusoleg/contacts-api/internal/services/user"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.AuthService, contactService *contactservice.ContactService,
	userService *userservice.UserService, mailerService *mailerservice.MailerService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService, mailerService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/auth/confirmed_email/{token}", confirmemail.New(logger, authService).ServeHTTP)
		r.Post("/auth/request_email", requestemail.New(logger, authService, mailerService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))

			r.With(middlewarectx.RateLimitMiddleware(logger)).
				Get("/auth/me", me.New(logger).ServeHTTP)

			r.Post("/contacts", create.New(logger, contactService).ServeHTTP)
			r.Get("/contacts", list.New(logger, contactService).ServeHTTP)
			r.Post("/contacts/search", search.New(logger, contactService).ServeHTTP)
			r.Get("/contacts/upcoming_birthdays", birthdays.New(logger, contactService).ServeHTTP)
			r.Get("/contacts/{id}", read.New(logger, contactService).ServeHTTP)
			r.Patch("/contacts/{id}", update.New(logger, contactService).ServeHTTP)
			r.Delete("/contacts/{id}", remove.New(logger, contactService).ServeHTTP)

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
			r.Patch("/users/avatar", useravatar.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
