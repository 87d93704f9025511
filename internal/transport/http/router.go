// http собирает REST API customers-service поверх chi.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/customers-service/internal/errors"
	"github.com/pribylovaa/customers-service/internal/service"
	"github.com/pribylovaa/customers-service/internal/transport/http/handlers"
	"github.com/pribylovaa/customers-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string              // например, "/api/v1"; если пустой — роуты регистрируются на корне.
	Metrics  *middleware.Metrics // nil — метрики запросов не снимаются.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.CustomerService, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: request_id попадает в логгер
		middleware.Logging(opts.Logger),
	)
	if opts.Metrics != nil {
		root.Use(opts.Metrics.Middleware())
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	// Неизвестный маршрут отвечает тем же JSON-конвертом, что и остальные ошибки.
	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, fmt.Errorf("route %s: %w", r.URL.Path, service.ErrNotFound))
	})

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/customers", h.ListCustomers)
	r.Post("/customers", h.RegisterCustomer)
	r.Get("/customers/{id}", h.GetCustomer)
	r.Put("/customers/{id}", h.UpdateCustomer)
	r.Delete("/customers/{id}", h.DeleteCustomer)

	r.Post("/customers/{id}/profile-image", h.UploadProfileImage)
	r.Get("/customers/{id}/profile-image", h.GetProfileImage)
}
