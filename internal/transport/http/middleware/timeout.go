package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/customers-service/internal/pkg/log"
)

// Timeout ограничивает обработку запроса сроком d: вызовы хранилища клиентов
// и MinIO получают этот ctx. Более ранний дедлайн родителя остаётся в силе.
// d <= 0 отключает мидлвар.
//
// Запрос, упёршийся в дедлайн, отмечается в логе отдельной записью.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				log.From(ctx).LogAttrs(ctx, slog.LevelWarn, "customers request deadline exceeded",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d),
					slog.Duration("elapsed", time.Since(start)),
				)
			}
		})
	}
}
