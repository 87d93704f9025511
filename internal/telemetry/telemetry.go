// telemetry настраивает глобальные провайдеры OpenTelemetry (трейсы и метрики)
// с экспортом в writer (stdout в проде). Провайдеры потребляет otelsql в ORM-хранилище,
// поэтому Setup вызывается до открытия соединения с БД.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/pribylovaa/customers-service/internal/config"
)

// ShutdownFunc сбрасывает буферы экспортёров и останавливает провайдеры.
type ShutdownFunc func(ctx context.Context) error

// Setup включает то, что разрешено в cfg. Если выключено всё, глобальные провайдеры
// остаются no-op, а ShutdownFunc ничего не делает.
func Setup(cfg config.TelemetryConfig, serviceName string, w io.Writer) (ShutdownFunc, error) {
	const op = "telemetry/Setup"

	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	res := resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName))

	if cfg.Traces {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("%s: trace exporter: %w", op, err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if cfg.Metrics {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			_ = shutdown(context.Background())
			return nil, fmt.Errorf("%s: metric exporter: %w", op, err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp,
				sdkmetric.WithInterval(cfg.MetricsInterval),
			)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return shutdown, nil
}
