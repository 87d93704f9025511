// orm предоставляет реализацию storage.CustomersStorage поверх gorm.
//
// Соединение открывается через database/sql с драйвером pgx, обёрнутым otelsql:
// каждый запрос порождает span, статистика пула публикуется как метрики.
package orm

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pribylovaa/customers-service/internal/storage"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CustomersStorage struct {
	db *gorm.DB
}

// New открывает инструментированное соединение к PostgreSQL и оборачивает его gorm.
func New(ctx context.Context, dbURL string) (*CustomersStorage, error) {
	const op = "storage/orm/New"

	driverName, err := otelsql.Register("pgx",
		otelsql.TraceQueryWithoutArgs(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := otelsql.RecordStats(sqlDB, otelsql.WithSystem(semconv.DBSystemPostgreSQL)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := NewWithDB(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

// NewWithDB строит хранилище поверх готового *sql.DB (используется и в тестах с sqlmock).
func NewWithDB(sqlDB *sql.DB) (*CustomersStorage, error) {
	const op = "storage/orm/NewWithDB"

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CustomersStorage{db: db}, nil
}

// Close закрывает пул соединений database/sql.
func (s *CustomersStorage) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

var _ storage.CustomersStorage = (*CustomersStorage)(nil)
