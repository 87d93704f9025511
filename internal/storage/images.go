package storage

import (
	"context"
	"errors"
)

// ErrNotFoundObject — объект (ключ) отсутствует в бакете.
var ErrNotFoundObject = errors.New("not found")

// Images — контракт объектного хранилища: произвольные байты по bucket+key.
// Содержимое для слоя непрозрачно; ретраев на этом уровне нет.
type Images interface {
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	// GetObject читает объект целиком в память.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// ImagesStorage — алиас-обёртка для внедрения зависимости.
type ImagesStorage interface {
	Images
}
