package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// PutObject записывает байты под ключом key; Content-Type определяется по содержимому.
func (s *ImagesStorage) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	const op = "storage/minio/images/PutObject"

	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), mclient.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetObject читает объект целиком.
// Ошибки: storage.ErrNotFoundObject, если ключа нет в бакете.
func (s *ImagesStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	const op = "storage/minio/images/GetObject"

	obj, err := s.client.GetObject(ctx, bucket, key, mclient.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapObjectErr(err))
	}
	defer obj.Close()

	// minio-go откладывает запрос до первого чтения, поэтому NoSuchKey приходит отсюда.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapObjectErr(err))
	}

	return data, nil
}

// mapObjectErr переводит только NoSuchKey в storage.ErrNotFoundObject,
// сохраняя исходную ошибку в цепочке; прочие 404 (NoSuchBucket) остаются как есть.
func mapObjectErr(err error) error {
	if mclient.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %w", storage.ErrNotFoundObject, err)
	}

	return err
}
