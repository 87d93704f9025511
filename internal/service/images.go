package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/pribylovaa/customers-service/internal/pkg/log"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// ProfileImageKey — ключ объекта изображения: profile-images/{customerID}/{imageID}.
func ProfileImageKey(customerID int64, imageID string) string {
	return path.Join("profile-images", strconv.FormatInt(customerID, 10), imageID)
}

// UploadProfileImage сохраняет изображение профиля.
//
// Порядок:
//   - клиент должен существовать (ErrCustomerNotFound);
//   - payload читается целиком, не больше profile_image.max_size_bytes
//     (ошибка чтения -> ErrInternal; пустой/слишком большой -> ErrInvalidArgument);
//   - выдаётся новый imageID, байты пишутся в бакет;
//   - только после успешной записи imageID фиксируется в записи клиента.
//
// Прежний объект не удаляется.
func (s *Service) UploadProfileImage(ctx context.Context, id int64, r io.Reader) error {
	const op = "service/images/UploadProfileImage"
	lg := log.ForOp(ctx, op, "customer_id", id)

	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		lg.Error("storage error on ExistsByID", "err", err)

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if !exists {
		lg.Warn("customer not found")

		return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}

	data, err := s.readImage(r)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			lg.Warn("invalid argument", "reason", Reason(err))

			return fmt.Errorf("%s: %w", op, err)
		}

		lg.Error("failed to read profile image payload", "err", err)

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	imageID := s.ids.NewID()
	key := ProfileImageKey(id, imageID)

	if err := s.images.PutObject(ctx, s.cfg.S3.Bucket, key, data); err != nil {
		lg.Error("object storage error on PutObject", "key", key, "err", err)

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if err := s.customers.UpdateProfileImageID(ctx, id, imageID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer deleted concurrently", "key", key)

			return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on UpdateProfileImageID", "err", err)

			return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	lg.Info("profile image uploaded", "profile_image_id", imageID, "size", len(data))

	return nil
}

// GetProfileImage возвращает байты изображения профиля без изменений.
// Ошибки: ErrCustomerNotFound, ErrProfileImageNotFound, ErrInternal.
func (s *Service) GetProfileImage(ctx context.Context, id int64) ([]byte, error) {
	const op = "service/images/GetProfileImage"
	lg := log.ForOp(ctx, op, "customer_id", id)

	customer, err := s.customers.SelectByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundCustomer):
			lg.Warn("customer not found")

			return nil, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		default:
			lg.Error("storage error on SelectByID", "err", err)

			return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	if !customer.HasProfileImage() {
		lg.Warn("profile image not found")

		return nil, fmt.Errorf("%s: %w", op, ErrProfileImageNotFound)
	}

	key := ProfileImageKey(id, customer.ProfileImageID)

	data, err := s.images.GetObject(ctx, s.cfg.S3.Bucket, key)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundObject):
			lg.Warn("profile image object is missing", "key", key)

			return nil, fmt.Errorf("%s: %w", op, ErrProfileImageNotFound)
		default:
			lg.Error("object storage error on GetObject", "key", key, "err", err)

			return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
		}
	}

	return data, nil
}

// readImage читает payload с ограничением размера; max <= 0 — без ограничения.
func (s *Service) readImage(r io.Reader) ([]byte, error) {
	limit := s.cfg.ProfileImage.MaxSizeBytes
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyImage
	case limit > 0 && int64(len(data)) > limit:
		return nil, ErrImageTooLarge
	}

	return data, nil
}
