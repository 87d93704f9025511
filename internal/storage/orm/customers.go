package orm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/storage"
	"gorm.io/gorm"
)

func (s *CustomersStorage) SelectAll(ctx context.Context) ([]models.Customer, error) {
	const op = "storage/orm/customers/SelectAll"

	var records []customerRecord
	if err := s.db.WithContext(ctx).Order("id").Limit(storage.SelectAllLimit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.Customer, 0, len(records))
	for _, rec := range records {
		c, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *c)
	}

	return result, nil
}

func (s *CustomersStorage) SelectByID(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "storage/orm/customers/SelectByID"

	var rec customerRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := rec.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *CustomersStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "storage/orm/customers/ExistsByEmail"

	var n int64
	if err := s.db.WithContext(ctx).Model(&customerRecord{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (s *CustomersStorage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const op = "storage/orm/customers/ExistsByID"

	var n int64
	if err := s.db.WithContext(ctx).Model(&customerRecord{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

// Insert создаёт запись; id назначает БД (BIGSERIAL), gorm читает его через RETURNING.
func (s *CustomersStorage) Insert(ctx context.Context, customer *models.Customer) (int64, error) {
	const op = "storage/orm/customers/Insert"

	if err := checkAge(customer.Age); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	rec := toRecord(customer)
	rec.ID = 0
	rec.ProfileImageID = nil

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return rec.ID, nil
}

func (s *CustomersStorage) Update(ctx context.Context, customer *models.Customer) error {
	const op = "storage/orm/customers/Update"

	if err := checkAge(customer.Age); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := s.db.WithContext(ctx).
		Model(&customerRecord{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":     customer.Name,
			"email":    customer.Email,
			"password": customer.Password,
			"age":      customer.Age,
			"gender":   customer.Gender.String(),
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

func (s *CustomersStorage) DeleteByID(ctx context.Context, id int64) error {
	const op = "storage/orm/customers/DeleteByID"

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&customerRecord{})
	if res.Error != nil {
		return fmt.Errorf("%s: %w", op, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

func (s *CustomersStorage) UpdateProfileImageID(ctx context.Context, id int64, imageID string) error {
	const op = "storage/orm/customers/UpdateProfileImageID"

	res := s.db.WithContext(ctx).Model(&customerRecord{}).Where("id = ?", id).Update("profile_image_id", imageID)
	if res.Error != nil {
		return fmt.Errorf("%s: %w", op, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

// checkAge отсекает возраст, который не помещается в колонку INT.
func checkAge(age int) error {
	if age < math.MinInt32 || age > math.MaxInt32 {
		return fmt.Errorf("%w: age=%d", storage.ErrOutOfRange, age)
	}

	return nil
}

// isDuplicate распознаёт нарушение уникальности как после трансляции gorm,
// так и в сыром виде от pgx.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
