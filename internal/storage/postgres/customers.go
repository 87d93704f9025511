package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// SelectAll возвращает первые storage.SelectAllLimit клиентов по возрастанию id.
func (s *CustomersStorage) SelectAll(ctx context.Context) ([]models.Customer, error) {
	const op = "storage/postgres/customers/SelectAll"

	q := `SELECT ` + customerColumns + ` FROM customer ORDER BY id LIMIT $1`

	rows, err := s.db.Query(ctx, q, storage.SelectAllLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.Customer, 0)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		c, err := mapCustomer(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SelectByID возвращает клиента по id.
// Ошибки: storage.ErrNotFoundCustomer, storage.ErrCorruptedRow, либо ошибка выполнения запроса.
func (s *CustomersStorage) SelectByID(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "storage/postgres/customers/SelectByID"

	q := `SELECT ` + customerColumns + ` FROM customer WHERE id = $1`

	r, err := scanRow(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := mapCustomer(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *CustomersStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "storage/postgres/customers/ExistsByEmail"

	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM customer WHERE email = $1)`
	if err := s.db.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *CustomersStorage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const op = "storage/postgres/customers/ExistsByID"

	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM customer WHERE id = $1)`
	if err := s.db.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// Insert вставляет нового клиента и возвращает назначенный БД id.
// Ошибки: storage.ErrAlreadyExists при конфликте UNIQUE(email),
// storage.ErrOutOfRange для age вне int32, иные — как есть.
func (s *CustomersStorage) Insert(ctx context.Context, customer *models.Customer) (int64, error) {
	const op = "storage/postgres/customers/Insert"

	q := `
	INSERT INTO customer (name, email, gender, password, age)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	age, err := ageParam(customer.Age)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	err = s.db.QueryRow(ctx, q,
		customer.Name,
		customer.Email,
		customer.Gender.String(),
		customer.Password,
		age,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Update перезаписывает изменяемые поля клиента; profile_image_id не трогает.
// Ошибки: storage.ErrNotFoundCustomer, storage.ErrAlreadyExists.
func (s *CustomersStorage) Update(ctx context.Context, customer *models.Customer) error {
	const op = "storage/postgres/customers/Update"

	q := `
	UPDATE customer
	SET name = $2, email = $3, gender = $4, password = $5, age = $6
	WHERE id = $1`

	age, err := ageParam(customer.Age)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, q,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Gender.String(),
		customer.Password,
		age,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

func (s *CustomersStorage) DeleteByID(ctx context.Context, id int64) error {
	const op = "storage/postgres/customers/DeleteByID"

	tag, err := s.db.Exec(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

// UpdateProfileImageID фиксирует ключ загруженного изображения профиля.
func (s *CustomersStorage) UpdateProfileImageID(ctx context.Context, id int64, imageID string) error {
	const op = "storage/postgres/customers/UpdateProfileImageID"

	tag, err := s.db.Exec(ctx, `UPDATE customer SET profile_image_id = $2 WHERE id = $1`, id, imageID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundCustomer)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
