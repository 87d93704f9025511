package postgres

import (
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// customerColumns — единый список колонок таблицы customer для всех SELECT,
// чтобы порядок сканирования совпадал с customerRow.
const customerColumns = `id, name, email, gender, password, age, profile_image_id`

// customerRow — сырая строка таблицы customer в порядке customerColumns.
type customerRow struct {
	ID             int64
	Name           string
	Email          string
	Gender         string
	Password       string
	Age            int32
	ProfileImageID pgtype.Text
}

// ageParam сужает возраст до int32 колонки age; выход за диапазон — storage.ErrOutOfRange.
func ageParam(age int) (int32, error) {
	if age < math.MinInt32 || age > math.MaxInt32 {
		return 0, fmt.Errorf("%w: age=%d", storage.ErrOutOfRange, age)
	}

	return int32(age), nil
}

func scanRow(row pgx.Row) (customerRow, error) {
	var r customerRow
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Gender, &r.Password, &r.Age, &r.ProfileImageID)
	return r, err
}

// mapCustomer переводит строку БД в доменную модель.
// Неизвестный тег пола считается порчей данных: storage.ErrCorruptedRow.
func mapCustomer(r customerRow) (*models.Customer, error) {
	gender, err := models.ParseGender(r.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: id=%d: %w", storage.ErrCorruptedRow, r.ID, err)
	}

	c := &models.Customer{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      int(r.Age),
		Gender:   gender,
	}
	if r.ProfileImageID.Valid {
		c.ProfileImageID = r.ProfileImageID.String
	}

	return c, nil
}
