package orm

import (
	"fmt"

	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// customerRecord — отображение таблицы customer для gorm.
type customerRecord struct {
	ID             int64   `gorm:"column:id;primaryKey"`
	Name           string  `gorm:"column:name;not null"`
	Email          string  `gorm:"column:email;not null;uniqueIndex"`
	Password       string  `gorm:"column:password;not null"`
	Age            int     `gorm:"column:age;not null"`
	Gender         string  `gorm:"column:gender;not null"`
	ProfileImageID *string `gorm:"column:profile_image_id"`
}

func (customerRecord) TableName() string {
	return "customer"
}

func toRecord(c *models.Customer) customerRecord {
	rec := customerRecord{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
		Age:      c.Age,
		Gender:   c.Gender.String(),
	}
	if c.HasProfileImage() {
		id := c.ProfileImageID
		rec.ProfileImageID = &id
	}

	return rec
}

func (r customerRecord) toModel() (*models.Customer, error) {
	gender, err := models.ParseGender(r.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: id=%d: %w", storage.ErrCorruptedRow, r.ID, err)
	}

	c := &models.Customer{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Age,
		Gender:   gender,
	}
	if r.ProfileImageID != nil {
		c.ProfileImageID = *r.ProfileImageID
	}

	return c, nil
}
