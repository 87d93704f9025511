// models содержит доменные сущности customers-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxAge — верхняя граница возраста: колонка customer.age имеет тип INT.
const MaxAge = math.MaxInt32

// ErrUnknownGender — строковый тег пола не соответствует ни одному значению enum.
var ErrUnknownGender = errors.New("unknown gender")

// Gender — внутренний enum; в БД и JSON хранится строковым тегом (MALE/FEMALE).
type Gender int8

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "MALE"
	case GenderFemale:
		return "FEMALE"
	default:
		return "UNSPECIFIED"
	}
}

// Valid сообщает, является ли значение допустимым полом клиента.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender разбирает строковый тег пола (регистр не важен).
func ParseGender(tag string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "MALE":
		return GenderMale, nil
	case "FEMALE":
		return GenderFemale, nil
	default:
		return GenderUnspecified, fmt.Errorf("%w: %q", ErrUnknownGender, tag)
	}
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGender, g)
	}

	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}

	*g = parsed

	return nil
}

// Customer — внутренняя доменная модель.
//   - ID назначается хранилищем при вставке и после этого не меняется;
//   - Password содержит только хеш пароля;
//   - ProfileImageID пуст, пока изображение профиля не загружено.
type Customer struct {
	ID             int64
	Name           string
	Email          string
	Password       string
	Age            int
	Gender         Gender
	ProfileImageID string
}

// HasProfileImage сообщает, загружено ли изображение профиля.
func (c Customer) HasProfileImage() bool {
	return c.ProfileImageID != ""
}
