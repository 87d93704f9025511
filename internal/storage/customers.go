// storage содержит контракты слоя хранилищ customers-service.
//
// customers.go - работа с записями клиентов в БД. Контракт реализуют два
// взаимозаменяемых бэкенда: postgres (сырой SQL) и orm (gorm).
// images.go - контракт объектного хранилища для изображений профиля.
//
// Бизнес-валидации здесь нет: все правила живут в слое service.
package storage

//go:generate mockgen -destination=../../mocks/mock_customers_storage.go -package=mocks github.com/pribylovaa/customers-service/internal/storage CustomersStorage
//go:generate mockgen -destination=../../mocks/mock_images_storage.go -package=mocks github.com/pribylovaa/customers-service/internal/storage ImagesStorage

import (
	"context"
	"errors"

	"github.com/pribylovaa/customers-service/internal/models"
)

// SelectAllLimit — размер единственной выборки SelectAll (ограниченная страница, не пагинация).
const SelectAllLimit = 1000

var (
	// ErrNotFoundCustomer — запись клиента не найдена.
	ErrNotFoundCustomer = errors.New("not found")
	// ErrAlreadyExists — нарушено ограничение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrOutOfRange — значение не помещается в тип колонки.
	ErrOutOfRange = errors.New("value out of range")
	// ErrCorruptedRow — строку БД нельзя отобразить в доменную модель.
	ErrCorruptedRow = errors.New("corrupted row")
)

// Customers — контракт репозитория клиентов.
type Customers interface {
	// SelectAll возвращает не более SelectAllLimit записей, упорядоченных по id.
	SelectAll(ctx context.Context) ([]models.Customer, error)
	// SelectByID возвращает клиента по id или ErrNotFoundCustomer.
	SelectByID(ctx context.Context, id int64) (*models.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Insert сохраняет нового клиента (ID игнорируется) и возвращает назначенный id.
	// При конфликте email возвращает ErrAlreadyExists.
	Insert(ctx context.Context, customer *models.Customer) (int64, error)
	// Update перезаписывает name, email, password, age, gender записи с customer.ID.
	// profile_image_id не трогает: им владеет UpdateProfileImageID.
	Update(ctx context.Context, customer *models.Customer) error
	DeleteByID(ctx context.Context, id int64) error
	UpdateProfileImageID(ctx context.Context, id int64, imageID string) error
}

// CustomersStorage — верхнеуровневый интерфейс хранилища клиентов.
type CustomersStorage interface {
	Customers
	Close()
}
